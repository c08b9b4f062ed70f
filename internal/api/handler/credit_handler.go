package handler

import (
	"credit-engine/internal/api/handler/dto"
	"credit-engine/internal/domain/credit"
	"log/slog"
	"net/http"
)

type CreditHandler struct {
	service credit.Service
	logger  *slog.Logger
}

func NewCreditHandler(s credit.Service, l *slog.Logger) *CreditHandler {
	if s == nil {
		panic("credit service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CreditHandler{
		service: s,
		logger:  l.With("component", "CreditHandler"),
	}
}

func (h *CreditHandler) decodeLoanRequest(w http.ResponseWriter, r *http.Request) (*dto.LoanRequest, bool) {
	var req dto.LoanRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, invalidBody(err))
		return nil, false
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Loan request validation failed", slog.Any("error", err))
		respondError(w, err)
		return nil, false
	}
	return &req, true
}

// CheckEligibility handles POST /check-eligibility
// @Summary Check loan eligibility
// @Description Scores the customer, corrects the interest rate to the band floor and decides approval. An unknown customer is reported as not approved.
// @Tags Credit
// @Accept json
// @Produce json
// @Param request body dto.LoanRequest true "Requested loan"
// @Success 200 {object} dto.EligibilityResponse "Eligibility decision"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /check-eligibility [post]
func (h *CreditHandler) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeLoanRequest(w, r)
	if !ok {
		return
	}

	result, err := h.service.CheckEligibility(r.Context(), req.ToEligibilityRequest())
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Eligibility check failed", slog.Int64("customerID", req.CustomerID), slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewEligibilityResponse(result))
}

// CreateLoan handles POST /create-loan
// @Summary Create a loan
// @Description Re-checks eligibility and, when approved, books the loan at the corrected rate and adds it to the customer's debt.
// @Tags Credit
// @Accept json
// @Produce json
// @Param request body dto.LoanRequest true "Requested loan"
// @Success 200 {object} dto.CreateLoanResponse "Loan decision, with loan_id when a loan was booked"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /create-loan [post]
func (h *CreditHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeLoanRequest(w, r)
	if !ok {
		return
	}

	result, err := h.service.CreateLoan(r.Context(), req.ToEligibilityRequest())
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Loan creation failed", slog.Int64("customerID", req.CustomerID), slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCreateLoanResponse(result))
}

// CreditScore handles GET /credit-score/{customerID}
// @Summary Credit score breakdown
// @Description Returns the customer's current credit score with the points contributed by each scoring rule.
// @Tags Credit
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Success 200 {object} dto.CreditScoreResponse "Score breakdown"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /credit-score/{customerID} [get]
func (h *CreditHandler) CreditScore(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r, "customerID")
	if err != nil {
		respondError(w, err)
		return
	}

	report, err := h.service.CreditScore(r.Context(), customerID)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Credit score failed", slog.Int64("customerID", customerID), slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCreditScoreResponse(report))
}
