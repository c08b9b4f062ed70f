package handler

import (
	"credit-engine/internal/api/handler/dto"
	"credit-engine/internal/domain/loan"
	"credit-engine/internal/pkg/apperrors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

type LoanHandler struct {
	service loan.LoanService
	logger  *slog.Logger
}

func NewLoanHandler(s loan.LoanService, l *slog.Logger) *LoanHandler {
	if s == nil {
		panic("loan service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &LoanHandler{
		service: s,
		logger:  l.With("component", "LoanHandler"),
	}
}

// ViewLoan handles GET /view-loan/{loanID}
// @Summary View a loan
// @Description Returns a loan together with a summary of the customer who holds it.
// @Tags Loans
// @Produce json
// @Param loanID path int true "Loan ID" Minimum(1)
// @Success 200 {object} dto.LoanDetailResponse "Loan details"
// @Failure 400 {object} dto.ErrorResponse "Invalid loan ID"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /view-loan/{loanID} [get]
func (h *LoanHandler) ViewLoan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	loanID, err := pathID(r, "loanID")
	if err != nil {
		h.logger.WarnContext(ctx, "Failed to get loan ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	details, err := h.service.GetLoan(ctx, loanID)
	if err != nil {
		h.logger.Log(ctx, logLevelFor(err), "Service failed to get loan", slog.Int64("loanID", loanID), slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewLoanDetailResponse(details))
}

// ViewLoans handles GET /view-loans/{customerID}
// @Summary View a customer's loans
// @Description Lists a customer's loans with the number of repayments left. Pass active=true to only list loans that have not ended.
// @Tags Loans
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Param active query bool false "Only loans still active today"
// @Success 200 {array} dto.LoanListItem "Customer loans"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID or query"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /view-loans/{customerID} [get]
func (h *LoanHandler) ViewLoans(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	customerID, err := pathID(r, "customerID")
	if err != nil {
		h.logger.WarnContext(ctx, "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	activeOnly := false
	if raw := r.URL.Query().Get("active"); raw != "" {
		activeOnly, err = strconv.ParseBool(raw)
		if err != nil {
			respondError(w, fmt.Errorf("%w: active must be a boolean, got %q", apperrors.ErrInvalidArgument, raw))
			return
		}
	}

	loans, err := h.service.ListCustomerLoans(ctx, customerID, activeOnly)
	if err != nil {
		h.logger.Log(ctx, logLevelFor(err), "Service failed to list loans", slog.Int64("customerID", customerID), slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewLoanList(loans))
}
