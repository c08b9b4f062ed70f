package handler

import (
	"credit-engine/internal/api/handler/dto"
	"credit-engine/internal/pkg/apperrors"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{"validation", apperrors.NewValidationError("tenure", "must be at least 1"), http.StatusBadRequest, "VALIDATION_FAILED", "tenure"},
		{"invalid argument", fmt.Errorf("%w: bad id", apperrors.ErrInvalidArgument), http.StatusBadRequest, "INVALID_ARGUMENT", ""},
		{"not found", fmt.Errorf("%w: customer 7", apperrors.ErrNotFound), http.StatusNotFound, "NOT_FOUND", ""},
		{"already exists", fmt.Errorf("%w: customers_phone_number_key", apperrors.ErrAlreadyExists), http.StatusConflict, "ALREADY_EXISTS", ""},
		{"database", apperrors.WrapDatabaseError(errors.New("conn reset"), "database operation failed"), http.StatusInternalServerError, "DB_ERROR", ""},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, tt.err)

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, tt.wantField, body.Error.Field)
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestPathID(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/view-loan/12", nil), "loanID", "12")
		id, err := pathID(req, "loanID")
		require.NoError(t, err)
		assert.Equal(t, int64(12), id)
	})

	for _, raw := range []string{"", "abc", "0", "-4"} {
		t.Run("rejects "+raw, func(t *testing.T) {
			req := withURLParam(httptest.NewRequest(http.MethodGet, "/view-loan/x", nil), "loanID", raw)
			_, err := pathID(req, "loanID")
			assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
		})
	}
}

func TestLogLevelFor(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, logLevelFor(apperrors.ErrNotFound))
	assert.Equal(t, slog.LevelWarn, logLevelFor(apperrors.NewValidationError("age", "required")))
	assert.Equal(t, slog.LevelError, logLevelFor(apperrors.ErrDatabase))
}
