package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/fening/airtime-gateway/internal/airtime_service/app"
	"github.com/fening/airtime-gateway/internal/airtime_service/domain"
	"github.com/fening/airtime-gateway/internal/airtime_service/provider"
)

const codeDBNotConfigured = "DB_NOT_CONFIGURED"

// TopupRequester is the slice of app.TopupService the handler needs; tests
// substitute a mock through it.
type TopupRequester interface {
	RequestTopup(ctx context.Context, recipient string) (*app.TopupOutcome, error)
}

type TopupHandler struct {
	service  TopupRequester
	validate *validator.Validate
	logger   *slog.Logger
}

func NewTopupHandler(service TopupRequester, logger *slog.Logger) *TopupHandler {
	return &TopupHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("handler", "topup"),
	}
}

// RegisterRoutes registers top-up routes with the given router.
func (h *TopupHandler) RegisterRoutes(r chi.Router) {
	r.Post("/airtime/topup", h.handleTopup)
}

func (h *TopupHandler) handleTopup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx))

	var req TopupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "Failed to decode top-up request", "error", err)
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "Invalid request payload"})
		return
	}

	if err := h.validate.Struct(req); err != nil {
		logger.InfoContext(ctx, "Top-up request failed validation", "error", err)
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "Invalid phone number"})
		return
	}

	outcome, err := h.service.RequestTopup(ctx, req.Recipient)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrAlreadyServed):
			writeJSON(w, http.StatusForbidden, APIResponse{
				Success: false,
				Message: "This number already received airtime",
			})
		case errors.Is(err, domain.ErrSchemaMissing):
			logger.ErrorContext(ctx, "Database schema missing", "error", err)
			writeJSON(w, http.StatusInternalServerError, APIResponse{
				Success: false,
				Message: "Database not configured; run the schema setup",
				Code:    codeDBNotConfigured,
			})
		default:
			logger.ErrorContext(ctx, "Top-up request failed unexpectedly", "error", err)
			writeJSON(w, http.StatusInternalServerError, APIResponse{
				Success: false,
				Message: "An unexpected error occurred",
			})
		}
		return
	}

	writeJSON(w, statusForOutcome(outcome), APIResponse{
		Success: outcome.Success,
		Message: outcome.Message,
		Data: &TopupData{
			Recipient: outcome.Recipient,
			Amount:    outcome.Amount.StringFixed(2),
			Reference: outcome.Reference,
			Balance:   outcome.Balance,
		},
	})
}

// statusForOutcome maps a processed top-up onto an HTTP status. A failure the
// provider reported inside a 2xx response stays 200 with success=false; a
// provider-side 400/404 passes through; anything else the provider did wrong
// (other statuses, unreachable, unparsable body) is a bad gateway.
func statusForOutcome(o *app.TopupOutcome) int {
	if o.Success {
		return http.StatusOK
	}
	switch {
	case o.ProviderOutcome == provider.OutcomePending,
		o.ProviderStatusCode >= 200 && o.ProviderStatusCode < 300:
		return http.StatusOK
	case o.ProviderStatusCode == http.StatusBadRequest:
		return http.StatusBadRequest
	case o.ProviderStatusCode == http.StatusNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
