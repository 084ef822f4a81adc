package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/fening/airtime-gateway/internal/airtime_service/domain"
)

// TopupLister is the read-side slice of app.TopupService the admin handler needs.
type TopupLister interface {
	ListNumbers(ctx context.Context) ([]domain.PhoneNumberRecord, error)
	ListTransactions(ctx context.Context, phoneNumber string) ([]domain.AirtimeTransaction, error)
}

// AdminHandler serves the JSON listings behind the admin views: served numbers
// and per-number transaction history, both newest first.
type AdminHandler struct {
	service TopupLister
	logger  *slog.Logger
}

func NewAdminHandler(service TopupLister, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{service: service, logger: logger.With("handler", "admin")}
}

func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/admin/numbers", h.handleListNumbers)
	r.Get("/admin/transactions/{phoneNumber}", h.handleListTransactions)
}

func (h *AdminHandler) handleListNumbers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx))

	records, err := h.service.ListNumbers(ctx)
	if err != nil {
		h.writeListError(ctx, w, logger, err, "Failed to list phone numbers")
		return
	}
	if records == nil {
		records = []domain.PhoneNumberRecord{}
	}
	writeJSON(w, http.StatusOK, NumberListResponse{Success: true, Count: len(records), Items: records})
}

func (h *AdminHandler) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx))
	phoneNumber := chi.URLParam(r, "phoneNumber")

	transactions, err := h.service.ListTransactions(ctx, phoneNumber)
	if err != nil {
		h.writeListError(ctx, w, logger, err, "Failed to list transactions")
		return
	}
	if transactions == nil {
		transactions = []domain.AirtimeTransaction{}
	}
	writeJSON(w, http.StatusOK, TransactionListResponse{Success: true, Count: len(transactions), Items: transactions})
}

func (h *AdminHandler) writeListError(ctx context.Context, w http.ResponseWriter, logger *slog.Logger, err error, msg string) {
	if errors.Is(err, domain.ErrSchemaMissing) {
		logger.ErrorContext(ctx, "Database schema missing", "error", err)
		writeJSON(w, http.StatusInternalServerError, APIResponse{
			Success: false,
			Message: "Database not configured; run the schema setup",
			Code:    codeDBNotConfigured,
		})
		return
	}
	logger.ErrorContext(ctx, msg, "error", err)
	writeJSON(w, http.StatusInternalServerError, APIResponse{Success: false, Message: msg})
}
