package http

import (
	"github.com/shopspring/decimal"

	"github.com/fening/airtime-gateway/internal/airtime_service/domain"
)

// TopupRequest is the body of POST /api/v1/airtime/topup. Retailer and amount
// are accepted for compatibility with older clients and ignored; both are
// server-held constants.
type TopupRequest struct {
	Recipient string `json:"recipient" validate:"required,min=10"`
	Retailer  string `json:"retailer,omitempty"`
	Amount    string `json:"amount,omitempty"`
}

// TopupData is the data payload returned for a processed top-up.
type TopupData struct {
	Recipient string           `json:"recipient"`
	Amount    string           `json:"amount"`
	Reference string           `json:"reference,omitempty"`
	Balance   *decimal.Decimal `json:"balance,omitempty"`
}

// APIResponse is the envelope every endpoint returns. The caller always gets
// JSON with success and message, never a bare fault.
type APIResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Code    string     `json:"code,omitempty"`
	Data    *TopupData `json:"data,omitempty"`
}

// NumberListResponse is the payload of GET /api/v1/admin/numbers.
type NumberListResponse struct {
	Success bool                       `json:"success"`
	Count   int                        `json:"count"`
	Items   []domain.PhoneNumberRecord `json:"items"`
}

// TransactionListResponse is the payload of GET /api/v1/admin/transactions/{phoneNumber}.
type TransactionListResponse struct {
	Success bool                        `json:"success"`
	Count   int                         `json:"count"`
	Items   []domain.AirtimeTransaction `json:"items"`
}
