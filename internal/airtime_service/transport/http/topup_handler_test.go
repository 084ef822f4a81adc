package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fening/airtime-gateway/internal/airtime_service/app"
	"github.com/fening/airtime-gateway/internal/airtime_service/domain"
	"github.com/fening/airtime-gateway/internal/airtime_service/provider"
	httptransport "github.com/fening/airtime-gateway/internal/airtime_service/transport/http"
)

type stubTopupService struct {
	outcome *app.TopupOutcome
	err     error
	called  bool
	gotRcpt string
}

func (s *stubTopupService) RequestTopup(ctx context.Context, recipient string) (*app.TopupOutcome, error) {
	s.called = true
	s.gotRcpt = recipient
	return s.outcome, s.err
}

func newTopupServer(t *testing.T, stub *stubTopupService) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := httptransport.NewTopupHandler(stub, logger)
	r := chi.NewRouter()
	r.Route("/api/v1", func(v1 chi.Router) {
		handler.RegisterRoutes(v1)
	})
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func postTopup(t *testing.T, server *httptest.Server, body string) (*http.Response, httptransport.APIResponse) {
	t.Helper()
	resp, err := http.Post(server.URL+"/api/v1/airtime/topup", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded httptransport.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestHandleTopup_ShortRecipientRejected(t *testing.T) {
	stub := &stubTopupService{}
	server := newTopupServer(t, stub)

	resp, body := postTopup(t, server, `{"recipient": "123"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, body.Success)
	assert.Contains(t, body.Message, "Invalid phone number")
	assert.False(t, stub.called)
}

func TestHandleTopup_MissingRecipientRejected(t *testing.T) {
	stub := &stubTopupService{}
	server := newTopupServer(t, stub)

	resp, body := postTopup(t, server, `{"retailer": "ignored"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, body.Success)
	assert.False(t, stub.called)
}

func TestHandleTopup_MalformedBodyRejected(t *testing.T) {
	stub := &stubTopupService{}
	server := newTopupServer(t, stub)

	resp, body := postTopup(t, server, `{"recipient": `)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, body.Success)
}

func TestHandleTopup_Success(t *testing.T) {
	stub := &stubTopupService{outcome: &app.TopupOutcome{
		Success:         true,
		Message:         "Airtime sent successfully",
		Recipient:       "0245667942",
		Amount:          decimal.RequireFromString("10.00"),
		Reference:       "TXN-1",
		ProviderOutcome: provider.OutcomeSuccess,
	}}
	server := newTopupServer(t, stub)

	resp, body := postTopup(t, server, `{"recipient": "0245667942", "retailer": "", "amount": ""}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body.Success)
	require.NotNil(t, body.Data)
	assert.Equal(t, "0245667942", body.Data.Recipient)
	assert.Equal(t, "10.00", body.Data.Amount)
	assert.Equal(t, "TXN-1", body.Data.Reference)
	assert.Equal(t, "0245667942", stub.gotRcpt)
}

func TestHandleTopup_AlreadyServed(t *testing.T) {
	stub := &stubTopupService{err: app.ErrAlreadyServed}
	server := newTopupServer(t, stub)

	resp, body := postTopup(t, server, `{"recipient": "0245667943"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, body.Success)
	assert.Contains(t, body.Message, "already received airtime")
}

func TestHandleTopup_ProviderReportedFailure(t *testing.T) {
	stub := &stubTopupService{outcome: &app.TopupOutcome{
		Success:            false,
		Message:            "Insufficient retailer balance",
		Recipient:          "0245667942",
		Amount:             decimal.RequireFromString("10.00"),
		ProviderOutcome:    provider.OutcomeFailed,
		ProviderStatusCode: http.StatusOK,
	}}
	server := newTopupServer(t, stub)

	resp, body := postTopup(t, server, `{"recipient": "0245667942"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, body.Success)
	assert.Contains(t, body.Message, "Insufficient")
}

func TestHandleTopup_ProviderUnreachable(t *testing.T) {
	stub := &stubTopupService{outcome: &app.TopupOutcome{
		Success:         false,
		Message:         "airtime provider unreachable",
		Recipient:       "0245667942",
		Amount:          decimal.RequireFromString("10.00"),
		ProviderOutcome: provider.OutcomeFailed,
	}}
	server := newTopupServer(t, stub)

	resp, body := postTopup(t, server, `{"recipient": "0245667942"}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.False(t, body.Success)
}

func TestHandleTopup_ProviderBadRequestPassesThrough(t *testing.T) {
	stub := &stubTopupService{outcome: &app.TopupOutcome{
		Success:            false,
		Message:            "Invalid recipient for network",
		Recipient:          "0245667942",
		Amount:             decimal.RequireFromString("10.00"),
		ProviderOutcome:    provider.OutcomeFailed,
		ProviderStatusCode: http.StatusBadRequest,
	}}
	server := newTopupServer(t, stub)

	resp, body := postTopup(t, server, `{"recipient": "0245667942"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, body.Success)
}

func TestHandleTopup_SchemaMissing(t *testing.T) {
	stub := &stubTopupService{err: domain.ErrSchemaMissing}
	server := newTopupServer(t, stub)

	resp, body := postTopup(t, server, `{"recipient": "0245667942"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.False(t, body.Success)
	assert.Equal(t, "DB_NOT_CONFIGURED", body.Code)
}

func TestHandleTopup_UnexpectedErrorIsGeneric500(t *testing.T) {
	stub := &stubTopupService{err: errors.New("pool exhausted: secret dsn detail")}
	server := newTopupServer(t, stub)

	resp, body := postTopup(t, server, `{"recipient": "0245667942"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.False(t, body.Success)
	assert.Equal(t, "An unexpected error occurred", body.Message)
}
