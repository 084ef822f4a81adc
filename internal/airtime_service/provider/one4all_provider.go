package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

const one4allStatusSuccess = "00"
const one4allStatusPending = "09"

// One4AllProvider sends top-ups through the One4All TopUpApi. The retailer ID
// and credentials are server-held configuration, never caller input.
type One4AllProvider struct {
	logger     *slog.Logger
	httpClient *http.Client
	baseURL    string
	retailerID string
	apiKey     string
	apiSecret  string
}

// NewOne4AllProvider creates a One4AllProvider. A nil httpClient gets a
// default with a 10 second timeout; the external call must always be bounded.
func NewOne4AllProvider(logger *slog.Logger, baseURL, retailerID, apiKey, apiSecret string, httpClient *http.Client) *One4AllProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &One4AllProvider{
		logger:     logger.With("provider", "one4all"),
		httpClient: httpClient,
		baseURL:    baseURL,
		retailerID: retailerID,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
	}
}

// one4allResponse tolerates both the simple shape the API documents
// ({success, message, transactionId}) and the richer live shape
// ({status-code, message, trxn, balance_after}).
type one4allResponse struct {
	Success       *bool            `json:"success,omitempty"`
	Message       string           `json:"message"`
	TransactionID string           `json:"transactionId,omitempty"`
	StatusCode    string           `json:"status-code,omitempty"`
	Trxn          string           `json:"trxn,omitempty"`
	BalanceAfter  *decimal.Decimal `json:"balance_after,omitempty"`
}

func (p *One4AllProvider) Topup(ctx context.Context, recipient string) (*TopupResult, error) {
	reqURL, err := url.Parse(p.baseURL + "/TopUpApi/airtime")
	if err != nil {
		return &TopupResult{Outcome: OutcomeFailed, Message: "provider endpoint misconfigured"},
			fmt.Errorf("parsing provider URL: %w", err)
	}
	q := reqURL.Query()
	q.Set("retailer", p.retailerID)
	q.Set("recipient", recipient)
	q.Set("amount", FixedAmount)
	reqURL.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return &TopupResult{Outcome: OutcomeFailed, Message: "failed to build provider request"},
			fmt.Errorf("creating provider request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("ApiKey", p.apiKey)
	httpReq.Header.Set("ApiSecret", p.apiSecret)

	p.logger.DebugContext(ctx, "Sending top-up request to One4All", "recipient", recipient, "amount", FixedAmount)

	start := time.Now()
	httpResp, err := p.httpClient.Do(httpReq)
	providerRequestDuration.WithLabelValues(p.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		p.logger.ErrorContext(ctx, "One4All request failed", "error", err, "recipient", recipient)
		return &TopupResult{Outcome: OutcomeFailed, Message: "airtime provider unreachable"},
			fmt.Errorf("sending provider request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to read One4All response", "status_code", httpResp.StatusCode, "error", err)
		return &TopupResult{Outcome: OutcomeFailed, Message: "unreadable provider response", StatusCode: httpResp.StatusCode},
			fmt.Errorf("reading provider response (status %d): %w", httpResp.StatusCode, err)
	}

	var resp one4allResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		p.logger.WarnContext(ctx, "One4All response not parseable as JSON",
			"status_code", httpResp.StatusCode, "body_len", len(respBody))
		return &TopupResult{Outcome: OutcomeFailed, Message: "malformed provider response", StatusCode: httpResp.StatusCode},
			fmt.Errorf("decoding provider response (status %d): %w", httpResp.StatusCode, err)
	}

	result := &TopupResult{
		Message:    resp.Message,
		Reference:  resp.reference(),
		Balance:    resp.BalanceAfter,
		StatusCode: httpResp.StatusCode,
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		result.Outcome = OutcomeFailed
		if result.Message == "" {
			result.Message = fmt.Sprintf("provider returned status %d", httpResp.StatusCode)
		}
		p.logger.WarnContext(ctx, "One4All top-up rejected", "status_code", httpResp.StatusCode, "message", result.Message)
		return result, fmt.Errorf("provider returned status %d: %s", httpResp.StatusCode, result.Message)
	}

	switch {
	case resp.StatusCode == one4allStatusSuccess || (resp.StatusCode == "" && resp.Success != nil && *resp.Success):
		result.Outcome = OutcomeSuccess
		p.logger.InfoContext(ctx, "One4All top-up succeeded", "recipient", recipient, "reference", result.Reference)
	case resp.StatusCode == one4allStatusPending:
		result.Outcome = OutcomePending
		p.logger.InfoContext(ctx, "One4All top-up pending", "recipient", recipient, "reference", result.Reference)
	default:
		result.Outcome = OutcomeFailed
		if result.Message == "" {
			result.Message = "provider reported failure"
		}
		p.logger.WarnContext(ctx, "One4All top-up failed", "recipient", recipient,
			"provider_status", resp.StatusCode, "message", result.Message)
	}
	return result, nil
}

func (r *one4allResponse) reference() string {
	if r.Trxn != "" {
		return r.Trxn
	}
	return r.TransactionID
}

func (p *One4AllProvider) Name() string {
	return "one4all"
}
