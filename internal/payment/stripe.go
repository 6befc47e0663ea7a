package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// StripeClient talks to the Stripe Checkout Sessions API. Requests are
// form-encoded per Stripe's API conventions.
type StripeClient struct {
	apiBase    string
	secretKey  string
	httpClient *http.Client
}

// NewStripeClient creates a Stripe checkout client.
func NewStripeClient(apiBase, secretKey string) *StripeClient {
	return &StripeClient{
		apiBase:    strings.TrimSuffix(apiBase, "/"),
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

var _ Provider = &StripeClient{}

// CreateSession creates a hosted checkout session for a single line item
// carrying the discounted amount.
func (c *StripeClient) CreateSession(ctx context.Context, params *SessionParams) (*Session, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	if params.CustomerEmail != "" {
		form.Set("customer_email", params.CustomerEmail)
	}
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", params.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.AmountMinorUnits, 10))
	form.Set("line_items[0][price_data][product_data][name]", params.ProductName)
	if params.Description != "" {
		form.Set("line_items[0][price_data][product_data][description]", params.Description)
	}
	for key, value := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", key), value)
	}

	var resp struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", form, &resp); err != nil {
		return nil, err
	}

	return &Session{ID: resp.ID, URL: resp.URL}, nil
}

// GetSession retrieves a session's payment status and metadata.
func (c *StripeClient) GetSession(ctx context.Context, sessionID string) (*SessionStatus, error) {
	var resp struct {
		ID            string            `json:"id"`
		PaymentStatus string            `json:"payment_status"`
		AmountTotal   int64             `json:"amount_total"`
		Metadata      map[string]string `json:"metadata"`
	}
	path := "/v1/checkout/sessions/" + url.PathEscape(sessionID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	return &SessionStatus{
		ID:            resp.ID,
		PaymentStatus: resp.PaymentStatus,
		AmountTotal:   resp.AmountTotal,
		Metadata:      resp.Metadata,
	}, nil
}

func (c *StripeClient) do(ctx context.Context, method, path string, form url.Values, out any) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiBase+path, body)
	if err != nil {
		return fmt.Errorf("failed to build stripe request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read stripe response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
				Type    string `json:"type"`
			} `json:"error"`
		}
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("stripe %s %s: %s (%s)", method, path, apiErr.Error.Message, apiErr.Error.Type)
		}
		return fmt.Errorf("stripe %s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode stripe response: %w", err)
	}

	return nil
}
