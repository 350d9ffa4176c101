package razorpay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"RenewalSync/internal/api/domain/gateway"
	"RenewalSync/pkg/metrics"
	"RenewalSync/pkg/pointers"

	"github.com/google/go-querystring/query"
)

var _ gateway.Gateway = (*Client)(nil)

type Client struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	HTTP      *http.Client
}

func New(baseURL, keyID, keySecret string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		KeyID:     keyID,
		KeySecret: keySecret,
		HTTP:      httpClient,
	}
}

type paymentResp struct {
	ID        string        `json:"id"`
	Status    string        `json:"status"`
	Amount    int64         `json:"amount"`
	Currency  string        `json:"currency"`
	InvoiceID *string       `json:"invoice_id"`
	Notes     gateway.Notes `json:"notes"`
}

type captureForm struct {
	Amount   int64  `url:"amount"`
	Currency string `url:"currency,omitempty"`
}

type invoiceResp struct {
	ID             string  `json:"id"`
	SubscriptionID *string `json:"subscription_id"`
	Status         string  `json:"status"`
}

type subscriptionResp struct {
	ID         string        `json:"id"`
	Status     string        `json:"status"`
	TotalCount int           `json:"total_count"`
	PaidCount  int           `json:"paid_count"`
	Notes      gateway.Notes `json:"notes"`
}

type errorResp struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (c *Client) FetchPayment(ctx context.Context, paymentID string) (gateway.Payment, error) {
	var out paymentResp
	if err := c.do(ctx, "fetch_payment", http.MethodGet, "/v1/payments/"+url.PathEscape(paymentID), nil, &out); err != nil {
		return gateway.Payment{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) CapturePayment(ctx context.Context, req gateway.CaptureRequest) (gateway.Payment, error) {
	form, err := query.Values(captureForm{Amount: req.Amount, Currency: req.Currency})
	if err != nil {
		return gateway.Payment{}, fmt.Errorf("encode capture request: %w", err)
	}

	var out paymentResp
	path := "/v1/payments/" + url.PathEscape(req.PaymentID) + "/capture"
	if err := c.do(ctx, "capture_payment", http.MethodPost, path, form, &out); err != nil {
		return gateway.Payment{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) FetchInvoice(ctx context.Context, invoiceID string) (gateway.Invoice, error) {
	var out invoiceResp
	if err := c.do(ctx, "fetch_invoice", http.MethodGet, "/v1/invoices/"+url.PathEscape(invoiceID), nil, &out); err != nil {
		return gateway.Invoice{}, err
	}
	return gateway.Invoice{
		ID:             out.ID,
		SubscriptionID: pointers.Deref(out.SubscriptionID),
		Status:         out.Status,
	}, nil
}

func (c *Client) FetchSubscription(ctx context.Context, subscriptionID string) (gateway.Subscription, error) {
	var out subscriptionResp
	if err := c.do(ctx, "fetch_subscription", http.MethodGet, "/v1/subscriptions/"+url.PathEscape(subscriptionID), nil, &out); err != nil {
		return gateway.Subscription{}, err
	}
	return gateway.Subscription{
		ID:         out.ID,
		Status:     out.Status,
		TotalCount: out.TotalCount,
		PaidCount:  out.PaidCount,
		Notes:      out.Notes,
	}, nil
}

func (c *Client) do(ctx context.Context, operation, method, path string, form url.Values, out any) (err error) {
	start := time.Now()
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		metrics.GatewayRequestDuration.WithLabelValues(operation, outcome).Observe(time.Since(start).Seconds())
	}()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", operation, err)
	}
	httpReq.SetBasicAuth(c.KeyID, c.KeySecret)
	httpReq.Header.Set("Accept", "application/json")
	if form != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", operation, ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", operation, err)
	}

	if resp.StatusCode/100 != 2 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var er errorResp
		if json.Unmarshal(raw, &er) == nil {
			apiErr.Code = er.Error.Code
			apiErr.Description = er.Error.Description
		}
		return apiErr
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: unmarshal response: %w", operation, err)
	}
	return nil
}

func (p paymentResp) toDomain() gateway.Payment {
	return gateway.Payment{
		ID:        p.ID,
		Status:    gateway.PaymentStatus(p.Status),
		Amount:    p.Amount,
		Currency:  p.Currency,
		InvoiceID: pointers.Deref(p.InvoiceID),
		Notes:     p.Notes,
	}
}
