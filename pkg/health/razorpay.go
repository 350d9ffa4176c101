package health

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// RazorpayChecker verifies the gateway is reachable and accepts the configured
// API keys, using the cheapest authenticated call (a one item payment list).
type RazorpayChecker struct {
	baseURL   string
	keyID     string
	keySecret string
	client    *http.Client
}

func NewRazorpayChecker(baseURL, keyID, keySecret string, client *http.Client) *RazorpayChecker {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &RazorpayChecker{
		baseURL:   strings.TrimRight(baseURL, "/"),
		keyID:     keyID,
		keySecret: keySecret,
		client:    client,
	}
}

func (c *RazorpayChecker) Name() string {
	return "razorpay"
}

func (c *RazorpayChecker) Check(ctx context.Context) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/payments?count=1", nil)
	if err != nil {
		return Result{Status: StatusDown, Message: err.Error()}
	}
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{Status: StatusDown, Message: err.Error()}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return Result{Status: StatusDown, Message: "gateway rejected API credentials"}
	case resp.StatusCode >= 300:
		return Result{Status: StatusDown, Message: fmt.Sprintf("gateway status %d", resp.StatusCode)}
	default:
		return Result{Status: StatusUp}
	}
}
