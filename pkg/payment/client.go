package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const snapPath = "/snap/v1/transactions"

// TransactionRequest is the payload of a Snap-style token request.
type TransactionRequest struct {
	TransactionDetails TransactionDetails `json:"transaction_details"`
	CustomerDetails    CustomerDetails    `json:"customer_details"`
}

type TransactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
}

type CustomerDetails struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// TransactionResponse carries the token the customer is redirected with.
type TransactionResponse struct {
	Token         string   `json:"token"`
	RedirectURL   string   `json:"redirect_url"`
	ErrorMessages []string `json:"error_messages,omitempty"`
}

// Client talks to the payment gateway.
type Client struct {
	baseURL    string
	serverKey  string
	httpClient *http.Client
}

// NewClient creates a gateway client authenticating with serverKey.
func NewClient(baseURL, serverKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serverKey:  serverKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateTransaction requests a payment token for an order.
func (c *Client) CreateTransaction(ctx context.Context, req TransactionRequest) (*TransactionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+snapPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.SetBasicAuth(c.serverKey, "")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payment gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read payment gateway response: %w", err)
	}

	var out TransactionResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("invalid payment gateway response (status %d): %w", resp.StatusCode, err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("payment gateway returned status %d: %s", resp.StatusCode, strings.Join(out.ErrorMessages, "; "))
	}
	if out.Token == "" {
		return nil, fmt.Errorf("payment gateway returned no token")
	}
	return &out, nil
}
