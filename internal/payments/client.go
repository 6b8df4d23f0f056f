package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Client calls the payment proxy endpoints from the ordering side. Failures
// are returned as typed results; nothing here retries on its own.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, client *http.Client) *Client {
	return &Client{baseURL: baseURL, client: client}
}

type InitiateRequest struct {
	Amount     int64  `json:"amount"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name,omitempty"`
	Phone      string `json:"phone,omitempty"`
	TxRef      string `json:"tx_ref"`
	OrderItems string `json:"order_items,omitempty"`
}

type InitiateResponse struct {
	Status      string `json:"status"`
	CheckoutURL string `json:"checkout_url"`
	TxRef       string `json:"tx_ref"`
	Error       string `json:"error"`
}

func (c *Client) Initiate(ctx context.Context, req InitiateRequest) (InitiateResponse, error) {
	var resp InitiateResponse
	if err := c.post(ctx, "/payment/initiate", req, &resp); err != nil {
		return InitiateResponse{}, err
	}
	if resp.Status != "success" || resp.CheckoutURL == "" {
		return resp, fmt.Errorf("payment initiation failed: %s", orDefault(resp.Error, "unknown error"))
	}
	return resp, nil
}

type VerifyResponse struct {
	Status   string          `json:"status"`
	Verified bool            `json:"verified"`
	Data     json.RawMessage `json:"data"`
	Message  string          `json:"message"`
	Error    string          `json:"error"`
}

func (c *Client) Verify(ctx context.Context, txRef string) (VerifyResponse, error) {
	var resp VerifyResponse
	if err := c.post(ctx, "/payment/verify", map[string]string{"tx_ref": txRef}, &resp); err != nil {
		return VerifyResponse{}, err
	}
	return resp, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("call payment service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode payment service response: %w", err)
	}
	return nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
