// Package provider is the client for the external payment provider's
// transaction-initialization and verification API.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
)

const currency = "ETB"

// ErrUpstreamFormat marks a response from the provider that could not be
// decoded. Callers must never surface it as a validation failure.
var ErrUpstreamFormat = errors.New("unexpected payment provider response")

// Error is an explicit business failure reported by the provider, such as
// an invalid card or insufficient funds.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

type Client struct {
	baseURL string
	secret  string
	client  *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL, secret string, client *http.Client, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		secret:  secret,
		client:  client,
		logger:  logger,
	}
}

// Configured reports whether the server-held secret credential is present.
func (c *Client) Configured() bool {
	return c.secret != ""
}

type InitializeRequest struct {
	Amount     int64
	Email      string
	FirstName  string
	LastName   string
	Phone      string
	TxRef      string
	OrderItems string
	// SiteURL is the deployment's own origin, resolved by the caller from
	// configuration, never from attacker-controllable input.
	SiteURL string
}

type initializePayload struct {
	Amount        string        `json:"amount"`
	Currency      string        `json:"currency"`
	Email         string        `json:"email"`
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	PhoneNumber   string        `json:"phone_number"`
	TxRef         string        `json:"tx_ref"`
	CallbackURL   string        `json:"callback_url"`
	ReturnURL     string        `json:"return_url"`
	Customization customization `json:"customization"`
}

type customization struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type initializeResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		CheckoutURL string `json:"checkout_url"`
	} `json:"data"`
}

// Initialize starts a hosted checkout session and returns its URL. The
// callback and return URLs are derived from the configured site origin,
// never from caller input.
func (c *Client) Initialize(ctx context.Context, req InitializeRequest) (string, error) {
	lastName := req.LastName
	if lastName == "" {
		lastName = req.FirstName
	}
	payload := initializePayload{
		Amount:      strconv.FormatInt(req.Amount, 10),
		Currency:    currency,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    lastName,
		PhoneNumber: req.Phone,
		TxRef:       req.TxRef,
		CallbackURL: req.SiteURL + "/payment-success",
		ReturnURL:   req.SiteURL + "/payment-success?tx_ref=" + req.TxRef,
		Customization: customization{
			Title:       "Cherish Addis Coffee & Books",
			Description: orDefault(req.OrderItems, "Café Order"),
		},
	}

	var resp initializeResponse
	if err := c.post(ctx, "/v1/transaction/initialize", payload, &resp); err != nil {
		return "", err
	}

	c.logger.Info("provider initialize response", "status", resp.Status, "tx_ref", req.TxRef)

	if resp.Status == "success" && resp.Data.CheckoutURL != "" {
		return resp.Data.CheckoutURL, nil
	}
	return "", &Error{Message: orDefault(resp.Message, "Payment initialization failed")}
}

type verifyResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type VerifyResult struct {
	// Status is the provider's outer call status.
	Status string
	// Verified holds only when the outer call succeeded AND the embedded
	// transaction status is success. The outer call succeeding does not
	// imply the payment itself succeeded.
	Verified bool
	// Data is the provider's raw transaction payload, nil when absent.
	Data json.RawMessage
}

// Verify checks the final state of the transaction identified by txRef.
// A response missing the embedded transaction payload counts as unverified.
func (c *Client) Verify(ctx context.Context, txRef string) (VerifyResult, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/transaction/verify/"+txRef, nil)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("create verify request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secret)

	var resp verifyResponse
	if err := c.do(httpReq, &resp); err != nil {
		return VerifyResult{}, err
	}

	var tx struct {
		Status string `json:"status"`
	}
	if len(resp.Data) > 0 {
		// Decode failure of the inner payload means unverified, not an error.
		_ = json.Unmarshal(resp.Data, &tx)
	}

	result := VerifyResult{
		Status:   resp.Status,
		Verified: resp.Status == "success" && tx.Status == "success",
		Data:     resp.Data,
	}
	c.logger.Info("provider verify response", "status", result.Status, "verified", result.Verified, "tx_ref", txRef)
	return result, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal provider request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create provider request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secret)
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("call payment provider: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read provider response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Error("undecodable provider response", "status_code", resp.StatusCode, "error", err)
		return fmt.Errorf("%w: %v", ErrUpstreamFormat, err)
	}
	return nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
