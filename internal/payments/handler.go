// Package payments exposes the two proxy endpoints the checkout flow calls:
// payment initiation and post-redirect verification. The handlers hold the
// server-side credential so it never reaches the client.
package payments

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cherishcafe/orderflow/internal/provider"
)

// defaultSiteURL is the last resort when neither configuration nor the
// request supplies a deployment origin.
const defaultSiteURL = "https://cherishaddis.netlify.app"

type Handler struct {
	provider *provider.Client
	siteURL  string
	logger   *slog.Logger
}

func NewHandler(p *provider.Client, siteURL string, logger *slog.Logger) *Handler {
	return &Handler{
		provider: p,
		siteURL:  siteURL,
		logger:   logger,
	}
}

type initiateRequest struct {
	Amount     int64  `json:"amount"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
	TxRef      string `json:"tx_ref"`
	OrderItems string `json:"order_items"`
}

type initiateResponse struct {
	Status      string `json:"status"`
	CheckoutURL string `json:"checkout_url"`
	TxRef       string `json:"tx_ref"`
}

func (h *Handler) HandleInitiate(w http.ResponseWriter, r *http.Request) {
	var req initiateRequest
	if err := decodeStrict(r, &req); err != nil {
		h.writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Amount == 0 || req.Email == "" || req.FirstName == "" || req.TxRef == "" {
		h.writeFailure(w, http.StatusBadRequest, "Missing required fields: amount, email, first_name, tx_ref")
		return
	}

	if !h.provider.Configured() {
		h.logger.Error("payment secret not configured")
		h.writeFailure(w, http.StatusInternalServerError, "payment service not configured")
		return
	}

	checkoutURL, err := h.provider.Initialize(r.Context(), provider.InitializeRequest{
		Amount:     req.Amount,
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		TxRef:      req.TxRef,
		OrderItems: req.OrderItems,
		SiteURL:    h.resolveSiteURL(r),
	})
	if err != nil {
		var provErr *provider.Error
		switch {
		case errors.As(err, &provErr):
			h.logger.Error("payment initialization rejected", "error", err, "tx_ref", req.TxRef)
			h.writeFailure(w, http.StatusBadRequest, provErr.Message)
		case errors.Is(err, provider.ErrUpstreamFormat):
			h.logger.Error("payment provider returned malformed response", "error", err, "tx_ref", req.TxRef)
			h.writeFailure(w, http.StatusBadGateway, "unexpected response from payment provider")
		default:
			h.logger.Error("payment initialization failed", "error", err, "tx_ref", req.TxRef)
			h.writeFailure(w, http.StatusInternalServerError, "payment service unavailable, please try again")
		}
		return
	}

	h.logger.Info("payment initialized", "tx_ref", req.TxRef, "amount", req.Amount)
	h.writeJSON(w, http.StatusOK, initiateResponse{
		Status:      "success",
		CheckoutURL: checkoutURL,
		TxRef:       req.TxRef,
	})
}

type verifyRequest struct {
	TxRef string `json:"tx_ref"`
}

type verifyResponse struct {
	Status   string          `json:"status"`
	Verified bool            `json:"verified"`
	Data     json.RawMessage `json:"data"`
	Message  string          `json:"message"`
}

func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeStrict(r, &req); err != nil {
		h.writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TxRef == "" {
		h.writeFailure(w, http.StatusBadRequest, "Missing transaction reference")
		return
	}

	if !h.provider.Configured() {
		h.logger.Error("payment secret not configured")
		h.writeFailure(w, http.StatusInternalServerError, "payment service not configured")
		return
	}

	result, err := h.provider.Verify(r.Context(), req.TxRef)
	if err != nil {
		h.logger.Error("payment verification failed", "error", err, "tx_ref", req.TxRef)
		h.writeFailure(w, http.StatusInternalServerError, "verification service unavailable, please try again")
		return
	}

	message := "Payment not verified"
	if result.Verified {
		message = "Payment verified successfully"
	}
	data := result.Data
	if len(data) == 0 {
		data = json.RawMessage("null")
	}

	h.writeJSON(w, http.StatusOK, verifyResponse{
		Status:   result.Status,
		Verified: result.Verified,
		Data:     data,
		Message:  message,
	})
}

// decodeStrict rejects bodies with unknown fields so malformed requests
// fail deterministically instead of being partially accepted.
func decodeStrict(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

// resolveSiteURL picks the origin used for provider callback and return
// URLs: explicit configuration first, then the request's own origin, then
// the fixed default.
func (h *Handler) resolveSiteURL(r *http.Request) string {
	if h.siteURL != "" {
		return h.siteURL
	}
	if origin := r.Header.Get("Origin"); origin != "" {
		return origin
	}
	return defaultSiteURL
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeFailure(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"status": "failed", "error": message})
}
