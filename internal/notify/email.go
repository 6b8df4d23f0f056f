package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/cherishcafe/orderflow/internal/domain"
)

// EmailConfig identifies the transactional-email account and templates.
// All values are injected at deploy time, never hardcoded.
type EmailConfig struct {
	BaseURL            string
	ServiceID          string
	CafeTemplateID     string
	CustomerTemplateID string
	PublicKey          string
}

// EmailNotifier sends the café notification first, then the customer
// confirmation, over an EmailJS-style send API.
type EmailNotifier struct {
	cfg    EmailConfig
	client *http.Client
	logger *slog.Logger
}

func NewEmailNotifier(cfg EmailConfig, client *http.Client, logger *slog.Logger) *EmailNotifier {
	return &EmailNotifier{
		cfg:    cfg,
		client: client,
		logger: logger,
	}
}

func (n *EmailNotifier) NotifyOrder(ctx context.Context, order Order) error {
	params := templateParams(order)

	if err := n.send(ctx, n.cfg.CafeTemplateID, params); err != nil {
		return fmt.Errorf("notify café: %w", err)
	}
	if err := n.send(ctx, n.cfg.CustomerTemplateID, params); err != nil {
		// The café email may already be out; a partial send still counts
		// as failure and the whole dispatch is retried manually.
		return fmt.Errorf("notify customer: %w", err)
	}

	n.logger.Info("order notifications sent", "customer", order.Details.Email, "total", order.Total)
	return nil
}

type sendPayload struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

func (n *EmailNotifier) send(ctx context.Context, templateID string, params map[string]string) error {
	data, err := json.Marshal(sendPayload{
		ServiceID:      n.cfg.ServiceID,
		TemplateID:     templateID,
		UserID:         n.cfg.PublicKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("marshal send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.BaseURL+"/api/v1.0/email/send", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("email service returned status %d", resp.StatusCode)
	}
	return nil
}

func templateParams(order Order) map[string]string {
	d := order.Details

	var html, text []string
	for _, line := range order.Lines {
		entry := fmt.Sprintf("%dx %s - %d ETB", line.Quantity, line.Item.Name, line.Subtotal())
		html = append(html, entry)
		text = append(text, entry)
	}

	return map[string]string{
		"customer_name":    fallback(d.Name, "Guest"),
		"customer_email":   d.Email,
		"customer_phone":   fallback(d.Phone, "Not provided"),
		"order_type":       orderTypeLabel(d.OrderType),
		"preferred_time":   fallback(d.PreferredTime, "Not specified"),
		"special_notes":    fallback(d.Notes, "None"),
		"order_items":      strings.Join(html, "<br>"),
		"order_items_text": strings.Join(text, ", "),
		"total_price":      strconv.FormatInt(order.Total, 10),
		"order_date":       order.PlacedAt.Format("Monday, January 2, 2006 03:04 PM"),
	}
}

func orderTypeLabel(t domain.OrderType) string {
	if t == domain.OrderTypeOrderAhead {
		return "Order Ahead"
	}
	return "Dine-In"
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
