// Package checkout drives the order flow from cart review through details
// entry, optional online payment, and confirmation. A draft persisted just
// before the payment redirect lets the flow resume after the browser
// round-trips through the hosted checkout.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cherishcafe/orderflow/internal/cart"
	"github.com/cherishcafe/orderflow/internal/domain"
	"github.com/cherishcafe/orderflow/internal/draft"
	"github.com/cherishcafe/orderflow/internal/notify"
	"github.com/cherishcafe/orderflow/internal/payments"
)

type Step string

const (
	StepCart         Step = "cart"
	StepDetails      Step = "details"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrWrongStep          = errors.New("operation not valid in current step")
	ErrNotificationFailed = errors.New("order notification failed, please retry or contact the café directly")
)

// allowed lists the legal step transitions. Every mutation goes through
// advance so an illegal jump fails instead of corrupting the flow.
var allowed = map[Step][]Step{
	StepCart:         {StepDetails},
	StepDetails:      {StepCart, StepPayment, StepConfirmation},
	StepPayment:      {StepDetails},
	StepConfirmation: {StepCart},
}

type Flow struct {
	step    Step
	details domain.CustomerDetails
	paid    bool

	cart     *cart.Cart
	drafts   draft.Store
	payments *payments.Client
	notifier notify.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// New builds a flow at the cart step and immediately attempts a resume: a
// persisted draft marked paid restores the customer details, deletes the
// draft, and lands directly in the details step.
func New(c *cart.Cart, drafts draft.Store, pc *payments.Client, notifier notify.Notifier, logger *slog.Logger) (*Flow, error) {
	f := &Flow{
		step:     StepCart,
		details:  domain.DefaultDetails(),
		cart:     c,
		drafts:   drafts,
		payments: pc,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
	if err := f.resume(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Flow) Step() Step                      { return f.step }
func (f *Flow) Details() domain.CustomerDetails { return f.details }
func (f *Flow) Paid() bool                      { return f.paid }

func (f *Flow) advance(to Step) error {
	for _, s := range allowed[f.step] {
		if s == to {
			f.step = to
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrWrongStep, f.step, to)
}

// ContinueToDetails moves from cart review to details entry. The only
// guard is a non-empty cart.
func (f *Flow) ContinueToDetails() error {
	if f.step != StepCart {
		return fmt.Errorf("%w: %s", ErrWrongStep, f.step)
	}
	if f.cart.Len() == 0 {
		return ErrEmptyCart
	}
	return f.advance(StepDetails)
}

// SubmitDetails validates and stores the customer details, then either
// enters the payment step (pay-online, not yet paid) or finalizes the
// order directly (pay-at-venue, or returning from a completed payment).
func (f *Flow) SubmitDetails(ctx context.Context, details domain.CustomerDetails) error {
	if f.step != StepDetails {
		return fmt.Errorf("%w: %s", ErrWrongStep, f.step)
	}
	if err := details.Validate(); err != nil {
		return err
	}
	f.details = details

	if details.PaymentOption == domain.PayOnline && !f.paid {
		return f.advance(StepPayment)
	}
	return f.finalize(ctx)
}

// finalize dispatches both order notifications synchronously before
// advancing. On failure the flow stays in details and nothing is cleared,
// so a retry needs no re-entry of customer data.
func (f *Flow) finalize(ctx context.Context) error {
	order := notify.Order{
		Details:  f.details,
		Lines:    f.cart.Consolidated(),
		Total:    f.cart.Total(),
		PlacedAt: f.now(),
	}
	if err := f.notifier.NotifyOrder(ctx, order); err != nil {
		f.logger.Error("order notification failed", "error", err)
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	f.logger.Info("order finalized", "customer", f.details.Email, "total", order.Total, "paid_online", f.paid)
	return f.advance(StepConfirmation)
}

// BackToCart returns from details to cart review.
func (f *Flow) BackToCart() error {
	if f.step != StepDetails {
		return fmt.Errorf("%w: %s", ErrWrongStep, f.step)
	}
	return f.advance(StepCart)
}

// BackToDetails leaves the payment step. A draft persisted on a previous
// payment attempt stays on disk.
func (f *Flow) BackToDetails() error {
	if f.step != StepPayment {
		return fmt.Errorf("%w: %s", ErrWrongStep, f.step)
	}
	return f.advance(StepDetails)
}

// ProceedToPayment persists the order draft, asks the payment service for
// a hosted checkout URL, and returns it for the caller to navigate to.
// On failure the flow stays in the payment step and the draft is kept.
func (f *Flow) ProceedToPayment(ctx context.Context) (string, error) {
	if f.step != StepPayment {
		return "", fmt.Errorf("%w: %s", ErrWrongStep, f.step)
	}

	lines := f.cart.Consolidated()
	d := domain.OrderDraft{
		Lines:     make([]domain.DraftLine, 0, len(lines)),
		Details:   f.details,
		TxRef:     domain.NewTxRef(),
		CreatedAt: f.now(),
	}
	var items []string
	for _, line := range lines {
		d.Lines = append(d.Lines, domain.DraftLine{
			ItemID:   line.Item.ID,
			Name:     line.Item.Name,
			Price:    line.Item.Price,
			Quantity: line.Quantity,
		})
		items = append(items, fmt.Sprintf("%dx %s", line.Quantity, line.Item.Name))
	}

	if err := f.drafts.Save(d); err != nil {
		return "", fmt.Errorf("persist order draft: %w", err)
	}

	first, last := splitName(f.details.Name)
	resp, err := f.payments.Initiate(ctx, payments.InitiateRequest{
		Amount:     f.cart.Total(),
		Email:      f.details.Email,
		FirstName:  first,
		LastName:   last,
		Phone:      f.details.Phone,
		TxRef:      d.TxRef,
		OrderItems: strings.Join(items, ", "),
	})
	if err != nil {
		f.logger.Error("payment initiation failed", "error", err, "tx_ref", d.TxRef)
		return "", err
	}

	f.logger.Info("redirecting to hosted checkout", "tx_ref", d.TxRef)
	return resp.CheckoutURL, nil
}

// Reset closes a confirmed order: cart emptied, draft deleted, form back
// to defaults, flow back at the cart step.
func (f *Flow) Reset() error {
	if f.step != StepConfirmation {
		return fmt.Errorf("%w: %s", ErrWrongStep, f.step)
	}
	f.cart.Clear()
	if err := f.drafts.Delete(); err != nil {
		return err
	}
	f.details = domain.DefaultDetails()
	f.paid = false
	return f.advance(StepCart)
}

// resume handles the post-redirect re-initialization: a draft with payment
// completed restores its details, marks the session paid, deletes the
// draft, and skips straight to the details step for final confirmation.
// An unpaid draft is left alone.
func (f *Flow) resume() error {
	d, err := f.drafts.Load()
	if err != nil {
		return fmt.Errorf("load order draft: %w", err)
	}
	if d == nil || !d.PaymentCompleted {
		return nil
	}

	f.details = d.Details
	f.paid = true
	f.step = StepDetails
	if err := f.drafts.Delete(); err != nil {
		return fmt.Errorf("clear resumed draft: %w", err)
	}
	f.logger.Info("payment confirmed, order resumed", "tx_ref", d.TxRef, "customer", d.Details.Email)
	return nil
}

// splitName divides a full name into the first/last fields the payment
// provider expects; a single word becomes the first name only.
func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
