package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/cherishcafe/orderflow/internal/domain"
	"github.com/cherishcafe/orderflow/internal/draft"
	"github.com/cherishcafe/orderflow/internal/payments"
)

func pendingDraft() domain.OrderDraft {
	return domain.OrderDraft{
		Lines:     []domain.DraftLine{{ItemID: "latte", Name: "Caffè Latte", Price: 80, Quantity: 1}},
		Details:   validDetails(),
		TxRef:     "cherish-1-abc",
		CreatedAt: time.Now(),
	}
}

func TestCompleteReturn(t *testing.T) {
	t.Run("marks the draft paid on verification", func(t *testing.T) {
		var gotTxRef string
		pc := paymentsStub(t, func(w http.ResponseWriter, r *http.Request) {
			var req map[string]string
			_ = json.NewDecoder(r.Body).Decode(&req)
			gotTxRef = req["tx_ref"]
			_, _ = w.Write([]byte(`{"status":"success","verified":true,"data":{"status":"success"},"message":"Payment verified successfully"}`))
		})
		drafts := draft.NewMemStore()
		_ = drafts.Save(pendingDraft())

		err := CompleteReturn(context.Background(),
			"https://cafe.example/payment-success?tx_ref=cherish-1-abc",
			drafts, pc, discardLogger())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotTxRef != "cherish-1-abc" {
			t.Errorf("expected verify call with tx_ref, got %q", gotTxRef)
		}

		d, _ := drafts.Load()
		if d == nil || !d.PaymentCompleted {
			t.Fatal("expected draft marked paid")
		}
		if d.VerifiedAt.IsZero() {
			t.Error("expected verification timestamp")
		}
	})

	t.Run("accepts the alternate trx_ref parameter", func(t *testing.T) {
		pc := paymentsStub(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"success","verified":true,"data":{"status":"success"}}`))
		})
		drafts := draft.NewMemStore()
		_ = drafts.Save(pendingDraft())

		err := CompleteReturn(context.Background(),
			"https://cafe.example/payment-success?trx_ref=cherish-1-abc",
			drafts, pc, discardLogger())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing reference is an error", func(t *testing.T) {
		err := CompleteReturn(context.Background(),
			"https://cafe.example/payment-success",
			draft.NewMemStore(), nil, discardLogger())
		if !errors.Is(err, ErrNoTxRef) {
			t.Errorf("expected ErrNoTxRef, got %v", err)
		}
	})

	t.Run("unverified payment leaves the draft unpaid", func(t *testing.T) {
		pc := paymentsStub(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"success","verified":false,"message":"Payment not verified"}`))
		})
		drafts := draft.NewMemStore()
		_ = drafts.Save(pendingDraft())

		err := CompleteReturn(context.Background(),
			"https://cafe.example/payment-success?tx_ref=cherish-1-abc",
			drafts, pc, discardLogger())
		if !errors.Is(err, ErrNotVerified) {
			t.Fatalf("expected ErrNotVerified, got %v", err)
		}

		d, _ := drafts.Load()
		if d.PaymentCompleted {
			t.Error("unverified payment must not mark the draft paid")
		}
	})

	t.Run("verification call failure is distinct", func(t *testing.T) {
		pc := payments.NewClient("http://127.0.0.1:1", &http.Client{})
		err := CompleteReturn(context.Background(),
			"https://cafe.example/payment-success?tx_ref=cherish-1-abc",
			draft.NewMemStore(), pc, discardLogger())
		if !errors.Is(err, ErrVerifyFailed) {
			t.Errorf("expected ErrVerifyFailed, got %v", err)
		}
	})
}
