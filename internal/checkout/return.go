package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/cherishcafe/orderflow/internal/draft"
	"github.com/cherishcafe/orderflow/internal/payments"
)

var (
	ErrNoTxRef      = errors.New("no transaction reference found in return URL")
	ErrNotVerified  = errors.New("payment could not be verified")
	ErrVerifyFailed = errors.New("verification failed, please contact the café if payment was deducted")
)

// CompleteReturn handles the provider's redirect back: it extracts the
// transaction reference from the return URL (the provider uses either
// tx_ref or trx_ref), verifies the payment through the payment service,
// and on success marks the persisted draft as paid so the next flow
// initialization resumes it.
func CompleteReturn(ctx context.Context, returnURL string, drafts draft.Store, pc *payments.Client, logger *slog.Logger) error {
	u, err := url.Parse(returnURL)
	if err != nil {
		return fmt.Errorf("parse return URL: %w", err)
	}
	txRef := u.Query().Get("tx_ref")
	if txRef == "" {
		txRef = u.Query().Get("trx_ref")
	}
	if txRef == "" {
		return ErrNoTxRef
	}

	resp, err := pc.Verify(ctx, txRef)
	if err != nil {
		logger.Error("payment verification call failed", "error", err, "tx_ref", txRef)
		return fmt.Errorf("%w: %v", ErrVerifyFailed, err)
	}
	if !resp.Verified {
		logger.Info("payment not verified", "tx_ref", txRef, "status", resp.Status)
		if resp.Message != "" {
			return fmt.Errorf("%w: %s", ErrNotVerified, resp.Message)
		}
		return ErrNotVerified
	}

	d, err := drafts.Load()
	if err != nil {
		return fmt.Errorf("load order draft: %w", err)
	}
	if d != nil {
		d.PaymentCompleted = true
		d.TxRef = txRef
		d.VerifiedAt = time.Now()
		if err := drafts.Save(*d); err != nil {
			return fmt.Errorf("mark draft paid: %w", err)
		}
	}

	logger.Info("payment verified", "tx_ref", txRef)
	return nil
}
