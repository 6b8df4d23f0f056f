package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DraftLine is a denormalized copy of a consolidated line, not a live
// catalog reference. Drafts must stay readable even if the menu changes.
type DraftLine struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// OrderDraft is the durable snapshot of an in-progress paid order, written
// just before redirecting to the hosted checkout so the flow can resume
// after the provider sends the browser back.
type OrderDraft struct {
	Lines            []DraftLine     `json:"lines"`
	Details          CustomerDetails `json:"details"`
	TxRef            string          `json:"tx_ref"`
	CreatedAt        time.Time       `json:"created_at"`
	PaymentCompleted bool            `json:"payment_completed"`
	VerifiedAt       time.Time       `json:"verified_at,omitzero"`
}

func (d OrderDraft) Total() int64 {
	var total int64
	for _, l := range d.Lines {
		total += l.Price * int64(l.Quantity)
	}
	return total
}

const txRefPrefix = "cherish"

// NewTxRef generates a transaction reference unique per payment attempt:
// fixed prefix, millisecond timestamp, random suffix. References are never
// reused across attempts.
func NewTxRef() string {
	return fmt.Sprintf("%s-%d-%s", txRefPrefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}
