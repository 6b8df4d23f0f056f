// Package cart accumulates catalog item references by user action: an
// ordered multiset with one entry per unit added.
package cart

import (
	"fmt"

	"github.com/cherishcafe/orderflow/internal/catalog"
	"github.com/cherishcafe/orderflow/internal/domain"
)

// ErrUnknownItem is returned when an item id does not resolve to a catalog
// item. The UI only offers catalog-backed actions, but the contract is
// enforced here anyway.
var ErrUnknownItem = fmt.Errorf("unknown catalog item")

type Cart struct {
	catalog *catalog.Catalog
	entries []string
}

func New(c *catalog.Catalog) *Cart {
	return &Cart{catalog: c}
}

// Add appends one entry referencing itemID.
func (c *Cart) Add(itemID string) error {
	if _, ok := c.catalog.ByID(itemID); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, itemID)
	}
	c.entries = append(c.entries, itemID)
	return nil
}

// RemoveOne removes exactly one entry matching itemID; entries for the same
// item are fungible, so the first match goes. No-op when none present.
func (c *Cart) RemoveOne(itemID string) {
	for i, id := range c.entries {
		if id == itemID {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.entries = nil
}

func (c *Cart) Len() int {
	return len(c.entries)
}

// Consolidated groups entries by item id in first-occurrence order.
// Re-adding a present item bumps its quantity without moving its line.
func (c *Cart) Consolidated() []domain.ConsolidatedLine {
	var lines []domain.ConsolidatedLine
	index := make(map[string]int)
	for _, id := range c.entries {
		if i, ok := index[id]; ok {
			lines[i].Quantity++
			continue
		}
		item, _ := c.catalog.ByID(id)
		index[id] = len(lines)
		lines = append(lines, domain.ConsolidatedLine{Item: item, Quantity: 1})
	}
	return lines
}

// Total sums price × quantity over the consolidated lines. It always equals
// the sum of every individual entry's resolved price.
func (c *Cart) Total() int64 {
	var total int64
	for _, line := range c.Consolidated() {
		total += line.Subtotal()
	}
	return total
}
