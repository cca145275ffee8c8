package services

import (
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/dkazlou/gearhub/internal/client/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// lastAddedTTL is how long the "last added" signal stays visible.
	lastAddedTTL = 2 * time.Second
)

var (
	taxRate     = decimal.RequireFromString("0.08")
	shippingFee = decimal.RequireFromString("5.99")
)

// CartLine is one cart entry. Lines are unique per (item ID, size) pair.
type CartLine struct {
	ID       string
	Item     models.MerchItem
	Size     string // "" for items without a size
	Quantity int
}

// CartService is the in-memory shopping cart. Derived amounts are recomputed
// on every read, never cached.
type CartService struct {
	mu         sync.Mutex
	lines      []CartLine
	lastAdded  string
	clearTimer *time.Timer
	clearGen   uint64
}

func NewCartService() *CartService {
	return &CartService{}
}

// Add puts quantity of item (in the given size) into the cart. A line with
// the same (item ID, size) already present has its quantity incremented
// instead of a duplicate being appended. The "last added" signal is set to
// the item name and scheduled to clear after lastAddedTTL; a previously
// scheduled clear is cancelled so rapid adds don't flicker the signal off.
func (c *CartService) Add(item models.MerchItem, quantity int, size string) {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	merged := false
	for i := range c.lines {
		if c.lines[i].Item.ID == item.ID && c.lines[i].Size == size {
			c.lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		c.lines = append(c.lines, CartLine{
			ID:       uuid.NewString(),
			Item:     item,
			Size:     size,
			Quantity: quantity,
		})
	}

	c.lastAdded = item.Name
	c.clearGen++
	gen := c.clearGen
	if c.clearTimer != nil {
		c.clearTimer.Stop()
	}
	c.clearTimer = time.AfterFunc(lastAddedTTL, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		// a newer Add reschedules the clear; stale timers do nothing
		if c.clearGen == gen {
			c.lastAdded = ""
		}
	})
}

// Remove drops the line with the given ID. Unknown IDs are ignored.
func (c *CartService) Remove(lineID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets a line's quantity, clamped to a minimum of 1. No
// maximum is enforced at this layer.
func (c *CartService) UpdateQuantity(lineID string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart.
func (c *CartService) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Lines returns a copy of the current cart contents.
func (c *CartService) Lines() []CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// LastAdded returns the name of the most recently added item, or "" once the
// signal has expired.
func (c *CartService) LastAdded() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastAdded
}

// parsePrice turns a display price like "$49.99" into a decimal. A leading
// currency symbol is stripped; anything unparseable counts as zero.
func parsePrice(price string) decimal.Decimal {
	s := strings.TrimSpace(price)
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsSymbol(r) || r == '$'
	})
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Subtotal is the sum over lines of parsed price times quantity.
func (c *CartService) Subtotal() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for i := range c.lines {
		line := parsePrice(c.lines[i].Item.Price).Mul(decimal.NewFromInt(int64(c.lines[i].Quantity)))
		total = total.Add(line)
	}
	return total
}

// Tax is a flat 8% of the subtotal.
func (c *CartService) Tax() decimal.Decimal {
	return c.Subtotal().Mul(taxRate)
}

// Shipping is zero for an empty cart, otherwise the flat fee.
func (c *CartService) Shipping() decimal.Decimal {
	c.mu.Lock()
	empty := len(c.lines) == 0
	c.mu.Unlock()

	if empty {
		return decimal.Zero
	}
	return shippingFee
}

// Total is subtotal + tax + shipping.
func (c *CartService) Total() decimal.Decimal {
	return c.Subtotal().Add(c.Tax()).Add(c.Shipping())
}
