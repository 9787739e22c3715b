package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// VATPercent is the fixed tax rate. Prices are tax-inclusive, so the VAT
// component is derived out of the total, never added on top.
const VATPercent = 21

var (
	hundred    = decimal.NewFromInt(100)
	vatDivisor = decimal.NewFromInt(1).Add(decimal.NewFromInt(VATPercent).Div(hundred))
)

// Line is one cart entry. UnitPrice is whatever the caller resolved at the
// moment of adding; the cart never re-resolves it, so later catalog edits do
// not touch lines already present.
type Line struct {
	ProductID         string          `json:"product_id"`
	Name              string          `json:"name"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	OriginalUnitPrice decimal.Decimal `json:"original_unit_price"`
	Quantity          int             `json:"quantity"`
	Options           string          `json:"options,omitempty"`
}

// Cart is an ordered collection of lines, unique by product id. Totals are
// recomputed on every read.
type Cart struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetCartID returns the cart slot for a user (userID doubles as the key).
func GetCartID(userID string) string {
	return "cart-" + userID
}

// Add appends a line, or sums the quantity onto an existing line with the
// same product id. An existing line keeps its recorded prices. Quantities
// below 1 clamp to 1; bad input never errors here.
func (c *Cart) Add(line Line, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == line.ProductID {
			c.Lines[i].Quantity += quantity
			return
		}
	}
	line.Quantity = quantity
	c.Lines = append(c.Lines, line)
}

// Remove drops the line entirely.
func (c *Cart) Remove(productID string) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces a line's quantity. Values below 1 are a no-op: a
// decrement to zero never auto-removes, the caller must remove explicitly.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity < 1 {
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart. Called exactly once, after a checkout branch has
// durably committed success.
func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// TotalItems is the sum of line quantities.
func (c *Cart) TotalItems() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// TotalPrice is the tax-inclusive amount actually charged.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// TotalOriginal is the undiscounted amount; lines without a recorded
// original fall back to their unit price.
func (c *Cart) TotalOriginal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		unit := l.OriginalUnitPrice
		if unit.IsZero() {
			unit = l.UnitPrice
		}
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// TotalSavings is what the applied discounts took off the original total.
func (c *Cart) TotalSavings() decimal.Decimal {
	return c.TotalOriginal().Sub(c.TotalPrice())
}

// NetTotal is the total with the VAT component stripped out.
func (c *Cart) NetTotal() decimal.Decimal {
	return c.TotalPrice().Div(vatDivisor).Round(2)
}

// VATAmount is the tax share of the tax-inclusive total.
func (c *Cart) VATAmount() decimal.Decimal {
	return c.TotalPrice().Sub(c.NetTotal())
}
