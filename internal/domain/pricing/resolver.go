package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/example/storefront/internal/domain/catalog"
)

var (
	zero    = decimal.Zero
	hundred = decimal.NewFromInt(100)
)

// Profile is the slice of a shopper's account the resolver reads. A nil
// profile behaves like an ordinary shopper with no personal discount.
type Profile struct {
	Professional    bool            `json:"professional"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// Facts is the resolved price for one (product, viewer) pair. It is derived
// on every read and never cached across viewers.
type Facts struct {
	OriginalPrice  decimal.Decimal `json:"original_price"`
	FinalPrice     decimal.Decimal `json:"final_price"`
	ProDiscount    bool            `json:"pro_discount"`
	DiscountShown  int64           `json:"discount_percent"`
	HasDiscount    bool            `json:"has_discount"`
}

// Resolve computes the price actually charged to the viewer: the best of the
// catalog discount and the professional discount. A nil product resolves to
// all-zero, no-discount facts rather than an error.
//
// Tie-break: when the professional price equals the public discounted price,
// the public discount wins (strict < comparison), so the badge shown is the
// catalog percentage, not the professional one.
func Resolve(p *catalog.Product, viewer *Profile) Facts {
	if p == nil {
		return Facts{}
	}

	original := p.Price
	if original.IsNegative() {
		original = zero
	}

	catalogDiscount := p.DiscountPrice != nil &&
		p.DiscountPrice.IsPositive() &&
		p.DiscountPrice.LessThan(original)

	public := original
	if catalogDiscount {
		public = *p.DiscountPrice
	}

	facts := Facts{
		OriginalPrice: original,
		FinalPrice:    public,
	}

	if viewer != nil && viewer.Professional {
		pct := clampPercent(viewer.DiscountPercent)
		pro := original.Mul(hundred.Sub(pct)).Div(hundred)
		if pro.LessThan(public) {
			facts.FinalPrice = pro
			facts.ProDiscount = true
			facts.DiscountShown = pct.Round(0).IntPart()
			facts.HasDiscount = facts.FinalPrice.LessThan(original)
			return facts
		}
	}

	if catalogDiscount {
		facts.DiscountShown = percentOff(original, public)
	}
	facts.HasDiscount = facts.FinalPrice.LessThan(original)
	return facts
}

// percentOff is the rounded catalog discount percentage shown to the shopper.
func percentOff(original, final decimal.Decimal) int64 {
	if !original.IsPositive() {
		return 0
	}
	return original.Sub(final).Div(original).Mul(hundred).Round(0).IntPart()
}

func clampPercent(pct decimal.Decimal) decimal.Decimal {
	switch {
	case pct.IsNegative():
		return zero
	case pct.GreaterThan(hundred):
		return hundred
	default:
		return pct
	}
}
