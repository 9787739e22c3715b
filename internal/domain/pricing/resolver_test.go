package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/storefront/internal/domain/catalog"
)

func productWith(price string, discount string) *catalog.Product {
	p := &catalog.Product{
		ID:    "prod-1",
		Name:  "Lamp",
		Price: decimal.RequireFromString(price),
	}
	if discount != "" {
		d := decimal.RequireFromString(discount)
		p.DiscountPrice = &d
	}
	return p
}

func professional(percent string) *Profile {
	return &Profile{
		Professional:    true,
		DiscountPercent: decimal.RequireFromString(percent),
	}
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual),
		"expected %s, got %s", expected, actual)
}

// ============================================
// Defensive defaults
// ============================================

func TestResolve_NilProduct(t *testing.T) {
	facts := Resolve(nil, professional("20"))

	assertDecimal(t, "0", facts.OriginalPrice)
	assertDecimal(t, "0", facts.FinalPrice)
	assert.False(t, facts.HasDiscount)
	assert.False(t, facts.ProDiscount)
	assert.Zero(t, facts.DiscountShown)
}

func TestResolve_NilViewerIsOrdinary(t *testing.T) {
	facts := Resolve(productWith("100", ""), nil)

	assertDecimal(t, "100", facts.FinalPrice)
	assert.False(t, facts.HasDiscount)
}

func TestResolve_NegativePriceClampsToZero(t *testing.T) {
	facts := Resolve(productWith("-5", ""), nil)

	assertDecimal(t, "0", facts.OriginalPrice)
	assertDecimal(t, "0", facts.FinalPrice)
	assert.False(t, facts.HasDiscount)
}

// ============================================
// Catalog discount
// ============================================

func TestResolve_CatalogDiscount(t *testing.T) {
	facts := Resolve(productWith("100", "75"), nil)

	assertDecimal(t, "100", facts.OriginalPrice)
	assertDecimal(t, "75", facts.FinalPrice)
	assert.True(t, facts.HasDiscount)
	assert.False(t, facts.ProDiscount)
	assert.EqualValues(t, 25, facts.DiscountShown)
}

func TestResolve_CatalogDiscountIgnoredWhenInvalid(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		discount string
	}{
		{"discount equals price", "100", "100"},
		{"discount above price", "100", "120"},
		{"zero discount", "100", "0"},
		{"negative discount", "100", "-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facts := Resolve(productWith(tt.price, tt.discount), nil)
			assertDecimal(t, tt.price, facts.FinalPrice)
			assert.False(t, facts.HasDiscount)
			assert.Zero(t, facts.DiscountShown)
		})
	}
}

func TestResolve_DiscountPercentRounds(t *testing.T) {
	// (100 - 90) / 100 = 10%
	facts := Resolve(productWith("100", "90"), nil)
	assert.EqualValues(t, 10, facts.DiscountShown)

	// (30 - 20) / 30 = 33.33% -> 33
	facts = Resolve(productWith("30", "20"), nil)
	assert.EqualValues(t, 33, facts.DiscountShown)
}

// ============================================
// Professional discount
// ============================================

func TestResolve_ProfessionalBeatsCatalog(t *testing.T) {
	// pro price 80 < public price 90: the professional discount wins and
	// the badge shows the raw professional percent.
	facts := Resolve(productWith("100", "90"), professional("20"))

	assertDecimal(t, "80", facts.FinalPrice)
	assert.True(t, facts.ProDiscount)
	assert.EqualValues(t, 20, facts.DiscountShown)
	assert.True(t, facts.HasDiscount)
}

func TestResolve_CatalogBeatsWeakProfessional(t *testing.T) {
	// pro price 95 >= public price 90: the catalog discount wins and the
	// badge is recomputed from the price delta.
	facts := Resolve(productWith("100", "90"), professional("5"))

	assertDecimal(t, "90", facts.FinalPrice)
	assert.False(t, facts.ProDiscount)
	assert.EqualValues(t, 10, facts.DiscountShown)
	assert.True(t, facts.HasDiscount)
}

func TestResolve_TiePrefersPublicDiscount(t *testing.T) {
	// Both compute to 80; strict < means the public discount is shown.
	facts := Resolve(productWith("100", "80"), professional("20"))

	assertDecimal(t, "80", facts.FinalPrice)
	assert.False(t, facts.ProDiscount)
	assert.EqualValues(t, 20, facts.DiscountShown)
}

func TestResolve_ProfessionalWithoutCatalogDiscount(t *testing.T) {
	facts := Resolve(productWith("200", ""), professional("10"))

	assertDecimal(t, "180", facts.FinalPrice)
	assert.True(t, facts.ProDiscount)
	assert.EqualValues(t, 10, facts.DiscountShown)
}

func TestResolve_ZeroPercentProfessional(t *testing.T) {
	facts := Resolve(productWith("100", ""), professional("0"))

	assertDecimal(t, "100", facts.FinalPrice)
	assert.False(t, facts.ProDiscount)
	assert.False(t, facts.HasDiscount)
}

func TestResolve_PercentOutOfRangeClamps(t *testing.T) {
	facts := Resolve(productWith("100", ""), professional("150"))
	assertDecimal(t, "0", facts.FinalPrice)

	facts = Resolve(productWith("100", ""), professional("-10"))
	assertDecimal(t, "100", facts.FinalPrice)
}

// ============================================
// Invariants
// ============================================

func TestResolve_FinalNeverExceedsOriginal(t *testing.T) {
	prices := []string{"0", "1", "9.99", "100", "2500.50"}
	discounts := []string{"", "0.01", "5", "99", "9999"}
	percents := []string{"0", "1", "21", "50", "99", "100"}

	for _, price := range prices {
		for _, discount := range discounts {
			for _, percent := range percents {
				facts := Resolve(productWith(price, discount), professional(percent))
				require.False(t, facts.FinalPrice.GreaterThan(facts.OriginalPrice),
					"price=%s discount=%s percent=%s: final %s > original %s",
					price, discount, percent, facts.FinalPrice, facts.OriginalPrice)
				require.Equal(t, facts.FinalPrice.LessThan(facts.OriginalPrice), facts.HasDiscount)
			}
		}
	}
}
