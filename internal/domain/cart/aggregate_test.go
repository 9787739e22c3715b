package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(productID, unit, original string) Line {
	return Line{
		ProductID:         productID,
		Name:              "Product " + productID,
		UnitPrice:         decimal.RequireFromString(unit),
		OriginalUnitPrice: decimal.RequireFromString(original),
	}
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual),
		"expected %s, got %s", expected, actual)
}

// ============================================
// Add
// ============================================

func TestCart_AddMergesQuantityForSameProduct(t *testing.T) {
	c := &Cart{}

	c.Add(line("p1", "10", "10"), 2)
	c.Add(line("p1", "10", "10"), 3)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 5, c.Lines[0].Quantity)
	assert.Equal(t, 5, c.TotalItems())
}

func TestCart_AddKeepsFirstPriceSnapshot(t *testing.T) {
	c := &Cart{}

	c.Add(line("p1", "10", "10"), 1)
	// The catalog price changed before the second add; the recorded
	// snapshot must not move.
	c.Add(line("p1", "12", "12"), 1)

	require.Len(t, c.Lines, 1)
	assertDecimal(t, "10", c.Lines[0].UnitPrice)
	assertDecimal(t, "20", c.TotalPrice())
}

func TestCart_AddClampsQuantityToOne(t *testing.T) {
	c := &Cart{}

	c.Add(line("p1", "10", "10"), 0)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 1, c.Lines[0].Quantity)

	c.Add(line("p2", "10", "10"), -3)
	assert.Equal(t, 1, c.Lines[1].Quantity)
}

func TestCart_AddPreservesInsertionOrder(t *testing.T) {
	c := &Cart{}

	c.Add(line("p2", "1", "1"), 1)
	c.Add(line("p1", "1", "1"), 1)
	c.Add(line("p3", "1", "1"), 1)

	assert.Equal(t, "p2", c.Lines[0].ProductID)
	assert.Equal(t, "p1", c.Lines[1].ProductID)
	assert.Equal(t, "p3", c.Lines[2].ProductID)
}

// ============================================
// Remove / SetQuantity
// ============================================

func TestCart_Remove(t *testing.T) {
	c := &Cart{}
	c.Add(line("p1", "10", "10"), 1)
	c.Add(line("p2", "20", "20"), 1)

	c.Remove("p1")

	require.Len(t, c.Lines, 1)
	assert.Equal(t, "p2", c.Lines[0].ProductID)
}

func TestCart_SetQuantity(t *testing.T) {
	c := &Cart{}
	c.Add(line("p1", "10", "10"), 1)

	c.SetQuantity("p1", 4)
	assert.Equal(t, 4, c.Lines[0].Quantity)
}

func TestCart_SetQuantityBelowOneIsNoop(t *testing.T) {
	c := &Cart{}
	c.Add(line("p1", "10", "10"), 3)

	c.SetQuantity("p1", 0)
	c.SetQuantity("p1", -1)

	// Never auto-removes; the caller must remove explicitly.
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 3, c.Lines[0].Quantity)
}

func TestCart_Clear(t *testing.T) {
	c := &Cart{}
	c.Add(line("p1", "10", "10"), 2)

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.TotalItems())
	assertDecimal(t, "0", c.TotalPrice())
}

// ============================================
// Totals
// ============================================

func TestCart_Totals(t *testing.T) {
	c := &Cart{}
	c.Add(line("p1", "25.50", "30.00"), 2)
	c.Add(line("p2", "10.00", "10.00"), 1)

	assert.Equal(t, 3, c.TotalItems())
	assertDecimal(t, "61.00", c.TotalPrice())
	assertDecimal(t, "70.00", c.TotalOriginal())
	assertDecimal(t, "9.00", c.TotalSavings())
}

func TestCart_TotalOriginalFallsBackToUnitPrice(t *testing.T) {
	c := &Cart{}
	c.Add(Line{ProductID: "p1", UnitPrice: decimal.NewFromInt(10)}, 2)

	assertDecimal(t, "20", c.TotalOriginal())
	assertDecimal(t, "0", c.TotalSavings())
}

func TestCart_SavingsNeverNegative(t *testing.T) {
	c := &Cart{}
	c.Add(line("p1", "80", "100"), 1)
	c.Add(line("p2", "5", "5"), 10)
	c.SetQuantity("p1", 3)
	c.Add(line("p1", "80", "100"), 2)
	c.Remove("p2")

	assert.False(t, c.TotalSavings().IsNegative())
}

// ============================================
// VAT
// ============================================

func TestCart_VATDerivedFromInclusiveTotal(t *testing.T) {
	c := &Cart{}
	c.Add(line("p1", "121.00", "121.00"), 1)

	assertDecimal(t, "100.00", c.NetTotal())
	assertDecimal(t, "21.00", c.VATAmount())
}

func TestCart_VATRounding(t *testing.T) {
	c := &Cart{}
	c.Add(line("p1", "9.99", "9.99"), 1)

	// 9.99 / 1.21 = 8.2562 -> 8.26
	assertDecimal(t, "8.26", c.NetTotal())
	assertDecimal(t, "1.73", c.VATAmount())
	assert.True(t, c.NetTotal().Add(c.VATAmount()).Equal(c.TotalPrice()))
}
