package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lampParent() *Product {
	return &Product{
		ID:         "lamp",
		Name:       "Foco LED",
		Price:      decimal.NewFromInt(30),
		Attributes: Attributes{}.Add("Color", "Rojo", "Azul").Add("Potencia", "10W", "20W"),
	}
}

func lampVariants() []*Product {
	return []*Product{
		{
			ID:         "lamp-r10",
			ParentID:   "lamp",
			Price:      decimal.NewFromInt(30),
			Attributes: Attributes{}.Add("Color", "Rojo").Add("Potencia", "10W"),
		},
		{
			ID:         "lamp-r20",
			ParentID:   "lamp",
			Price:      decimal.NewFromInt(35),
			Attributes: Attributes{}.Add("Color", "Rojo").Add("Potencia", "20W"),
		},
		{
			ID:         "lamp-a10",
			ParentID:   "lamp",
			Price:      decimal.NewFromInt(32),
			Attributes: Attributes{}.Add("Color", "Azul").Add("Potencia", "10W"),
		},
	}
}

// ============================================
// Option discovery
// ============================================

func TestAvailableOptions_MergesParentAndVariants(t *testing.T) {
	// A legacy parent advertises nothing; its axes live on the variants.
	parent := lampParent()
	parent.Attributes = nil

	options := AvailableOptions(parent, lampVariants())

	require.Len(t, options, 2)
	assert.Equal(t, "Color", options[0].Name)
	assert.Equal(t, []string{"Rojo", "Azul"}, options[0].Values)
	assert.Equal(t, "Potencia", options[1].Name)
	assert.Equal(t, []string{"10W", "20W"}, options[1].Values)
}

func TestAvailableOptions_DeduplicatesValues(t *testing.T) {
	options := AvailableOptions(lampParent(), lampVariants())

	require.Len(t, options, 2)
	assert.Equal(t, []string{"Rojo", "Azul"}, options[0].Values)
}

// ============================================
// Variant matching
// ============================================

func TestMatchVariant_IncrementalSelection(t *testing.T) {
	variants := lampVariants()

	// First pick narrows to the first red variant in insertion order.
	sel := Selection{}.With("Color", "Rojo")
	v, ok := MatchVariant(variants, sel)
	require.True(t, ok)
	assert.Equal(t, "lamp-r10", v.ID)

	// Second pick pins down the unique match.
	sel = sel.With("Potencia", "20W")
	v, ok = MatchVariant(variants, sel)
	require.True(t, ok)
	assert.Equal(t, "lamp-r20", v.ID)
}

func TestMatchVariant_EmptySelection(t *testing.T) {
	_, ok := MatchVariant(lampVariants(), Selection{})
	assert.False(t, ok)
}

func TestMatchVariant_NoCombination(t *testing.T) {
	sel := Selection{"Color": "Azul", "Potencia": "20W"}
	_, ok := MatchVariant(lampVariants(), sel)
	assert.False(t, ok)
}

func TestMatchVariant_SelectionDoesNotMutate(t *testing.T) {
	sel := Selection{"Color": "Rojo"}
	next := sel.With("Potencia", "10W")

	assert.Len(t, sel, 1)
	assert.Len(t, next, 2)
}

// ============================================
// Item resolution
// ============================================

func TestResolveItem_FallsBackToParent(t *testing.T) {
	parent := lampParent()

	// No selection at all.
	item := ResolveItem(parent, lampVariants(), Selection{})
	assert.Same(t, parent, item)

	// Selection no variant satisfies.
	item = ResolveItem(parent, lampVariants(), Selection{"Color": "Verde"})
	assert.Same(t, parent, item)

	// Informational options, no variants at all.
	item = ResolveItem(parent, nil, Selection{"Color": "Rojo"})
	assert.Same(t, parent, item)
}

func TestResolveItem_PicksMatchingVariant(t *testing.T) {
	item := ResolveItem(lampParent(), lampVariants(), Selection{"Color": "Azul", "Potencia": "10W"})
	assert.Equal(t, "lamp-a10", item.ID)
}

// ============================================
// Selection label
// ============================================

func TestSelectionLabel_FollowsAxisOrder(t *testing.T) {
	axes := Attributes{}.Add("Color", "Rojo").Add("Potencia", "10W")
	sel := Selection{"Potencia": "10W", "Color": "Rojo"}

	assert.Equal(t, "Color: Rojo, Potencia: 10W", sel.Label(axes))
}

func TestSelectionLabel_UnknownKeysTrail(t *testing.T) {
	axes := Attributes{}.Add("Color", "Rojo")
	sel := Selection{"Color": "Rojo", "Extra": "x"}

	assert.Equal(t, "Color: Rojo, Extra: x", sel.Label(axes))
}
