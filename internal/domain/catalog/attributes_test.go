package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================
// Legacy shape normalization
// ============================================

func TestAttributes_LegacyObjectWithArrays(t *testing.T) {
	raw := []byte(`{"Color": ["Rojo", "Azul"], "Potencia": ["10W", "20W"]}`)

	var attrs Attributes
	require.NoError(t, json.Unmarshal(raw, &attrs))

	require.Len(t, attrs, 2)
	assert.Equal(t, "Color", attrs[0].Name)
	assert.Equal(t, []string{"Rojo", "Azul"}, attrs[0].Values)
	assert.Equal(t, "Potencia", attrs[1].Name)
	assert.Equal(t, []string{"10W", "20W"}, attrs[1].Values)
}

func TestAttributes_LegacySingleValue(t *testing.T) {
	// Old variant rows stored a bare string per axis.
	raw := []byte(`{"Color": "Rojo", "Potencia": "10W"}`)

	var attrs Attributes
	require.NoError(t, json.Unmarshal(raw, &attrs))

	require.Len(t, attrs, 2)
	assert.Equal(t, []string{"Rojo"}, attrs[0].Values)
	assert.Equal(t, []string{"10W"}, attrs[1].Values)
}

func TestAttributes_LegacyMixedShapes(t *testing.T) {
	raw := []byte(`{"Color": ["Rojo"], "Potencia": "10W", "Voltaje": 220}`)

	var attrs Attributes
	require.NoError(t, json.Unmarshal(raw, &attrs))

	require.Len(t, attrs, 3)
	assert.Equal(t, []string{"Rojo"}, attrs[0].Values)
	assert.Equal(t, []string{"10W"}, attrs[1].Values)
	assert.Equal(t, []string{"220"}, attrs[2].Values)
}

func TestAttributes_KeyOrderPreserved(t *testing.T) {
	raw := []byte(`{"Z": "1", "A": "2", "M": "3"}`)

	var attrs Attributes
	require.NoError(t, json.Unmarshal(raw, &attrs))

	names := []string{attrs[0].Name, attrs[1].Name, attrs[2].Name}
	assert.Equal(t, []string{"Z", "A", "M"}, names)
}

func TestAttributes_CanonicalArrayForm(t *testing.T) {
	raw := []byte(`[{"name": "Color", "values": ["Rojo"]}]`)

	var attrs Attributes
	require.NoError(t, json.Unmarshal(raw, &attrs))

	require.Len(t, attrs, 1)
	assert.Equal(t, "Color", attrs[0].Name)
}

func TestAttributes_NullAndEmpty(t *testing.T) {
	var attrs Attributes
	require.NoError(t, json.Unmarshal([]byte(`null`), &attrs))
	assert.Empty(t, attrs)

	attrs = Attributes{{Name: "x"}}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &attrs))
	assert.Empty(t, attrs)
}

func TestAttributes_RoundTrip(t *testing.T) {
	attrs := Attributes{}.Add("Color", "Rojo", "Azul").Add("Potencia", "10W")

	raw, err := json.Marshal(attrs)
	require.NoError(t, err)

	var back Attributes
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, attrs, back)
}

// ============================================
// Accessors
// ============================================

func TestAttributes_AddDeduplicates(t *testing.T) {
	attrs := Attributes{}.Add("Color", "Rojo").Add("Color", "Rojo", "Azul")

	require.Len(t, attrs, 1)
	assert.Equal(t, []string{"Rojo", "Azul"}, attrs[0].Values)
}

func TestAttributes_Has(t *testing.T) {
	attrs := Attributes{}.Add("Color", "Rojo")

	assert.True(t, attrs.Has("Color", "Rojo"))
	assert.False(t, attrs.Has("Color", "Azul"))
	assert.False(t, attrs.Has("Potencia", "10W"))
}
