package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Option is one selectable axis (e.g. Color) with its allowed values in
// first-seen order.
type Option struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Attributes is the ordered set of option axes on a product. Legacy records
// stored attributes as a JSON object whose values were either a single
// string or an array of strings; both shapes normalize into this one on
// load, so nothing past the data-access boundary branches on shape.
type Attributes []Option

// Get returns the values for an axis.
func (a Attributes) Get(name string) ([]string, bool) {
	for _, opt := range a {
		if opt.Name == name {
			return opt.Values, true
		}
	}
	return nil, false
}

// Has reports whether the axis carries the given value.
func (a Attributes) Has(name, value string) bool {
	values, ok := a.Get(name)
	if !ok {
		return false
	}
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

// Add appends a value to an axis, creating the axis if needed. Duplicate
// values are ignored; axis and value order is first-seen.
func (a Attributes) Add(name string, values ...string) Attributes {
	idx := -1
	for i, opt := range a {
		if opt.Name == name {
			idx = i
			break
		}
	}
	if idx == -1 {
		a = append(a, Option{Name: name})
		idx = len(a) - 1
	}
	for _, v := range values {
		if !a.Has(name, v) {
			a[idx].Values = append(a[idx].Values, v)
		}
	}
	return a
}

// UnmarshalJSON accepts both the canonical array form and the legacy object
// form ({"Color": "Rojo"} or {"Color": ["Rojo", "Azul"]}), preserving key
// order for the legacy form via token-level decoding.
func (a *Attributes) UnmarshalJSON(raw []byte) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*a = nil
		return nil
	}

	if trimmed[0] == '[' {
		var opts []Option
		if err := json.Unmarshal(trimmed, &opts); err != nil {
			return err
		}
		*a = opts
		return nil
	}

	parsed, err := parseLegacyObject(trimmed)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func parseLegacyObject(raw []byte) (Attributes, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("attributes: expected object, got %v", tok)
	}

	var attrs Attributes
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key := keyTok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		attrs = attrs.Add(key, coerceValues(value)...)
	}
	return attrs, nil
}

// coerceValues flattens the legacy single-value / array-of-values union into
// a string slice. Non-string scalars stringify; nulls vanish.
func coerceValues(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return []string{val}
	case []any:
		var out []string
		for _, item := range val {
			out = append(out, coerceValues(item)...)
		}
		return out
	default:
		return []string{fmt.Sprint(val)}
	}
}
