package catalog

import (
	"sort"
	"strings"
)

// Selection is the shopper's running choice of option values, built one
// axis at a time. Selecting an axis never clears other axes.
type Selection map[string]string

// With returns a copy of the selection with one more choice merged in.
func (s Selection) With(name, value string) Selection {
	next := make(Selection, len(s)+1)
	for k, v := range s {
		next[k] = v
	}
	next[name] = value
	return next
}

// Label renders the selection as a display string, ordered by the given
// axes so it is stable across renders. Axes the selection does not cover
// are skipped; selected keys unknown to the axes trail in name order.
func (s Selection) Label(axes Attributes) string {
	var parts []string
	seen := make(map[string]bool, len(s))
	for _, opt := range axes {
		if v, ok := s[opt.Name]; ok {
			parts = append(parts, opt.Name+": "+v)
			seen[opt.Name] = true
		}
	}
	var rest []string
	for k := range s {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		parts = append(parts, k+": "+s[k])
	}
	return strings.Join(parts, ", ")
}

// AvailableOptions merges the parent's advertised axes with any axes found
// on the variants themselves (legacy records advertised options only through
// their children). Values de-duplicate per axis in first-seen order.
func AvailableOptions(parent *Product, variants []*Product) Attributes {
	var merged Attributes
	if parent != nil {
		for _, opt := range parent.Attributes {
			merged = merged.Add(opt.Name, opt.Values...)
		}
	}
	for _, v := range variants {
		for _, opt := range v.Attributes {
			merged = merged.Add(opt.Name, opt.Values...)
		}
	}
	return merged
}

// MatchVariant returns the first variant whose attributes satisfy every
// selected pair exactly. Axes the selection does not mention do not
// disqualify a candidate. An empty selection matches nothing.
func MatchVariant(variants []*Product, sel Selection) (*Product, bool) {
	if len(sel) == 0 {
		return nil, false
	}
	for _, v := range variants {
		if satisfies(v, sel) {
			return v, true
		}
	}
	return nil, false
}

// ResolveItem narrows a catalog entry to the concrete purchasable item: the
// matching variant when the selection pins one down, otherwise the parent
// itself (a product with only informational options has no real variants).
func ResolveItem(parent *Product, variants []*Product, sel Selection) *Product {
	if v, ok := MatchVariant(variants, sel); ok {
		return v
	}
	return parent
}

func satisfies(v *Product, sel Selection) bool {
	for name, value := range sel {
		if !v.Attributes.Has(name, value) {
			return false
		}
	}
	return true
}
