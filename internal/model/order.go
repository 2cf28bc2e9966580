package model

import "strings"

// OrderLineItem is a single line of an order under construction.
// Name keeps the display form the caller used; comparisons are done on the
// normalized lowercase form.
type OrderLineItem struct {
	Name     string
	Quantity int
	Notes    []string
}

// NormalizeName lowercases and trims an item name for comparison.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// MatchesName reports whether the line item's name equals the given name,
// case-insensitively.
func (i OrderLineItem) MatchesName(name string) bool {
	return NormalizeName(i.Name) == NormalizeName(name)
}
