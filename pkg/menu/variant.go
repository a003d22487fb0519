// Package menu composes printable menus from classified feed items.
//
// Each Variant turns items into a layout.Document; Generate renders it.
package menu

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownVariant is returned for menu types outside Variants.
var ErrUnknownVariant = errors.New("unknown menu type")

// Variant is a printable menu type.
type Variant string

const (
	Flower           Variant = "flower"
	Preroll          Variant = "preroll"
	PrerollCondensed Variant = "preroll_condensed"
	Cart             Variant = "cart"
	CartCondensed    Variant = "cart_condensed"
	Dab              Variant = "dab"
	DabCondensed     Variant = "dab_condensed"
	Prepack          Variant = "prepack"
	PrepackCondensed Variant = "prepack_condensed"
)

// Variants lists every menu type in form order.
func Variants() []Variant {
	return []Variant{
		Flower,
		Preroll, PrerollCondensed,
		Cart, CartCondensed,
		Dab, DabCondensed,
		Prepack, PrepackCondensed,
	}
}

// ParseVariant validates a menu type name.
func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Variants() {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Line is the feed product line the variant is built from.
func (v Variant) Line() string {
	line, _, _ := strings.Cut(string(v), "_")
	return line
}

// Condensed reports whether the variant uses fixed dense sizing.
func (v Variant) Condensed() bool {
	return strings.HasSuffix(string(v), "_condensed")
}

// FileName is the download name of the variant for a store.
func (v Variant) FileName(store string) string {
	return fmt.Sprintf("%s_%s_menu.pdf", store, v)
}
