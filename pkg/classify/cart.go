package classify

import (
	"strings"

	"menugen/pkg/feed"
)

// CartSection is a condensed cart menu bucket.
type CartSection int

const (
	PlainCart CartSection = iota
	FlavoredCart
	DisposableCart
	FlavoredDisposableCart
)

// String returns the section heading.
func (s CartSection) String() string {
	switch s {
	case FlavoredCart:
		return "FLAVORED CARTS"
	case DisposableCart:
		return "DISPOSABLES"
	case FlavoredDisposableCart:
		return "FLAVORED DISPOSABLES"
	default:
		return "CARTS"
	}
}

// IsMilligram reports whether the item's potency is printed in mg rather than percent.
func (e *Engine) IsMilligram(item feed.Item) bool {
	f := factsOf(item)
	terms := []string{"flavored", "combined", "concentrate"}
	return containsAny(f.productType, terms...) || containsAny(f.name, terms...)
}

// IsFlavored reports flavored or combined items, except for excluded brands.
func (e *Engine) IsFlavored(item feed.Item) bool {
	f := factsOf(item)
	if brandIn(f.brand, e.rules.Cart.FlavoredExcludedBrands) {
		return false
	}
	return containsAny(f.productType, "flavored", "combined") || containsAny(f.name, "flavored", "combined")
}

// IsDisposable reports items whose name marks them as a disposable device.
func (e *Engine) IsDisposable(item feed.Item) bool {
	name := strings.ToLower(item.Name)
	return containsAny(name, e.rules.Cart.DisposableKeywords...)
}

// CartSection picks the condensed bucket; the disposable and flavored predicates are tested in that order.
func (e *Engine) CartSection(item feed.Item) CartSection {
	disposable := e.IsDisposable(item)
	flavored := e.IsFlavored(item)
	switch {
	case disposable && flavored:
		return FlavoredDisposableCart
	case disposable:
		return DisposableCart
	case flavored:
		return FlavoredCart
	default:
		return PlainCart
	}
}
