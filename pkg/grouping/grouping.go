// Package grouping bundles classified items under subheadings and orders them deterministically.
package grouping

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"menugen/pkg/feed"
)

// missingPriceCents sorts items without a price after every priced item.
const missingPriceCents = 999999

// Group is a (brand, unit) bundle of prerolls.
type Group struct {
	Brand string
	Unit  string
	Items []feed.Item
}

// MinPrice is the lowest first-entry price in the group.
func (g Group) MinPrice() float64 {
	if len(g.Items) == 0 {
		return math.MaxFloat64
	}
	low := math.MaxFloat64
	for _, item := range g.Items {
		_, price := feed.PriceInfo(item)
		low = min(low, price)
	}
	return low
}

// PricedGroup is a (brand, unit, price) bundle of carts or dabs.
type PricedGroup struct {
	Brand string
	Unit  string
	Price float64
	Items []feed.Item
}

type brandUnit struct {
	brand string
	unit  string
}

type brandUnitPrice struct {
	brand string
	unit  string
	price float64
}

// ByBrandUnit groups items by trimmed brand and display unit. Groups are ordered by
// (lowest price, brand, unit) and items inside a group by CompareItems.
func ByBrandUnit(items []feed.Item) []Group {
	index := make(map[brandUnit]int)
	var groups []Group
	for _, item := range items {
		unit, _ := feed.PriceInfo(item)
		key := brandUnit{brand: strings.TrimSpace(item.Brand), unit: unit}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Brand: key.brand, Unit: key.unit})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	for i := range groups {
		groups[i].Items = SortItems(groups[i].Items)
	}
	slices.SortStableFunc(groups, func(a, b Group) int {
		return cmp.Or(
			cmp.Compare(a.MinPrice(), b.MinPrice()),
			cmp.Compare(strings.ToLower(a.Brand), strings.ToLower(b.Brand)),
			cmp.Compare(strings.ToLower(a.Unit), strings.ToLower(b.Unit)),
		)
	})
	return groups
}

// ByBrandUnitPrice groups items by brand, unit and price; price is part of the key.
func ByBrandUnitPrice(items []feed.Item) []PricedGroup {
	index := make(map[brandUnitPrice]int)
	var groups []PricedGroup
	for _, item := range items {
		unit, price := feed.PriceInfo(item)
		key := brandUnitPrice{brand: strings.TrimSpace(item.Brand), unit: unit, price: price}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, PricedGroup{Brand: key.brand, Unit: key.unit, Price: key.price})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	for i := range groups {
		groups[i].Items = SortItems(groups[i].Items)
	}
	slices.SortStableFunc(groups, func(a, b PricedGroup) int {
		return cmp.Or(
			cmp.Compare(a.Price, b.Price),
			cmp.Compare(strings.ToLower(a.Brand), strings.ToLower(b.Brand)),
			cmp.Compare(strings.ToLower(a.Unit), strings.ToLower(b.Unit)),
		)
	})
	return groups
}

// CompareItems orders by price, lineage weight, then lower-cased strain.
func CompareItems(a, b feed.Item) int {
	_, pa := feed.PriceInfo(a)
	_, pb := feed.PriceInfo(b)
	return cmp.Or(
		cmp.Compare(pa, pb),
		cmp.Compare(feed.LineageOf(a).Weight(), feed.LineageOf(b).Weight()),
		cmp.Compare(strings.ToLower(a.Strain), strings.ToLower(b.Strain)),
	)
}

// SortItems returns a stably sorted copy using CompareItems.
func SortItems(items []feed.Item) []feed.Item {
	out := slices.Clone(items)
	slices.SortStableFunc(out, CompareItems)
	return out
}

func centsOrSentinel(item feed.Item) int64 {
	if cents, ok := feed.PriceCents(item); ok {
		return cents
	}
	return missingPriceCents
}

// SortPrepack returns a copy ordered by (price cents, lineage weight, strain).
func SortPrepack(items []feed.Item) []feed.Item {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b feed.Item) int {
		return cmp.Or(
			cmp.Compare(centsOrSentinel(a), centsOrSentinel(b)),
			cmp.Compare(feed.LineageOf(a).Weight(), feed.LineageOf(b).Weight()),
			cmp.Compare(strings.ToLower(strings.TrimSpace(a.Strain)), strings.ToLower(strings.TrimSpace(b.Strain))),
		)
	})
	return out
}

// SortFlower returns a copy ordered by (price cents, lineage weight, name, brand, id).
func SortFlower(items []feed.Item) []feed.Item {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b feed.Item) int {
		return cmp.Or(
			cmp.Compare(centsOrSentinel(a), centsOrSentinel(b)),
			cmp.Compare(feed.LineageOf(a).Weight(), feed.LineageOf(b).Weight()),
			cmp.Compare(strings.ToLower(strings.TrimSpace(a.Name)), strings.ToLower(strings.TrimSpace(b.Name))),
			cmp.Compare(strings.ToLower(strings.TrimSpace(a.Brand)), strings.ToLower(strings.TrimSpace(b.Brand))),
			cmp.Compare(a.ID.String(), b.ID.String()),
		)
	})
	return out
}
