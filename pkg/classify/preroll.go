package classify

import (
	"strings"

	"menugen/pkg/feed"
)

// Category is a preroll menu section.
type Category string

const (
	PlainPrerolls       Category = "Plain Prerolls"
	PlainBlunts         Category = "Plain Blunts"
	InfusedPrerolls     Category = "Infused Prerolls"
	InfusedBlunts       Category = "Infused Blunts"
	Flavored            Category = "Flavored"
	PrerollPacks        Category = "Preroll Packs"
	InfusedPrerollPacks Category = "Infused Preroll Packs"
)

// PrerollCategories lists the categories in menu order.
func PrerollCategories() []Category {
	return []Category{
		PlainPrerolls,
		PlainBlunts,
		InfusedPrerolls,
		InfusedBlunts,
		Flavored,
		PrerollPacks,
		InfusedPrerollPacks,
	}
}

// Milligram reports whether the category's potency is shown in mg.
func (c Category) Milligram() bool {
	return c == Flavored || strings.Contains(strings.ToLower(string(c)), "infused")
}

// PrerollRule is one named step of the preroll chain. Match returns the category
// and true when the rule decides the item.
type PrerollRule struct {
	Name  string
	Match func(f facts, current Category) (Category, bool)
}

// prerollChain builds the primary rules in precedence order. The last rule always matches.
func prerollChain(cfg PrerollRules) []PrerollRule {
	house := strings.ToLower(strings.TrimSpace(cfg.HouseBrand))
	return []PrerollRule{
		{
			Name: "brand-override",
			Match: func(f facts, _ Category) (Category, bool) {
				return InfusedPrerolls, brandIn(f.brand, cfg.AlwaysInfusedBrands)
			},
		},
		{
			Name: "flavored-product-type",
			Match: func(f facts, _ Category) (Category, bool) {
				return Flavored, containsAny(f.productType, "flavored", "combined")
			},
		},
		{
			Name: "house-brand",
			Match: func(f facts, _ Category) (Category, bool) {
				if house == "" || !strings.Contains(f.brand, house) {
					return "", false
				}
				switch {
				case strings.Contains(f.title, "flavored") || strings.Contains(f.productType, "combined"):
					return Flavored, true
				case f.weight >= cfg.HousePackWeight:
					return PrerollPacks, true
				case strings.Contains(f.title, "blunt"):
					return InfusedBlunts, true
				default:
					return InfusedPrerolls, true
				}
			},
		},
		{
			Name: "pack-weight",
			Match: func(f facts, _ Category) (Category, bool) {
				return PrerollPacks, f.weight > cfg.PackWeight
			},
		},
		{
			Name: "infused-blunt-matrix",
			Match: func(f facts, _ Category) (Category, bool) {
				infused := strings.Contains(f.productType, "infused") || brandIn(f.brand, cfg.InfusedBrands)
				blunt := strings.Contains(f.title, "blunt")
				switch {
				case infused && blunt:
					return InfusedBlunts, true
				case infused:
					return InfusedPrerolls, true
				case blunt:
					return PlainBlunts, true
				default:
					return PlainPrerolls, true
				}
			},
		},
	}
}

// prerollReclassification runs after the chain and may move an item to a finer category.
func prerollReclassification(cfg PrerollRules) []PrerollRule {
	return []PrerollRule{
		{
			Name: "infused-pack-brand",
			Match: func(f facts, current Category) (Category, bool) {
				return InfusedPrerollPacks, current == PrerollPacks && brandIn(f.brand, cfg.InfusedPackBrands)
			},
		},
	}
}

// PrerollRules returns the primary chain followed by the reclassification rules.
func (e *Engine) PrerollRules() []PrerollRule {
	out := make([]PrerollRule, 0, len(e.preroll)+len(e.reclassify))
	out = append(out, e.preroll...)
	return append(out, e.reclassify...)
}

// Preroll assigns exactly one category to an item.
func (e *Engine) Preroll(item feed.Item) Category {
	f := factsOf(item)
	category := PlainPrerolls
	for _, rule := range e.preroll {
		if c, ok := rule.Match(f, ""); ok {
			category = c
			break
		}
	}
	for _, rule := range e.reclassify {
		if c, ok := rule.Match(f, category); ok {
			category = c
		}
	}
	return category
}

// Buckets holds preroll items per category in feed order.
type Buckets map[Category][]feed.Item

// Len counts the items across all buckets.
func (b Buckets) Len() int {
	n := 0
	for _, items := range b {
		n += len(items)
	}
	return n
}

// PartitionPrerolls places every item in exactly one bucket.
func (e *Engine) PartitionPrerolls(items []feed.Item) Buckets {
	buckets := make(Buckets)
	for _, item := range items {
		c := e.Preroll(item)
		buckets[c] = append(buckets[c], item)
	}
	return buckets
}
