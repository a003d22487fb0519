// Package classify assigns feed items to menu categories for each product line.
//
// Every decision is a pure function of the item and the read-only Rules, so an
// Engine can be shared by concurrent generations.
package classify

import (
	"strings"

	"menugen/pkg/feed"
)

// Rules holds the store-independent keyword, brand and threshold tables.
type Rules struct {
	Preroll PrerollRules `yaml:"preroll"`
	Cart    CartRules    `yaml:"cart"`
	Flower  FlowerRules  `yaml:"flower"`
}

// PrerollRules configures the preroll rule chain.
type PrerollRules struct {
	// AlwaysInfusedBrands are classified Infused Prerolls regardless of any other signal.
	AlwaysInfusedBrands []string `yaml:"always_infused_brands"`
	// InfusedBrands count as infused even when the product type does not say so.
	InfusedBrands []string `yaml:"infused_brands"`
	// HouseBrand names a brand family with its own sub-chain; matched as a substring.
	HouseBrand string `yaml:"house_brand"`
	// HousePackWeight is the unit weight from which house-brand items become packs.
	HousePackWeight float64 `yaml:"house_pack_weight"`
	// PackWeight is the unit weight above which any item becomes a pack.
	PackWeight float64 `yaml:"pack_weight"`
	// InfusedPackBrands move their Preroll Packs into Infused Preroll Packs.
	InfusedPackBrands []string `yaml:"infused_pack_brands"`
}

// CartRules configures cart and dab predicates.
type CartRules struct {
	FlavoredExcludedBrands []string `yaml:"flavored_excluded_brands"`
	DisposableKeywords     []string `yaml:"disposable_keywords"`
}

// FlowerRules configures flower eligibility and shelf pricing.
type FlowerRules struct {
	AllowedRooms []string      `yaml:"allowed_rooms"`
	Tiers        []TierPricing `yaml:"tiers"`
}

// TierPricing is the fixed price list printed under a shelf heading.
type TierPricing struct {
	Name string `yaml:"name"`
	REC  string `yaml:"rec"`
	MED  string `yaml:"med"`
}

// Engine evaluates Rules against items.
type Engine struct {
	rules        Rules
	preroll      []PrerollRule
	reclassify   []PrerollRule
	allowedRooms map[string]struct{}
	tiers        map[Tier]TierPricing
}

// NewEngine compiles rules into an engine.
func NewEngine(rules Rules) *Engine {
	e := &Engine{
		rules:        rules,
		allowedRooms: make(map[string]struct{}, len(rules.Flower.AllowedRooms)),
		tiers:        make(map[Tier]TierPricing, len(rules.Flower.Tiers)),
	}
	for _, room := range rules.Flower.AllowedRooms {
		e.allowedRooms[room] = struct{}{}
	}
	for _, tp := range rules.Flower.Tiers {
		if tier, ok := ParseTier(tp.Name); ok {
			e.tiers[tier] = tp
		}
	}
	e.preroll = prerollChain(rules.Preroll)
	e.reclassify = prerollReclassification(rules.Preroll)
	return e
}

// facts are the lower-cased item fields the rules inspect.
type facts struct {
	title       string
	name        string
	productType string
	brand       string
	weight      float64
}

func factsOf(item feed.Item) facts {
	title := item.Name
	if title == "" {
		title = item.Strain
	}
	return facts{
		title:       strings.ToLower(title),
		name:        strings.ToLower(item.Name),
		productType: strings.ToLower(item.ProductType),
		brand:       strings.ToLower(strings.TrimSpace(item.Brand)),
		weight:      feed.UnitWeight(item),
	}
}

// containsAny reports whether s contains any of the terms.
func containsAny(s string, terms ...string) bool {
	for _, term := range terms {
		if term != "" && strings.Contains(s, term) {
			return true
		}
	}
	return false
}

// brandIn compares a lower-cased brand against a configured list case-insensitively.
func brandIn(brand string, brands []string) bool {
	for _, b := range brands {
		if strings.EqualFold(strings.TrimSpace(b), brand) {
			return true
		}
	}
	return false
}

// Label describes how an item classifies for the given product line.
func (e *Engine) Label(line string, item feed.Item) string {
	switch line {
	case "preroll":
		return string(e.Preroll(item))
	case "cart", "dab":
		return e.CartSection(item).String()
	case "prepack":
		return e.Designation(item).String()
	case "flower":
		if !e.Eligible(item) {
			return "Not On Floor"
		}
		if tier, ok := e.Tier(item); ok {
			return string(tier)
		}
		return "No Tier"
	default:
		return ""
	}
}
