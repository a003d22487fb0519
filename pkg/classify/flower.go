package classify

import (
	"strings"

	"menugen/pkg/feed"
)

// Tier is a flower shelf grade.
type Tier string

const (
	Diamond  Tier = "Diamond"
	Platinum Tier = "Platinum"
	Gold     Tier = "Gold"
)

// Tiers lists shelves in menu order.
func Tiers() []Tier {
	return []Tier{Diamond, Platinum, Gold}
}

// ParseTier matches a tier name ignoring case and surrounding whitespace.
func ParseTier(name string) (Tier, bool) {
	name = strings.TrimSpace(name)
	for _, t := range Tiers() {
		if strings.EqualFold(name, string(t)) {
			return t, true
		}
	}
	return "", false
}

// Eligible keeps items with no room information or at least one allowed room.
func (e *Engine) Eligible(item feed.Item) bool {
	if len(item.Rooms) == 0 {
		return true
	}
	for _, room := range item.Rooms {
		if _, ok := e.allowedRooms[room]; ok {
			return true
		}
	}
	return false
}

// Tier reads the item's shelf from its tier name.
func (e *Engine) Tier(item feed.Item) (Tier, bool) {
	return ParseTier(item.TierName)
}

// Pricing returns the configured price lists for a tier.
func (e *Engine) Pricing(t Tier) TierPricing {
	if tp, ok := e.tiers[t]; ok {
		return tp
	}
	return TierPricing{Name: string(t)}
}

// FlowerByTier filters eligible items into tiers, dropping items without a known tier.
func (e *Engine) FlowerByTier(items []feed.Item) map[Tier][]feed.Item {
	out := make(map[Tier][]feed.Item)
	for _, item := range items {
		if !e.Eligible(item) {
			continue
		}
		tier, ok := e.Tier(item)
		if !ok {
			continue
		}
		out[tier] = append(out[tier], item)
	}
	return out
}
