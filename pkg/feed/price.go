package feed

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultUnitSuffix is appended to bare numeric units.
const DefaultUnitSuffix = "g"

var leadingNumber = regexp.MustCompile(`[\d.]+`)

// PriceInfo returns the display unit and the price in dollars of the item's first price entry.
func PriceInfo(item Item) (string, float64) {
	if len(item.Prices) == 0 {
		return "", 0
	}
	first := item.Prices[0]
	unit := strings.TrimSpace(first.Unit.String())
	if unit != "" && !strings.ContainsFunc(unit, unicode.IsLetter) {
		unit += DefaultUnitSuffix
	}
	if !first.Cents.Valid || first.Cents.Value == 0 {
		return unit, 0
	}
	return unit, float64(first.Cents.Value) / 100
}

// PriceCents returns the first price in minor units and whether the feed provided one.
func PriceCents(item Item) (int64, bool) {
	if len(item.Prices) == 0 || !item.Prices[0].Cents.Valid {
		return 0, false
	}
	return item.Prices[0].Cents.Value, true
}

// UnitWeight parses the leading number of the first price unit; anything unparsable is zero.
func UnitWeight(item Item) float64 {
	if len(item.Prices) == 0 {
		return 0
	}
	token := leadingNumber.FindString(strings.ToLower(item.Prices[0].Unit.String()))
	if token == "" {
		return 0
	}
	w, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0
	}
	return w
}

// Weights lists every distinct unit the item sells in, e.g. "1g, 3.5g".
func Weights(item Item) string {
	seen := make(map[string]struct{}, len(item.Prices))
	for _, p := range item.Prices {
		unit := p.Unit.String()
		if unit == "" {
			continue
		}
		seen[unit+unitSuffix(p)] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for w := range seen {
		out = append(out, w)
	}
	sort.Strings(out)
	return strings.Join(out, ", ")
}

// unitSuffix is the first character of unit_type, "g" when the key is
// missing and nothing when it is present but empty.
func unitSuffix(p Price) string {
	unitType := p.UnitType.String()
	if unitType == "" {
		if p.HasUnitType {
			return ""
		}
		return DefaultUnitSuffix
	}
	_, size := utf8.DecodeRuneInString(unitType)
	return unitType[:size]
}

// FormatCBD shows "<LOQ" for an empty or zero reading and the raw value otherwise.
func FormatCBD(raw string) string {
	if raw == "" {
		return "<LOQ"
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil && v == 0 {
		return "<LOQ"
	}
	return raw
}
