package feed

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Item is a single product record from a menu feed. Downstream stages read it but never write to it.
type Item struct {
	ID          Text     `json:"id"`
	Name        string   `json:"name"`
	Strain      string   `json:"strain"`
	Brand       string   `json:"brand"`
	ProductType string   `json:"product_type"`
	FlowerType  Text     `json:"flower_type"`
	Prices      []Price  `json:"prices"`
	THC         Potency  `json:"thc"`
	CBD         Potency  `json:"cbd"`
	Tags        []string `json:"tag_list"`
	Rooms       []string `json:"rooms"`
	TierName    string   `json:"tier_name"`
}

// Price is one sellable unit of an item.
type Price struct {
	Unit     Text   `json:"unit"`
	UnitType Text   `json:"unit_type"`
	Cents    Amount `json:"price_cents"`

	// HasUnitType is set when the feed carried a unit_type key, even an empty or null one.
	HasUnitType bool `json:"-"`
}

// UnmarshalJSON decodes the price and records whether unit_type was present.
func (p *Price) UnmarshalJSON(data []byte) error {
	type plain Price
	var v plain
	if err := json.Unmarshal(data, &v); err != nil && !isTypeError(err) {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err == nil {
		_, v.HasUnitType = keys["unit_type"]
	}
	*p = Price(v)
	return nil
}

// Potency carries the free-text lab value the feed reports for a cannabinoid.
type Potency struct {
	Current Text `json:"current"`
}

// Text decodes any JSON scalar into a string so numeric units or ids never break decoding.
type Text string

// UnmarshalJSON accepts strings, numbers, booleans and null; composite values decode to an empty string.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case '{', '[':
		*t = ""
	default:
		*t = Text(data)
	}
	return nil
}

// String returns the raw text.
func (t Text) String() string { return string(t) }

// Amount is an integer count of minor currency units that remembers whether the feed supplied it.
type Amount struct {
	Value int64
	Valid bool
}

// UnmarshalJSON accepts integers, decimal numbers, numeric strings and null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount{}
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		return nil
	}
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*a = Amount{Value: v, Valid: true}
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		*a = Amount{Value: int64(f), Valid: true}
	}
	return nil
}

// MarshalJSON writes the value or null so reports round-trip the feed's intent.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(a.Value, 10)), nil
}
