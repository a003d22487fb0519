package feed

import (
	"bytes"
	"encoding/json"
	"errors"
)

// document mirrors the nesting of the menu feed payload; every level may be missing.
type document struct {
	MenuFeed *struct {
		MenuGroups []group `json:"menu_groups"`
	} `json:"menu_feed"`
}

type group struct {
	MenuItems []json.RawMessage `json:"menu_items"`
}

// Normalize flattens a raw feed payload into its items in feed order.
// A nil, empty or malformed payload yields an empty list.
func Normalize(raw []byte) []Item {
	items := []Item{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return items
	}

	var doc document
	// Type mismatches leave the offending field at its zero value and are not fatal.
	if err := json.Unmarshal(raw, &doc); err != nil && !isTypeError(err) {
		return items
	}
	if doc.MenuFeed == nil {
		return items
	}

	for _, g := range doc.MenuFeed.MenuGroups {
		for _, rawItem := range g.MenuItems {
			item, ok := decodeItem(rawItem)
			if !ok {
				continue
			}
			items = append(items, item)
		}
	}
	return items
}

// decodeItem reads one item object, keeping whatever fields decode cleanly.
func decodeItem(raw json.RawMessage) (Item, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Item{}, false
	}
	var item Item
	if err := json.Unmarshal(trimmed, &item); err != nil && !isTypeError(err) {
		return Item{}, false
	}
	return item, true
}

func isTypeError(err error) bool {
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &typeErr)
}
