// Package discount decides which promotional highlight, if any, an item gets on a store's menu.
package discount

import (
	"fmt"
	"strings"

	"menugen/pkg/feed"
)

// Level is the promotion tier that drives cell highlighting.
type Level int

const (
	None Level = iota
	ThirtyOff
	FiftyOff
)

// Percent returns the discount percentage of the level.
func (l Level) Percent() int {
	switch l {
	case ThirtyOff:
		return 30
	case FiftyOff:
		return 50
	default:
		return 0
	}
}

// String renders the level for reports.
func (l Level) String() string {
	if l == None {
		return ""
	}
	return fmt.Sprintf("%d%% off", l.Percent())
}

// levels are checked in order; the first match wins.
var levels = []Level{ThirtyOff, FiftyOff}

// Matches reports whether any tag reads "<percent> percent off <storeKey...>", ignoring case.
// Text after the store key, such as a sub-location, is allowed.
func Matches(tags []string, percent int, storeKey string) bool {
	storeKey = strings.ToLower(strings.TrimSpace(storeKey))
	if storeKey == "" {
		return false
	}
	prefix := fmt.Sprintf("%d percent off ", percent)
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		rest, ok := strings.CutPrefix(tag, prefix)
		if !ok {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(rest), storeKey) {
			return true
		}
	}
	return false
}

// LevelFor returns the item's promotion for the store. An empty store key never highlights.
func LevelFor(item feed.Item, storeKey string) Level {
	for _, l := range levels {
		if Matches(item.Tags, l.Percent(), storeKey) {
			return l
		}
	}
	return None
}
