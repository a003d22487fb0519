package classify

import (
	"strings"

	"menugen/pkg/feed"
)

// Designation is the prepack section an item belongs to.
type Designation int

const (
	Regular Designation = iota
	Shake
	LastOfFlower
)

// String returns the designation label.
func (d Designation) String() string {
	switch d {
	case Shake:
		return "Shake"
	case LastOfFlower:
		return "Last of Flower / As Is"
	default:
		return "Regular"
	}
}

// Designation checks Last of Flower / As Is before Shake.
func (e *Engine) Designation(item feed.Item) Designation {
	name := strings.ToLower(item.Name)
	switch {
	case strings.Contains(name, "last of flower") && strings.Contains(name, "as is"):
		return LastOfFlower
	case strings.Contains(name, "shake"):
		return Shake
	default:
		return Regular
	}
}
