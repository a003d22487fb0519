package feed

import "strings"

// Lineage is the short display code for a strain's genetic classification.
type Lineage string

const (
	Sativa       Lineage = "S"
	SativaHybrid Lineage = "SH"
	Hybrid       Lineage = "H"
	Indica       Lineage = "I"
	IndicaHybrid Lineage = "IH"
	CBD          Lineage = "CBD"
	Unknown      Lineage = ""
)

// unknownWeight places unrecognized lineages after every known one.
const unknownWeight = 99

var lineageByFlowerType = map[string]Lineage{
	"sativa":        Sativa,
	"sativa_hybrid": SativaHybrid,
	"hybrid":        Hybrid,
	"indica":        Indica,
	"indica_hybrid": IndicaHybrid,
	"cbd":           CBD,
}

var lineageWeights = map[Lineage]float64{
	Sativa:       0,
	SativaHybrid: 0.5,
	Hybrid:       1,
	Indica:       2,
	IndicaHybrid: 2.5,
	CBD:          3,
}

// Lineages lists the known codes in display order.
func Lineages() []Lineage {
	return []Lineage{Sativa, SativaHybrid, Hybrid, Indica, IndicaHybrid, CBD}
}

// LineageOf maps the item's raw flower type to its code, or Unknown when absent or unrecognized.
func LineageOf(item Item) Lineage {
	key := strings.ToLower(strings.TrimSpace(item.FlowerType.String()))
	return lineageByFlowerType[key]
}

// Weight is the lineage sort key.
func (l Lineage) Weight() float64 {
	if w, ok := lineageWeights[l]; ok {
		return w
	}
	return unknownWeight
}
