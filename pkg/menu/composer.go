package menu

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"menugen/pkg/classify"
	"menugen/pkg/discount"
	"menugen/pkg/feed"
	"menugen/pkg/layout"
)

// Options are per-document parameters.
type Options struct {
	// FontSize overrides the base font of full-size variants. Zero keeps the default.
	FontSize float64
	// StoreKey scopes discount highlighting. Empty disables it.
	StoreKey string
}

func (o Options) fontSize(def float64) float64 {
	if o.FontSize > 0 {
		return o.FontSize
	}
	return def
}

// Composer builds menu documents with a shared classification engine.
type Composer struct {
	engine   *classify.Engine
	logger   *zap.Logger
	builders map[Variant]builder
}

type builder func(items []feed.Item, opts Options) *layout.Document

// NewComposer wires every variant to its builder.
func NewComposer(engine *classify.Engine, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Composer{engine: engine, logger: logger}
	c.builders = map[Variant]builder{
		Flower:           c.flower,
		Preroll:          c.preroll,
		PrerollCondensed: c.prerollCondensed,
		Cart:             func(items []feed.Item, opts Options) *layout.Document { return c.cartDab("CART MENU", items, opts) },
		CartCondensed:    c.cartCondensed,
		Dab:              func(items []feed.Item, opts Options) *layout.Document { return c.cartDab("DAB MENU", items, opts) },
		DabCondensed:     c.dabCondensed,
		Prepack:          c.prepack,
		PrepackCondensed: c.prepackCondensed,
	}
	return c
}

// Build lays out items for a variant. A document without blocks means nothing qualified.
func (c *Composer) Build(v Variant, items []feed.Item, opts Options) (*layout.Document, error) {
	build, ok := c.builders[v]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, v)
	}
	doc := build(items, opts)
	c.logger.Debug("composed menu",
		zap.String("variant", string(v)),
		zap.Int("items", len(items)),
		zap.Int("blocks", len(doc.Blocks)),
	)
	return doc, nil
}

// Generate builds and renders a variant. Zero-length output means no item qualified.
func (c *Composer) Generate(v Variant, items []feed.Item, opts Options) ([]byte, error) {
	doc, err := c.Build(v, items, opts)
	if err != nil {
		return nil, err
	}
	out, err := layout.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", v, err)
	}
	return out, nil
}

var lineageColors = map[feed.Lineage]layout.Color{
	feed.Sativa:       layout.Red,
	feed.SativaHybrid: layout.Red,
	feed.Hybrid:       layout.Green,
	feed.Indica:       layout.Purple,
	feed.IndicaHybrid: layout.Purple,
	feed.CBD:          layout.Hex(0x292cf0),
}

// lineageColor is black for unknown lineages.
func lineageColor(item feed.Item) layout.Color {
	return lineageColors[feed.LineageOf(item)]
}

// highlight returns the discount background of the item for the store, or nil.
func highlight(item feed.Item, storeKey string) *layout.Color {
	switch discount.LevelFor(item, storeKey) {
	case discount.ThirtyOff:
		return layout.Fill(layout.Yellow)
	case discount.FiftyOff:
		return layout.Fill(layout.LightBlue)
	default:
		return nil
	}
}

var packSizePattern = regexp.MustCompile(`(?i)(\d+)\s*(?:pk|pack)\b`)

// packSize extracts "2" from titles like "Blueberry 2pk" or "2 Pack".
func packSize(title string) string {
	m := packSizePattern.FindStringSubmatch(title)
	if m == nil {
		return ""
	}
	return m[1]
}

// shortTitle drops a leading brand or price prefix ending at the first hyphen.
func shortTitle(title string) string {
	if _, rest, ok := strings.Cut(title, "-"); ok {
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(title)
}

func potencyHeader(milligram bool) []string {
	if milligram {
		return []string{"Product Name", "THC MG", "CBD MG"}
	}
	return []string{"Product Name", "THC %", "CBD %"}
}

var productColumns = []layout.Column{
	{Width: 0.5},
	{Width: 0.25, Align: layout.AlignCenter, HeaderAlign: layout.AlignCenter},
	{Width: 0.25, Align: layout.AlignCenter, HeaderAlign: layout.AlignCenter},
}

// productRow is a name / THC / CBD row colored by lineage.
func productRow(item feed.Item, name string, opts Options) []layout.Cell {
	return []layout.Cell{
		{Text: name, Color: lineageColor(item), Fill: highlight(item, opts.StoreKey)},
		{Text: item.THC.Current.String()},
		{Text: feed.FormatCBD(item.CBD.Current.String())},
	}
}

func productTable(header []string, rows [][]layout.Cell, style layout.TableStyle) layout.Table {
	return layout.Table{Columns: productColumns, Header: header, Rows: rows, Style: style}
}

func priceHeading(brand, unit string, price float64) string {
	return fmt.Sprintf("%s %s $%.2f", brand, unit, price)
}
