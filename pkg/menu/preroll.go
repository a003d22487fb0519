package menu

import (
	"menugen/pkg/classify"
	"menugen/pkg/feed"
	"menugen/pkg/grouping"
	"menugen/pkg/layout"
)

// prerollSizing is the typography of one preroll layout.
type prerollSizing struct {
	category      layout.TextStyle
	subheading    layout.TextStyle
	table         layout.TableStyle
	afterTitle    float64
	afterSub      float64
	afterTable    float64
	afterCategory float64
	breakBefore   map[classify.Category]bool
	// keepCategory wraps a whole category in one keep-together group.
	keepCategory bool
}

func (c *Composer) preroll(items []feed.Item, opts Options) *layout.Document {
	fs := opts.fontSize(12)
	return c.prerollDocument(layout.FullTwoColumn, items, opts, prerollSizing{
		category:   layout.TextStyle{Size: fs + 4, Bold: true, Align: layout.AlignCenter},
		subheading: layout.TextStyle{Size: fs + 2, Bold: true},
		table: layout.TableStyle{
			FontSize: fs, PadX: 6, PadY: 3, GridWidth: 0.25,
			HeaderFill: layout.Fill(layout.Grey),
		},
		afterTitle: 12, afterSub: 6, afterTable: 12, afterCategory: 24,
		keepCategory: true,
	})
}

func (c *Composer) prerollCondensed(items []feed.Item, opts Options) *layout.Document {
	const base = 9
	return c.prerollDocument(layout.CondensedTwoColumn, items, opts, prerollSizing{
		category:   layout.TextStyle{Size: base + 3, Leading: base + 4, Bold: true, Align: layout.AlignCenter},
		subheading: layout.TextStyle{Size: base + 1, Leading: base + 2, Bold: true},
		table: layout.TableStyle{
			FontSize: base, PadX: 1, PadY: 0.5, GridWidth: 0.25,
			HeaderFill: layout.Fill(layout.Grey),
		},
		afterTitle: 2, afterSub: 2, afterTable: 4, afterCategory: 8,
		breakBefore: map[classify.Category]bool{
			classify.InfusedPrerolls: true,
			classify.PrerollPacks:    true,
		},
	})
}

func (c *Composer) prerollDocument(l layout.Layout, items []feed.Item, opts Options, s prerollSizing) *layout.Document {
	doc := layout.NewDocument(l, "Preroll Menu")
	buckets := c.engine.PartitionPrerolls(items)

	for _, cat := range classify.PrerollCategories() {
		bucket := buckets[cat]
		if len(bucket) == 0 {
			continue
		}
		if s.breakBefore[cat] && !doc.Empty() {
			doc.Add(layout.PageBreak{})
		}

		section := []layout.Block{
			layout.Heading{Text: string(cat), Style: s.category},
			layout.Spacer{Height: s.afterTitle},
		}
		for _, g := range grouping.ByBrandUnit(bucket) {
			section = append(section, layout.Group{Blocks: []layout.Block{
				layout.Heading{Text: prerollHeading(g), Style: s.subheading},
				layout.Spacer{Height: s.afterSub},
				productTable(potencyHeader(cat.Milligram()), prerollRows(cat, g.Items, opts), s.table),
				layout.Spacer{Height: s.afterTable},
			}})
		}

		if s.keepCategory {
			doc.Add(layout.Group{Blocks: section})
		} else {
			doc.Add(section...)
		}
		doc.Add(layout.Spacer{Height: s.afterCategory})
	}
	return doc
}

// prerollHeading prints the group's lowest price and, when the first title names one, its pack size.
func prerollHeading(g grouping.Group) string {
	first := g.Items[0]
	_, price := feed.PriceInfo(first)
	heading := priceHeading(g.Brand, g.Unit, price)
	if n := packSize(first.Name); n != "" {
		heading += " " + n + " pack"
	}
	return heading
}

func prerollRows(cat classify.Category, items []feed.Item, opts Options) [][]layout.Cell {
	rows := make([][]layout.Cell, 0, len(items))
	for _, item := range items {
		name := item.Strain
		if cat == classify.Flavored {
			name = shortTitle(item.Name)
		}
		rows = append(rows, productRow(item, name, opts))
	}
	return rows
}
