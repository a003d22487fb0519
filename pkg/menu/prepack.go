package menu

import (
	"fmt"

	"menugen/pkg/classify"
	"menugen/pkg/feed"
	"menugen/pkg/grouping"
	"menugen/pkg/layout"
)

// prepackSections are printed in this order.
var prepackSections = []struct {
	designation classify.Designation
	label       string
}{
	{classify.Shake, "Shake"},
	{classify.Regular, "Regular Prepacks"},
	{classify.LastOfFlower, "Last Of Flower / As Is"},
}

func (c *Composer) designate(items []feed.Item) map[classify.Designation][]feed.Item {
	out := make(map[classify.Designation][]feed.Item)
	for _, item := range items {
		d := c.engine.Designation(item)
		out[d] = append(out[d], item)
	}
	for d := range out {
		out[d] = grouping.SortPrepack(out[d])
	}
	return out
}

var prepackColumns = []layout.Column{
	{Width: 0.12, Align: layout.AlignCenter, HeaderAlign: layout.AlignCenter},
	{Width: 0.12, Align: layout.AlignRight, HeaderAlign: layout.AlignCenter},
	{Width: 0.18, HeaderAlign: layout.AlignCenter},
	{Width: 0.40, HeaderAlign: layout.AlignCenter},
	{Width: 0.18, Align: layout.AlignCenter, HeaderAlign: layout.AlignCenter},
}

func prepackRows(items []feed.Item, opts Options) [][]layout.Cell {
	rows := make([][]layout.Cell, 0, len(items))
	for _, item := range items {
		price := ""
		if _, p := feed.PriceInfo(item); p != 0 {
			price = fmt.Sprintf("$%.2f", p)
		}
		thc := ""
		if v := item.THC.Current.String(); v != "" {
			thc = v + "%"
		}
		rows = append(rows, []layout.Cell{
			{Text: string(feed.LineageOf(item)), Color: lineageColor(item)},
			{Text: price},
			{Text: feed.Weights(item)},
			{Text: item.Strain, Bold: true, Fill: highlight(item, opts.StoreKey)},
			{Text: thc},
		})
	}
	return rows
}

func (c *Composer) prepack(items []feed.Item, opts Options) *layout.Document {
	doc := layout.NewDocument(layout.FullSingleColumn, "Prepack Specials")
	sections := c.designate(items)
	if len(sections) == 0 {
		return doc
	}

	fs := opts.fontSize(9)
	heading := layout.TextStyle{Size: 11, Bold: true, SpaceBefore: 6, SpaceAfter: 6}
	table := layout.TableStyle{
		FontSize: fs, HeaderFontSize: fs + 1, PadX: 6, PadY: 3, GridWidth: 0.5,
		HeaderFill: layout.Fill(layout.DarkGrey), HeaderText: layout.WhiteSmoke,
	}
	header := []string{"Lineage", "Price", "Grams", "Strain Name", "THC"}

	doc.Add(layout.Heading{Text: "Prepack Specials", Style: layout.TextStyle{Size: 14, Bold: true, Align: layout.AlignCenter, SpaceAfter: 12}})
	added := false
	for _, s := range prepackSections {
		list := sections[s.designation]
		if len(list) == 0 {
			continue
		}
		if s.designation == classify.LastOfFlower && added {
			doc.Add(layout.PageBreak{})
		}
		doc.Add(
			layout.Heading{Text: s.label, Style: heading},
			layout.Table{Columns: prepackColumns, Header: header, Rows: prepackRows(list, opts), Style: table, RepeatHeader: true},
		)
		if s.designation == classify.Shake {
			doc.Add(layout.Spacer{Height: 12})
		}
		added = true
	}
	return doc
}

func (c *Composer) prepackCondensed(items []feed.Item, opts Options) *layout.Document {
	const base = 9
	doc := layout.NewDocument(layout.CondensedTwoColumn, "PREPACK MENU")
	sections := c.designate(items)
	if len(sections) == 0 {
		return doc
	}

	section := layout.TextStyle{Size: base + 2, Leading: base + 3, Bold: true}
	table := layout.TableStyle{
		FontSize: base, PadX: 1, PadY: 0.5, GridWidth: 0.25,
		HeaderFill: layout.Fill(layout.Grey), HeaderText: layout.WhiteSmoke,
	}
	header := []string{"Lin.", "Price", "Grams", "Strain", "THC"}

	doc.Add(
		layout.Heading{Text: "PREPACK MENU", Style: layout.TextStyle{Size: base + 4, Leading: base + 5, Bold: true, Align: layout.AlignCenter}},
		layout.Spacer{Height: 4},
	)
	for _, s := range prepackSections {
		list := sections[s.designation]
		if len(list) == 0 {
			continue
		}
		doc.Add(layout.Group{Blocks: []layout.Block{
			layout.Heading{Text: s.label, Style: section},
			layout.Spacer{Height: 2},
			layout.Table{Columns: prepackColumns, Header: header, Rows: prepackRows(list, opts), Style: table, RepeatHeader: true},
			layout.Spacer{Height: 4},
		}})
	}
	return doc
}
