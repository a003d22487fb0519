package menu

import (
	"strings"

	"menugen/pkg/classify"
	"menugen/pkg/feed"
	"menugen/pkg/grouping"
	"menugen/pkg/layout"
)

var flowerColumns = []layout.Column{
	{Width: 0.10, HeaderAlign: layout.AlignCenter},
	{Width: 0.35, HeaderAlign: layout.AlignCenter},
	{Width: 0.25, HeaderAlign: layout.AlignCenter},
	{Width: 0.15, HeaderAlign: layout.AlignCenter},
	{Width: 0.15, HeaderAlign: layout.AlignCenter},
}

var flowerLegend = layout.Legend{
	Entries: []layout.LegendEntry{
		{Text: "Last Chance Special 30% OFF", Fill: layout.Yellow},
		{Text: "Manager Special 50% OFF", Fill: layout.LightBlue},
	},
	Style: layout.TextStyle{Size: 8, Align: layout.AlignCenter},
}

// flower prints one page per populated shelf.
func (c *Composer) flower(items []feed.Item, opts Options) *layout.Document {
	doc := layout.NewDocument(layout.FullSingleColumn, "Flower Menu")
	fs := opts.fontSize(12)
	table := layout.TableStyle{FontSize: fs, PadX: fs * 0.5, PadY: fs * 0.5, HeaderPadExtra: 4, GridWidth: 0.25}
	pricing := layout.TextStyle{Size: 12}

	byTier := c.engine.FlowerByTier(items)
	for _, tier := range classify.Tiers() {
		list := byTier[tier]
		if len(list) == 0 {
			continue
		}
		if !doc.Empty() {
			doc.Add(layout.PageBreak{})
		}
		prices := c.engine.Pricing(tier)
		doc.Add(
			layout.Heading{Text: strings.ToUpper(string(tier)) + " SHELF", Style: layout.TextStyle{Size: 14, Bold: true, Align: layout.AlignCenter}},
			layout.Spacer{Height: 12},
			layout.Heading{Text: "REC: " + prices.REC, Style: pricing},
			layout.Heading{Text: "MED: " + prices.MED, Style: pricing},
			layout.Spacer{Height: 12},
			layout.Table{
				Columns: flowerColumns,
				Header:  []string{"Lineage", "Strain", "Farm", "THC%", "CBD%"},
				Rows:    flowerRows(grouping.SortFlower(list), opts),
				Style:   table,
			},
			layout.Spacer{Height: 12},
			flowerLegend,
		)
	}
	return doc
}

func flowerRows(items []feed.Item, opts Options) [][]layout.Cell {
	rows := make([][]layout.Cell, 0, len(items))
	for _, item := range items {
		rows = append(rows, []layout.Cell{
			{Text: string(feed.LineageOf(item)), Color: lineageColor(item)},
			{Text: strings.ReplaceAll(item.Name, " [Gold]", ""), Fill: highlight(item, opts.StoreKey)},
			{Text: item.Brand},
			{Text: item.THC.Current.String()},
			{Text: feed.FormatCBD(item.CBD.Current.String())},
		})
	}
	return rows
}
