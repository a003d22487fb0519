package menu

import (
	"menugen/pkg/classify"
	"menugen/pkg/feed"
	"menugen/pkg/grouping"
	"menugen/pkg/layout"
)

func (c *Composer) cartDab(title string, items []feed.Item, opts Options) *layout.Document {
	doc := layout.NewDocument(layout.FullTwoColumn, title)
	groups := grouping.ByBrandUnitPrice(items)
	if len(groups) == 0 {
		return doc
	}

	fs := opts.fontSize(12)
	sub := layout.TextStyle{Size: fs + 2, Bold: true}
	table := layout.TableStyle{FontSize: fs, PadX: 6, PadY: 3, GridWidth: 0.25, HeaderFill: layout.Fill(layout.Grey)}

	doc.Add(
		layout.Heading{Text: title, Style: layout.TextStyle{Size: fs + 4, Bold: true, Align: layout.AlignCenter}},
		layout.Spacer{Height: 12},
	)
	for _, g := range groups {
		doc.Add(layout.Group{Blocks: []layout.Block{
			layout.Heading{Text: priceHeading(g.Brand, g.Unit, g.Price), Style: sub},
			layout.Spacer{Height: 6},
			productTable(potencyHeader(c.anyMilligram(g.Items)), c.cartRows(g.Items, opts), table),
			layout.Spacer{Height: 12},
		}})
	}
	return doc
}

// condensedCart is the fixed typography shared by condensed cart and dab menus.
type condensedCart struct {
	doc     *layout.Document
	opts    Options
	head    layout.TextStyle
	section layout.TextStyle
	table   layout.TableStyle
}

func newCondensedCart(title string, opts Options) *condensedCart {
	const base = 9
	return &condensedCart{
		doc:     layout.NewDocument(layout.CondensedTwoColumn, title),
		opts:    opts,
		head:    layout.TextStyle{Size: base + 4, Leading: base + 5, Bold: true, Align: layout.AlignCenter},
		section: layout.TextStyle{Size: base + 2, Leading: base + 3, Bold: true},
		table: layout.TableStyle{
			FontSize: base, PadX: 1, PadY: 0.5, GridWidth: 0.25,
			HeaderFill: layout.Fill(layout.Grey),
		},
	}
}

// section appends a titled run of priced groups. Empty sections are skipped.
func (c *Composer) section(cc *condensedCart, title string, items []feed.Item, pageBreak, main bool) {
	if len(items) == 0 {
		return
	}
	if pageBreak && !cc.doc.Empty() {
		cc.doc.Add(layout.PageBreak{})
	}
	style := cc.section
	if main {
		style = cc.head
	}
	cc.doc.Add(layout.Heading{Text: title, Style: style}, layout.Spacer{Height: 4})

	for _, g := range grouping.ByBrandUnitPrice(items) {
		cc.doc.Add(layout.Group{Blocks: []layout.Block{
			layout.Heading{Text: priceHeading(g.Brand, g.Unit, g.Price), Style: cc.section},
			layout.Spacer{Height: 2},
			productTable(potencyHeader(c.anyMilligram(g.Items)), c.cartRows(g.Items, cc.opts), cc.table),
			layout.Spacer{Height: 4},
		}})
	}
}

func (c *Composer) cartCondensed(items []feed.Item, opts Options) *layout.Document {
	cc := newCondensedCart("CART MENU", opts)
	sections := make(map[classify.CartSection][]feed.Item)
	for _, item := range items {
		s := c.engine.CartSection(item)
		sections[s] = append(sections[s], item)
	}

	c.section(cc, classify.PlainCart.String(), sections[classify.PlainCart], false, true)
	c.section(cc, classify.FlavoredCart.String(), sections[classify.FlavoredCart], false, false)
	c.section(cc, classify.DisposableCart.String(), sections[classify.DisposableCart], true, true)
	c.section(cc, classify.FlavoredDisposableCart.String(), sections[classify.FlavoredDisposableCart], false, false)
	return cc.doc
}

func (c *Composer) dabCondensed(items []feed.Item, opts Options) *layout.Document {
	cc := newCondensedCart("DAB MENU", opts)
	c.section(cc, "DAB MENU", items, false, true)
	return cc.doc
}

func (c *Composer) anyMilligram(items []feed.Item) bool {
	for _, item := range items {
		if c.engine.IsMilligram(item) {
			return true
		}
	}
	return false
}

func (c *Composer) cartRows(items []feed.Item, opts Options) [][]layout.Cell {
	rows := make([][]layout.Cell, 0, len(items))
	for _, item := range items {
		rows = append(rows, productRow(item, shortTitle(item.Name), opts))
	}
	return rows
}
