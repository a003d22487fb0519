// Package layout turns a sequence of typed blocks into a paginated, multi-column PDF.
//
// Callers describe what goes on the page (headings, spacers, tables, legends,
// keep-together groups and page breaks); Render decides where it goes.
package layout

import "time"

// Letter page size in points.
const (
	LetterWidth  = 612.0
	LetterHeight = 792.0
)

// Margins are page margins in points.
type Margins struct {
	Left, Right, Top, Bottom float64
}

// Layout is the physical page geometry: size, margins and column frames.
type Layout struct {
	PageWidth  float64
	PageHeight float64
	Margins    Margins
	Columns    int
	Gap        float64
}

var (
	// FullTwoColumn is the full-size two-column page.
	FullTwoColumn = Layout{
		PageWidth: LetterWidth, PageHeight: LetterHeight,
		Margins: Margins{Left: 24, Right: 24, Top: 36, Bottom: 36},
		Columns: 2, Gap: 12,
	}
	// CondensedTwoColumn packs more rows per page with tighter margins.
	CondensedTwoColumn = Layout{
		PageWidth: LetterWidth, PageHeight: LetterHeight,
		Margins: Margins{Left: 18, Right: 18, Top: 24, Bottom: 24},
		Columns: 2, Gap: 10,
	}
	// FullSingleColumn uses the whole page width for dense tables.
	FullSingleColumn = Layout{
		PageWidth: LetterWidth, PageHeight: LetterHeight,
		Margins: Margins{Left: 36, Right: 36, Top: 36, Bottom: 36},
		Columns: 1,
	}
)

func (l Layout) columns() int {
	return max(l.Columns, 1)
}

// FrameWidth is the width of one column frame.
func (l Layout) FrameWidth() float64 {
	n := float64(l.columns())
	return (l.PageWidth - l.Margins.Left - l.Margins.Right - l.Gap*(n-1)) / n
}

// FrameHeight is the usable height of a frame.
func (l Layout) FrameHeight() float64 {
	return l.PageHeight - l.Margins.Top - l.Margins.Bottom
}

func (l Layout) frameX(col int) float64 {
	return l.Margins.Left + float64(col)*(l.FrameWidth()+l.Gap)
}

// Block is one unit of document content.
type Block interface {
	block()
}

// Heading is a paragraph of text, wrapped to the frame width.
type Heading struct {
	Text  string
	Style TextStyle
}

// Spacer is vertical whitespace. It is dropped at the top of a frame.
type Spacer struct {
	Height float64
}

// PageBreak starts a new page.
type PageBreak struct{}

// Group keeps its blocks in one frame when they fit in an empty frame.
type Group struct {
	Blocks []Block
}

// Column is a table column; Width is a fraction of the frame width.
type Column struct {
	Width       float64
	Align       Align
	HeaderAlign Align
}

// Cell is a single table cell. Text is truncated to the column width when drawn.
type Cell struct {
	Text  string
	Color Color
	Fill  *Color
	Bold  bool
}

// Table is a grid with an optional header row. Tables split between rows.
type Table struct {
	Columns      []Column
	Header       []string
	Rows         [][]Cell
	Style        TableStyle
	RepeatHeader bool
}

// LegendEntry is an explanatory label drawn on its highlight swatch.
type LegendEntry struct {
	Text string
	Fill Color
}

// Legend is a single row of equally wide swatches.
type Legend struct {
	Entries []LegendEntry
	Style   TextStyle
}

func (Heading) block()   {}
func (Spacer) block()    {}
func (PageBreak) block() {}
func (Group) block()     {}
func (Table) block()     {}
func (Legend) block()    {}

// Document is an ordered block list laid out on one Layout.
type Document struct {
	Layout    Layout
	Title     string
	Blocks    []Block
	CreatedAt time.Time
}

// NewDocument starts an empty document.
func NewDocument(l Layout, title string) *Document {
	return &Document{Layout: l, Title: title}
}

// Add appends blocks.
func (d *Document) Add(blocks ...Block) {
	d.Blocks = append(d.Blocks, blocks...)
}

// Empty reports whether the document has nothing to render.
func (d *Document) Empty() bool {
	return d == nil || len(d.Blocks) == 0
}
