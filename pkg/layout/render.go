package layout

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// epoch is stamped into documents without a creation time so identical input renders identical bytes.
var epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// tolerance absorbs float drift when comparing positions.
const tolerance = 0.01

// Render lays out the document and returns the PDF bytes. An empty document yields nil.
func Render(doc *Document) ([]byte, error) {
	if doc.Empty() {
		return nil, nil
	}

	created := doc.CreatedAt
	if created.IsZero() {
		created = epoch
	}

	l := doc.Layout
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: l.PageWidth, Ht: l.PageHeight},
	})
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)
	pdf.SetMargins(l.Margins.Left, l.Margins.Top, l.Margins.Right)
	pdf.SetAutoPageBreak(false, l.Margins.Bottom)
	pdf.SetCellMargin(0)
	if doc.Title != "" {
		pdf.SetTitle(doc.Title, true)
	}
	pdf.SetCreator("menugen", false)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	r := &renderer{
		pdf:     pdf,
		tr:      tr,
		measure: &fpdfMeasurer{pdf: pdf, tr: tr},
		layout:  l,
	}
	r.newPage()
	for _, b := range doc.Blocks {
		r.draw(b)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// renderer tracks the current page, column frame and vertical cursor.
type renderer struct {
	pdf     *fpdf.Fpdf
	tr      func(string) string
	measure Measurer
	layout  Layout
	col     int
	y       float64
}

func (r *renderer) top() float64    { return r.layout.Margins.Top }
func (r *renderer) bottom() float64 { return r.layout.PageHeight - r.layout.Margins.Bottom }
func (r *renderer) x() float64      { return r.layout.frameX(r.col) }
func (r *renderer) width() float64  { return r.layout.FrameWidth() }

func (r *renderer) atFrameTop() bool { return r.y <= r.top()+tolerance }

func (r *renderer) fits(h float64) bool { return r.y+h <= r.bottom()+tolerance }

func (r *renderer) newPage() {
	r.pdf.AddPage()
	r.col = 0
	r.y = r.top()
}

func (r *renderer) nextFrame() {
	r.col++
	if r.col >= r.layout.columns() {
		r.newPage()
		return
	}
	r.y = r.top()
}

// ensure moves to the next frame when h does not fit, unless the frame is already empty.
func (r *renderer) ensure(h float64) {
	if !r.fits(h) && !r.atFrameTop() {
		r.nextFrame()
	}
}

func (r *renderer) draw(b Block) {
	switch b := b.(type) {
	case Heading:
		r.drawHeading(b)
	case Spacer:
		if r.atFrameTop() {
			return
		}
		if !r.fits(b.Height) {
			r.nextFrame()
			return
		}
		r.y += b.Height
	case PageBreak:
		if r.col == 0 && r.atFrameTop() {
			return
		}
		r.newPage()
	case Group:
		h := r.height(b)
		if !r.fits(h) && h <= r.layout.FrameHeight()+tolerance && !r.atFrameTop() {
			r.nextFrame()
		}
		for _, child := range b.Blocks {
			r.draw(child)
		}
	case Table:
		r.drawTable(b)
	case Legend:
		r.drawLegend(b)
	}
}

// height measures a block as if drawn in an empty frame.
func (r *renderer) height(b Block) float64 {
	switch b := b.(type) {
	case Heading:
		lines := wrap(r.measure, b.Text, b.Style.font(), b.Style.Size, r.width())
		return b.Style.SpaceBefore + float64(len(lines))*b.Style.leading() + b.Style.SpaceAfter
	case Spacer:
		return b.Height
	case Group:
		total := 0.0
		for _, child := range b.Blocks {
			total += r.height(child)
		}
		return total
	case Table:
		total := 0.0
		if len(b.Header) > 0 {
			total += b.Style.headerHeight()
		}
		return total + float64(len(b.Rows))*b.Style.rowHeight(b.Style.FontSize)
	case Legend:
		return b.Style.leading() + 4
	default:
		return 0
	}
}

func (r *renderer) drawHeading(h Heading) {
	r.ensure(r.height(h))
	font := h.Style.font()
	lines := wrap(r.measure, h.Text, font, h.Style.Size, r.width())

	r.y += h.Style.SpaceBefore
	r.setText(font, h.Style.Size, h.Style.Color)
	for _, line := range lines {
		lw := r.measure.StringWidth(line, font, h.Style.Size)
		r.text(r.alignedX(r.x(), r.width(), lw, h.Style.Align), r.baseline(r.y, 0, h.Style.leading(), h.Style.Size), line)
		r.y += h.Style.leading()
	}
	r.y += h.Style.SpaceAfter
}

func (r *renderer) drawTable(t Table) {
	style := t.Style
	rowH := style.rowHeight(style.FontSize)
	hasHeader := len(t.Header) > 0

	if hasHeader {
		first := style.headerHeight()
		if len(t.Rows) > 0 {
			first += rowH
		}
		r.ensure(first)
		r.drawHeaderRow(t)
	}
	for _, row := range t.Rows {
		if !r.fits(rowH) && !r.atFrameTop() {
			r.nextFrame()
			if hasHeader && t.RepeatHeader {
				r.drawHeaderRow(t)
			}
		}
		r.drawRow(t.Columns, row, style, style.FontSize, rowH, false)
	}
}

func (r *renderer) drawHeaderRow(t Table) {
	cells := make([]Cell, len(t.Header))
	for i, label := range t.Header {
		cells[i] = Cell{Text: label, Color: t.Style.HeaderText, Fill: t.Style.HeaderFill, Bold: true}
	}
	r.drawRow(t.Columns, cells, t.Style, t.Style.headerSize(), t.Style.headerHeight(), true)
}

// drawRow paints fills, text and grid for one row, then advances the cursor.
func (r *renderer) drawRow(cols []Column, cells []Cell, style TableStyle, size, h float64, header bool) {
	x := r.x()
	for i, col := range cols {
		w := r.width() * col.Width
		var cell Cell
		if i < len(cells) {
			cell = cells[i]
		}
		if cell.Fill != nil {
			r.pdf.SetFillColor(int(cell.Fill.R), int(cell.Fill.G), int(cell.Fill.B))
			r.pdf.Rect(x, r.y, w, h, "F")
		}
		if cell.Text != "" {
			font := Font{Family: Helvetica.Family, Bold: cell.Bold}
			text := Truncate(r.measure, cell.Text, font, size, w-2*style.PadX)
			align := col.Align
			if header {
				align = col.HeaderAlign
			}
			r.setText(font, size, cell.Color)
			tw := r.measure.StringWidth(text, font, size)
			r.text(r.alignedX(x+style.PadX, w-2*style.PadX, tw, align), r.baseline(r.y, style.PadY, size*1.2, size), text)
		}
		if style.GridWidth > 0 {
			r.pdf.SetDrawColor(0, 0, 0)
			r.pdf.SetLineWidth(style.GridWidth)
			r.pdf.Rect(x, r.y, w, h, "D")
		}
		x += w
	}
	r.y += h
}

func (r *renderer) drawLegend(l Legend) {
	h := r.height(l)
	r.ensure(h)
	if len(l.Entries) == 0 {
		return
	}
	w := r.width() / float64(len(l.Entries))
	font := l.Style.font()
	x := r.x()
	for _, e := range l.Entries {
		r.pdf.SetFillColor(int(e.Fill.R), int(e.Fill.G), int(e.Fill.B))
		r.pdf.Rect(x, r.y, w, h, "F")
		text := Truncate(r.measure, e.Text, font, l.Style.Size, w-4)
		r.setText(font, l.Style.Size, l.Style.Color)
		tw := r.measure.StringWidth(text, font, l.Style.Size)
		r.text(r.alignedX(x+2, w-4, tw, l.Style.Align), r.baseline(r.y, 2, l.Style.leading(), l.Style.Size), text)
		x += w
	}
	r.y += h
}

func (r *renderer) setText(font Font, size float64, c Color) {
	r.pdf.SetFont(font.Family, font.style(), size)
	r.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
}

func (r *renderer) text(x, baseline float64, s string) {
	r.pdf.Text(x, baseline, r.tr(s))
}

// baseline centers a line of type vertically inside its leading.
func (r *renderer) baseline(top, pad, leading, size float64) float64 {
	return top + pad + leading/2 + size*0.35
}

func (r *renderer) alignedX(x, w, textWidth float64, a Align) float64 {
	switch a {
	case AlignCenter:
		return x + (w-textWidth)/2
	case AlignRight:
		return x + w - textWidth
	default:
		return x
	}
}
