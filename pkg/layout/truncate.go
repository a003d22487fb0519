package layout

import (
	"strings"

	"github.com/go-pdf/fpdf"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Measurer reports rendered text widths in points.
type Measurer interface {
	StringWidth(text string, font Font, size float64) float64
}

// fpdfMeasurer measures with core font metrics. It changes the current font of pdf.
type fpdfMeasurer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// NewMeasurer returns a standalone measurer backed by the core PDF fonts.
func NewMeasurer() Measurer {
	pdf := fpdf.New("P", "pt", "Letter", "")
	return &fpdfMeasurer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (m *fpdfMeasurer) StringWidth(text string, font Font, size float64) float64 {
	m.pdf.SetFont(font.Family, font.style(), size)
	return m.pdf.GetStringWidth(m.tr(text))
}

// Truncate shortens text until it plus an ellipsis fits maxWidth. Text that already fits is returned unchanged.
func Truncate(m Measurer, text string, font Font, size, maxWidth float64) string {
	if text == "" {
		return ""
	}
	if m.StringWidth(text, font, size) <= maxWidth {
		return text
	}
	ellipsis := m.StringWidth(Ellipsis, font, size)
	runes := []rune(text)
	for len(runes) > 0 && m.StringWidth(string(runes), font, size)+ellipsis > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + Ellipsis
}

// wrap breaks text on spaces into lines no wider than maxWidth. Single words wider than a line stay whole.
func wrap(m Measurer, text string, font Font, size, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if m.StringWidth(candidate, font, size) <= maxWidth {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = w
	}
	return append(lines, line)
}
