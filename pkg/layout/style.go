package layout

// Color is an RGB color.
type Color struct {
	R, G, B uint8
}

// Hex builds a color from a 0xRRGGBB value.
func Hex(v uint32) Color {
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

var (
	Black      = Color{}
	White      = Color{255, 255, 255}
	WhiteSmoke = Color{245, 245, 245}
	Grey       = Color{128, 128, 128}
	DarkGrey   = Color{169, 169, 169}
	Red        = Color{255, 0, 0}
	Green      = Color{0, 128, 0}
	Purple     = Color{128, 0, 128}
	Yellow     = Color{255, 255, 0}
	LightBlue  = Color{173, 216, 230}
)

// Fill returns a pointer suitable for optional background colors.
func Fill(c Color) *Color { return &c }

// Align is horizontal text alignment.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Font selects a core PDF font.
type Font struct {
	Family string
	Bold   bool
}

// Helvetica is the body font of every menu.
var (
	Helvetica     = Font{Family: "Helvetica"}
	HelveticaBold = Font{Family: "Helvetica", Bold: true}
)

func (f Font) style() string {
	if f.Bold {
		return "B"
	}
	return ""
}

// TextStyle describes a paragraph.
type TextStyle struct {
	Size        float64
	Leading     float64
	Bold        bool
	Align       Align
	Color       Color
	SpaceBefore float64
	SpaceAfter  float64
}

func (s TextStyle) leading() float64 {
	if s.Leading > 0 {
		return s.Leading
	}
	return s.Size * 1.2
}

func (s TextStyle) font() Font {
	return Font{Family: Helvetica.Family, Bold: s.Bold}
}

// TableStyle describes table typography, padding and rules.
type TableStyle struct {
	FontSize       float64
	HeaderFontSize float64
	PadX           float64
	PadY           float64
	// HeaderPadExtra adds space below the header text.
	HeaderPadExtra float64
	GridWidth      float64
	HeaderFill     *Color
	HeaderText     Color
}

func (s TableStyle) headerSize() float64 {
	if s.HeaderFontSize > 0 {
		return s.HeaderFontSize
	}
	return s.FontSize
}

func (s TableStyle) rowHeight(size float64) float64 {
	return size*1.2 + 2*s.PadY
}

func (s TableStyle) headerHeight() float64 {
	return s.rowHeight(s.headerSize()) + s.HeaderPadExtra
}
