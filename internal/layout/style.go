package layout

import (
	"strconv"
	"strings"
)

// Color is a "#rrggbb" hex color. The empty string means unset.
type Color string

// RGB parses the color. ok is false for unset or malformed values.
func (c Color) RGB() (r, g, b int, ok bool) {
	s := strings.TrimPrefix(strings.TrimSpace(string(c)), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

// Border is a set of cell sides to stroke. The zero value means unset;
// BorderNone explicitly removes every side.
type Border uint8

const (
	BorderTop Border = 1 << iota
	BorderRight
	BorderBottom
	BorderLeft
	BorderNone

	BorderAll = BorderTop | BorderRight | BorderBottom | BorderLeft
)

// Has reports whether side is stroked.
func (b Border) Has(side Border) bool {
	return b&BorderNone == 0 && b&side != 0
}

// Without returns b with side removed. Removing the last side yields
// BorderNone so the result still overrides a base style.
func (b Border) Without(side Border) Border {
	if b&BorderNone != 0 {
		return BorderNone
	}
	out := b &^ side
	if out == 0 {
		return BorderNone
	}
	return out
}

// Align is horizontal text alignment.
type Align uint8

const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Weight is font weight.
type Weight uint8

const (
	WeightDefault Weight = iota
	WeightNormal
	WeightBold
)

// Style describes box geometry and text presentation. Every field has an
// "unset" zero value so partial styles can be layered with Merge.
type Style struct {
	// Width of a cell: a fraction of the row when in (0,1], an absolute width
	// when above 1, an equal share of what is left when 0.
	Width     float64
	MinHeight float64
	Padding   float64

	MarginTop    float64
	MarginBottom float64

	FontSize float64
	Weight   Weight
	Align    Align

	Color       Color
	Background  Color
	Border      Border
	BorderColor Color

	// RoundBottom rounds the bottom corners of a cell; used to close a table.
	RoundBottom bool
}

// Merge returns s with every set field of o layered on top.
func (s Style) Merge(o Style) Style {
	if o.Width != 0 {
		s.Width = o.Width
	}
	if o.MinHeight != 0 {
		s.MinHeight = o.MinHeight
	}
	if o.Padding != 0 {
		s.Padding = o.Padding
	}
	if o.MarginTop != 0 {
		s.MarginTop = o.MarginTop
	}
	if o.MarginBottom != 0 {
		s.MarginBottom = o.MarginBottom
	}
	if o.FontSize != 0 {
		s.FontSize = o.FontSize
	}
	if o.Weight != WeightDefault {
		s.Weight = o.Weight
	}
	if o.Align != AlignDefault {
		s.Align = o.Align
	}
	if o.Color != "" {
		s.Color = o.Color
	}
	if o.Background != "" {
		s.Background = o.Background
	}
	if o.Border != 0 {
		s.Border = o.Border
	}
	if o.BorderColor != "" {
		s.BorderColor = o.BorderColor
	}
	if o.RoundBottom {
		s.RoundBottom = true
	}
	return s
}
