package layout

import "strings"

// Measurer wraps text for a box of the given width and reports the box
// height, padding included. Renderers provide measurers that agree with
// how they paint.
type Measurer interface {
	Measure(text string, style Style, width float64) (lines []string, height float64)
}

// LineMeasurer treats every explicit line of text as one line of height
// LineHeight and never wraps. It is deterministic, which makes it useful for
// tests and for previews where exact font metrics do not matter.
type LineMeasurer struct {
	LineHeight float64
}

// Measure implements Measurer.
func (m LineMeasurer) Measure(text string, style Style, _ float64) ([]string, float64) {
	lh := m.LineHeight
	if lh <= 0 {
		lh = 1
	}
	lines := strings.Split(text, "\n")
	return lines, float64(len(lines))*lh + 2*style.Padding
}
