package layout

// ItemKind identifies what a placed Item is.
type ItemKind uint8

const (
	ItemText ItemKind = iota + 1
	ItemRow
	ItemCell
)

func (k ItemKind) String() string {
	switch k {
	case ItemText:
		return "text"
	case ItemRow:
		return "row"
	case ItemCell:
		return "cell"
	default:
		return "unknown"
	}
}

// Item is a positioned box on a page. Coordinates are in engine units with
// the origin at the top-left corner of the page.
type Item struct {
	Kind  ItemKind
	X, Y  float64
	W, H  float64
	Lines []string
	Style Style
	Tag   string
	Index int
}

// Page is one laid out page. Numbers start at 1.
type Page struct {
	Number int
	Items  []Item
}

// Rows returns the row items of the page whose tag is tag, in placement
// order. An empty tag matches every row.
func (p Page) Rows(tag string) []Item {
	var out []Item
	for _, it := range p.Items {
		if it.Kind == ItemRow && (tag == "" || it.Tag == tag) {
			out = append(out, it)
		}
	}
	return out
}

// Overflow records a box that was taller than the space a fresh page offers.
// The box was placed anyway and runs past the bottom margin.
type Overflow struct {
	Page      int
	Tag       string
	Height    float64
	Available float64
}

// Result is the outcome of Compose: the pages of the final pass.
type Result struct {
	Pages     []Page
	Passes    int
	Overflows []Overflow
}
