package layout

// Node is an element of a document tree. The concrete node types are Text,
// Row, Block, Probe, Repeat and Component.
type Node interface {
	isNode()
}

// Text is a run of wrapped text spanning the available width.
type Text struct {
	Content string
	Style   Style
	Tag     string
}

// Cell is one cell of a Row.
type Cell struct {
	Content string
	Style   Style
}

// Row lays its cells out left to right. A row is never split across pages.
type Row struct {
	Cells []Cell
	Style Style
	// Tag and Index are copied onto the placed items so callers can find
	// the row again in a Result.
	Tag   string
	Index int
}

// Block stacks its children vertically. An Unbreakable block is moved to
// the next page as a whole when it does not fit the rest of the current one.
//
// Repeat children of a breakable block are not placed in the flow; they are
// invoked when the block starts and at the top of every page the block
// continues onto.
type Block struct {
	Children    []Node
	Style       Style
	Unbreakable bool
}

// Probe is a zero-size node whose Func is called with the page number it is
// placed on, once per layout pass.
type Probe struct {
	Func func(page int)
}

// Repeat is per-page content of the enclosing Block. Render receives the page
// number and may return nil to place nothing on that page.
type Repeat struct {
	Render func(page int) Node
}

// Component is expanded by the engine at the start of its placement, once
// per layout pass. State allocated inside the function is therefore scoped
// to a single pass.
type Component func() Node

func (*Text) isNode()     {}
func (*Row) isNode()      {}
func (*Block) isNode()    {}
func (*Probe) isNode()    {}
func (*Repeat) isNode()   {}
func (Component) isNode() {}

// Stack is shorthand for a breakable Block.
func Stack(children ...Node) *Block {
	return &Block{Children: children}
}

// Keep is shorthand for an unbreakable Block.
func Keep(children ...Node) *Block {
	return &Block{Children: children, Unbreakable: true}
}
