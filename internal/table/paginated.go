package table

import "github.com/salmonumbrella/chitbook/internal/layout"

// Paginated returns the layout of t.
//
// The title, the header and the first row form one unbreakable block, so the
// header never ends a page on its own. The block starts with a probe that
// records the page it lands on (the anchor page). The remaining rows follow
// in a breakable block whose repeat node re-emits the header on every page
// after the anchor page.
//
// The anchor lives inside the component, which the engine expands once per
// layout pass: each pass, and each table, starts from a fresh -1.
func Paginated[R any](t Table[R]) layout.Node {
	return layout.Component(t.build)
}

func (t Table[R]) build() layout.Node {
	var head []layout.Node
	if t.Title != "" {
		head = append(head, titleText(t.Title))
	}

	if len(t.Rows) == 0 {
		head = append(head, HeaderRow(t.Columns), placeholderRow())
		return layout.Keep(head...)
	}

	anchor := -1
	last := len(t.Rows) - 1

	head = append([]layout.Node{&layout.Probe{Func: func(page int) { anchor = page }}}, head...)
	head = append(head, HeaderRow(t.Columns), DataRow(t.Columns, t.Rows[0], 0, last == 0))
	if last == 0 {
		return layout.Keep(head...)
	}

	rest := make([]layout.Node, 0, len(t.Rows))
	rest = append(rest, &layout.Repeat{Render: func(page int) layout.Node {
		if anchor < 0 || page <= anchor {
			return nil
		}
		return HeaderRow(t.Columns)
	}})
	for i := 1; i <= last; i++ {
		rest = append(rest, DataRow(t.Columns, t.Rows[i], i, i == last))
	}

	return layout.Stack(layout.Keep(head...), layout.Stack(rest...))
}
