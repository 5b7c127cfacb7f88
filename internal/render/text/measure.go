package text

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/salmonumbrella/chitbook/internal/layout"
)

// Measurer wraps text by display width. Every box keeps one column of
// padding on each side and has no vertical padding beyond Style.Padding.
type Measurer struct{}

// Measure implements layout.Measurer.
func (Measurer) Measure(text string, style layout.Style, width float64) ([]string, float64) {
	pad := 1 + int(style.Padding)
	inner := max(int(width)-2*pad, 1)

	lines := Wrap(text, inner)
	return lines, float64(len(lines)) + 2*float64(int(style.Padding))
}

// Wrap breaks s into lines no wider than width display columns. Explicit
// newlines are kept, words are split only when they are wider than a line,
// and the result always has at least one line.
func Wrap(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	var out []string
	for _, para := range strings.Split(s, "\n") {
		out = append(out, wrapLine(para, width)...)
	}
	if len(out) == 0 {
		out = []string{""}
	}
	return out
}

func wrapLine(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	var (
		lines []string
		cur   strings.Builder
		curW  int
	)
	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		curW = 0
	}

	for _, word := range words {
		ww := runewidth.StringWidth(word)
		if curW > 0 && curW+1+ww <= width {
			cur.WriteByte(' ')
			cur.WriteString(word)
			curW += 1 + ww
			continue
		}
		if curW > 0 {
			flush()
		}
		for ww > width {
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				// A single rune wider than the line.
				r := []rune(word)
				head = string(r[0])
			}
			lines = append(lines, head)
			word = word[len(head):]
			ww = runewidth.StringWidth(word)
		}
		if word != "" {
			cur.WriteString(word)
			curW = ww
		}
	}
	if curW > 0 {
		flush()
	}
	return lines
}
