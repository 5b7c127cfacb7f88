package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestStyleMerge(t *testing.T) {
	base := Style{
		Width:      0.25,
		Padding:    1,
		FontSize:   9,
		Align:      AlignLeft,
		Background: "#ffffff",
		Border:     BorderRight | BorderBottom,
	}
	override := Style{
		Align:       AlignRight,
		Color:       "#c0392b",
		Border:      BorderBottom,
		RoundBottom: true,
	}

	want := Style{
		Width:       0.25,
		Padding:     1,
		FontSize:    9,
		Align:       AlignRight,
		Color:       "#c0392b",
		Background:  "#ffffff",
		Border:      BorderBottom,
		RoundBottom: true,
	}
	if diff := cmp.Diff(want, base.Merge(override)); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(base, base.Merge(Style{})); diff != "" {
		t.Errorf("Merge(zero) changed the style (-want +got):\n%s", diff)
	}
}

func TestBorder(t *testing.T) {
	b := BorderRight | BorderBottom
	assert.True(t, b.Has(BorderRight))
	assert.False(t, b.Has(BorderTop))

	b = b.Without(BorderRight)
	assert.Equal(t, BorderBottom, b)

	none := b.Without(BorderBottom)
	assert.Equal(t, BorderNone, none)
	assert.False(t, none.Has(BorderBottom))
	assert.Equal(t, BorderNone, none.Without(BorderTop))

	merged := Style{Border: BorderAll}.Merge(Style{Border: none})
	assert.False(t, merged.Border.Has(BorderLeft))
}

func TestColorRGB(t *testing.T) {
	tests := []struct {
		in      Color
		r, g, b int
		ok      bool
	}{
		{"#1e3a5f", 30, 58, 95, true},
		{"fff", 255, 255, 255, true},
		{"", 0, 0, 0, false},
		{"#12345", 0, 0, 0, false},
		{"#gggggg", 0, 0, 0, false},
	}
	for _, tt := range tests {
		r, g, b, ok := tt.in.RGB()
		assert.Equal(t, tt.ok, ok, "%q", tt.in)
		assert.Equal(t, []int{tt.r, tt.g, tt.b}, []int{r, g, b}, "%q", tt.in)
	}
}
