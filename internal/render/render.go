// Package render holds what the output backends share. The backends live in
// the pdf and text subpackages.
package render

import (
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/salmonumbrella/chitbook/internal/layout"
)

// Meta describes a rendered artifact.
type Meta struct {
	ID      string
	Title   string
	Subject string
	Created time.Time
}

// Backend turns layout results into bytes. Its engine measures content with
// the same metrics the backend paints with, in the backend's own units.
type Backend interface {
	Name() string
	Engine(logger *zap.Logger, opts ...layout.Option) *layout.Engine
	// Spacing is the vertical gap reports leave between sections.
	Spacing() float64
	// FooterHeight is the height of the page footer band.
	FooterHeight() float64
	Render(w io.Writer, res *layout.Result, meta Meta) error
}
