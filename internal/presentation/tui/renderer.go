package tui

import (
	"github.com/charmbracelet/glamour"
)

// RenderFunc turns a slide's markdown body into terminal output.
type RenderFunc func(markdown string) (string, error)

// NewRenderer returns a RenderFunc backed by glamour.
// It detects a light or dark background. A positive width enables word wrapping.
func NewRenderer(width int) (RenderFunc, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return r.Render, nil
}

// PlainRenderer returns the markdown unchanged.
func PlainRenderer(markdown string) (string, error) {
	return markdown, nil
}
