package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/slidekit/pkg/domain"
)

// Screen draws the current slide and a status line.
type Screen struct {
	out     *termenv.Output
	render  RenderFunc
	profile termenv.Profile
	raw     bool
	last    string
}

// ScreenOption configures a Screen.
type ScreenOption func(*Screen)

// WithRenderer sets the markdown renderer (default: PlainRenderer).
func WithRenderer(r RenderFunc) ScreenOption {
	return func(s *Screen) {
		s.render = r
	}
}

// WithProfile forces a color profile instead of detecting it from the writer.
func WithProfile(p termenv.Profile) ScreenOption {
	return func(s *Screen) {
		s.profile = p
	}
}

// WithRawMode translates line feeds for a terminal without output post-processing.
func WithRawMode(raw bool) ScreenOption {
	return func(s *Screen) {
		s.raw = raw
	}
}

// NewScreen creates a Screen writing to w.
func NewScreen(w io.Writer, opts ...ScreenOption) *Screen {
	out := termenv.NewOutput(w)
	s := &Screen{
		out:     out,
		render:  PlainRenderer,
		profile: out.Profile,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Profile returns the color profile in use.
func (s *Screen) Profile() termenv.Profile {
	return s.profile
}

// Draw clears the terminal and shows slide with the deck status.
// Redrawing an unchanged frame is skipped.
func (s *Screen) Draw(slide domain.Slide, state domain.DeckState) error {
	body, err := s.render(slide.Content)
	if err != nil {
		return fmt.Errorf("failed to render slide %s: %w", slide.ID, err)
	}

	var frame strings.Builder
	frame.WriteString(strings.TrimRight(body, "\n"))
	frame.WriteString("\n\n")
	frame.WriteString(StatusLine(s.profile, slide, state))
	frame.WriteString("\n")
	frame.WriteString(HelpLine(s.profile))
	frame.WriteString("\n")

	text := frame.String()
	if text == s.last {
		return nil
	}
	s.last = text

	if s.raw {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	s.out.ClearScreen()
	_, err = io.WriteString(s.out, text)
	return err
}

// Message prints a line below the current frame.
func (s *Screen) Message(format string, args ...any) {
	line := fmt.Sprintf(">>> "+format, args...)
	if s.raw {
		line += "\r"
	}
	fmt.Fprintln(s.out, s.profile.String(line).Faint())
}
