package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/slidekit/pkg/domain"
)

var bannerLines = []string{
	"     _ _     _      _    _ _   ",
	" ___| (_) __| | ___| | _(_) |_ ",
	"/ __| | |/ _` |/ _ \\ |/ / | __|",
	"\\__ \\ | | (_| |  __/   <| | |_ ",
	"|___/_|_|\\__,_|\\___|_|\\_\\_|\\__|",
}

var bannerColors = []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6"}

// PrintBanner writes the slidekit banner with a violet gradient.
func PrintBanner(w io.Writer, p termenv.Profile, version string) {
	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, p.String(line).Foreground(p.Color(bannerColors[i])))
	}
	if version != "" {
		fmt.Fprintln(w, p.String("  v"+strings.TrimPrefix(version, "v")).Faint())
	}
	fmt.Fprintln(w)
}

// StatusLine summarizes the deck position: index, title, transition kind and controller phase.
func StatusLine(p termenv.Profile, slide domain.Slide, state domain.DeckState) string {
	var b strings.Builder

	pos := fmt.Sprintf("[%d/%d]", state.CurrentIndex+1, len(state.Slides))
	b.WriteString(p.String(pos).Foreground(p.Color("#818cf8")).Bold().String())

	title := slide.Title
	if title == "" {
		title = slide.ID
	}
	b.WriteString(" ")
	b.WriteString(title)

	if slide.Transition != "" {
		b.WriteString(" ")
		b.WriteString(p.String(slide.Transition).Faint().String())
	}

	b.WriteString(" ")
	b.WriteString(p.String(string(state.Phase)).Foreground(p.Color(phaseColor(state.Phase))).String())

	if len(state.History) > 0 {
		b.WriteString(p.String(fmt.Sprintf(" back:%d", len(state.History))).Faint().String())
	}
	return b.String()
}

func phaseColor(phase domain.Phase) string {
	if phase == domain.PhaseIdle {
		return "#34d399"
	}
	return "#fbbf24"
}

// HelpLine lists the key bindings.
func HelpLine(p termenv.Profile) string {
	return p.String("←/→ move  b back  g first  q quit").Faint().String()
}
