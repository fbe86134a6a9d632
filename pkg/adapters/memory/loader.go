package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/slidekit/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Page is a raw slide as an author would write it: a body plus loosely typed attributes.
type Page struct {
	ID         string
	Content    string
	Attributes map[string]any
}

// Attributes is the typed view of a slide's attribute map.
// Delay is expressed in milliseconds.
type Attributes struct {
	Title           string `mapstructure:"title"`
	Transition      string `mapstructure:"transition"`
	Delay           int    `mapstructure:"delay"`
	OnUnload        string `mapstructure:"on_unload"`
	OnTransitionEnd string `mapstructure:"on_transition_end"`
	Current         bool   `mapstructure:"current"`
}

// DecodeAttributes converts a loosely typed attribute map into Attributes.
// Values are weakly typed so "800" and 800 both decode as a delay.
func DecodeAttributes(raw map[string]any) (Attributes, error) {
	var attrs Attributes
	if len(raw) == 0 {
		return attrs, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &attrs,
		WeaklyTypedInput: true,
		ErrorUnused:      false,
	})
	if err != nil {
		return attrs, err
	}
	if err := dec.Decode(raw); err != nil {
		return attrs, err
	}
	if attrs.Delay < 0 {
		return attrs, fmt.Errorf("negative delay %d", attrs.Delay)
	}
	return attrs, nil
}

// Slide builds the domain definition for a page with the given attributes.
func (a Attributes) Slide(id, content string) domain.Slide {
	return domain.Slide{
		ID:              id,
		Title:           a.Title,
		Content:         content,
		Transition:      a.Transition,
		Delay:           time.Duration(a.Delay) * time.Millisecond,
		OnUnload:        a.OnUnload,
		OnTransitionEnd: a.OnTransitionEnd,
		Current:         a.Current,
	}
}

// Loader implements ports.DeckLoader over slides held in memory.
type Loader struct {
	slides []domain.Slide
}

// NewLoader decodes pages in the given order.
func NewLoader(pages ...Page) (*Loader, error) {
	slides := make([]domain.Slide, 0, len(pages))
	for i, p := range pages {
		attrs, err := DecodeAttributes(p.Attributes)
		if err != nil {
			return nil, fmt.Errorf("page %d (%s): %w", i, p.ID, err)
		}
		slides = append(slides, attrs.Slide(p.ID, p.Content))
	}
	return &Loader{slides: slides}, nil
}

// NewFromSlides creates a loader from domain definitions.
func NewFromSlides(slides ...domain.Slide) *Loader {
	return &Loader{slides: append([]domain.Slide(nil), slides...)}
}

// LoadDeck returns a copy of the slides in order.
func (l *Loader) LoadDeck(ctx context.Context) ([]domain.Slide, error) {
	if len(l.slides) == 0 {
		return nil, domain.ErrEmptyDeck
	}
	return append([]domain.Slide(nil), l.slides...), nil
}
