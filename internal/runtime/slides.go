package runtime

import (
	"fmt"

	"github.com/aretw0/slidekit/pkg/domain"
	"github.com/aretw0/slidekit/pkg/ports"
)

// Slide is a slide of a running deck: its definition, position and class set.
type Slide struct {
	domain.Slide
	Index   int
	Classes ports.ClassSet
}

// Slides is the ordered slide registry. Order is fixed at load time.
type Slides struct {
	list []*Slide
	byID map[string]*Slide
}

// NewSlides builds the registry from definitions, applying attribute defaults.
// Each slide's class set is created by nodes and receives its transition kind as a class.
func NewSlides(defs []domain.Slide, nodes ports.NodeFactory) (*Slides, error) {
	if len(defs) == 0 {
		return nil, domain.ErrEmptyDeck
	}

	s := &Slides{
		list: make([]*Slide, 0, len(defs)),
		byID: make(map[string]*Slide, len(defs)),
	}
	for i, def := range defs {
		def = def.WithDefaults()
		if def.ID == "" {
			def.ID = fmt.Sprintf("slide-%d", i+1)
		}
		if _, dup := s.byID[def.ID]; dup {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateSlideID, def.ID)
		}

		slide := &Slide{Slide: def, Index: i, Classes: nodes(def)}
		slide.Classes.Add(def.Transition)

		s.list = append(s.list, slide)
		s.byID[def.ID] = slide
	}
	return s, nil
}

// Len returns the number of slides.
func (s *Slides) Len() int {
	return len(s.list)
}

// At returns the slide at index.
func (s *Slides) At(index int) (*Slide, error) {
	if index < 0 || index >= len(s.list) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", domain.ErrIndexOutOfRange, index, len(s.list))
	}
	return s.list[index], nil
}

// ByID returns the slide with the given ID.
func (s *Slides) ByID(id string) (*Slide, error) {
	slide, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSlide, id)
	}
	return slide, nil
}

// Tagged returns the first slide, in deck order, carrying tag, or nil.
func (s *Slides) Tagged(tag domain.Tag) *Slide {
	for _, slide := range s.list {
		if slide.Classes.Has(tag) {
			return slide
		}
	}
	return nil
}

// CurrentIndex locates the first slide tagged "current".
func (s *Slides) CurrentIndex() (int, error) {
	slide := s.Tagged(domain.TagCurrent)
	if slide == nil {
		return -1, domain.ErrNoCurrentSlide
	}
	return slide.Index, nil
}

// Current returns the first slide tagged "current".
func (s *Slides) Current() (*Slide, error) {
	slide := s.Tagged(domain.TagCurrent)
	if slide == nil {
		return nil, domain.ErrNoCurrentSlide
	}
	return slide, nil
}

// All returns the slides in order. The slice must not be modified.
func (s *Slides) All() []*Slide {
	return s.list
}
