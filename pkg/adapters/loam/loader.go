package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/loam"
	"github.com/aretw0/slidekit/pkg/domain"
)

// Loader adapts a Loam repository of markdown documents to ports.DeckLoader.
// Every markdown document is one slide; its frontmatter carries the slide attributes.
type Loader struct {
	Repo *loam.TypedRepository[SlideMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[SlideMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir and wraps it in a Loader.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve deck path: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open deck %s: %w", absPath, err)
	}
	return New(loam.NewTypedRepository[SlideMetadata](repo)), nil
}

type entry struct {
	order int
	slide domain.Slide
}

// LoadDeck lists the repository and returns its slides sorted by order, then ID.
func (l *Loader) LoadDeck(ctx context.Context) ([]domain.Slide, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	entries := make([]entry, 0, len(docs))

	for _, doc := range docs {
		if !isSlide(doc.ID) {
			continue
		}
		meta := doc.Data
		if meta.Delay < 0 {
			return nil, fmt.Errorf("slide %s: negative delay %d", doc.ID, meta.Delay)
		}

		rawID := meta.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: '%s' is defined in both '%s' and '%s'", domain.ErrDuplicateSlideID, id, existingPath, doc.ID)
		}
		seen[id] = doc.ID

		entries = append(entries, entry{
			order: meta.Order,
			slide: domain.Slide{
				ID:              id,
				Title:           meta.Title,
				Content:         strings.TrimSpace(doc.Content),
				Transition:      meta.Transition,
				Delay:           time.Duration(meta.Delay) * time.Millisecond,
				OnUnload:        meta.OnUnload,
				OnTransitionEnd: meta.OnTransitionEnd,
				Current:         meta.Current,
			},
		})
	}

	if len(entries) == 0 {
		return nil, domain.ErrEmptyDeck
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].order != entries[j].order {
			return entries[i].order < entries[j].order
		}
		return entries[i].slide.ID < entries[j].slide.ID
	})

	slides := make([]domain.Slide, len(entries))
	for i, e := range entries {
		slides[i] = e.slide
	}
	return slides, nil
}

// isSlide accepts markdown documents, and IDs Loam already stripped of their extension.
func isSlide(id string) bool {
	ext := strings.ToLower(filepath.Ext(id))
	return ext == "" || ext == ".md" || ext == ".markdown"
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
