package memory

import (
	"log/slog"
	"slices"

	"github.com/aretw0/slidekit/internal/logging"
	"github.com/aretw0/slidekit/pkg/domain"
	"github.com/aretw0/slidekit/pkg/ports"
)

// ClassList implements ports.ClassSet as an ordered list of class names.
// Not safe for concurrent use; the runtime owns it from a single goroutine.
type ClassList struct {
	owner   string
	classes []string
	logger  *slog.Logger
}

// NewClassList creates a class list for the node identified by owner.
func NewClassList(owner string, initial ...string) *ClassList {
	l := &ClassList{owner: owner, logger: logging.NewNop()}
	for _, c := range initial {
		l.Add(c)
	}
	return l
}

// Add appends class unless it is already present.
func (l *ClassList) Add(class string) {
	if class == "" || l.Has(class) {
		return
	}
	l.classes = append(l.classes, class)
	l.logger.Debug("class added", "slide", l.owner, "class", class)
}

// Remove drops class if present.
func (l *ClassList) Remove(class string) {
	i := slices.Index(l.classes, class)
	if i < 0 {
		return
	}
	l.classes = slices.Delete(l.classes, i, i+1)
	l.logger.Debug("class removed", "slide", l.owner, "class", class)
}

// Has reports whether class is present.
func (l *ClassList) Has(class string) bool {
	return slices.Contains(l.classes, class)
}

// Classes returns a copy of the classes in insertion order.
func (l *ClassList) Classes() []string {
	return slices.Clone(l.classes)
}

// NewNodeFactory returns a ports.NodeFactory producing plain class lists.
// Class changes are traced on logger at debug level.
func NewNodeFactory(logger *slog.Logger) ports.NodeFactory {
	if logger == nil {
		logger = logging.NewNop()
	}
	return func(slide domain.Slide) ports.ClassSet {
		l := NewClassList(slide.ID)
		l.logger = logger
		return l
	}
}
