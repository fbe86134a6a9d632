package ports

import "github.com/aretw0/slidekit/pkg/domain"

// ClassSet is the class list of a slide node.
// Implementations hold no state beyond the node they target.
type ClassSet interface {
	Add(class string)
	Remove(class string)
	Has(class string) bool
	// Classes returns the classes in insertion order.
	Classes() []string
}

// NodeFactory creates the ClassSet backing a slide.
// Environments that observe class changes (to emit completion signals) hook in here.
type NodeFactory func(slide domain.Slide) ClassSet
