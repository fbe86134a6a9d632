// Package catalog maps transition kind names to their synchronization policy.
package catalog

import (
	"fmt"
	"os"
	"sort"

	"github.com/aretw0/slidekit/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Catalog is an immutable lookup table of transition kinds.
type Catalog struct {
	kinds map[string]domain.TransitionKind
}

// Builtins returns the kinds every catalog starts with.
func Builtins() []domain.TransitionKind {
	return []domain.TransitionKind{
		{Name: "dissolve", Sync: true},
		{Name: "fade", Sync: false},
		{Name: "slide", Sync: false},
	}
}

// New creates a catalog holding the built-in kinds plus extra.
// A built-in kind may be repeated only with the same policy.
func New(extra ...domain.TransitionKind) (*Catalog, error) {
	c := &Catalog{kinds: make(map[string]domain.TransitionKind)}
	for _, k := range Builtins() {
		c.kinds[k.Name] = k
	}

	builtin := make(map[string]bool)
	for _, k := range Builtins() {
		builtin[k.Name] = true
	}

	for _, k := range extra {
		if k.Name == "" {
			return nil, fmt.Errorf("transition kind without a name")
		}
		if existing, ok := c.kinds[k.Name]; ok && builtin[k.Name] && existing.Sync != k.Sync {
			return nil, fmt.Errorf("cannot redefine built-in transition kind %q", k.Name)
		}
		c.kinds[k.Name] = k
	}
	return c, nil
}

// Default returns a catalog with the built-in kinds only.
func Default() *Catalog {
	c, _ := New()
	return c
}

// Lookup returns the policy for kind.
// Callers must apply domain.DefaultTransition to an empty kind beforehand.
func (c *Catalog) Lookup(kind string) (domain.TransitionKind, error) {
	k, ok := c.kinds[kind]
	if !ok {
		return domain.TransitionKind{}, fmt.Errorf("%w: %q", domain.ErrUnknownTransitionKind, kind)
	}
	return k, nil
}

// Names returns the known kind names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.kinds))
	for name := range c.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// File represents the structure of a catalog YAML file:
//
//	kinds:
//	  zoom:
//	    sync: false
type File struct {
	Kinds map[string]struct {
		Sync bool `yaml:"sync"`
	} `yaml:"kinds"`
}

// Load reads a catalog file and returns the built-ins extended with its kinds.
// A missing file yields the default catalog.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse builds a catalog from YAML content.
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	names := make([]string, 0, len(f.Kinds))
	for name := range f.Kinds {
		names = append(names, name)
	}
	sort.Strings(names)

	extra := make([]domain.TransitionKind, 0, len(names))
	for _, name := range names {
		extra = append(extra, domain.TransitionKind{Name: name, Sync: f.Kinds[name].Sync})
	}
	return New(extra...)
}
