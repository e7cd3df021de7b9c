package catalog

import (
	"slices"
	"sync"

	"github.com/Ellandq/Wizard-Duelling/internal/pattern"
)

// Catalog holds the templates a stroke is matched against. Entries are keyed
// by identity and kept in insertion order, which is also the order in which
// recognition evaluates them.
type Catalog struct {
	mu        sync.RWMutex
	templates []*pattern.Template
	index     map[*pattern.Template]struct{}
}

func New() *Catalog {
	return &Catalog{index: make(map[*pattern.Template]struct{})}
}

// Add inserts t unless it is nil or already present. It reports whether the
// catalog changed.
func (c *Catalog) Add(t *pattern.Template) bool {
	if t == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.index[t]; ok {
		return false
	}
	c.index[t] = struct{}{}
	c.templates = append(c.templates, t)
	return true
}

func (c *Catalog) Contains(t *pattern.Template) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.index[t]
	return ok
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.templates)
}

// Templates returns a snapshot safe to iterate while other goroutines add.
func (c *Catalog) Templates() []*pattern.Template {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.templates)
}

// Lookup returns the first template with the given name.
func (c *Catalog) Lookup(name string) (*pattern.Template, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.templates {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}
