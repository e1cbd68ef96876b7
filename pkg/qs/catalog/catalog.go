package catalog

import (
	"sync"

	"github.com/randalmurphal/quickscripts/pkg/qs/config"
	"github.com/randalmurphal/quickscripts/pkg/qs/vars"
)

// Entry is a resolvable action.
type Entry struct {
	// Name is the action name.
	Name string

	// Template is the raw template.
	Template string

	// Source is the config file that declared the action.
	Source string

	// Vars are the defaults declared in Source. They apply only to actions
	// from the same file.
	Vars *vars.Table
}

// Catalog is a thread-safe set of entries keyed by action name that
// remembers insertion order.
type Catalog struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]Entry
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		entries: make(map[string]Entry),
	}
}

// FromFiles builds a catalog from config files given highest priority first.
// Nil files are skipped.
func FromFiles(files ...*config.ActionFile) *Catalog {
	c := New()
	for _, f := range files {
		c.AddFile(f)
	}
	return c
}

// AddFile adds every action of f in file order and returns the names that
// were shadowed by an earlier registration.
func (c *Catalog) AddFile(f *config.ActionFile) []string {
	if f == nil {
		return nil
	}
	var shadowed []string
	for _, a := range f.Actions {
		e := Entry{Name: a.Name, Template: a.Template, Source: f.Path, Vars: f.Vars}
		if !c.Add(e) {
			shadowed = append(shadowed, a.Name)
		}
	}
	return shadowed
}

// Add registers e unless its name is already present. It reports whether
// e was added.
func (c *Catalog) Add(e Entry) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[e.Name]; ok {
		return false
	}
	c.entries[e.Name] = e
	c.order = append(c.order, e.Name)
	return true
}

// Get returns the entry for name and whether it exists.
func (c *Catalog) Get(name string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[name]
	return e, ok
}

// Has returns true if name is registered.
func (c *Catalog) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[name]
	return ok
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// Names returns the action names in insertion order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// Range calls fn for each entry in insertion order until fn returns false.
// It iterates over a snapshot, so fn may call Add.
func (c *Catalog) Range(fn func(Entry) bool) {
	c.mu.RLock()
	snapshot := make([]Entry, len(c.order))
	for i, name := range c.order {
		snapshot[i] = c.entries[name]
	}
	c.mu.RUnlock()

	for _, e := range snapshot {
		if !fn(e) {
			return
		}
	}
}
