// Package vars provides the ordered variable table that templates are
// rendered against.
//
// A Table maps variable names to string values and remembers the order in
// which names were first set. Positional arguments are stored under the
// single-digit names "0" through "9"; named arguments use identifiers.
//
// Truthiness is the only notion of "set" the template language has: a
// variable is truthy when it exists and its value is not the empty string.
package vars

import (
	"strconv"
)

// MaxPositional is the number of positional slots ("0" through "9").
const MaxPositional = 10

// entry is a single name/value pair.
type entry struct {
	name  string
	value string
}

// Table is an ordered name→value mapping.
//
// Set overwrites existing names in place and appends new names at the end.
// The zero value is an empty table ready for use. A Table is not safe for
// concurrent mutation; renders operate on a Snapshot instead.
type Table struct {
	entries []entry
	index   map[string]int
}

// New creates an empty Table.
func New() *Table {
	return &Table{}
}

// FromPairs creates a Table from alternating name, value arguments.
// A trailing name without a value is ignored.
//
// Example:
//
//	t := vars.FromPairs("name", "World", "0", "first")
func FromPairs(kv ...string) *Table {
	t := New()
	for i := 0; i+1 < len(kv); i += 2 {
		t.Set(kv[i], kv[i+1])
	}
	return t
}

// Set sets name to value, overwriting any existing value.
func (t *Table) Set(name, value string) {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if i, ok := t.index[name]; ok {
		t.entries[i].value = value
		return
	}
	t.index[name] = len(t.entries)
	t.entries = append(t.entries, entry{name: name, value: value})
}

// Get returns the value for name and whether it exists.
func (t *Table) Get(name string) (string, bool) {
	if t == nil {
		return "", false
	}
	i, ok := t.index[name]
	if !ok {
		return "", false
	}
	return t.entries[i].value, true
}

// Truthy returns the value for name if the variable exists and is non-empty.
func (t *Table) Truthy(name string) (string, bool) {
	v, ok := t.Get(name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Len returns the number of variables.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Names returns the variable names in insertion order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, len(t.entries))
	for i, e := range t.entries {
		names[i] = e.name
	}
	return names
}

// Each calls fn for every variable in insertion order.
// Iteration stops when fn returns false.
func (t *Table) Each(fn func(name, value string) bool) {
	if t == nil {
		return
	}
	for _, e := range t.entries {
		if !fn(e.name, e.value) {
			return
		}
	}
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	c := New()
	t.Each(func(name, value string) bool {
		c.Set(name, value)
		return true
	})
	return c
}

// Merge returns a new table holding base's variables overwritten by
// override's. Neither input is modified. Either may be nil.
func Merge(base, override *Table) *Table {
	merged := base.Clone()
	override.Each(func(name, value string) bool {
		merged.Set(name, value)
		return true
	})
	return merged
}

// Snapshot is a read-only view of a Table frozen at the time it was taken.
type Snapshot struct {
	values map[string]string
}

// Snapshot freezes the current contents of the table. Later calls to Set
// on the table are not visible through the returned value.
func (t *Table) Snapshot() Snapshot {
	values := make(map[string]string, t.Len())
	t.Each(func(name, value string) bool {
		values[name] = value
		return true
	})
	return Snapshot{values: values}
}

// Get returns the value for name and whether it exists.
func (s Snapshot) Get(name string) (string, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Truthy returns the value for name if it exists and is non-empty.
func (s Snapshot) Truthy(name string) (string, bool) {
	v, ok := s.values[name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Len returns the number of variables in the snapshot.
func (s Snapshot) Len() int {
	return len(s.values)
}

// PositionalName returns the variable name of positional slot i.
func PositionalName(i int) string {
	return strconv.Itoa(i)
}

// IsPositional reports whether name is a positional slot ("0" through "9").
func IsPositional(name string) bool {
	return len(name) == 1 && isDigit(name[0])
}

// ValidName reports whether name is a valid named-variable identifier:
// a letter followed by letters, digits, '-' or '_'.
func ValidName(name string) bool {
	if name == "" || !isAlpha(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !IsIdentChar(name[i]) {
			return false
		}
	}
	return true
}

// IsIdentChar reports whether c may appear in a variable name.
func IsIdentChar(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '-' || c == '_'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
