package namespace

import (
	"iter"
	"reflect"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Entry is a single name-to-binding association.
type Entry struct {
	Name    string
	Binding Binding
}

// Namespace is an ordered mapping from binding name to Binding.
//
// Contract:
// - Concurrency: not safe for concurrent mutation; concurrent reads are safe
//   once construction is finished.
// - Ordering: entries are iterated in first-insertion order. Re-setting an
//   existing name replaces its binding but keeps its position.
// - Nil: a nil *Namespace behaves as an empty namespace for all read methods.
type Namespace struct {
	entries *orderedmap.OrderedMap[string, Binding]
}

// New creates an empty namespace.
func New() *Namespace {
	return &Namespace{entries: orderedmap.New[string, Binding]()}
}

// FromMap builds a namespace from a Go map, classifying each value with Of.
// Keys are inserted in sorted order.
func FromMap(m map[string]any) *Namespace {
	return fromMapValue(reflect.ValueOf(m))
}

// fromMapValue builds a namespace from any map with a string key kind.
func fromMapValue(rv reflect.Value) *Namespace {
	ns := New()
	if !rv.IsValid() || rv.Len() == 0 {
		return ns
	}
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	for _, k := range keys {
		ns.Set(k.String(), Of(rv.MapIndex(k).Interface()))
	}
	return ns
}

// Set binds name to b and returns the namespace for chaining.
func (n *Namespace) Set(name string, b Binding) *Namespace {
	if n.entries == nil {
		n.entries = orderedmap.New[string, Binding]()
	}
	n.entries.Set(name, b)
	return n
}

// Bind binds name to Of(v) and returns the namespace for chaining.
func (n *Namespace) Bind(name string, v any) *Namespace {
	return n.Set(name, Of(v))
}

// Get returns the binding for name.
func (n *Namespace) Get(name string) (Binding, bool) {
	if n == nil || n.entries == nil {
		return Binding{}, false
	}
	return n.entries.Get(name)
}

// Len returns the number of direct bindings.
func (n *Namespace) Len() int {
	if n == nil || n.entries == nil {
		return 0
	}
	return n.entries.Len()
}

// Entries returns a snapshot of the direct bindings in insertion order.
func (n *Namespace) Entries() []Entry {
	if n.Len() == 0 {
		return nil
	}
	out := make([]Entry, 0, n.entries.Len())
	for name, b := range n.All() {
		out = append(out, Entry{Name: name, Binding: b})
	}
	return out
}

// All iterates the direct bindings in insertion order.
func (n *Namespace) All() iter.Seq2[string, Binding] {
	return func(yield func(string, Binding) bool) {
		if n == nil || n.entries == nil {
			return
		}
		for pair := n.entries.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}
