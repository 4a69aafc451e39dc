package catalog

import (
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Catalog is the flat result of a walk: dotted path to Descriptor, in
// traversal order. It marshals to a JSON object with keys in that order.
type Catalog struct {
	entries *orderedmap.OrderedMap[string, Descriptor]
}

func newCatalog() *Catalog {
	return &Catalog{entries: orderedmap.New[string, Descriptor]()}
}

// put records d under path. An existing path keeps its position and gets the
// new descriptor.
func (c *Catalog) put(path string, d Descriptor) {
	c.entries.Set(path, d)
}

// Len returns the number of descriptors.
func (c *Catalog) Len() int {
	if c == nil || c.entries == nil {
		return 0
	}
	return c.entries.Len()
}

// Get returns the descriptor recorded for path.
func (c *Catalog) Get(path string) (Descriptor, bool) {
	if c == nil || c.entries == nil {
		return nil, false
	}
	return c.entries.Get(path)
}

// Paths returns all dotted paths in traversal order.
func (c *Catalog) Paths() []string {
	out := make([]string, 0, c.Len())
	for path := range c.All() {
		out = append(out, path)
	}
	return out
}

// All iterates the descriptors in traversal order.
func (c *Catalog) All() iter.Seq2[string, Descriptor] {
	return func(yield func(string, Descriptor) bool) {
		if c == nil || c.entries == nil {
			return
		}
		for pair := c.entries.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// MarshalJSON encodes the catalog as a single JSON object.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	if c == nil || c.entries == nil {
		return []byte("{}"), nil
	}
	return c.entries.MarshalJSON()
}
