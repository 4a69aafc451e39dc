package catalog

import (
	"strings"

	"github.com/jonwraymond/toolscope/namespace"
)

// Walker flattens namespace trees into catalogs.
//
// Contract:
// - Concurrency: safe for concurrent use; each Walk call owns its state.
// - Ownership: the namespace tree is read-only; the returned Catalog is caller-owned.
// - Errors: structural failures return *PathError wrapping ErrCycle,
//   ErrInvalidName, ErrDepthExceeded, or a callable's introspection error.
//   No partial catalog is returned on error.
type Walker struct {
	cfg Config
}

// New creates a Walker with the given configuration.
// Returns ErrConfiguration if the configuration is invalid.
func New(cfg Config) (*Walker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &Walker{cfg: cfg}, nil
}

var defaultWalker, _ = New(Config{})

// Walk flattens root with the default configuration.
func Walk(root *namespace.Namespace) (*Catalog, error) {
	return defaultWalker.Walk(root)
}

// Walk flattens root into a catalog keyed by dotted path. A nil or empty
// root yields an empty catalog.
func (w *Walker) Walk(root *namespace.Namespace) (*Catalog, error) {
	out := newCatalog()
	visiting := make(map[*namespace.Namespace]struct{})
	if err := w.walk(out, root, "", 1, visiting); err != nil {
		return nil, err
	}

	if w.cfg.Logger != nil {
		w.cfg.Logger.Logf("cataloged %d bindings", out.Len())
	}
	return out, nil
}

// walk appends every leaf below ns to out. prefix is "" at the root and
// otherwise ends with '.'.
func (w *Walker) walk(out *Catalog, ns *namespace.Namespace, prefix string, depth int, visiting map[*namespace.Namespace]struct{}) error {
	if ns == nil {
		return nil
	}
	if w.cfg.MaxDepth > 0 && depth > w.cfg.MaxDepth {
		return &PathError{Path: strings.TrimSuffix(prefix, "."), Err: ErrDepthExceeded}
	}
	if _, ok := visiting[ns]; ok {
		return &PathError{Path: strings.TrimSuffix(prefix, "."), Err: ErrCycle}
	}
	visiting[ns] = struct{}{}
	defer delete(visiting, ns)

	for name, b := range ns.All() {
		key := prefix + name
		if w.cfg.Strict && !validName(name) {
			return &PathError{Path: key, Err: ErrInvalidName}
		}

		if b.Kind() == namespace.KindNamespace {
			if err := w.walk(out, b.Namespace(), key+".", depth+1, visiting); err != nil {
				return err
			}
			continue
		}

		path, d, err := w.Classify(key, b, prefix)
		if err != nil {
			return err
		}
		out.put(path, d)
	}
	return nil
}

func validName(name string) bool {
	return name != "" && !strings.Contains(name, ".")
}
