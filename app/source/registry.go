package source

import (
	"fmt"
)

// Registry is the ordered, immutable set of sources polled on every run.
type Registry struct {
	defs  []Definition
	index map[string]int
}

// NewRegistry validates and compiles every definition. Disabled definitions
// are dropped; duplicate names are an error.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{
		defs:  make([]Definition, 0, len(defs)),
		index: make(map[string]int, len(defs)),
	}

	for _, def := range defs {
		if !def.IsEnabled() {
			continue
		}
		if def.Format == "" {
			def.Format = FormatMarkup
		}
		if err := def.validate(); err != nil {
			return nil, fmt.Errorf("invalid source %q: %w", def.Name, err)
		}
		if _, dup := r.index[def.Name]; dup {
			return nil, fmt.Errorf("duplicate source name: %s", def.Name)
		}

		r.index[def.Name] = len(r.defs)
		r.defs = append(r.defs, def)
	}

	return r, nil
}

// All returns the definitions in polling order.
func (r *Registry) All() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

func (r *Registry) Get(name string) (Definition, bool) {
	i, ok := r.index[name]
	if !ok {
		return Definition{}, false
	}
	return r.defs[i], true
}

func (r *Registry) Len() int {
	return len(r.defs)
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for _, def := range r.defs {
		names = append(names, def.Name)
	}
	return names
}
