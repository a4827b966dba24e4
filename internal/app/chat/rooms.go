package chat

import "strings"

// Registry is the fixed set of rooms clients may join.
// It is built once at startup and never mutated afterwards.
type Registry struct {
	names []string
	index map[string]struct{}
}

// NewRegistry builds a registry from the configured room names.
// Names are trimmed; empty names and duplicates are skipped.
func NewRegistry(names []string) *Registry {
	r := &Registry{
		names: make([]string, 0, len(names)),
		index: make(map[string]struct{}, len(names)),
	}

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := r.index[name]; dup {
			continue
		}
		r.index[name] = struct{}{}
		r.names = append(r.names, name)
	}

	return r
}

// IsValid reports whether name, after trimming, is a configured room.
func (r *Registry) IsValid(name string) bool {
	_, ok := r.index[strings.TrimSpace(name)]
	return ok
}

// List returns the rooms in configured order.
func (r *Registry) List() []string {
	return append([]string(nil), r.names...)
}
