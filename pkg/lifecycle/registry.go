package lifecycle

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownKind is returned when no script exists for an operation kind.
var ErrUnknownKind = errors.New("unknown operation kind")

// Registry maps operation kinds to their phase scripts. It is built
// once at startup and is read-only afterwards, so lookups need no
// locking.
type Registry struct {
	scripts map[Kind]Script
}

// NewRegistry builds a registry from the given scripts. Later scripts
// with the same kind override earlier ones.
func NewRegistry(scripts ...Script) *Registry {
	r := &Registry{scripts: make(map[Kind]Script, len(scripts))}
	for _, s := range scripts {
		r.scripts[s.Kind] = s
	}
	return r
}

// DefaultRegistry returns the registry with the reference scripts:
// the 6-phase service registration script and the 10-phase module
// registration script.
func DefaultRegistry() *Registry {
	return NewRegistry(serviceScript(), moduleScript())
}

// ScriptFor returns the script for the given kind. An unsupported kind
// is a programming error in the caller, reported via ErrUnknownKind.
func (r *Registry) ScriptFor(kind Kind) (Script, error) {
	s, ok := r.scripts[kind]
	if !ok {
		return Script{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return s, nil
}

// Kinds returns the supported operation kinds in sorted order.
func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.scripts))
	for k := range r.scripts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
