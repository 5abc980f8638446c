// pkg/console/registry.go
//
// The registry maps stable identifiers like "pipeline.train" to
// targets: named sets of entry points. It is populated once during
// startup wiring and only read afterwards, which keeps deferred
// actions late-bound without any dynamic code loading.

package console

import (
	"sort"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"github.com/wastevision/visionctl/pkg/vision_io"
)

// Handler is one invocable entry point on a target.
type Handler func(rc *vision_io.RuntimeContext, args Args) (interface{}, error)

// Target is a named set of entry points. Names starting with "_" are
// internal: callable, but excluded from contract diagnostics.
type Target map[string]Handler

// EntryPoints returns the target's public entry point names, sorted.
func (t Target) EntryPoints() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		if strings.HasPrefix(name, "_") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Module registers one or more targets on a registry. Application
// packages implement this to wire themselves in at startup.
type Module interface {
	Register(r *Registry)
}

type Registry struct {
	targets map[string]Target
}

func NewRegistry() *Registry {
	return &Registry{targets: make(map[string]Target)}
}

// Register adds a target under a stable identifier. Duplicate
// registration is a wiring bug and panics at startup.
func (r *Registry) Register(id string, target Target) {
	if _, exists := r.targets[id]; exists {
		panic(cerr.AssertionFailedf("duplicate action target %q", id))
	}
	r.targets[id] = target
}

// Resolve looks up a target by identifier.
func (r *Registry) Resolve(id string) (Target, error) {
	target, ok := r.targets[id]
	if !ok {
		return nil, &ResolutionError{Target: id}
	}
	return target, nil
}

// Targets returns all registered identifiers, sorted.
func (r *Registry) Targets() []string {
	ids := make([]string, 0, len(r.targets))
	for id := range r.targets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
