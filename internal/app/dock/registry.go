package dock

import (
	"sort"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/domain/entity"
)

// StaticRegistry is a map-backed content registry.
type StaticRegistry struct {
	handles map[string]entity.ContentHandle
}

var _ port.ContentRegistry = (*StaticRegistry)(nil)

// NewStaticRegistry creates a registry knowing the given content types,
// each resolving to its own name.
func NewStaticRegistry(types ...string) *StaticRegistry {
	r := &StaticRegistry{handles: make(map[string]entity.ContentHandle, len(types))}
	for _, t := range types {
		r.Register(t, t)
	}
	return r
}

// Register binds a content type to a handle, replacing any previous one.
func (r *StaticRegistry) Register(contentType string, handle entity.ContentHandle) {
	r.handles[contentType] = handle
}

// Resolve returns the handle registered for contentType.
func (r *StaticRegistry) Resolve(contentType string) (entity.ContentHandle, bool) {
	h, ok := r.handles[contentType]
	return h, ok
}

// Types returns the registered content types sorted.
func (r *StaticRegistry) Types() []string {
	types := make([]string, 0, len(r.handles))
	for t := range r.handles {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
