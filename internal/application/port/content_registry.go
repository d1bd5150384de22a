package port

import "github.com/bnema/dockyard/internal/domain/entity"

// ContentRegistry maps content types to the render handles of the host.
// The layout only stores the handle; it never calls into it.
type ContentRegistry interface {
	// Resolve returns the handle registered for contentType.
	Resolve(contentType string) (entity.ContentHandle, bool)
	// Types lists the registered content types.
	Types() []string
}
