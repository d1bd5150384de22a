package port

import (
	"context"

	"github.com/bnema/dockyard/internal/domain/entity"
)

// LayoutCodec converts layouts to and from their persisted document.
type LayoutCodec interface {
	// Encode serializes a layout.
	Encode(layout *entity.Layout) ([]byte, error)
	// Decode validates and builds a layout. A malformed document fails
	// with entity.ErrMalformedDocument; unknown content is handled by the
	// codec's policy and listed in the report.
	Decode(ctx context.Context, data []byte) (*entity.Layout, *entity.LoadReport, error)
	// Schema returns the JSON schema of the document.
	Schema() ([]byte, error)
}
