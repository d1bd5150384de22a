// Package codec converts layouts to and from their persisted JSON document.
package codec

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/logging"
)

// UnknownContentPolicy decides what happens to tabs whose content type the
// registry does not know.
type UnknownContentPolicy string

const (
	// PolicyDrop removes such tabs from the loaded layout.
	PolicyDrop UnknownContentPolicy = "drop"
	// PolicyPlaceholder keeps them, bound to the placeholder content handle.
	PolicyPlaceholder UnknownContentPolicy = "placeholder"
)

// ParsePolicy maps a config value to a policy.
func ParsePolicy(s string) (UnknownContentPolicy, error) {
	switch UnknownContentPolicy(s) {
	case PolicyDrop, PolicyPlaceholder:
		return UnknownContentPolicy(s), nil
	case "":
		return PolicyPlaceholder, nil
	default:
		return "", fmt.Errorf("unknown content policy %q (want %q or %q)", s, PolicyDrop, PolicyPlaceholder)
	}
}

// Options configure a JSONCodec.
type Options struct {
	// Registry resolves tab content types. A nil registry accepts every
	// type with a nil handle, which is enough to check documents.
	Registry port.ContentRegistry
	Policy   UnknownContentPolicy
	// PlaceholderType is the registry type whose handle stands in for
	// unknown content under PolicyPlaceholder.
	PlaceholderType   string
	DefaultWeight     float64
	DefaultBorderSize int
	// IDGenerator names nodes the document left without an id.
	IDGenerator entity.IDGenerator
}

// JSONCodec implements port.LayoutCodec.
type JSONCodec struct {
	opts Options
}

var _ port.LayoutCodec = (*JSONCodec)(nil)

// NewJSONCodec creates a codec, filling unset options with defaults.
func NewJSONCodec(opts Options) *JSONCodec {
	if opts.Policy == "" {
		opts.Policy = PolicyPlaceholder
	}
	if opts.DefaultWeight <= 0 {
		opts.DefaultWeight = entity.DefaultWeight
	}
	if opts.DefaultBorderSize <= 0 {
		opts.DefaultBorderSize = entity.DefaultBorderSize
	}
	if opts.IDGenerator == nil {
		opts.IDGenerator = sequence("n")
	}
	return &JSONCodec{opts: opts}
}

// Encode writes the layout as an indented JSON document.
func (c *JSONCodec) Encode(l *entity.Layout) ([]byte, error) {
	if l == nil {
		return nil, fmt.Errorf("layout is required")
	}
	data, err := json.MarshalIndent(ToDocument(l), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal layout: %w", err)
	}
	return data, nil
}

// Decode parses and loads a document. Malformed input fails the whole load
// with ErrMalformedDocument. Unknown content types do not: they are handled
// by the policy and listed in the report.
func (c *JSONCodec) Decode(ctx context.Context, data []byte) (*entity.Layout, *entity.LoadReport, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, nil, err
	}
	return c.FromDocument(ctx, doc)
}

// ParseDocument strictly unmarshals a document without loading it.
// Unknown fields and trailing data are rejected.
func ParseDocument(data []byte) (*entity.Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", entity.ErrMalformedDocument)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc entity.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrMalformedDocument, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", entity.ErrMalformedDocument)
	}
	return &doc, nil
}

// FromDocument builds a layout from a parsed document.
func (c *JSONCodec) FromDocument(ctx context.Context, doc *entity.Document) (*entity.Layout, *entity.LoadReport, error) {
	if doc == nil {
		return nil, nil, fmt.Errorf("%w: no document", entity.ErrMalformedDocument)
	}
	if doc.Version < 1 || doc.Version > entity.DocumentVersion {
		return nil, nil, fmt.Errorf("%w: unsupported version %d", entity.ErrMalformedDocument, doc.Version)
	}

	b := newBuilder(c.opts)
	l, err := b.build(&doc.Layout)
	if err != nil {
		return nil, nil, err
	}

	log := logging.FromContext(ctx)
	if len(b.report.Unknown) > 0 {
		log.Warn().
			Int("unknown", len(b.report.Unknown)).
			Str("policy", string(c.opts.Policy)).
			Msg("layout references unknown content types")
	}
	if len(b.report.Coerced) > 0 {
		log.Debug().Strs("coerced", b.report.Coerced).Msg("layout attributes coerced on load")
	}
	return l, b.report, nil
}

func sequence(prefix string) entity.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}
