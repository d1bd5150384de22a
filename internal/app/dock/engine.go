// Package dock is the engine facade hosts embed: it owns the current layout,
// applies host commands and interaction gestures, caches geometry, and
// notifies listeners with the re-serialized document after every change.
//
// An Engine is not safe for concurrent use.
package dock

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/application/usecase"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/geometry"
	"github.com/bnema/dockyard/internal/infrastructure/codec"
	"github.com/bnema/dockyard/internal/logging"
	"github.com/bnema/dockyard/internal/ui/interaction"
)

// Options configure an Engine. Zero fields get defaults.
type Options struct {
	Registry    port.ContentRegistry
	IDGenerator usecase.IDGenerator
	Policy      usecase.LayoutPolicy
	Metrics     geometry.Metrics
	Interaction interaction.Options
	Bounds      image.Rectangle

	// Codec defaults to a JSONCodec over Registry with the placeholder policy.
	Codec port.LayoutCodec
	// PlaceholderType names the registry type shown for unknown content.
	PlaceholderType string
}

// Engine is the dockable layout engine.
type Engine struct {
	layoutUC  *usecase.ManageLayoutUseCase
	codec     port.LayoutCodec
	registry  port.ContentRegistry
	metrics   geometry.Metrics
	gestures  interaction.Options
	listeners []port.ChangeListener

	layout  *entity.Layout
	version uint64
	bounds  image.Rectangle
	state   interaction.State
	active  entity.NodeID

	frame        *geometry.Frame
	frameVersion uint64
	frameBounds  image.Rectangle
}

// NewEngine creates an engine holding the empty default layout.
func NewEngine(ctx context.Context, opts Options) *Engine {
	log := logging.FromContext(ctx)
	log.Debug().Msg("creating layout engine")

	if opts.IDGenerator == nil {
		opts.IDGenerator = UUIDGenerator()
	}
	if opts.Policy == (usecase.LayoutPolicy{}) {
		opts.Policy = usecase.DefaultLayoutPolicy()
	}
	if opts.Metrics.HeaderHeight == 0 && opts.Metrics.Measure == nil {
		opts.Metrics = geometry.DefaultMetrics()
	}
	if opts.Interaction == (interaction.Options{}) {
		opts.Interaction = interaction.DefaultOptions()
	}
	if opts.Codec == nil {
		opts.Codec = codec.NewJSONCodec(codec.Options{
			Registry:        opts.Registry,
			Policy:          codec.PolicyPlaceholder,
			PlaceholderType: opts.PlaceholderType,
			DefaultWeight:   opts.Policy.DefaultWeight,
			IDGenerator:     entity.IDGenerator(opts.IDGenerator),
		})
	}

	e := &Engine{
		layoutUC: usecase.NewManageLayoutUseCase(opts.IDGenerator, opts.Policy),
		codec:    opts.Codec,
		registry: opts.Registry,
		metrics:  opts.Metrics,
		gestures: opts.Interaction,
		layout:   entity.NewLayout(entity.IDGenerator(opts.IDGenerator)),
		bounds:   opts.Bounds,
	}
	e.active = e.fallbackActive()
	return e
}

// Layout returns the current tree. It is replaced, never modified, by
// later changes; callers must not modify it.
func (e *Engine) Layout() *entity.Layout { return e.layout }

// Version counts the changes applied since the engine was created.
func (e *Engine) Version() uint64 { return e.version }

// State returns the gesture in progress.
func (e *Engine) State() interaction.State { return e.state }

// ActiveTabset returns the tabset new tabs open in by default.
func (e *Engine) ActiveTabset() entity.NodeID { return e.active }

// Subscribe registers a listener. The returned function removes it.
func (e *Engine) Subscribe(l port.ChangeListener) func() {
	e.listeners = append(e.listeners, l)
	return func() {
		for i, cur := range e.listeners {
			if cur == l {
				e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

// SetBounds changes the rectangle the layout is resolved into.
func (e *Engine) SetBounds(r image.Rectangle) {
	e.bounds = r
}

// Frame returns the geometry of the current layout at the current bounds.
// It is recomputed only after a change or a resize.
func (e *Engine) Frame() *geometry.Frame {
	if e.frame == nil || e.frameVersion != e.version || e.frameBounds != e.bounds {
		e.frame = geometry.Resolve(e.layout, e.bounds, e.metrics)
		e.frameVersion = e.version
		e.frameBounds = e.bounds
	}
	return e.frame
}

// Serialize encodes the current layout.
func (e *Engine) Serialize() ([]byte, error) {
	return e.codec.Encode(e.layout)
}

// Deserialize replaces the layout with the decoded document. A malformed
// document leaves the current layout in place. Unknown content types are
// handled by the codec's policy and reported.
func (e *Engine) Deserialize(ctx context.Context, data []byte) (*entity.LoadReport, error) {
	l, report, err := e.codec.Decode(ctx, data)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("layout document rejected")
		return nil, err
	}
	if err := e.Load(ctx, l); err != nil {
		return nil, err
	}
	return report, nil
}

// Load installs an already built layout, such as one restored from a
// repository. Any gesture in progress is abandoned.
func (e *Engine) Load(ctx context.Context, l *entity.Layout) error {
	if l == nil {
		return fmt.Errorf("%w: layout is required", entity.ErrInvalidOperation)
	}
	if err := l.Validate(); err != nil {
		return err
	}

	changed := entity.NewChangeSet(l.IDs()...)
	changed.Add(e.layout.IDs()...)
	e.state = interaction.State{}
	e.commit(ctx, &usecase.MutationOutput{Layout: l, Changed: changed})

	logging.FromContext(ctx).Info().Int("nodes", l.Len()).Uint64("version", e.version).Msg("layout loaded")
	return nil
}

// commit installs a mutation result and notifies listeners.
func (e *Engine) commit(ctx context.Context, out *usecase.MutationOutput) {
	e.layout = out.Layout
	e.version++
	if _, ok := e.layout.Node(e.active); !ok {
		e.active = e.fallbackActive()
	}
	e.notify(ctx, out.Changed)
}

func (e *Engine) notify(ctx context.Context, changed entity.ChangeSet) {
	if len(e.listeners) == 0 {
		return
	}
	log := logging.FromContext(ctx)

	doc, err := e.codec.Encode(e.layout)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode layout for listeners")
		return
	}
	event := port.ChangeEvent{Version: e.version, Document: doc, Changed: changed.IDs()}

	var errs []error
	for _, l := range e.listeners {
		if err := l.LayoutChanged(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		log.Warn().Err(err).Uint64("version", e.version).Msg("layout listener failed")
	}
}

func (e *Engine) fallbackActive() entity.NodeID {
	main := e.layout.MainRow()
	if main == nil {
		return ""
	}
	var found entity.NodeID
	e.layout.WalkFrom(main.ID, func(n *entity.Node) bool {
		if n.Kind == entity.KindTabset {
			found = n.ID
			return false
		}
		return true
	})
	return found
}

// HandleEvent feeds an input event to the interaction state machine and
// applies the command of a completed gesture. The effect is returned so
// the host can draw outlines and previews, or open the overflow menu.
func (e *Engine) HandleEvent(ctx context.Context, ev interaction.Event) (interaction.Effect, error) {
	env := interaction.Env{Layout: e.layout, Frame: e.Frame(), Options: e.gestures}
	next, eff := interaction.Transition(e.state, ev, env)
	if next.Mode != e.state.Mode {
		logging.FromContext(ctx).Debug().
			Str("from", e.state.Mode.String()).
			Str("to", next.Mode.String()).
			Msg("gesture state changed")
	}
	e.state = next

	if eff.Command == nil {
		return eff, nil
	}
	if err := e.Apply(ctx, *eff.Command); err != nil {
		return eff, fmt.Errorf("%s: %w", eff.Command.Kind, err)
	}
	return eff, nil
}
