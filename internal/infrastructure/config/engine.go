package config

import (
	"github.com/bnema/dockyard/internal/application/usecase"
	"github.com/bnema/dockyard/internal/domain/dragdrop"
	"github.com/bnema/dockyard/internal/domain/geometry"
	"github.com/bnema/dockyard/internal/infrastructure/codec"
	"github.com/bnema/dockyard/internal/ui/interaction"
)

// Metrics converts the layout section to geometry metrics.
func (c LayoutConfig) Metrics() geometry.Metrics {
	return geometry.Metrics{
		HeaderHeight:  c.HeaderHeight,
		SplitterSize:  c.SplitterSize,
		TabGap:        c.TabGap,
		OverflowWidth: c.OverflowWidth,
		CloseWidth:    c.CloseWidth,
		Measure:       geometry.CharMeasure(c.TabCharWidth, c.TabPadding),
	}
}

// Policy converts the layout section to mutation defaults.
func (c LayoutConfig) Policy() usecase.LayoutPolicy {
	return usecase.LayoutPolicy{DefaultWeight: c.DefaultWeight, MinSize: c.MinSize}
}

// Interaction converts the layout section to gesture options.
func (c LayoutConfig) Interaction() interaction.Options {
	dd := dragdrop.DefaultOptions()
	dd.CenterFraction = c.CenterZone
	dd.EdgeMargin = c.EdgeMargin
	return interaction.Options{DragThreshold: c.DragThreshold, DragDrop: dd}
}

// CodecOptions converts the codec and layout sections to codec options.
// The registry is left for the caller to set.
func (c *Config) CodecOptions() (codec.Options, error) {
	policy, err := codec.ParsePolicy(c.Codec.UnknownContent)
	if err != nil {
		return codec.Options{}, err
	}
	return codec.Options{
		Policy:            policy,
		PlaceholderType:   c.Codec.PlaceholderType,
		DefaultWeight:     c.Layout.DefaultWeight,
		DefaultBorderSize: c.Layout.BorderSize,
	}, nil
}
