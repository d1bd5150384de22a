package render

import (
	"github.com/bnema/dockyard/internal/application/usecase"
	"github.com/bnema/dockyard/internal/domain/dragdrop"
	"github.com/bnema/dockyard/internal/domain/geometry"
	"github.com/bnema/dockyard/internal/ui/interaction"
)

// TerminalMetrics sizes the layout in cells: one row headers, one column
// splitters, and tab buttons of " name ×".
func TerminalMetrics() geometry.Metrics {
	return geometry.Metrics{
		HeaderHeight:  1,
		SplitterSize:  1,
		TabGap:        1,
		OverflowWidth: 2,
		CloseWidth:    2,
		Measure:       geometry.CharMeasure(1, 4),
	}
}

// TerminalPolicy keeps panes at least three cells wide.
func TerminalPolicy(defaultWeight float64) usecase.LayoutPolicy {
	return usecase.LayoutPolicy{DefaultWeight: defaultWeight, MinSize: 3}
}

// TerminalInteraction starts drags after one cell.
func TerminalInteraction(centerFraction float64) interaction.Options {
	dd := dragdrop.Options{CenterFraction: centerFraction, EdgeMargin: 1, BarThickness: 1}
	if centerFraction <= 0 || centerFraction >= 1 {
		dd.CenterFraction = dragdrop.DefaultOptions().CenterFraction
	}
	return interaction.Options{DragThreshold: 1, DragDrop: dd}
}
