package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/geometry"
	"github.com/bnema/dockyard/internal/logging"
)

// ResizeSplitterInput contains parameters for dragging a splitter.
type ResizeSplitterInput struct {
	Layout        *entity.Layout
	RowID         entity.NodeID
	SplitterIndex int // handle between children SplitterIndex and SplitterIndex+1
	DeltaPixels   int // positive moves the handle right or down
	// Extent is the row's main-axis length minus its handles, as resolved
	// by the geometry of the frame the drag started in.
	Extent int
}

// ResizeSplitterOutput contains the result of a splitter drag.
type ResizeSplitterOutput struct {
	MutationOutput
	// AppliedPixels is the delta left after clamping to the min sizes.
	AppliedPixels int
}

// ResizeSplitter moves weight between the two children adjacent to a
// splitter. The delta is clamped so neither child drops below its minimum
// size; whatever does not fit is discarded and no other sibling changes.
func (uc *ManageLayoutUseCase) ResizeSplitter(ctx context.Context, input ResizeSplitterInput) (*ResizeSplitterOutput, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("row_id", string(input.RowID)).
		Int("splitter", input.SplitterIndex).
		Int("delta", input.DeltaPixels).
		Msg("resizing splitter")

	applied := 0
	out, err := uc.mutate(input.Layout, func(l *entity.Layout, changes entity.ChangeSet) error {
		row, err := lookup(l, input.RowID, entity.KindRow)
		if err != nil {
			return err
		}
		if input.SplitterIndex < 0 || input.SplitterIndex >= len(row.Children)-1 {
			return fmt.Errorf("%w: row %s has no splitter %d", entity.ErrInvalidOperation, row.ID, input.SplitterIndex)
		}
		if input.Extent <= 0 {
			return fmt.Errorf("%w: row extent must be positive", entity.ErrInvalidOperation)
		}

		var total float64
		for _, id := range row.Children {
			c, _ := l.Node(id)
			total += c.Weight
		}
		before, _ := l.Node(row.Children[input.SplitterIndex])
		after, _ := l.Node(row.Children[input.SplitterIndex+1])

		// Pixel space of the two siblings and how far each may shrink.
		beforePx := geometry.WeightToPixels(before.Weight, input.Extent, total)
		afterPx := geometry.WeightToPixels(after.Weight, input.Extent, total)
		shrinkBefore := math.Max(beforePx-float64(uc.minSizeOf(before)), 0)
		shrinkAfter := math.Max(afterPx-float64(uc.minSizeOf(after)), 0)

		delta := clampFloat64(float64(input.DeltaPixels), -shrinkBefore, shrinkAfter)
		applied = int(math.Trunc(delta))
		if applied == 0 {
			return nil
		}

		dw := geometry.PixelsToWeight(applied, input.Extent, total)
		before.Weight += dw
		after.Weight -= dw
		changes.Add(row.ID, before.ID, after.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug().Int("applied", applied).Msg("splitter resized")
	return &ResizeSplitterOutput{MutationOutput: *out, AppliedPixels: applied}, nil
}

// minSizeOf returns the pixel floor of a row child. A node never gets
// thinner than one pixel so its weight stays positive.
func (uc *ManageLayoutUseCase) minSizeOf(n *entity.Node) int {
	return max(n.MinSize, uc.policy.MinSize, 1)
}

func clampFloat64(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
