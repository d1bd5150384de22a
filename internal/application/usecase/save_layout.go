package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/repository"
	"github.com/bnema/dockyard/internal/logging"
)

// ErrLayoutNotFound is returned when no layout is stored for a session.
var ErrLayoutNotFound = errors.New("layout not found")

// SaveLayoutUseCase stores the layout of a session.
type SaveLayoutUseCase struct {
	repo  repository.LayoutRepository
	codec port.LayoutCodec
	now   func() time.Time
}

// NewSaveLayoutUseCase creates a new SaveLayoutUseCase.
func NewSaveLayoutUseCase(repo repository.LayoutRepository, codec port.LayoutCodec) *SaveLayoutUseCase {
	return &SaveLayoutUseCase{repo: repo, codec: codec, now: time.Now}
}

// SaveLayoutInput names what to store. Either Layout or Document is set;
// a raw Document is loaded first so only valid layouts reach storage.
type SaveLayoutInput struct {
	SessionID entity.SessionID
	Layout    *entity.Layout
	Document  []byte
}

// SaveLayoutOutput contains the stored record and the load report of a
// raw document.
type SaveLayoutOutput struct {
	Record *entity.LayoutRecord
	Report *entity.LoadReport
}

// Execute encodes the layout in canonical form and upserts it.
func (uc *SaveLayoutUseCase) Execute(ctx context.Context, input SaveLayoutInput) (*SaveLayoutOutput, error) {
	log := logging.FromContext(ctx)

	if err := input.SessionID.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %q", err, input.SessionID)
	}

	layout := input.Layout
	var report *entity.LoadReport
	if layout == nil {
		if len(input.Document) == 0 {
			return nil, fmt.Errorf("%w: layout or document is required", entity.ErrMalformedDocument)
		}
		var err error
		layout, report, err = uc.codec.Decode(ctx, input.Document)
		if err != nil {
			return nil, err
		}
	}

	data, err := uc.codec.Encode(layout)
	if err != nil {
		return nil, err
	}

	record := &entity.LayoutRecord{
		SessionID: input.SessionID,
		Document:  data,
		UpdatedAt: uc.now(),
	}
	if err := uc.repo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save layout: %w", err)
	}

	log.Debug().
		Str("session_id", string(input.SessionID)).
		Int("bytes", len(data)).
		Msg("layout saved")
	return &SaveLayoutOutput{Record: record, Report: report}, nil
}
