// file: internals/features/scheduling/slots/service/batch.go
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	model "formaplan_backend/internals/features/scheduling/slots/model"
)

// SlotWriter is the narrow store surface the committer needs.
// *repository.SessionSlotRepository satisfies it.
type SlotWriter interface {
	Create(ctx context.Context, slot *model.SessionSlotModel) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BatchResult always carries the partial-success shape: the caller can
// retry the missing half instead of assuming all-or-nothing.
type BatchResult struct {
	Succeeded []model.SessionSlotModel
	Err       error
}

// BatchCommitter orchestrates preset expansion + store writes for
// multi-slot creation (full_day → two rows). Writes run as a saga: on a
// later failure the already-committed slots get a compensating delete;
// if that delete itself fails the slot stays and is reported in
// Succeeded alongside the error.
type BatchCommitter struct {
	Writer   SlotWriter
	Expander *PresetExpander
}

func NewBatchCommitter(w SlotWriter, e *PresetExpander) *BatchCommitter {
	return &BatchCommitter{Writer: w, Expander: e}
}

// Commit expands mode into ranges and creates one slot per range, all
// sharing base's session, date, resources and delivery mode.
func (b *BatchCommitter) Commit(ctx context.Context, base model.SessionSlotModel, mode SlotMode, custom *TimeRange) BatchResult {
	ranges, err := b.Expander.Expand(mode, custom)
	if err != nil {
		return BatchResult{Succeeded: []model.SessionSlotModel{}, Err: err}
	}

	succeeded := make([]model.SessionSlotModel, 0, len(ranges))
	for i, rng := range ranges {
		slot := base
		slot.SessionSlotID = uuid.Nil // fresh PK per row
		slot.SessionSlotStartTime = rng.Start
		slot.SessionSlotEndTime = rng.End

		if err := b.Writer.Create(ctx, &slot); err != nil {
			err = fmt.Errorf("create slot %d/%d: %w", i+1, len(ranges), err)
			return BatchResult{Succeeded: b.compensate(ctx, succeeded), Err: err}
		}
		succeeded = append(succeeded, slot)
	}
	return BatchResult{Succeeded: succeeded}
}

// compensate tries to undo the slots committed before the failure.
// Whatever cannot be undone is returned so the caller can reconcile.
func (b *BatchCommitter) compensate(ctx context.Context, committed []model.SessionSlotModel) []model.SessionSlotModel {
	retained := make([]model.SessionSlotModel, 0, len(committed))
	for _, slot := range committed {
		if err := b.Writer.Delete(ctx, slot.SessionSlotID); err != nil {
			retained = append(retained, slot)
		}
	}
	return retained
}
