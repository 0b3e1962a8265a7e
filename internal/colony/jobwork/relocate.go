package jobwork

import (
	"github.com/lucas/colonysim/internal/colony"
)

// RelocateHandler moves stock out of a tile whose zone filter no longer
// accepts it (or that's pending removal) into the destination the
// Relocation Planner already picked (spec §4.6).
type RelocateHandler struct{}

func NewRelocateHandler() *RelocateHandler { return &RelocateHandler{} }

func (h *RelocateHandler) JobType() colony.JobType { return colony.JobRelocate }

func (h *RelocateHandler) Validate(ctx *JobContext) error {
	if ctx.Job.Dest == nil {
		return colony.ErrZoneNotFound
	}
	return nil
}

func (h *RelocateHandler) Process(ctx *JobContext) JobStepResult {
	if err := h.Validate(ctx); err != nil {
		return StepDone(false, err.Error())
	}
	_, amount, ok := ctx.Colony.Zones.StorageAt(ctx.Job.Position)
	if !ok || amount <= 0 {
		return StepDone(true, "tile already empty")
	}
	rtype, taken := ctx.Colony.Zones.RemoveFromTileStorage(ctx.Job.Position, amount)
	if taken <= 0 {
		return StepDone(true, "tile already empty")
	}
	ctx.Colonist.SetCarrying(rtype, taken)
	accepted := ctx.Colony.Zones.AddToTileStorage(*ctx.Job.Dest, rtype, taken)
	if accepted < taken {
		ctx.Colony.Zones.AddToTileStorage(ctx.Job.Position, rtype, taken-accepted)
	}
	ctx.Colonist.SetCarrying("", 0)
	return StepDone(true, "relocated")
}
