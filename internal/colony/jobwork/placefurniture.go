package jobwork

import (
	"github.com/lucas/colonysim/internal/colony"
)

// PlaceFurnitureHandler carries a crafted furniture piece from wherever it
// dropped to the tile the player chose for it, leaving it as a loose pile
// there for InstallFurnitureHandler to finish.
type PlaceFurnitureHandler struct{}

func NewPlaceFurnitureHandler() *PlaceFurnitureHandler { return &PlaceFurnitureHandler{} }

func (h *PlaceFurnitureHandler) JobType() colony.JobType { return colony.JobPlaceFurniture }

func (h *PlaceFurnitureHandler) Validate(ctx *JobContext) error {
	if _, ok := ctx.Colony.Resources.LooseAt(ctx.Job.Position); !ok {
		return colony.ErrNothingToHaul
	}
	if ctx.Job.Dest == nil {
		return colony.ErrTileNotBuildable
	}
	return nil
}

func (h *PlaceFurnitureHandler) Process(ctx *JobContext) JobStepResult {
	if err := h.Validate(ctx); err != nil {
		return StepDone(false, err.Error())
	}
	rtype, amount := ctx.Colony.Resources.RemovePickup(ctx.Job.Position, 1)
	if amount <= 0 {
		return StepDone(false, "furniture piece already moved")
	}
	ctx.Colony.Resources.DropLooseItem(*ctx.Job.Dest, rtype, amount, false)
	return StepDone(true, "furniture placed")
}
