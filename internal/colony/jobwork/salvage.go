package jobwork

import (
	"github.com/lucas/colonysim/internal/colony"
)

const salvageTicksPerUnit = 4

// SalvageHandler strips a salvage object down to scrap, same pipeline as
// GatheringHandler, and clears the tile back to floor once exhausted since
// a salvage object (unlike a node) doesn't regrow or sit idle empty.
type SalvageHandler struct{}

func NewSalvageHandler() *SalvageHandler { return &SalvageHandler{} }

func (h *SalvageHandler) JobType() colony.JobType { return colony.JobSalvage }

func (h *SalvageHandler) Validate(ctx *JobContext) error {
	if _, ok := ctx.Colony.Resources.NodeAt(ctx.Job.Position); !ok {
		return colony.ErrResourceNodeNotFound
	}
	return nil
}

func (h *SalvageHandler) Process(ctx *JobContext) JobStepResult {
	node, ok := ctx.Colony.Resources.NodeAt(ctx.Job.Position)
	if !ok {
		return StepDone(false, "salvage object gone")
	}
	if ctx.Job.Required == 0 {
		ctx.Job.Required = node.Max * salvageTicksPerUnit
	}
	ctx.Job.Progress++
	_, ok = ctx.Colony.Resources.HarvestTick(ctx.Job.Position, ctx.Job.Progress, ctx.Job.Required)
	if !ok {
		ctx.Colony.Grid.SetTile(ctx.Job.Position, colony.TileFloor)
		return StepDone(true, "salvage stripped")
	}
	if ctx.Job.Progress >= ctx.Job.Required {
		ctx.Colony.Grid.SetTile(ctx.Job.Position, colony.TileFloor)
		return StepDone(true, "salvage stripped")
	}
	return StepContinue()
}
