package jobwork

import (
	"github.com/lucas/colonysim/internal/colony"
)

// HaulHandler moves a loose pile into the nearest accepting stockpile tile
// chosen by the Supply Planner when the job was created.
type HaulHandler struct{}

func NewHaulHandler() *HaulHandler { return &HaulHandler{} }

func (h *HaulHandler) JobType() colony.JobType { return colony.JobHaul }

func (h *HaulHandler) Validate(ctx *JobContext) error {
	if _, ok := ctx.Colony.Resources.LooseAt(ctx.Job.Position); !ok {
		return colony.ErrNothingToHaul
	}
	if ctx.Job.Dest == nil {
		return colony.ErrZoneNotFound
	}
	return nil
}

func (h *HaulHandler) Process(ctx *JobContext) JobStepResult {
	if err := h.Validate(ctx); err != nil {
		return StepDone(false, err.Error())
	}
	rtype, amount := ctx.Colony.Resources.RemovePickup(ctx.Job.Position, ctx.Colony.Balance.MaxCarryAmount)
	if amount <= 0 {
		return StepDone(false, "pile already emptied")
	}
	ctx.Colonist.SetCarrying(rtype, amount)
	accepted := ctx.Colony.Zones.AddToTileStorage(*ctx.Job.Dest, rtype, amount)
	if accepted < amount {
		ctx.Colony.Resources.DropLooseItem(ctx.Job.Position, rtype, amount-accepted, true)
	}
	ctx.Colonist.SetCarrying("", 0)
	return StepDone(true, "hauled")
}
