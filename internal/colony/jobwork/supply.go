package jobwork

import (
	"github.com/lucas/colonysim/internal/colony"
)

// SupplyHandler executes a batch supply job: the colonist stands at the
// job's position, a single stocked pickup tile, and works through its
// delivery queue, dropping a leg off at each needy construction site in
// turn (spec §4.5). ctx.Job.Position is always the pickup source, never
// a destination; ctx.Job.ResourceType is the material being moved.
type SupplyHandler struct{}

func NewSupplyHandler() *SupplyHandler { return &SupplyHandler{} }

func (h *SupplyHandler) JobType() colony.JobType { return colony.JobSupply }

func (h *SupplyHandler) Validate(ctx *JobContext) error {
	_, amount, ok := ctx.Colony.Zones.StorageAt(ctx.Job.Position)
	if !ok || amount <= 0 {
		return colony.ErrNothingToHaul
	}
	return nil
}

func (h *SupplyHandler) Process(ctx *JobContext) JobStepResult {
	if len(ctx.Job.DeliveryQueue) == 0 {
		return StepDone(true, "nothing left to deliver")
	}
	leg := ctx.Job.DeliveryQueue[0]
	if _, ok := ctx.Colony.Buildings.SiteAt(leg.Pos); !ok {
		ctx.Job.DeliveryQueue = ctx.Job.DeliveryQueue[1:]
		if len(ctx.Job.DeliveryQueue) == 0 {
			return StepDone(true, "delivery queue drained, no sites left")
		}
		return StepContinue()
	}
	_, taken := ctx.Colony.Zones.RemoveFromTileStorage(ctx.Job.Position, leg.Amount)
	if taken > 0 {
		ctx.Colonist.SetCarrying(ctx.Job.ResourceType, taken)
		delivered := ctx.Colony.Buildings.DeliverMaterial(leg.Pos, ctx.Job.ResourceType, taken)
		if delivered < taken {
			ctx.Colony.Resources.DropLooseItem(leg.Pos, ctx.Job.ResourceType, taken-delivered, true)
		}
		ctx.Colonist.SetCarrying("", 0)
	}
	ctx.Job.DeliveryQueue = ctx.Job.DeliveryQueue[1:]
	ctx.Job.Progress++
	if len(ctx.Job.DeliveryQueue) == 0 {
		return StepDone(true, "delivery complete")
	}
	if taken < leg.Amount {
		return StepDone(false, "source ran dry mid-batch")
	}
	return StepContinue()
}
