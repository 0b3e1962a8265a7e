package jobwork

import (
	"github.com/lucas/colonysim/internal/colony"
)

// CraftingFetchHandler pulls one missing input resource from the nearest
// stockpile into a workstation's input buffer (spec §4.7 FETCHING state).
type CraftingFetchHandler struct{}

func NewCraftingFetchHandler() *CraftingFetchHandler { return &CraftingFetchHandler{} }

func (h *CraftingFetchHandler) JobType() colony.JobType { return colony.JobCraftingFetch }

func (h *CraftingFetchHandler) Validate(ctx *JobContext) error {
	if _, ok := ctx.Colony.Workstations.At(ctx.Job.Position); !ok {
		return colony.ErrWorkstationNotFound
	}
	return nil
}

func (h *CraftingFetchHandler) Process(ctx *JobContext) JobStepResult {
	ws, ok := ctx.Colony.Workstations.At(ctx.Job.Position)
	if !ok {
		return StepDone(false, "workstation gone")
	}
	recipe, ok := ctx.Colony.Recipes.Get(ws.SelectedRecipeID)
	if !ok {
		return StepDone(false, "no recipe selected")
	}
	source, found := colony.Position{}, false
	for _, pos := range ctx.Colony.Zones.PositionsWithResource(ctx.Job.ResourceType) {
		if !found || pos.Manhattan(ctx.Job.Position) < source.Manhattan(ctx.Job.Position) {
			source, found = pos, true
		}
	}
	if !found {
		return StepDone(false, "no source stockpile for "+string(ctx.Job.ResourceType))
	}
	_, amount, ok := ctx.Colony.Zones.StorageAt(source)
	if !ok || amount <= 0 {
		return StepDone(false, "source tile emptied")
	}
	take := amount
	if take > ctx.Job.Required {
		take = ctx.Job.Required
	}
	_, taken := ctx.Colony.Zones.RemoveFromTileStorage(source, take)
	ctx.Colonist.SetCarrying(ctx.Job.ResourceType, taken)
	added := ctx.Colony.Workstations.AddToInputBuffer(ws, recipe, ctx.Job.ResourceType, taken)
	if added < taken {
		ctx.Colony.Zones.AddToTileStorage(source, ctx.Job.ResourceType, taken-added)
	}
	ctx.Colonist.SetCarrying("", 0)
	return StepDone(added > 0, "fetched input")
}
