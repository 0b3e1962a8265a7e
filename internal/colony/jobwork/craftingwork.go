package jobwork

import (
	"github.com/lucas/colonysim/internal/colony"
)

// CraftingWorkHandler runs the WORKING state of the crafting pump: once a
// workstation has all its inputs, a colonist stands there for the recipe's
// WorkTicks, then the output is emitted and the order advances (spec §4.7).
type CraftingWorkHandler struct{}

func NewCraftingWorkHandler() *CraftingWorkHandler { return &CraftingWorkHandler{} }

func (h *CraftingWorkHandler) JobType() colony.JobType { return colony.JobCraftingWork }

func (h *CraftingWorkHandler) Validate(ctx *JobContext) error {
	ws, ok := ctx.Colony.Workstations.At(ctx.Job.Position)
	if !ok {
		return colony.ErrWorkstationNotFound
	}
	if _, ok := ctx.Colony.Recipes.Get(ws.SelectedRecipeID); !ok {
		return colony.ErrUnknownRecipe
	}
	return nil
}

func (h *CraftingWorkHandler) Process(ctx *JobContext) JobStepResult {
	ws, ok := ctx.Colony.Workstations.At(ctx.Job.Position)
	if !ok {
		return StepDone(false, "workstation gone")
	}
	recipe, ok := ctx.Colony.Recipes.Get(ws.SelectedRecipeID)
	if !ok {
		return StepDone(false, "recipe removed mid-work")
	}
	ctx.Job.Progress++
	if ctx.Job.Progress < ctx.Job.Required {
		return StepContinue()
	}

	ctx.Colony.Workstations.ConsumeInputs(ws, recipe)
	if recipe.OutputResource != "" {
		ctx.Colony.Resources.DropLooseItem(ctx.Job.Position, recipe.OutputResource, recipe.OutputQty, true)
	}
	if recipe.OutputFurniture != "" {
		ctx.Colony.Resources.DropLooseItem(ctx.Job.Position, colony.ResourceType("furniture:"+recipe.OutputFurniture), recipe.OutputQty, true)
	}
	order := ctx.Colony.Workstations.CurrentOrder(ws)
	if order != nil {
		ctx.Colony.Workstations.CompleteWork(ws, order)
	}
	return StepDone(true, "crafting complete")
}
