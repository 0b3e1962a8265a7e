package jobwork

import (
	"github.com/lucas/colonysim/internal/colony"
)

// cookMealRecipeID is the recipe CookingHandler always uses: emergency
// cooking bypasses a stove's own order queue entirely, it doesn't pick
// whatever recipe happens to be selected there.
const cookMealRecipeID = "cook_meal"

// CookingHandler turns stockpiled food straight into a meal at a stove,
// triggered by low food stock rather than a standing order (spec §4.4's
// dynamic cooking pressure curve).
type CookingHandler struct{}

func NewCookingHandler() *CookingHandler { return &CookingHandler{} }

func (h *CookingHandler) JobType() colony.JobType { return colony.JobCooking }

func (h *CookingHandler) Validate(ctx *JobContext) error {
	ws, ok := ctx.Colony.Workstations.At(ctx.Job.Position)
	if !ok || ws.Kind != "stove" {
		return colony.ErrWorkstationNotFound
	}
	if _, ok := ctx.Colony.Recipes.Get(cookMealRecipeID); !ok {
		return colony.ErrUnknownRecipe
	}
	return nil
}

func (h *CookingHandler) Process(ctx *JobContext) JobStepResult {
	if err := h.Validate(ctx); err != nil {
		return StepDone(false, err.Error())
	}
	recipe, _ := ctx.Colony.Recipes.Get(cookMealRecipeID)
	if ctx.Job.Required == 0 {
		ctx.Job.Required = recipe.WorkTicks
	}
	ctx.Job.Progress++
	if ctx.Job.Progress < ctx.Job.Required {
		return StepContinue()
	}

	needed := recipe.Inputs["food"]
	source, found := colony.Position{}, false
	for _, pos := range ctx.Colony.Zones.PositionsWithResource("food") {
		if !found || pos.Manhattan(ctx.Job.Position) < source.Manhattan(ctx.Job.Position) {
			source, found = pos, true
		}
	}
	if !found {
		return StepDone(false, "no food to cook")
	}
	_, taken := ctx.Colony.Zones.RemoveFromTileStorage(source, needed)
	if taken < needed {
		ctx.Colony.Zones.AddToTileStorage(source, "food", taken)
		return StepDone(false, "not enough food to cook")
	}
	ctx.Colony.Resources.DropLooseItem(ctx.Job.Position, recipe.OutputResource, recipe.OutputQty, true)
	return StepDone(true, "meal cooked")
}
