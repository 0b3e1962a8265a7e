package jobwork_test

import (
	"testing"

	"github.com/lucas/colonysim/internal/colony"
	"github.com/lucas/colonysim/internal/colony/colonytest"
	"github.com/lucas/colonysim/internal/colony/jobwork"
)

func TestCraftingWorkHandler_ProducesOutputAndAdvancesOrder(t *testing.T) {
	c := colonytest.NewTestColony()
	wsPos := colony.Position{X: 10, Y: 10}
	ws := c.Workstations.Register(wsPos, string(colony.BuildingWorkbench))
	ws.SelectedRecipeID = "craft_parts"
	recipe, _ := c.Recipes.Get("craft_parts")
	ws.InputBuffer["scrap"] = 4
	if err := c.Workstations.AddOrder(wsPos, "craft_parts", colony.QuantityTarget, 2); err != nil {
		t.Fatalf("AddOrder: %v", err)
	}

	job := &colony.Job{Type: colony.JobCraftingWork, Position: wsPos, Required: recipe.WorkTicks}
	col := colonytest.NewTestColonist(wsPos)
	ctx := colonytest.NewTestJobContext(col, job, c, 1)

	h := jobwork.NewCraftingWorkHandler()
	var result colony.JobStepResult
	for i := 0; i < recipe.WorkTicks; i++ {
		result = h.Process(ctx)
	}
	colonytest.AssertStepDone(t, result, true)

	if c.Workstations.HasAllInputs(ws, recipe) {
		t.Error("expected inputs to be consumed after crafting completes")
	}
	if ws.InputBuffer["scrap"] != 0 {
		t.Errorf("expected scrap consumed, got %d remaining", ws.InputBuffer["scrap"])
	}

	loose, ok := c.Resources.LooseAt(wsPos)
	if !ok || loose.Type != "parts" || loose.Amount != recipe.OutputQty {
		t.Fatalf("expected %d parts dropped at workstation, got %+v (ok=%v)", recipe.OutputQty, loose, ok)
	}

	order := c.Workstations.CurrentOrder(ws)
	if order == nil || order.Completed != 1 {
		t.Errorf("expected order completed count to advance to 1, got %+v", order)
	}
}

func TestCraftingWorkHandler_FurnitureOutputDropsTaggedLoose(t *testing.T) {
	c := colonytest.NewTestColony()
	wsPos := colony.Position{X: 11, Y: 10}
	ws := c.Workstations.Register(wsPos, string(colony.BuildingWorkbench))
	ws.SelectedRecipeID = "build_stool"
	recipe, _ := c.Recipes.Get("build_stool")
	ws.InputBuffer["scrap"] = 6

	job := &colony.Job{Type: colony.JobCraftingWork, Position: wsPos, Required: recipe.WorkTicks}
	col := colonytest.NewTestColonist(wsPos)
	ctx := colonytest.NewTestJobContext(col, job, c, 1)

	h := jobwork.NewCraftingWorkHandler()
	var result colony.JobStepResult
	for i := 0; i < recipe.WorkTicks; i++ {
		result = h.Process(ctx)
	}
	colonytest.AssertStepDone(t, result, true)

	loose, ok := c.Resources.LooseAt(wsPos)
	if !ok || loose.Type != colony.ResourceType("furniture:stool") {
		t.Fatalf("expected furniture:stool loose pile, got %+v (ok=%v)", loose, ok)
	}
}
