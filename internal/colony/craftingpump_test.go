package colony_test

import (
	"testing"

	"github.com/lucas/colonysim/internal/colony"
	"github.com/lucas/colonysim/internal/colony/colonytest"
)

func TestCraftingPump_EmitsFetchJobWhenInputsMissing(t *testing.T) {
	c := colonytest.NewTestColony()
	pos := colony.Position{X: 4, Y: 4}
	ws := c.Workstations.Register(pos, string(colony.BuildingWorkbench))
	if err := c.Workstations.AddOrder(pos, "craft_parts", colony.QuantityInfinite, 0); err != nil {
		t.Fatalf("AddOrder: %v", err)
	}

	pump := colony.NewCraftingPump()
	pump.Tick(c, 1)

	if !c.Jobs.HasJobAt(pos, colony.JobCraftingFetch) {
		t.Fatal("expected a crafting-fetch job once an order is running with no buffered inputs")
	}
	if ws.State != colony.WSFetching {
		t.Errorf("expected workstation state fetching, got %v", ws.State)
	}
}

func TestCraftingPump_TransitionsToWorkingOnceInputsBuffered(t *testing.T) {
	c := colonytest.NewTestColony()
	pos := colony.Position{X: 4, Y: 4}
	ws := c.Workstations.Register(pos, string(colony.BuildingWorkbench))
	if err := c.Workstations.AddOrder(pos, "craft_parts", colony.QuantityInfinite, 0); err != nil {
		t.Fatalf("AddOrder: %v", err)
	}
	recipe, _ := c.Recipes.Get("craft_parts")
	ws.InputBuffer["scrap"] = recipe.Inputs["scrap"]

	pump := colony.NewCraftingPump()
	pump.Tick(c, 1)

	if !c.Jobs.HasJobAt(pos, colony.JobCraftingWork) {
		t.Fatal("expected a crafting-work job once inputs are fully buffered")
	}
	if ws.State != colony.WSWorking {
		t.Errorf("expected workstation state working, got %v", ws.State)
	}
}

func TestCraftingPump_ResetsToIdleWithNoOrder(t *testing.T) {
	c := colonytest.NewTestColony()
	pos := colony.Position{X: 4, Y: 4}
	ws := c.Workstations.Register(pos, string(colony.BuildingWorkbench))

	pump := colony.NewCraftingPump()
	pump.Tick(c, 1)

	if ws.State != colony.WSIdle {
		t.Errorf("expected idle with no order, got %v", ws.State)
	}
}
