package jobwork_test

import (
	"testing"

	"github.com/lucas/colonysim/internal/colony"
	"github.com/lucas/colonysim/internal/colony/colonytest"
	"github.com/lucas/colonysim/internal/colony/jobwork"
)

func TestConstructionHandler_Validate_SiteGone(t *testing.T) {
	c := colonytest.NewTestColony()
	pos := colony.Position{X: 2, Y: 2}

	job := &colony.Job{Type: colony.JobConstruction, Position: pos, Required: colony.ConstructionWorkTicks}
	col := colonytest.NewTestColonist(pos)
	ctx := colonytest.NewTestJobContext(col, job, c, 1)

	h := jobwork.NewConstructionHandler()
	if err := h.Validate(ctx); err == nil {
		t.Fatal("expected validation error for a site that doesn't exist")
	}
}

func TestConstructionHandler_Process_WaitsOnMissingMaterials(t *testing.T) {
	c := colonytest.NewTestColony()
	pos := colony.Position{X: 2, Y: 2}
	c.Buildings.PlaceConstructionSite(pos, colony.BuildingWall)

	job := &colony.Job{Type: colony.JobConstruction, Position: pos, Required: colony.ConstructionWorkTicks}
	col := colonytest.NewTestColonist(pos)
	ctx := colonytest.NewTestJobContext(col, job, c, 1)

	h := jobwork.NewConstructionHandler()
	result := h.Process(ctx)
	if !result.Done || !result.Requeue {
		t.Fatal("expected a requeue result for an unsupplied site")
	}
	if result.WaitTicks <= 0 {
		t.Error("expected a positive wait timer")
	}
	if _, exists := c.Buildings.SiteAt(pos); !exists {
		t.Error("expected the construction site to survive a missing-materials wait")
	}
}

func TestConstructionHandler_Process_CompletesAfterWorkTicks(t *testing.T) {
	c := colonytest.NewTestColony()
	pos := colony.Position{X: 2, Y: 2}
	c.Buildings.PlaceConstructionSite(pos, colony.BuildingWall)
	c.Buildings.DeliverMaterial(pos, "scrap", 5)

	job := &colony.Job{Type: colony.JobConstruction, Position: pos, Required: colony.ConstructionWorkTicks}
	col := colonytest.NewTestColonist(pos)
	ctx := colonytest.NewTestJobContext(col, job, c, 1)

	h := jobwork.NewConstructionHandler()
	var result colony.JobStepResult
	for i := 0; i < colony.ConstructionWorkTicks; i++ {
		result = h.Process(ctx)
		if i < colony.ConstructionWorkTicks-1 {
			colonytest.AssertStepContinue(t, result)
		}
	}
	colonytest.AssertStepDone(t, result, true)

	if _, exists := c.Buildings.SiteAt(pos); exists {
		t.Error("expected construction site to be removed once complete")
	}
	tile := c.Grid.GetTile(pos)
	if tile.Type != colony.TileFinishedWall {
		t.Errorf("expected finished wall tile, got %v", tile.Type)
	}
}

func TestConstructionHandler_RegistersWorkstation(t *testing.T) {
	c := colonytest.NewTestColony()
	pos := colony.Position{X: 3, Y: 3}
	c.Buildings.PlaceConstructionSite(pos, colony.BuildingStove)
	c.Buildings.DeliverMaterial(pos, "scrap", 8)
	c.Buildings.DeliverMaterial(pos, "mineral", 2)

	job := &colony.Job{Type: colony.JobConstruction, Position: pos, Required: colony.ConstructionWorkTicks}
	col := colonytest.NewTestColonist(pos)
	ctx := colonytest.NewTestJobContext(col, job, c, 1)

	h := jobwork.NewConstructionHandler()
	for i := 0; i < colony.ConstructionWorkTicks; i++ {
		h.Process(ctx)
	}

	if _, ok := c.Workstations.At(pos); !ok {
		t.Error("expected a stove workstation to be registered at the finished site")
	}
}
