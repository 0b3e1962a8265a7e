package colony_test

import (
	"testing"

	"github.com/lucas/colonysim/internal/colony"
	"github.com/lucas/colonysim/internal/colony/colonytest"
)

func TestRelocationPlanner_EmitsJobForFilterMismatch(t *testing.T) {
	c := colonytest.NewTestColony()
	bad := colony.Position{X: 5, Y: 5}
	good := colony.Position{X: 6, Y: 5}
	zoneID, err := c.Zones.CreateZone([]colony.Position{bad})
	if err != nil {
		t.Fatalf("CreateZone: %v", err)
	}
	if _, err := c.Zones.CreateZone([]colony.Position{good}); err != nil {
		t.Fatalf("CreateZone good: %v", err)
	}
	c.Zones.AddToTileStorage(bad, "scrap", 4)
	if err := c.Zones.SetFilter(zoneID, "scrap", false); err != nil {
		t.Fatalf("SetFilter: %v", err)
	}

	p := colony.NewRelocationPlanner()
	p.Tick(c, 1)

	if !c.Jobs.HasJobAt(bad, colony.JobRelocate) {
		t.Fatal("expected a relocate job at the tile whose filter no longer accepts its stock")
	}
}

func TestRelocationPlanner_CompletesTileRemovalOnceDrained(t *testing.T) {
	c := colonytest.NewTestColony()
	pos := colony.Position{X: 5, Y: 5}
	if _, err := c.Zones.CreateZone([]colony.Position{pos}); err != nil {
		t.Fatalf("CreateZone: %v", err)
	}
	c.Zones.MarkTileForRemoval(pos)

	p := colony.NewRelocationPlanner()
	p.Tick(c, 1)

	if _, ok := c.Zones.ZoneOf(pos); ok {
		t.Error("expected the pending-removal tile with no stock to finalize removal from its zone")
	}
}
