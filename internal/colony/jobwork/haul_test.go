package jobwork_test

import (
	"testing"

	"github.com/lucas/colonysim/internal/colony"
	"github.com/lucas/colonysim/internal/colony/colonytest"
	"github.com/lucas/colonysim/internal/colony/jobwork"
)

func TestHaulHandler_Validate_RequiresDest(t *testing.T) {
	c := colonytest.NewTestColony()
	pos := colony.Position{X: 5, Y: 5}
	c.Resources.DropLooseItem(pos, "scrap", 4, true)

	job := &colony.Job{Type: colony.JobHaul, Position: pos, ResourceType: "scrap"}
	col := colonytest.NewTestColonist(pos)
	ctx := colonytest.NewTestJobContext(col, job, c, 1)

	h := jobwork.NewHaulHandler()
	if err := h.Validate(ctx); err == nil {
		t.Fatal("expected error when job has no destination")
	}
}

func TestHaulHandler_MovesLoosePileIntoStockpile(t *testing.T) {
	c := colonytest.NewTestColony()
	src := colony.Position{X: 5, Y: 5}
	dest := colony.Position{X: 6, Y: 5}
	c.Resources.DropLooseItem(src, "scrap", 4, true)
	zoneID, err := c.Zones.CreateZone([]colony.Position{dest})
	if err != nil {
		t.Fatalf("CreateZone: %v", err)
	}
	if err := c.Zones.SetFilter(zoneID, "scrap", true); err != nil {
		t.Fatalf("SetFilter: %v", err)
	}

	job := &colony.Job{Type: colony.JobHaul, Position: src, ResourceType: "scrap", Dest: &dest}
	col := colonytest.NewTestColonist(src)
	ctx := colonytest.NewTestJobContext(col, job, c, 1)

	h := jobwork.NewHaulHandler()
	result := h.Process(ctx)
	colonytest.AssertStepDone(t, result, true)

	if _, ok := c.Resources.LooseAt(src); ok {
		t.Error("expected loose pile to be cleared after haul")
	}
	rtype, amount, ok := c.Zones.StorageAt(dest)
	if !ok || rtype != "scrap" || amount != 4 {
		t.Errorf("expected 4 scrap stored at dest, got type=%v amount=%d ok=%v", rtype, amount, ok)
	}
}
