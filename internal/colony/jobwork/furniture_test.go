package jobwork_test

import (
	"testing"

	"github.com/lucas/colonysim/internal/colony"
	"github.com/lucas/colonysim/internal/colony/colonytest"
	"github.com/lucas/colonysim/internal/colony/jobwork"
)

func TestPlaceFurnitureHandler_MovesPieceToDest(t *testing.T) {
	c := colonytest.NewTestColony()
	src := colony.Position{X: 1, Y: 9}
	dest := colony.Position{X: 2, Y: 9}
	c.Resources.DropLooseItem(src, colony.ResourceType("furniture:stool"), 1, false)

	job := &colony.Job{Type: colony.JobPlaceFurniture, Position: src, Dest: &dest}
	col := colonytest.NewTestColonist(src)
	ctx := colonytest.NewTestJobContext(col, job, c, 1)

	h := jobwork.NewPlaceFurnitureHandler()
	result := h.Process(ctx)
	colonytest.AssertStepDone(t, result, true)

	if _, ok := c.Resources.LooseAt(src); ok {
		t.Error("expected source pile cleared")
	}
	loose, ok := c.Resources.LooseAt(dest)
	if !ok || loose.Type != colony.ResourceType("furniture:stool") {
		t.Fatalf("expected furniture piece at dest, got %+v (ok=%v)", loose, ok)
	}
}

func TestInstallFurnitureHandler_RegistersAfterDelay(t *testing.T) {
	c := colonytest.NewTestColony()
	pos := colony.Position{X: 2, Y: 9}
	c.Resources.DropLooseItem(pos, colony.ResourceType("furniture:stool"), 1, false)

	job := &colony.Job{Type: colony.JobInstallFurniture, Position: pos, FurnitureKind: "stool"}
	col := colonytest.NewTestColonist(pos)
	ctx := colonytest.NewTestJobContext(col, job, c, 1)

	h := jobwork.NewInstallFurnitureHandler()
	var result colony.JobStepResult
	for i := 0; i < colony.InstallFurnitureTicks; i++ {
		result = h.Process(ctx)
		if i < colony.InstallFurnitureTicks-1 {
			colonytest.AssertStepContinue(t, result)
		}
	}
	colonytest.AssertStepDone(t, result, true)

	if _, ok := c.Resources.LooseAt(pos); ok {
		t.Error("expected loose furniture pile consumed on install")
	}
	placed, ok := c.Furniture.At(pos)
	if !ok || placed.Kind != "stool" {
		t.Fatalf("expected installed stool at %+v, got %+v (ok=%v)", pos, placed, ok)
	}
}
