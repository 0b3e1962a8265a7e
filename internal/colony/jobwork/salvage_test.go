package jobwork_test

import (
	"testing"

	"github.com/lucas/colonysim/internal/colony"
	"github.com/lucas/colonysim/internal/colony/colonytest"
	"github.com/lucas/colonysim/internal/colony/jobwork"
)

func TestSalvageHandler_StripsNodeToScrap(t *testing.T) {
	c := colonytest.NewTestColony()
	pos := colony.Position{X: 4, Y: 4}
	c.Resources.SpawnNode(pos, "salvage_object")
	c.Grid.SetTile(pos, colony.TileSalvageObject)

	job := &colony.Job{Type: colony.JobSalvage, Position: pos}
	col := colonytest.NewTestColonist(pos)
	ctx := colonytest.NewTestJobContext(col, job, c, 1)

	h := jobwork.NewSalvageHandler()
	var result colony.JobStepResult
	for i := 0; i < 100; i++ {
		result = h.Process(ctx)
		if result.Done {
			break
		}
	}
	colonytest.AssertStepDone(t, result, true)

	node, ok := c.Resources.NodeAt(pos)
	if !ok {
		t.Fatal("expected node to still be registered")
	}
	if node.Remaining != 0 {
		t.Errorf("expected node fully stripped, got %d remaining", node.Remaining)
	}

	loose, ok := c.Resources.LooseAt(pos)
	if !ok || loose.Type != "scrap" {
		t.Fatal("expected stripped scrap pile at salvage tile")
	}
}
