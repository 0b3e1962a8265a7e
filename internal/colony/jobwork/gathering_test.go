package jobwork_test

import (
	"testing"

	"github.com/lucas/colonysim/internal/colony"
	"github.com/lucas/colonysim/internal/colony/colonytest"
	"github.com/lucas/colonysim/internal/colony/jobwork"
)

func TestGatheringHandler_Validate_NoNode(t *testing.T) {
	c := colonytest.NewTestColony()
	pos := colony.Position{X: 1, Y: 1}
	job := &colony.Job{Type: colony.JobGathering, Position: pos}
	col := colonytest.NewTestColonist(pos)
	ctx := colonytest.NewTestJobContext(col, job, c, 1)

	h := jobwork.NewGatheringHandler()
	if err := h.Validate(ctx); err == nil {
		t.Fatal("expected error when no node is present")
	}
}

func TestGatheringHandler_HarvestsToDepletion(t *testing.T) {
	c := colonytest.NewTestColony()
	pos := colony.Position{X: 1, Y: 1}
	c.Resources.SpawnNode(pos, "scrap_heap")

	job := &colony.Job{Type: colony.JobGathering, Position: pos}
	col := colonytest.NewTestColonist(pos)
	ctx := colonytest.NewTestJobContext(col, job, c, 1)

	h := jobwork.NewGatheringHandler()
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
		t.Fatal("expected node to still exist (non-replenishable, not yet pruned)")
	}
	if node.Remaining != 0 {
		t.Errorf("expected node fully harvested, got %d remaining", node.Remaining)
	}

	loose, ok := c.Resources.LooseAt(pos)
	if !ok {
		t.Fatal("expected a loose pile of harvested scrap")
	}
	if loose.Amount != node.Max {
		t.Errorf("expected %d scrap harvested, got %d", node.Max, loose.Amount)
	}
	if !loose.HaulRequested {
		t.Error("expected harvested pile to be marked haul-requested")
	}
}
