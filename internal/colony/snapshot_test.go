package colony_test

import (
	"testing"

	"github.com/lucas/colonysim/internal/colony"
	"github.com/lucas/colonysim/internal/colony/colonytest"
	"github.com/lucas/colonysim/internal/colony/jobwork"
)

func TestEngine_Snapshot_ReflectsLiveState(t *testing.T) {
	cfgEngine := newTestEngine()
	c := cfgEngine.Colony()

	col := colonytest.NewTestColonist(colony.Position{X: 2, Y: 2})
	c.AddColonist(col)
	c.Workstations.Register(colony.Position{X: 3, Y: 3}, string(colony.BuildingStove))
	job := &colony.Job{Type: colony.JobHaul, Position: colony.Position{X: 4, Y: 4}}
	if _, err := c.Jobs.AddJob(job, 1); err != nil {
		t.Fatalf("AddJob: %v", err)
	}

	snap := cfgEngine.Snapshot()
	if len(snap.Colonists) != 1 {
		t.Errorf("expected 1 colonist in snapshot, got %d", len(snap.Colonists))
	}
	if len(snap.Workstations) != 1 {
		t.Errorf("expected 1 workstation in snapshot, got %d", len(snap.Workstations))
	}
	if len(snap.Jobs) != 1 {
		t.Errorf("expected 1 job in snapshot, got %d", len(snap.Jobs))
	}
	if len(snap.Grid) == 0 {
		t.Error("expected a non-empty grid snapshot")
	}
}

func TestColony_JobWorkerRegistry_HasEveryJobType(t *testing.T) {
	registry := colony.NewJobWorkerRegistry()
	jobwork.RegisterAllJobWorkers(registry)

	all := []colony.JobType{
		colony.JobConstruction, colony.JobGathering, colony.JobSupply,
		colony.JobHaul, colony.JobRelocate, colony.JobSalvage,
		colony.JobInstallFurniture, colony.JobPlaceFurniture,
		colony.JobCraftingFetch, colony.JobCraftingWork, colony.JobCooking,
		colony.JobRecreation, colony.JobTraining, colony.JobCombat,
	}
	for _, jt := range all {
		if !registry.Has(jt) {
			t.Errorf("expected a registered worker for %v", jt)
		}
	}
}
