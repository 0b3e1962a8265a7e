package colony_test

import (
	"testing"

	"github.com/lucas/colonysim/internal/colony"
	"github.com/lucas/colonysim/internal/colony/colonytest"
	"github.com/lucas/colonysim/internal/colony/jobwork"
)

const workHourTick = 600 // hour 10, inside the default work window

func newTestController() *colony.Controller {
	registry := colony.NewJobWorkerRegistry()
	jobwork.RegisterAllJobWorkers(registry)
	return colony.NewController(registry)
}

func TestController_Step_SleepsDuringNightHours(t *testing.T) {
	c := colonytest.NewTestColony()
	col := colonytest.NewTestColonist(colony.Position{X: 0, Y: 0})
	c.AddColonist(col)
	ctl := newTestController()

	ctl.Step(c, col, 23*60) // hour 23, asleep
	if col.GetState() != colony.StateSleeping {
		t.Errorf("expected colonist asleep at night, got %v", col.GetState())
	}
}

func TestController_Step_MovesTowardThenPerformsThenRecovers(t *testing.T) {
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
	job := &colony.Job{Type: colony.JobHaul, Category: colony.CategoryHaul, Position: src, ResourceType: "scrap", Dest: &dest}
	if _, err := c.Jobs.AddJob(job, 1); err != nil {
		t.Fatalf("AddJob: %v", err)
	}

	col := colonytest.NewTestColonist(colony.Position{X: 0, Y: 5})
	c.AddColonist(col)
	ctl := newTestController()

	ctl.Step(c, col, workHourTick)
	if col.GetState() != colony.StateMovingToTarget {
		t.Fatalf("expected colonist to start moving toward the haul job, got %v", col.GetState())
	}

	for i := 0; i < 20 && col.GetPosition() != src; i++ {
		ctl.Step(c, col, workHourTick+i+1)
	}
	colonytest.AssertColonistAt(t, col, src)
	if col.GetState() != colony.StatePerformingJob {
		t.Fatalf("expected colonist performing job on arrival, got %v", col.GetState())
	}

	ctl.Step(c, col, workHourTick+21)
	if col.GetState() != colony.StateRecovery {
		t.Fatalf("expected colonist in recovery after completing the haul, got %v", col.GetState())
	}

	rtype, amount, ok := c.Zones.StorageAt(dest)
	if !ok || rtype != "scrap" || amount != 4 {
		t.Errorf("expected 4 scrap delivered to dest, got type=%v amount=%d ok=%v", rtype, amount, ok)
	}
}

func TestController_Interrupt_DropsCarryOnTile(t *testing.T) {
	c := colonytest.NewTestColony()
	pos := colony.Position{X: 5, Y: 5}
	col := colonytest.NewTestColonist(pos)
	c.AddColonist(col)

	job := &colony.Job{Type: colony.JobGathering, Category: colony.CategoryScavenge, Position: pos}
	added, err := c.Jobs.AddJob(job, 1)
	if err != nil {
		t.Fatalf("AddJob: %v", err)
	}
	col.SetCurrentJob(added.ID)
	col.SetState(colony.StatePerformingJob)
	col.SetCarrying("scrap", 6)
	col.Interrupt()

	ctl := newTestController()
	ctl.Step(c, col, workHourTick)

	if col.GetState() != colony.StateIdle {
		t.Fatalf("expected colonist idle after interrupt, got %v", col.GetState())
	}
	if col.GetCarrying() != nil {
		t.Error("expected carry to be cleared after an interrupt")
	}
	if _, ok := c.Resources.LooseAt(pos); !ok {
		t.Error("expected the dropped carry to land as a loose pile on the colonist's tile")
	}
}

func TestController_StepJob_RequeuesConstructionOnMissingMaterials(t *testing.T) {
	c := colonytest.NewTestColony()
	pos := colony.Position{X: 5, Y: 5}
	if _, err := c.Buildings.PlaceConstructionSite(pos, colony.BuildingWall); err != nil {
		t.Fatalf("PlaceConstructionSite: %v", err)
	}

	col := colonytest.NewTestColonist(pos)
	c.AddColonist(col)
	job := &colony.Job{Type: colony.JobConstruction, Category: colony.CategoryBuild, Position: pos, Required: colony.ConstructionWorkTicks}
	added, err := c.Jobs.AddJob(job, 1)
	if err != nil {
		t.Fatalf("AddJob: %v", err)
	}
	col.SetCurrentJob(added.ID)
	col.SetState(colony.StatePerformingJob)

	ctl := newTestController()
	ctl.Step(c, col, workHourTick)

	if col.GetState() != colony.StateIdle {
		t.Fatalf("expected colonist idle after a requeued job, not recovering, got %v", col.GetState())
	}
	if _, ok := col.GetCurrentJobID(); ok {
		t.Error("expected the colonist to have released the job")
	}
	stillQueued, ok := c.Jobs.Get(added.ID)
	if !ok {
		t.Fatal("expected the construction job to still exist in the queue")
	}
	if stillQueued.Assigned {
		t.Error("expected the requeued job to be unassigned")
	}
	if stillQueued.WaitTimer <= 0 {
		t.Error("expected the requeued job to carry a positive wait timer")
	}
}
