package jobwork_test

import (
	"testing"

	"github.com/lucas/colonysim/internal/colony"
	"github.com/lucas/colonysim/internal/colony/colonytest"
	"github.com/lucas/colonysim/internal/colony/jobwork"
)

func TestRecreationHandler_HealsColonistOnCompletion(t *testing.T) {
	c := colonytest.NewTestColony()
	pos := colony.Position{X: 14, Y: 14}
	c.Workstations.Register(pos, "arcade_machine")

	job := &colony.Job{Type: colony.JobRecreation, Position: pos, Required: 3}
	col := colonytest.NewTestColonist(pos)
	col.TakeDamage(20)

	ctx := colonytest.NewTestJobContext(col, job, c, 1)
	h := jobwork.NewRecreationHandler()
	var result colony.JobStepResult
	for i := 0; i < 3; i++ {
		result = h.Process(ctx)
	}
	colonytest.AssertStepDone(t, result, true)

	snap := col.Snapshot()
	if snap.Health != 85 {
		t.Errorf("expected health healed to 85 (100-20+5), got %d", snap.Health)
	}
}

func TestRecreationHandler_Validate_WrongWorkstationKind(t *testing.T) {
	c := colonytest.NewTestColony()
	pos := colony.Position{X: 14, Y: 14}
	c.Workstations.Register(pos, "training_rig")

	job := &colony.Job{Type: colony.JobRecreation, Position: pos}
	col := colonytest.NewTestColonist(pos)
	ctx := colonytest.NewTestJobContext(col, job, c, 1)

	h := jobwork.NewRecreationHandler()
	if err := h.Validate(ctx); err == nil {
		t.Fatal("expected validation error at a non-arcade workstation")
	}
}

func TestTrainingHandler_CompletesAtRig(t *testing.T) {
	c := colonytest.NewTestColony()
	pos := colony.Position{X: 15, Y: 14}
	c.Workstations.Register(pos, "training_rig")

	job := &colony.Job{Type: colony.JobTraining, Position: pos, Required: 2}
	col := colonytest.NewTestColonist(pos)
	ctx := colonytest.NewTestJobContext(col, job, c, 1)

	h := jobwork.NewTrainingHandler()
	var result colony.JobStepResult
	for i := 0; i < 2; i++ {
		result = h.Process(ctx)
	}
	colonytest.AssertStepDone(t, result, true)
}
