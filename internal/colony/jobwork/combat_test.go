package jobwork_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/lucas/colonysim/internal/colony"
	"github.com/lucas/colonysim/internal/colony/colonytest"
	"github.com/lucas/colonysim/internal/colony/jobwork"
)

func TestCombatHandler_Validate_RequiresLiveHostile(t *testing.T) {
	c := colonytest.NewTestColony()
	pos := colony.Position{X: 7, Y: 7}
	job := &colony.Job{Type: colony.JobCombat, Position: pos, TargetID: uuid.New()}
	col := colonytest.NewTestColonist(pos)
	ctx := colonytest.NewTestJobContext(col, job, c, 1)

	h := jobwork.NewCombatHandler()
	if err := h.Validate(ctx); err == nil {
		t.Fatal("expected error for a hostile that isn't tracked")
	}
}

func TestCombatHandler_DefeatsHostileAfterCombatTicks(t *testing.T) {
	c := colonytest.NewTestColony()
	pos := colony.Position{X: 7, Y: 7}
	hostileID := uuid.New()
	c.SetHostile(hostileID, pos)

	job := &colony.Job{Type: colony.JobCombat, Position: pos, TargetID: hostileID, Required: colony.CombatTicks}
	col := colonytest.NewTestColonist(pos)
	ctx := colonytest.NewTestJobContext(col, job, c, 1)

	h := jobwork.NewCombatHandler()
	var result colony.JobStepResult
	for i := 0; i < colony.CombatTicks; i++ {
		result = h.Process(ctx)
	}
	colonytest.AssertStepDone(t, result, true)

	if c.HasHostile(hostileID) {
		t.Error("expected hostile to be removed once combat resolves")
	}
}

func TestCombatHandler_AlreadyGoneHostileEndsJobImmediately(t *testing.T) {
	c := colonytest.NewTestColony()
	pos := colony.Position{X: 7, Y: 7}
	job := &colony.Job{Type: colony.JobCombat, Position: pos, TargetID: uuid.New(), Required: colony.CombatTicks}
	col := colonytest.NewTestColonist(pos)
	ctx := colonytest.NewTestJobContext(col, job, c, 1)

	h := jobwork.NewCombatHandler()
	result := h.Process(ctx)
	colonytest.AssertStepDone(t, result, true)
}
