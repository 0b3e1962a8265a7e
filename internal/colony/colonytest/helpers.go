// Package colonytest provides shared test fixtures for the colony package
// and its job handlers.
package colonytest

import (
	"testing"

	"github.com/lucas/colonysim/internal/colony"
	"github.com/lucas/colonysim/internal/config"
)

// NewTestColony builds a small colony over a flat, walkable ground floor.
func NewTestColony() *colony.Colony {
	cfg := config.Default()
	cfg.Sim.GridWidth = 16
	cfg.Sim.GridHeight = 16
	cfg.Sim.GridDepth = 2
	return colony.NewColony(cfg)
}

// NewTestColonist creates a colonist at pos using the default balance.
func NewTestColonist(pos colony.Position) *colony.Colonist {
	return colony.NewColonist("TestColonist", pos, config.DefaultBalanceConfig().Colonist)
}

// NewTestJobContext bundles a colonist, job, and colony into a JobContext
// for a handler test.
func NewTestJobContext(col *colony.Colonist, job *colony.Job, c *colony.Colony, tick int) *colony.JobContext {
	return colony.NewJobContext(col, job, c, tick)
}

// AssertColonistAt fails the test if the colonist isn't at pos.
func AssertColonistAt(t *testing.T, col *colony.Colonist, pos colony.Position) {
	t.Helper()
	if actual := col.GetPosition(); actual != pos {
		t.Errorf("expected colonist at %+v, got %+v", pos, actual)
	}
}

// AssertStepDone fails the test unless the result is Done with the
// expected success flag.
func AssertStepDone(t *testing.T, result colony.JobStepResult, success bool) {
	t.Helper()
	if !result.Done {
		t.Errorf("expected job step to be done, got continue (message=%q)", result.Message)
		return
	}
	if result.Success != success {
		t.Errorf("expected step success=%v, got %v (message=%q)", success, result.Success, result.Message)
	}
}

// AssertStepContinue fails the test unless the result asks to continue.
func AssertStepContinue(t *testing.T, result colony.JobStepResult) {
	t.Helper()
	if result.Done {
		t.Errorf("expected job step to continue, got done (success=%v, message=%q)", result.Success, result.Message)
	}
}
