package jobwork

import (
	"github.com/lucas/colonysim/internal/colony"
)

// combatDamagePerTick is the damage a colonist takes each tick of melee
// against a hostile; the hostile is removed once CombatTicks elapse, unless
// the colonist dies first.
const combatDamagePerTick = 2

// CombatHandler resolves a fight against a hostile over CombatTicks ticks,
// supplemented beyond the distilled spec's explicit job list since the
// pressure table already carries a combat curve that needs a consumer.
type CombatHandler struct{}

func NewCombatHandler() *CombatHandler { return &CombatHandler{} }

func (h *CombatHandler) JobType() colony.JobType { return colony.JobCombat }

func (h *CombatHandler) Validate(ctx *JobContext) error {
	if !ctx.Colony.HasHostile(ctx.Job.TargetID) {
		return colony.ErrColonistNotFound
	}
	return nil
}

func (h *CombatHandler) Process(ctx *JobContext) JobStepResult {
	if !ctx.Colony.HasHostile(ctx.Job.TargetID) {
		return StepDone(true, "hostile already gone")
	}
	ctx.Colonist.TakeDamage(combatDamagePerTick)
	if ctx.Colonist.IsDead() {
		return StepDone(false, "colonist fell in combat")
	}
	ctx.Job.Progress++
	if ctx.Job.Progress < ctx.Job.Required {
		return StepContinue()
	}
	ctx.Colony.RemoveHostile(ctx.Job.TargetID)
	return StepDone(true, "hostile defeated")
}
