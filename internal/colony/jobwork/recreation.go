package jobwork

import (
	"github.com/lucas/colonysim/internal/colony"
)

// recreationHeal is the health recovered per completed recreation session,
// standing in for whatever morale/stress stat a fuller simulation would use.
const recreationHeal = 5

// RecreationHandler occupies a colonist at an arcade machine for the
// scheduled leisure block (spec's colonist schedule, supplemented beyond
// the distilled spec's job list).
type RecreationHandler struct{}

func NewRecreationHandler() *RecreationHandler { return &RecreationHandler{} }

func (h *RecreationHandler) JobType() colony.JobType { return colony.JobRecreation }

func (h *RecreationHandler) Validate(ctx *JobContext) error {
	ws, ok := ctx.Colony.Workstations.At(ctx.Job.Position)
	if !ok || ws.Kind != "arcade_machine" {
		return colony.ErrWorkstationNotFound
	}
	return nil
}

func (h *RecreationHandler) Process(ctx *JobContext) JobStepResult {
	if err := h.Validate(ctx); err != nil {
		return StepDone(false, err.Error())
	}
	ctx.Job.Progress++
	if ctx.Job.Progress < ctx.Job.Required {
		return StepContinue()
	}
	ctx.Colonist.Heal(recreationHeal)
	return StepDone(true, "recreation complete")
}
