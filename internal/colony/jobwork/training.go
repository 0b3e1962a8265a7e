package jobwork

import (
	"github.com/lucas/colonysim/internal/colony"
)

// TrainingHandler occupies a colonist at a training rig for the scheduled
// training block. There's no skill system yet to raise, so completion is
// currently just a scheduled time sink a future skill system can hang off.
type TrainingHandler struct{}

func NewTrainingHandler() *TrainingHandler { return &TrainingHandler{} }

func (h *TrainingHandler) JobType() colony.JobType { return colony.JobTraining }

func (h *TrainingHandler) Validate(ctx *JobContext) error {
	ws, ok := ctx.Colony.Workstations.At(ctx.Job.Position)
	if !ok || ws.Kind != "training_rig" {
		return colony.ErrWorkstationNotFound
	}
	return nil
}

func (h *TrainingHandler) Process(ctx *JobContext) JobStepResult {
	if err := h.Validate(ctx); err != nil {
		return StepDone(false, err.Error())
	}
	ctx.Job.Progress++
	if ctx.Job.Progress < ctx.Job.Required {
		return StepContinue()
	}
	return StepDone(true, "training complete")
}
