package jobwork

import (
	"github.com/lucas/colonysim/internal/colony"
)

// InstallFurnitureHandler spends InstallFurnitureTicks bolting a delivered
// furniture piece down, then records it in the colony's FurnitureRegistry.
type InstallFurnitureHandler struct{}

func NewInstallFurnitureHandler() *InstallFurnitureHandler { return &InstallFurnitureHandler{} }

func (h *InstallFurnitureHandler) JobType() colony.JobType { return colony.JobInstallFurniture }

func (h *InstallFurnitureHandler) Validate(ctx *JobContext) error {
	if _, ok := ctx.Colony.Resources.LooseAt(ctx.Job.Position); !ok {
		return colony.ErrNothingToHaul
	}
	return nil
}

func (h *InstallFurnitureHandler) Process(ctx *JobContext) JobStepResult {
	if err := h.Validate(ctx); err != nil {
		return StepDone(false, err.Error())
	}
	if ctx.Job.Required == 0 {
		ctx.Job.Required = colony.InstallFurnitureTicks
	}
	ctx.Job.Progress++
	if ctx.Job.Progress < ctx.Job.Required {
		return StepContinue()
	}
	_, amount := ctx.Colony.Resources.RemovePickup(ctx.Job.Position, 1)
	if amount <= 0 {
		return StepDone(false, "furniture piece gone")
	}
	ctx.Colony.Furniture.Install(ctx.Job.Position, ctx.Job.FurnitureKind)
	return StepDone(true, "furniture installed")
}
