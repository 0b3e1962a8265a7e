package jobwork

import (
	"github.com/lucas/colonysim/internal/colony"
)

// ConstructionHandler finishes a fully-supplied construction site: the
// colonist stands on the site for Required ticks of labor, then the site
// becomes its finished tile (spec §4.1).
type ConstructionHandler struct{}

func NewConstructionHandler() *ConstructionHandler { return &ConstructionHandler{} }

func (h *ConstructionHandler) JobType() colony.JobType { return colony.JobConstruction }

func (h *ConstructionHandler) Validate(ctx *JobContext) error {
	if _, ok := ctx.Colony.Buildings.SiteAt(ctx.Job.Position); !ok {
		return colony.ErrSiteNotFound
	}
	return nil
}

func (h *ConstructionHandler) Process(ctx *JobContext) JobStepResult {
	site, ok := ctx.Colony.Buildings.SiteAt(ctx.Job.Position)
	if !ok {
		return StepDone(false, "construction site no longer exists")
	}
	if !site.IsFullySupplied() {
		return StepWait(colony.ConstructionMaterialsWaitTicks, "construction site still missing materials")
	}
	ctx.Job.Progress++
	if ctx.Job.Progress < ctx.Job.Required {
		return StepContinue()
	}
	def, ok := ctx.Colony.Buildings.CompleteConstruction(ctx.Job.Position)
	if !ok {
		return StepDone(false, "construction site vanished mid-build")
	}
	if def.IsWorkstation {
		ctx.Colony.Workstations.Register(ctx.Job.Position, def.WorkstationKind)
	}
	return StepDone(true, "construction complete")
}
