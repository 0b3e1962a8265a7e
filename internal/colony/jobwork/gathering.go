package jobwork

import (
	"github.com/lucas/colonysim/internal/colony"
)

// gatherTicksPerUnit sets how long harvesting one unit out of a node takes;
// combined with the node's max amount this becomes the job's Required tick
// count the first time a colonist works a job whose Required is still 0.
const gatherTicksPerUnit = 3

// GatheringHandler harvests a resource node one unit at a time, dropping
// each unit as a haul-requested loose pile (spec §4.2).
type GatheringHandler struct{}

func NewGatheringHandler() *GatheringHandler { return &GatheringHandler{} }

func (h *GatheringHandler) JobType() colony.JobType { return colony.JobGathering }

func (h *GatheringHandler) Validate(ctx *JobContext) error {
	if _, ok := ctx.Colony.Resources.NodeAt(ctx.Job.Position); !ok {
		return colony.ErrResourceNodeNotFound
	}
	return nil
}

func (h *GatheringHandler) Process(ctx *JobContext) JobStepResult {
	node, ok := ctx.Colony.Resources.NodeAt(ctx.Job.Position)
	if !ok {
		return StepDone(false, "node gone")
	}
	if ctx.Job.Required == 0 {
		ctx.Job.Required = node.Max * gatherTicksPerUnit
	}
	ctx.Job.Progress++
	_, ok = ctx.Colony.Resources.HarvestTick(ctx.Job.Position, ctx.Job.Progress, ctx.Job.Required)
	if !ok {
		return StepDone(false, "node depleted")
	}
	if ctx.Job.Progress >= ctx.Job.Required {
		return StepDone(true, "gathering complete")
	}
	return StepContinue()
}
