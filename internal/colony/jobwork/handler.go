// Package jobwork implements one JobWorker per colony.JobType. The core
// interfaces (JobWorker, JobContext, JobWorkerRegistry) live in the colony
// package to avoid an import cycle between colony and its handlers.
package jobwork

import (
	"github.com/lucas/colonysim/internal/colony"
)

type (
	JobContext        = colony.JobContext
	JobWorker         = colony.JobWorker
	JobWorkerRegistry = colony.JobWorkerRegistry
	JobStepResult     = colony.JobStepResult
)

var NewJobContext = colony.NewJobContext
var NewJobWorkerRegistry = colony.NewJobWorkerRegistry
var StepDone = colony.StepDone
var StepContinue = colony.StepContinue
var StepWait = colony.StepWait
