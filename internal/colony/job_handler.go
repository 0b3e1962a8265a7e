package colony

import "sync"

// JobContext bundles everything a JobWorker needs to execute one tick of a
// job, mirroring the teacher's ActionContext shape (agent, world, and the
// supporting registries, gathered into one value instead of threading six
// parameters through every handler).
type JobContext struct {
	Colonist    *Colonist
	Job         *Job
	Colony      *Colony
	CurrentTick int
}

func NewJobContext(colonist *Colonist, job *Job, colony *Colony, tick int) *JobContext {
	return &JobContext{Colonist: colonist, Job: job, Colony: colony, CurrentTick: tick}
}

// JobStepResult reports what happened during one tick of work.
type JobStepResult struct {
	Done    bool
	Success bool
	Message string

	// Requeue, when set alongside Done, tells the controller to release
	// the job back to the queue with WaitTicks on its soft cooldown
	// instead of completing (and deleting) it, per spec §4.10's
	// construction "missing materials on arrival" case.
	Requeue   bool
	WaitTicks int
}

func StepDone(success bool, msg string) JobStepResult {
	return JobStepResult{Done: true, Success: success, Message: msg}
}

func StepContinue() JobStepResult {
	return JobStepResult{Done: false, Success: true}
}

// StepWait releases the job back to the queue with a wait timer instead
// of completing it, for a handler that can't proceed right now but
// expects the blocking condition to clear on its own.
func StepWait(waitTicks int, msg string) JobStepResult {
	return JobStepResult{Done: true, Success: false, Message: msg, Requeue: true, WaitTicks: waitTicks}
}

// JobWorker implements the logic for one JobType, the colony-sim analogue
// of the teacher's ActionHandler interface.
type JobWorker interface {
	JobType() JobType
	Validate(ctx *JobContext) error
	Process(ctx *JobContext) JobStepResult
}

// JobWorkerRegistry maps a JobType to its worker, mirroring the teacher's
// HandlerRegistry (type -> handler map, Register/Get/Has).
type JobWorkerRegistry struct {
	mu      sync.RWMutex
	workers map[JobType]JobWorker
}

func NewJobWorkerRegistry() *JobWorkerRegistry {
	return &JobWorkerRegistry{workers: make(map[JobType]JobWorker)}
}

func (r *JobWorkerRegistry) Register(w JobWorker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.workers[w.JobType()] = w
}

func (r *JobWorkerRegistry) Get(t JobType) (JobWorker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.workers[t]
	return w, ok
}

func (r *JobWorkerRegistry) Has(t JobType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.workers[t]
	return ok
}
