package colony

// Controller drives one colonist's state machine for one tick (spec
// §4.10): idle colonists request a job or follow their schedule, moving
// colonists step toward their job's tile, and colonists on-site hand the
// tick to the matching JobWorker. Grounded on the teacher's agent.go
// getter/setter shape, generalized from a stat-sheet agent into the full
// job-driven loop.
type Controller struct {
	workers *JobWorkerRegistry
}

func NewController(workers *JobWorkerRegistry) *Controller {
	return &Controller{workers: workers}
}

// Step advances one colonist by one tick.
func (ctl *Controller) Step(c *Colony, col *Colonist, tick int) []Notification {
	var notifications []Notification

	if col.IsDead() {
		return notifications
	}

	col.AddHunger(c.Balance.Colonist.HungerPerTick)
	if col.IsStarving() {
		if col.TakeDamage(c.Balance.Colonist.StarvationDamage) {
			notifications = append(notifications, Notification{Type: NotifyDeath, Position: col.GetPosition(), ColonistID: col.ID})
			return notifications
		}
	}

	if col.ConsumeInterrupt() {
		ctl.abandonJob(c, col)
	}

	if col.MoveCooldown > 0 {
		col.MoveCooldown--
	}

	switch col.GetState() {
	case StateIdle:
		ctl.tryStartWork(c, col, tick)
	case StateMovingToTarget:
		ctl.stepMovement(c, col)
	case StatePerformingJob:
		ctl.stepJob(c, col, tick, &notifications)
	case StateSleeping:
		if !col.ShouldSleep(c.Clock.HourOfDay(tick)) {
			col.SetState(StateIdle)
		}
	case StateRecovery:
		col.RecoveryTimer--
		if col.RecoveryTimer <= 0 {
			col.SetState(StateIdle)
		}
	}

	return notifications
}

func (ctl *Controller) abandonJob(c *Colony, col *Colonist) {
	jobID, ok := col.GetCurrentJobID()
	if !ok {
		return
	}
	if carry := col.GetCarrying(); carry != nil {
		c.Resources.DropLooseItem(col.GetPosition(), carry.Type, carry.Amount, true)
		col.SetCarrying("", 0)
	}
	c.Jobs.ReleaseJob(jobID)
	col.ClearCurrentJob()
	col.SetState(StateIdle)
}

func (ctl *Controller) tryStartWork(c *Colony, col *Colonist, tick int) {
	hour := c.Clock.HourOfDay(tick)
	if col.ShouldSleep(hour) {
		col.SetState(StateSleeping)
		return
	}
	if col.ShouldRecreate(hour) {
		ctl.ensureLeisureJob(c, tick, JobRecreation, CategoryRecreation, string(BuildingArcadeMachine))
	}
	if col.ShouldTrain(hour) {
		ctl.ensureLeisureJob(c, tick, JobTraining, CategoryTraining, string(BuildingTrainingRig))
	}

	inputs := c.pressureInputs()
	job, ok := c.Jobs.RequestJob(col, c.Zones, inputs)
	if !ok {
		return
	}
	worker, ok := ctl.workers.Get(job.Type)
	if !ok {
		c.Jobs.ReleaseJob(job.ID)
		return
	}
	ctx := NewJobContext(col, job, c, tick)
	if err := worker.Validate(ctx); err != nil {
		c.Jobs.CompleteJob(job.ID)
		return
	}
	col.SetCurrentJob(job.ID)
	if col.GetPosition() == job.Position {
		col.SetState(StatePerformingJob)
	} else {
		col.SetState(StateMovingToTarget)
	}
}

// ensureLeisureJob makes sure at least one recreation/training job exists
// at a free matching workstation, so an off-hours colonist has something
// to request; it does not pick who does it, RequestJob still handles that.
func (ctl *Controller) ensureLeisureJob(c *Colony, tick int, jt JobType, cat JobCategory, kind string) {
	for _, ws := range c.Workstations.All() {
		if ws.Kind != kind {
			continue
		}
		if c.Jobs.HasJobAt(ws.Position, jt) {
			continue
		}
		job := &Job{Type: jt, Category: cat, Position: ws.Position, Required: leisureTicks}
		c.Jobs.AddJob(job, tick)
		return
	}
}

const leisureTicks = 20

// stepMovement moves one tile per MoveCooldown-gated tick, straight-line
// toward the job's target, stepping through doors as it goes.
func (ctl *Controller) stepMovement(c *Colony, col *Colonist) {
	if col.MoveCooldown > 0 {
		return
	}
	jobID, ok := col.GetCurrentJobID()
	if !ok {
		col.SetState(StateIdle)
		return
	}
	job, ok := c.Jobs.Get(jobID)
	if !ok {
		col.ClearCurrentJob()
		col.SetState(StateIdle)
		return
	}
	pos := col.GetPosition()
	if pos == job.Position {
		col.SetState(StatePerformingJob)
		return
	}
	next := stepToward(pos, job.Position)
	c.Buildings.WalkThrough(next)
	if c.Grid.IsWalkable(next) {
		col.SetPosition(next)
		col.MoveCooldown = c.Balance.Colonist.MoveCooldownTicks
		if next == job.Position {
			col.SetState(StatePerformingJob)
		}
	}
}

func stepToward(from, to Position) Position {
	next := from
	switch {
	case from.X < to.X:
		next.X++
	case from.X > to.X:
		next.X--
	case from.Y < to.Y:
		next.Y++
	case from.Y > to.Y:
		next.Y--
	case from.Z < to.Z:
		next.Z++
	case from.Z > to.Z:
		next.Z--
	}
	return next
}

func (ctl *Controller) stepJob(c *Colony, col *Colonist, tick int, notifications *[]Notification) {
	jobID, ok := col.GetCurrentJobID()
	if !ok {
		col.SetState(StateIdle)
		return
	}
	job, ok := c.Jobs.Get(jobID)
	if !ok {
		col.ClearCurrentJob()
		col.SetState(StateIdle)
		return
	}
	worker, ok := ctl.workers.Get(job.Type)
	if !ok {
		c.Jobs.CompleteJob(job.ID)
		col.ClearCurrentJob()
		col.SetState(StateIdle)
		return
	}
	ctx := NewJobContext(col, job, c, tick)
	result := worker.Process(ctx)
	if !result.Done {
		return
	}
	if result.Requeue {
		c.Jobs.ReleaseJobWithWait(job.ID, result.WaitTicks)
		col.ClearCurrentJob()
		col.SetState(StateIdle)
		return
	}
	c.Jobs.CompleteJob(job.ID)
	col.ClearCurrentJob()
	col.RecoveryTimer = c.Balance.Colonist.RecoveryTicks
	col.SetState(StateRecovery)
	if job.Type == JobConstruction && result.Success {
		*notifications = append(*notifications, Notification{Type: NotifyConstructionComplete, Position: job.Position, ColonistID: col.ID})
	}
}
