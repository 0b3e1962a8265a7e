package colony

import (
	"sync"

	"github.com/google/uuid"
)

type JobType string

const (
	JobConstruction     JobType = "construction"
	JobGathering        JobType = "gathering"
	JobSupply           JobType = "supply"
	JobHaul             JobType = "haul"
	JobRelocate         JobType = "relocate"
	JobSalvage          JobType = "salvage"
	JobInstallFurniture JobType = "install_furniture"
	JobPlaceFurniture   JobType = "place_furniture"
	JobCraftingFetch    JobType = "crafting_fetch"
	JobCraftingWork     JobType = "crafting_work"
	JobCooking          JobType = "cooking"
	JobRecreation       JobType = "recreation"
	JobTraining         JobType = "training"
	JobCombat           JobType = "combat"
)

type JobCategory string

const (
	CategoryBuild      JobCategory = "build"
	CategoryHaul       JobCategory = "haul"
	CategoryScavenge   JobCategory = "scavenge"
	CategoryCook       JobCategory = "cook"
	CategoryCraft      JobCategory = "craft"
	CategoryFight      JobCategory = "fight"
	CategoryRecreation JobCategory = "recreation"
	CategoryTraining   JobCategory = "training"
)

// categoryWeight is the priority-scan tie-break named in spec §4.4:
// construction > supply/haul-to-sites > crafting-fetch > gathering >
// haul-loose > relocate > recreation > training. Combat and cooking are
// pressure-dominated in practice (their dynamic pressure usually exceeds
// everything else) but still need a resting weight to break ties against
// each other and against idle categories.
var categoryWeight = map[JobType]int{
	JobConstruction:     100,
	JobSupply:           90,
	JobCraftingFetch:    80,
	JobCraftingWork:     78,
	JobGathering:        70,
	JobInstallFurniture: 65,
	JobPlaceFurniture:   65,
	JobSalvage:          55,
	JobHaul:             50,
	JobRelocate:         40,
	JobCombat:           95,
	JobCooking:          72,
	JobRecreation:       20,
	JobTraining:         10,
}

// DeliveryItem is one leg of a batch-supply job's delivery queue
// (spec §4.5 Supply Planner).
type DeliveryItem struct {
	Pos    Position
	Amount int
}

// Job is a unit of work a colonist can claim and execute. Not every field
// is meaningful for every JobType; jobwork handlers read only the fields
// relevant to their own type.
type Job struct {
	ID               uuid.UUID
	Type             JobType
	Category         JobCategory
	Subtype          BuildingCategory // construction subtype weight
	Position         Position
	Progress         int
	Required         int
	Assigned         bool
	AssignedColonist uuid.UUID
	WaitTimer        int
	ResourceType     ResourceType
	Dest             *Position
	DeliveryQueue    []DeliveryItem
	FurnitureKind    string
	TargetID         uuid.UUID
	InsertSeq        int64
	CreatedTick      int
}

// Designation marks a tile the player wants worked on before a concrete
// Job exists for it (e.g. "gather here" before a node is even confirmed
// harvestable).
type Designation struct {
	Position Position
	Category JobCategory
}

type jobKey struct {
	Pos Position
	Typ JobType
}

// JobQueue owns every live job and designation. There is no persistent
// sorted structure (spec §9): request_job scans and scores candidates
// fresh every call, grounded on the scan-and-claim shape used by
// scheduler-style examples in the retrieval pack.
type JobQueue struct {
	mu            sync.RWMutex
	jobs          map[uuid.UUID]*Job
	byKey         map[jobKey]*Job
	designations  map[Position]*Designation
	seq           int64
	pressureTable *DynamicPressureTable
}

func NewJobQueue(pt *DynamicPressureTable) *JobQueue {
	return &JobQueue{
		jobs:          make(map[uuid.UUID]*Job),
		byKey:         make(map[jobKey]*Job),
		designations:  make(map[Position]*Designation),
		pressureTable: pt,
	}
}

// AddJob rejects a duplicate (position, type) pair: at most one job per
// tile per type may exist at once (spec §4.4 invariant).
func (q *JobQueue) AddJob(j *Job, currentTick int) (*Job, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	key := jobKey{Pos: j.Position, Typ: j.Type}
	if _, exists := q.byKey[key]; exists {
		return nil, ErrJobAlreadyExists
	}
	j.ID = uuid.New()
	q.seq++
	j.InsertSeq = q.seq
	j.CreatedTick = currentTick
	q.jobs[j.ID] = j
	q.byKey[key] = j
	return j, nil
}

func (q *JobQueue) GetJobAt(pos Position, jt JobType) (*Job, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	j, ok := q.byKey[jobKey{Pos: pos, Typ: jt}]
	return j, ok
}

func (q *JobQueue) HasJobAt(pos Position, jt JobType) bool {
	_, ok := q.GetJobAt(pos, jt)
	return ok
}

func (q *JobQueue) Get(id uuid.UUID) (*Job, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	j, ok := q.jobs[id]
	return j, ok
}

// ReleaseJob un-assigns a job so it's eligible to be picked up again
// (interrupt handling, spec §4.10).
func (q *JobQueue) ReleaseJob(id uuid.UUID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if j, ok := q.jobs[id]; ok {
		j.Assigned = false
		j.AssignedColonist = uuid.Nil
	}
}

func (q *JobQueue) CompleteJob(id uuid.UUID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	j, ok := q.jobs[id]
	if !ok {
		return
	}
	delete(q.jobs, id)
	delete(q.byKey, jobKey{Pos: j.Position, Typ: j.Type})
}

// ReleaseJobWithWait un-assigns a job and puts it on a soft cooldown
// (spec §4.10: "if materials missing on arrival, set job.wait_timer and
// release"), keeping it in the queue instead of deleting it.
func (q *JobQueue) ReleaseJobWithWait(id uuid.UUID, waitTicks int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	j, ok := q.jobs[id]
	if !ok {
		return
	}
	j.Assigned = false
	j.AssignedColonist = uuid.Nil
	j.WaitTimer = waitTicks
}

// TickWaitTimers decrements every job's soft cooldown (spec §2 control
// flow step F, "decrement job wait timers").
func (q *JobQueue) TickWaitTimers() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, j := range q.jobs {
		if j.WaitTimer > 0 {
			j.WaitTimer--
		}
	}
}

func (q *JobQueue) AddDesignation(pos Position, cat JobCategory) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.designations[pos] = &Designation{Position: pos, Category: cat}
}

func (q *JobQueue) ClearDesignation(pos Position) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.designations, pos)
}

func (q *JobQueue) AllJobs() []*Job {
	q.mu.RLock()
	defer q.mu.RUnlock()
	out := make([]*Job, 0, len(q.jobs))
	for _, j := range q.jobs {
		out = append(out, j)
	}
	return out
}

// PressureInputs supplies the live colony state the dynamic pressure
// functions need (spec §4.4).
type PressureInputs struct {
	TotalStoredFood  int
	HostileDistance  func(z int, from Position) (int, bool)
}

func (q *JobQueue) jobPressure(j *Job, inputs PressureInputs) int {
	switch j.Type {
	case JobCooking:
		return q.pressureTable.CookingPressure(inputs.TotalStoredFood)
	case JobCombat:
		if inputs.HostileDistance != nil {
			if dist, ok := inputs.HostileDistance(j.Position.Z, j.Position); ok {
				return q.pressureTable.CombatPressure(dist)
			}
		}
		return 0
	default:
		return staticPressure[j.Type]
	}
}

// candidateEligible applies capability gating plus a construction material
// check: a construction job with a ResourceType set is skipped when no
// stockpile tile on the colonist's Z holds that resource. Construction jobs
// without a ResourceType, which is how the Supply Planner creates them, are
// not checked against the site's material list.
func candidateEligible(j *Job, colonist *Colonist, zones *ZoneRegistry) bool {
	if j.Assigned {
		return false
	}
	if j.WaitTimer > 0 {
		return false
	}
	if !colonistCanPerform(colonist, j.Type) {
		return false
	}
	if j.Type == JobConstruction && j.ResourceType != "" {
		if !zones.HasResourceOnZ(j.ResourceType, colonist.Position.Z) {
			return false
		}
	}
	return true
}

// RequestJob scans every unassigned, eligible job and picks the best one
// for colonist per spec §4.4's lexicographic ordering: pressure desc,
// category weight desc, subtype weight desc, Manhattan distance asc,
// insertion order asc.
func (q *JobQueue) RequestJob(colonist *Colonist, zones *ZoneRegistry, inputs PressureInputs) (*Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var best *Job
	var bestPressure, bestCatWeight, bestSubWeight, bestDist int

	for _, j := range q.jobs {
		if !candidateEligible(j, colonist, zones) {
			continue
		}
		pressure := q.jobPressure(j, inputs)
		catWeight := categoryWeight[j.Type]
		subWeight := subtypeWeight[j.Subtype]
		dist := colonist.Position.Manhattan(j.Position)

		if best == nil {
			best, bestPressure, bestCatWeight, bestSubWeight, bestDist = j, pressure, catWeight, subWeight, dist
			continue
		}
		if better(pressure, catWeight, subWeight, dist, j.InsertSeq,
			bestPressure, bestCatWeight, bestSubWeight, bestDist, best.InsertSeq) {
			best, bestPressure, bestCatWeight, bestSubWeight, bestDist = j, pressure, catWeight, subWeight, dist
		}
	}

	if best == nil {
		return nil, false
	}
	best.Assigned = true
	best.AssignedColonist = colonist.ID
	return best, true
}

func better(p, c, s, d int, seq int64, bp, bc, bs, bd int, bseq int64) bool {
	if p != bp {
		return p > bp
	}
	if c != bc {
		return c > bc
	}
	if s != bs {
		return s > bs
	}
	if d != bd {
		return d < bd
	}
	return seq < bseq
}
