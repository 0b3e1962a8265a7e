package colony

import (
	"sync"

	"github.com/google/uuid"

	"github.com/lucas/colonysim/internal/config"
)

type ColonistState string

const (
	StateIdle            ColonistState = "idle"
	StateMovingToTarget  ColonistState = "moving_to_target"
	StatePerformingJob   ColonistState = "performing_job"
	StateRecovery        ColonistState = "recovery"
	StateEating          ColonistState = "eating"
	StateSleeping        ColonistState = "sleeping"
)

// Capability gates which job types a colonist is allowed to take, per
// spec §4.10.
type Capability string

const (
	CapBuild    Capability = "can_build"
	CapCook     Capability = "can_cook"
	CapCraft    Capability = "can_craft"
	CapHaul     Capability = "can_haul"
	CapScavenge Capability = "can_scavenge"
	CapFight    Capability = "can_fight"
)

var jobCapability = map[JobType]Capability{
	JobConstruction:     CapBuild,
	JobInstallFurniture: CapBuild,
	JobPlaceFurniture:   CapBuild,
	JobGathering:        CapScavenge,
	JobSalvage:          CapScavenge,
	JobSupply:           CapHaul,
	JobHaul:             CapHaul,
	JobRelocate:         CapHaul,
	JobCraftingFetch:    CapCraft,
	JobCraftingWork:     CapCraft,
	JobCooking:          CapCook,
	JobCombat:           CapFight,
}

func colonistCanPerform(c *Colonist, jt JobType) bool {
	cap, needed := jobCapability[jt]
	if !needed {
		return true // recreation/training: any colonist can take them
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Capabilities[cap]
}

// Carry is the single resource stack a colonist can be hauling at once
// (spec §4.10 "a colonist carries at most one stack, bounded by
// MAX_CARRY_AMOUNT").
type Carry struct {
	Type   ResourceType
	Amount int
}

type ScheduleActivity string

const (
	ActivityWork       ScheduleActivity = "work"
	ActivityRecreation ScheduleActivity = "recreation"
	ActivitySleep      ScheduleActivity = "sleep"
	ActivityTraining   ScheduleActivity = "training"
)

// Schedule maps hour-of-day (0-23) to the activity a colonist should be
// doing absent an interrupting job, grounded on the dropped colonist.py's
// hour-indexed schedule.
type Schedule map[int]ScheduleActivity

func DefaultSchedule() Schedule {
	s := make(Schedule, 24)
	for h := 0; h < 24; h++ {
		switch {
		case h >= 22 || h < 6:
			s[h] = ActivitySleep
		case h >= 6 && h < 8:
			s[h] = ActivityRecreation
		case h >= 20 && h < 22:
			s[h] = ActivityTraining
		default:
			s[h] = ActivityWork
		}
	}
	return s
}

// Colonist is an autonomous NPC agent: the teacher's agent.go stat-sheet
// pattern (thread-safe getters/setters, clamped health) generalized into
// the full job-driven state machine of spec §4.10.
type Colonist struct {
	mu sync.RWMutex

	ID       uuid.UUID
	Name     string
	Position Position
	State    ColonistState

	CurrentJobID *uuid.UUID
	Path         []Position
	Carrying     *Carry

	Hunger    int
	MaxHunger int
	Health    int
	MaxHealth int

	Capabilities map[Capability]bool
	Schedule     Schedule

	MoveCooldown  int
	InterruptFlag bool
	RecoveryTimer int
	BedPosition   *Position
}

func NewColonist(name string, pos Position, balance config.ColonistBalance) *Colonist {
	return &Colonist{
		ID:           uuid.New(),
		Name:         name,
		Position:     pos,
		State:        StateIdle,
		Hunger:       balance.DefaultHunger,
		MaxHunger:    balance.MaxHunger,
		Health:       balance.DefaultHealth,
		MaxHealth:    balance.MaxHealth,
		Capabilities: map[Capability]bool{CapBuild: true, CapCook: true, CapCraft: true, CapHaul: true, CapScavenge: true, CapFight: true},
		Schedule:     DefaultSchedule(),
	}
}

func (c *Colonist) GetPosition() Position {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Position
}

func (c *Colonist) SetPosition(p Position) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Position = p
}

func (c *Colonist) GetState() ColonistState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.State
}

func (c *Colonist) SetState(s ColonistState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.State = s
}

func (c *Colonist) AddHunger(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Hunger += delta
	if c.Hunger < 0 {
		c.Hunger = 0
	}
	if c.Hunger > c.MaxHunger {
		c.Hunger = c.MaxHunger
	}
}

func (c *Colonist) IsStarving() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Hunger >= c.MaxHunger
}

func (c *Colonist) TakeDamage(amount int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Health -= amount
	if c.Health < 0 {
		c.Health = 0
	}
	return c.Health <= 0
}

func (c *Colonist) Heal(amount int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Health += amount
	if c.Health > c.MaxHealth {
		c.Health = c.MaxHealth
	}
}

func (c *Colonist) IsDead() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Health <= 0
}

// Interrupt marks the colonist's current job to be abandoned at the next
// controller step, per spec §4.10 (hostile sighted within vision radius).
func (c *Colonist) Interrupt() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.InterruptFlag = true
}

func (c *Colonist) ConsumeInterrupt() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.InterruptFlag {
		c.InterruptFlag = false
		return true
	}
	return false
}

func (c *Colonist) SetCarrying(rtype ResourceType, amount int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if amount <= 0 {
		c.Carrying = nil
		return
	}
	c.Carrying = &Carry{Type: rtype, Amount: amount}
}

func (c *Colonist) GetCarrying() *Carry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.Carrying == nil {
		return nil
	}
	cp := *c.Carrying
	return &cp
}

func (c *Colonist) SetCurrentJob(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idCopy := id
	c.CurrentJobID = &idCopy
}

func (c *Colonist) ClearCurrentJob() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CurrentJobID = nil
}

func (c *Colonist) GetCurrentJobID() (uuid.UUID, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.CurrentJobID == nil {
		return uuid.Nil, false
	}
	return *c.CurrentJobID, true
}

func (c *Colonist) ShouldWork(hour int) bool    { return c.Schedule[hour] == ActivityWork }
func (c *Colonist) ShouldSleep(hour int) bool    { return c.Schedule[hour] == ActivitySleep }
func (c *Colonist) ShouldRecreate(hour int) bool { return c.Schedule[hour] == ActivityRecreation }
func (c *Colonist) ShouldTrain(hour int) bool    { return c.Schedule[hour] == ActivityTraining }

type ColonistSnapshot struct {
	ID       uuid.UUID
	Name     string
	Position Position
	State    ColonistState
	Hunger   int
	Health   int
	Carrying *Carry
}

func (c *Colonist) Snapshot() ColonistSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var carrying *Carry
	if c.Carrying != nil {
		cp := *c.Carrying
		carrying = &cp
	}
	return ColonistSnapshot{
		ID:       c.ID,
		Name:     c.Name,
		Position: c.Position,
		State:    c.State,
		Hunger:   c.Hunger,
		Health:   c.Health,
		Carrying: carrying,
	}
}
