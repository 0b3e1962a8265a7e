package colony

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lucas/colonysim/internal/config"
)

type Status string

const (
	StatusWaiting Status = "waiting"
	StatusRunning Status = "running"
	StatusStopped Status = "stopped"
)

// Broadcaster is implemented by internal/ws's Hub; the engine never
// imports ws directly, mirroring how the teacher's Engine depends only on
// the game.Broadcaster interface.
type Broadcaster interface {
	BroadcastTick(tick int, notifications []Notification)
}

// Engine owns the Colony plus the tick loop driving it, the colony-sim
// analogue of the teacher's Engine wrapping World/WorldObjects/tick.go.
type Engine struct {
	mu sync.RWMutex

	colony        *Colony
	controller    *Controller
	supply        *SupplyPlanner
	relocation    *RelocationPlanner
	crafting      *CraftingPump
	threat        *ThreatPlanner
	notifications *NotificationLog
	broadcaster   Broadcaster

	tickDuration time.Duration
	maxCarry     int

	status Status
	tick   int
	cancel context.CancelFunc
	paused bool
}

func NewEngine(cfg *config.Config, workers *JobWorkerRegistry, broadcaster Broadcaster) *Engine {
	return &Engine{
		colony:        NewColony(cfg),
		controller:    NewController(workers),
		supply:        NewSupplyPlanner(),
		relocation:    NewRelocationPlanner(),
		crafting:      NewCraftingPump(),
		threat:        NewThreatPlanner(),
		notifications: NewNotificationLog(500),
		broadcaster:   broadcaster,
		tickDuration:  cfg.Sim.TickDuration,
		maxCarry:      cfg.Balance.MaxCarryAmount,
		status:        StatusWaiting,
		paused:        cfg.Dev.PauseTick,
	}
}

func (e *Engine) Colony() *Colony { return e.colony }

func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	if e.status == StatusRunning {
		e.mu.Unlock()
		return
	}
	e.status = StatusRunning
	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.mu.Unlock()

	go e.runLoop(runCtx)
}

func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
	}
	e.status = StatusStopped
}

func (e *Engine) Pause()  { e.mu.Lock(); e.paused = true; e.mu.Unlock() }
func (e *Engine) Resume() { e.mu.Lock(); e.paused = false; e.mu.Unlock() }
func (e *Engine) IsPaused() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.paused
}

func (e *Engine) GetTick() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tick
}

func (e *Engine) GetStatus() Status {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.status
}

func (e *Engine) runLoop(ctx context.Context) {
	ticker := time.NewTicker(e.tickDuration)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if e.IsPaused() {
				continue
			}
			e.ForceTick()
		}
	}
}

// ForceTick runs exactly one tick regardless of pause state, used by
// tests and the host's manual-step API.
func (e *Engine) ForceTick() {
	e.mu.Lock()
	e.tick++
	tick := e.tick
	e.mu.Unlock()

	notes := e.processTick(tick)

	e.mu.Lock()
	for _, n := range notes {
		n.Tick = tick
		e.notifications.Add(n)
	}
	e.mu.Unlock()

	if e.broadcaster != nil {
		e.broadcaster.BroadcastTick(tick, notes)
	}

	if e.colony.LivingColonistCount() == 0 {
		e.mu.Lock()
		e.notifications.Add(Notification{Tick: tick, Type: NotifyColonyLost})
		e.mu.Unlock()
		slog.Warn("colony lost", "tick", tick)
		e.Stop()
	}
}

// processTick runs the fixed sub-step order from spec §2/§4.11, which is
// the contract: agent updates first, so a job a planner creates this tick
// is only claimable starting next tick, and room re-detection sees this
// tick's construction completions. Order: agent controller step per
// colonist -> resource regrowth -> door/window auto-close -> room
// re-flood -> decrement job wait timers -> planners (auto-haul, supply,
// relocation, crafting pump, threat) -> depleted-node pruning.
func (e *Engine) processTick(tick int) []Notification {
	c := e.colony
	var notifications []Notification

	for _, col := range c.AllColonists() {
		notes := e.controller.Step(c, col, tick)
		notifications = append(notifications, notes...)
	}

	c.Resources.TickRegrow()

	occupied := make(map[Position]bool)
	for _, col := range c.AllColonists() {
		occupied[col.GetPosition()] = true
	}
	c.Buildings.TickDoorsAndWindows(occupied)

	c.Rooms.ProcessDirty()

	c.Jobs.TickWaitTimers()

	e.supply.Tick(c, tick, e.maxCarry)
	e.relocation.Tick(c, tick)
	e.crafting.Tick(c, tick)
	e.threat.Tick(c, tick)

	c.Resources.PruneDepleted()

	return notifications
}

func (e *Engine) Notifications() *NotificationLog {
	return e.notifications
}
