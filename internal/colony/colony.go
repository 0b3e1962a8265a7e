package colony

import (
	"sync"

	"github.com/google/uuid"

	"github.com/lucas/colonysim/internal/config"
)

// Colony bundles every substrate registry into one value, breaking the
// ownership cycles that would otherwise exist between them (spec §3/§9):
// jobs reference positions, not pointers into other registries, and every
// registry is reachable from here by any handler that needs it.
type Colony struct {
	mu sync.RWMutex

	Grid         *World
	NodeKinds    *NodeKindTable
	Resources    *ResourceRegistry
	Zones        *ZoneRegistry
	BuildingDefs *BuildingDefTable
	Buildings    *BuildingRegistry
	Recipes      *RecipeRegistry
	Workstations *WorkstationRegistry
	Rooms        *RoomIndex
	Jobs         *JobQueue
	Pressure     *DynamicPressureTable
	Clock        *Clock
	Furniture    *FurnitureRegistry
	Balance      config.BalanceConfig

	Colonists map[uuid.UUID]*Colonist
	Hostiles  map[uuid.UUID]Position
}

func NewColony(cfg *config.Config) *Colony {
	grid := NewWorld(cfg.Sim.GridWidth, cfg.Sim.GridHeight, cfg.Sim.GridDepth)
	nodeKinds := DefaultNodeKindTable()
	buildingDefs := DefaultBuildingDefTable()
	recipes := DefaultRecipeRegistry()
	workstations := NewWorkstationRegistry(recipes)
	pressure := DefaultDynamicPressureTable()

	return &Colony{
		Grid:         grid,
		NodeKinds:    nodeKinds,
		Resources:    NewResourceRegistry(nodeKinds),
		Zones:        NewZoneRegistry(cfg.Balance.TileCapacity),
		BuildingDefs: buildingDefs,
		Buildings:    NewBuildingRegistry(grid, buildingDefs, cfg.Balance.DoorCloseDelay, cfg.Balance.WindowCloseDelay),
		Recipes:      recipes,
		Workstations: workstations,
		Rooms:        NewRoomIndex(grid, workstations, DefaultRoomClassRules),
		Jobs:         NewJobQueue(pressure),
		Pressure:     pressure,
		Clock:        NewClock(cfg.Sim.TicksPerHour, cfg.Sim.TicksPerDay),
		Furniture:    NewFurnitureRegistry(),
		Balance:      cfg.Balance,
		Colonists:    make(map[uuid.UUID]*Colonist),
		Hostiles:     make(map[uuid.UUID]Position),
	}
}

func (c *Colony) AddColonist(col *Colonist) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Colonists[col.ID] = col
}

func (c *Colony) RemoveColonist(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.Colonists, id)
}

func (c *Colony) GetColonist(id uuid.UUID) (*Colonist, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	col, ok := c.Colonists[id]
	return col, ok
}

func (c *Colony) AllColonists() []*Colonist {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Colonist, 0, len(c.Colonists))
	for _, col := range c.Colonists {
		out = append(out, col)
	}
	return out
}

func (c *Colony) LivingColonistCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, col := range c.Colonists {
		if !col.IsDead() {
			n++
		}
	}
	return n
}

func (c *Colony) SetHostile(id uuid.UUID, pos Position) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Hostiles[id] = pos
}

func (c *Colony) RemoveHostile(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.Hostiles, id)
}

func (c *Colony) HasHostile(id uuid.UUID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.Hostiles[id]
	return ok
}

// NearestHostileDistance implements the PressureInputs.HostileDistance
// callback the Job Queue's combat pressure curve needs.
func (c *Colony) NearestHostileDistance(z int, from Position) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	best := -1
	for _, pos := range c.Hostiles {
		if pos.Z != z {
			continue
		}
		d := from.Manhattan(pos)
		if best == -1 || d < best {
			best = d
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

func (c *Colony) pressureInputs() PressureInputs {
	return PressureInputs{
		TotalStoredFood: c.Zones.TotalStored("food"),
		HostileDistance: c.NearestHostileDistance,
	}
}
