package colony

import "sync"

// BuildingType names what a construction site becomes once complete.
type BuildingType string

const (
	BuildingWall        BuildingType = "wall"
	BuildingDoor        BuildingType = "door"
	BuildingWindow      BuildingType = "window"
	BuildingFloor       BuildingType = "floor"
	BuildingFireEscape  BuildingType = "fire_escape"
	BuildingStove       BuildingType = "stove"
	BuildingWorkbench   BuildingType = "workbench"
	BuildingGenerator   BuildingType = "generator"
	BuildingArcadeMachine BuildingType = "arcade_machine"
	BuildingTrainingRig BuildingType = "training_rig"
)

// BuildingCategory is the construction-subtype weight bucket from
// spec §4.4 (workstation > door > wall > floor > other).
type BuildingCategory string

const (
	CategoryWorkstationBuild BuildingCategory = "workstation"
	CategoryDoorBuild        BuildingCategory = "door"
	CategoryWallBuild        BuildingCategory = "wall"
	CategoryFloorBuild       BuildingCategory = "floor"
	CategoryOtherBuild       BuildingCategory = "other"
)

var subtypeWeight = map[BuildingCategory]int{
	CategoryWorkstationBuild: 4,
	CategoryDoorBuild:        3,
	CategoryWallBuild:        2,
	CategoryFloorBuild:       1,
	CategoryOtherBuild:       0,
}

type BuildingCost map[ResourceType]int

// BuildingDef is a static definition of a buildable thing.
type BuildingDef struct {
	Type            BuildingType
	Category        BuildingCategory
	Cost            BuildingCost
	FinishedTile    TileType
	IsWorkstation   bool
	WorkstationKind string // passed through to the Crafting Pump recipe lookup
}

type BuildingDefTable struct {
	mu   sync.RWMutex
	defs map[BuildingType]BuildingDef
}

func NewBuildingDefTable() *BuildingDefTable {
	return &BuildingDefTable{defs: make(map[BuildingType]BuildingDef)}
}

func (t *BuildingDefTable) Register(d BuildingDef) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.defs[d.Type] = d
}

func (t *BuildingDefTable) Get(bt BuildingType) (BuildingDef, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	d, ok := t.defs[bt]
	return d, ok
}

func DefaultBuildingDefTable() *BuildingDefTable {
	t := NewBuildingDefTable()
	t.Register(BuildingDef{Type: BuildingWall, Category: CategoryWallBuild, Cost: BuildingCost{"scrap": 5}, FinishedTile: TileFinishedWall})
	t.Register(BuildingDef{Type: BuildingDoor, Category: CategoryDoorBuild, Cost: BuildingCost{"scrap": 3}, FinishedTile: TileDoor})
	t.Register(BuildingDef{Type: BuildingWindow, Category: CategoryDoorBuild, Cost: BuildingCost{"scrap": 3}, FinishedTile: TileWindow})
	t.Register(BuildingDef{Type: BuildingFloor, Category: CategoryFloorBuild, Cost: BuildingCost{"scrap": 1}, FinishedTile: TileFloor})
	t.Register(BuildingDef{Type: BuildingFireEscape, Category: CategoryOtherBuild, Cost: BuildingCost{"scrap": 4}, FinishedTile: TileFireEscapePlatform})
	t.Register(BuildingDef{Type: BuildingStove, Category: CategoryWorkstationBuild, Cost: BuildingCost{"scrap": 8, "mineral": 2}, FinishedTile: TileWorkstation, IsWorkstation: true, WorkstationKind: string(BuildingStove)})
	t.Register(BuildingDef{Type: BuildingWorkbench, Category: CategoryWorkstationBuild, Cost: BuildingCost{"scrap": 10}, FinishedTile: TileWorkstation, IsWorkstation: true, WorkstationKind: string(BuildingWorkbench)})
	t.Register(BuildingDef{Type: BuildingGenerator, Category: CategoryWorkstationBuild, Cost: BuildingCost{"scrap": 6, "wiring": 4}, FinishedTile: TileWorkstation, IsWorkstation: true, WorkstationKind: string(BuildingGenerator)})
	t.Register(BuildingDef{Type: BuildingArcadeMachine, Category: CategoryOtherBuild, Cost: BuildingCost{"scrap": 6, "wiring": 2}, FinishedTile: TileWorkstation, IsWorkstation: true, WorkstationKind: string(BuildingArcadeMachine)})
	t.Register(BuildingDef{Type: BuildingTrainingRig, Category: CategoryOtherBuild, Cost: BuildingCost{"scrap": 6}, FinishedTile: TileWorkstation, IsWorkstation: true, WorkstationKind: string(BuildingTrainingRig)})
	return t
}

// ConstructionSite tracks a pending building's delivered materials, the
// shape grounded on other_examples' PendingBuilding-by-position pattern.
type ConstructionSite struct {
	Position           Position
	BuildingType       BuildingType
	Needed             map[ResourceType]int
	Delivered          map[ResourceType]int
}

func (c *ConstructionSite) Missing() map[ResourceType]int {
	missing := make(map[ResourceType]int)
	for rtype, need := range c.Needed {
		have := c.Delivered[rtype]
		if have < need {
			missing[rtype] = need - have
		}
	}
	return missing
}

func (c *ConstructionSite) IsFullySupplied() bool {
	for rtype, need := range c.Needed {
		if c.Delivered[rtype] < need {
			return false
		}
	}
	return true
}

// Door and Window carry a close timer: spec §4.1 "a door/window left open
// with nobody on it auto-closes after a configured delay".
type Door struct {
	Position   Position
	Open       bool
	CloseTimer int
}

type Window struct {
	Position   Position
	Open       bool
	CloseTimer int
}

// BuildingRegistry owns construction sites and placed doors/windows,
// coordinate-indexed like the teacher's WorldObjectManager.
type BuildingRegistry struct {
	mu               sync.RWMutex
	defs             *BuildingDefTable
	world            *World
	sites            map[Position]*ConstructionSite
	doors            map[Position]*Door
	windows          map[Position]*Window
	doorCloseDelay   int
	windowCloseDelay int
}

func NewBuildingRegistry(world *World, defs *BuildingDefTable, doorCloseDelay, windowCloseDelay int) *BuildingRegistry {
	return &BuildingRegistry{
		defs:             defs,
		world:            world,
		sites:            make(map[Position]*ConstructionSite),
		doors:            make(map[Position]*Door),
		windows:          make(map[Position]*Window),
		doorCloseDelay:   doorCloseDelay,
		windowCloseDelay: windowCloseDelay,
	}
}

// PlaceConstructionSite stakes out a tile for a new building: the grid
// tile becomes TileUnderConstruction immediately (spec §4.1), blocking
// walkthrough until materials arrive and the job finishes.
func (b *BuildingRegistry) PlaceConstructionSite(pos Position, bt BuildingType) (*ConstructionSite, error) {
	def, ok := b.defs.Get(bt)
	if !ok {
		return nil, ErrUnknownBuildingType
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.sites[pos]; exists {
		return nil, ErrSiteAlreadyExists
	}
	if tile := b.world.GetTile(pos); tile == nil || !tile.Walkable {
		return nil, ErrTileNotBuildable
	}
	needed := make(map[ResourceType]int, len(def.Cost))
	for rtype, amt := range def.Cost {
		needed[rtype] = amt
	}
	site := &ConstructionSite{
		Position:     pos,
		BuildingType: bt,
		Needed:       needed,
		Delivered:    make(map[ResourceType]int),
	}
	b.sites[pos] = site
	b.world.SetTile(pos, TileUnderConstruction)
	return site, nil
}

func (b *BuildingRegistry) SiteAt(pos Position) (*ConstructionSite, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, ok := b.sites[pos]
	return s, ok
}

// DeliverMaterial clamps the delivered amount to what the site still needs
// and returns the amount actually consumed, per the Open Question resolved
// in DESIGN.md (overflow is the caller's problem, not this method's).
func (b *BuildingRegistry) DeliverMaterial(pos Position, rtype ResourceType, amount int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	site, ok := b.sites[pos]
	if !ok {
		return 0
	}
	need := site.Needed[rtype] - site.Delivered[rtype]
	if need <= 0 {
		return 0
	}
	take := amount
	if take > need {
		take = need
	}
	site.Delivered[rtype] += take
	return take
}

func (b *BuildingRegistry) AllSitesNeedingMaterial() []*ConstructionSite {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []*ConstructionSite
	for _, s := range b.sites {
		if !s.IsFullySupplied() {
			out = append(out, s)
		}
	}
	return out
}

// AllSitesReadyToBuild returns fully-supplied sites waiting on labor,
// the other half of the split AllSitesNeedingMaterial partitions on.
func (b *BuildingRegistry) AllSitesReadyToBuild() []*ConstructionSite {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []*ConstructionSite
	for _, s := range b.sites {
		if s.IsFullySupplied() {
			out = append(out, s)
		}
	}
	return out
}

// ConstructionWorkTicks is the fixed labor duration for any site once its
// materials are fully delivered (spec doesn't vary build time by building
// type, only by material cost).
const ConstructionWorkTicks = 15

// ConstructionMaterialsWaitTicks is the soft cooldown a construction job
// sits on when a colonist arrives to find the site still short on
// materials: long enough for the supply planner to catch up before the
// job is eligible again.
const ConstructionMaterialsWaitTicks = 10

// CompleteConstruction finalizes a fully-worked, fully-supplied site: the
// grid tile becomes the finished type and the site record is removed. The
// caller (Colony) is responsible for registering a door/window/workstation
// using the returned BuildingDef.
func (b *BuildingRegistry) CompleteConstruction(pos Position) (BuildingDef, bool) {
	b.mu.Lock()
	site, ok := b.sites[pos]
	if !ok {
		b.mu.Unlock()
		return BuildingDef{}, false
	}
	def, _ := b.defs.Get(site.BuildingType)
	delete(b.sites, pos)
	if def.Type == BuildingDoor {
		b.doors[pos] = &Door{Position: pos}
	}
	if def.Type == BuildingWindow {
		b.windows[pos] = &Window{Position: pos}
	}
	b.mu.Unlock()
	b.world.SetTile(pos, def.FinishedTile)
	return def, true
}

func (b *BuildingRegistry) DoorAt(pos Position) (*Door, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	d, ok := b.doors[pos]
	return d, ok
}

func (b *BuildingRegistry) WindowAt(pos Position) (*Window, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	w, ok := b.windows[pos]
	return w, ok
}

// WalkThrough opens a door/window and resets its auto-close timer; called
// whenever a colonist steps onto that tile.
func (b *BuildingRegistry) WalkThrough(pos Position) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if d, ok := b.doors[pos]; ok {
		d.Open = true
		d.CloseTimer = b.doorCloseDelay
		b.world.SetDoorOpen(pos, true)
	}
	if w, ok := b.windows[pos]; ok {
		w.Open = true
		w.CloseTimer = b.windowCloseDelay
		b.world.SetDoorOpen(pos, true)
	}
}

// TickDoorsAndWindows counts down open doors/windows with nobody on them
// and closes those that hit zero, returning the positions closed this tick
// (the Room Index needs these to re-flood).
func (b *BuildingRegistry) TickDoorsAndWindows(occupied map[Position]bool) []Position {
	b.mu.Lock()
	defer b.mu.Unlock()
	var closed []Position
	for pos, d := range b.doors {
		if !d.Open {
			continue
		}
		if occupied[pos] {
			d.CloseTimer = b.doorCloseDelay
			continue
		}
		d.CloseTimer--
		if d.CloseTimer <= 0 {
			d.Open = false
			b.world.SetDoorOpen(pos, false)
			closed = append(closed, pos)
		}
	}
	for pos, w := range b.windows {
		if !w.Open {
			continue
		}
		if occupied[pos] {
			w.CloseTimer = b.windowCloseDelay
			continue
		}
		w.CloseTimer--
		if w.CloseTimer <= 0 {
			w.Open = false
			b.world.SetDoorOpen(pos, false)
			closed = append(closed, pos)
		}
	}
	return closed
}
