package colony

import "sync"

// TileType tags what a tile currently is. Completion of a construction site
// swaps the tile from TileUnderConstruction to the finished variant named by
// the building definition (see buildings.go).
type TileType string

const (
	TileEmpty              TileType = "empty"
	TileFloor              TileType = "floor"
	TileStockpileFloor     TileType = "stockpile_floor"
	TileFinishedWall       TileType = "finished_wall"
	TileUnderConstruction  TileType = "under_construction"
	TileDoor               TileType = "door"
	TileWindow             TileType = "window"
	TileWorkstation        TileType = "workstation"
	TileResourceNode       TileType = "resource_node"
	TileSalvageObject      TileType = "salvage_object"
	TileRoof               TileType = "roof"
	TileRoofAccess         TileType = "roof_access"
	TileFireEscapePlatform TileType = "fire_escape_platform"
)

// Tile is one grid cell. World owns the authoritative walkability bit so
// that door/window open state and tile type stay consistent with each
// other; nothing outside grid.go mutates Walkable directly.
type Tile struct {
	Type      TileType
	Walkable  bool
	DoorOpen  bool
	IsOutside bool
	RoomID    RoomID
	ExitCount int
}

// World is the grid substrate: a fixed-size 3D array of tiles plus the
// change-notification hook the Room Index subscribes to. Modeled on the
// teacher's 2D tile grid (world.go), generalized with a Z axis.
type World struct {
	mu              sync.RWMutex
	width           int
	height          int
	depth           int
	tiles           [][][]*Tile // indexed [z][y][x]
	changeListeners []func(Position)
}

func NewWorld(width, height, depth int) *World {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	if depth <= 0 {
		depth = 1
	}
	w := &World{width: width, height: height, depth: depth}
	w.tiles = make([][][]*Tile, depth)
	for z := 0; z < depth; z++ {
		w.tiles[z] = make([][]*Tile, height)
		for y := 0; y < height; y++ {
			w.tiles[z][y] = make([]*Tile, width)
			for x := 0; x < width; x++ {
				t := &Tile{Type: TileEmpty}
				t.Walkable = defaultWalkable(TileEmpty, false, z)
				t.IsOutside = z == 0
				w.tiles[z][y][x] = t
			}
		}
	}
	return w
}

func (w *World) Width() int  { return w.width }
func (w *World) Height() int { return w.height }
func (w *World) Depth() int  { return w.depth }

func (w *World) InBounds(p Position) bool {
	return p.X >= 0 && p.X < w.width && p.Y >= 0 && p.Y < w.height && p.Z >= 0 && p.Z < w.depth
}

// GetTile returns nil for out-of-bounds coordinates; callers must check.
func (w *World) GetTile(p Position) *Tile {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.InBounds(p) {
		return nil
	}
	return w.tiles[p.Z][p.Y][p.X]
}

// IsWalkable is false for out-of-bounds positions.
func (w *World) IsWalkable(p Position) bool {
	t := w.GetTile(p)
	return t != nil && t.Walkable
}

// defaultWalkable is the pure function of tile type plus door-open state
// named in spec §4.1. Resource nodes and salvage piles sit on their tile
// rather than blocking it, since jobs interact with them by standing on
// that tile.
func defaultWalkable(t TileType, doorOpen bool, z int) bool {
	switch t {
	case TileFinishedWall, TileUnderConstruction, TileRoof:
		return false
	case TileDoor, TileWindow:
		return doorOpen
	case TileFloor, TileStockpileFloor, TileWorkstation, TileResourceNode,
		TileSalvageObject, TileRoofAccess, TileFireEscapePlatform:
		return true
	case TileEmpty:
		return z == 0
	default:
		return false
	}
}

// SetTile changes a tile's type and re-derives walkability, then notifies
// change listeners (the Room Index's dirty queue). Returns false for
// out-of-bounds coordinates.
func (w *World) SetTile(p Position, t TileType) bool {
	w.mu.Lock()
	if !w.InBounds(p) {
		w.mu.Unlock()
		return false
	}
	tile := w.tiles[p.Z][p.Y][p.X]
	tile.Type = t
	tile.Walkable = defaultWalkable(t, tile.DoorOpen, p.Z)
	listeners := w.changeListeners
	w.mu.Unlock()
	for _, fn := range listeners {
		fn(p)
	}
	return true
}

// SetDoorOpen toggles the open bit on a door or window tile, updating
// walkability in lockstep, and fires the same change notification SetTile
// does: opening or closing a door changes room connectivity. No-op
// (returns false) for any other tile type.
func (w *World) SetDoorOpen(p Position, open bool) bool {
	w.mu.Lock()
	if !w.InBounds(p) {
		w.mu.Unlock()
		return false
	}
	tile := w.tiles[p.Z][p.Y][p.X]
	if tile.Type != TileDoor && tile.Type != TileWindow {
		w.mu.Unlock()
		return false
	}
	if tile.DoorOpen == open {
		w.mu.Unlock()
		return true
	}
	tile.DoorOpen = open
	tile.Walkable = defaultWalkable(tile.Type, open, p.Z)
	listeners := w.changeListeners
	w.mu.Unlock()
	for _, fn := range listeners {
		fn(p)
	}
	return true
}

// SetEnvMeta records outside/room/exit-count metadata computed by the Room
// Index; the grid itself never derives these.
func (w *World) SetEnvMeta(p Position, isOutside bool, roomID RoomID, exitCount int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.InBounds(p) {
		return
	}
	tile := w.tiles[p.Z][p.Y][p.X]
	tile.IsOutside = isOutside
	tile.RoomID = roomID
	tile.ExitCount = exitCount
}

// OnChange registers a callback fired (outside the internal lock) whenever
// SetTile changes a tile's type. Used by the Room Index to mark positions
// dirty for incremental re-flood.
func (w *World) OnChange(fn func(Position)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.changeListeners = append(w.changeListeners, fn)
}
