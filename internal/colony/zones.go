package colony

import (
	"sync"

	"github.com/google/uuid"
)

// StockpileZone groups tiles that accept hauled resources, with an optional
// allow/deny filter per resource type (spec §3 Stockpile Zone). A resource
// type absent from the filter defaults to accepted.
type StockpileZone struct {
	ID     uuid.UUID
	Tiles  map[Position]bool
	Filter map[ResourceType]bool
}

func (z *StockpileZone) accepts(rtype ResourceType) bool {
	allow, set := z.Filter[rtype]
	if !set {
		return true
	}
	return allow
}

type tileStorage struct {
	Type   ResourceType
	Amount int
}

// ZoneRegistry owns stockpile zones and the per-tile storage slots inside
// them. Coordinate-indexed like the teacher's WorldObjectManager, with
// capacity clamping mirrored from the teacher's Inventory.AddItem stacking.
type ZoneRegistry struct {
	mu             sync.RWMutex
	capacity       int
	zones          map[uuid.UUID]*StockpileZone
	tileZone       map[Position]uuid.UUID
	storage        map[Position]*tileStorage
	pendingRemoval map[Position]bool
}

func NewZoneRegistry(tileCapacity int) *ZoneRegistry {
	if tileCapacity <= 0 {
		tileCapacity = 50
	}
	return &ZoneRegistry{
		capacity:       tileCapacity,
		zones:          make(map[uuid.UUID]*StockpileZone),
		tileZone:       make(map[Position]uuid.UUID),
		storage:        make(map[Position]*tileStorage),
		pendingRemoval: make(map[Position]bool),
	}
}

// CreateZone registers a new stockpile zone over the given tiles. It does
// not check tile types; it only rejects tiles already claimed by another
// zone.
func (z *ZoneRegistry) CreateZone(tiles []Position) (uuid.UUID, error) {
	z.mu.Lock()
	defer z.mu.Unlock()
	for _, p := range tiles {
		if _, taken := z.tileZone[p]; taken {
			return uuid.Nil, ErrTileAlreadyZoned
		}
	}
	id := uuid.New()
	zone := &StockpileZone{ID: id, Tiles: make(map[Position]bool, len(tiles)), Filter: make(map[ResourceType]bool)}
	for _, p := range tiles {
		zone.Tiles[p] = true
		z.tileZone[p] = id
	}
	z.zones[id] = zone
	return id, nil
}

func (z *ZoneRegistry) SetFilter(zoneID uuid.UUID, rtype ResourceType, allow bool) error {
	z.mu.Lock()
	defer z.mu.Unlock()
	zone, ok := z.zones[zoneID]
	if !ok {
		return ErrZoneNotFound
	}
	zone.Filter[rtype] = allow
	return nil
}

func (z *ZoneRegistry) ZoneOf(pos Position) (*StockpileZone, bool) {
	z.mu.RLock()
	defer z.mu.RUnlock()
	id, ok := z.tileZone[pos]
	if !ok {
		return nil, false
	}
	return z.zones[id], true
}

func (z *ZoneRegistry) Accepts(pos Position, rtype ResourceType) bool {
	z.mu.RLock()
	defer z.mu.RUnlock()
	id, ok := z.tileZone[pos]
	if !ok {
		return false
	}
	zone := z.zones[id]
	return zone != nil && zone.accepts(rtype)
}

func (z *ZoneRegistry) MarkTileForRemoval(pos Position) {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.pendingRemoval[pos] = true
}

// PendingRemovalPositions lists every tile currently marked for removal
// from its zone, used by the Relocation Planner to finish draining them.
func (z *ZoneRegistry) PendingRemovalPositions() []Position {
	z.mu.RLock()
	defer z.mu.RUnlock()
	out := make([]Position, 0, len(z.pendingRemoval))
	for pos := range z.pendingRemoval {
		out = append(out, pos)
	}
	return out
}

func (z *ZoneRegistry) IsPendingRemoval(pos Position) bool {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return z.pendingRemoval[pos]
}

// CompleteTileRemoval drops a tile from its zone once its storage has
// drained to empty; called by the Relocation Planner for tiles marked
// pending removal.
func (z *ZoneRegistry) CompleteTileRemoval(pos Position) bool {
	z.mu.Lock()
	defer z.mu.Unlock()
	if entry, ok := z.storage[pos]; ok && entry.Amount > 0 {
		return false
	}
	id, ok := z.tileZone[pos]
	if !ok {
		return false
	}
	if zone := z.zones[id]; zone != nil {
		delete(zone.Tiles, pos)
	}
	delete(z.tileZone, pos)
	delete(z.pendingRemoval, pos)
	return true
}

// AddToTileStorage stacks up to capacity and returns the amount actually
// added; the caller is responsible for what happens to the remainder.
func (z *ZoneRegistry) AddToTileStorage(pos Position, rtype ResourceType, amount int) int {
	z.mu.Lock()
	defer z.mu.Unlock()
	entry, ok := z.storage[pos]
	if !ok {
		entry = &tileStorage{Type: rtype}
		z.storage[pos] = entry
	}
	if entry.Amount > 0 && entry.Type != rtype {
		return 0
	}
	entry.Type = rtype
	room := z.capacity - entry.Amount
	if room < 0 {
		room = 0
	}
	add := amount
	if add > room {
		add = room
	}
	entry.Amount += add
	return add
}

func (z *ZoneRegistry) RemoveFromTileStorage(pos Position, amount int) (ResourceType, int) {
	z.mu.Lock()
	defer z.mu.Unlock()
	entry, ok := z.storage[pos]
	if !ok || entry.Amount <= 0 {
		return "", 0
	}
	take := amount
	if take > entry.Amount {
		take = entry.Amount
	}
	entry.Amount -= take
	rtype := entry.Type
	if entry.Amount <= 0 {
		delete(z.storage, pos)
	}
	return rtype, take
}

func (z *ZoneRegistry) StorageAt(pos Position) (ResourceType, int, bool) {
	z.mu.RLock()
	defer z.mu.RUnlock()
	entry, ok := z.storage[pos]
	if !ok {
		return "", 0, false
	}
	return entry.Type, entry.Amount, true
}

// TotalStored sums a resource type across every stockpile tile; this is the
// "derived global total" spec §5 describes feeding the cooking pressure
// function.
func (z *ZoneRegistry) TotalStored(rtype ResourceType) int {
	z.mu.RLock()
	defer z.mu.RUnlock()
	total := 0
	for _, entry := range z.storage {
		if entry.Type == rtype {
			total += entry.Amount
		}
	}
	return total
}

// PositionsWithResource lists every stockpile tile currently holding a
// positive amount of rtype, used by the Supply Planner to source deliveries.
func (z *ZoneRegistry) PositionsWithResource(rtype ResourceType) []Position {
	z.mu.RLock()
	defer z.mu.RUnlock()
	var out []Position
	for pos, entry := range z.storage {
		if entry.Type == rtype && entry.Amount > 0 {
			out = append(out, pos)
		}
	}
	return out
}

func (z *ZoneRegistry) HasResourceOnZ(rtype ResourceType, zLevel int) bool {
	z.mu.RLock()
	defer z.mu.RUnlock()
	for pos, entry := range z.storage {
		if pos.Z == zLevel && entry.Type == rtype && entry.Amount > 0 {
			return true
		}
	}
	return false
}

type scoredTile struct {
	pos           Position
	score         int
	stackPriority int
}

// FindTileForResource picks the best destination tile for a unit of rtype
// per spec §4.3: nearest by Manhattan distance plus a 100x cross-level
// penalty, same-type partial stacks preferred over empty tiles on tie.
func (z *ZoneRegistry) FindTileForResource(rtype ResourceType, from Position, excludePending bool) (Position, bool) {
	z.mu.RLock()
	defer z.mu.RUnlock()
	var best scoredTile
	found := false
	for pos, zoneID := range z.tileZone {
		zone := z.zones[zoneID]
		if zone == nil || !zone.accepts(rtype) {
			continue
		}
		if excludePending && z.pendingRemoval[pos] {
			continue
		}
		stackPriority := 1
		if entry, ok := z.storage[pos]; ok {
			if entry.Type != rtype || entry.Amount >= z.capacity {
				continue
			}
			stackPriority = 0
		}
		dist := from.Manhattan(pos) + 100*abs(pos.Z-from.Z)
		cand := scoredTile{pos: pos, score: dist, stackPriority: stackPriority}
		if !found || cand.score < best.score || (cand.score == best.score && cand.stackPriority < best.stackPriority) {
			best = cand
			found = true
		}
	}
	return best.pos, found
}

// TilesNeedingRelocation finds tiles holding stock the zone's filter no
// longer accepts, used by the Relocation Planner.
func (z *ZoneRegistry) TilesNeedingRelocation() []Position {
	z.mu.RLock()
	defer z.mu.RUnlock()
	var out []Position
	for pos, entry := range z.storage {
		if entry.Amount <= 0 {
			continue
		}
		zoneID, ok := z.tileZone[pos]
		if !ok {
			continue
		}
		zone := z.zones[zoneID]
		if zone != nil && !zone.accepts(entry.Type) {
			out = append(out, pos)
		}
	}
	return out
}
