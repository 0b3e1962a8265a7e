package colony

import "sync"

// RoomID identifies an enclosed, flood-filled region. Zero means "not in
// any room" (outside, or not yet processed).
type RoomID int

type Room struct {
	ID    RoomID
	Tiles map[Position]bool
	Z     int
	Type  RoomType
	Exits int
}

// RoomIndex incrementally flood-fills enclosed regions, re-processing only
// the tiles the grid marked dirty since the last tick (spec §4.9). No
// library in the pack offers grid flood-fill, so the BFS below is written
// directly against stdlib.
type RoomIndex struct {
	mu           sync.Mutex
	world        *World
	workstations *WorkstationRegistry
	rules        []RoomClassRule
	rooms        map[RoomID]*Room
	tileRoom     map[Position]RoomID
	dirty        map[Position]bool
	nextID       RoomID
}

func NewRoomIndex(world *World, ws *WorkstationRegistry, rules []RoomClassRule) *RoomIndex {
	ri := &RoomIndex{
		world:        world,
		workstations: ws,
		rules:        rules,
		rooms:        make(map[RoomID]*Room),
		tileRoom:     make(map[Position]RoomID),
		dirty:        make(map[Position]bool),
	}
	world.OnChange(ri.MarkDirty)
	return ri
}

// MarkDirty enqueues a tile and its neighbors: a wall going up or down
// changes connectivity for whatever borders it, not just the tile itself.
func (ri *RoomIndex) MarkDirty(pos Position) {
	ri.mu.Lock()
	defer ri.mu.Unlock()
	ri.dirty[pos] = true
	for _, n := range pos.Adjacent4() {
		if ri.world.InBounds(n) {
			ri.dirty[n] = true
		}
	}
}

func (ri *RoomIndex) RoomAt(pos Position) (*Room, bool) {
	ri.mu.Lock()
	defer ri.mu.Unlock()
	id, ok := ri.tileRoom[pos]
	if !ok || id == 0 {
		return nil, false
	}
	return ri.rooms[id], true
}

// ProcessDirty drains the dirty queue, invalidates every room that touches
// a dirty tile, and re-floods from scratch in the affected neighborhood.
func (ri *RoomIndex) ProcessDirty() {
	ri.mu.Lock()
	if len(ri.dirty) == 0 {
		ri.mu.Unlock()
		return
	}
	seeds := make(map[Position]bool)
	for pos := range ri.dirty {
		seeds[pos] = true
		if id, ok := ri.tileRoom[pos]; ok && id != 0 {
			if room, exists := ri.rooms[id]; exists {
				for t := range room.Tiles {
					seeds[t] = true
					delete(ri.tileRoom, t)
				}
				delete(ri.rooms, id)
			}
		}
		delete(ri.tileRoom, pos)
	}
	ri.dirty = make(map[Position]bool)
	ri.mu.Unlock()

	processed := make(map[Position]bool)
	for pos := range seeds {
		if processed[pos] {
			continue
		}
		tile := ri.world.GetTile(pos)
		if tile == nil || !tile.Walkable || tile.Type == TileEmpty {
			processed[pos] = true
			continue
		}
		ri.reflood(pos, processed)
	}
}

// reflood runs a BFS from start across walkable, non-empty tiles on the
// same Z level. If the region ever reaches open ground (TileEmpty) it is
// outside, not an enclosed room.
func (ri *RoomIndex) reflood(start Position, processed map[Position]bool) {
	visited := map[Position]bool{start: true}
	queue := []Position{start}
	exitTiles := make(map[Position]bool)
	outside := false

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range cur.Adjacent4() {
			if !ri.world.InBounds(n) || n.Z != start.Z {
				continue
			}
			if visited[n] {
				continue
			}
			ntile := ri.world.GetTile(n)
			if ntile == nil {
				continue
			}
			if ntile.Type == TileDoor || ntile.Type == TileWindow {
				if !ntile.Walkable {
					exitTiles[n] = true
					continue
				}
			}
			if !ntile.Walkable {
				continue
			}
			if ntile.Type == TileEmpty {
				outside = true
				continue
			}
			visited[n] = true
			queue = append(queue, n)
		}
	}

	for pos := range visited {
		processed[pos] = true
	}

	ri.mu.Lock()
	defer ri.mu.Unlock()

	if outside {
		for pos := range visited {
			ri.world.SetEnvMeta(pos, true, 0, 0)
		}
		return
	}

	id := ri.nextID + 1
	ri.nextID = id
	room := &Room{ID: id, Tiles: visited, Z: start.Z, Exits: len(exitTiles)}

	kinds := make(map[string]bool)
	for pos := range visited {
		ri.tileRoom[pos] = id
		if ws, ok := ri.workstations.At(pos); ok {
			kinds[ws.Kind] = true
		}
	}
	room.Type = classifyRoom(kinds, ri.rules)
	ri.rooms[id] = room

	for pos := range visited {
		ri.world.SetEnvMeta(pos, false, id, room.Exits)
	}
}
