package colony

import "github.com/google/uuid"

// The snapshot types below are the read-only projections served to a host
// (WS broadcast, HTTP poll) per spec §6 Outputs. They copy out of the live
// registries under lock rather than exposing pointers, the same shape as
// the teacher's per-player visible-state snapshots.

type TileSnapshot struct {
	Position  Position
	Type      TileType
	Walkable  bool
	DoorOpen  bool
	IsOutside bool
	RoomID    RoomID
}

// GridSnapshot walks every tile once; callers on a large grid should cache
// and diff rather than polling this every tick.
func (c *Colony) GridSnapshot() []TileSnapshot {
	out := make([]TileSnapshot, 0, c.Grid.Width()*c.Grid.Height()*c.Grid.Depth())
	for z := 0; z < c.Grid.Depth(); z++ {
		for y := 0; y < c.Grid.Height(); y++ {
			for x := 0; x < c.Grid.Width(); x++ {
				pos := Position{X: x, Y: y, Z: z}
				t := c.Grid.GetTile(pos)
				if t == nil {
					continue
				}
				out = append(out, TileSnapshot{
					Position:  pos,
					Type:      t.Type,
					Walkable:  t.Walkable,
					DoorOpen:  t.DoorOpen,
					IsOutside: t.IsOutside,
					RoomID:    t.RoomID,
				})
			}
		}
	}
	return out
}

type JobSnapshot struct {
	ID               uuid.UUID
	Type             JobType
	Category         JobCategory
	Position         Position
	Progress         int
	Required         int
	Assigned         bool
	AssignedColonist uuid.UUID
	ResourceType     ResourceType
}

func (c *Colony) JobsSnapshot() []JobSnapshot {
	jobs := c.Jobs.AllJobs()
	out := make([]JobSnapshot, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, JobSnapshot{
			ID:               j.ID,
			Type:             j.Type,
			Category:         j.Category,
			Position:         j.Position,
			Progress:         j.Progress,
			Required:         j.Required,
			Assigned:         j.Assigned,
			AssignedColonist: j.AssignedColonist,
			ResourceType:     j.ResourceType,
		})
	}
	return out
}

func (c *Colony) ColonistsSnapshot() []ColonistSnapshot {
	colonists := c.AllColonists()
	out := make([]ColonistSnapshot, 0, len(colonists))
	for _, col := range colonists {
		out = append(out, col.Snapshot())
	}
	return out
}

type WorkstationSnapshot struct {
	Position         Position
	Kind             string
	SelectedRecipeID string
	State            WorkstationState
	Progress         int
	InputBuffer      map[ResourceType]int
	OrderCount       int
}

func (c *Colony) WorkstationsSnapshot() []WorkstationSnapshot {
	stations := c.Workstations.All()
	out := make([]WorkstationSnapshot, 0, len(stations))
	for _, ws := range stations {
		ws.mu.Lock()
		buf := make(map[ResourceType]int, len(ws.InputBuffer))
		for k, v := range ws.InputBuffer {
			buf[k] = v
		}
		out = append(out, WorkstationSnapshot{
			Position:         ws.Position,
			Kind:             ws.Kind,
			SelectedRecipeID: ws.SelectedRecipeID,
			State:            ws.State,
			Progress:         ws.Progress,
			InputBuffer:      buf,
			OrderCount:       len(ws.Orders),
		})
		ws.mu.Unlock()
	}
	return out
}

type RoomSnapshot struct {
	ID    RoomID
	Z     int
	Type  RoomType
	Exits int
	Size  int
}

func (c *Colony) RoomsSnapshot() []RoomSnapshot {
	c.Rooms.mu.Lock()
	defer c.Rooms.mu.Unlock()
	out := make([]RoomSnapshot, 0, len(c.Rooms.rooms))
	for _, r := range c.Rooms.rooms {
		out = append(out, RoomSnapshot{ID: r.ID, Z: r.Z, Type: r.Type, Exits: r.Exits, Size: len(r.Tiles)})
	}
	return out
}

type ResourceNodeListSnapshot = []ResourceNodeSnapshot

func (c *Colony) ResourceNodesSnapshot() ResourceNodeListSnapshot {
	nodes := c.Resources.AllNodes()
	out := make(ResourceNodeListSnapshot, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Snapshot())
	}
	return out
}

type ZoneSnapshot struct {
	ID    uuid.UUID
	Tiles []Position
}

func (c *Colony) ZonesSnapshot() []ZoneSnapshot {
	c.Zones.mu.RLock()
	defer c.Zones.mu.RUnlock()
	out := make([]ZoneSnapshot, 0, len(c.Zones.zones))
	for id, z := range c.Zones.zones {
		tiles := make([]Position, 0, len(z.Tiles))
		for p := range z.Tiles {
			tiles = append(tiles, p)
		}
		out = append(out, ZoneSnapshot{ID: id, Tiles: tiles})
	}
	return out
}

// ColonySnapshot bundles every projection into one payload for a full
// initial sync; incremental updates go out as individual notifications
// plus targeted re-polls instead of resending this whole thing each tick.
type ColonySnapshot struct {
	Tick         int
	Grid         []TileSnapshot
	Jobs         []JobSnapshot
	Colonists    []ColonistSnapshot
	Workstations []WorkstationSnapshot
	Rooms        []RoomSnapshot
	Resources    []ResourceNodeSnapshot
	Zones        []ZoneSnapshot
}

func (e *Engine) Snapshot() ColonySnapshot {
	c := e.colony
	return ColonySnapshot{
		Tick:         e.GetTick(),
		Grid:         c.GridSnapshot(),
		Jobs:         c.JobsSnapshot(),
		Colonists:    c.ColonistsSnapshot(),
		Workstations: c.WorkstationsSnapshot(),
		Rooms:        c.RoomsSnapshot(),
		Resources:    c.ResourceNodesSnapshot(),
		Zones:        c.ZonesSnapshot(),
	}
}
