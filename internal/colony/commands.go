package colony

import (
	"errors"

	"github.com/google/uuid"
)

// This file is the command surface a host (HTTP handler, WS client command)
// drives the simulation through. Unlike a job handler, these commands
// don't run through the job-handler registry: they mutate registries
// directly, the same way an admin/dev route pokes state rather than
// going through a colonist's turn.

var (
	ErrUnknownNodeKind = errors.New("colony: unknown resource node kind")
	ErrNoColonist      = errors.New("colony: no such colonist")
	ErrNoWorkstation   = errors.New("colony: no workstation at position")
	ErrNoZone          = errors.New("colony: no zone at position")
)

// PlaceBuilding designates a construction site for a building type at pos.
func (e *Engine) PlaceBuilding(pos Position, bt BuildingType) (*ConstructionSite, error) {
	return e.colony.Buildings.PlaceConstructionSite(pos, bt)
}

// Designate marks a harvestable node for gathering by spawning a gathering
// job at its position; it's a no-op error if the tile holds no node.
func (e *Engine) Designate(pos Position) error {
	node, ok := e.colony.Resources.NodeAt(pos)
	if !ok {
		return errors.New("colony: no resource node to designate at position")
	}
	job := &Job{
		Type:         JobGathering,
		Category:     CategoryScavenge,
		Position:     pos,
		ResourceType: node.ResourceType,
		Required:     node.Max * 10,
	}
	_, err := e.colony.Jobs.AddJob(job, e.GetTick())
	return err
}

// CreateStockpileZone registers a new stockpile zone over the given tiles.
func (e *Engine) CreateStockpileZone(tiles []Position) (uuid.UUID, error) {
	return e.colony.Zones.CreateZone(tiles)
}

// SetZoneFilter allows or disallows a resource type in an existing zone.
func (e *Engine) SetZoneFilter(zoneID uuid.UUID, rtype ResourceType, allow bool) error {
	return e.colony.Zones.SetFilter(zoneID, rtype, allow)
}

// RemoveZoneTile marks a tile pending removal from its zone; the relocation
// planner finishes the job once the tile's stock has been hauled off.
func (e *Engine) RemoveZoneTile(pos Position) error {
	if _, ok := e.colony.Zones.ZoneOf(pos); !ok {
		return ErrNoZone
	}
	e.colony.Zones.MarkTileForRemoval(pos)
	return nil
}

// AddOrder queues a production order at the workstation occupying pos.
func (e *Engine) AddOrder(pos Position, recipeID string, qtype QuantityType, target int) error {
	if _, ok := e.colony.Workstations.At(pos); !ok {
		return ErrNoWorkstation
	}
	return e.colony.Workstations.AddOrder(pos, recipeID, qtype, target)
}

// CancelOrder removes a queued order by index at the workstation at pos.
func (e *Engine) CancelOrder(pos Position, index int) error {
	return e.colony.Workstations.CancelOrder(pos, index)
}

// SetWorkstationRecipe sets a workstation's SelectedRecipeID. The crafting
// pump overwrites it with the current order's recipe on its next pass, and
// clears it when the station has no order.
func (e *Engine) SetWorkstationRecipe(pos Position, recipeID string) error {
	ws, ok := e.colony.Workstations.At(pos)
	if !ok {
		return ErrNoWorkstation
	}
	ws.mu.Lock()
	ws.SelectedRecipeID = recipeID
	ws.mu.Unlock()
	return nil
}

// CommandColonist forces a colonist back to idle so the next controller
// step re-evaluates the job queue immediately, used by a host's "reassign"
// control; it does not pick a specific job; the priority scan still owns
// that decision per spec §4.4.
func (e *Engine) CommandColonist(id uuid.UUID) error {
	col, ok := e.colony.GetColonist(id)
	if !ok {
		return ErrNoColonist
	}
	col.ClearCurrentJob()
	col.SetState(StateIdle)
	return nil
}

// Tick exposes a manual single-step advance for a host's dev/debug surface.
func (e *Engine) Tick() {
	e.ForceTick()
}
