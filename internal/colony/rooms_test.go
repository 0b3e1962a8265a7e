package colony_test

import (
	"testing"

	"github.com/lucas/colonysim/internal/colony"
	"github.com/lucas/colonysim/internal/colony/colonytest"
)

func buildEnclosedRoom(c *colony.Colony, originX, originY, z int) {
	for x := originX; x <= originX+4; x++ {
		for y := originY; y <= originY+4; y++ {
			pos := colony.Position{X: x, Y: y, Z: z}
			if x == originX || x == originX+4 || y == originY || y == originY+4 {
				c.Grid.SetTile(pos, colony.TileFinishedWall)
			} else {
				c.Grid.SetTile(pos, colony.TileFloor)
			}
		}
	}
}

func TestRoomIndex_FloodFillsEnclosedRoomAsPlain(t *testing.T) {
	c := colonytest.NewTestColony()
	buildEnclosedRoom(c, 1, 1, 1)
	c.Rooms.ProcessDirty()

	room, ok := c.Rooms.RoomAt(colony.Position{X: 3, Y: 3, Z: 1})
	if !ok {
		t.Fatal("expected the enclosed interior tile to belong to a room")
	}
	if room.Type != colony.RoomTypePlain {
		t.Errorf("expected a room with no workstation to classify as plain, got %v", room.Type)
	}
}

func TestRoomIndex_ClassifiesByWorkstationKind(t *testing.T) {
	c := colonytest.NewTestColony()
	buildEnclosedRoom(c, 1, 1, 1)
	stovePos := colony.Position{X: 3, Y: 3, Z: 1}
	c.Workstations.Register(stovePos, string(colony.BuildingStove))
	c.Rooms.ProcessDirty()

	room, ok := c.Rooms.RoomAt(stovePos)
	if !ok {
		t.Fatal("expected room at the stove's tile")
	}
	if room.Type != colony.RoomTypeKitchen {
		t.Errorf("expected kitchen classification with a stove inside, got %v", room.Type)
	}
}

func TestRoomIndex_DoorClosingReclassifiesAsEnclosed(t *testing.T) {
	c := colonytest.NewTestColony()
	buildEnclosedRoom(c, 1, 1, 1)
	doorPos := colony.Position{X: 1, Y: 2, Z: 1}
	c.Grid.SetTile(doorPos, colony.TileDoor)
	c.Grid.SetDoorOpen(doorPos, true)
	c.Rooms.ProcessDirty()

	if _, ok := c.Rooms.RoomAt(colony.Position{X: 2, Y: 2, Z: 1}); !ok {
		t.Fatal("expected room to form even with an open door as an exit")
	}

	c.Grid.SetDoorOpen(doorPos, false)
	c.Rooms.ProcessDirty()

	room, ok := c.Rooms.RoomAt(colony.Position{X: 2, Y: 2, Z: 1})
	if !ok {
		t.Fatal("expected room to persist with the door closed")
	}
	if room.Exits == 0 {
		t.Error("expected the closed door to count as a room exit")
	}
}
