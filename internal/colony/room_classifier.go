package colony

// RoomType names the inferred purpose of an enclosed room.
type RoomType string

const (
	RoomTypePlain      RoomType = "plain"
	RoomTypeKitchen    RoomType = "kitchen"
	RoomTypeWorkshop   RoomType = "workshop"
	RoomTypePowerRoom  RoomType = "power_room"
	RoomTypeRecreation RoomType = "recreation"
	RoomTypeTraining   RoomType = "training"
)

// RoomClassRule pairs a workstation kind found inside a room with the room
// type it implies. Rules are evaluated in order, first match wins; a room
// containing no recognized workstation classifies as RoomTypePlain. This
// is the resolution of spec §9's room-classification Open Question: the
// precedence lives in data here, not in branching code.
type RoomClassRule struct {
	WorkstationKind string
	RoomType        RoomType
}

var DefaultRoomClassRules = []RoomClassRule{
	{WorkstationKind: string(BuildingStove), RoomType: RoomTypeKitchen},
	{WorkstationKind: string(BuildingWorkbench), RoomType: RoomTypeWorkshop},
	{WorkstationKind: string(BuildingGenerator), RoomType: RoomTypePowerRoom},
	{WorkstationKind: string(BuildingArcadeMachine), RoomType: RoomTypeRecreation},
	{WorkstationKind: string(BuildingTrainingRig), RoomType: RoomTypeTraining},
}

func classifyRoom(workstationKinds map[string]bool, rules []RoomClassRule) RoomType {
	for _, rule := range rules {
		if workstationKinds[rule.WorkstationKind] {
			return rule.RoomType
		}
	}
	return RoomTypePlain
}
