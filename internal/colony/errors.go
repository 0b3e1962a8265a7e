package colony

import "errors"

// Sentinel errors for precondition violations (spec §7): callers branch on
// these rather than string-matching, mirroring the teacher's
// engine.go ErrGameNotFound/ErrGameFull pattern.
var (
	ErrTileAlreadyZoned    = errors.New("colony: tile already belongs to a zone")
	ErrZoneNotFound        = errors.New("colony: zone not found")
	ErrTileNotBuildable    = errors.New("colony: tile cannot hold a construction site")
	ErrSiteAlreadyExists   = errors.New("colony: a construction site already occupies that tile")
	ErrSiteNotFound        = errors.New("colony: construction site not found")
	ErrUnknownBuildingType = errors.New("colony: unknown building type")
	ErrWorkstationNotFound = errors.New("colony: workstation not found")
	ErrUnknownRecipe       = errors.New("colony: unknown recipe")
	ErrRecipeNotForStation = errors.New("colony: recipe is not valid for this workstation type")
	ErrOrderIndexOutOfRange = errors.New("colony: order index out of range")
	ErrJobAlreadyExists    = errors.New("colony: a job of that type already exists at that position")
	ErrJobNotFound         = errors.New("colony: job not found")
	ErrColonistNotFound    = errors.New("colony: colonist not found")
	ErrColonistBusy        = errors.New("colony: colonist already has an assigned job")
	ErrResourceNodeNotFound = errors.New("colony: resource node not found")
	ErrNothingToHaul        = errors.New("colony: nothing at that tile to haul")
	ErrNoOrderSelected      = errors.New("colony: workstation has no active order")
)
