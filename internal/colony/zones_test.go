package colony_test

import (
	"testing"

	"github.com/lucas/colonysim/internal/colony"
)

func TestZoneRegistry_AddToTileStorage_ClampsToCapacity(t *testing.T) {
	z := colony.NewZoneRegistry(10)
	pos := colony.Position{X: 0, Y: 0}
	if _, err := z.CreateZone([]colony.Position{pos}); err != nil {
		t.Fatalf("CreateZone: %v", err)
	}

	added := z.AddToTileStorage(pos, "scrap", 7)
	if added != 7 {
		t.Fatalf("expected 7 added, got %d", added)
	}
	added = z.AddToTileStorage(pos, "scrap", 7)
	if added != 3 {
		t.Errorf("expected clamp to 3 (capacity 10), got %d", added)
	}
	_, amount, ok := z.StorageAt(pos)
	if !ok || amount != 10 {
		t.Errorf("expected tile full at 10, got %d ok=%v", amount, ok)
	}
}

func TestZoneRegistry_AddToTileStorage_RejectsMismatchedType(t *testing.T) {
	z := colony.NewZoneRegistry(10)
	pos := colony.Position{X: 0, Y: 0}
	z.AddToTileStorage(pos, "scrap", 5)
	added := z.AddToTileStorage(pos, "mineral", 5)
	if added != 0 {
		t.Errorf("expected 0 added when tile already holds a different type, got %d", added)
	}
}

func TestZoneRegistry_TilesNeedingRelocation_DetectsFilterMismatch(t *testing.T) {
	z := colony.NewZoneRegistry(10)
	pos := colony.Position{X: 1, Y: 1}
	zoneID, err := z.CreateZone([]colony.Position{pos})
	if err != nil {
		t.Fatalf("CreateZone: %v", err)
	}
	z.AddToTileStorage(pos, "scrap", 5)

	if got := z.TilesNeedingRelocation(); len(got) != 0 {
		t.Fatalf("expected no relocation needed before filter change, got %v", got)
	}

	if err := z.SetFilter(zoneID, "scrap", false); err != nil {
		t.Fatalf("SetFilter: %v", err)
	}

	got := z.TilesNeedingRelocation()
	if len(got) != 1 || got[0] != pos {
		t.Errorf("expected %v flagged for relocation, got %v", pos, got)
	}
}

func TestZoneRegistry_FindTileForResource_PrefersPartialStackOnTie(t *testing.T) {
	z := colony.NewZoneRegistry(10)
	empty := colony.Position{X: 2, Y: 0}
	partial := colony.Position{X: 0, Y: 2}
	from := colony.Position{X: 0, Y: 0}
	if _, err := z.CreateZone([]colony.Position{empty, partial}); err != nil {
		t.Fatalf("CreateZone: %v", err)
	}
	z.AddToTileStorage(partial, "scrap", 3)

	got, ok := z.FindTileForResource("scrap", from, false)
	if !ok {
		t.Fatal("expected a destination tile")
	}
	if got != partial {
		t.Errorf("expected the partially-stacked tile to win the tie, got %+v", got)
	}
}
