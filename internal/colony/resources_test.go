package colony_test

import (
	"testing"

	"github.com/lucas/colonysim/internal/colony"
)

func TestResourceRegistry_HarvestTick_YieldsAndDepletes(t *testing.T) {
	kinds := colony.DefaultNodeKindTable()
	r := colony.NewResourceRegistry(kinds)
	pos := colony.Position{X: 0, Y: 0}
	node, ok := r.SpawnNode(pos, "scrap_heap")
	if !ok {
		t.Fatal("expected scrap_heap node to spawn")
	}

	required := node.Max * 3
	total := 0
	for progress := 1; progress <= required; progress++ {
		yielded, ok := r.HarvestTick(pos, progress, required)
		if !ok {
			t.Fatalf("expected node to remain harvestable through progress %d", progress)
		}
		total += yielded
	}
	if total != node.Max {
		t.Errorf("expected %d total yielded, got %d", node.Max, total)
	}

	if _, ok := r.HarvestTick(pos, required+1, required); ok {
		t.Error("expected a depleted node to refuse further harvest ticks")
	}
}

func TestResourceRegistry_TickRegrow_RestoresReplenishableNode(t *testing.T) {
	kinds := colony.DefaultNodeKindTable()
	r := colony.NewResourceRegistry(kinds)
	pos := colony.Position{X: 1, Y: 1}
	node, _ := r.SpawnNode(pos, "synth_crop")

	required := node.Max * 3
	for progress := 1; progress <= required; progress++ {
		r.HarvestTick(pos, progress, required)
	}
	node, _ = r.NodeAt(pos)
	if node.State != colony.NodeDepleted {
		t.Fatalf("expected node depleted after full harvest, got %v", node.State)
	}

	for i := 0; i < node.RegrowTicks; i++ {
		r.TickRegrow()
	}
	node, _ = r.NodeAt(pos)
	if node.State != colony.NodeIdle || node.Remaining != node.Max {
		t.Errorf("expected node fully regrown, got state=%v remaining=%d", node.State, node.Remaining)
	}
}

func TestResourceRegistry_PruneDepleted_RemovesOnlyAfterLooseIsHauled(t *testing.T) {
	kinds := colony.DefaultNodeKindTable()
	r := colony.NewResourceRegistry(kinds)
	pos := colony.Position{X: 2, Y: 2}
	node, _ := r.SpawnNode(pos, "wiring_cache")

	required := node.Max * 3
	for progress := 1; progress <= required; progress++ {
		r.HarvestTick(pos, progress, required)
	}

	r.PruneDepleted()
	if _, ok := r.NodeAt(pos); !ok {
		t.Fatal("expected depleted node to stay registered while its loose pile remains")
	}

	r.RemovePickup(pos, node.Max)
	r.PruneDepleted()
	if _, ok := r.NodeAt(pos); ok {
		t.Error("expected depleted, non-replenishable node to be pruned once its pile is hauled")
	}
}
