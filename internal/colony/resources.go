package colony

import (
	"sync"

	"github.com/google/uuid"
)

// ResourceType is an open-ended string tag for a kind of material
// (wood, mineral, scrap, food, ...), defined by the node-kind table rather
// than a closed Go enum so new resources are data, not code.
type ResourceType string

type NodeState string

const (
	NodeIdle       NodeState = "idle"
	NodeInProgress NodeState = "in_progress"
	NodeDepleted   NodeState = "depleted"
)

// NodeKind is a static definition of a harvestable resource node, loaded
// from a YAML table the way the teacher loads recipes from JSON.
type NodeKind struct {
	Kind          string       `yaml:"kind"`
	ResourceType  ResourceType `yaml:"resource_type"`
	MaxAmount     int          `yaml:"max_amount"`
	Replenishable bool         `yaml:"replenishable"`
	RegrowTicks   int          `yaml:"regrow_ticks"`
}

type NodeKindTable struct {
	mu    sync.RWMutex
	kinds map[string]NodeKind
}

func NewNodeKindTable() *NodeKindTable {
	return &NodeKindTable{kinds: make(map[string]NodeKind)}
}

func (t *NodeKindTable) Register(k NodeKind) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.kinds[k.Kind] = k
}

func (t *NodeKindTable) Get(kind string) (NodeKind, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	k, ok := t.kinds[kind]
	return k, ok
}

// DefaultNodeKindTable gives the demo/test harness a handful of ground-level
// node kinds without requiring a YAML file on disk.
func DefaultNodeKindTable() *NodeKindTable {
	t := NewNodeKindTable()
	t.Register(NodeKind{Kind: "scrap_heap", ResourceType: "scrap", MaxAmount: 6, Replenishable: false})
	t.Register(NodeKind{Kind: "mineral_vein", ResourceType: "mineral", MaxAmount: 8, Replenishable: true, RegrowTicks: 600})
	t.Register(NodeKind{Kind: "synth_crop", ResourceType: "food", MaxAmount: 4, Replenishable: true, RegrowTicks: 300})
	t.Register(NodeKind{Kind: "wiring_cache", ResourceType: "wiring", MaxAmount: 5, Replenishable: false})
	t.Register(NodeKind{Kind: "salvage_object", ResourceType: "scrap", MaxAmount: 3, Replenishable: false})
	return t
}

// ResourceNode is a live instance of a NodeKind sitting at a tile.
type ResourceNode struct {
	mu            sync.Mutex
	ID            uuid.UUID
	Position      Position
	Kind          string
	ResourceType  ResourceType
	Remaining     int
	Max           int
	Replenishable bool
	RegrowTicks   int
	regrowTimer   int
	State         NodeState
}

func (n *ResourceNode) Snapshot() ResourceNodeSnapshot {
	n.mu.Lock()
	defer n.mu.Unlock()
	return ResourceNodeSnapshot{
		ID:           n.ID,
		Position:     n.Position,
		Kind:         n.Kind,
		ResourceType: n.ResourceType,
		Remaining:    n.Remaining,
		Max:          n.Max,
		State:        n.State,
	}
}

type ResourceNodeSnapshot struct {
	ID           uuid.UUID
	Position     Position
	Kind         string
	ResourceType ResourceType
	Remaining    int
	Max          int
	State        NodeState
}

// LooseItem is a ground-level pile of resource not in any stockpile slot:
// a construction delivery remainder, a harvested unit waiting to be hauled,
// or loot dropped by a destroyed object.
type LooseItem struct {
	Position      Position
	Type          ResourceType
	Amount        int
	HaulRequested bool
}

// ResourceRegistry owns every resource node and loose item on the grid,
// coordinate-indexed the way the teacher's WorldObjectManager indexes
// WorldObjects by position.
type ResourceRegistry struct {
	mu       sync.RWMutex
	nodeKind *NodeKindTable
	nodes    map[Position]*ResourceNode
	loose    map[Position]*LooseItem
}

func NewResourceRegistry(kinds *NodeKindTable) *ResourceRegistry {
	return &ResourceRegistry{
		nodeKind: kinds,
		nodes:    make(map[Position]*ResourceNode),
		loose:    make(map[Position]*LooseItem),
	}
}

func (r *ResourceRegistry) SpawnNode(pos Position, kind string) (*ResourceNode, bool) {
	def, ok := r.nodeKind.Get(kind)
	if !ok {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.nodes[pos]; exists {
		return nil, false
	}
	node := &ResourceNode{
		ID:            uuid.New(),
		Position:      pos,
		Kind:          kind,
		ResourceType:  def.ResourceType,
		Remaining:     def.MaxAmount,
		Max:           def.MaxAmount,
		Replenishable: def.Replenishable,
		RegrowTicks:   def.RegrowTicks,
		State:         NodeIdle,
	}
	r.nodes[pos] = node
	return node, true
}

func (r *ResourceRegistry) NodeAt(pos Position) (*ResourceNode, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.nodes[pos]
	return n, ok
}

// HarvestTick applies one tick of progress to the node at pos. One unit
// yields every required/max ticks of progress, per spec §4.2. Yielded units
// are dropped as a haul-requested loose pile at the node's own tile.
func (r *ResourceRegistry) HarvestTick(pos Position, jobProgress, jobRequired int) (yielded int, ok bool) {
	r.mu.Lock()
	node, exists := r.nodes[pos]
	if !exists || node.State == NodeDepleted {
		r.mu.Unlock()
		return 0, false
	}
	node.mu.Lock()
	node.State = NodeInProgress
	ticksPerUnit := 1
	if node.Max > 0 {
		ticksPerUnit = jobRequired / node.Max
		if ticksPerUnit < 1 {
			ticksPerUnit = 1
		}
	}
	take := 0
	if jobProgress%ticksPerUnit == 0 && node.Remaining > 0 {
		take = 1
		node.Remaining--
	}
	rtype := node.ResourceType
	if node.Remaining <= 0 {
		node.State = NodeDepleted
		if node.Replenishable && node.RegrowTicks > 0 {
			node.regrowTimer = node.RegrowTicks
		}
	}
	node.mu.Unlock()
	r.mu.Unlock()
	if take > 0 {
		r.DropLooseItem(pos, rtype, take, true)
	}
	return take, true
}

// TickRegrow advances regrow timers; a node that reaches zero resets to
// full and becomes harvestable again.
func (r *ResourceRegistry) TickRegrow() {
	r.mu.RLock()
	nodes := make([]*ResourceNode, 0, len(r.nodes))
	for _, n := range r.nodes {
		nodes = append(nodes, n)
	}
	r.mu.RUnlock()
	for _, n := range nodes {
		n.mu.Lock()
		if n.State == NodeDepleted && n.Replenishable && n.regrowTimer > 0 {
			n.regrowTimer--
			if n.regrowTimer <= 0 {
				n.Remaining = n.Max
				n.State = NodeIdle
			}
		}
		n.mu.Unlock()
	}
}

// PruneDepleted removes depleted, non-replenishable nodes once their last
// loose item has been hauled away, per spec §4.2.
func (r *ResourceRegistry) PruneDepleted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for pos, n := range r.nodes {
		n.mu.Lock()
		depleted := n.State == NodeDepleted && !n.Replenishable
		n.mu.Unlock()
		if depleted {
			if _, hasLoose := r.loose[pos]; !hasLoose {
				delete(r.nodes, pos)
			}
		}
	}
}

// ClearNodeForConstruction forcibly removes a node to make way for a
// construction site, dropping whatever remained as a haul-requested pile.
func (r *ResourceRegistry) ClearNodeForConstruction(pos Position) {
	r.mu.Lock()
	node, exists := r.nodes[pos]
	if !exists {
		r.mu.Unlock()
		return
	}
	node.mu.Lock()
	remaining := node.Remaining
	rtype := node.ResourceType
	node.mu.Unlock()
	delete(r.nodes, pos)
	r.mu.Unlock()
	if remaining > 0 {
		r.DropLooseItem(pos, rtype, remaining, true)
	}
}

func (r *ResourceRegistry) DropLooseItem(pos Position, rtype ResourceType, amount int, haulRequested bool) {
	if amount <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.loose[pos]; ok && existing.Type == rtype {
		existing.Amount += amount
		if haulRequested {
			existing.HaulRequested = true
		}
		return
	}
	r.loose[pos] = &LooseItem{Position: pos, Type: rtype, Amount: amount, HaulRequested: haulRequested}
}

func (r *ResourceRegistry) LooseAt(pos Position) (*LooseItem, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.loose[pos]
	return l, ok
}

// RemovePickup takes up to `amount` units from the loose pile at pos,
// removing the pile entirely once it empties, and returns what was
// actually taken.
func (r *ResourceRegistry) RemovePickup(pos Position, amount int) (ResourceType, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loose[pos]
	if !ok {
		return "", 0
	}
	take := amount
	if take > l.Amount {
		take = l.Amount
	}
	l.Amount -= take
	rtype := l.Type
	if l.Amount <= 0 {
		delete(r.loose, pos)
	}
	return rtype, take
}

func (r *ResourceRegistry) MarkForHaul(pos Position) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.loose[pos]; ok {
		l.HaulRequested = true
	}
}

func (r *ResourceRegistry) AllLoose() []*LooseItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*LooseItem, 0, len(r.loose))
	for _, l := range r.loose {
		out = append(out, l)
	}
	return out
}

func (r *ResourceRegistry) AllNodes() []*ResourceNode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*ResourceNode, 0, len(r.nodes))
	for _, n := range r.nodes {
		out = append(out, n)
	}
	return out
}
