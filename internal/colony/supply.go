package colony

import "sort"

// SupplyPlanner scans construction sites with unmet material requirements
// and batches them against stockpile tiles: one JobSupply per pickup
// source, fanning its delivery queue out across however many needy sites
// that source's stock can cover before MAX_CARRY_AMOUNT runs out (spec
// §4.5). Grounded on the pack's "scan unmet requirements, batch, emit
// jobs" construction-pipeline/production-manager shape.
type SupplyPlanner struct{}

func NewSupplyPlanner() *SupplyPlanner { return &SupplyPlanner{} }

// Tick runs one planning pass. maxCarry bounds how much a single supply
// job moves in total, matching the colonist's carry cap.
func (p *SupplyPlanner) Tick(c *Colony, tick int, maxCarry int) {
	p.planSupply(c, tick, maxCarry)

	for _, site := range c.Buildings.AllSitesReadyToBuild() {
		if c.Jobs.HasJobAt(site.Position, JobConstruction) {
			continue
		}
		def, _ := c.BuildingDefs.Get(site.BuildingType)
		job := &Job{
			Type:     JobConstruction,
			Category: CategoryBuild,
			Position: site.Position,
			Required: ConstructionWorkTicks,
			Subtype:  def.Category,
		}
		c.Jobs.AddJob(job, tick)
	}

	p.planHauling(c, tick, maxCarry)
	p.planCooking(c, tick)
}

// cookingFoodThreshold is the stored-food level below which an urgent
// cooking job is raised at any idle stove, independent of that stove's
// own order queue (spec §4.4's cooking pressure curve needs a job source
// that reacts to food running low, not just standing orders).
const cookingFoodThreshold = 10

func (p *SupplyPlanner) planCooking(c *Colony, tick int) {
	if c.Zones.TotalStored("food") >= cookingFoodThreshold {
		return
	}
	for _, ws := range c.Workstations.All() {
		if ws.Kind != "stove" {
			continue
		}
		if c.Jobs.HasJobAt(ws.Position, JobCooking) {
			continue
		}
		job := &Job{Type: JobCooking, Category: CategoryCook, Position: ws.Position}
		c.Jobs.AddJob(job, tick)
		return
	}
}

// planHauling turns loose items dropped by gathering/salvage (marked
// HaulRequested) into JobHaul jobs that move them into a stockpile tile.
func (p *SupplyPlanner) planHauling(c *Colony, tick int, maxCarry int) {
	for _, item := range c.Resources.AllLoose() {
		if !item.HaulRequested {
			continue
		}
		if c.Jobs.HasJobAt(item.Position, JobHaul) {
			continue
		}
		dest, found := c.Zones.FindTileForResource(item.Type, item.Position, true)
		if !found {
			continue
		}
		job := &Job{
			Type:         JobHaul,
			Category:     CategoryHaul,
			Position:     item.Position,
			ResourceType: item.Type,
			Dest:         &dest,
		}
		c.Jobs.AddJob(job, tick)
	}
}

// siteNeed is one construction site's outstanding requirement for a
// resource type, net of whatever an in-flight JobSupply job has already
// promised to deliver there.
type siteNeed struct {
	pos    Position
	amount int
}

// planSupply groups every construction site's unmet requirement by
// resource type, subtracts what existing supply jobs have already
// committed to deliver, and hands each group to batchFromSources.
func (p *SupplyPlanner) planSupply(c *Colony, tick int, maxCarry int) {
	committed := p.committedDeliveries(c)
	subtypeByPos := make(map[Position]BuildingCategory)

	byType := make(map[ResourceType][]siteNeed)
	for _, site := range c.Buildings.AllSitesNeedingMaterial() {
		def, _ := c.BuildingDefs.Get(site.BuildingType)
		subtypeByPos[site.Position] = def.Category
		for rtype, missing := range site.Missing() {
			net := missing - committed[site.Position][rtype]
			if net <= 0 {
				continue
			}
			byType[rtype] = append(byType[rtype], siteNeed{pos: site.Position, amount: net})
		}
	}

	for rtype, needs := range byType {
		p.batchFromSources(c, tick, rtype, needs, maxCarry, subtypeByPos)
	}
}

// committedDeliveries sums the delivery-queue legs already promised to
// each site by an in-flight JobSupply job, so this pass doesn't commit
// the same shortfall to a second source on top of the first.
func (p *SupplyPlanner) committedDeliveries(c *Colony) map[Position]map[ResourceType]int {
	out := make(map[Position]map[ResourceType]int)
	for _, j := range c.Jobs.AllJobs() {
		if j.Type != JobSupply {
			continue
		}
		for _, leg := range j.DeliveryQueue {
			if out[leg.Pos] == nil {
				out[leg.Pos] = make(map[ResourceType]int)
			}
			out[leg.Pos][j.ResourceType] += leg.Amount
		}
	}
	return out
}

// batchFromSources walks stocked source tiles for rtype and fans each
// one's pickup across the nearest needy sites until either the source or
// MAX_CARRY_AMOUNT runs out, emitting one JobSupply per source (spec
// §4.5's pickup=(source), delivery_queue=[(site, amount), ...] shape; a
// source tile can only carry one JobSupply job at a time per the job
// queue's (position, type) uniqueness rule, so a source whose committable
// need exceeds maxCarry naturally spills into a later tick's job once the
// first completes).
func (p *SupplyPlanner) batchFromSources(c *Colony, tick int, rtype ResourceType, needs []siteNeed, maxCarry int, subtypeByPos map[Position]BuildingCategory) {
	var sources []Position
	for _, pos := range c.Zones.PositionsWithResource(rtype) {
		if c.Jobs.HasJobAt(pos, JobSupply) {
			continue
		}
		_, amount, ok := c.Zones.StorageAt(pos)
		if !ok || amount <= 0 {
			continue
		}
		sources = append(sources, pos)
	}

	remaining := needs
	for _, src := range sources {
		if len(remaining) == 0 {
			return
		}
		_, available, _ := c.Zones.StorageAt(src)

		sort.Slice(remaining, func(i, j int) bool {
			return remaining[i].pos.Manhattan(src) < remaining[j].pos.Manhattan(src)
		})

		var legs []DeliveryItem
		var next []siteNeed
		budget := maxCarry
		for _, need := range remaining {
			take := need.amount
			if take > available {
				take = available
			}
			if take > budget {
				take = budget
			}
			if take <= 0 {
				next = append(next, need)
				continue
			}
			legs = append(legs, DeliveryItem{Pos: need.pos, Amount: take})
			available -= take
			budget -= take
			if take < need.amount {
				next = append(next, siteNeed{pos: need.pos, amount: need.amount - take})
			}
		}
		remaining = next

		if len(legs) == 0 {
			continue
		}
		job := &Job{
			Type:          JobSupply,
			Category:      CategoryHaul,
			Position:      src,
			ResourceType:  rtype,
			DeliveryQueue: legs,
			Subtype:       subtypeByPos[legs[0].Pos],
		}
		c.Jobs.AddJob(job, tick)
	}
}
