package colony

// RelocationPlanner scans stockpile tiles whose stored resource no longer
// matches their zone's filter, and emits a JobRelocate to move the stock
// to a tile that still accepts it (spec §4.6). Grounded on the same
// "scan unmet requirements, batch, emit jobs" shape as the Supply Planner.
type RelocationPlanner struct{}

func NewRelocationPlanner() *RelocationPlanner { return &RelocationPlanner{} }

func (p *RelocationPlanner) Tick(c *Colony, tick int) {
	for _, pos := range c.Zones.TilesNeedingRelocation() {
		if c.Jobs.HasJobAt(pos, JobRelocate) {
			continue
		}
		rtype, amount, ok := c.Zones.StorageAt(pos)
		if !ok || amount <= 0 {
			continue
		}
		dest, found := c.Zones.FindTileForResource(rtype, pos, true)
		if !found {
			continue
		}
		job := &Job{
			Type:         JobRelocate,
			Category:     CategoryHaul,
			Position:     pos,
			ResourceType: rtype,
			Dest:         &dest,
		}
		c.Jobs.AddJob(job, tick)
	}
	// Drain tiles marked for removal: once their storage empties, finalize
	// with CompleteTileRemoval; until then make sure draining has
	// somewhere to go.
	for _, pos := range c.Zones.PendingRemovalPositions() {
		rtype, amount, ok := c.Zones.StorageAt(pos)
		if !ok || amount <= 0 {
			c.Zones.CompleteTileRemoval(pos)
			continue
		}
		if c.Jobs.HasJobAt(pos, JobRelocate) {
			continue
		}
		dest, found := c.Zones.FindTileForResource(rtype, pos, true)
		if !found {
			continue
		}
		job := &Job{
			Type:         JobRelocate,
			Category:     CategoryHaul,
			Position:     pos,
			ResourceType: rtype,
			Dest:         &dest,
		}
		c.Jobs.AddJob(job, tick)
	}
}
