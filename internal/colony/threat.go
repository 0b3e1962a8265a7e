package colony

// ThreatPlanner emits a JobCombat for every live hostile that doesn't
// already have one, the same "scan unmet, emit job" shape as the other
// planners. Hostiles don't move on their own in this simulation; a host
// updates their position via SetHostile as it sees fit.
type ThreatPlanner struct{}

func NewThreatPlanner() *ThreatPlanner { return &ThreatPlanner{} }

const CombatTicks = 5

func (p *ThreatPlanner) Tick(c *Colony, tick int) {
	c.mu.RLock()
	hostiles := make(map[Position]Job, len(c.Hostiles))
	for id, pos := range c.Hostiles {
		hostiles[pos] = Job{TargetID: id}
	}
	c.mu.RUnlock()

	for pos, h := range hostiles {
		if c.Jobs.HasJobAt(pos, JobCombat) {
			continue
		}
		job := &Job{
			Type:     JobCombat,
			Category: CategoryFight,
			Position: pos,
			Required: CombatTicks,
			TargetID: h.TargetID,
		}
		c.Jobs.AddJob(job, tick)
	}
}
