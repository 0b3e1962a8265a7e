package colony

// CraftingPump drives each workstation's per-tick pipeline state machine
// (spec §4.7: IDLE -> FETCHING -> HAS_INPUTS -> WORKING -> emit output),
// emitting crafting-fetch and crafting-work jobs as needed. Grounded on the
// teacher's crafting.go registry-of-static-definitions shape, generalized
// from "can this recipe be crafted right now" into a standing per-station
// pump.
type CraftingPump struct{}

func NewCraftingPump() *CraftingPump { return &CraftingPump{} }

func (p *CraftingPump) Tick(c *Colony, tick int) {
	for _, ws := range c.Workstations.All() {
		order := c.Workstations.CurrentOrder(ws)
		if order == nil {
			ws.mu.Lock()
			ws.State = WSIdle
			ws.SelectedRecipeID = ""
			ws.mu.Unlock()
			continue
		}
		recipe, ok := c.Recipes.Get(order.RecipeID)
		if !ok {
			continue
		}
		ws.mu.Lock()
		ws.SelectedRecipeID = recipe.ID
		state := ws.State
		ws.mu.Unlock()

		if (state == WSIdle || state == WSFetching) && c.Workstations.HasAllInputs(ws, recipe) {
			state = WSHasInputs
		}

		switch state {
		case WSIdle:
			if c.Workstations.HasAllInputs(ws, recipe) {
				ws.mu.Lock()
				ws.State = WSHasInputs
				ws.mu.Unlock()
			} else {
				p.ensureFetchJob(c, ws, recipe, tick)
				ws.mu.Lock()
				ws.State = WSFetching
				ws.mu.Unlock()
			}
		case WSFetching:
			if c.Workstations.HasAllInputs(ws, recipe) {
				ws.mu.Lock()
				ws.State = WSHasInputs
				ws.mu.Unlock()
			} else {
				p.ensureFetchJob(c, ws, recipe, tick)
			}
		case WSHasInputs:
			if !c.Jobs.HasJobAt(ws.Position, JobCraftingWork) {
				job := &Job{Type: JobCraftingWork, Category: CategoryCraft, Position: ws.Position, Required: recipe.WorkTicks}
				c.Jobs.AddJob(job, tick)
			}
			ws.mu.Lock()
			ws.State = WSWorking
			ws.mu.Unlock()
		case WSWorking:
			// crafting-work job progresses the station; completion is
			// handled by the jobwork handler, which advances the order
			// and resets state back to idle once it emits output.
		}
	}
}

func (p *CraftingPump) ensureFetchJob(c *Colony, ws *Workstation, recipe *Recipe, tick int) {
	if c.Jobs.HasJobAt(ws.Position, JobCraftingFetch) {
		return
	}
	missing := c.Workstations.MissingInputs(ws, recipe)
	if len(missing) == 0 {
		return
	}
	for rtype, amount := range missing {
		job := &Job{
			Type:         JobCraftingFetch,
			Category:     CategoryCraft,
			Position:     ws.Position,
			ResourceType: rtype,
			Required:     amount,
		}
		c.Jobs.AddJob(job, tick)
		return // one fetch job at a time per station; next missing input
		// gets its own job once this one clears and the pump re-scans.
	}
}
