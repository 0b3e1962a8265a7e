package colony

// PressureRule is one (threshold, pressure) step in a dynamic pressure
// table. Rules are evaluated in order; the first whose threshold the input
// value satisfies wins. This keeps the cooking/combat pressure curves data
// rather than hard-coded branches, grounded on the dropped job_pressure.py.
type PressureRule struct {
	// MaxInput is the upper bound (inclusive) of the input value this rule
	// applies to; the last rule in a table should have no effective upper
	// bound (use a very large number) to act as the default.
	MaxInput int
	Pressure int
}

func evalPressureTable(rules []PressureRule, input int) int {
	for _, rule := range rules {
		if input <= rule.MaxInput {
			return rule.Pressure
		}
	}
	if len(rules) > 0 {
		return rules[len(rules)-1].Pressure
	}
	return 0
}

// DynamicPressureTable holds the stepwise pressure curves for job
// categories whose urgency depends on live colony state rather than a
// fixed per-type base value (spec §4.4).
type DynamicPressureTable struct {
	// CookingByFoodStock maps "total stored food" to cooking job pressure:
	// less food in the stockpile means cooking becomes more urgent.
	CookingByFoodStock []PressureRule
	// CombatByHostileDistance maps distance-to-nearest-hostile to combat
	// job pressure: a closer hostile means more urgency.
	CombatByHostileDistance []PressureRule
}

func DefaultDynamicPressureTable() *DynamicPressureTable {
	return &DynamicPressureTable{
		CookingByFoodStock: []PressureRule{
			{MaxInput: 0, Pressure: 10},
			{MaxInput: 5, Pressure: 8},
			{MaxInput: 15, Pressure: 5},
			{MaxInput: 1 << 30, Pressure: 2},
		},
		CombatByHostileDistance: []PressureRule{
			{MaxInput: 2, Pressure: 10},
			{MaxInput: 5, Pressure: 8},
			{MaxInput: 10, Pressure: 5},
			{MaxInput: 1 << 30, Pressure: 3},
		},
	}
}

func (t *DynamicPressureTable) CookingPressure(totalStoredFood int) int {
	return evalPressureTable(t.CookingByFoodStock, totalStoredFood)
}

func (t *DynamicPressureTable) CombatPressure(hostileDistance int) int {
	return evalPressureTable(t.CombatByHostileDistance, hostileDistance)
}

// staticPressure holds the fixed base pressure for job types whose urgency
// doesn't depend on live colony state.
var staticPressure = map[JobType]int{
	JobConstruction:     4,
	JobSupply:           5,
	JobCraftingFetch:    4,
	JobCraftingWork:     4,
	JobGathering:        3,
	JobHaul:             3,
	JobRelocate:         2,
	JobSalvage:          3,
	JobInstallFurniture: 4,
	JobPlaceFurniture:   4,
	JobRecreation:       1,
	JobTraining:         1,
}
