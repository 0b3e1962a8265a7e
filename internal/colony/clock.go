package colony

// Clock converts the engine's raw tick counter into hour-of-day and
// day-of-simulation values, grounded on the dropped time_system.py's
// hour/day conversion constants (spec §6 TICKS_PER_HOUR/TICKS_PER_DAY).
type Clock struct {
	TicksPerHour int
	TicksPerDay  int
}

func NewClock(ticksPerHour, ticksPerDay int) *Clock {
	if ticksPerHour <= 0 {
		ticksPerHour = 60
	}
	if ticksPerDay <= 0 {
		ticksPerDay = ticksPerHour * 24
	}
	return &Clock{TicksPerHour: ticksPerHour, TicksPerDay: ticksPerDay}
}

func (c *Clock) HourOfDay(tick int) int {
	ticksIntoDay := tick % c.TicksPerDay
	return (ticksIntoDay / c.TicksPerHour) % 24
}

func (c *Clock) Day(tick int) int {
	return tick / c.TicksPerDay
}
