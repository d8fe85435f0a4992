package entity

type DayPrices map[ResourceID]int

type DayDemand map[ProductID]int

// DaySchedule is the generated market condition for one day.
type DaySchedule struct {
	Day    int       `json:"day"`
	Prices DayPrices `json:"prices"`
	Demand DayDemand `json:"demand"`
}

// EconomySchedule is the full per-day price/demand table for a run.
// Generated once from the seed at run start, read-only afterwards.
type EconomySchedule struct {
	Seed string        `json:"seed"`
	Days []DaySchedule `json:"days"`
}

// Day returns the schedule for a 1-based day number.
func (s EconomySchedule) Day(day int) (DaySchedule, bool) {
	if day < 1 || day > len(s.Days) {
		return DaySchedule{}, false
	}
	return s.Days[day-1], true
}

func (s EconomySchedule) TotalDays() int {
	return len(s.Days)
}
