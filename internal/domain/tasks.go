package domain

import "time"

// Period is the cadence bucket of a task or goal.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// Valid reports whether p is a known period class.
func (p Period) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	}
	return false
}

// WindowStart returns the UTC start of the period window containing t:
// midnight for daily tasks, Monday midnight for weekly, the first of the
// month for monthly. Completion uniqueness is keyed on this value.
func (p Period) WindowStart(t time.Time) time.Time {
	t = t.UTC()
	switch p {
	case PeriodWeekly:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		weekday := int(day.Weekday())
		if weekday == 0 { // Sunday belongs to the week that started the previous Monday
			weekday = 7
		}
		return day.AddDate(0, 0, -(weekday - 1))
	case PeriodMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}

// TaskDefinition is one entry of the static task catalog. Point values are
// not stored here: they are fixed per period class and configured at startup.
type TaskDefinition struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Period Period `json:"period"`
}

// TaskCatalog is the fixed set of health tasks users can complete.
var TaskCatalog = []TaskDefinition{
	{ID: "water", Title: "Drink 8 glasses of water", Period: PeriodDaily},
	{ID: "steps", Title: "Walk 10,000 steps", Period: PeriodDaily},
	{ID: "produce", Title: "Eat 5 servings of fruits/veggies", Period: PeriodDaily},
	{ID: "sleep", Title: "Sleep 7-9 hours", Period: PeriodDaily},
	{ID: "workouts", Title: "Complete 3 workout sessions", Period: PeriodWeekly},
	{ID: "home-meals", Title: "Cook 5 healthy meals at home", Period: PeriodWeekly},
	{ID: "weigh-in", Title: "Log your monthly check-in", Period: PeriodMonthly},
}

// FindTask looks up a task definition by id.
func FindTask(id string) (TaskDefinition, bool) {
	for _, t := range TaskCatalog {
		if t.ID == id {
			return t, true
		}
	}
	return TaskDefinition{}, false
}
