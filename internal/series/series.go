package series

import (
	"habitLoopAPI/internal/completion"
	"habitLoopAPI/internal/habit"
	"habitLoopAPI/internal/metric"
)

// HabitPoint is one day of the completion series: the share of the active
// habit set completed on that date, 0..100. Dates with zero completions are
// absent from the series; densifying is the consumer's job.
type HabitPoint struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

// ScreenTimePoint reshapes a daily metric for charting.
type ScreenTimePoint struct {
	Date    string  `json:"date"`
	Minutes int     `json:"minutes"`
	Hours   float64 `json:"hours"`
}

// HabitSummary is the per-habit completion count over the requested range,
// shown next to the habit's target ("Goal: 7 days, Completed: 4").
type HabitSummary struct {
	HabitID    string `json:"habitId"`
	Name       string `json:"name"`
	TargetDays int    `json:"targetDays"`
	Completed  int    `json:"completed"`
}

type Summary struct {
	Habits     []HabitSummary `json:"habits"`
	ActiveDays int            `json:"activeDays"`
}

// Snapshot is the full reconcile/export payload: everything the client needs
// to replace its optimistic state after a failed mutation.
type Snapshot struct {
	Habits      []*habit.Habit           `json:"habits"`
	Collections []*habit.Collection      `json:"collections"`
	Completions []*completion.Completion `json:"completions"`
	Metrics     []*metric.DailyMetric    `json:"metrics"`
}
