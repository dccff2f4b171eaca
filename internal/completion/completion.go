package completion

import "time"

// Completion is a presence/absence fact: the habit was done on that date.
// There is no update operation on it.
type Completion struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	HabitID   string    `json:"habitId"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

type ToggleRequest struct {
	HabitID string `json:"habitId" validate:"required,uuid"`
	Date    string `json:"date" validate:"required"`
}

type ToggleResponse struct {
	HabitID   string `json:"habitId"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}
