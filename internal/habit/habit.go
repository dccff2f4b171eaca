package habit

import "time"

// Habit is a recurring activity tracked for completion per calendar day.
// CollectionName is populated on list reads for display, never stored.
type Habit struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Name           string    `json:"name"`
	TargetDays     int       `json:"targetDays"`
	Color          string    `json:"color"`
	CollectionID   *string   `json:"collectionId"`
	CollectionName *string   `json:"collectionName,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type Collection struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
