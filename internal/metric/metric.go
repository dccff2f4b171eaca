package metric

import "time"

type DailyMetric struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	Date              string    `json:"date"`
	ScreenTimeMinutes int       `json:"screenTimeMinutes"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type SetMetricRequest struct {
	Date    string `json:"date" validate:"required"`
	Minutes int    `json:"minutes" validate:"gte=0"`
}
