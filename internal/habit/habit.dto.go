package habit

type CreateHabitRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=100"`
	TargetDays   int     `json:"targetDays" validate:"required,gt=0"`
	Color        string  `json:"color" validate:"omitempty,max=30"`
	CollectionID *string `json:"collectionId,omitempty" validate:"omitempty,uuid"`
}

// UpdateHabitRequest carries a partial update: nil fields keep their prior
// values. ClearCollection distinguishes "move to unassigned" from "leave the
// collection untouched", which a nil pointer alone cannot express.
type UpdateHabitRequest struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	TargetDays      *int    `json:"targetDays,omitempty" validate:"omitempty,gt=0"`
	Color           *string `json:"color,omitempty" validate:"omitempty,max=30"`
	CollectionID    *string `json:"collectionId,omitempty" validate:"omitempty,uuid"`
	ClearCollection bool    `json:"clearCollection,omitempty"`
}

type CreateCollectionRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}
