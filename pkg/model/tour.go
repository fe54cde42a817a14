package model

import "time"

// Tour belongs to exactly one operator. OperatorID is set when the tour
// is created and never changes afterwards; the update path does not
// touch it. OperatorName is denormalized for read responses.
type Tour struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	OperatorID    string    `json:"operator_id" bson:"operator_id" validate:"required,mongodb"`
	OperatorName  string    `json:"operator_name" bson:"operator_name" validate:"omitempty"`
	Title         string    `json:"title" bson:"title" validate:"required,min=2,max=150"`
	Description   string    `json:"description" bson:"description" validate:"omitempty,max=2000"`
	Price         float64   `json:"price" bson:"price" validate:"gte=0"`
	Location      string    `json:"location" bson:"location" validate:"required,min=2,max=150"`
	MaxCapacity   int       `json:"max_capacity" bson:"max_capacity" validate:"required,min=1"`
	DurationHours int       `json:"duration_hours" bson:"duration_hours" validate:"required,min=1"`
	AvailableFrom time.Time `json:"available_from" bson:"available_from" validate:"omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// TourRequest carries the operator-editable fields of a tour. Ownership
// is taken from the authenticated caller, never from the payload.
type TourRequest struct {
	Title         string    `json:"title" validate:"required,min=2,max=150"`
	Description   string    `json:"description" validate:"omitempty,max=2000"`
	Price         float64   `json:"price" validate:"gte=0"`
	Location      string    `json:"location" validate:"required,min=2,max=150"`
	MaxCapacity   int       `json:"max_capacity" validate:"required,min=1"`
	DurationHours int       `json:"duration_hours" validate:"required,min=1"`
	AvailableFrom time.Time `json:"available_from" validate:"omitempty"`
}
