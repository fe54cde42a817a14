package model

import "time"

const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
)

// Booking references a tour and the customer who reserved it.
// TourOperatorID is denormalized from the resolved tour at creation
// time; tour ownership never changes, so the copy cannot go stale. It
// lets the operator listing filter on a single indexed field.
//
// Status is the only field the update path may change, and only the
// operator owning the booking's tour may change it.
type Booking struct {
	ID             string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	TourID         string    `json:"tour_id" bson:"tour_id" validate:"required,mongodb"`
	TourOperatorID string    `json:"tour_operator_id" bson:"tour_operator_id" validate:"required,mongodb"`
	CustomerID     string    `json:"customer_id" bson:"customer_id" validate:"required,mongodb"`
	Status         string    `json:"status" bson:"status" validate:"required,oneof=PENDING CONFIRMED CANCELLED"`
	NumberOfPeople int       `json:"number_of_people" bson:"number_of_people" validate:"required,min=1"`
	TotalPrice     float64   `json:"total_price" bson:"total_price" validate:"gte=0"`
	BookingDate    time.Time `json:"booking_date" bson:"booking_date" validate:"required"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// BookingRequest is the customer-facing creation payload. Status is
// optional; an empty value defaults to PENDING. A caller-supplied status
// is accepted as long as it is one of the three legal values.
type BookingRequest struct {
	TourID         string    `json:"tour_id" validate:"required,mongodb"`
	NumberOfPeople int       `json:"number_of_people" validate:"required,min=1"`
	TotalPrice     float64   `json:"total_price" validate:"gte=0"`
	BookingDate    time.Time `json:"booking_date" validate:"required"`
	Status         string    `json:"status,omitempty" validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED"`
}

type BookingStatusUpdateRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED"`
}
