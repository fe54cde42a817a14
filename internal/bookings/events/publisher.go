package events

import (
	"context"
	"time"

	"tourbook/pkg/kafka"
	"tourbook/pkg/logger"
	"tourbook/pkg/model"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"

	schemaVersion = "1"
	source        = "tourbook-api"
)

// BookingEvent is the payload emitted for every booking lifecycle
// change. Consumers live outside this repository.
type BookingEvent struct {
	BookingID      string    `json:"booking_id"`
	TourID         string    `json:"tour_id"`
	TourOperatorID string    `json:"tour_operator_id"`
	CustomerID     string    `json:"customer_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	NumberOfPeople int       `json:"number_of_people"`
	TotalPrice     float64   `json:"total_price"`
	BookingDate    time.Time `json:"booking_date"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type Publisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking) error
	BookingStatusChanged(ctx context.Context, booking *model.Booking, previousStatus string) error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		log:      log,
	}
}

func (p *kafkaPublisher) BookingCreated(ctx context.Context, booking *model.Booking) error {
	return p.publish(ctx, EventBookingCreated, booking, "")
}

func (p *kafkaPublisher) BookingStatusChanged(ctx context.Context, booking *model.Booking, previousStatus string) error {
	return p.publish(ctx, EventBookingStatusChanged, booking, previousStatus)
}

func (p *kafkaPublisher) publish(ctx context.Context, eventType string, booking *model.Booking, previousStatus string) error {
	event := BookingEvent{
		BookingID:      booking.ID,
		TourID:         booking.TourID,
		TourOperatorID: booking.TourOperatorID,
		CustomerID:     booking.CustomerID,
		Status:         booking.Status,
		PreviousStatus: previousStatus,
		NumberOfPeople: booking.NumberOfPeople,
		TotalPrice:     booking.TotalPrice,
		BookingDate:    booking.BookingDate,
		OccurredAt:     time.Now().UTC(),
	}

	msg, err := kafka.NewMessage().
		WithKey(booking.ID).
		WithValue(event).
		WithEventType(eventType).
		WithSource(source).
		WithSchemaVersion(schemaVersion).
		Build()
	if err != nil {
		return err
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		return err
	}

	p.log.Debug("Booking event published",
		"event_type", eventType,
		"booking_id", booking.ID,
		"topic", p.producer.Topic(),
	)
	return nil
}

// NopPublisher is used when no broker is configured and in tests.
type NopPublisher struct{}

func (NopPublisher) BookingCreated(context.Context, *model.Booking) error {
	return nil
}

func (NopPublisher) BookingStatusChanged(context.Context, *model.Booking, string) error {
	return nil
}
