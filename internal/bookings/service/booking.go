package service

import (
	"context"
	"errors"

	bookingserrors "tourbook/internal/bookings/errors"
	"tourbook/internal/bookings/events"
	"tourbook/internal/bookings/repository"
	"tourbook/internal/bookings/validator"
	"tourbook/internal/guard"
	"tourbook/pkg/config"
	apperrors "tourbook/pkg/errors"
	"tourbook/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest, customerID string) (*model.Booking, error)
	ListForOperator(ctx context.Context, operatorID string) ([]*model.Booking, error)
	UpdateStatus(ctx context.Context, bookingID string, status string, operatorID string) (*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	guard     *guard.Guard
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	authGuard *guard.Guard,
	bookingValidator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		guard:     authGuard,
		validator: bookingValidator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create reserves spots on a tour for the calling customer. The role
// gate runs before any tour or booking persistence is touched, so a
// non-customer caller fails Forbidden no matter what tour id they
// supply. A requested status is honored as long as it is one of the
// three legal values; an absent status defaults to PENDING.
func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest, customerID string) (*model.Booking, error) {
	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, apperrors.Validation("Invalid booking input", map[string]any{"error": err.Error()})
	}

	customer, err := s.guard.ResolveCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	tour, err := s.guard.ResolveTour(ctx, req.TourID)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.StatusPending
	}

	booking := &model.Booking{
		TourID:         tour.ID,
		TourOperatorID: tour.OperatorID,
		CustomerID:     customer.ID,
		Status:         status,
		NumberOfPeople: req.NumberOfPeople,
		TotalPrice:     req.TotalPrice,
		BookingDate:    req.BookingDate,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	if err := s.publisher.BookingCreated(ctx, booking); err != nil {
		// the write already succeeded; event delivery is best effort
		s.cfg.Log.Error("Failed to publish booking.created event", "booking_id", booking.ID, "error", err)
	}

	s.cfg.Log.Info("Booking created",
		"id", booking.ID,
		"tour_id", booking.TourID,
		"customer_id", booking.CustomerID,
		"status", booking.Status,
	)
	return booking, nil
}

// ListForOperator returns every booking on the operator's own tours.
// Order is repository-determined.
func (s *bookingService) ListForOperator(ctx context.Context, operatorID string) ([]*model.Booking, error) {
	operator, err := s.guard.ResolveOperator(ctx, operatorID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.FindByTourOperatorID(ctx, operator.ID)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings for operator", "operator_id", operator.ID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	return bookings, nil
}

// UpdateStatus moves a booking to the given status. Any of the three
// statuses may follow any other; re-applying the current status is
// legal and succeeds. The booking existence check runs before the
// ownership check, so probing a nonexistent id yields NotFound, not
// Forbidden.
func (s *bookingService) UpdateStatus(ctx context.Context, bookingID string, status string, operatorID string) (*model.Booking, error) {
	if status == "" {
		return nil, apperrors.BadRequest("Status must be provided")
	}
	if err := s.validator.ValidateStatus(status); err != nil {
		return nil, apperrors.BadRequest("Invalid booking status")
	}

	operator, err := s.guard.ResolveOperator(ctx, operatorID)
	if err != nil {
		return nil, err
	}

	// The read and the write share a transaction so the previous status
	// reported in the change event matches what the write replaced.
	var booking *model.Booking
	var previous string
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		found, err := s.repo.FindByID(sessCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFound("Booking not found")
			}
			if errors.Is(err, bookingserrors.ErrInvalidID) {
				return apperrors.InvalidInput("Invalid booking ID format")
			}
			return apperrors.Internal("Failed to retrieve booking", err)
		}

		if err := s.guard.AssertBookingOwnership(found, operator.ID); err != nil {
			return err
		}

		if _, err := s.repo.UpdateStatus(sessCtx, bookingID, status); err != nil {
			return apperrors.Internal("Failed to update booking status", err)
		}

		previous = found.Status
		found.Status = status
		booking = found
		return nil
	})
	if err != nil {
		s.cfg.Log.Warn("Booking status update rejected", "id", bookingID, "error", err)
		return nil, err
	}

	if err := s.publisher.BookingStatusChanged(ctx, booking, previous); err != nil {
		s.cfg.Log.Error("Failed to publish booking.status_changed event", "booking_id", booking.ID, "error", err)
	}

	s.cfg.Log.Info("Booking status updated",
		"id", booking.ID,
		"previous_status", previous,
		"status", booking.Status,
		"operator_id", operator.ID,
	)
	return booking, nil
}
