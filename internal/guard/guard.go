// Package guard holds the authorization vocabulary shared by tour
// management and the booking lifecycle: resolve the acting identity,
// check its role, then check ownership of the touched resource.
// Existence failures always surface before ownership failures, so a
// caller probing a foreign resource that does not exist sees NotFound,
// never Forbidden.
package guard

import (
	"context"
	"errors"

	tourserrors "tourbook/internal/tours/errors"
	userserrors "tourbook/internal/users/errors"
	apperrors "tourbook/pkg/errors"
	"tourbook/pkg/model"
)

type UserFinder interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

type TourFinder interface {
	FindByID(ctx context.Context, id string) (*model.Tour, error)
}

type Guard struct {
	users UserFinder
	tours TourFinder
}

func New(users UserFinder, tours TourFinder) *Guard {
	return &Guard{
		users: users,
		tours: tours,
	}
}

// ResolveOperator fetches a user and requires the OPERATOR role.
func (g *Guard) ResolveOperator(ctx context.Context, operatorID string) (*model.User, error) {
	operator, err := g.resolveUser(ctx, operatorID, "Operator not found")
	if err != nil {
		return nil, err
	}

	if operator.Role != model.RoleOperator {
		return nil, apperrors.Forbidden("User does not have operator permissions")
	}

	return operator, nil
}

// ResolveCustomer fetches a user and requires the CUSTOMER role.
func (g *Guard) ResolveCustomer(ctx context.Context, customerID string) (*model.User, error) {
	customer, err := g.resolveUser(ctx, customerID, "User not found")
	if err != nil {
		return nil, err
	}

	if customer.Role != model.RoleCustomer {
		return nil, apperrors.Forbidden("Only customers can create bookings")
	}

	return customer, nil
}

func (g *Guard) ResolveTour(ctx context.Context, tourID string) (*model.Tour, error) {
	tour, err := g.tours.FindByID(ctx, tourID)
	if err != nil {
		if errors.Is(err, tourserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Tour not found")
		}
		if errors.Is(err, tourserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid tour ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve tour", err)
	}

	return tour, nil
}

// AssertTourOwnership fails unless the tour is owned by the given
// operator. Callers resolve existence first.
func (g *Guard) AssertTourOwnership(tour *model.Tour, operatorID string) error {
	if tour.OperatorID != operatorID {
		return apperrors.Forbidden("Operators can only modify their own tours")
	}
	return nil
}

// AssertBookingOwnership fails unless the booking belongs to a tour
// owned by the given operator.
func (g *Guard) AssertBookingOwnership(booking *model.Booking, operatorID string) error {
	if booking.TourOperatorID != operatorID {
		return apperrors.Forbidden("Cannot modify bookings for other operators")
	}
	return nil
}

func (g *Guard) resolveUser(ctx context.Context, userID string, notFoundMsg string) (*model.User, error) {
	user, err := g.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFound(notFoundMsg)
		}
		if errors.Is(err, userserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid user ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}

	return user, nil
}
