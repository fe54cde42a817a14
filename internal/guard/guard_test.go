package guard

import (
	"context"
	"testing"

	tourserrors "tourbook/internal/tours/errors"
	userserrors "tourbook/internal/users/errors"
	apperrors "tourbook/pkg/errors"
	"tourbook/pkg/model"
)

const (
	operatorID = "64b0c8f2a1d3e4f5a6b7c801"
	customerID = "64b0c8f2a1d3e4f5a6b7c802"
	tourID     = "64b0c8f2a1d3e4f5a6b7c803"
)

type stubUserFinder struct {
	users map[string]*model.User
	err   error
}

func (s *stubUserFinder) FindByID(ctx context.Context, id string) (*model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, userserrors.ErrNotFound
}

type stubTourFinder struct {
	tours map[string]*model.Tour
	err   error
}

func (s *stubTourFinder) FindByID(ctx context.Context, id string) (*model.Tour, error) {
	if s.err != nil {
		return nil, s.err
	}
	if tr, ok := s.tours[id]; ok {
		return tr, nil
	}
	return nil, tourserrors.ErrNotFound
}

func newTestGuard() *Guard {
	users := &stubUserFinder{users: map[string]*model.User{
		operatorID: {ID: operatorID, Name: "Olive", Role: model.RoleOperator},
		customerID: {ID: customerID, Name: "Casey", Role: model.RoleCustomer},
	}}
	tours := &stubTourFinder{tours: map[string]*model.Tour{
		tourID: {ID: tourID, OperatorID: operatorID},
	}}
	return New(users, tours)
}

func assertCode(t *testing.T, err error, code string, message string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != code {
		t.Errorf("expected code %s, got %s (%v)", code, appErr.Code, err)
	}
	if message != "" && appErr.Message != message {
		t.Errorf("expected message %q, got %q", message, appErr.Message)
	}
}

func TestResolveOperator(t *testing.T) {
	g := newTestGuard()
	ctx := context.Background()

	tests := []struct {
		name    string
		id      string
		code    string
		message string
	}{
		{"operator passes", operatorID, "", ""},
		{"customer is forbidden", customerID, apperrors.CodeForbidden, "User does not have operator permissions"},
		{"unknown id is not found", "64b0c8f2a1d3e4f5a6b7c8ff", apperrors.CodeNotFound, "Operator not found"},
		{"malformed id resolves like unknown", "not-a-hex-id", apperrors.CodeNotFound, "Operator not found"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			user, err := g.ResolveOperator(ctx, tc.id)
			if tc.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if user.ID != tc.id {
					t.Errorf("expected user %s, got %s", tc.id, user.ID)
				}
				return
			}
			assertCode(t, err, tc.code, tc.message)
		})
	}
}

func TestResolveCustomer(t *testing.T) {
	g := newTestGuard()
	ctx := context.Background()

	if _, err := g.ResolveCustomer(ctx, customerID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := g.ResolveCustomer(ctx, operatorID)
	assertCode(t, err, apperrors.CodeForbidden, "Only customers can create bookings")

	_, err = g.ResolveCustomer(ctx, "64b0c8f2a1d3e4f5a6b7c8ff")
	assertCode(t, err, apperrors.CodeNotFound, "User not found")
}

func TestResolveTour(t *testing.T) {
	g := newTestGuard()
	ctx := context.Background()

	tour, err := g.ResolveTour(ctx, tourID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tour.OperatorID != operatorID {
		t.Errorf("expected owner %s, got %s", operatorID, tour.OperatorID)
	}

	_, err = g.ResolveTour(ctx, "64b0c8f2a1d3e4f5a6b7c8ff")
	assertCode(t, err, apperrors.CodeNotFound, "Tour not found")
}

func TestResolveTour_InvalidID(t *testing.T) {
	users := &stubUserFinder{}
	tours := &stubTourFinder{err: tourserrors.ErrInvalidID}
	g := New(users, tours)

	_, err := g.ResolveTour(context.Background(), "zzz")
	assertCode(t, err, apperrors.CodeInvalidInput, "Invalid tour ID format")
}

func TestAssertTourOwnership(t *testing.T) {
	g := newTestGuard()
	tour := &model.Tour{ID: tourID, OperatorID: operatorID}

	if err := g.AssertTourOwnership(tour, operatorID); err != nil {
		t.Fatalf("owner rejected: %v", err)
	}

	err := g.AssertTourOwnership(tour, customerID)
	assertCode(t, err, apperrors.CodeForbidden, "Operators can only modify their own tours")
}

func TestAssertBookingOwnership(t *testing.T) {
	g := newTestGuard()
	booking := &model.Booking{ID: "64b0c8f2a1d3e4f5a6b7c8aa", TourOperatorID: operatorID}

	if err := g.AssertBookingOwnership(booking, operatorID); err != nil {
		t.Fatalf("owner rejected: %v", err)
	}

	err := g.AssertBookingOwnership(booking, customerID)
	assertCode(t, err, apperrors.CodeForbidden, "Cannot modify bookings for other operators")
}
