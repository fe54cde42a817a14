package service

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"tourbook/internal/guard"
	tourserrors "tourbook/internal/tours/errors"
	"tourbook/internal/tours/validator"
	userserrors "tourbook/internal/users/errors"
	"tourbook/pkg/config"
	apperrors "tourbook/pkg/errors"
	"tourbook/pkg/logger"
	"tourbook/pkg/model"
)

const (
	operatorID      = "64b0c8f2a1d3e4f5a6b7c8a1"
	otherOperatorID = "64b0c8f2a1d3e4f5a6b7c8a2"
	customerID      = "64b0c8f2a1d3e4f5a6b7c8a3"
	tourID          = "64b0c8f2a1d3e4f5a6b7c8a4"
)

// Mock repository for testing
type mockTourRepository struct {
	createFunc           func(ctx context.Context, tour *model.Tour) error
	findByIDFunc         func(ctx context.Context, id string) (*model.Tour, error)
	findAllFunc          func(ctx context.Context, limit int, offset int64) ([]*model.Tour, error)
	findByOperatorIDFunc func(ctx context.Context, operatorID string) ([]*model.Tour, error)
	updateFunc           func(ctx context.Context, id string, tour *model.Tour) (*mongo.UpdateResult, error)
	deleteFunc           func(ctx context.Context, id string) error
	countFunc            func(ctx context.Context) (int64, error)
}

func (m *mockTourRepository) Create(ctx context.Context, tour *model.Tour) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, tour)
	}
	return nil
}

func (m *mockTourRepository) FindByID(ctx context.Context, id string) (*model.Tour, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, tourserrors.ErrNotFound
}

func (m *mockTourRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Tour, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Tour{}, nil
}

func (m *mockTourRepository) FindByOperatorID(ctx context.Context, operatorID string) ([]*model.Tour, error) {
	if m.findByOperatorIDFunc != nil {
		return m.findByOperatorIDFunc(ctx, operatorID)
	}
	return []*model.Tour{}, nil
}

func (m *mockTourRepository) Update(ctx context.Context, id string, tour *model.Tour) (*mongo.UpdateResult, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, tour)
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockTourRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockTourRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

type mockUserFinder struct {
	users map[string]*model.User
}

func (m *mockUserFinder) FindByID(ctx context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, userserrors.ErrNotFound
}

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return &config.Config{
		Log:         log,
		ReadTimeout: 5 * time.Second,
	}
}

func newTestService(repo *mockTourRepository) *tourService {
	cfg := testConfig()
	users := &mockUserFinder{users: map[string]*model.User{
		operatorID:      {ID: operatorID, Name: "Olive", Role: model.RoleOperator},
		otherOperatorID: {ID: otherOperatorID, Name: "Oscar", Role: model.RoleOperator},
		customerID:      {ID: customerID, Name: "Casey", Role: model.RoleCustomer},
	}}
	return &tourService{
		repo:      repo,
		guard:     guard.New(users, repo),
		validator: validator.NewTourValidator(cfg.Log),
		cfg:       cfg,
	}
}

func validRequest() *model.TourRequest {
	return &model.TourRequest{
		Title:         "Misty Mountain Hike",
		Description:   "Start your morning above the clouds.",
		Price:         129.00,
		Location:      "Aspen, USA",
		MaxCapacity:   14,
		DurationHours: 5,
	}
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

func TestGetAll_ReturnsCountAndPage(t *testing.T) {
	repo := &mockTourRepository{
		countFunc: func(ctx context.Context) (int64, error) {
			return 42, nil
		},
		findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Tour, error) {
			return []*model.Tour{{ID: tourID, Title: "Misty Mountain Hike"}}, nil
		},
	}
	service := newTestService(repo)

	tours, count, err := service.GetAll(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 42 {
		t.Errorf("expected count 42, got %d", count)
	}
	if len(tours) != 1 {
		t.Errorf("expected 1 tour, got %d", len(tours))
	}
}

func TestGetByID_Missing(t *testing.T) {
	service := newTestService(&mockTourRepository{})

	_, err := service.GetByID(context.Background(), tourID)
	assertCode(t, err, apperrors.CodeNotFound, "Tour not found")
}

func TestGetByID_EmptyID(t *testing.T) {
	service := newTestService(&mockTourRepository{})

	_, err := service.GetByID(context.Background(), "")
	assertCode(t, err, apperrors.CodeInvalidInput, "")
}

func TestGetByOperator_CustomerForbidden(t *testing.T) {
	service := newTestService(&mockTourRepository{})

	_, err := service.GetByOperator(context.Background(), customerID)
	assertCode(t, err, apperrors.CodeForbidden, "User does not have operator permissions")
}

func TestGetByOperator_UnknownOperator(t *testing.T) {
	service := newTestService(&mockTourRepository{})

	_, err := service.GetByOperator(context.Background(), "64b0c8f2a1d3e4f5a6b7c8ff")
	assertCode(t, err, apperrors.CodeNotFound, "Operator not found")
}

func TestCreate_StampsOperatorIdentity(t *testing.T) {
	var created *model.Tour
	repo := &mockTourRepository{
		createFunc: func(ctx context.Context, tour *model.Tour) error {
			tour.ID = tourID
			created = tour
			return nil
		},
	}
	service := newTestService(repo)

	tour, err := service.Create(context.Background(), validRequest(), operatorID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected tour to be persisted")
	}
	if tour.OperatorID != operatorID {
		t.Errorf("expected operator id %s, got %s", operatorID, tour.OperatorID)
	}
	if tour.OperatorName != "Olive" {
		t.Errorf("expected operator name Olive, got %s", tour.OperatorName)
	}
}

func TestCreate_CustomerForbidden(t *testing.T) {
	repoCalled := false
	repo := &mockTourRepository{
		createFunc: func(ctx context.Context, tour *model.Tour) error {
			repoCalled = true
			return nil
		},
	}
	service := newTestService(repo)

	_, err := service.Create(context.Background(), validRequest(), customerID)
	assertCode(t, err, apperrors.CodeForbidden, "User does not have operator permissions")

	if repoCalled {
		t.Error("tour was persisted for a forbidden caller")
	}
}

func TestCreate_SanitizesBeforeValidation(t *testing.T) {
	repo := &mockTourRepository{}
	service := newTestService(repo)

	req := validRequest()
	req.Title = "  misty   mountain hike  "
	req.Location = "  aspen, usa "

	tour, err := service.Create(context.Background(), req, operatorID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tour.Title != "misty mountain hike" {
		t.Errorf("expected whitespace-normalized title, got %q", tour.Title)
	}
	if tour.Location != "aspen, usa" {
		t.Errorf("expected whitespace-normalized location, got %q", tour.Location)
	}
}

func TestCreate_InvalidRequest(t *testing.T) {
	service := newTestService(&mockTourRepository{})

	req := validRequest()
	req.MaxCapacity = 0

	_, err := service.Create(context.Background(), req, operatorID)
	assertCode(t, err, apperrors.CodeValidation, "")
}

func TestUpdate_ForeignOperatorForbidden(t *testing.T) {
	updateCalled := false
	repo := &mockTourRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Tour, error) {
			return &model.Tour{ID: id, OperatorID: operatorID, Title: "Misty Mountain Hike"}, nil
		},
		updateFunc: func(ctx context.Context, id string, tour *model.Tour) (*mongo.UpdateResult, error) {
			updateCalled = true
			return &mongo.UpdateResult{MatchedCount: 1}, nil
		},
	}
	service := newTestService(repo)

	_, err := service.Update(context.Background(), tourID, validRequest(), otherOperatorID)
	assertCode(t, err, apperrors.CodeForbidden, "Operators can only modify their own tours")

	if updateCalled {
		t.Error("update reached the repository for a foreign operator")
	}
}

func TestUpdate_MissingTourBeatsOwnership(t *testing.T) {
	service := newTestService(&mockTourRepository{})

	_, err := service.Update(context.Background(), tourID, validRequest(), otherOperatorID)
	assertCode(t, err, apperrors.CodeNotFound, "Tour not found")
}

func TestUpdate_PreservesOperatorIdentity(t *testing.T) {
	var persisted *model.Tour
	repo := &mockTourRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Tour, error) {
			return &model.Tour{ID: id, OperatorID: operatorID, OperatorName: "Olive", Title: "Old Title"}, nil
		},
		updateFunc: func(ctx context.Context, id string, tour *model.Tour) (*mongo.UpdateResult, error) {
			persisted = tour
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		},
	}
	service := newTestService(repo)

	updated, err := service.Update(context.Background(), tourID, validRequest(), operatorID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "Misty Mountain Hike" {
		t.Errorf("expected updated title, got %q", updated.Title)
	}
	if persisted.OperatorID != operatorID {
		t.Errorf("update changed operator id to %s", persisted.OperatorID)
	}
}

func TestDelete_ForeignOperatorForbidden(t *testing.T) {
	deleteCalled := false
	repo := &mockTourRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Tour, error) {
			return &model.Tour{ID: id, OperatorID: operatorID}, nil
		},
		deleteFunc: func(ctx context.Context, id string) error {
			deleteCalled = true
			return nil
		},
	}
	service := newTestService(repo)

	err := service.Delete(context.Background(), tourID, otherOperatorID)
	assertCode(t, err, apperrors.CodeForbidden, "Operators can only modify their own tours")

	if deleteCalled {
		t.Error("delete reached the repository for a foreign operator")
	}
}

func TestDelete_Owner(t *testing.T) {
	repo := &mockTourRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Tour, error) {
			return &model.Tour{ID: id, OperatorID: operatorID}, nil
		},
	}
	service := newTestService(repo)

	if err := service.Delete(context.Background(), tourID, operatorID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
