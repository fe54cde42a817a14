package service

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	userserrors "tourbook/internal/users/errors"
	"tourbook/internal/users/validator"
	"tourbook/pkg/auth"
	"tourbook/pkg/config"
	apperrors "tourbook/pkg/errors"
	"tourbook/pkg/logger"
	"tourbook/pkg/model"
)

const userID = "64b0c8f2a1d3e4f5a6b7c8e1"

// Mock repository for testing
type mockUserRepository struct {
	createFunc      func(ctx context.Context, user *model.User) error
	findByIDFunc    func(ctx context.Context, id string) (*model.User, error)
	findByEmailFunc func(ctx context.Context, email string) (*model.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = userID
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, userserrors.ErrNotFound
}

func newTestService(t *testing.T, repo *mockUserRepository) *userService {
	t.Helper()
	log := logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	cfg := &config.Config{Log: log}
	tokens, err := auth.NewTokenManager("test-secret", "tourbook-test", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	return &userService{
		repo:      repo,
		validator: validator.NewUserValidator(log),
		tokens:    tokens,
		cfg:       cfg,
	}
}

func registerRequest() *model.RegisterRequest {
	return &model.RegisterRequest{
		Name:     "Casey Traveler",
		Email:    "casey@example.com",
		Password: "hunter2hunter2",
		Role:     model.RoleCustomer,
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

func TestRegister_IssuesToken(t *testing.T) {
	var created *model.User
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, user *model.User) error {
			user.ID = userID
			created = user
			return nil
		},
	}
	service := newTestService(t, repo)

	resp, err := service.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token in the response")
	}
	if resp.Role != model.RoleCustomer {
		t.Errorf("expected role %s, got %s", model.RoleCustomer, resp.Role)
	}
	if created.PasswordHash == "hunter2hunter2" {
		t.Error("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("hunter2hunter2")); err != nil {
		t.Errorf("stored hash does not verify against the original password: %v", err)
	}
}

func TestRegister_NormalizesEmail(t *testing.T) {
	var created *model.User
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, user *model.User) error {
			user.ID = userID
			created = user
			return nil
		},
	}
	service := newTestService(t, repo)

	req := registerRequest()
	req.Email = "  Casey@Example.COM "

	if _, err := service.Register(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Email != "casey@example.com" {
		t.Errorf("expected lowercased email, got %q", created.Email)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: userID, Email: email}, nil
		},
	}
	service := newTestService(t, repo)

	_, err := service.Register(context.Background(), registerRequest())
	assertCode(t, err, apperrors.CodeConflict, "Email already registered")
}

func TestRegister_DuplicateEmailRace(t *testing.T) {
	// The unique index wins when two registrations race past the
	// existence check.
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, user *model.User) error {
			return userserrors.ErrDuplicateEmail
		},
	}
	service := newTestService(t, repo)

	_, err := service.Register(context.Background(), registerRequest())
	assertCode(t, err, apperrors.CodeConflict, "Email already registered")
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	service := newTestService(t, &mockUserRepository{})

	req := registerRequest()
	req.Role = "ADMIN"

	_, err := service.Register(context.Background(), req)
	assertCode(t, err, apperrors.CodeValidation, "")
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	service := newTestService(t, &mockUserRepository{})

	req := registerRequest()
	req.Password = "short"

	_, err := service.Register(context.Background(), req)
	assertCode(t, err, apperrors.CodeValidation, "")
}

func TestLogin_Succeeds(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	repo := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{
				ID:           userID,
				Name:         "Casey Traveler",
				Email:        email,
				PasswordHash: string(hash),
				Role:         model.RoleCustomer,
			}, nil
		},
	}
	service := newTestService(t, repo)

	resp, err := service.Login(context.Background(), &model.LoginRequest{
		Email:    "casey@example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token in the response")
	}

	claims, err := service.tokens.Validate(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("expected subject %s, got %s", userID, claims.UserID)
	}
	if claims.Role != model.RoleCustomer {
		t.Errorf("expected role %s, got %s", model.RoleCustomer, claims.Role)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	repo := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: userID, Email: email, PasswordHash: string(hash)}, nil
		},
	}
	service := newTestService(t, repo)

	_, err := service.Login(context.Background(), &model.LoginRequest{
		Email:    "casey@example.com",
		Password: "wrong-password",
	})
	assertCode(t, err, apperrors.CodeUnauthorized, "Invalid credentials")
}

func TestLogin_UnknownEmail(t *testing.T) {
	service := newTestService(t, &mockUserRepository{})

	_, err := service.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-it-is",
	})
	assertCode(t, err, apperrors.CodeUnauthorized, "Invalid credentials")
}

func TestGetByID_Missing(t *testing.T) {
	service := newTestService(t, &mockUserRepository{})

	_, err := service.GetByID(context.Background(), userID)
	assertCode(t, err, apperrors.CodeNotFound, "User not found")
}
