package service

import (
	"context"
	"sync"

	"tourbook/internal/guard"
	"tourbook/internal/tours/repository"
	"tourbook/internal/tours/validator"
	"tourbook/pkg/config"
	apperrors "tourbook/pkg/errors"
	"tourbook/pkg/model"
	"tourbook/pkg/sanitizer"
)

type TourService interface {
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Tour, int64, error)
	GetByID(ctx context.Context, id string) (*model.Tour, error)
	GetByOperator(ctx context.Context, operatorID string) ([]*model.Tour, error)
	Create(ctx context.Context, req *model.TourRequest, operatorID string) (*model.Tour, error)
	Update(ctx context.Context, tourID string, req *model.TourRequest, operatorID string) (*model.Tour, error)
	Delete(ctx context.Context, tourID string, operatorID string) error
}

type tourService struct {
	repo      repository.TourRepository
	guard     *guard.Guard
	validator *validator.TourValidator
	cfg       *config.Config
}

func NewTourService(
	repo repository.TourRepository,
	authGuard *guard.Guard,
	tourValidator *validator.TourValidator,
	cfg *config.Config,
) TourService {
	return &tourService{
		repo:      repo,
		guard:     authGuard,
		validator: tourValidator,
		cfg:       cfg,
	}
}

// GetAll is a public read; no ownership gate applies.
func (s *tourService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Tour, int64, error) {
	var count int64
	var tours []*model.Tour
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count tours", "error", errCount)
			errCount = apperrors.Internal("Failed to count tours", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		tours, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list tours", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve tours", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return tours, count, nil
}

func (s *tourService) GetByID(ctx context.Context, id string) (*model.Tour, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Tour ID cannot be empty")
	}
	return s.guard.ResolveTour(ctx, id)
}

func (s *tourService) GetByOperator(ctx context.Context, operatorID string) ([]*model.Tour, error) {
	operator, err := s.guard.ResolveOperator(ctx, operatorID)
	if err != nil {
		return nil, err
	}

	tours, err := s.repo.FindByOperatorID(ctx, operator.ID)
	if err != nil {
		s.cfg.Log.Error("Failed to list tours by operator", "operator_id", operator.ID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve tours", err)
	}

	return tours, nil
}

func (s *tourService) Create(ctx context.Context, req *model.TourRequest, operatorID string) (*model.Tour, error) {
	operator, err := s.guard.ResolveOperator(ctx, operatorID)
	if err != nil {
		return nil, err
	}

	s.sanitize(req)
	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Tour validation failed", "error", err)
		return nil, apperrors.Validation("Invalid tour input", map[string]any{"error": err.Error()})
	}

	tour := &model.Tour{
		OperatorID:    operator.ID,
		OperatorName:  operator.Name,
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		Location:      req.Location,
		MaxCapacity:   req.MaxCapacity,
		DurationHours: req.DurationHours,
		AvailableFrom: req.AvailableFrom,
	}

	if err := s.repo.Create(ctx, tour); err != nil {
		s.cfg.Log.Error("Failed to create tour", "error", err)
		return nil, apperrors.Internal("Failed to create tour", err)
	}

	s.cfg.Log.Info("Tour created", "id", tour.ID, "operator_id", tour.OperatorID, "title", tour.Title)
	return tour, nil
}

func (s *tourService) Update(ctx context.Context, tourID string, req *model.TourRequest, operatorID string) (*model.Tour, error) {
	existing, err := s.guard.ResolveTour(ctx, tourID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.AssertTourOwnership(existing, operatorID); err != nil {
		return nil, err
	}

	s.sanitize(req)
	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Tour update validation failed", "id", tourID, "error", err)
		return nil, apperrors.Validation("Invalid tour input", map[string]any{"error": err.Error()})
	}

	existing.Title = req.Title
	existing.Description = req.Description
	existing.Price = req.Price
	existing.Location = req.Location
	existing.MaxCapacity = req.MaxCapacity
	existing.DurationHours = req.DurationHours
	existing.AvailableFrom = req.AvailableFrom

	if _, err := s.repo.Update(ctx, tourID, existing); err != nil {
		s.cfg.Log.Error("Failed to update tour", "id", tourID, "error", err)
		return nil, apperrors.Internal("Failed to update tour", err)
	}

	s.cfg.Log.Info("Tour updated", "id", tourID)
	return existing, nil
}

func (s *tourService) Delete(ctx context.Context, tourID string, operatorID string) error {
	existing, err := s.guard.ResolveTour(ctx, tourID)
	if err != nil {
		return err
	}
	if err := s.guard.AssertTourOwnership(existing, operatorID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, tourID); err != nil {
		s.cfg.Log.Error("Failed to delete tour", "id", tourID, "error", err)
		return apperrors.Internal("Failed to delete tour", err)
	}

	s.cfg.Log.Info("Tour deleted", "id", tourID)
	return nil
}

func (s *tourService) sanitize(req *model.TourRequest) {
	req.Title = sanitizer.NormalizeTitle(req.Title)
	req.Description = sanitizer.TrimAndNormalize(req.Description)
	req.Location = sanitizer.NormalizeLocation(req.Location)
}
