package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/acadeval/appraisehub/internal/app/models"
	"github.com/acadeval/appraisehub/internal/app/models/dto"
	"github.com/acadeval/appraisehub/internal/pkg/apperrors"
)

// CycleService manages appraisal cycles
type CycleService struct {
	cycles CycleStore
	logger zerolog.Logger
}

// NewCycleService creates a new CycleService
func NewCycleService(cycles CycleStore, logger zerolog.Logger) *CycleService {
	return &CycleService{
		cycles: cycles,
		logger: logger,
	}
}

// Create creates a new, inactive cycle
func (s *CycleService) Create(ctx context.Context, req *dto.CreateCycleRequest) (*models.AppraisalCycle, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, apperrors.NewBadRequestError("cycle end date must be after start date")
	}

	cycle := &models.AppraisalCycle{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}

	if err := s.cycles.Create(ctx, cycle); err != nil {
		return nil, err
	}

	return cycle, nil
}

// List returns all cycles, newest first
func (s *CycleService) List(ctx context.Context) ([]*models.AppraisalCycle, error) {
	return s.cycles.GetAll(ctx)
}

// GetActive returns the single active cycle
func (s *CycleService) GetActive(ctx context.Context) (*models.AppraisalCycle, error) {
	return s.cycles.GetActive(ctx)
}

// Activate makes the target cycle the active one, deactivating every other
// cycle in the same transaction.
func (s *CycleService) Activate(ctx context.Context, id int64) (*models.AppraisalCycle, error) {
	if err := s.cycles.Activate(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("cycleID", id).Msg("Appraisal cycle activated")

	return s.cycles.GetByID(ctx, id)
}
