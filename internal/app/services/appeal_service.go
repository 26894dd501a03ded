package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/acadeval/appraisehub/internal/app/models"
	"github.com/acadeval/appraisehub/internal/app/models/dto"
	"github.com/acadeval/appraisehub/internal/pkg/helpers"
)

// AppealService handles the administrative side of appeals. Raising an
// appeal is a workflow transition and lives in WorkflowService.
type AppealService struct {
	appeals AppealStore
	logger  zerolog.Logger
}

// NewAppealService creates a new AppealService
func NewAppealService(appeals AppealStore, logger zerolog.Logger) *AppealService {
	return &AppealService{
		appeals: appeals,
		logger:  logger,
	}
}

// List returns appeals newest first, optionally only unresolved ones
func (s *AppealService) List(ctx context.Context, openOnly bool, page, pageSize int) (*dto.AppealListResponse, error) {
	appeals, total, err := s.appeals.List(ctx, openOnly, page, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]dto.AppealResponse, 0, len(appeals))
	for _, appeal := range appeals {
		items = append(items, dto.FromAppeal(appeal))
	}

	return &dto.AppealListResponse{
		Appeals:    items,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// ListByAppraisal returns the appeal history of one appraisal
func (s *AppealService) ListByAppraisal(ctx context.Context, appraisalID int64) ([]*models.Appeal, error) {
	return s.appeals.ListByAppraisal(ctx, appraisalID)
}

// Resolve closes an open appeal with the administrator's note. Resolution
// does not change the appraisal's status; re-entry to 'sent' happens only
// through a subsequent evaluator send. Resolved appeals are immutable.
func (s *AppealService) Resolve(ctx context.Context, appealID, adminID int64, note string) (*models.Appeal, error) {
	appeal, err := s.appeals.Resolve(ctx, appealID, adminID, note)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("appealID", appealID).Int64("resolvedBy", adminID).Msg("Appeal resolved")

	return appeal, nil
}
