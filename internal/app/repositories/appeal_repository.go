package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadeval/appraisehub/internal/app/models"
	"github.com/acadeval/appraisehub/internal/pkg/apperrors"
	"github.com/acadeval/appraisehub/internal/pkg/helpers"
)

const appealColumns = `id, appraisal_id, raised_by_id, message,
	resolution_note, resolved_by_id, resolved_at, created_at`

// AppealRepository handles database operations for appeals
type AppealRepository struct {
	db *pgxpool.Pool
}

// NewAppealRepository creates a new appeal repository
func NewAppealRepository(db *pgxpool.Pool) *AppealRepository {
	return &AppealRepository{
		db: db,
	}
}

func scanAppeal(row pgx.Row) (*models.Appeal, error) {
	var appeal models.Appeal
	err := row.Scan(
		&appeal.ID,
		&appeal.AppraisalID,
		&appeal.RaisedByID,
		&appeal.Message,
		&appeal.ResolutionNote,
		&appeal.ResolvedByID,
		&appeal.ResolvedAt,
		&appeal.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &appeal, nil
}

// GetByID retrieves an appeal by ID
func (r *AppealRepository) GetByID(ctx context.Context, id int64) (*models.Appeal, error) {
	query := `SELECT ` + appealColumns + ` FROM appeals WHERE id = $1`

	appeal, err := scanAppeal(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAppealNotFound
		}
		return nil, fmt.Errorf("error retrieving appeal: %w", err)
	}

	return appeal, nil
}

// List retrieves appeals newest first, optionally restricted to open ones
func (r *AppealRepository) List(ctx context.Context, openOnly bool, page, pageSize int) ([]*models.Appeal, int64, error) {
	countQuery := `SELECT COUNT(*) FROM appeals WHERE NOT $1 OR resolved_at IS NULL`

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, openOnly).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting appeals: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	query := `
		SELECT ` + appealColumns + `
		FROM appeals
		WHERE NOT $1 OR resolved_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, openOnly, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var appeals []*models.Appeal
	for rows.Next() {
		appeal, err := scanAppeal(rows)
		if err != nil {
			return nil, 0, err
		}
		appeals = append(appeals, appeal)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return appeals, total, nil
}

// ListByAppraisal retrieves the appeals raised against one appraisal,
// oldest first.
func (r *AppealRepository) ListByAppraisal(ctx context.Context, appraisalID int64) ([]*models.Appeal, error) {
	query := `
		SELECT ` + appealColumns + `
		FROM appeals
		WHERE appraisal_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, appraisalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appeals []*models.Appeal
	for rows.Next() {
		appeal, err := scanAppeal(rows)
		if err != nil {
			return nil, err
		}
		appeals = append(appeals, appeal)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return appeals, nil
}

// Resolve closes an open appeal with the administrator's note. The
// resolved_at guard makes resolution first-wins: a second resolver gets
// ErrAppealAlreadyResolved.
func (r *AppealRepository) Resolve(ctx context.Context, id, resolvedByID int64, note string) (*models.Appeal, error) {
	query := `
		UPDATE appeals
		SET resolution_note = $2, resolved_by_id = $3, resolved_at = now()
		WHERE id = $1 AND resolved_at IS NULL
		RETURNING ` + appealColumns

	appeal, err := scanAppeal(r.db.QueryRow(ctx, query, id, note, resolvedByID))
	if err == nil {
		return appeal, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("error resolving appeal: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM appeals WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("error checking appeal existence: %w", err)
	}
	if !exists {
		return nil, apperrors.ErrAppealNotFound
	}
	return nil, apperrors.ErrAppealAlreadyResolved
}
