package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadeval/appraisehub/internal/app/models"
	"github.com/acadeval/appraisehub/internal/pkg/apperrors"
)

// CycleRepository handles database operations for appraisal cycles
type CycleRepository struct {
	db *pgxpool.Pool
}

// NewCycleRepository creates a new cycle repository
func NewCycleRepository(db *pgxpool.Pool) *CycleRepository {
	return &CycleRepository{
		db: db,
	}
}

// Create creates a new, inactive cycle
func (r *CycleRepository) Create(ctx context.Context, cycle *models.AppraisalCycle) error {
	query := `
		INSERT INTO appraisal_cycles (name, start_date, end_date, is_active)
		VALUES ($1, $2, $3, FALSE)
		RETURNING id, is_active, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, cycle.Name, cycle.StartDate, cycle.EndDate).Scan(
		&cycle.ID,
		&cycle.IsActive,
		&cycle.CreatedAt,
		&cycle.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating cycle: %w", err)
	}

	return nil
}

// GetByID retrieves a cycle by ID
func (r *CycleRepository) GetByID(ctx context.Context, id int64) (*models.AppraisalCycle, error) {
	query := `
		SELECT id, name, start_date, end_date, is_active, created_at, updated_at
		FROM appraisal_cycles
		WHERE id = $1
	`

	var cycle models.AppraisalCycle
	err := r.db.QueryRow(ctx, query, id).Scan(
		&cycle.ID,
		&cycle.Name,
		&cycle.StartDate,
		&cycle.EndDate,
		&cycle.IsActive,
		&cycle.CreatedAt,
		&cycle.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCycleNotFound
		}
		return nil, fmt.Errorf("error retrieving cycle: %w", err)
	}

	return &cycle, nil
}

// GetActive retrieves the single active cycle, if any
func (r *CycleRepository) GetActive(ctx context.Context) (*models.AppraisalCycle, error) {
	query := `
		SELECT id, name, start_date, end_date, is_active, created_at, updated_at
		FROM appraisal_cycles
		WHERE is_active
	`

	var cycle models.AppraisalCycle
	err := r.db.QueryRow(ctx, query).Scan(
		&cycle.ID,
		&cycle.Name,
		&cycle.StartDate,
		&cycle.EndDate,
		&cycle.IsActive,
		&cycle.CreatedAt,
		&cycle.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrActiveCycleRequired
		}
		return nil, fmt.Errorf("error retrieving active cycle: %w", err)
	}

	return &cycle, nil
}

// GetAll retrieves all cycles, newest first
func (r *CycleRepository) GetAll(ctx context.Context) ([]*models.AppraisalCycle, error) {
	query := `
		SELECT id, name, start_date, end_date, is_active, created_at, updated_at
		FROM appraisal_cycles
		ORDER BY start_date DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cycles []*models.AppraisalCycle
	for rows.Next() {
		var cycle models.AppraisalCycle
		if err := rows.Scan(
			&cycle.ID,
			&cycle.Name,
			&cycle.StartDate,
			&cycle.EndDate,
			&cycle.IsActive,
			&cycle.CreatedAt,
			&cycle.UpdatedAt,
		); err != nil {
			return nil, err
		}
		cycles = append(cycles, &cycle)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cycles, nil
}

// Activate makes the target cycle the single active one. Deactivation of
// every other cycle and activation of the target commit together, so the
// at-most-one-active invariant holds even across a crash.
func (r *CycleRepository) Activate(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `UPDATE appraisal_cycles SET is_active = FALSE, updated_at = now() WHERE is_active`); err != nil {
		return fmt.Errorf("error deactivating cycles: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `UPDATE appraisal_cycles SET is_active = TRUE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error activating cycle: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCycleNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
