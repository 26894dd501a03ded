package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadeval/appraisehub/internal/app/models"
	"github.com/acadeval/appraisehub/internal/pkg/apperrors"
	"github.com/acadeval/appraisehub/internal/pkg/dberrors"
)

// CollegeRepository handles database operations for colleges
type CollegeRepository struct {
	db *pgxpool.Pool
}

// NewCollegeRepository creates a new college repository
func NewCollegeRepository(db *pgxpool.Pool) *CollegeRepository {
	return &CollegeRepository{
		db: db,
	}
}

// Create creates a new college
func (r *CollegeRepository) Create(ctx context.Context, college *models.College) error {
	query := `
		INSERT INTO colleges (name, code)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, college.Name, college.Code).Scan(&college.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCollegeAlreadyExists
		}
		return fmt.Errorf("error creating college: %w", err)
	}

	return nil
}

// GetByID retrieves a college by ID
func (r *CollegeRepository) GetByID(ctx context.Context, id int64) (*models.College, error) {
	query := `
		SELECT id, name, code
		FROM colleges
		WHERE id = $1
	`

	var college models.College
	err := r.db.QueryRow(ctx, query, id).Scan(
		&college.ID,
		&college.Name,
		&college.Code,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCollegeNotFound
		}
		return nil, fmt.Errorf("error retrieving college: %w", err)
	}

	return &college, nil
}

// GetAll retrieves all colleges
func (r *CollegeRepository) GetAll(ctx context.Context) ([]*models.College, error) {
	query := `
		SELECT id, name, code
		FROM colleges
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var colleges []*models.College
	for rows.Next() {
		var college models.College
		if err := rows.Scan(
			&college.ID,
			&college.Name,
			&college.Code,
		); err != nil {
			return nil, err
		}
		colleges = append(colleges, &college)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return colleges, nil
}
