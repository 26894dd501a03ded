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

const appraisalColumns = `id, faculty_id, cycle_id, status,
	research_pts, university_service_pts, community_service_pts, teaching_quality_pts,
	total_score, created_at, updated_at`

// AppraisalRepository handles database operations for appraisals
type AppraisalRepository struct {
	db *pgxpool.Pool
}

// NewAppraisalRepository creates a new appraisal repository
func NewAppraisalRepository(db *pgxpool.Pool) *AppraisalRepository {
	return &AppraisalRepository{
		db: db,
	}
}

func scanAppraisal(row pgx.Row) (*models.Appraisal, error) {
	var a models.Appraisal
	err := row.Scan(
		&a.ID,
		&a.FacultyID,
		&a.CycleID,
		&a.Status,
		&a.Scores.ResearchPts,
		&a.Scores.UniversityServicePts,
		&a.Scores.CommunityServicePts,
		&a.Scores.TeachingQualityPts,
		&a.TotalScore,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByID retrieves an appraisal by ID
func (r *AppraisalRepository) GetByID(ctx context.Context, id int64) (*models.Appraisal, error) {
	query := `SELECT ` + appraisalColumns + ` FROM appraisals WHERE id = $1`

	appraisal, err := scanAppraisal(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAppraisalNotFound
		}
		return nil, fmt.Errorf("error retrieving appraisal: %w", err)
	}

	return appraisal, nil
}

// GetByFacultyAndCycle retrieves the appraisal for one faculty member in one cycle
func (r *AppraisalRepository) GetByFacultyAndCycle(ctx context.Context, facultyID, cycleID int64) (*models.Appraisal, error) {
	query := `SELECT ` + appraisalColumns + ` FROM appraisals WHERE faculty_id = $1 AND cycle_id = $2`

	appraisal, err := scanAppraisal(r.db.QueryRow(ctx, query, facultyID, cycleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAppraisalNotFound
		}
		return nil, fmt.Errorf("error retrieving appraisal: %w", err)
	}

	return appraisal, nil
}

// GetOrCreate retrieves the appraisal for (facultyID, cycleID), creating it
// with status 'new' on first access. The insert is race-safe: a concurrent
// creation is absorbed by the unique constraint and the row re-read.
func (r *AppraisalRepository) GetOrCreate(ctx context.Context, facultyID, cycleID int64) (*models.Appraisal, error) {
	appraisal, err := r.GetByFacultyAndCycle(ctx, facultyID, cycleID)
	if err == nil {
		return appraisal, nil
	}
	if !errors.Is(err, apperrors.ErrAppraisalNotFound) {
		return nil, err
	}

	insert := `
		INSERT INTO appraisals (faculty_id, cycle_id, status)
		VALUES ($1, $2, 'new')
		ON CONFLICT (faculty_id, cycle_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, insert, facultyID, cycleID); err != nil {
		return nil, fmt.Errorf("error creating appraisal: %w", err)
	}

	return r.GetByFacultyAndCycle(ctx, facultyID, cycleID)
}

// MarkSent moves the appraisal to 'sent'. Legal from new, returned and sent
// itself (an evaluator may revise and resubmit); a completed appraisal is
// closed. The status check and update are one statement, so racing callers
// serialize on the row.
func (r *AppraisalRepository) MarkSent(ctx context.Context, id int64) error {
	query := `
		UPDATE appraisals
		SET status = 'sent', updated_at = now()
		WHERE id = $1 AND status IN ('new', 'returned', 'sent')
	`

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error sending appraisal: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return r.classifyMiss(ctx, id)
	}

	return nil
}

// Transition atomically moves the appraisal from one exact status to
// another. A stale precondition (row no longer in `from`) yields
// ErrNotActionable rather than a silent no-op.
func (r *AppraisalRepository) Transition(ctx context.Context, id int64, from, to models.AppraisalStatus) error {
	query := `
		UPDATE appraisals
		SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, id, from, to)
	if err != nil {
		return fmt.Errorf("error transitioning appraisal: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return r.classifyMiss(ctx, id)
	}

	return nil
}

// classifyMiss distinguishes a missing row from a wrong-status row after a
// guarded update matched nothing.
func (r *AppraisalRepository) classifyMiss(ctx context.Context, id int64) error {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM appraisals WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("error checking appraisal existence: %w", err)
	}
	if !exists {
		return apperrors.ErrAppraisalNotFound
	}
	return apperrors.ErrNotActionable
}

// SaveScores writes the aggregated category scores and total. A 'new'
// appraisal is promoted to 'sent' in the same statement, as the side effect
// of the evaluator's first save.
func (r *AppraisalRepository) SaveScores(ctx context.Context, id int64, scores models.CategoryScores, total float64) error {
	query := `
		UPDATE appraisals
		SET research_pts = $2,
		    university_service_pts = $3,
		    community_service_pts = $4,
		    teaching_quality_pts = $5,
		    total_score = $6,
		    status = CASE WHEN status = 'new' THEN 'sent' ELSE status END,
		    updated_at = now()
		WHERE id = $1
	`

	cmdTag, err := r.db.Exec(ctx, query,
		id,
		scores.ResearchPts,
		scores.UniversityServicePts,
		scores.CommunityServicePts,
		scores.TeachingQualityPts,
		total,
	)
	if err != nil {
		return fmt.Errorf("error saving appraisal scores: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAppraisalNotFound
	}

	return nil
}

// ReturnWithAppeal moves a 'sent' appraisal to 'returned' and records the
// appeal in the same transaction. Either both writes commit or neither does.
// The row lock taken by the guarded update serializes racing appeals.
func (r *AppraisalRepository) ReturnWithAppeal(ctx context.Context, appraisalID, raisedByID int64, message string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	cmdTag, err := tx.Exec(ctx, `
		UPDATE appraisals
		SET status = 'returned', updated_at = now()
		WHERE id = $1 AND status = 'sent'
	`, appraisalID)
	if err != nil {
		return fmt.Errorf("error returning appraisal: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return r.classifyMiss(ctx, appraisalID)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO appeals (appraisal_id, raised_by_id, message)
		VALUES ($1, $2, $3)
	`, appraisalID, raisedByID, message); err != nil {
		return fmt.Errorf("error recording appeal: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListForHOD lists the appraisals of instructors in the given department
// for one cycle, excluding the head's own record.
func (r *AppraisalRepository) ListForHOD(ctx context.Context, cycleID, departmentID, hodID int64) ([]*models.Appraisal, error) {
	query := `
		SELECT a.` + joinedAppraisalColumns("a") + `, u.id, u.email, u.first_name, u.last_name, u.role
		FROM appraisals a
		JOIN users u ON u.id = a.faculty_id
		WHERE a.cycle_id = $1 AND u.department_id = $2 AND u.role = 'INSTRUCTOR' AND u.id <> $3
		ORDER BY u.last_name, u.first_name
	`

	return r.listWithFaculty(ctx, query, cycleID, departmentID, hodID)
}

// ListForDean lists the appraisals of department heads in the given college
// for one cycle.
func (r *AppraisalRepository) ListForDean(ctx context.Context, cycleID, collegeID int64) ([]*models.Appraisal, error) {
	query := `
		SELECT a.` + joinedAppraisalColumns("a") + `, u.id, u.email, u.first_name, u.last_name, u.role
		FROM appraisals a
		JOIN users u ON u.id = a.faculty_id
		JOIN departments d ON d.id = u.department_id
		WHERE a.cycle_id = $1 AND d.college_id = $2 AND u.role = 'HOD'
		ORDER BY u.last_name, u.first_name
	`

	return r.listWithFaculty(ctx, query, cycleID, collegeID)
}

func joinedAppraisalColumns(alias string) string {
	return `id, ` + alias + `.faculty_id, ` + alias + `.cycle_id, ` + alias + `.status,
		` + alias + `.research_pts, ` + alias + `.university_service_pts, ` + alias + `.community_service_pts, ` + alias + `.teaching_quality_pts,
		` + alias + `.total_score, ` + alias + `.created_at, ` + alias + `.updated_at`
}

func (r *AppraisalRepository) listWithFaculty(ctx context.Context, query string, args ...interface{}) ([]*models.Appraisal, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appraisals []*models.Appraisal
	for rows.Next() {
		var a models.Appraisal
		var faculty models.User
		if err := rows.Scan(
			&a.ID,
			&a.FacultyID,
			&a.CycleID,
			&a.Status,
			&a.Scores.ResearchPts,
			&a.Scores.UniversityServicePts,
			&a.Scores.CommunityServicePts,
			&a.Scores.TeachingQualityPts,
			&a.TotalScore,
			&a.CreatedAt,
			&a.UpdatedAt,
			&faculty.ID,
			&faculty.Email,
			&faculty.FirstName,
			&faculty.LastName,
			&faculty.Role,
		); err != nil {
			return nil, err
		}
		a.Faculty = &faculty
		appraisals = append(appraisals, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return appraisals, nil
}
