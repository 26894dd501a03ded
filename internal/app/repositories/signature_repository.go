package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadeval/appraisehub/internal/app/models"
)

// SignatureRepository handles database operations for the signature audit trail
type SignatureRepository struct {
	db *pgxpool.Pool
}

// NewSignatureRepository creates a new signature repository
func NewSignatureRepository(db *pgxpool.Pool) *SignatureRepository {
	return &SignatureRepository{
		db: db,
	}
}

// Append records a signature. Rows are append-only.
func (r *SignatureRepository) Append(ctx context.Context, sig *models.Signature) error {
	query := `
		INSERT INTO signatures (appraisal_id, user_id, role, note)
		VALUES ($1, $2, $3, $4)
		RETURNING id, signed_at
	`

	err := r.db.QueryRow(ctx, query, sig.AppraisalID, sig.UserID, sig.Role, sig.Note).Scan(&sig.ID, &sig.SignedAt)
	if err != nil {
		return fmt.Errorf("error recording signature: %w", err)
	}

	return nil
}

// ListByAppraisal retrieves the signatures on one appraisal in signing order
func (r *SignatureRepository) ListByAppraisal(ctx context.Context, appraisalID int64) ([]*models.Signature, error) {
	query := `
		SELECT id, appraisal_id, user_id, role, note, signed_at
		FROM signatures
		WHERE appraisal_id = $1
		ORDER BY signed_at, id
	`

	rows, err := r.db.Query(ctx, query, appraisalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signatures []*models.Signature
	for rows.Next() {
		var sig models.Signature
		if err := rows.Scan(
			&sig.ID,
			&sig.AppraisalID,
			&sig.UserID,
			&sig.Role,
			&sig.Note,
			&sig.SignedAt,
		); err != nil {
			return nil, err
		}
		signatures = append(signatures, &sig)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return signatures, nil
}
