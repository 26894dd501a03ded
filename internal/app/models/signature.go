package models

import "time"

// Signature records that a user, acting in a role, signed off an appraisal.
// The table is an append-only audit trail; rows are never updated.
type Signature struct {
	ID          int64     `json:"id"`
	AppraisalID int64     `json:"appraisalId"`
	UserID      int64     `json:"userId"`
	Role        RoleType  `json:"role"`
	Note        string    `json:"note"`
	SignedAt    time.Time `json:"signedAt"`
}
