package models

import "time"

// Appeal records a faculty member's dispute of a sent appraisal.
// Resolution fields are set once by an administrator; a resolved appeal is
// immutable.
type Appeal struct {
	ID          int64  `json:"id"`
	AppraisalID int64  `json:"appraisalId"`
	RaisedByID  int64  `json:"raisedById"`
	Message     string `json:"message"`

	ResolutionNote *string    `json:"resolutionNote,omitempty"`
	ResolvedByID   *int64     `json:"resolvedById,omitempty"`
	ResolvedAt     *time.Time `json:"resolvedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`

	Appraisal *Appraisal `json:"appraisal,omitempty"` // Relation, no db tag
}

// Resolved reports whether the appeal has been administratively closed
func (a *Appeal) Resolved() bool {
	return a.ResolvedAt != nil
}
