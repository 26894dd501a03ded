package dto

import (
	"time"

	"github.com/acadeval/appraisehub/internal/app/models"
)

// ResolveAppealRequest closes an appeal with an administrative note
type ResolveAppealRequest struct {
	ResolutionNote string `json:"resolutionNote" binding:"required"`
}

// AppealResponse is the API view of an appeal
type AppealResponse struct {
	ID          int64      `json:"id"`
	AppraisalID int64      `json:"appraisalId"`
	RaisedByID  int64      `json:"raisedById"`
	Message     string     `json:"message"`
	CreatedAt   time.Time  `json:"createdAt"`
	Resolved    bool       `json:"resolved"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`
	ResolutionNote *string `json:"resolutionNote,omitempty"`
}

// AppealListResponse is a paginated list of appeals
type AppealListResponse struct {
	Appeals    []AppealResponse `json:"appeals"`
	Pagination PaginationInfo   `json:"pagination"`
}

// FromAppeal converts a model appeal to its API view
func FromAppeal(a *models.Appeal) AppealResponse {
	if a == nil {
		return AppealResponse{}
	}
	return AppealResponse{
		ID:             a.ID,
		AppraisalID:    a.AppraisalID,
		RaisedByID:     a.RaisedByID,
		Message:        a.Message,
		CreatedAt:      a.CreatedAt,
		Resolved:       a.Resolved(),
		ResolvedAt:     a.ResolvedAt,
		ResolutionNote: a.ResolutionNote,
	}
}
