package dto

import (
	"time"

	"github.com/acadeval/appraisehub/internal/app/models"
)

// AppraisalResponse is the API view of an appraisal
type AppraisalResponse struct {
	ID         int64                  `json:"id"`
	FacultyID  int64                  `json:"facultyId"`
	CycleID    int64                  `json:"cycleId"`
	Status     models.AppraisalStatus `json:"status"`
	Scores     models.CategoryScores  `json:"scores"`
	TotalScore float64                `json:"totalScore"`
	UpdatedAt  time.Time              `json:"updatedAt"`

	FacultyName string              `json:"facultyName,omitempty"`
	Signatures  []SignatureResponse `json:"signatures,omitempty"`
}

// SignatureResponse is the API view of a sign-off record
type SignatureResponse struct {
	UserID   int64     `json:"userId"`
	Role     string    `json:"role"`
	Note     string    `json:"note"`
	SignedAt time.Time `json:"signedAt"`
}

// AppealRequest raises an appeal against the caller's sent appraisal
type AppealRequest struct {
	Message string `json:"message" example:"The research score omits two publications."`
}

// EvaluateeResponse is one row of an evaluator's worklist
type EvaluateeResponse struct {
	AppraisalID int64                  `json:"appraisalId"`
	FacultyID   int64                  `json:"facultyId"`
	FacultyName string                 `json:"facultyName"`
	Status      models.AppraisalStatus `json:"status"`
	TotalScore  float64                `json:"totalScore"`
}

// FromAppraisal converts a model appraisal to its API view
func FromAppraisal(a *models.Appraisal) AppraisalResponse {
	if a == nil {
		return AppraisalResponse{}
	}

	resp := AppraisalResponse{
		ID:         a.ID,
		FacultyID:  a.FacultyID,
		CycleID:    a.CycleID,
		Status:     a.Status,
		Scores:     a.Scores,
		TotalScore: a.TotalScore,
		UpdatedAt:  a.UpdatedAt,
	}

	if a.Faculty != nil {
		resp.FacultyName = a.Faculty.FirstName + " " + a.Faculty.LastName
	}

	return resp
}

// FromSignature converts a model signature to its API view
func FromSignature(s *models.Signature) SignatureResponse {
	if s == nil {
		return SignatureResponse{}
	}
	return SignatureResponse{
		UserID:   s.UserID,
		Role:     string(s.Role),
		Note:     s.Note,
		SignedAt: s.SignedAt,
	}
}
