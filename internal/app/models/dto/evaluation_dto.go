package dto

import (
	"github.com/acadeval/appraisehub/internal/app/models"
)

// SaveEvaluationRequest carries an evaluator's scored sections for one
// appraisal. Either section may be submitted alone; the appraisal can only
// be sent once both have been saved at least once.
type SaveEvaluationRequest struct {
	Performance  *PerformanceSection  `json:"performance,omitempty"`
	Capabilities *CapabilitiesSection `json:"capabilities,omitempty"`
}

// PerformanceSection carries the four weighted category scores
type PerformanceSection struct {
	ResearchPts          float64 `json:"researchPts" binding:"min=0"`
	UniversityServicePts float64 `json:"universityServicePts" binding:"min=0"`
	CommunityServicePts  float64 `json:"communityServicePts" binding:"min=0"`
	TeachingQualityPts   float64 `json:"teachingQualityPts" binding:"min=0"`
}

// CapabilitiesSection carries the capabilities rubric scores
type CapabilitiesSection struct {
	Total float64            `json:"total" binding:"min=0"`
	Items map[string]float64 `json:"items,omitempty"`
}

// EvaluationResponse is the API view of an evaluation
type EvaluationResponse struct {
	AppraisalID   int64                `json:"appraisalId"`
	EvaluatorRole models.EvaluatorRole `json:"evaluatorRole"`

	PerformancePts  *float64 `json:"performancePts,omitempty"`
	CapabilitiesPts *float64 `json:"capabilitiesPts,omitempty"`

	ResearchPts          float64 `json:"researchPts"`
	UniversityServicePts float64 `json:"universityServicePts"`
	CommunityServicePts  float64 `json:"communityServicePts"`
	TeachingQualityPts   float64 `json:"teachingQualityPts"`

	Rubric models.RubricPayload `json:"rubric"`

	SectionsComplete bool `json:"sectionsComplete"`
}

// ReviewResponse bundles an appraisal with the acting evaluator's evaluation
type ReviewResponse struct {
	Appraisal  AppraisalResponse   `json:"appraisal"`
	Evaluation *EvaluationResponse `json:"evaluation,omitempty"`
}

// FromEvaluation converts a model evaluation to its API view
func FromEvaluation(e *models.Evaluation) *EvaluationResponse {
	if e == nil {
		return nil
	}
	return &EvaluationResponse{
		AppraisalID:          e.AppraisalID,
		EvaluatorRole:        e.EvaluatorRole,
		PerformancePts:       e.PerformancePts,
		CapabilitiesPts:      e.CapabilitiesPts,
		ResearchPts:          e.ResearchPts,
		UniversityServicePts: e.UniversityServicePts,
		CommunityServicePts:  e.CommunityServicePts,
		TeachingQualityPts:   e.TeachingQualityPts,
		Rubric:               e.Rubric,
		SectionsComplete:     e.SectionsComplete(),
	}
}
