package models

import "time"

// CapabilitiesRubric is the typed capabilities section of an evaluation's
// rubric payload. Total is the only field the aggregator reads.
type CapabilitiesRubric struct {
	Total float64            `json:"total"`
	Items map[string]float64 `json:"items,omitempty"`
}

// RubricPayload carries the free-form rubric sections of an evaluation.
// It is stored as JSONB.
type RubricPayload struct {
	Capabilities *CapabilitiesRubric `json:"capabilities,omitempty"`
}

// CapabilitiesTotal returns the capabilities subtotal, defaulting to 0 when
// the section is absent. Never panics.
func (p RubricPayload) CapabilitiesTotal() float64 {
	if p.Capabilities == nil {
		return 0
	}
	return p.Capabilities.Total
}

// Evaluation is one evaluator role's scored input into an appraisal.
// The (AppraisalID, EvaluatorRole) pair is unique. PerformancePts and
// CapabilitiesPts are nil until the corresponding section has been scored;
// a send is only legal once both are non-nil.
type Evaluation struct {
	ID            int64         `json:"id"`
	AppraisalID   int64         `json:"appraisalId"`
	EvaluatorRole EvaluatorRole `json:"evaluatorRole"`
	EvaluatorID   int64         `json:"evaluatorId"`

	PerformancePts  *float64 `json:"performancePts,omitempty"`
	CapabilitiesPts *float64 `json:"capabilitiesPts,omitempty"`

	ResearchPts          float64 `json:"researchPts"`
	UniversityServicePts float64 `json:"universityServicePts"`
	CommunityServicePts  float64 `json:"communityServicePts"`
	TeachingQualityPts   float64 `json:"teachingQualityPts"`

	Rubric RubricPayload `json:"rubric"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SectionsComplete reports whether both evaluation sections have been scored
func (e *Evaluation) SectionsComplete() bool {
	return e.PerformancePts != nil && e.CapabilitiesPts != nil
}
