package dto

import "github.com/acadeval/appraisehub/internal/app/models"

// UpsertGradingConfigRequest creates or replaces a grading configuration.
// Scope is implied by the endpoint (global vs cycle-scoped).
type UpsertGradingConfigRequest struct {
	ResearchWeight          float64 `json:"researchWeight" binding:"min=0"`
	UniversityServiceWeight float64 `json:"universityServiceWeight" binding:"min=0"`
	CommunityServiceWeight  float64 `json:"communityServiceWeight" binding:"min=0"`
	TeachingQualityWeight   float64 `json:"teachingQualityWeight" binding:"min=0"`

	ServicePointsPerItem float64 `json:"servicePointsPerItem" binding:"min=0"`
	ServiceMaxPoints     float64 `json:"serviceMaxPoints" binding:"min=0"`

	TeachingBands     []models.TeachingBand `json:"teachingBands" binding:"required,min=1"`
	ResearchPointsMap map[string]float64    `json:"researchPointsMap" binding:"required"`
}

// GradingConfigResponse is the API view of a grading configuration
type GradingConfigResponse struct {
	ID      int64              `json:"id"`
	Scope   models.ConfigScope `json:"scope"`
	CycleID *int64             `json:"cycleId,omitempty"`

	ResearchWeight          float64 `json:"researchWeight"`
	UniversityServiceWeight float64 `json:"universityServiceWeight"`
	CommunityServiceWeight  float64 `json:"communityServiceWeight"`
	TeachingQualityWeight   float64 `json:"teachingQualityWeight"`

	ServicePointsPerItem float64 `json:"servicePointsPerItem"`
	ServiceMaxPoints     float64 `json:"serviceMaxPoints"`

	TeachingBands     []models.TeachingBand `json:"teachingBands"`
	ResearchPointsMap map[string]float64    `json:"researchPointsMap"`
}

// FromGradingConfig converts a model config to its API view
func FromGradingConfig(c *models.GradingConfig) GradingConfigResponse {
	if c == nil {
		return GradingConfigResponse{}
	}
	return GradingConfigResponse{
		ID:                      c.ID,
		Scope:                   c.Scope,
		CycleID:                 c.CycleID,
		ResearchWeight:          c.ResearchWeight,
		UniversityServiceWeight: c.UniversityServiceWeight,
		CommunityServiceWeight:  c.CommunityServiceWeight,
		TeachingQualityWeight:   c.TeachingQualityWeight,
		ServicePointsPerItem:    c.ServicePointsPerItem,
		ServiceMaxPoints:        c.ServiceMaxPoints,
		TeachingBands:           c.TeachingBands,
		ResearchPointsMap:       c.ResearchPointsMap,
	}
}
