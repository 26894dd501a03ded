package models

import "time"

// TeachingBand maps a teaching-quality ratio threshold to awarded points
type TeachingBand struct {
	MinRatio float64 `json:"minRatio"`
	Points   float64 `json:"points"`
}

// GradingConfig holds the weights and bands used when aggregating an
// evaluation into a total score. A GLOBAL config is the system fallback;
// a CYCLE config overrides it for its cycle.
type GradingConfig struct {
	ID      int64       `json:"id"`
	Scope   ConfigScope `json:"scope"`
	CycleID *int64      `json:"cycleId,omitempty"` // Set only for CYCLE scope

	ResearchWeight          float64 `json:"researchWeight"`
	UniversityServiceWeight float64 `json:"universityServiceWeight"`
	CommunityServiceWeight  float64 `json:"communityServiceWeight"`
	TeachingQualityWeight   float64 `json:"teachingQualityWeight"`

	ServicePointsPerItem float64 `json:"servicePointsPerItem"`
	ServiceMaxPoints     float64 `json:"serviceMaxPoints"`

	TeachingBands     []TeachingBand     `json:"teachingBands"`     // JSONB
	ResearchPointsMap map[string]float64 `json:"researchPointsMap"` // JSONB

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
