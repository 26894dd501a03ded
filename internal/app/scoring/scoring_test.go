package scoring

import (
	"testing"

	"github.com/acadeval/appraisehub/internal/app/models"
)

func TestComputeTotal(t *testing.T) {
	ev := &models.Evaluation{
		ResearchPts:          10,
		UniversityServicePts: 5,
		CommunityServicePts:  5,
		TeachingQualityPts:   20,
		Rubric: models.RubricPayload{
			Capabilities: &models.CapabilitiesRubric{Total: 15},
		},
	}

	if got := ComputeTotal(ev); got != 55 {
		t.Errorf("ComputeTotal() = %v, want 55", got)
	}
}

func TestComputeTotalMissingRubric(t *testing.T) {
	ev := &models.Evaluation{
		ResearchPts:          10,
		UniversityServicePts: 5,
		CommunityServicePts:  5,
		TeachingQualityPts:   20,
	}

	if got := ComputeTotal(ev); got != 40 {
		t.Errorf("ComputeTotal() = %v, want 40", got)
	}
}

func TestComputeTotalZeroEvaluation(t *testing.T) {
	if got := ComputeTotal(&models.Evaluation{}); got != 0 {
		t.Errorf("ComputeTotal() = %v, want 0", got)
	}
}

func TestServicePoints(t *testing.T) {
	cfg := &models.GradingConfig{ServicePointsPerItem: 2.5, ServiceMaxPoints: 10}

	tests := []struct {
		name  string
		items int
		want  float64
	}{
		{"no items", 0, 0},
		{"under cap", 3, 7.5},
		{"at cap", 4, 10},
		{"over cap", 9, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ServicePoints(tt.items, cfg); got != tt.want {
				t.Errorf("ServicePoints(%d) = %v, want %v", tt.items, got, tt.want)
			}
		})
	}
}

func TestTeachingPoints(t *testing.T) {
	cfg := &models.GradingConfig{
		TeachingBands: []models.TeachingBand{
			{MinRatio: 0.9, Points: 20},
			{MinRatio: 0.75, Points: 15},
			{MinRatio: 0.5, Points: 10},
		},
	}

	tests := []struct {
		name  string
		ratio float64
		want  float64
	}{
		{"top band", 0.95, 20},
		{"band boundary", 0.9, 20},
		{"middle band", 0.8, 15},
		{"bottom band", 0.5, 10},
		{"below all bands", 0.3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TeachingPoints(tt.ratio, cfg); got != tt.want {
				t.Errorf("TeachingPoints(%v) = %v, want %v", tt.ratio, got, tt.want)
			}
		})
	}
}

func TestResearchPoints(t *testing.T) {
	cfg := &models.GradingConfig{
		ResearchPointsMap: map[string]float64{"journal": 10, "conference": 5},
	}

	if got := ResearchPoints("journal", cfg); got != 10 {
		t.Errorf("ResearchPoints(journal) = %v, want 10", got)
	}
	if got := ResearchPoints("unknown", cfg); got != 0 {
		t.Errorf("ResearchPoints(unknown) = %v, want 0", got)
	}
}
