// Package scoring aggregates an evaluation's category points into the
// appraisal total. Functions here are pure; persistence and validation of
// the inputs belong to the callers.
package scoring

import (
	"github.com/acadeval/appraisehub/internal/app/models"
)

// ComputeTotal sums the four category point fields with the capabilities
// subtotal from the rubric payload. A missing capabilities section counts
// as 0. Category fields are taken as already validated non-negative by the
// evaluation entry path.
func ComputeTotal(ev *models.Evaluation) float64 {
	return ev.ResearchPts +
		ev.UniversityServicePts +
		ev.CommunityServicePts +
		ev.TeachingQualityPts +
		ev.Rubric.CapabilitiesTotal()
}

// CategoryScores extracts the four category points from an evaluation in the
// shape the appraisal row stores them.
func CategoryScores(ev *models.Evaluation) models.CategoryScores {
	return models.CategoryScores{
		ResearchPts:          ev.ResearchPts,
		UniversityServicePts: ev.UniversityServicePts,
		CommunityServicePts:  ev.CommunityServicePts,
		TeachingQualityPts:   ev.TeachingQualityPts,
	}
}

// ServicePoints scores a count of service items against the configured
// per-item rate, capped at the configured maximum.
func ServicePoints(itemCount int, cfg *models.GradingConfig) float64 {
	pts := float64(itemCount) * cfg.ServicePointsPerItem
	if pts > cfg.ServiceMaxPoints {
		return cfg.ServiceMaxPoints
	}
	return pts
}

// TeachingPoints maps a teaching-quality ratio onto the configured bands,
// taking the highest band whose threshold the ratio meets. No matching band
// scores 0.
func TeachingPoints(ratio float64, cfg *models.GradingConfig) float64 {
	best := 0.0
	matched := false
	for _, band := range cfg.TeachingBands {
		if ratio >= band.MinRatio {
			if !matched || band.Points > best {
				best = band.Points
				matched = true
			}
		}
	}
	return best
}

// ResearchPoints looks up a research output kind in the configured points
// map. Unknown kinds score 0.
func ResearchPoints(kind string, cfg *models.GradingConfig) float64 {
	return cfg.ResearchPointsMap[kind]
}
