package models

import "time"

// AppraisalCycle represents a bounded appraisal period.
// At most one cycle is active at any time, enforced by the activation
// operation which deactivates all cycles before activating the target.
type AppraisalCycle struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" example:"2025/2026"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
