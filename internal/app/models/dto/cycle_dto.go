package dto

import "time"

// CreateCycleRequest creates a new appraisal cycle (inactive by default)
type CreateCycleRequest struct {
	Name      string    `json:"name" binding:"required" example:"2025/2026"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// CycleResponse is the API view of an appraisal cycle
type CycleResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	IsActive  bool      `json:"isActive"`
}
