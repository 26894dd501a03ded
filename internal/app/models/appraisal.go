package models

import "time"

// AppraisalStatus is the closed set of workflow states an appraisal moves
// through. The success path is new -> sent -> complete; an appeal sends a
// sent appraisal back to returned, from which the evaluator may send again.
type AppraisalStatus string

const (
	StatusNew      AppraisalStatus = "new"
	StatusSent     AppraisalStatus = "sent"
	StatusReturned AppraisalStatus = "returned"
	StatusComplete AppraisalStatus = "complete"
)

// Valid reports whether the status is a member of the closed set
func (s AppraisalStatus) Valid() bool {
	switch s {
	case StatusNew, StatusSent, StatusReturned, StatusComplete:
		return true
	}
	return false
}

// CanSend reports whether an evaluator send is allowed from this status.
// A re-send while already sent is permitted (the evaluator may revise and
// resubmit); only a completed appraisal is closed to further sends.
func (s AppraisalStatus) CanSend() bool {
	return s == StatusNew || s == StatusReturned || s == StatusSent
}

// CanApprove reports whether the subject may approve from this status
func (s AppraisalStatus) CanApprove() bool {
	return s == StatusSent
}

// CanAppeal reports whether the subject may appeal from this status
func (s AppraisalStatus) CanAppeal() bool {
	return s == StatusSent
}

// Terminal reports whether the status admits no further transitions
func (s AppraisalStatus) Terminal() bool {
	return s == StatusComplete
}

// CategoryScores are the four weighted category point values carried on an
// appraisal once an evaluation has been aggregated.
type CategoryScores struct {
	ResearchPts          float64 `json:"researchPts"`
	UniversityServicePts float64 `json:"universityServicePts"`
	CommunityServicePts  float64 `json:"communityServicePts"`
	TeachingQualityPts   float64 `json:"teachingQualityPts"`
}

// Appraisal is the evaluable record for one faculty member in one cycle.
// The (FacultyID, CycleID) pair is unique.
type Appraisal struct {
	ID         int64           `json:"id"`
	FacultyID  int64           `json:"facultyId"`
	CycleID    int64           `json:"cycleId"`
	Status     AppraisalStatus `json:"status"`
	Scores     CategoryScores  `json:"scores"`
	TotalScore float64         `json:"totalScore"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`

	Faculty *User           `json:"faculty,omitempty"` // Relation, no db tag
	Cycle   *AppraisalCycle `json:"cycle,omitempty"`
}
