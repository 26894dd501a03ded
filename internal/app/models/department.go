package models

// Department represents a department inside a college.
// The college reference may be reassigned; it is ownership by reference.
type Department struct {
	ID        int64    `json:"id"`
	CollegeID int64    `json:"college_id"`
	Name      string   `json:"name"`
	Code      string   `json:"code"`
	College   *College `json:"college,omitempty"`
}
