package dto

// CreateCollegeRequest creates a new college
type CreateCollegeRequest struct {
	Name string `json:"name" binding:"required" example:"College of Science"`
	Code string `json:"code" binding:"required" example:"SCI"`
}

// CreateDepartmentRequest creates a new department under a college
type CreateDepartmentRequest struct {
	CollegeID int64  `json:"collegeId" binding:"required"`
	Name      string `json:"name" binding:"required" example:"Computer Science"`
	Code      string `json:"code" binding:"required" example:"CS"`
}

// ReassignDepartmentRequest moves a department to another college
type ReassignDepartmentRequest struct {
	CollegeID int64 `json:"collegeId" binding:"required"`
}

// CollegeResponse is the API view of a college
type CollegeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// DepartmentResponse is the API view of a department
type DepartmentResponse struct {
	ID        int64  `json:"id"`
	CollegeID int64  `json:"collegeId"`
	Name      string `json:"name"`
	Code      string `json:"code"`
}
