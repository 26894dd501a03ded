package dto

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"hod.cs@university.edu"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// TokenResponse carries an issued access token
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn" example:"3600"`
}

// UserProfile is the authenticated user's own view of their account
type UserProfile struct {
	ID               int64   `json:"id"`
	Email            string  `json:"email"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Role             string  `json:"role" example:"HOD"`
	DepartmentID     *int64  `json:"departmentId,omitempty"`
	DepartmentName   *string `json:"departmentName,omitempty"`
	CollegeID        *int64  `json:"collegeId,omitempty"`
	ManagedCollegeID *int64  `json:"managedCollegeId,omitempty"`
}
