package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID               int64     `json:"id" db:"id" example:"1"`
	Email            string    `json:"email" db:"email" example:"hod.cs@university.edu"`
	Password         string    `json:"-" db:"password"` // Hashed, excluded from JSON
	FirstName        string    `json:"firstName" db:"first_name" example:"Amina"`
	LastName         string    `json:"lastName" db:"last_name" example:"Hassan"`
	Role             RoleType  `json:"role" db:"role" example:"HOD"`
	DepartmentID     *int64    `json:"departmentId,omitempty" db:"department_id"`      // Affiliation, nullable for ADMIN/DEAN
	ManagedCollegeID *int64    `json:"managedCollegeId,omitempty" db:"managed_college_id"` // Set only for DEAN
	IsActive         bool      `json:"isActive" db:"is_active" example:"true"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`

	Department *Department `json:"department,omitempty"` // Relation, no db tag
}

// Affiliation is the read-only organizational view of a user that the
// evaluator guard reasons over. CollegeID is derived from the department.
type Affiliation struct {
	UserID           int64    `json:"userId"`
	Role             RoleType `json:"role"`
	DepartmentID     *int64   `json:"departmentId,omitempty"`
	CollegeID        *int64   `json:"collegeId,omitempty"`
	ManagedCollegeID *int64   `json:"managedCollegeId,omitempty"`
}
