package dto

// UserListItem is one row of the administrative user listing
type UserListItem struct {
	ID               int64   `json:"id"`
	Email            string  `json:"email"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Role             string  `json:"role"`
	DepartmentID     *int64  `json:"departmentId,omitempty"`
	DepartmentName   *string `json:"departmentName,omitempty"`
	ManagedCollegeID *int64  `json:"managedCollegeId,omitempty"`
}

// UserListResponse is a paginated list of users
type UserListResponse struct {
	Users      []UserListItem `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}
