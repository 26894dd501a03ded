package models

// College represents a top-level organizational unit
type College struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}
