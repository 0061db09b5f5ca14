package model

// JobPosting represents an open position on the job board
type JobPosting struct {
	Base
	Title       string  `json:"title" db:"title"`
	Company     string  `json:"company" db:"company"`
	Location    *string `json:"location,omitempty" db:"location"`
	Description string  `json:"description" db:"description"`
}
