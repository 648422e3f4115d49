package domain

import (
	"errors"
	"time"
)

// JobStatus represents whether a posting still accepts applicants.
type JobStatus string

const (
	JobOpen   JobStatus = "open"
	JobClosed JobStatus = "closed"
)

var ErrJobNotFound = errors.New("job not found")
var ErrInvalidJobStatus = errors.New("invalid job status")
var ErrJobClosed = errors.New("job no longer accepts applications")

// SalaryRange is an optional advertised salary band.
type SalaryRange struct {
	Min      int    `json:"min,omitempty"`
	Max      int    `json:"max,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// Job is an opening posted by an alumnus. Applications happen off-platform:
// students are redirected to the company website.
type Job struct {
	ID                string       `json:"id"`
	Title             string       `json:"title"`
	Company           string       `json:"company"`
	CompanyWebsiteURL string       `json:"company_website_url"`
	Description       string       `json:"description"`
	Location          string       `json:"location"`
	JobType           string       `json:"job_type"`
	Salary            *SalaryRange `json:"salary,omitempty"`
	PostedBy          string       `json:"posted_by"`
	Status            JobStatus    `json:"status"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}
