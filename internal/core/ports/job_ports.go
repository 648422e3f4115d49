package ports

import (
	"context"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
)

// JobRepository defines persistence operations for job postings.
type JobRepository interface {
	Create(ctx context.Context, j *domain.Job) (*domain.Job, error)
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	// List returns postings sorted by creation time descending, optionally
	// filtered by status.
	List(ctx context.Context, status domain.JobStatus) ([]*domain.Job, error)
	Update(ctx context.Context, j *domain.Job) error
	Delete(ctx context.Context, id string) error
}

// CreateJobInput carries the payload for a new posting.
type CreateJobInput struct {
	Title             string
	Company           string
	CompanyWebsiteURL string
	Description       string
	Location          string
	JobType           string
	Salary            *domain.SalaryRange
	PostedBy          string
}

// JobService defines use-case operations for job postings.
type JobService interface {
	ListJobs(ctx context.Context, status domain.JobStatus) ([]*domain.Job, error)
	GetJob(ctx context.Context, id string) (*domain.Job, error)
	CreateJob(ctx context.Context, input CreateJobInput) (*domain.Job, error)
	UpdateJobStatus(ctx context.Context, id, actorID, actorRole string, status domain.JobStatus) (*domain.Job, error)
	DeleteJob(ctx context.Context, id, actorID, actorRole string) error
	// Apply returns the external application URL for an open posting.
	Apply(ctx context.Context, id string) (string, error)
}
