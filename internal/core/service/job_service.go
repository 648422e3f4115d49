package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
	"github.com/kgconnect/alumni-portal/internal/core/ports"
)

type jobService struct {
	repo ports.JobRepository
	log  zerolog.Logger
}

// NewJobService returns a JobService implementation.
func NewJobService(repo ports.JobRepository, log zerolog.Logger) ports.JobService {
	return &jobService{repo: repo, log: log}
}

func (s *jobService) ListJobs(ctx context.Context, status domain.JobStatus) ([]*domain.Job, error) {
	return s.repo.List(ctx, status)
}

func (s *jobService) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *jobService) CreateJob(ctx context.Context, input ports.CreateJobInput) (*domain.Job, error) {
	now := time.Now().UTC()
	job := &domain.Job{
		Title:             input.Title,
		Company:           input.Company,
		CompanyWebsiteURL: input.CompanyWebsiteURL,
		Description:       input.Description,
		Location:          input.Location,
		JobType:           input.JobType,
		Salary:            input.Salary,
		PostedBy:          input.PostedBy,
		Status:            domain.JobOpen,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if job.JobType == "" {
		job.JobType = "full-time"
	}

	created, err := s.repo.Create(ctx, job)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create job")
		return nil, err
	}

	s.log.Info().Str("job_id", created.ID).Str("company", created.Company).Msg("job posted")
	return created, nil
}

func (s *jobService) UpdateJobStatus(ctx context.Context, id, actorID, actorRole string, status domain.JobStatus) (*domain.Job, error) {
	if status != domain.JobOpen && status != domain.JobClosed {
		return nil, domain.ErrInvalidJobStatus
	}

	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.PostedBy != actorID && actorRole != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	job.Status = status
	job.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *jobService) DeleteJob(ctx context.Context, id, actorID, actorRole string) error {
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if job.PostedBy != actorID && actorRole != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// Apply resolves the external application URL for an open posting. The portal
// never collects applications itself.
func (s *jobService) Apply(ctx context.Context, id string) (string, error) {
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if job.Status != domain.JobOpen {
		return "", domain.ErrJobClosed
	}
	return job.CompanyWebsiteURL, nil
}
