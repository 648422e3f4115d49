package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
	"github.com/kgconnect/alumni-portal/internal/core/ports"
)

type stubJobRepo struct {
	byID    map[string]*domain.Job
	deleted []string
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{byID: make(map[string]*domain.Job)}
}

func (r *stubJobRepo) Create(_ context.Context, j *domain.Job) (*domain.Job, error) {
	clone := *j
	clone.ID = "j1"
	r.byID[clone.ID] = &clone
	return &clone, nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	j, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	clone := *j
	return &clone, nil
}

func (r *stubJobRepo) List(_ context.Context, status domain.JobStatus) ([]*domain.Job, error) {
	var out []*domain.Job
	for _, j := range r.byID {
		if status == "" || j.Status == status {
			clone := *j
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubJobRepo) Update(_ context.Context, j *domain.Job) error {
	if _, ok := r.byID[j.ID]; !ok {
		return domain.ErrJobNotFound
	}
	clone := *j
	r.byID[j.ID] = &clone
	return nil
}

func (r *stubJobRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func TestJobService_CreateJob_Defaults(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, zerolog.Nop())

	job, err := svc.CreateJob(context.Background(), ports.CreateJobInput{
		Title:             "Backend Engineer",
		Company:           "Zoho",
		CompanyWebsiteURL: "https://careers.zoho.com",
		Description:       "Go services",
		PostedBy:          "alum1",
	})
	if err != nil {
		t.Fatalf("CreateJob returned error: %v", err)
	}
	if job.Status != domain.JobOpen {
		t.Fatalf("new posting must be open, got %s", job.Status)
	}
	if job.JobType != "full-time" {
		t.Fatalf("expected full-time default, got %q", job.JobType)
	}
}

func TestJobService_Apply(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, zerolog.Nop())

	job, _ := svc.CreateJob(context.Background(), ports.CreateJobInput{
		Title: "SRE", Company: "Freshworks", CompanyWebsiteURL: "https://example.com/careers",
		Description: "on-call", PostedBy: "alum1",
	})

	url, err := svc.Apply(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if url != "https://example.com/careers" {
		t.Fatalf("unexpected application url: %q", url)
	}
}

func TestJobService_Apply_Closed(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, zerolog.Nop())

	job, _ := svc.CreateJob(context.Background(), ports.CreateJobInput{
		Title: "SRE", Company: "Freshworks", CompanyWebsiteURL: "https://example.com/careers",
		Description: "on-call", PostedBy: "alum1",
	})
	if _, err := svc.UpdateJobStatus(context.Background(), job.ID, "alum1", domain.RoleAlumni, domain.JobClosed); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	if _, err := svc.Apply(context.Background(), job.ID); err != domain.ErrJobClosed {
		t.Fatalf("expected ErrJobClosed, got %v", err)
	}
}

func TestJobService_UpdateJobStatus_Forbidden(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, zerolog.Nop())

	job, _ := svc.CreateJob(context.Background(), ports.CreateJobInput{
		Title: "QA", Company: "Zoho", CompanyWebsiteURL: "https://example.com",
		Description: "testing", PostedBy: "alum1",
	})

	if _, err := svc.UpdateJobStatus(context.Background(), job.ID, "someone-else", domain.RoleAlumni, domain.JobClosed); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// An admin may act on any posting.
	if _, err := svc.UpdateJobStatus(context.Background(), job.ID, "admin1", domain.RoleAdmin, domain.JobClosed); err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
}

func TestJobService_UpdateJobStatus_Invalid(t *testing.T) {
	svc := NewJobService(newStubJobRepo(), zerolog.Nop())

	if _, err := svc.UpdateJobStatus(context.Background(), "j1", "alum1", domain.RoleAlumni, "paused"); err != domain.ErrInvalidJobStatus {
		t.Fatalf("expected ErrInvalidJobStatus, got %v", err)
	}
}

func TestJobService_DeleteJob_Forbidden(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, zerolog.Nop())

	job, _ := svc.CreateJob(context.Background(), ports.CreateJobInput{
		Title: "QA", Company: "Zoho", CompanyWebsiteURL: "https://example.com",
		Description: "testing", PostedBy: "alum1",
	})

	if err := svc.DeleteJob(context.Background(), job.ID, "stranger", domain.RoleStudent); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.DeleteJob(context.Background(), job.ID, "alum1", domain.RoleAlumni); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Fatalf("expected delete to reach the repository")
	}
}
