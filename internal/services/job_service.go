package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/models"
)

type JobService struct {
	jobs    JobRepository
	tenants TenantRepository
	logger  *zap.Logger
}

func NewJobService(jobs JobRepository, tenants TenantRepository, logger *zap.Logger) *JobService {
	return &JobService{jobs: jobs, tenants: tenants, logger: logger}
}

// CreateJob opens a job after checking the tenant's quota and that no other
// open job already uses the title.
func (s *JobService) CreateJob(ctx context.Context, tenantID uuid.UUID, in models.JobInput) (*models.Job, error) {
	tenant, err := requireTenant(ctx, s.tenants, tenantID)
	if err != nil {
		return nil, err
	}
	open, err := s.jobs.CountOpenJobs(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("count open jobs: %w", err)
	}
	if open >= int64(tenant.JobQuota) {
		return nil, apperr.QuotaExceeded(fmt.Sprintf("Job quota reached (%d open jobs). Close a job to post a new one.", tenant.JobQuota))
	}
	if err := s.checkTitle(ctx, tenantID, in.Title, 0); err != nil {
		return nil, err
	}

	job := &models.Job{TenantID: tenantID, Status: models.JobStatusOpen}
	job.Apply(in)
	if err := s.jobs.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	s.logger.Info("Job created",
		zap.String("tenant_id", tenantID.String()),
		zap.Uint("job_id", job.ID),
		zap.String("title", job.Title))
	return job, nil
}

func (s *JobService) UpdateJob(ctx context.Context, tenantID uuid.UUID, id uint, in models.JobInput) (*models.Job, error) {
	job, err := s.jobs.GetJob(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if job.Status == models.JobStatusOpen && !strings.EqualFold(strings.TrimSpace(job.Title), strings.TrimSpace(in.Title)) {
		if err := s.checkTitle(ctx, tenantID, in.Title, job.ID); err != nil {
			return nil, err
		}
	}
	job.Apply(in)
	if err := s.jobs.UpdateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("update job %d: %w", id, err)
	}
	s.logger.Info("Job updated", zap.String("tenant_id", tenantID.String()), zap.Uint("job_id", job.ID))
	return job, nil
}

func (s *JobService) GetJob(ctx context.Context, tenantID uuid.UUID, id uint) (*models.Job, error) {
	return s.jobs.GetJob(ctx, tenantID, id)
}

func (s *JobService) ListJobs(ctx context.Context, tenantID uuid.UUID, status string) ([]models.Job, error) {
	status = strings.ToUpper(status)
	if status != "" && status != models.JobStatusOpen && status != models.JobStatusClosed {
		return nil, apperr.Invalid(fmt.Sprintf("Unknown job status %q", status))
	}
	return s.jobs.ListJobs(ctx, tenantID, status)
}

// CloseJob stops a job from taking applications and frees its quota slot.
func (s *JobService) CloseJob(ctx context.Context, tenantID uuid.UUID, id uint) (*models.Job, error) {
	job, err := s.jobs.GetJob(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if job.Status == models.JobStatusClosed {
		return nil, apperr.Conflict("Job is already closed")
	}
	job.Status = models.JobStatusClosed
	if err := s.jobs.UpdateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("close job %d: %w", id, err)
	}
	s.logger.Info("Job closed", zap.String("tenant_id", tenantID.String()), zap.Uint("job_id", job.ID))
	return job, nil
}

func (s *JobService) checkTitle(ctx context.Context, tenantID uuid.UUID, title string, excludeID uint) error {
	taken, err := s.jobs.OpenTitleExists(ctx, tenantID, title, excludeID)
	if err != nil {
		return fmt.Errorf("check title: %w", err)
	}
	if taken {
		return apperr.Conflict("Duplicate title")
	}
	return nil
}
