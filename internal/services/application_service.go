package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/storage"
	"github.com/justsurfingit/job-board/internal/validation"
)

// DefaultStage is used for jobs posted without a workflow.
const DefaultStage = "New"

type ApplicationService struct {
	apps    ApplicationRepository
	jobs    JobRepository
	tenants TenantRepository
	resumes storage.ResumeStore
	urlTTL  time.Duration
	logger  *zap.Logger
}

func NewApplicationService(
	apps ApplicationRepository,
	jobs JobRepository,
	tenants TenantRepository,
	resumes storage.ResumeStore,
	urlTTL time.Duration,
	logger *zap.Logger,
) *ApplicationService {
	return &ApplicationService{
		apps:    apps,
		jobs:    jobs,
		tenants: tenants,
		resumes: resumes,
		urlTTL:  urlTTL,
		logger:  logger,
	}
}

// Submit stores the resume and records the application at the first stage
// of the job's workflow.
func (s *ApplicationService) Submit(ctx context.Context, tenantID uuid.UUID, sub models.ApplicationSubmission) (*models.Application, error) {
	job, err := s.jobs.GetJob(ctx, tenantID, sub.JobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusOpen {
		return nil, apperr.Conflict("This job is no longer accepting applications")
	}

	app := &models.Application{
		TenantID:         tenantID,
		JobID:            job.ID,
		UserID:           sub.UserID,
		CoverLetter:      sub.CoverLetter,
		Source:           sub.Source,
		Stage:            firstStage(job),
		ScreeningAnswers: sub.ScreeningAnswers,
	}
	if sub.UserID != nil {
		user, err := s.tenants.GetUser(ctx, tenantID, *sub.UserID)
		if err != nil {
			return nil, err
		}
		app.FirstName, app.LastName, app.Email, app.Phone = user.FirstName, user.LastName, user.Email, user.Phone
	}
	if info := sub.CandidateInfo; info != nil {
		overlay(&app.FirstName, info.FirstName)
		overlay(&app.LastName, info.LastName)
		overlay(&app.Email, info.Email)
		overlay(&app.Phone, info.Phone)
		overlay(&app.LinkedInURL, info.LinkedInURL)
	}
	app.Email = strings.ToLower(app.Email)
	if app.Email == "" {
		return nil, apperr.Invalid("An email address is required")
	}
	if len(sub.Resume.Data) == 0 {
		return nil, apperr.Invalid("A resume is required")
	}

	contentType := sub.Resume.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = validation.DetectContentType(sub.Resume.Data)
	}
	key := storage.ResumeKey(tenantID, job.ID, sub.Resume.FileName)
	if err := s.resumes.Put(ctx, key, contentType, sub.Resume.Data); err != nil {
		return nil, apperr.Internal("Failed to store resume", err)
	}
	app.ResumeKey = key
	app.ResumeFileName = sub.Resume.FileName
	app.ResumeContentType = contentType

	ev := &models.ApplicationEvent{
		EventType: models.EventSubmitted,
		Actor:     app.Email,
		Details:   fmt.Sprintf("Applied to %s via %s", job.Title, app.Source),
	}
	if err := s.apps.CreateApplication(ctx, app, ev); err != nil {
		if derr := s.resumes.Delete(ctx, key); derr != nil {
			s.logger.Warn("Orphaned resume", zap.String("key", key), zap.Error(derr))
		}
		return nil, fmt.Errorf("create application: %w", err)
	}
	s.logger.Info("Application submitted",
		zap.String("tenant_id", tenantID.String()),
		zap.Uint("job_id", job.ID),
		zap.Uint("application_id", app.ID),
		zap.Bool("member", sub.UserID != nil))
	return app, nil
}

// List returns the applications to one of the tenant's jobs.
func (s *ApplicationService) List(ctx context.Context, tenantID uuid.UUID, jobID uint) ([]models.Application, error) {
	if _, err := s.jobs.GetJob(ctx, tenantID, jobID); err != nil {
		return nil, err
	}
	return s.apps.ListApplications(ctx, tenantID, jobID)
}

func (s *ApplicationService) Get(ctx context.Context, tenantID uuid.UUID, id uint) (*models.Application, error) {
	return s.apps.GetApplication(ctx, tenantID, id)
}

func (s *ApplicationService) AddNote(ctx context.Context, tenantID uuid.UUID, id uint, author, body string) (*models.ApplicationNote, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperr.Invalid("Note cannot be empty")
	}
	app, err := s.apps.GetApplication(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	note := &models.ApplicationNote{ApplicationID: app.ID, Author: author, Body: body}
	ev := &models.ApplicationEvent{ApplicationID: app.ID, EventType: models.EventNoteAdded, Actor: author, Details: "Note added"}
	if err := s.apps.AddNote(ctx, note, ev); err != nil {
		return nil, fmt.Errorf("add note: %w", err)
	}
	return note, nil
}

func (s *ApplicationService) Notes(ctx context.Context, tenantID uuid.UUID, id uint) ([]models.ApplicationNote, error) {
	app, err := s.apps.GetApplication(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return s.apps.ListNotes(ctx, app.ID)
}

// MoveToStage moves an application along its job's workflow.
func (s *ApplicationService) MoveToStage(ctx context.Context, tenantID uuid.UUID, id uint, actor, stage string) (*models.Application, error) {
	app, err := s.apps.GetApplication(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	stage = strings.TrimSpace(stage)
	if !slices.Contains(workflowOf(&app.Job), stage) {
		return nil, apperr.Invalid(fmt.Sprintf("Unknown stage %q for this job", stage))
	}
	if app.Stage == stage {
		return nil, apperr.Conflict(fmt.Sprintf("Application is already in stage %q", stage))
	}
	from := app.Stage
	app.Stage = stage
	ev := &models.ApplicationEvent{
		ApplicationID: app.ID,
		EventType:     models.EventStageChanged,
		Actor:         actor,
		Details:       fmt.Sprintf("Moved from %s to %s", from, stage),
	}
	if err := s.apps.UpdateStage(ctx, app, ev); err != nil {
		return nil, fmt.Errorf("update stage: %w", err)
	}
	s.logger.Info("Application stage changed",
		zap.Uint("application_id", app.ID),
		zap.String("from", from),
		zap.String("to", stage))
	return app, nil
}

type EvaluationInput struct {
	Reviewer       string
	Score          int
	Recommendation string
	Comments       string
}

func (s *ApplicationService) AddEvaluation(ctx context.Context, tenantID uuid.UUID, id uint, in EvaluationInput) (*models.Evaluation, error) {
	if in.Score < 1 || in.Score > 5 {
		return nil, apperr.Invalid("Score must be between 1 and 5")
	}
	app, err := s.apps.GetApplication(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	eval := &models.Evaluation{
		ApplicationID:  app.ID,
		Reviewer:       in.Reviewer,
		Score:          in.Score,
		Recommendation: in.Recommendation,
		Comments:       strings.TrimSpace(in.Comments),
	}
	ev := &models.ApplicationEvent{
		ApplicationID: app.ID,
		EventType:     models.EventEvaluated,
		Actor:         in.Reviewer,
		Details:       fmt.Sprintf("Scored %d/5", in.Score),
	}
	if err := s.apps.AddEvaluation(ctx, eval, ev); err != nil {
		return nil, fmt.Errorf("add evaluation: %w", err)
	}
	return eval, nil
}

func (s *ApplicationService) Evaluations(ctx context.Context, tenantID uuid.UUID, id uint) ([]models.Evaluation, error) {
	app, err := s.apps.GetApplication(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return s.apps.ListEvaluations(ctx, app.ID)
}

func (s *ApplicationService) Events(ctx context.Context, tenantID uuid.UUID, id uint) ([]models.ApplicationEvent, error) {
	app, err := s.apps.GetApplication(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return s.apps.ListEvents(ctx, app.ID)
}

// ResumeURL returns a short-lived download link for the application's resume.
func (s *ApplicationService) ResumeURL(ctx context.Context, tenantID uuid.UUID, id uint) (string, error) {
	app, err := s.apps.GetApplication(ctx, tenantID, id)
	if err != nil {
		return "", err
	}
	if app.ResumeKey == "" {
		return "", apperr.NotFound("No resume on file")
	}
	u, err := s.resumes.URL(ctx, app.ResumeKey, s.urlTTL)
	if err != nil {
		return "", apperr.Internal("Failed to create resume link", err)
	}
	return u, nil
}

func workflowOf(job *models.Job) []string {
	if len(job.Workflow) == 0 {
		return []string{DefaultStage}
	}
	return job.Workflow
}

func firstStage(job *models.Job) string {
	return workflowOf(job)[0]
}

func overlay(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
