package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/justsurfingit/job-board/internal/models"
)

// Repositories return *apperr.Error values for missing rows and unique
// violations, so services pass those through unchanged.

type TenantRepository interface {
	CreateTenant(ctx context.Context, t *models.Tenant) error
	GetTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, tenantID uuid.UUID, id uint) (*models.User, error)
	ListUsers(ctx context.Context, tenantID uuid.UUID) ([]models.User, error)
}

type JobRepository interface {
	CreateJob(ctx context.Context, j *models.Job) error
	UpdateJob(ctx context.Context, j *models.Job) error
	GetJob(ctx context.Context, tenantID uuid.UUID, id uint) (*models.Job, error)
	ListJobs(ctx context.Context, tenantID uuid.UUID, status string) ([]models.Job, error)
	CountOpenJobs(ctx context.Context, tenantID uuid.UUID) (int64, error)
	OpenTitleExists(ctx context.Context, tenantID uuid.UUID, title string, excludeID uint) (bool, error)
}

type ApplicationRepository interface {
	CreateApplication(ctx context.Context, a *models.Application, ev *models.ApplicationEvent) error
	GetApplication(ctx context.Context, tenantID uuid.UUID, id uint) (*models.Application, error)
	ListApplications(ctx context.Context, tenantID uuid.UUID, jobID uint) ([]models.Application, error)
	FindApplicationsByEmail(ctx context.Context, email string) ([]models.Application, error)
	UpdateStage(ctx context.Context, a *models.Application, ev *models.ApplicationEvent) error
	AddNote(ctx context.Context, n *models.ApplicationNote, ev *models.ApplicationEvent) error
	ListNotes(ctx context.Context, applicationID uint) ([]models.ApplicationNote, error)
	AddEvaluation(ctx context.Context, e *models.Evaluation, ev *models.ApplicationEvent) error
	ListEvaluations(ctx context.Context, applicationID uint) ([]models.Evaluation, error)
	LogEvent(ctx context.Context, ev *models.ApplicationEvent) error
	ListEvents(ctx context.Context, applicationID uint) ([]models.ApplicationEvent, error)
}

type MailboxRepository interface {
	Cursor(ctx context.Context, mailbox string) (uint64, error)
	SaveCursor(ctx context.Context, mailbox string, historyID uint64) error
	IsProcessed(ctx context.Context, messageID string) (bool, error)
	MarkProcessed(ctx context.Context, messageID string) error
}
