// Package database connects to postgres and implements the service
// repositories on top of gorm.
package database

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/models"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// found maps gorm's missing-row error to a NotFound with msg.
func found(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(msg)
	}
	return err
}

func duplicate(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict(msg)
	}
	return err
}

// Tenants and users.

func (r *Repository) CreateTenant(ctx context.Context, t *models.Tenant) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return duplicate(r.db.WithContext(ctx).Create(t).Error, "A workspace with this slug already exists")
}

func (r *Repository) GetTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	var t models.Tenant
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, found(err, "Workspace not found")
	}
	return &t, nil
}

func (r *Repository) CreateUser(ctx context.Context, u *models.User) error {
	return duplicate(r.db.WithContext(ctx).Create(u).Error, "A user with this email already exists")
}

func (r *Repository) GetUser(ctx context.Context, tenantID uuid.UUID, id uint) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&u, id).Error
	if err != nil {
		return nil, found(err, "User not found")
	}
	return &u, nil
}

func (r *Repository) ListUsers(ctx context.Context, tenantID uuid.UUID) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Order("id").Find(&users).Error
	return users, err
}

// Jobs.

func (r *Repository) CreateJob(ctx context.Context, j *models.Job) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *Repository) UpdateJob(ctx context.Context, j *models.Job) error {
	return r.db.WithContext(ctx).Save(j).Error
}

func (r *Repository) GetJob(ctx context.Context, tenantID uuid.UUID, id uint) (*models.Job, error) {
	var j models.Job
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&j, id).Error
	if err != nil {
		return nil, found(err, "Job not found")
	}
	return &j, nil
}

// ListJobs returns the tenant's jobs, newest first. An empty status lists all.
func (r *Repository) ListJobs(ctx context.Context, tenantID uuid.UUID, status string) ([]models.Job, error) {
	q := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var jobs []models.Job
	err := q.Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (r *Repository) CountOpenJobs(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("tenant_id = ? AND status = ?", tenantID, models.JobStatusOpen).
		Count(&n).Error
	return n, err
}

// OpenTitleExists reports whether another open job of the tenant has the
// same title, ignoring case. excludeID skips the job being edited.
func (r *Repository) OpenTitleExists(ctx context.Context, tenantID uuid.UUID, title string, excludeID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("tenant_id = ? AND status = ? AND LOWER(title) = ? AND id <> ?",
			tenantID, models.JobStatusOpen, strings.ToLower(strings.TrimSpace(title)), excludeID).
		Count(&n).Error
	return n > 0, err
}

// Applications.

// CreateApplication stores the application and its first event atomically.
func (r *Repository) CreateApplication(ctx context.Context, a *models.Application, ev *models.ApplicationEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(a).Error; err != nil {
			return err
		}
		ev.ApplicationID = a.ID
		return tx.Create(ev).Error
	})
}

func (r *Repository) GetApplication(ctx context.Context, tenantID uuid.UUID, id uint) (*models.Application, error) {
	var a models.Application
	err := r.db.WithContext(ctx).Preload("Job").Where("tenant_id = ?", tenantID).First(&a, id).Error
	if err != nil {
		return nil, found(err, "Application not found")
	}
	return &a, nil
}

func (r *Repository) ListApplications(ctx context.Context, tenantID uuid.UUID, jobID uint) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND job_id = ?", tenantID, jobID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

// FindApplicationsByEmail searches every tenant; mail arrives without one.
func (r *Repository) FindApplicationsByEmail(ctx context.Context, email string) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).Preload("Job").
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *Repository) UpdateStage(ctx context.Context, a *models.Application, ev *models.ApplicationEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(a).Update("stage", a.Stage).Error; err != nil {
			return err
		}
		return tx.Create(ev).Error
	})
}

func (r *Repository) AddNote(ctx context.Context, n *models.ApplicationNote, ev *models.ApplicationEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(n).Error; err != nil {
			return err
		}
		return tx.Create(ev).Error
	})
}

func (r *Repository) ListNotes(ctx context.Context, applicationID uint) ([]models.ApplicationNote, error) {
	var notes []models.ApplicationNote
	err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).Order("created_at").Find(&notes).Error
	return notes, err
}

func (r *Repository) AddEvaluation(ctx context.Context, e *models.Evaluation, ev *models.ApplicationEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		return tx.Create(ev).Error
	})
}

func (r *Repository) ListEvaluations(ctx context.Context, applicationID uint) ([]models.Evaluation, error) {
	var evals []models.Evaluation
	err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).Order("created_at").Find(&evals).Error
	return evals, err
}

func (r *Repository) LogEvent(ctx context.Context, ev *models.ApplicationEvent) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *Repository) ListEvents(ctx context.Context, applicationID uint) ([]models.ApplicationEvent, error) {
	var events []models.ApplicationEvent
	err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).Order("created_at").Find(&events).Error
	return events, err
}

// Mailbox state.

// Cursor returns the stored history ID of mailbox, 0 when none is stored.
func (r *Repository) Cursor(ctx context.Context, mailbox string) (uint64, error) {
	var c models.MailboxCursor
	err := r.db.WithContext(ctx).Where("mailbox = ?", mailbox).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return c.LastHistoryID, err
}

func (r *Repository) SaveCursor(ctx context.Context, mailbox string, historyID uint64) error {
	c := models.MailboxCursor{Mailbox: mailbox, LastHistoryID: historyID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "mailbox"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_history_id", "updated_at"}),
	}).Create(&c).Error
}

func (r *Repository) IsProcessed(ctx context.Context, messageID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.ProcessedEmail{}).Where("id = ?", messageID).Count(&n).Error
	return n > 0, err
}

func (r *Repository) MarkProcessed(ctx context.Context, messageID string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ProcessedEmail{ID: messageID}).Error
}
