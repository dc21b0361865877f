package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/submission"
	"github.com/justsurfingit/job-board/internal/wizard"
)

// WizardService starts wizard sessions and drives them on behalf of the
// handlers. Every call is scoped to the tenant that owns the session.
type WizardService struct {
	store    *wizard.Store
	jobs     *JobService
	apps     *ApplicationService
	tenants  *TenantService
	importer *ImportService
	logger   *zap.Logger
}

func NewWizardService(
	store *wizard.Store,
	jobs *JobService,
	apps *ApplicationService,
	tenants *TenantService,
	importer *ImportService,
	logger *zap.Logger,
) *WizardService {
	return &WizardService{
		store:    store,
		jobs:     jobs,
		apps:     apps,
		tenants:  tenants,
		importer: importer,
		logger:   logger,
	}
}

func (s *WizardService) StartJobCreate(ctx context.Context, tenantID uuid.UUID, actor string) (*wizard.Session, error) {
	if _, err := requireTenant(ctx, s.tenants.tenants, tenantID); err != nil {
		return nil, err
	}
	c := wizard.NewController(JobCreateModel, s.jobCreateSubmitter(tenantID))
	return s.open(wizard.KindJobCreate, tenantID, actor, 0, c), nil
}

// StartJobImport opens a create wizard pre-filled from an existing posting.
func (s *WizardService) StartJobImport(ctx context.Context, tenantID uuid.UUID, actor, rawHTML string) (*wizard.Session, error) {
	if _, err := requireTenant(ctx, s.tenants.tenants, tenantID); err != nil {
		return nil, err
	}
	d, err := s.importer.ExtractJobDraft(ctx, rawHTML)
	if err != nil {
		return nil, err
	}
	c := wizard.NewController(JobCreateModel, s.jobCreateSubmitter(tenantID), wizard.WithDraft(d))
	return s.open(wizard.KindJobCreate, tenantID, actor, 0, c), nil
}

// StartJobEdit opens an edit wizard seeded from the stored job with every
// step reachable.
func (s *WizardService) StartJobEdit(ctx context.Context, tenantID uuid.UUID, actor string, jobID uint) (*wizard.Session, error) {
	job, err := s.jobs.GetJob(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}
	c := wizard.NewController(JobEditModel, s.jobEditSubmitter(tenantID, job.ID),
		wizard.WithDraft(submission.DraftFromJob(job.Input())),
		wizard.WithAllVisited())
	return s.open(wizard.KindJobEdit, tenantID, actor, job.ID, c), nil
}

// StartApplication opens an application wizard for an open job. A nil
// userID starts the guest flow.
func (s *WizardService) StartApplication(ctx context.Context, tenantID uuid.UUID, jobID uint, userID *uint) (*wizard.Session, error) {
	job, err := s.jobs.GetJob(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusOpen {
		return nil, apperr.Conflict("This job is no longer accepting applications")
	}
	kind, owner := wizard.KindApplicationGuest, "guest"
	if userID != nil {
		if _, err := s.tenants.GetUser(ctx, tenantID, *userID); err != nil {
			return nil, err
		}
		kind, owner = wizard.KindApplicationMember, strconv.FormatUint(uint64(*userID), 10)
	}
	c := wizard.NewController(ApplicationModel(kind, job.ScreeningQuestions), s.applicationSubmitter(tenantID, job.ID, userID))
	return s.open(kind, tenantID, owner, job.ID, c), nil
}

func (s *WizardService) open(kind wizard.Kind, tenantID uuid.UUID, owner string, subject uint, c *wizard.Controller) *wizard.Session {
	sess := s.store.Open(kind, tenantID, owner, subject, c)
	s.logger.Info("Wizard started",
		zap.String("session_id", sess.ID.String()),
		zap.String("kind", string(kind)),
		zap.String("tenant_id", tenantID.String()),
		zap.Uint("subject", subject))
	return sess
}

func (s *WizardService) Get(tenantID, id uuid.UUID) (*wizard.Session, error) {
	sess, ok := s.store.Get(id, tenantID)
	if !ok {
		return nil, apperr.NotFound("Wizard not found or expired")
	}
	return sess, nil
}

// Discard drops a session, abandoning its draft.
func (s *WizardService) Discard(tenantID, id uuid.UUID) error {
	if _, err := s.Get(tenantID, id); err != nil {
		return err
	}
	s.store.Delete(id)
	return nil
}

// SubmitStep commits partial on the session's current step. The session
// ends once its submission succeeds.
func (s *WizardService) SubmitStep(ctx context.Context, tenantID, id uuid.UUID, step int, partial wizard.Draft) (wizard.State, error) {
	sess, err := s.Get(tenantID, id)
	if err != nil {
		return wizard.State{}, err
	}
	st, err := sess.Controller.SubmitStep(ctx, step, partial)
	s.after(sess, step, st, err)
	return st, err
}

// Save submits an edit wizard's draft from the current step.
func (s *WizardService) Save(ctx context.Context, tenantID, id uuid.UUID, step int, partial wizard.Draft) (wizard.State, error) {
	sess, err := s.Get(tenantID, id)
	if err != nil {
		return wizard.State{}, err
	}
	st, err := sess.Controller.Save(ctx, step, partial)
	s.after(sess, step, st, err)
	return st, err
}

func (s *WizardService) GoTo(tenantID, id uuid.UUID, step int) (wizard.State, bool, error) {
	sess, err := s.Get(tenantID, id)
	if err != nil {
		return wizard.State{}, false, err
	}
	st, moved := sess.Controller.GoTo(step)
	return st, moved, nil
}

func (s *WizardService) Back(tenantID, id uuid.UUID) (wizard.State, bool, error) {
	sess, err := s.Get(tenantID, id)
	if err != nil {
		return wizard.State{}, false, err
	}
	st, moved := sess.Controller.Back()
	return st, moved, nil
}

// Purge drops idle sessions. It is run by cron.
func (s *WizardService) Purge() {
	if n := s.store.Purge(); n > 0 {
		s.logger.Info("Purged idle wizards", zap.Int("count", n), zap.Int("remaining", s.store.Len()))
	}
}

func (s *WizardService) after(sess *wizard.Session, step int, st wizard.State, err error) {
	fields := []zap.Field{
		zap.String("session_id", sess.ID.String()),
		zap.String("kind", string(sess.Kind)),
		zap.Int("step", step),
	}
	switch {
	case err == nil && st.Phase == wizard.PhaseSucceeded:
		s.store.Delete(sess.ID)
		s.logger.Info("Wizard completed", append(fields, zap.String("resource_id", st.Completion.ResourceID))...)
	case err == nil:
		s.logger.Debug("Wizard step committed", append(fields, zap.Int("current_step", st.CurrentStep))...)
	default:
		s.logger.Debug("Wizard step rejected", append(fields, zap.Error(err))...)
	}
}

func (s *WizardService) jobCreateSubmitter(tenantID uuid.UUID) wizard.Submitter {
	return &submission.Adapter[models.JobInput]{
		Name:  string(wizard.KindJobCreate),
		Shape: submission.JobInputFrom,
		Send: func(ctx context.Context, in models.JobInput) (wizard.Completion, error) {
			job, err := s.jobs.CreateJob(ctx, tenantID, in)
			if err != nil {
				return wizard.Completion{}, err
			}
			return jobCompletion(job), nil
		},
		Fallback: submission.CreateJobFallback,
		Logger:   s.logger,
	}
}

func (s *WizardService) jobEditSubmitter(tenantID uuid.UUID, jobID uint) wizard.Submitter {
	return &submission.Adapter[models.JobInput]{
		Name:  string(wizard.KindJobEdit),
		Shape: submission.JobInputFrom,
		Send: func(ctx context.Context, in models.JobInput) (wizard.Completion, error) {
			job, err := s.jobs.UpdateJob(ctx, tenantID, jobID, in)
			if err != nil {
				return wizard.Completion{}, err
			}
			return jobCompletion(job), nil
		},
		Fallback: submission.UpdateJobFallback,
		Logger:   s.logger,
	}
}

func (s *WizardService) applicationSubmitter(tenantID uuid.UUID, jobID uint, userID *uint) wizard.Submitter {
	return &submission.Adapter[models.ApplicationSubmission]{
		Name: "application",
		Shape: func(d wizard.Draft) (models.ApplicationSubmission, error) {
			return submission.ApplicationFrom(d, jobID, userID)
		},
		Send: func(ctx context.Context, sub models.ApplicationSubmission) (wizard.Completion, error) {
			app, err := s.apps.Submit(ctx, tenantID, sub)
			if err != nil {
				return wizard.Completion{}, err
			}
			return wizard.Completion{
				ResourceID: strconv.FormatUint(uint64(app.ID), 10),
				Redirect:   fmt.Sprintf("/jobs/%d/applied", jobID),
			}, nil
		},
		Fallback: submission.ApplicationFallback,
		Logger:   s.logger,
	}
}

func jobCompletion(job *models.Job) wizard.Completion {
	return wizard.Completion{
		ResourceID: strconv.FormatUint(uint64(job.ID), 10),
		Redirect:   fmt.Sprintf("/jobs/%d", job.ID),
	}
}
