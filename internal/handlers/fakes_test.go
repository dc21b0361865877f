package handlers

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/models"
)

// memRepo is an in-memory stand-in for database.Repository.
type memRepo struct {
	mu      sync.Mutex
	tenants map[uuid.UUID]*models.Tenant
	users   map[uint]*models.User
	jobs    map[uint]*models.Job
	apps    map[uint]*models.Application
	events  []models.ApplicationEvent
	notes   []models.ApplicationNote
	evals   []models.Evaluation
	nextID  uint
}

func newMemRepo() *memRepo {
	return &memRepo{
		tenants: map[uuid.UUID]*models.Tenant{},
		users:   map[uint]*models.User{},
		jobs:    map[uint]*models.Job{},
		apps:    map[uint]*models.Application{},
	}
}

func (r *memRepo) id() uint {
	r.nextID++
	return r.nextID
}

func (r *memRepo) CreateTenant(_ context.Context, t *models.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.tenants {
		if other.Slug == t.Slug {
			return apperr.Conflict("Workspace slug is taken")
		}
	}
	cp := *t
	r.tenants[t.ID] = &cp
	return nil
}

func (r *memRepo) GetTenant(_ context.Context, id uuid.UUID) (*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tenants[id]
	if !ok {
		return nil, apperr.NotFound("Workspace not found")
	}
	cp := *t
	return &cp, nil
}

func (r *memRepo) CreateUser(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = r.id()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memRepo) GetUser(_ context.Context, tenantID uuid.UUID, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.TenantID != tenantID {
		return nil, apperr.NotFound("User not found")
	}
	cp := *u
	return &cp, nil
}

func (r *memRepo) ListUsers(_ context.Context, tenantID uuid.UUID) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.User{}
	for _, u := range r.users {
		if u.TenantID == tenantID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *memRepo) CreateJob(_ context.Context, j *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j.ID = r.id()
	cp := *j
	r.jobs[j.ID] = &cp
	return nil
}

func (r *memRepo) UpdateJob(_ context.Context, j *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *j
	r.jobs[j.ID] = &cp
	return nil
}

func (r *memRepo) GetJob(_ context.Context, tenantID uuid.UUID, id uint) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok || j.TenantID != tenantID {
		return nil, apperr.NotFound("Job not found")
	}
	cp := *j
	return &cp, nil
}

func (r *memRepo) ListJobs(_ context.Context, tenantID uuid.UUID, status string) ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Job{}
	for _, j := range r.jobs {
		if j.TenantID == tenantID && (status == "" || j.Status == status) {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (r *memRepo) CountOpenJobs(_ context.Context, tenantID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, j := range r.jobs {
		if j.TenantID == tenantID && j.Status == models.JobStatusOpen {
			n++
		}
	}
	return n, nil
}

func (r *memRepo) OpenTitleExists(_ context.Context, tenantID uuid.UUID, title string, excludeID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, j := range r.jobs {
		if j.TenantID == tenantID && j.Status == models.JobStatusOpen && j.ID != excludeID &&
			strings.EqualFold(j.Title, strings.TrimSpace(title)) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) CreateApplication(_ context.Context, a *models.Application, ev *models.ApplicationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = r.id()
	cp := *a
	r.apps[a.ID] = &cp
	ev.ApplicationID = a.ID
	r.events = append(r.events, *ev)
	return nil
}

func (r *memRepo) GetApplication(_ context.Context, tenantID uuid.UUID, id uint) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok || a.TenantID != tenantID {
		return nil, apperr.NotFound("Application not found")
	}
	cp := *a
	if j, ok := r.jobs[a.JobID]; ok {
		cp.Job = *j
	}
	return &cp, nil
}

func (r *memRepo) ListApplications(_ context.Context, tenantID uuid.UUID, jobID uint) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Application{}
	for _, a := range r.apps {
		if a.TenantID == tenantID && a.JobID == jobID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memRepo) FindApplicationsByEmail(_ context.Context, email string) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Application
	for _, a := range r.apps {
		if a.Email == email {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memRepo) UpdateStage(_ context.Context, a *models.Application, ev *models.ApplicationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps[a.ID].Stage = a.Stage
	r.events = append(r.events, *ev)
	return nil
}

func (r *memRepo) AddNote(_ context.Context, n *models.ApplicationNote, ev *models.ApplicationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.ID = r.id()
	r.notes = append(r.notes, *n)
	r.events = append(r.events, *ev)
	return nil
}

func (r *memRepo) ListNotes(_ context.Context, applicationID uint) ([]models.ApplicationNote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.ApplicationNote{}
	for _, n := range r.notes {
		if n.ApplicationID == applicationID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *memRepo) AddEvaluation(_ context.Context, e *models.Evaluation, ev *models.ApplicationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = r.id()
	r.evals = append(r.evals, *e)
	r.events = append(r.events, *ev)
	return nil
}

func (r *memRepo) ListEvaluations(_ context.Context, applicationID uint) ([]models.Evaluation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Evaluation{}
	for _, e := range r.evals {
		if e.ApplicationID == applicationID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memRepo) LogEvent(_ context.Context, ev *models.ApplicationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *ev)
	return nil
}

func (r *memRepo) ListEvents(_ context.Context, applicationID uint) ([]models.ApplicationEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.ApplicationEvent{}
	for _, ev := range r.events {
		if ev.ApplicationID == applicationID {
			out = append(out, ev)
		}
	}
	return out, nil
}
