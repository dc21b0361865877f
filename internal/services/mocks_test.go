package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/justsurfingit/job-board/internal/models"
)

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) CreateTenant(ctx context.Context, t *models.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTenantRepository) GetTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) CreateUser(ctx context.Context, u *models.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockTenantRepository) GetUser(ctx context.Context, tenantID uuid.UUID, id uint) (*models.User, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockTenantRepository) ListUsers(ctx context.Context, tenantID uuid.UUID) ([]models.User, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]models.User), args.Error(1)
}

type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) CreateJob(ctx context.Context, j *models.Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockJobRepository) UpdateJob(ctx context.Context, j *models.Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockJobRepository) GetJob(ctx context.Context, tenantID uuid.UUID, id uint) (*models.Job, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobRepository) ListJobs(ctx context.Context, tenantID uuid.UUID, status string) ([]models.Job, error) {
	args := m.Called(ctx, tenantID, status)
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *MockJobRepository) CountOpenJobs(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJobRepository) OpenTitleExists(ctx context.Context, tenantID uuid.UUID, title string, excludeID uint) (bool, error) {
	args := m.Called(ctx, tenantID, title, excludeID)
	return args.Bool(0), args.Error(1)
}

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) CreateApplication(ctx context.Context, a *models.Application, ev *models.ApplicationEvent) error {
	args := m.Called(ctx, a, ev)
	return args.Error(0)
}

func (m *MockApplicationRepository) GetApplication(ctx context.Context, tenantID uuid.UUID, id uint) (*models.Application, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationRepository) ListApplications(ctx context.Context, tenantID uuid.UUID, jobID uint) ([]models.Application, error) {
	args := m.Called(ctx, tenantID, jobID)
	return args.Get(0).([]models.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindApplicationsByEmail(ctx context.Context, email string) ([]models.Application, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]models.Application), args.Error(1)
}

func (m *MockApplicationRepository) UpdateStage(ctx context.Context, a *models.Application, ev *models.ApplicationEvent) error {
	args := m.Called(ctx, a, ev)
	return args.Error(0)
}

func (m *MockApplicationRepository) AddNote(ctx context.Context, n *models.ApplicationNote, ev *models.ApplicationEvent) error {
	args := m.Called(ctx, n, ev)
	return args.Error(0)
}

func (m *MockApplicationRepository) ListNotes(ctx context.Context, applicationID uint) ([]models.ApplicationNote, error) {
	args := m.Called(ctx, applicationID)
	return args.Get(0).([]models.ApplicationNote), args.Error(1)
}

func (m *MockApplicationRepository) AddEvaluation(ctx context.Context, e *models.Evaluation, ev *models.ApplicationEvent) error {
	args := m.Called(ctx, e, ev)
	return args.Error(0)
}

func (m *MockApplicationRepository) ListEvaluations(ctx context.Context, applicationID uint) ([]models.Evaluation, error) {
	args := m.Called(ctx, applicationID)
	return args.Get(0).([]models.Evaluation), args.Error(1)
}

func (m *MockApplicationRepository) LogEvent(ctx context.Context, ev *models.ApplicationEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockApplicationRepository) ListEvents(ctx context.Context, applicationID uint) ([]models.ApplicationEvent, error) {
	args := m.Called(ctx, applicationID)
	return args.Get(0).([]models.ApplicationEvent), args.Error(1)
}

type MockMailboxRepository struct {
	mock.Mock
}

func (m *MockMailboxRepository) Cursor(ctx context.Context, mailbox string) (uint64, error) {
	args := m.Called(ctx, mailbox)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockMailboxRepository) SaveCursor(ctx context.Context, mailbox string, historyID uint64) error {
	args := m.Called(ctx, mailbox, historyID)
	return args.Error(0)
}

func (m *MockMailboxRepository) IsProcessed(ctx context.Context, messageID string) (bool, error) {
	args := m.Called(ctx, messageID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMailboxRepository) MarkProcessed(ctx context.Context, messageID string) error {
	args := m.Called(ctx, messageID)
	return args.Error(0)
}

type MockMailClient struct {
	mock.Mock
}

func (m *MockMailClient) Recent(ctx context.Context, query string, limit int64) ([]string, uint64, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]string), args.Get(1).(uint64), args.Error(2)
}

func (m *MockMailClient) Since(ctx context.Context, historyID uint64) ([]string, uint64, error) {
	args := m.Called(ctx, historyID)
	return args.Get(0).([]string), args.Get(1).(uint64), args.Error(2)
}

func (m *MockMailClient) Get(ctx context.Context, id string) (*Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Message), args.Error(1)
}

// fakeCompleter answers every prompt with reply and records the prompts.
type fakeCompleter struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func noSleep(time.Duration) {}
