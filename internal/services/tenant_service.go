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

const DefaultJobQuota = 10

type TenantService struct {
	tenants TenantRepository
	jobs    JobRepository
	logger  *zap.Logger
}

func NewTenantService(tenants TenantRepository, jobs JobRepository, logger *zap.Logger) *TenantService {
	return &TenantService{tenants: tenants, jobs: jobs, logger: logger}
}

// Quota is a tenant's open-job allowance.
type Quota struct {
	Limit     int `json:"limit"`
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
}

func (s *TenantService) CreateTenant(ctx context.Context, name, slug string, jobQuota int) (*models.Tenant, error) {
	if jobQuota <= 0 {
		jobQuota = DefaultJobQuota
	}
	t := &models.Tenant{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(name),
		Slug:     strings.ToLower(strings.TrimSpace(slug)),
		JobQuota: jobQuota,
	}
	if err := s.tenants.CreateTenant(ctx, t); err != nil {
		return nil, fmt.Errorf("create tenant: %w", err)
	}
	s.logger.Info("Tenant created", zap.String("tenant_id", t.ID.String()), zap.String("slug", t.Slug))
	return t, nil
}

func (s *TenantService) GetTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	return s.tenants.GetTenant(ctx, id)
}

func (s *TenantService) Quota(ctx context.Context, id uuid.UUID) (*Quota, error) {
	t, err := s.tenants.GetTenant(ctx, id)
	if err != nil {
		return nil, err
	}
	used, err := s.jobs.CountOpenJobs(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count open jobs: %w", err)
	}
	return &Quota{
		Limit:     t.JobQuota,
		Used:      int(used),
		Remaining: max(t.JobQuota-int(used), 0),
	}, nil
}

func (s *TenantService) CreateUser(ctx context.Context, tenantID uuid.UUID, u *models.User) error {
	if _, err := s.tenants.GetTenant(ctx, tenantID); err != nil {
		return err
	}
	u.TenantID = tenantID
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Role == "" {
		u.Role = "candidate"
	}
	if err := s.tenants.CreateUser(ctx, u); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	s.logger.Info("User created", zap.String("tenant_id", tenantID.String()), zap.Uint("user_id", u.ID))
	return nil
}

func (s *TenantService) GetUser(ctx context.Context, tenantID uuid.UUID, id uint) (*models.User, error) {
	return s.tenants.GetUser(ctx, tenantID, id)
}

func (s *TenantService) ListUsers(ctx context.Context, tenantID uuid.UUID) ([]models.User, error) {
	if _, err := s.tenants.GetTenant(ctx, tenantID); err != nil {
		return nil, err
	}
	return s.tenants.ListUsers(ctx, tenantID)
}

// requireTenant is a guard for services that act inside a tenant.
func requireTenant(ctx context.Context, repo TenantRepository, id uuid.UUID) (*models.Tenant, error) {
	t, err := repo.GetTenant(ctx, id)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return nil, apperr.Forbidden("Unknown workspace")
		}
		return nil, err
	}
	return t, nil
}
