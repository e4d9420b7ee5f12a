// internal/services/tenant_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/herambgvd/gvd-frs/internal/models"
	"github.com/herambgvd/gvd-frs/internal/utils"
)

type TenantService struct {
	db *gorm.DB
}

type CreateTenantRequest struct {
	ID           string                 `json:"id" validate:"required,min=1,max=255"`
	Name         string                 `json:"name" validate:"required,min=1,max=255"`
	Description  string                 `json:"description,omitempty" validate:"omitempty,max=1000"`
	Domain       *string                `json:"domain,omitempty" validate:"omitempty,max=255"`
	Settings     map[string]interface{} `json:"settings,omitempty"`
	MaxUsers     *int                   `json:"max_users,omitempty" validate:"omitempty,min=1"`
	ContactEmail string                 `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone string                 `json:"contact_phone,omitempty" validate:"omitempty,max=50"`
	CreatedBy    string                 `json:"created_by,omitempty"`
}

type UpdateTenantRequest struct {
	Name         *string                `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description  *string                `json:"description,omitempty" validate:"omitempty,max=1000"`
	Domain       *string                `json:"domain,omitempty" validate:"omitempty,max=255"`
	Settings     map[string]interface{} `json:"settings,omitempty"`
	MaxUsers     *int                   `json:"max_users,omitempty" validate:"omitempty,min=1"`
	ContactEmail *string                `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone *string                `json:"contact_phone,omitempty" validate:"omitempty,max=50"`
}

type TenantListParams struct {
	Skip   int
	Limit  int
	Status *models.TenantStatus
}

type TenantStats struct {
	TotalTenants     int64 `json:"total_tenants"`
	ActiveTenants    int64 `json:"active_tenants"`
	InactiveTenants  int64 `json:"inactive_tenants"`
	SuspendedTenants int64 `json:"suspended_tenants"`
	PendingTenants   int64 `json:"pending_tenants"`
	TotalUsers       int64 `json:"total_users"`
}

func NewTenantService(db *gorm.DB) *TenantService {
	return &TenantService{db: db}
}

func (s *TenantService) CreateTenant(ctx context.Context, req *CreateTenantRequest) (*models.Tenant, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Tenant{}).
		Where("id = ?", req.ID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("tenant %s already exists: %w", req.ID, ErrConflict)
	}

	if req.Domain != nil {
		if err := s.domainAvailable(ctx, *req.Domain, ""); err != nil {
			return nil, err
		}
	}

	tenant := &models.Tenant{
		ID:           req.ID,
		Name:         req.Name,
		Description:  req.Description,
		Domain:       req.Domain,
		Status:       models.TenantStatusActive,
		Settings:     models.JSONMap(req.Settings),
		MaxUsers:     req.MaxUsers,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		CreatedBy:    req.CreatedBy,
	}

	if err := s.db.WithContext(ctx).Create(tenant).Error; err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	logrus.WithField("tenant_id", tenant.ID).Info("Tenant created")
	return tenant, nil
}

func (s *TenantService) GetTenant(ctx context.Context, id string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("tenant %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &tenant, nil
}

func (s *TenantService) ListTenants(ctx context.Context, params TenantListParams) ([]models.Tenant, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Tenant{})
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tenants: %w", err)
	}

	var tenants []models.Tenant
	if err := query.Order("created_at DESC").
		Offset(params.Skip).Limit(params.Limit).
		Find(&tenants).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch tenants: %w", err)
	}

	return tenants, total, nil
}

func (s *TenantService) UpdateTenant(ctx context.Context, id string, req *UpdateTenantRequest) (*models.Tenant, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	tenant, err := s.GetTenant(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Domain != nil {
		if err := s.domainAvailable(ctx, *req.Domain, id); err != nil {
			return nil, err
		}
		tenant.Domain = req.Domain
	}
	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.Description != nil {
		tenant.Description = *req.Description
	}
	if req.Settings != nil {
		tenant.Settings = models.JSONMap(req.Settings)
	}
	if req.MaxUsers != nil {
		tenant.MaxUsers = req.MaxUsers
	}
	if req.ContactEmail != nil {
		tenant.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		tenant.ContactPhone = *req.ContactPhone
	}

	if err := s.db.WithContext(ctx).Save(tenant).Error; err != nil {
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}
	return tenant, nil
}

func (s *TenantService) DeleteTenant(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Tenant{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete tenant: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("tenant %s: %w", id, ErrNotFound)
	}
	logrus.WithField("tenant_id", id).Info("Tenant deleted")
	return nil
}

func (s *TenantService) SetStatus(ctx context.Context, id string, status models.TenantStatus) (*models.Tenant, error) {
	tenant, err := s.GetTenant(ctx, id)
	if err != nil {
		return nil, err
	}
	tenant.Status = status
	if err := s.db.WithContext(ctx).Save(tenant).Error; err != nil {
		return nil, fmt.Errorf("failed to update tenant status: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"tenant_id": id,
		"status":    status,
	}).Info("Tenant status changed")

	return tenant, nil
}

// IncrementUsers reserves one user slot. The guard against max_users runs in
// the same UPDATE statement, so two concurrent increments cannot both take
// the last slot.
func (s *TenantService) IncrementUsers(ctx context.Context, id string) (*models.Tenant, error) {
	res := s.db.WithContext(ctx).Model(&models.Tenant{}).
		Where("id = ?", id).
		Where("max_users IS NULL OR current_users < max_users").
		UpdateColumn("current_users", gorm.Expr("current_users + 1"))
	if res.Error != nil {
		return nil, fmt.Errorf("failed to increment user count: %w", res.Error)
	}

	tenant, err := s.GetTenant(ctx, id)
	if err != nil {
		return nil, err
	}

	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("tenant %s is at user capacity: %w", id, ErrConflict)
	}
	return tenant, nil
}

// DecrementUsers releases one user slot, flooring the count at zero.
func (s *TenantService) DecrementUsers(ctx context.Context, id string) (*models.Tenant, error) {
	if err := s.db.WithContext(ctx).Model(&models.Tenant{}).
		Where("id = ?", id).
		Where("current_users > 0").
		UpdateColumn("current_users", gorm.Expr("current_users - 1")).Error; err != nil {
		return nil, fmt.Errorf("failed to decrement user count: %w", err)
	}
	return s.GetTenant(ctx, id)
}

func (s *TenantService) GetStats(ctx context.Context) (*TenantStats, error) {
	stats := &TenantStats{}

	if err := s.db.WithContext(ctx).Model(&models.Tenant{}).
		Count(&stats.TotalTenants).Error; err != nil {
		return nil, fmt.Errorf("failed to compute tenant stats: %w", err)
	}

	byStatus := map[models.TenantStatus]*int64{
		models.TenantStatusActive:    &stats.ActiveTenants,
		models.TenantStatusInactive:  &stats.InactiveTenants,
		models.TenantStatusSuspended: &stats.SuspendedTenants,
		models.TenantStatusPending:   &stats.PendingTenants,
	}
	for status, target := range byStatus {
		s.db.WithContext(ctx).Model(&models.Tenant{}).
			Where("status = ?", status).Count(target)
	}

	var totalUsers struct{ Total int64 }
	s.db.WithContext(ctx).Model(&models.Tenant{}).
		Select("COALESCE(SUM(current_users), 0) AS total").Scan(&totalUsers)
	stats.TotalUsers = totalUsers.Total

	return stats, nil
}

func (s *TenantService) domainAvailable(ctx context.Context, domain, excludeID string) error {
	query := s.db.WithContext(ctx).Model(&models.Tenant{}).Where("domain = ?", domain)
	if excludeID != "" {
		query = query.Where("id != ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("domain %s is already in use: %w", domain, ErrConflict)
	}
	return nil
}
