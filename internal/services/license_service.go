// internal/services/license_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/herambgvd/gvd-frs/internal/models"
	"github.com/herambgvd/gvd-frs/internal/utils"
)

const keyGenerationAttempts = 5

type LicenseService struct {
	db       *gorm.DB
	keyStore KeyStore
}

type CreateLicenseRequest struct {
	ClientName    string     `json:"client_name" validate:"required,min=1,max=255"`
	ClientID      string     `json:"client_id,omitempty" validate:"omitempty,max=255"`
	Permissions   []string   `json:"permissions" validate:"required,min=1,dive,oneof=read write admin"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	ExpiresInDays *int       `json:"expires_in_days,omitempty" validate:"omitempty,min=1"`
	UsageLimit    *int       `json:"usage_limit,omitempty" validate:"omitempty,min=1"`
	TenantID      *string    `json:"tenant_id,omitempty"`
}

type UpdateLicenseRequest struct {
	ClientName  *string    `json:"client_name,omitempty" validate:"omitempty,min=1,max=255"`
	Permissions []string   `json:"permissions,omitempty" validate:"omitempty,min=1,dive,oneof=read write admin"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	UsageLimit  *int       `json:"usage_limit,omitempty" validate:"omitempty,min=1"`
	IsActive    *bool      `json:"is_active,omitempty"`
	TenantID    *string    `json:"tenant_id,omitempty"`
}

type LicenseListParams struct {
	Skip     int
	Limit    int
	IsActive *bool
	TenantID *string
}

type LicenseStats struct {
	TotalLicenses    int64   `json:"total_licenses"`
	ActiveLicenses   int64   `json:"active_licenses"`
	InactiveLicenses int64   `json:"inactive_licenses"`
	ExpiredLicenses  int64   `json:"expired_licenses"`
	TotalUsage       int64   `json:"total_usage"`
	AverageUsage     float64 `json:"average_usage"`
	WithUsageLimit   int64   `json:"with_usage_limit"`
	AtUsageLimit     int64   `json:"at_usage_limit"`
}

func NewLicenseService(db *gorm.DB, keyStore KeyStore) *LicenseService {
	return &LicenseService{db: db, keyStore: keyStore}
}

func (s *LicenseService) CreateLicense(ctx context.Context, req *CreateLicenseRequest) (*models.License, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	clientID := req.ClientID
	if clientID == "" {
		clientID = uuid.New().String()
	}

	var existing models.License
	err := s.db.WithContext(ctx).Where("client_id = ?", clientID).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("client_id %s already has a license: %w", clientID, ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	if req.TenantID != nil {
		if err := s.tenantExists(ctx, *req.TenantID); err != nil {
			return nil, err
		}
	}

	expiresAt := req.ExpiresAt
	if req.ExpiresInDays != nil {
		t := time.Now().UTC().AddDate(0, 0, *req.ExpiresInDays)
		expiresAt = &t
	}

	license := &models.License{
		ClientName:  req.ClientName,
		ClientID:    clientID,
		Permissions: models.StringList(req.Permissions),
		IsActive:    true,
		ExpiresAt:   expiresAt,
		UsageLimit:  req.UsageLimit,
		TenantID:    req.TenantID,
	}

	// Key collisions are astronomically unlikely but cheap to retry.
	for attempt := 0; attempt < keyGenerationAttempts; attempt++ {
		key, err := utils.GenerateLicenseKey(clientID)
		if err != nil {
			return nil, err
		}
		license.LicenseKey = key

		var count int64
		if err := s.db.WithContext(ctx).Model(&models.License{}).
			Where("license_key = ?", key).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("database error: %w", err)
		}
		if count == 0 {
			break
		}
		license.LicenseKey = ""
	}
	if license.LicenseKey == "" {
		return nil, errors.New("failed to generate a unique license key")
	}

	if err := s.db.WithContext(ctx).Create(license).Error; err != nil {
		return nil, fmt.Errorf("failed to create license: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"license_key": license.PartialKey(),
		"client_id":   license.ClientID,
	}).Info("License created")

	return license, nil
}

func (s *LicenseService) GetLicense(ctx context.Context, id uint) (*models.License, error) {
	var license models.License
	if err := s.db.WithContext(ctx).First(&license, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("license %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &license, nil
}

func (s *LicenseService) ListLicenses(ctx context.Context, params LicenseListParams) ([]models.License, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.License{})

	if params.IsActive != nil {
		query = query.Where("is_active = ?", *params.IsActive)
	}
	if params.TenantID != nil {
		query = query.Where("tenant_id = ?", *params.TenantID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count licenses: %w", err)
	}

	var licenses []models.License
	if err := query.Order("created_at DESC").
		Offset(params.Skip).Limit(params.Limit).
		Find(&licenses).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch licenses: %w", err)
	}

	return licenses, total, nil
}

func (s *LicenseService) UpdateLicense(ctx context.Context, id uint, req *UpdateLicenseRequest) (*models.License, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	license, err := s.GetLicense(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.TenantID != nil {
		if err := s.tenantExists(ctx, *req.TenantID); err != nil {
			return nil, err
		}
		license.TenantID = req.TenantID
	}
	if req.ClientName != nil {
		license.ClientName = *req.ClientName
	}
	if req.Permissions != nil {
		license.Permissions = models.StringList(req.Permissions)
	}
	if req.ExpiresAt != nil {
		license.ExpiresAt = req.ExpiresAt
	}
	if req.UsageLimit != nil {
		license.UsageLimit = req.UsageLimit
	}
	if req.IsActive != nil {
		license.IsActive = *req.IsActive
	}

	if err := s.db.WithContext(ctx).Save(license).Error; err != nil {
		return nil, fmt.Errorf("failed to update license: %w", err)
	}
	return license, nil
}

func (s *LicenseService) DeleteLicense(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.License{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete license: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("license %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *LicenseService) setActive(ctx context.Context, id uint, active bool) (*models.License, error) {
	license, err := s.GetLicense(ctx, id)
	if err != nil {
		return nil, err
	}
	license.IsActive = active
	if err := s.db.WithContext(ctx).Save(license).Error; err != nil {
		return nil, fmt.Errorf("failed to update license: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"license_key": license.PartialKey(),
		"is_active":   active,
	}).Info("License state changed")

	return license, nil
}

func (s *LicenseService) RevokeLicense(ctx context.Context, id uint) (*models.License, error) {
	return s.setActive(ctx, id, false)
}

func (s *LicenseService) ActivateLicense(ctx context.Context, id uint) (*models.License, error) {
	return s.setActive(ctx, id, true)
}

func (s *LicenseService) ResetUsage(ctx context.Context, id uint) (*models.License, error) {
	license, err := s.GetLicense(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(license).
		UpdateColumn("current_usage", 0).Error; err != nil {
		return nil, fmt.Errorf("failed to reset usage: %w", err)
	}
	license.CurrentUsage = 0
	return license, nil
}

// ValidateLicense is the inspect path: the key is checked without touching the
// usage counter. A missing or rejected key is a normal result, not an error.
func (s *LicenseService) ValidateLicense(ctx context.Context, key string) (ValidationResult, error) {
	license, err := s.keyStore.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ValidationResult{Valid: false, Message: models.MsgLicenseNotFound}, nil
		}
		return ValidationResult{}, err
	}

	valid, message := license.Evaluate(time.Now().UTC())
	return ValidationResult{Valid: valid, Message: message, License: license}, nil
}

func (s *LicenseService) GetStats(ctx context.Context) (*LicenseStats, error) {
	stats := &LicenseStats{}
	db := s.db.WithContext(ctx).Model(&models.License{})
	now := time.Now().UTC()

	if err := db.Count(&stats.TotalLicenses).Error; err != nil {
		return nil, fmt.Errorf("failed to compute license stats: %w", err)
	}
	s.db.WithContext(ctx).Model(&models.License{}).
		Where("is_active = ?", true).Count(&stats.ActiveLicenses)
	stats.InactiveLicenses = stats.TotalLicenses - stats.ActiveLicenses
	s.db.WithContext(ctx).Model(&models.License{}).
		Where("expires_at IS NOT NULL AND expires_at <= ?", now).Count(&stats.ExpiredLicenses)
	s.db.WithContext(ctx).Model(&models.License{}).
		Where("usage_limit IS NOT NULL").Count(&stats.WithUsageLimit)
	s.db.WithContext(ctx).Model(&models.License{}).
		Where("usage_limit IS NOT NULL AND current_usage >= usage_limit").Count(&stats.AtUsageLimit)

	var totalUsage struct{ Total int64 }
	s.db.WithContext(ctx).Model(&models.License{}).
		Select("COALESCE(SUM(current_usage), 0) AS total").Scan(&totalUsage)
	stats.TotalUsage = totalUsage.Total
	if stats.TotalLicenses > 0 {
		stats.AverageUsage = float64(stats.TotalUsage) / float64(stats.TotalLicenses)
	}

	return stats, nil
}

// SeedDemoKeys inserts the two well-known demo licenses if they are absent.
func (s *LicenseService) SeedDemoKeys(ctx context.Context) error {
	expiry := time.Now().UTC().AddDate(0, 0, 365)
	usageLimit := 10000

	demos := []*models.License{
		{
			LicenseKey:  "gvd-demo-key-12345",
			ClientName:  "Demo Client",
			ClientID:    "demo-client",
			Permissions: models.StringList{"read", "write"},
			IsActive:    true,
			ExpiresAt:   &expiry,
		},
		{
			LicenseKey:  "gvd-premium-key-67890",
			ClientName:  "Premium Demo Client",
			ClientID:    "premium-demo-client",
			Permissions: models.StringList{"read", "write", "admin"},
			IsActive:    true,
			ExpiresAt:   &expiry,
			UsageLimit:  &usageLimit,
		},
	}

	for _, demo := range demos {
		if err := s.keyStore.Put(ctx, demo); err != nil {
			return err
		}
	}

	logrus.Info("Demo license keys seeded")
	return nil
}

func (s *LicenseService) tenantExists(ctx context.Context, tenantID string) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Tenant{}).
		Where("id = ?", tenantID).Count(&count).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("tenant %s: %w", tenantID, ErrNotFound)
	}
	return nil
}
