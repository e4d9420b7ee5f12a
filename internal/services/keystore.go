// internal/services/keystore.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/herambgvd/gvd-frs/internal/models"
)

// ValidationResult is the outcome of checking a license key, either with or
// without consuming a usage unit.
type ValidationResult struct {
	Valid   bool
	Message string
	License *models.License
}

// KeyStore is the lookup and consumption surface for license keys. The API
// middleware and the validation endpoint both go through it.
type KeyStore interface {
	// Get returns the license for a key, or ErrNotFound.
	Get(ctx context.Context, key string) (*models.License, error)

	// Put inserts a license if no license with the same key exists.
	Put(ctx context.Context, license *models.License) error

	// Consume atomically validates the key and increments its usage counter.
	// A failed validation is reported in the result, not as an error.
	Consume(ctx context.Context, key string) (ValidationResult, error)
}

type gormKeyStore struct {
	db *gorm.DB
}

func NewKeyStore(db *gorm.DB) KeyStore {
	return &gormKeyStore{db: db}
}

func (s *gormKeyStore) Get(ctx context.Context, key string) (*models.License, error) {
	var license models.License
	if err := s.db.WithContext(ctx).Where("license_key = ?", key).First(&license).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &license, nil
}

func (s *gormKeyStore) Put(ctx context.Context, license *models.License) error {
	err := s.db.WithContext(ctx).
		Where("license_key = ?", license.LicenseKey).
		FirstOrCreate(license).Error
	if err != nil {
		return fmt.Errorf("failed to store license: %w", err)
	}
	return nil
}

// Consume performs the increment as a single conditional UPDATE so two
// concurrent requests cannot both take the last usage unit. When the UPDATE
// matches no row the license is re-read to classify the rejection.
func (s *gormKeyStore) Consume(ctx context.Context, key string) (ValidationResult, error) {
	now := time.Now().UTC()

	res := s.db.WithContext(ctx).Model(&models.License{}).
		Where("license_key = ?", key).
		Where("is_active = ?", true).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Where("usage_limit IS NULL OR current_usage < usage_limit").
		UpdateColumn("current_usage", gorm.Expr("current_usage + 1"))
	if res.Error != nil {
		return ValidationResult{}, fmt.Errorf("failed to consume license usage: %w", res.Error)
	}

	license, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ValidationResult{Valid: false, Message: models.MsgLicenseNotFound}, nil
		}
		return ValidationResult{}, err
	}

	if res.RowsAffected == 0 {
		_, message := license.Evaluate(now)
		return ValidationResult{Valid: false, Message: message, License: license}, nil
	}

	return ValidationResult{Valid: true, Message: models.MsgLicenseValid, License: license}, nil
}
