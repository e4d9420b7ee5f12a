// internal/services/identity_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"

	"github.com/herambgvd/gvd-frs/internal/config"
	"github.com/herambgvd/gvd-frs/internal/models"
)

// IdentityService resolves bearer tokens to a Principal. The token is decoded
// locally to extract the user id, then the UMS is asked for the user's current
// detail and permissions, so revoked accounts are caught on every request.
type IdentityService struct {
	config     *config.IdentityConfig
	httpClient *http.Client
}

type umsUserDetail struct {
	ID             string   `json:"id"`
	Email          string   `json:"email"`
	UserType       string   `json:"userType"`
	OrganizationID string   `json:"organizationId"`
	IsActive       bool     `json:"isActive"`
	Permissions    []string `json:"permissions"`
}

type umsUserResponse struct {
	Success bool          `json:"success"`
	Data    umsUserDetail `json:"data"`
}

func NewIdentityService(cfg *config.IdentityConfig) *IdentityService {
	return &IdentityService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// Authenticate validates the raw bearer token and returns the caller's
// Principal. It is the only place identity fields are derived.
func (s *IdentityService) Authenticate(ctx context.Context, rawToken string) (*models.Principal, error) {
	userID, err := s.extractUserID(rawToken)
	if err != nil {
		return nil, err
	}

	detail, err := s.fetchUser(ctx, userID, rawToken)
	if err != nil {
		return nil, err
	}

	if !detail.IsActive {
		return nil, fmt.Errorf("user account is inactive: %w", ErrUnauthenticated)
	}

	userType := models.UserType(detail.UserType)
	if userType == models.UserTypeOrganizationUser && detail.OrganizationID == "" {
		return nil, fmt.Errorf("organization user has no organization: %w", ErrUnauthenticated)
	}

	return &models.Principal{
		UserID:         detail.ID,
		Email:          detail.Email,
		UserType:       userType,
		OrganizationID: detail.OrganizationID,
		Permissions:    detail.Permissions,
	}, nil
}

func (s *IdentityService) extractUserID(rawToken string) (string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", ErrUnauthenticated)
	}

	userID, ok := claims["userId"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("token has no userId claim: %w", ErrUnauthenticated)
	}

	return userID, nil
}

func (s *IdentityService) fetchUser(ctx context.Context, userID, rawToken string) (*umsUserDetail, error) {
	url := fmt.Sprintf("%s/api/users/%s", s.config.BaseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build user lookup request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+rawToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("User service unreachable")
		return nil, fmt.Errorf("user service unreachable: %w", ErrUpstream)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("user %s rejected by user service: %w", userID, ErrUnauthenticated)
	default:
		return nil, fmt.Errorf("user service returned status %d: %w", resp.StatusCode, ErrUpstream)
	}

	var body umsUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode user service response: %w", ErrUpstream)
	}
	if !body.Success || body.Data.ID == "" {
		return nil, fmt.Errorf("user %s not found: %w", userID, ErrUnauthenticated)
	}

	return &body.Data, nil
}
