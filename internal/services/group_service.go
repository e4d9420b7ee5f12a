// internal/services/group_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/herambgvd/gvd-frs/internal/documents"
	"github.com/herambgvd/gvd-frs/internal/models"
	"github.com/herambgvd/gvd-frs/internal/utils"
)

type GroupService struct {
	store *documents.Store
}

type CreateGroupRequest struct {
	GroupName     string `json:"group_name" validate:"required,min=1,max=100"`
	DisplayColor  string `json:"display_color" validate:"required,display_color"`
	SoundOnAlert  bool   `json:"sound_on_alert"`
	WatchlistType string `json:"watchlist_type" validate:"required,watchlist_type"`
	Notes         string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type UpdateGroupRequest struct {
	GroupName     *string `json:"group_name,omitempty" validate:"omitempty,min=1,max=100"`
	DisplayColor  *string `json:"display_color,omitempty" validate:"omitempty,display_color"`
	SoundOnAlert  *bool   `json:"sound_on_alert,omitempty"`
	WatchlistType *string `json:"watchlist_type,omitempty" validate:"omitempty,watchlist_type"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=500"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

type GroupListParams struct {
	utils.PaginationParams
	WatchlistType *string
	IsActive      *bool
	Organization  string
}

func NewGroupService(store *documents.Store) *GroupService {
	return &GroupService{store: store}
}

func (s *GroupService) CreateGroup(ctx context.Context, principal *models.Principal, req *CreateGroupRequest) (*models.Group, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := s.nameAvailable(ctx, principal.OrganizationID, req.GroupName, primitive.NilObjectID); err != nil {
		return nil, err
	}

	group := &models.Group{
		GroupName:      req.GroupName,
		DisplayColor:   req.DisplayColor,
		SoundOnAlert:   req.SoundOnAlert,
		WatchlistType:  models.WatchlistType(req.WatchlistType),
		Notes:          req.Notes,
		OrganizationID: principal.OrganizationID,
		CreatedBy:      principal.UserID,
		CreatedAt:      time.Now().UTC(),
		IsActive:       true,
	}

	res, err := s.store.Groups().InsertOne(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	group.ID = res.InsertedID.(primitive.ObjectID)

	logrus.WithFields(logrus.Fields{
		"group_id":        group.ID.Hex(),
		"organization_id": group.OrganizationID,
	}).Info("Group created")

	return group, nil
}

func (s *GroupService) GetGroup(ctx context.Context, principal *models.Principal, id string) (*models.Group, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid group id %q: %w", id, ErrInvalid)
	}

	// Soft-deleted groups are invisible to the read path.
	var group models.Group
	err = s.store.Groups().FindOne(ctx, bson.M{"_id": objectID, "is_active": true}).Decode(&group)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("group %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch group: %w", err)
	}

	if !principal.CanAccessOrganization(group.OrganizationID) {
		return nil, fmt.Errorf("group belongs to another organization: %w", ErrForbidden)
	}

	return &group, nil
}

func (s *GroupService) ListGroups(ctx context.Context, principal *models.Principal, params GroupListParams) ([]models.Group, int64, error) {
	orgID := params.Organization
	if !principal.IsSuperAdmin() {
		orgID = principal.OrganizationID
	}
	filter := groupListFilter(orgID, params)

	total, err := s.store.Groups().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count groups: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(params.Offset())).
		SetLimit(int64(params.Limit))

	cursor, err := s.store.Groups().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch groups: %w", err)
	}
	defer cursor.Close(ctx)

	var groups []models.Group
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, 0, fmt.Errorf("failed to decode groups: %w", err)
	}

	return groups, total, nil
}

func (s *GroupService) UpdateGroup(ctx context.Context, principal *models.Principal, id string, req *UpdateGroupRequest) (*models.Group, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	group, err := s.GetGroup(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	update := bson.M{
		"updated_by": principal.UserID,
		"updated_at": time.Now().UTC(),
	}

	if req.GroupName != nil && *req.GroupName != group.GroupName {
		if err := s.nameAvailable(ctx, group.OrganizationID, *req.GroupName, group.ID); err != nil {
			return nil, err
		}
		update["group_name"] = *req.GroupName
	}
	if req.DisplayColor != nil {
		update["display_color"] = *req.DisplayColor
	}
	if req.SoundOnAlert != nil {
		update["sound_on_alert"] = *req.SoundOnAlert
	}
	if req.WatchlistType != nil {
		update["watchlist_type"] = *req.WatchlistType
	}
	if req.Notes != nil {
		update["notes"] = *req.Notes
	}
	if req.IsActive != nil {
		update["is_active"] = *req.IsActive
	}

	var updated models.Group
	err = s.store.Groups().FindOneAndUpdate(ctx,
		bson.M{"_id": group.ID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return nil, fmt.Errorf("failed to update group: %w", err)
	}

	return &updated, nil
}

// DeleteGroup soft-deletes: the group keeps its document with is_active=false.
// POIs that reference it are intentionally left untouched.
func (s *GroupService) DeleteGroup(ctx context.Context, principal *models.Principal, id string) error {
	group, err := s.GetGroup(ctx, principal, id)
	if err != nil {
		return err
	}

	_, err = s.store.Groups().UpdateOne(ctx,
		bson.M{"_id": group.ID},
		bson.M{"$set": bson.M{
			"is_active":  false,
			"updated_by": principal.UserID,
			"updated_at": time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	logrus.WithField("group_id", id).Info("Group deactivated")
	return nil
}

// GetOrganizationGroups returns every active group in an organization,
// sorted by name.
func (s *GroupService) GetOrganizationGroups(ctx context.Context, principal *models.Principal, orgID string) ([]models.Group, error) {
	if !principal.CanAccessOrganization(orgID) {
		return nil, fmt.Errorf("organization %s: %w", orgID, ErrForbidden)
	}

	cursor, err := s.store.Groups().Find(ctx,
		bson.M{"organization_id": orgID, "is_active": true},
		options.Find().SetSort(bson.D{{Key: "group_name", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch organization groups: %w", err)
	}
	defer cursor.Close(ctx)

	var groups []models.Group
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("failed to decode organization groups: %w", err)
	}

	return groups, nil
}

// ResolveActiveGroup looks up a group by hex id and requires it to be active
// and in the given organization. POI create/update use it as the referential
// guard before tagging.
func (s *GroupService) ResolveActiveGroup(ctx context.Context, orgID, id string) (*models.Group, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid watchlist id %q: %w", id, ErrInvalid)
	}

	var group models.Group
	err = s.store.Groups().FindOne(ctx, bson.M{
		"_id":             objectID,
		"organization_id": orgID,
		"is_active":       true,
	}).Decode(&group)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("watchlist %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to resolve watchlist: %w", err)
	}

	return &group, nil
}

// nameAvailable enforces case-insensitive name uniqueness within an
// organization. excludeID skips the group being renamed.
func (s *GroupService) nameAvailable(ctx context.Context, orgID, name string, excludeID primitive.ObjectID) error {
	count, err := s.store.Groups().CountDocuments(ctx, groupNameFilter(orgID, name, excludeID))
	if err != nil {
		return fmt.Errorf("failed to check group name: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("group name %q already exists in this organization: %w", name, ErrConflict)
	}
	return nil
}

// groupListFilter builds the listing query. Listings show active groups
// unless the caller filters is_active explicitly; an empty orgID means no
// organization scoping.
func groupListFilter(orgID string, params GroupListParams) bson.M {
	filter := bson.M{"is_active": true}
	if params.IsActive != nil {
		filter["is_active"] = *params.IsActive
	}
	if orgID != "" {
		filter["organization_id"] = orgID
	}
	if params.WatchlistType != nil {
		filter["watchlist_type"] = *params.WatchlistType
	}
	if params.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(params.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"group_name": pattern},
			bson.M{"notes": pattern},
		}
	}
	return filter
}

// groupNameFilter matches active groups in an organization whose name equals
// the given one ignoring case. A deactivated group releases its name.
func groupNameFilter(orgID, name string, excludeID primitive.ObjectID) bson.M {
	filter := bson.M{
		"organization_id": orgID,
		"is_active":       true,
		"group_name": primitive.Regex{
			Pattern: "^" + regexp.QuoteMeta(name) + "$",
			Options: "i",
		},
	}
	if !excludeID.IsZero() {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	return filter
}
