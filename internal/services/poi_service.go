// internal/services/poi_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/herambgvd/gvd-frs/internal/documents"
	"github.com/herambgvd/gvd-frs/internal/models"
	"github.com/herambgvd/gvd-frs/internal/utils"
)

var poiImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

var nameCaser = cases.Title(language.English)

type POIService struct {
	store   *documents.Store
	groups  *GroupService
	storage *StorageService
}

type CreatePOIRequest struct {
	FullName          string `json:"full_name" validate:"required,min=1,max=255"`
	Gender            string `json:"gender" validate:"required,gender"`
	Age               int    `json:"age" validate:"min=0,max=120"`
	AdditionalInfo    string `json:"additional_info,omitempty" validate:"omitempty,max=1000"`
	TaggedWatchlistID string `json:"tagged_watchlist_id" validate:"required"`
}

type UpdatePOIRequest struct {
	FullName          *string `json:"full_name,omitempty" validate:"omitempty,min=1,max=255"`
	Gender            *string `json:"gender,omitempty" validate:"omitempty,gender"`
	Age               *int    `json:"age,omitempty" validate:"omitempty,min=0,max=120"`
	AdditionalInfo    *string `json:"additional_info,omitempty" validate:"omitempty,max=1000"`
	TaggedWatchlistID *string `json:"tagged_watchlist_id,omitempty"`
	IsActive          *bool   `json:"is_active,omitempty"`
}

type POIListParams struct {
	utils.PaginationParams
	Gender            *string
	MinAge            *int
	MaxAge            *int
	TaggedWatchlistID *string
	IsActive          *bool
}

type BulkPOIRequest struct {
	PersonIDs []string `json:"person_ids" validate:"required,min=1"`
	Operation string   `json:"operation" validate:"required,oneof=activate deactivate delete"`
}

type BulkPOIFailure struct {
	PersonID string `json:"person_id"`
	Error    string `json:"error"`
}

type BulkPOIResult struct {
	Operation string           `json:"operation"`
	Succeeded []string         `json:"succeeded"`
	Failed    []BulkPOIFailure `json:"failed"`
}

func NewPOIService(store *documents.Store, groups *GroupService, storage *StorageService) *POIService {
	return &POIService{store: store, groups: groups, storage: storage}
}

func (s *POIService) CreatePOI(ctx context.Context, principal *models.Principal, req *CreatePOIRequest) (*models.POI, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if strings.TrimSpace(req.FullName) == "" {
		return nil, fmt.Errorf("full_name must not be blank: %w", ErrInvalid)
	}

	group, err := s.groups.ResolveActiveGroup(ctx, principal.OrganizationID, req.TaggedWatchlistID)
	if err != nil {
		return nil, err
	}

	poi := &models.POI{
		PersonID:          uuid.New().String(),
		FullName:          normalizeFullName(req.FullName),
		Gender:            models.Gender(req.Gender),
		Age:               req.Age,
		AdditionalInfo:    req.AdditionalInfo,
		TaggedWatchlistID: req.TaggedWatchlistID,
		OrganizationID:    principal.OrganizationID,
		CreatedBy:         principal.UserID,
		CreatedAt:         time.Now().UTC(),
		IsActive:          true,
	}

	if _, err := s.store.POIs().InsertOne(ctx, poi); err != nil {
		return nil, fmt.Errorf("failed to create person of interest: %w", err)
	}
	poi.WatchlistInfo = group

	logrus.WithFields(logrus.Fields{
		"person_id":       poi.PersonID,
		"organization_id": poi.OrganizationID,
		"watchlist_id":    poi.TaggedWatchlistID,
	}).Info("Person of interest created")

	return poi, nil
}

func (s *POIService) GetPOI(ctx context.Context, principal *models.Principal, personID string) (*models.POI, error) {
	poi, err := s.findPOI(ctx, principal, personID, false)
	if err != nil {
		return nil, err
	}
	s.attachWatchlistInfo(ctx, []*models.POI{poi})
	return poi, nil
}

// findPOI fetches one person and checks organization access. Soft-deleted
// persons are invisible unless includeInactive is set; bulk activate is the
// one caller that needs to see them.
func (s *POIService) findPOI(ctx context.Context, principal *models.Principal, personID string, includeInactive bool) (*models.POI, error) {
	var poi models.POI
	err := s.store.POIs().FindOne(ctx, poiLookupFilter(personID, includeInactive)).Decode(&poi)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("person %s: %w", personID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch person of interest: %w", err)
	}

	if !principal.CanAccessOrganization(poi.OrganizationID) {
		return nil, fmt.Errorf("person belongs to another organization: %w", ErrForbidden)
	}

	return &poi, nil
}

func (s *POIService) ListPOIs(ctx context.Context, principal *models.Principal, params POIListParams) ([]models.POI, int64, error) {
	if params.MinAge != nil && params.MaxAge != nil && *params.MaxAge < *params.MinAge {
		return nil, 0, fmt.Errorf("max_age must be greater than or equal to min_age: %w", ErrInvalid)
	}

	orgID := ""
	if !principal.IsSuperAdmin() {
		orgID = principal.OrganizationID
	}
	filter := poiListFilter(orgID, params)

	total, err := s.store.POIs().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count persons of interest: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(params.Offset())).
		SetLimit(int64(params.Limit))

	cursor, err := s.store.POIs().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch persons of interest: %w", err)
	}
	defer cursor.Close(ctx)

	var pois []models.POI
	if err := cursor.All(ctx, &pois); err != nil {
		return nil, 0, fmt.Errorf("failed to decode persons of interest: %w", err)
	}

	refs := make([]*models.POI, len(pois))
	for i := range pois {
		refs[i] = &pois[i]
	}
	s.attachWatchlistInfo(ctx, refs)

	return pois, total, nil
}

func (s *POIService) UpdatePOI(ctx context.Context, principal *models.Principal, personID string, req *UpdatePOIRequest) (*models.POI, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	poi, err := s.GetPOI(ctx, principal, personID)
	if err != nil {
		return nil, err
	}

	update := bson.M{
		"updated_by": principal.UserID,
		"updated_at": time.Now().UTC(),
	}

	if req.TaggedWatchlistID != nil && *req.TaggedWatchlistID != poi.TaggedWatchlistID {
		if _, err := s.groups.ResolveActiveGroup(ctx, poi.OrganizationID, *req.TaggedWatchlistID); err != nil {
			return nil, err
		}
		update["tagged_watchlist_id"] = *req.TaggedWatchlistID
	}
	if req.FullName != nil {
		if strings.TrimSpace(*req.FullName) == "" {
			return nil, fmt.Errorf("full_name must not be blank: %w", ErrInvalid)
		}
		update["full_name"] = normalizeFullName(*req.FullName)
	}
	if req.Gender != nil {
		update["gender"] = *req.Gender
	}
	if req.Age != nil {
		update["age"] = *req.Age
	}
	if req.AdditionalInfo != nil {
		update["additional_info"] = *req.AdditionalInfo
	}
	if req.IsActive != nil {
		update["is_active"] = *req.IsActive
	}

	var updated models.POI
	err = s.store.POIs().FindOneAndUpdate(ctx,
		bson.M{"person_id": personID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return nil, fmt.Errorf("failed to update person of interest: %w", err)
	}

	s.attachWatchlistInfo(ctx, []*models.POI{&updated})
	return &updated, nil
}

// DeletePOI soft-deletes the record. The image blob, if any, is removed
// best-effort; a storage failure does not fail the delete.
func (s *POIService) DeletePOI(ctx context.Context, principal *models.Principal, personID string) error {
	poi, err := s.GetPOI(ctx, principal, personID)
	if err != nil {
		return err
	}

	_, err = s.store.POIs().UpdateOne(ctx,
		bson.M{"person_id": personID},
		bson.M{
			"$set": bson.M{
				"is_active":  false,
				"updated_by": principal.UserID,
				"updated_at": time.Now().UTC(),
			},
			"$unset": bson.M{
				"person_image_url":         "",
				"person_image_object_name": "",
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to delete person of interest: %w", err)
	}

	if poi.PersonImageObjectKey != nil {
		s.storage.DeleteObjectQuietly(ctx, *poi.PersonImageObjectKey)
	}

	logrus.WithField("person_id", personID).Info("Person of interest deactivated")
	return nil
}

// UploadImage writes the blob first and the metadata second. If the metadata
// write fails the blob is compensating-deleted so no orphan remains.
func (s *POIService) UploadImage(ctx context.Context, principal *models.Principal, personID, filename, contentType string, data []byte) (*models.POI, error) {
	if !poiImageTypes[contentType] {
		return nil, fmt.Errorf("unsupported image type %s: %w", contentType, ErrInvalid)
	}

	poi, err := s.GetPOI(ctx, principal, personID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("poi_images/%s/%s-%s%s",
		poi.OrganizationID, personID, uuid.New().String(), filepath.Ext(filename))

	result, err := s.storage.UploadObject(ctx, key, contentType, data)
	if err != nil {
		return nil, err
	}

	var updated models.POI
	err = s.store.POIs().FindOneAndUpdate(ctx,
		bson.M{"person_id": personID},
		bson.M{"$set": bson.M{
			"person_image_url":         result.URL,
			"person_image_object_name": result.ObjectKey,
			"updated_by":               principal.UserID,
			"updated_at":               time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		s.storage.DeleteObjectQuietly(ctx, key)
		return nil, fmt.Errorf("failed to store image metadata: %w", err)
	}

	// The replaced blob is unreferenced now.
	if poi.PersonImageObjectKey != nil && *poi.PersonImageObjectKey != key {
		s.storage.DeleteObjectQuietly(ctx, *poi.PersonImageObjectKey)
	}

	return &updated, nil
}

func (s *POIService) GetImageURL(ctx context.Context, principal *models.Principal, personID string) (string, error) {
	poi, err := s.GetPOI(ctx, principal, personID)
	if err != nil {
		return "", err
	}
	if poi.PersonImageURL == nil {
		return "", fmt.Errorf("person %s has no image: %w", personID, ErrNotFound)
	}
	return *poi.PersonImageURL, nil
}

func (s *POIService) DeleteImage(ctx context.Context, principal *models.Principal, personID string) error {
	poi, err := s.GetPOI(ctx, principal, personID)
	if err != nil {
		return err
	}
	if poi.PersonImageObjectKey == nil {
		return fmt.Errorf("person %s has no image: %w", personID, ErrNotFound)
	}

	if err := s.storage.DeleteObject(ctx, *poi.PersonImageObjectKey); err != nil {
		return err
	}

	_, err = s.store.POIs().UpdateOne(ctx,
		bson.M{"person_id": personID},
		bson.M{
			"$set": bson.M{
				"updated_by": principal.UserID,
				"updated_at": time.Now().UTC(),
			},
			"$unset": bson.M{
				"person_image_url":         "",
				"person_image_object_name": "",
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to clear image metadata: %w", err)
	}
	return nil
}

// BulkOperation applies activate/deactivate/delete to a batch of persons,
// accounting success and failure per id.
func (s *POIService) BulkOperation(ctx context.Context, principal *models.Principal, req *BulkPOIRequest) (*BulkPOIResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	result := &BulkPOIResult{Operation: req.Operation, Succeeded: []string{}, Failed: []BulkPOIFailure{}}

	for _, personID := range req.PersonIDs {
		if err := s.applyBulk(ctx, principal, personID, req.Operation); err != nil {
			result.Failed = append(result.Failed, BulkPOIFailure{
				PersonID: personID,
				Error:    err.Error(),
			})
			continue
		}
		result.Succeeded = append(result.Succeeded, personID)
	}

	logrus.WithFields(logrus.Fields{
		"operation": req.Operation,
		"succeeded": len(result.Succeeded),
		"failed":    len(result.Failed),
	}).Info("Bulk person operation finished")

	return result, nil
}

func (s *POIService) applyBulk(ctx context.Context, principal *models.Principal, personID, operation string) error {
	poi, err := s.findPOI(ctx, principal, personID, operation == "activate")
	if err != nil {
		return err
	}

	switch operation {
	case "activate", "deactivate":
		_, err = s.store.POIs().UpdateOne(ctx,
			bson.M{"person_id": personID},
			bson.M{"$set": bson.M{
				"is_active":  operation == "activate",
				"updated_by": principal.UserID,
				"updated_at": time.Now().UTC(),
			}},
		)
		if err != nil {
			return fmt.Errorf("failed to update person: %w", err)
		}
	case "delete":
		if _, err = s.store.POIs().DeleteOne(ctx, bson.M{"person_id": personID}); err != nil {
			return fmt.Errorf("failed to delete person: %w", err)
		}
		if poi.PersonImageObjectKey != nil {
			s.storage.DeleteObjectQuietly(ctx, *poi.PersonImageObjectKey)
		}
	}

	return nil
}

// attachWatchlistInfo joins active-or-not group documents onto a page of
// persons in one query.
func (s *POIService) attachWatchlistInfo(ctx context.Context, pois []*models.POI) {
	ids := make([]primitive.ObjectID, 0, len(pois))
	seen := make(map[string]bool)
	for _, poi := range pois {
		if seen[poi.TaggedWatchlistID] {
			continue
		}
		seen[poi.TaggedWatchlistID] = true
		if objectID, err := primitive.ObjectIDFromHex(poi.TaggedWatchlistID); err == nil {
			ids = append(ids, objectID)
		}
	}
	if len(ids) == 0 {
		return
	}

	cursor, err := s.store.Groups().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		logrus.WithField("error", err.Error()).Warn("Failed to join watchlist info")
		return
	}
	defer cursor.Close(ctx)

	var groups []models.Group
	if err := cursor.All(ctx, &groups); err != nil {
		logrus.WithField("error", err.Error()).Warn("Failed to decode watchlist info")
		return
	}

	byID := make(map[string]*models.Group, len(groups))
	for i := range groups {
		byID[groups[i].ID.Hex()] = &groups[i]
	}
	for _, poi := range pois {
		poi.WatchlistInfo = byID[poi.TaggedWatchlistID]
	}
}

// poiLookupFilter matches one person by id, restricted to active records
// unless includeInactive is set.
func poiLookupFilter(personID string, includeInactive bool) bson.M {
	filter := bson.M{"person_id": personID}
	if !includeInactive {
		filter["is_active"] = true
	}
	return filter
}

// poiListFilter builds the listing query. Listings show active persons unless
// the caller filters is_active explicitly; an empty orgID means no
// organization scoping.
func poiListFilter(orgID string, params POIListParams) bson.M {
	filter := bson.M{"is_active": true}
	if params.IsActive != nil {
		filter["is_active"] = *params.IsActive
	}
	if orgID != "" {
		filter["organization_id"] = orgID
	}
	if params.Gender != nil {
		filter["gender"] = *params.Gender
	}
	if params.TaggedWatchlistID != nil {
		filter["tagged_watchlist_id"] = *params.TaggedWatchlistID
	}

	ageFilter := bson.M{}
	if params.MinAge != nil {
		ageFilter["$gte"] = *params.MinAge
	}
	if params.MaxAge != nil {
		ageFilter["$lte"] = *params.MaxAge
	}
	if len(ageFilter) > 0 {
		filter["age"] = ageFilter
	}

	if params.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(params.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"full_name": pattern},
			bson.M{"additional_info": pattern},
		}
	}
	return filter
}

// normalizeFullName collapses whitespace and title-cases the name.
func normalizeFullName(name string) string {
	collapsed := strings.Join(strings.Fields(name), " ")
	return nameCaser.String(strings.ToLower(collapsed))
}
