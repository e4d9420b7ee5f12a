// internal/services/media_service.go
package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/herambgvd/gvd-frs/internal/documents"
	"github.com/herambgvd/gvd-frs/internal/models"
	"github.com/herambgvd/gvd-frs/internal/utils"
)

const MaxMediaFileSize = 50 * 1024 * 1024 // 50MB

var allowedMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"video/mp4":  true,
	"video/mkv":  true,
}

type MediaService struct {
	store   *documents.Store
	storage *StorageService
}

type MediaFile struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

func NewMediaService(store *documents.Store, storage *StorageService) *MediaService {
	return &MediaService{store: store, storage: storage}
}

// ValidateMediaFile rejects oversized files and MIME types outside the
// supported set before anything touches the object store.
func ValidateMediaFile(filename, contentType string, size int64) error {
	if size > MaxMediaFileSize {
		return fmt.Errorf("file %s exceeds the 50MB limit: %w", filename, ErrInvalid)
	}
	if !allowedMediaTypes[contentType] {
		return fmt.Errorf("file %s has unsupported type %s: %w", filename, contentType, ErrInvalid)
	}
	return nil
}

// UploadFile stores one media file: blob first, metadata second, with a
// compensating blob delete when the metadata insert fails.
func (s *MediaService) UploadFile(ctx context.Context, principal *models.Principal, file MediaFile) (*models.MediaUpload, error) {
	if err := ValidateMediaFile(file.Filename, file.ContentType, file.Size); err != nil {
		return nil, err
	}

	fileID := uuid.New().String()
	storedName := fileID + filepath.Ext(file.Filename)
	key := fmt.Sprintf("media_uploads/%s-%s", fileID, utils.SanitizeFilename(file.Filename))

	result, err := s.storage.UploadObject(ctx, key, file.ContentType, file.Data)
	if err != nil {
		return nil, err
	}

	upload := &models.MediaUpload{
		FileID:         fileID,
		Filename:       storedName,
		FileType:       file.ContentType,
		FileURL:        result.URL,
		ObjectName:     result.ObjectKey,
		FileSize:       file.Size,
		UploadedBy:     principal.UserID,
		OrganizationID: principal.OrganizationID,
		UploadedAt:     time.Now().UTC(),
	}

	if _, err := s.store.Media().InsertOne(ctx, upload); err != nil {
		s.storage.DeleteObjectQuietly(ctx, key)
		return nil, fmt.Errorf("failed to store media metadata: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"file_id":         fileID,
		"organization_id": principal.OrganizationID,
		"size":            file.Size,
	}).Info("Media file uploaded")

	return upload, nil
}

// UploadFiles uploads a batch, failing fast on the first invalid file so a
// half-validated batch is not partially persisted for trivially bad input.
func (s *MediaService) UploadFiles(ctx context.Context, principal *models.Principal, files []MediaFile) ([]models.MediaUpload, error) {
	for _, file := range files {
		if err := ValidateMediaFile(file.Filename, file.ContentType, file.Size); err != nil {
			return nil, err
		}
	}

	uploads := make([]models.MediaUpload, 0, len(files))
	for _, file := range files {
		upload, err := s.UploadFile(ctx, principal, file)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, *upload)
	}

	return uploads, nil
}

func (s *MediaService) ListUploads(ctx context.Context, principal *models.Principal, params utils.PaginationParams) ([]models.MediaUpload, int64, error) {
	filter := bson.M{}
	if !principal.IsSuperAdmin() {
		filter["organization_id"] = principal.OrganizationID
	}

	total, err := s.store.Media().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count media uploads: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "uploaded_at", Value: -1}}).
		SetSkip(int64(params.Offset())).
		SetLimit(int64(params.Limit))

	cursor, err := s.store.Media().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch media uploads: %w", err)
	}
	defer cursor.Close(ctx)

	var uploads []models.MediaUpload
	if err := cursor.All(ctx, &uploads); err != nil {
		return nil, 0, fmt.Errorf("failed to decode media uploads: %w", err)
	}

	return uploads, total, nil
}
