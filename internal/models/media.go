// internal/models/media.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaUpload is the metadata row for an uploaded file. The binary bytes live
// only in the object store; this is a pointer plus provenance.
type MediaUpload struct {
	ID             primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	FileID         string             `json:"file_id" bson:"file_id"`
	Filename       string             `json:"filename" bson:"filename"`
	FileType       string             `json:"file_type" bson:"file_type"`
	FileURL        string             `json:"file_url" bson:"file_url"`
	ObjectName     string             `json:"object_name" bson:"object_name"`
	FileSize       int64              `json:"file_size" bson:"file_size"`
	UploadedAt     time.Time          `json:"uploaded_at" bson:"uploaded_at"`
	UploadedBy     string             `json:"uploaded_by" bson:"uploaded_by"`
	OrganizationID string             `json:"organization_id" bson:"organization_id"`
}
