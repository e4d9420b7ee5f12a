// internal/models/poi.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// POI is a person-of-interest record tagged to exactly one watchlist. The
// watchlist reference is validated at create time, and at update time when
// the reference changes; it is not re-checked if the group is later
// deactivated.
type POI struct {
	ID                   primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	PersonID             string             `json:"person_id" bson:"person_id"`
	FullName             string             `json:"full_name" bson:"full_name"`
	Gender               Gender             `json:"gender" bson:"gender"`
	Age                  int                `json:"age" bson:"age"`
	AdditionalInfo       string             `json:"additional_info,omitempty" bson:"additional_info,omitempty"`
	TaggedWatchlistID    string             `json:"tagged_watchlist_id" bson:"tagged_watchlist_id"`
	OrganizationID       string             `json:"organization_id" bson:"organization_id"`
	CreatedBy            string             `json:"created_by" bson:"created_by"`
	UpdatedBy            string             `json:"updated_by,omitempty" bson:"updated_by,omitempty"`
	PersonImageURL       *string            `json:"person_image_url" bson:"person_image_url,omitempty"`
	PersonImageObjectKey *string            `json:"person_image_object_name" bson:"person_image_object_name,omitempty"`
	CreatedAt            time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt            *time.Time         `json:"updated_at" bson:"updated_at,omitempty"`
	IsActive             bool               `json:"is_active" bson:"is_active"`

	// Populated by the $lookup against the groups collection on read paths.
	WatchlistInfo *Group `json:"watchlist_info,omitempty" bson:"watchlist_info,omitempty"`
}
