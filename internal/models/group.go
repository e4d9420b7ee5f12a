// internal/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is a named watchlist bucket (whitelist/blacklist) for persons of
// interest. Name uniqueness is per organization, case-insensitive, and is
// enforced by an application-level pre-check, not a database constraint.
type Group struct {
	ID             primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	GroupName      string             `json:"group_name" bson:"group_name"`
	DisplayColor   string             `json:"display_color" bson:"display_color"`
	SoundOnAlert   bool               `json:"sound_on_alert" bson:"sound_on_alert"`
	WatchlistType  WatchlistType      `json:"watchlist_type" bson:"watchlist_type"`
	Notes          string             `json:"notes,omitempty" bson:"notes,omitempty"`
	OrganizationID string             `json:"organization_id" bson:"organization_id"`
	CreatedBy      string             `json:"created_by" bson:"created_by"`
	UpdatedBy      string             `json:"updated_by,omitempty" bson:"updated_by,omitempty"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      *time.Time         `json:"updated_at" bson:"updated_at,omitempty"`
	IsActive       bool               `json:"is_active" bson:"is_active"`
}

// GroupResponse carries the hex form of the ObjectID.
type GroupResponse struct {
	ID string `json:"id"`
	Group
}

func (g Group) Response() GroupResponse {
	return GroupResponse{ID: g.ID.Hex(), Group: g}
}
