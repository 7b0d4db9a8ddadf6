package models

import "time"

// MaxDescriptionLength is the maximum number of characters in a description
const MaxDescriptionLength = 280

// GeoPoint is a GeoJSON point; coordinates are [lng, lat]
type GeoPoint struct {
	Type        string     `json:"type" bson:"type"`
	Coordinates [2]float64 `json:"coordinates" bson:"coordinates"`
}

// NewGeoPoint builds a point from latitude and longitude
func NewGeoPoint(lat, lng float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: [2]float64{lng, lat}}
}

// Lat returns the latitude
func (p GeoPoint) Lat() float64 { return p.Coordinates[1] }

// Lng returns the longitude
func (p GeoPoint) Lng() float64 { return p.Coordinates[0] }

// Report is a geotagged incident submitted by a citizen
type Report struct {
	ID               string         `json:"id" bson:"_id"`
	UserID           string         `json:"userId" bson:"user_id"`
	Category         ReportCategory `json:"category" bson:"category"`
	Description      string         `json:"description" bson:"description"`
	Location         GeoPoint       `json:"location" bson:"location"`
	AccuracyMeters   float64        `json:"accuracyMeters" bson:"accuracy_meters"`
	FileKey          string         `json:"fileKey" bson:"file_key"`
	PublicPhotoURL   string         `json:"publicPhotoUrl" bson:"public_photo_url"`
	Status           ReportStatus   `json:"status" bson:"status"`
	ModerationScore  *float64       `json:"moderationScore,omitempty" bson:"moderation_score,omitempty"`
	ModerationReason *string        `json:"moderationReason,omitempty" bson:"moderation_reason,omitempty"`
	CreatedAt        time.Time      `json:"createdAt" bson:"created_at"`
	ValidatedAt      *time.Time     `json:"validatedAt,omitempty" bson:"validated_at,omitempty"`
}

// BoundingBox is a lng/lat rectangle, edges inclusive
type BoundingBox struct {
	MinLng float64
	MinLat float64
	MaxLng float64
	MaxLat float64
}

// Contains reports whether the point lies inside the box
func (b BoundingBox) Contains(p GeoPoint) bool {
	return p.Lng() >= b.MinLng && p.Lng() <= b.MaxLng &&
		p.Lat() >= b.MinLat && p.Lat() <= b.MaxLat
}

// SortOrder controls the created_at ordering of report queries
type SortOrder int

const (
	NewestFirst SortOrder = iota
	OldestFirst
)

// ReportFilter selects reports. Nil fields do not filter.
type ReportFilter struct {
	Category *ReportCategory
	Status   *ReportStatus
	BBox     *BoundingBox
	From     *time.Time
	To       *time.Time
	Order    SortOrder
	// Skip and Limit paginate; Limit 0 means unbounded
	Skip  int
	Limit int
}

// Matches applies the filter predicates (not ordering or paging) to r
func (f ReportFilter) Matches(r *Report) bool {
	if f.Category != nil && r.Category != *f.Category {
		return false
	}
	if f.Status != nil && r.Status != *f.Status {
		return false
	}
	if f.BBox != nil && !f.BBox.Contains(r.Location) {
		return false
	}
	if f.From != nil && r.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && r.CreatedAt.After(*f.To) {
		return false
	}
	return true
}

// FeedItem is the public representation of an approved report
type FeedItem struct {
	ID          string         `json:"id"`
	Category    ReportCategory `json:"category"`
	Description string         `json:"description"`
	Lat         float64        `json:"lat"`
	Lng         float64        `json:"lng"`
	CreatedAt   time.Time      `json:"createdAt"`
	Status      ReportStatus   `json:"status"`
	PhotoURL    string         `json:"photoUrl"`
}

// AdminReportItem is the administrator view of a report
type AdminReportItem struct {
	ID               string         `json:"id"`
	UserID           string         `json:"userId"`
	Category         ReportCategory `json:"category"`
	Description      string         `json:"description"`
	Lat              float64        `json:"lat"`
	Lng              float64        `json:"lng"`
	AccuracyMeters   float64        `json:"accuracyMeters"`
	Status           ReportStatus   `json:"status"`
	ModerationScore  *float64       `json:"moderationScore,omitempty"`
	ModerationReason *string        `json:"moderationReason,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
	ValidatedAt      *time.Time     `json:"validatedAt,omitempty"`
	PublicPhotoURL   string         `json:"publicPhotoUrl"`
}

// ToFeedItem converts a report to its public representation
func (r *Report) ToFeedItem() FeedItem {
	return FeedItem{
		ID:          r.ID,
		Category:    r.Category,
		Description: r.Description,
		Lat:         r.Location.Lat(),
		Lng:         r.Location.Lng(),
		CreatedAt:   r.CreatedAt,
		Status:      r.Status,
		PhotoURL:    r.PublicPhotoURL,
	}
}

// ToAdminItem converts a report to its administrator representation
func (r *Report) ToAdminItem() AdminReportItem {
	return AdminReportItem{
		ID:               r.ID,
		UserID:           r.UserID,
		Category:         r.Category,
		Description:      r.Description,
		Lat:              r.Location.Lat(),
		Lng:              r.Location.Lng(),
		AccuracyMeters:   r.AccuracyMeters,
		Status:           r.Status,
		ModerationScore:  r.ModerationScore,
		ModerationReason: r.ModerationReason,
		CreatedAt:        r.CreatedAt,
		ValidatedAt:      r.ValidatedAt,
		PublicPhotoURL:   r.PublicPhotoURL,
	}
}
