package domain

import "time"

// PropertyImage one image of a listing (property_images table).
// Ordering for grids: cover first, then display_order ascending.
type PropertyImage struct {
	ImageID      string    `db:"image_id" json:"image_id"`           // UUID, PRIMARY KEY
	PropertyID   string    `db:"property_id" json:"property_id"`     // UUID, FK properties
	URL          string    `db:"url" json:"url"`                     // public storage URL
	IsCover      bool      `db:"is_cover" json:"is_cover"`           // at most one per property
	DisplayOrder int       `db:"display_order" json:"display_order"` // ascending
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
