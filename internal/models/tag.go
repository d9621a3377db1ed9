package models

// Tag is a shared, named label attachable to many articles.
// swagger:model Tag
type Tag struct {
	// example: 3
	ID int64 `json:"id" db:"id"`

	// example: travel
	Name string `json:"name" db:"name"`
}
