package models

import (
	"strings"
	"time"

	"github.com/sbilibin2017/geo-articles/internal/geo"
)

// SortMode selects the ordering of an article listing.
type SortMode string

// Supported sort modes
const (
	SortNewest   SortMode = "newest"
	SortLikes    SortMode = "likes"
	SortDistance SortMode = "distance"
)

// ParseSortMode maps a query value to a SortMode. Unknown or empty values
// fall back to SortNewest.
func ParseSortMode(s string) SortMode {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case SortLikes:
		return SortLikes
	case SortDistance:
		return SortDistance
	default:
		return SortNewest
	}
}

// ArticleDB represents an aggregated article row as returned by the listing query.
type ArticleDB struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	ImageURL  *string   `db:"image_url"`
	UserID    int64     `db:"user_id"`
	Author    string    `db:"author"`
	Latitude  float64   `db:"latitude"`
	Longitude float64   `db:"longitude"`
	LikeCount int64     `db:"like_count"`
	Tags      string    `db:"tags"`
	Liked     bool      `db:"liked"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// TagSeparator joins tag names inside a single aggregated column.
// Tag names never contain it because it is stripped on input.
const TagSeparator = "\x1f"

// Article is the API representation of an article.
// swagger:model Article
type Article struct {
	// example: 1
	ID int64 `json:"id"`

	// example: Sunset over the bay
	Title string `json:"title"`

	// example: The light was amazing tonight.
	Content string `json:"content"`

	// example: /uploads/1700000000000.jpg
	ImageURL *string `json:"image_url"`

	// example: 7
	UserID int64 `json:"user_id"`

	// example: john_doe
	Author string `json:"author"`

	// example: 48.8566
	Latitude float64 `json:"latitude"`

	// example: 2.3522
	Longitude float64 `json:"longitude"`

	// example: 3
	LikeCount int64 `json:"like_count"`

	// example: ["travel","sunset"]
	Tags []string `json:"tags"`

	// Present only when the request is authenticated
	Liked *bool `json:"liked,omitempty"`

	// Present only when a reference coordinate is supplied
	DistanceKm *float64  `json:"distance_km,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToArticle converts the aggregated row into its API representation,
// splitting the aggregated tag list back into an ordered slice.
func (a *ArticleDB) ToArticle() Article {
	tags := []string{}
	if a.Tags != "" {
		tags = strings.Split(a.Tags, TagSeparator)
	}
	return Article{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		ImageURL:  a.ImageURL,
		UserID:    a.UserID,
		Author:    a.Author,
		Latitude:  a.Latitude,
		Longitude: a.Longitude,
		LikeCount: a.LikeCount,
		Tags:      tags,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// Point returns the article's coordinate.
func (a *Article) Point() geo.Point {
	return geo.Point{Latitude: a.Latitude, Longitude: a.Longitude}
}

// ArticleFilter holds the optional filters of an article listing.
// A nil or empty field imposes no restriction.
type ArticleFilter struct {
	Tags      []string
	UserID    *int64
	Sort      SortMode
	Reference *geo.Point
	ViewerID  *int64
}

// NewArticle holds the fields of an article to be created.
type NewArticle struct {
	Title     string
	Content   string
	ImageURL  *string
	UserID    int64
	Latitude  float64
	Longitude float64
	Tags      []string
}

// ArticlePatch is a partial update. A nil field is left unchanged;
// Tags set to a pointer to an empty slice clears every tag link.
type ArticlePatch struct {
	Title     *string
	Content   *string
	ImageURL  *string
	Latitude  *float64
	Longitude *float64
	Tags      *[]string
}

// NormalizeTags trims every name, drops empty names and the aggregation
// separator, and removes duplicates while keeping the first occurrence order.
// Names are compared case-sensitively.
func NormalizeTags(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, name := range raw {
		name = strings.TrimSpace(strings.ReplaceAll(name, TagSeparator, ""))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// SplitTags splits a comma separated tag list and normalizes it.
func SplitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return NormalizeTags(strings.Split(s, ","))
}
