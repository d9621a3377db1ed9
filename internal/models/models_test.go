package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSortMode(t *testing.T) {
	assert.Equal(t, SortLikes, ParseSortMode("likes"))
	assert.Equal(t, SortDistance, ParseSortMode(" Distance "))
	assert.Equal(t, SortNewest, ParseSortMode("newest"))
	assert.Equal(t, SortNewest, ParseSortMode(""))
	assert.Equal(t, SortNewest, ParseSortMode("oldest"))
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"trims and drops empty", []string{" a ", "", "  ", "b"}, []string{"a", "b"}},
		{"keeps case distinct", []string{"Go", "go"}, []string{"Go", "go"}},
		{"collapses duplicates keeping order", []string{"x", "y", "x"}, []string{"x", "y"}},
		{"strips separator", []string{"a" + TagSeparator + "b"}, []string{"ab"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTags(tt.in))
		})
	}
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{}, SplitTags(""))
	assert.Equal(t, []string{}, SplitTags(" , "))
	assert.Equal(t, []string{"x", "y"}, SplitTags("x, y,x"))
}

func TestArticleDB_ToArticle(t *testing.T) {
	row := ArticleDB{ID: 1, Title: "t", Tags: "a" + TagSeparator + "b", LikeCount: 2}
	a := row.ToArticle()
	assert.Equal(t, []string{"a", "b"}, a.Tags)
	assert.Equal(t, int64(2), a.LikeCount)
	assert.Nil(t, a.Liked)

	empty := ArticleDB{ID: 2}
	assert.Equal(t, []string{}, empty.ToArticle().Tags)
}

func TestUserDB_Profile(t *testing.T) {
	lat := 1.5
	u := UserDB{ID: 3, Username: "u", Email: "u@example.com", PasswordHash: "h", Latitude: &lat}
	p := u.Profile()
	assert.Equal(t, int64(3), p.ID)
	assert.Equal(t, &lat, p.Latitude)
	assert.Nil(t, p.Longitude)
}
