// Package seed fills a fresh database with demo users, articles and likes.
// It goes through the same services as the HTTP API.
package seed

//go:generate mockgen -source=seed.go -destination=seed_mock.go -package=seed

import (
	"context"
	"fmt"
	"math"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/sbilibin2017/geo-articles/internal/geo"
	"github.com/sbilibin2017/geo-articles/internal/logger"
	"github.com/sbilibin2017/geo-articles/internal/models"
)

// DefaultPassword is set on every seeded account.
const DefaultPassword = "password123"

// kmPerDegree is the length of one degree of latitude.
const kmPerDegree = 111.0

// Registerer creates accounts.
type Registerer interface {
	Register(ctx context.Context, username, email, password string) (*models.UserProfile, string, error)
}

// ArticleCreator publishes articles.
type ArticleCreator interface {
	Create(ctx context.Context, a models.NewArticle) (*models.Article, error)
}

// LikeToggler likes articles.
type LikeToggler interface {
	ToggleLike(ctx context.Context, userID, articleID int64) (bool, int64, error)
}

// Options controls how much data is generated and where.
type Options struct {
	Users           int
	ArticlesPerUser int
	// LikeRatio is the chance a user likes any other user's article.
	LikeRatio float64
	Tags      []string
	Center    geo.Point
	RadiusKm  float64
	// Seed makes the generated data reproducible; 0 picks a random seed.
	Seed int64
}

// DefaultOptions returns a small demo data set around Paris.
func DefaultOptions() Options {
	return Options{
		Users:           5,
		ArticlesPerUser: 4,
		LikeRatio:       0.3,
		Tags:            []string{"travel", "food", "nature", "city", "history", "art", "sunset", "beach"},
		Center:          geo.Point{Latitude: 48.8566, Longitude: 2.3522},
		RadiusKm:        50,
	}
}

// Summary counts what a run created.
type Summary struct {
	Users    int
	Articles int
	Likes    int
}

// Factory builds demo entities and persists them through the services.
type Factory struct {
	users    Registerer
	articles ArticleCreator
	likes    LikeToggler
	faker    *gofakeit.Faker
	opts     Options
}

// NewFactory creates a Factory.
func NewFactory(users Registerer, articles ArticleCreator, likes LikeToggler, opts Options) *Factory {
	return &Factory{
		users:    users,
		articles: articles,
		likes:    likes,
		faker:    gofakeit.New(opts.Seed),
		opts:     opts,
	}
}

// Run creates the users, then their articles, then likes between them.
// It stops at the first error.
func (f *Factory) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	profiles := make([]*models.UserProfile, 0, f.opts.Users)
	for i := 0; i < f.opts.Users; i++ {
		username, email := f.account(i)
		profile, _, err := f.users.Register(ctx, username, email, DefaultPassword)
		if err != nil {
			return sum, fmt.Errorf("register %s: %w", username, err)
		}
		profiles = append(profiles, profile)
		sum.Users++
	}

	var articles []*models.Article
	for _, p := range profiles {
		for j := 0; j < f.opts.ArticlesPerUser; j++ {
			a, err := f.articles.Create(ctx, f.BuildArticle(p.ID))
			if err != nil {
				return sum, fmt.Errorf("create article for user %d: %w", p.ID, err)
			}
			articles = append(articles, a)
			sum.Articles++
		}
	}

	for _, p := range profiles {
		for _, a := range articles {
			if a.UserID == p.ID || f.faker.Float64Range(0, 1) >= f.opts.LikeRatio {
				continue
			}
			if _, _, err := f.likes.ToggleLike(ctx, p.ID, a.ID); err != nil {
				return sum, fmt.Errorf("like article %d: %w", a.ID, err)
			}
			sum.Likes++
		}
	}

	logger.Log.Infow("seed completed", "users", sum.Users, "articles", sum.Articles, "likes", sum.Likes)
	return sum, nil
}

// account returns a unique username and email for the i-th user.
func (f *Factory) account(i int) (string, string) {
	name := fmt.Sprintf("%s_%d", f.faker.Username(), i)
	if len(name) > 50 {
		name = name[len(name)-50:]
	}
	return name, fmt.Sprintf("%s@%s", name, "example.com")
}

// BuildArticle returns a random article owned by userID without persisting it.
func (f *Factory) BuildArticle(userID int64) models.NewArticle {
	p := f.point()
	return models.NewArticle{
		Title:     f.faker.Sentence(5),
		Content:   f.faker.Paragraph(1, 3, 12, "\n"),
		UserID:    userID,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Tags:      f.tags(),
	}
}

// point returns a coordinate within RadiusKm of Center, clamped to the globe.
func (f *Factory) point() geo.Point {
	d := f.opts.RadiusKm / kmPerDegree
	lat := f.opts.Center.Latitude + f.faker.Float64Range(-d, d)
	lon := f.opts.Center.Longitude + f.faker.Float64Range(-d, d)
	return geo.Point{
		Latitude:  math.Max(-90, math.Min(90, lat)),
		Longitude: math.Max(-180, math.Min(180, lon)),
	}
}

// tags picks between one and three distinct tags.
func (f *Factory) tags() []string {
	if len(f.opts.Tags) == 0 {
		return []string{}
	}
	n := f.faker.Number(1, min(3, len(f.opts.Tags)))
	picked := make([]string, 0, n)
	for _, i := range f.faker.Rand.Perm(len(f.opts.Tags))[:n] {
		picked = append(picked, f.opts.Tags[i])
	}
	return picked
}
