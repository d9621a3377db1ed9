// Command seed fills the database with demo users, articles and likes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/geo-articles/internal/jwt"
	"github.com/sbilibin2017/geo-articles/internal/logger"
	"github.com/sbilibin2017/geo-articles/internal/middlewares"
	"github.com/sbilibin2017/geo-articles/internal/migrations"
	"github.com/sbilibin2017/geo-articles/internal/repositories"
	"github.com/sbilibin2017/geo-articles/internal/seed"
	"github.com/sbilibin2017/geo-articles/internal/services"
	"github.com/sbilibin2017/geo-articles/internal/storage"
)

// seededSessionTTL keeps the sessions opened by registration short lived.
const seededSessionTTL = time.Minute

func main() {
	configPath := flag.String("c", "config.env", "Path to configuration file")
	users := flag.Int("users", 5, "Number of users to create")
	perUser := flag.Int("articles", 4, "Articles per user")
	seedValue := flag.Int64("seed", 0, "Random seed, 0 for a random one")
	flag.Parse()

	_ = godotenv.Load(*configPath)

	opts := seed.DefaultOptions()
	opts.Users = *users
	opts.ArticlesPerUser = *perUser
	opts.Seed = *seedValue

	if err := run(context.Background(), opts); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultValue
}

func run(ctx context.Context, opts seed.Options) error {
	if err := logger.Initialize(getEnv("APP_LOG_LEVEL", "info")); err != nil {
		return err
	}
	defer logger.Log.Sync()

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("POSTGRES_USER", "user"),
		getEnv("POSTGRES_PASSWORD", "password"),
		getEnv("POSTGRES_HOST", "localhost"),
		getEnv("POSTGRES_PORT", "5432"),
		getEnv("POSTGRES_DB", "database"),
	)
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()

	if err := migrations.Up(dsn); err != nil {
		return err
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("REDIS_DB: %w", err)
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", getEnv("REDIS_HOST", "localhost"), getEnv("REDIS_PORT", "6379")),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	})
	defer rdb.Close()

	images, err := storage.NewImageStore(getEnv("APP_PUBLIC_DIR", "public"), storage.DefaultMaxUploadSizeMB)
	if err != nil {
		return err
	}

	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db, middlewares.GetTxFromContext)
	tags := services.NewCachedTags(
		repositories.NewTagRepository(db, middlewares.GetTxFromContext),
		repositories.NewTagCacheRepository(rdb, 5*time.Minute),
		nil,
	)

	authService := services.NewAuthService(
		userReadRepo,
		userWriteRepo,
		repositories.NewSessionRepository(rdb, seededSessionTTL),
		jwt.New(jwt.WithSecretKey(getEnv("JWT_SECRET_KEY", "my_super_secret_key"))),
	)
	articleService := services.NewArticleService(
		repositories.NewArticleReadRepository(db, middlewares.GetTxFromContext),
		repositories.NewArticleWriteRepository(db, middlewares.GetTxFromContext),
		tags,
		tags,
		repositories.NewLikeRepository(db, middlewares.GetTxFromContext),
		images,
		services.NewEventPublisher(nil),
		nil,
	)

	summary, err := seed.NewFactory(authService, articleService, articleService, opts).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Created %d users, %d articles and %d likes (password %q)\n",
		summary.Users, summary.Articles, summary.Likes, seed.DefaultPassword)
	return nil
}
