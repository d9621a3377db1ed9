package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	_ "github.com/sbilibin2017/geo-articles/docs"
	"github.com/sbilibin2017/geo-articles/internal/handlers"
	"github.com/sbilibin2017/geo-articles/internal/health"
	"github.com/sbilibin2017/geo-articles/internal/jwt"
	"github.com/sbilibin2017/geo-articles/internal/logger"
	"github.com/sbilibin2017/geo-articles/internal/metrics"
	"github.com/sbilibin2017/geo-articles/internal/middlewares"
	"github.com/sbilibin2017/geo-articles/internal/migrations"
	"github.com/sbilibin2017/geo-articles/internal/repositories"
	"github.com/sbilibin2017/geo-articles/internal/services"
	"github.com/sbilibin2017/geo-articles/internal/storage"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds every setting read from the environment.
type config struct {
	AppHost      string
	AppPort      string
	LogLevel     string
	LogFormat    string
	PublicDir    string
	UploadMaxMB  int
	CORSOrigins  []string
	RateLimitRPM int

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int
	TagsCacheTTL      time.Duration

	JWTSecretKey   string
	SessionTTL     time.Duration
	CookieSecure   bool
	KafkaBrokers   []string
	KafkaTopic     string
	GRPCHealthPort string
}

// postgresDSN builds the connection string for PostgreSQL.
func (c config) postgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDB)
}

// @title geo-articles API
// @version 1.0.0
// @description Location-aware article sharing: geotagged posts with tags, images and likes
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name session
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application, database, Redis, session, Kafka and health configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		n, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return n, nil
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("APP_LOG_FORMAT", "json")
	cfg.PublicDir = getEnv("APP_PUBLIC_DIR", "public")
	cfg.CORSOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"))
	if cfg.UploadMaxMB, err = getInt("UPLOAD_MAX_MB", strconv.Itoa(storage.DefaultMaxUploadSizeMB)); err != nil {
		return
	}
	if cfg.RateLimitRPM, err = getInt("RATE_LIMIT_RPM", "300"); err != nil {
		return
	}

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	if cfg.PGPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}
	tagsTTL, err := getInt("TAGS_CACHE_TTL_SECOND", "300")
	if err != nil {
		return
	}
	cfg.TagsCacheTTL = time.Duration(tagsTTL) * time.Second

	// Session config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	ttl, err := getInt("SESSION_TTL_SECOND", "86400")
	if err != nil {
		return
	}
	cfg.SessionTTL = time.Duration(ttl) * time.Second
	if cfg.CookieSecure, err = strconv.ParseBool(getEnv("COOKIE_SECURE", "false")); err != nil {
		err = fmt.Errorf("COOKIE_SECURE: %w", err)
		return
	}

	// Kafka config, no brokers disables publishing
	cfg.KafkaBrokers = splitList(getEnv("KAFKA_BROKERS", ""))
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "article-events")

	// gRPC health config, empty disables the listener
	cfg.GRPCHealthPort = getEnv("GRPC_HEALTH_PORT", "")

	return
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// run initializes the logger, database, Redis, Kafka writer and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.InitializeWithEncoding(cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := cfg.postgresDSN()
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d/%s", cfg.PGHost, cfg.PGPort, cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("PostgreSQL ping failed: %w", err)
	}

	if err := migrations.Up(dsn); err != nil {
		return err
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis connection error: %w", err)
	}
	defer rdb.Close()

	// Kafka writer
	var kafkaWriter services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		w := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  cfg.KafkaTopic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			WriteTimeout:           5 * time.Second,
		}
		defer w.Close()
		kafkaWriter = w
		logger.Log.Infow("Kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	images, err := storage.NewImageStore(cfg.PublicDir, cfg.UploadMaxMB)
	if err != nil {
		return err
	}

	tokens := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithExpiration(cfg.SessionTTL),
		jwt.WithSecureCookie(cfg.CookieSecure),
	)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db, middlewares.GetTxFromContext)
	sessionRepo := repositories.NewSessionRepository(rdb, cfg.SessionTTL)
	articleReadRepo := repositories.NewArticleReadRepository(db, middlewares.GetTxFromContext)
	articleWriteRepo := repositories.NewArticleWriteRepository(db, middlewares.GetTxFromContext)
	tagRepo := repositories.NewTagRepository(db, middlewares.GetTxFromContext)
	likeRepo := repositories.NewLikeRepository(db, middlewares.GetTxFromContext)
	tagCacheRepo := repositories.NewTagCacheRepository(rdb, cfg.TagsCacheTTL)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, sessionRepo, tokens)
	userService := services.NewUserService(userReadRepo, userWriteRepo)
	tags := services.NewCachedTags(tagRepo, tagCacheRepo, middlewares.AfterCommit)
	articleService := services.NewArticleService(
		articleReadRepo,
		articleWriteRepo,
		tags,
		tags,
		likeRepo,
		images,
		services.NewEventPublisher(kafkaWriter),
		middlewares.AfterCommit,
	)

	// Health checks
	checker := health.NewChecker(2 * time.Second)
	checker.Add("postgres", db.PingContext)
	checker.Add("redis", func(ctx context.Context) error { return rdb.Ping(ctx).Err() })

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authMiddleware := middlewares.AuthMiddleware(tokens, sessionRepo)
	optionalAuthMiddleware := middlewares.OptionalAuthMiddleware(tokens, sessionRepo)

	r.Route("/api", func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.RateLimitRPM, time.Minute))

		// Public routes
		r.With(middlewares.TxMiddleware(db)).Post("/register", handlers.NewRegisterHandler(authService, tokens))
		r.Post("/login", handlers.NewLoginHandler(authService, tokens))
		r.Get("/tags", handlers.NewTagsHandler(articleService))

		// Public routes that personalise for a signed in reader
		r.Group(func(r chi.Router) {
			r.Use(optionalAuthMiddleware)
			r.Get("/articles", handlers.NewArticleListHandler(articleService))
			r.Get("/articles/{id}", handlers.NewArticleGetHandler(articleService))
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/logout", handlers.NewLogoutHandler(authService, tokens))
			r.Get("/user", handlers.NewProfileHandler(userService))
			r.Put("/user/location", handlers.NewLocationHandler(userService))

			r.Group(func(r chi.Router) {
				r.Use(middlewares.TxMiddleware(db))
				r.Post("/articles", handlers.NewArticleCreateHandler(articleService, images))
				r.Put("/articles/{id}", handlers.NewArticleUpdateHandler(articleService, images))
				r.Delete("/articles/{id}", handlers.NewArticleDeleteHandler(articleService))
				r.Post("/articles/{id}/like", handlers.NewLikeHandler(articleService))
			})
		})
	})

	r.Handle(storage.URLPrefix+"*", http.StripPrefix(storage.URLPrefix, http.FileServer(http.Dir(images.Dir()))))
	r.Get("/healthz", health.NewHandler(checker))
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.NotFound(handlers.NewStaticHandler(cfg.PublicDir))

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.AppHost, cfg.AppPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 2)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go checker.Watch(ctxShutdown, 15*time.Second)

	var grpcServer *grpc.Server
	if cfg.GRPCHealthPort != "" {
		lis, err := net.Listen("tcp", net.JoinHostPort(cfg.AppHost, cfg.GRPCHealthPort))
		if err != nil {
			return fmt.Errorf("gRPC health listener: %w", err)
		}
		grpcServer = grpc.NewServer()
		checker.Register(grpcServer)

		go func() {
			logger.Log.Infof("gRPC health server listening on %s", lis.Addr())
			if err := grpcServer.Serve(lis); err != nil {
				errChan <- fmt.Errorf("gRPC health server failed: %w", err)
			}
		}()
	}

	go func() {
		logger.Log.Infof("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping servers...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}

	logger.Log.Info("Servers stopped gracefully")
	return nil
}
