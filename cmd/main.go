package main

import (
	"context"
	"errors"
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

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"google.golang.org/grpc"
	"golang.org/x/crypto/bcrypt"

	"github.com/sbilibin2017/gw-user-posts/internal/health"
	"github.com/sbilibin2017/gw-user-posts/internal/jwt"
	"github.com/sbilibin2017/gw-user-posts/internal/logger"
	"github.com/sbilibin2017/gw-user-posts/internal/middlewares"
	"github.com/sbilibin2017/gw-user-posts/internal/password"
	"github.com/sbilibin2017/gw-user-posts/internal/repositories"
	"github.com/sbilibin2017/gw-user-posts/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/sbilibin2017/gw-user-posts/docs"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds everything read from the environment.
type config struct {
	AppHost        string
	AppPort        string
	LogLevel       string
	RequestTimeout time.Duration
	CORSOrigins    []string

	DatabaseURI    string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int

	LoginMaxAttempts int64
	LoginWindow      time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	GRPCPort string

	JWTSecretKey string
	JWTExp       time.Duration
	BcryptCost   int
}

// @title gw-user-posts API
// @version 1.0.0
// @description User accounts and user-owned posts with token authentication
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
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
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application configuration. JWT_SECRET_KEY has no default.
func parseConfig(path string) (*config, error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	var err error
	getInt := func(key, defaultValue string) int {
		if err != nil {
			return 0
		}
		var v int
		if v, err = strconv.Atoi(getEnv(key, defaultValue)); err != nil {
			err = fmt.Errorf("%s: %w", key, err)
		}
		return v
	}

	cfg := &config{
		AppHost:  getEnv("APP_HOST", "localhost"),
		AppPort:  getEnv("APP_PORT", "8080"),
		LogLevel: getEnv("APP_LOG_LEVEL", "info"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "user-posts-events"),

		GRPCPort:     getEnv("GRPC_PORT", "50051"),
		JWTSecretKey: getEnv("JWT_SECRET_KEY", ""),
		CORSOrigins:  splitList(getEnv("APP_CORS_ALLOWED_ORIGINS", "*")),
	}

	cfg.RequestTimeout = time.Duration(getInt("APP_REQUEST_TIMEOUT_SECOND", "15")) * time.Second

	// PostgreSQL config
	cfg.DatabaseURI = getEnv("DATABASE_URI", "")
	if cfg.DatabaseURI == "" {
		cfg.DatabaseURI = fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			getEnv("POSTGRES_USER", "user"),
			getEnv("POSTGRES_PASSWORD", "password"),
			getEnv("POSTGRES_HOST", "localhost"),
			getInt("POSTGRES_PORT", "5432"),
			getEnv("POSTGRES_DB", "database"),
		)
	}
	cfg.PGMaxOpenConns = getInt("POSTGRES_MAX_OPEN_CONNS", "16")
	cfg.PGMaxIdleConns = getInt("POSTGRES_MAX_IDLE_CONNS", "8")

	// Redis config
	cfg.RedisPort = getInt("REDIS_PORT", "6379")
	cfg.RedisDB = getInt("REDIS_DB", "0")
	cfg.RedisPoolSize = getInt("REDIS_POOL_SIZE", "10")
	cfg.RedisMinIdleConns = getInt("REDIS_MIN_IDLE_CONNS", "2")

	// Login limiting
	cfg.LoginMaxAttempts = int64(getInt("LOGIN_MAX_ATTEMPTS", "5"))
	cfg.LoginWindow = time.Duration(getInt("LOGIN_WINDOW_SECOND", "60")) * time.Second

	// JWT and password hashing
	cfg.JWTExp = time.Duration(getInt("JWT_EXP_SECOND", "3600")) * time.Second
	cfg.BcryptCost = getInt("BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost))

	if err != nil {
		return nil, err
	}
	if cfg.JWTSecretKey == "" {
		return nil, errors.New("JWT_SECRET_KEY is required")
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// run initializes the logger, database, Redis, Kafka, the gRPC health server
// and the HTTP server, then blocks until ctx is cancelled or a signal arrives.
func run(ctx context.Context, cfg *config) error {
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	log := logger.Log
	log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.DatabaseURI)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	if err := repositories.RunMigrations(ctx, db.DB); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
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

	// Kafka writer, optional
	var writer services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		writer = &kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  cfg.KafkaTopic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		}
		log.Infow("Kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}
	publisher := services.NewEventPublisher(writer, services.WithScheduler(middlewares.AfterCommit))
	defer publisher.Close()

	tokens, err := jwt.New(jwt.WithSecretKey(cfg.JWTSecretKey), jwt.WithExpiration(cfg.JWTExp))
	if err != nil {
		return err
	}

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db, middlewares.GetTxFromContext)
	userWriteRepo := repositories.NewUserWriteRepository(db, middlewares.GetTxFromContext)
	postReadRepo := repositories.NewPostReadRepository(db, middlewares.GetTxFromContext)
	postWriteRepo := repositories.NewPostWriteRepository(db, middlewares.GetTxFromContext)
	attempts := repositories.NewLoginAttemptCacheRepository(rdb, cfg.LoginWindow)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, password.NewBcryptHasher(cfg.BcryptCost),
		tokens, attempts, cfg.LoginMaxAttempts, publisher)
	userService := services.NewUserService(userReadRepo, userWriteRepo, publisher)
	postService := services.NewPostService(postReadRepo, postWriteRepo, publisher)

	r := newRouter(routerDeps{
		auth:           authService,
		users:          userService,
		posts:          postService,
		tokener:        tokens,
		pinger:         db,
		tx:             middlewares.TxMiddleware(db, log),
		log:            log,
		requestTimeout: cfg.RequestTimeout,
		corsOrigins:    cfg.CORSOrigins,
		swaggerURL:     fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort),
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.AppHost, cfg.AppPort),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// gRPC health service
	lis, err := net.Listen("tcp", net.JoinHostPort(cfg.AppHost, cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("gRPC listen failed: %w", err)
	}
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer(db, health.DefaultInterval)
	healthServer.Register(grpcServer)

	// Graceful shutdown
	errChan := make(chan error, 2)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go healthServer.Watch(ctxShutdown)

	go func() {
		log.Infof("gRPC health server listening on %s", lis.Addr())
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server failed: %w", err)
		}
	}()

	go func() {
		log.Infof("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctxShutdown.Done():
		log.Info("Shutdown signal received, stopping servers...")
	case serveErr = <-errChan:
		log.Errorw("server failed, shutting down", "error", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	}
	grpcServer.GracefulStop()

	log.Info("Servers stopped gracefully")
	return serveErr
}
