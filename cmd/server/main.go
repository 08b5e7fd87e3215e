package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"docvault/internal/auth"
	"docvault/internal/config"
	"docvault/internal/handler"
	"docvault/internal/middleware"
	"docvault/internal/repository/memory"
	"docvault/internal/repository/postgres"
	redisrepo "docvault/internal/repository/redis"
	"docvault/internal/seed"
	"docvault/internal/service"
	"docvault/internal/storage"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier
	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	tenantRepo := postgres.NewTenantRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	fileRepo := postgres.NewFileRepository(repoConfig)

	// Grant store: shared Redis cache when configured, in-process map
	// otherwise (single-instance deployments)
	grants := memory.NewGrantStore()
	if cfg.RedisAddr != "" {
		redisClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		grants = redisrepo.NewGrantStore(redisClient)
		logger.Info("grant store backed by redis", "addr", cfg.RedisAddr)
	}

	// External blob storage
	blobs, err := storage.NewMinioStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create blob store: %v", err)
	}

	// Template manifest (shared blob keys exempt from cascading deletes)
	manifest, err := seed.LoadManifest(cfg.TemplateManifestPath)
	if err != nil {
		log.Fatalf("Failed to load template manifest: %v", err)
	}
	templates := manifest.TemplateSet()

	// Create services
	folderService := service.NewFolderService(folderRepo, logger)
	fileService := service.NewFileService(fileRepo, folderRepo, blobs, logger)
	lockService := service.NewLockService(folderRepo, grants, logger)
	navigator := service.NewNavigatorService(folderRepo, fileRepo, grants, logger)
	statsService := service.NewStatsService(folderRepo, fileRepo, logger)
	lifecycleService := service.NewLifecycleService(tenantRepo, folderRepo, fileRepo, grants, blobs, templates, logger)
	provisionService := service.NewProvisionService(tenantRepo, folderRepo, fileRepo, manifest, logger)

	// Background sweeps: auto-relock and trash purge
	sweeper := service.NewSweeper(lockService, lifecycleService, logger)
	sweeper.Start(ctx)

	// Create handlers
	folderHandler := handler.NewFolderHandler(folderService, lockService, navigator, statsService, lifecycleService, logger)
	lockHandler := handler.NewLockHandler(lockService, logger)
	fileHandler := handler.NewFileHandler(fileService, lifecycleService, logger)
	tenantHandler := handler.NewTenantHandler(provisionService, lifecycleService, logger)
	sweepHandler := handler.NewSweepHandler(lockService, lifecycleService, config.TrashRetention, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", folderHandler.HealthCheck)

	// Folder routes
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders", folderHandler.ListChildren)
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.RenameFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)
	mux.HandleFunc("GET /api/folders/{id}/open", folderHandler.OpenFolder)
	mux.HandleFunc("GET /api/folders/{id}/stats", folderHandler.GetStats)

	// Lock routes
	mux.HandleFunc("POST /api/folders/{id}/lock", lockHandler.LockFolder)
	mux.HandleFunc("POST /api/folders/{id}/unlock", lockHandler.UnlockFolder)
	mux.HandleFunc("POST /api/folders/{id}/verify-password", lockHandler.VerifyPassword)

	// File routes
	mux.HandleFunc("POST /api/files", fileHandler.UploadFile)
	mux.HandleFunc("GET /api/files/trash", fileHandler.ListTrash) // Must come before {id} route
	mux.HandleFunc("GET /api/files/{id}", fileHandler.GetFile)
	mux.HandleFunc("DELETE /api/files/{id}", fileHandler.SoftDeleteFile)
	mux.HandleFunc("POST /api/files/{id}/restore", fileHandler.RestoreFile)
	mux.HandleFunc("DELETE /api/files/{id}/permanent", fileHandler.PermanentDeleteFile)

	// Tenant routes
	mux.HandleFunc("POST /api/tenants", tenantHandler.CreateTenant)
	mux.HandleFunc("DELETE /api/tenants/{id}", tenantHandler.DeleteTenant)

	// Manual sweep routes
	mux.HandleFunc("POST /api/sweeps/purge", sweepHandler.RunPurge)
	mux.HandleFunc("POST /api/sweeps/relock", sweepHandler.RunRelock)

	// Build middleware chain
	var httpHandler http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	httpHandler = middleware.AuthMiddleware(jwtVerifier)(httpHandler)
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Folder-Password"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
