package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"docvault/internal/config"
	"docvault/internal/domain/services"
	"docvault/internal/repository/postgres"
	"docvault/internal/seed"
	"docvault/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't provision demo tenants")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: Cannot run --drop-tables in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	// Load template manifest
	manifest, err := seed.LoadManifest(cfg.TemplateManifestPath)
	if err != nil {
		log.Fatalf("Failed to load template manifest: %v", err)
	}

	// Create repositories and the provisioning service
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	tenantRepo := postgres.NewTenantRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	fileRepo := postgres.NewFileRepository(repoConfig)
	provision := service.NewProvisionService(tenantRepo, folderRepo, fileRepo, manifest, logger)

	// Provision one demo tenant of each type
	demos := []services.CreateTenantRequest{
		{Name: "Acme Industries", Type: "company"},
		{Name: "BlueSky Recruitment", Type: "agency"},
		{Name: "Jordan Lee", Type: "individual"},
	}

	for i, req := range demos {
		tenant, err := provision.CreateTenant(ctx, &req)
		if err != nil {
			log.Printf("Failed to create tenant '%s': %v", req.Name, err)
			continue
		}
		log.Printf("Created tenant %d/%d: %s (ID: %s, type: %s)",
			i+1, len(demos), tenant.Name, tenant.ID, tenant.Type)
	}

	log.Println("Seeding complete!")
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	// Enable UUID extension
	_, err := pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"")
	if err != nil {
		return err
	}

	// Create tenants table
	createTenants := `
		CREATE TABLE IF NOT EXISTS ` + tables.Tenants + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createTenants); err != nil {
		return err
	}

	// Create folders table. The self-referencing cascade is what makes
	// a single root-row delete take out the whole subtree.
	createFolders := `
		CREATE TABLE IF NOT EXISTS ` + tables.Folders + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			tenant_id UUID NOT NULL REFERENCES ` + tables.Tenants + `(id) ON DELETE CASCADE,
			parent_id UUID REFERENCES ` + tables.Folders + `(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			is_locked BOOLEAN NOT NULL DEFAULT FALSE,
			password TEXT,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE(tenant_id, parent_id, name)
		)
	`
	if _, err := pool.Exec(ctx, createFolders); err != nil {
		return err
	}

	// Create files table
	createFiles := `
		CREATE TABLE IF NOT EXISTS ` + tables.Files + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			folder_id UUID NOT NULL REFERENCES ` + tables.Folders + `(id) ON DELETE CASCADE,
			tenant_user_id UUID,
			name TEXT NOT NULL,
			external_key TEXT,
			url TEXT,
			size BIGINT NOT NULL DEFAULT 0,
			mime_type TEXT,
			category TEXT,
			issue_date TIMESTAMPTZ,
			expiry_date TIMESTAMPTZ,
			renewal_date TIMESTAMPTZ,
			place_of_issue TEXT,
			deleted_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createFiles); err != nil {
		return err
	}

	// Create indexes
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `folders_tenant_parent ON ` + tables.Folders + `(tenant_id, parent_id)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_` + tablePrefix + `folders_root_unique ON ` + tables.Folders + `(tenant_id, name) WHERE parent_id IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `files_folder_id ON ` + tables.Files + `(folder_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `files_deleted_at ON ` + tables.Files + `(deleted_at) WHERE deleted_at IS NOT NULL`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops the tables in dependency order
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	drops := []string{
		`DROP TABLE IF EXISTS ` + tables.Files + ` CASCADE`,
		`DROP TABLE IF EXISTS ` + tables.Folders + ` CASCADE`,
		`DROP TABLE IF EXISTS ` + tables.Tenants + ` CASCADE`,
	}
	for _, dropSQL := range drops {
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
	}
	return nil
}
