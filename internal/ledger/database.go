package ledger

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"ledgerview/internal/config"
	"ledgerview/internal/models"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB wraps the gorm handle for the upload ledger. The ledger is the only
// state the gateway owns; every financial entity stays upstream.
type DB struct {
	*gorm.DB
	config *config.LedgerConfig
}

func New(cfg *config.LedgerConfig) (*DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ledger database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxConnections)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping ledger database: %w", err)
	}

	return &DB{
		DB:     db,
		config: cfg,
	}, nil
}

func openDialector(cfg *config.LedgerConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres":
		return postgres.Open(cfg.DSN()), nil
	case "sqlite":
		return sqlite.Open(cfg.SQLitePath), nil
	default:
		return nil, fmt.Errorf("unsupported ledger driver %q", cfg.Driver)
	}
}

func (db *DB) AutoMigrate() error {
	return db.DB.AutoMigrate(
		&models.UploadBatch{},
		&models.UploadRecord{},
	)
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (db *DB) HealthCheck() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (db *DB) Transaction(fn func(*gorm.DB) error) error {
	return db.DB.Transaction(fn)
}

func (db *DB) CreateIndexes() error {
	queries := []string{
		"CREATE INDEX IF NOT EXISTS idx_upload_batches_account_id ON upload_batches(account_id)",
		"CREATE INDEX IF NOT EXISTS idx_upload_batches_status ON upload_batches(status)",
		"CREATE INDEX IF NOT EXISTS idx_upload_batches_created_at ON upload_batches(created_at)",
		"CREATE INDEX IF NOT EXISTS idx_upload_records_batch_id ON upload_records(batch_id)",
		"CREATE INDEX IF NOT EXISTS idx_upload_records_batch_row ON upload_records(batch_id, row_index)",
	}

	for _, query := range queries {
		if err := db.DB.Exec(query).Error; err != nil {
			log.Printf("Failed to create index: %s, error: %v", query, err)
		}
	}

	return nil
}

// waitForPostgres blocks until the ledger database accepts connections.
// gorm.Open fails fast, so the startup probe uses a plain database/sql
// connection with its own retry loop.
func waitForPostgres(cfg *config.LedgerConfig) error {
	probe, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to open readiness probe: %w", err)
	}
	defer probe.Close()

	return NewMigrationRunner(probe).WaitForDatabase()
}

// Initialize creates and configures the ledger database connection
func Initialize(cfg *config.Config) (*DB, error) {
	if cfg.Ledger.Driver == "postgres" {
		if err := waitForPostgres(&cfg.Ledger); err != nil {
			return nil, err
		}
	}

	db, err := New(&cfg.Ledger)
	if err != nil {
		return nil, err
	}

	// SQL migrations only apply to the postgres deployment path; sqlite
	// development ledgers rely on AutoMigrate.
	if cfg.Ledger.Driver == "postgres" {
		sqlDB, err := db.DB.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}

		if err := RunMigrationsIfEnabled(sqlDB); err != nil {
			log.Printf("Warning: migration runner failed: %v", err)
			log.Println("Falling back to GORM AutoMigrate...")

			if err := db.AutoMigrate(); err != nil {
				return nil, fmt.Errorf("failed to run migrations: %w", err)
			}
		}
	} else {
		if err := db.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	if err := db.CreateIndexes(); err != nil {
		log.Printf("Warning: failed to create some indexes: %v", err)
	}

	log.Println("Upload ledger initialized successfully")

	return db, nil
}
