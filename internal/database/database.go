package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	DB *gorm.DB
}

func New(databaseURL string) (*Database, error) {
	var db *gorm.DB
	var err error

	if strings.HasPrefix(databaseURL, "sqlite://") {
		// SQLite for development
		dbPath := strings.TrimPrefix(databaseURL, "sqlite://")
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	} else {
		// PostgreSQL for production
		db, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Create tables manually with raw SQL
	createTablesSQL := `
	CREATE TABLE IF NOT EXISTS staged_products (
		id TEXT PRIMARY KEY,
		barcode TEXT UNIQUE NOT NULL,
		external_sku TEXT,
		name TEXT NOT NULL,
		brand TEXT,
		price DECIMAL(10,2) DEFAULT 0,
		currency TEXT DEFAULT 'TRY',
		main_category TEXT,
		sub_category TEXT,
		description TEXT,
		image_url TEXT,
		source_url TEXT,
		rating DECIMAL(3,1) DEFAULT 0,
		review_count INTEGER DEFAULT 0,
		raw_payload TEXT,
		remote_product_id BIGINT,
		sync_status TEXT DEFAULT 'pending',
		sync_error TEXT,
		synced_at TIMESTAMP,
		created_at TIMESTAMP,
		updated_at TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS import_runs (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		dry_run BOOLEAN DEFAULT false,
		total INTEGER DEFAULT 0,
		created INTEGER DEFAULT 0,
		updated INTEGER DEFAULT 0,
		skipped INTEGER DEFAULT 0,
		failed INTEGER DEFAULT 0,
		errors TEXT,
		started_at TIMESTAMP,
		finished_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_staged_products_sync_status ON staged_products (sync_status);
	`

	err = db.Exec(createTablesSQL).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
