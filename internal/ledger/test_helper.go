package ledger

import (
	"fmt"
	"testing"
	"time"

	"ledgerview/internal/config"
	"ledgerview/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test ledger: %v", err)
	}

	testDB := &DB{
		DB: db,
		config: &config.LedgerConfig{
			Driver:         "sqlite",
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test ledger: %v", err)
	}

	return testDB
}

func CreateTestBatch(t *testing.T, db *DB, accountID int64, rows int) *models.UploadBatch {
	t.Helper()

	batch := &models.UploadBatch{
		AccountID:   accountID,
		FileName:    "transactions.csv",
		Status:      models.BatchStatusPreviewed,
		RecordCount: rows,
	}

	for i := 0; i < rows; i++ {
		batch.Records = append(batch.Records, models.UploadRecord{
			RowIndex:    i,
			Amount:      decimal.NewFromFloat(-12.50).Add(decimal.NewFromInt(int64(i))),
			Description: fmt.Sprintf("Test purchase %d", i+1),
			Category:    models.CategoryGeneral,
			Currency:    "USD",
			Status:      models.RecordStatusPending,
		})
	}

	if err := db.Create(batch).Error; err != nil {
		t.Fatalf("failed to create test batch: %v", err)
	}

	return batch
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	tables := []string{
		"upload_records",
		"upload_batches",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("failed to cleanup table %s: %v", table, err)
		}
	}
}

func TouchBatch(t *testing.T, db *DB, batchID string, createdAt time.Time) {
	t.Helper()

	if err := db.Model(&models.UploadBatch{}).
		Where("id = ?", batchID).
		Update("created_at", createdAt).Error; err != nil {
		t.Fatalf("failed to backdate test batch: %v", err)
	}
}
