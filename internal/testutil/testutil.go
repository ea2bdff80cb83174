package testutil

import (
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/NJ-LDS/reading-service/pkg"
)

// DB opens the integration test database named by TEST_POSTGRES_DSN and
// migrates the schema. Tests calling it are skipped when the variable is
// unset so the suite stays runnable without infrastructure.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		tb.Skip("TEST_POSTGRES_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		tb.Fatalf("open test database: %v", err)
	}

	if err := pkg.MigrateModels(db); err != nil {
		tb.Fatalf("migrate test schema: %v", err)
	}

	return db
}

// Tx returns a transaction that is rolled back when the test finishes, so
// tests never leak rows. Code under test that opens its own transactions
// nests via savepoints inside this one.
func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()

	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin test transaction: %v", tx.Error)
	}
	tb.Cleanup(func() {
		tx.Rollback()
	})
	return tx
}
