package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB opens the session store. The default DSN is an in-memory sqlite
// database, so the ledger lives and dies with the process; pointing
// DATABASE_DSN at a file is only useful for local poking, the contract is a
// non-durable session-scoped store.
func ConnectDB(dsn string) *gorm.DB {
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		log.Fatal("Failed to open session store. \n", err)
	}

	// A single connection keeps the shared in-memory database alive and
	// serializes writers, matching the one-operation-at-a-time model.
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	log.Println("Session store ready")
	return db
}
