package storage

import (
	"os"
	"path/filepath"
	"sync"

	"taskhive-backend/internal/config"
	"taskhive-backend/internal/util/logger"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var log = logger.GetLogger()

var (
	db   *gorm.DB
	once sync.Once
)

// GetDb returns the shared gorm handle. Production connects to Postgres via
// DATABASE_DSN; tests use an embedded sqlite file so the suite needs no
// running server.
func GetDb() *gorm.DB {
	once.Do(connect)
	return db
}

func connect() {
	env := config.GetEnv()

	gormConfig := &gorm.Config{
		Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
	}

	var err error
	if env.IsTesting {
		if mkdirErr := os.MkdirAll(env.TestDataFolder, 0o755); mkdirErr != nil {
			log.Error("Failed to create test data folder", "error", mkdirErr)
			os.Exit(1)
		}

		dbPath := filepath.Join(env.TestDataFolder, "taskhive_test.db")
		db, err = gorm.Open(sqlite.Open(dbPath), gormConfig)
	} else {
		db, err = gorm.Open(postgres.Open(env.DatabaseDsn), gormConfig)
	}

	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
}
