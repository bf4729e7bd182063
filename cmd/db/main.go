package main

import (
	"log"
	"os"

	"go.uber.org/zap"

	"make10/internal/api"
	"make10/internal/config"
	"make10/internal/logging"
)

const dropTables = `DROP TABLE IF EXISTS lookups;`

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = config.DefaultDBPath
	}

	logger, err := logging.New("info", true)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Setting up database", zap.String("path", dbPath))

	db, err := api.InitDB(dbPath)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	// Drop existing tables
	logger.Info("Dropping existing tables...")
	if _, err := db.Exec(dropTables); err != nil {
		logger.Fatal("Failed to drop tables", zap.Error(err))
	}

	logger.Info("Creating tables...")
	if err := api.CreateSchema(db); err != nil {
		logger.Fatal("Failed to create tables", zap.Error(err))
	}

	logger.Info("Database setup completed successfully!")
}
