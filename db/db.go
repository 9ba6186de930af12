// api/db/db.go
package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/policyguard/api/config"
	logger "github.com/policyguard/api/logging"
	"github.com/policyguard/api/model"
)

var DB *gorm.DB

func InitDB() error {
	path := config.GetString("sqlite.path")
	logger.Info("Opening sqlite database", zap.String("path", path))

	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to access underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1) // sqlite handles one writer
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := DB.AutoMigrate(
		&model.User{},
		&model.PolicyDocument{},
		&model.Rule{},
		&model.Employee{},
		&model.Violation{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	logger.Info("Successfully connected to sqlite")
	return nil
}

func CloseDB() {
	if DB == nil {
		return
	}
	sqlDB, err := DB.DB()
	if err != nil {
		logger.Error("Error accessing sql.DB on close", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing sqlite connection", zap.Error(err))
	} else {
		logger.Info("Sqlite connection closed successfully")
	}
}
