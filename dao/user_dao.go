// api/dao/user_dao.go
package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/policyguard/api/audit"
	pg_errors "github.com/policyguard/api/errors"
	logger "github.com/policyguard/api/logging"
	"github.com/policyguard/api/model"
)

type UserDAO struct {
	DB           *gorm.DB
	AuditService audit.Service
}

func NewUserDAO(db *gorm.DB, auditService audit.Service) *UserDAO {
	return &UserDAO{DB: db, AuditService: auditService}
}

func (dao *UserDAO) CreateUser(ctx context.Context, user model.User) (string, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()

	var existing int64
	if err := dao.DB.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", user.Username).Count(&existing).Error; err != nil {
		logger.Error("Failed to check for existing user", zap.Error(err), zap.String("username", user.Username))
		return "", pg_errors.ErrDatabaseOperation
	}
	if existing > 0 {
		return "", pg_errors.ErrUserConflict
	}

	if err := dao.DB.WithContext(ctx).Create(&user).Error; err != nil {
		// The count above races with concurrent registrations; the unique
		// index is the authoritative check.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return "", pg_errors.ErrUserConflict
		}
		logger.Error("Failed to create user", zap.Error(err), zap.String("username", user.Username))
		return "", pg_errors.ErrDatabaseOperation
	}

	if err := dao.AuditService.Record(ctx, audit.Entry(user.ID, audit.ActionUserRegistered, user.ID,
		map[string]any{"username": user.Username})); err != nil {
		logger.Warn("Failed to record user registration audit entry", zap.Error(err), zap.String("userID", user.ID))
	}

	logger.Info("User created", zap.String("userID", user.ID), zap.String("username", user.Username))
	return user.ID, nil
}

func (dao *UserDAO) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := dao.DB.WithContext(ctx).First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pg_errors.ErrUserNotFound
	}
	if err != nil {
		logger.Error("Failed to get user", zap.Error(err), zap.String("username", username))
		return nil, pg_errors.ErrDatabaseOperation
	}
	return &user, nil
}
