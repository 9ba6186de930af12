// api/service/auth_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/policyguard/api/dao"
	pg_errors "github.com/policyguard/api/errors"
	logger "github.com/policyguard/api/logging"
	"github.com/policyguard/api/model"
	"github.com/policyguard/api/util"
	"github.com/spf13/viper"
)

// IAuthService defines registration and credential-based login.
type IAuthService interface {
	Register(ctx context.Context, creds model.Credentials) (*model.User, error)
	Login(ctx context.Context, creds model.Credentials) (*model.TokenResponse, error)
}

type AuthService struct {
	userDAO        *dao.UserDAO
	validationUtil *util.ValidationUtil
}

var _ IAuthService = (*AuthService)(nil)

func NewAuthService(userDAO *dao.UserDAO, validationUtil *util.ValidationUtil) *AuthService {
	return &AuthService{
		userDAO:        userDAO,
		validationUtil: validationUtil,
	}
}

func (s *AuthService) Register(ctx context.Context, creds model.Credentials) (*model.User, error) {
	if err := s.validationUtil.ValidateCredentials(creds); err != nil {
		return nil, fmt.Errorf("%w: %v", pg_errors.ErrInvalidUserData, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", zap.Error(err))
		return nil, pg_errors.ErrInternalServer
	}

	user := model.User{
		Username:     creds.Username,
		Email:        creds.Email,
		PasswordHash: string(hash),
	}

	userID, err := s.userDAO.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = userID

	logger.Info("User registered", zap.String("userID", userID), zap.String("username", user.Username))
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, creds model.Credentials) (*model.TokenResponse, error) {
	user, err := s.userDAO.GetUserByUsername(ctx, creds.Username)
	if err != nil {
		// Do not reveal whether the username exists.
		return nil, pg_errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, pg_errors.ErrInvalidCredentials
	}

	ttl := viper.GetDuration("auth.tokenTTL")
	expiresAt := time.Now().Add(ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"exp":      expiresAt.Unix(),
		"iat":      time.Now().Unix(),
	})

	signed, err := token.SignedString([]byte(viper.GetString("auth.jwtSecret")))
	if err != nil {
		logger.Error("Failed to sign token", zap.Error(err), zap.String("userID", user.ID))
		return nil, pg_errors.ErrInternalServer
	}

	logger.Info("User logged in", zap.String("userID", user.ID), zap.String("username", user.Username))
	return &model.TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
	}, nil
}
