// api/controller/auth_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	pg_errors "github.com/policyguard/api/errors"
	"github.com/policyguard/api/model"
	"github.com/policyguard/api/service"
	"github.com/policyguard/api/util"
)

type AuthController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// RegisterRoutes registers the API routes
func (ac *AuthController) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", ac.Register)
		auth.POST("/login", ac.Login)
	}
}

// Register endpoint
func (ac *AuthController) Register(c *gin.Context) {
	var creds model.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid registration data", pg_errors.ErrInvalidUserData)
		return
	}

	user, err := ac.authService.Register(c, creds)
	if err != nil {
		switch {
		case errors.Is(err, pg_errors.ErrUserConflict):
			util.RespondWithError(c, http.StatusConflict, "Username already taken", err)
		case errors.Is(err, pg_errors.ErrInvalidUserData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid registration data", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to register user", pg_errors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login endpoint
func (ac *AuthController) Login(c *gin.Context) {
	var creds model.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid login data", pg_errors.ErrInvalidUserData)
		return
	}

	token, err := ac.authService.Login(c, creds)
	if err != nil {
		if errors.Is(err, pg_errors.ErrInvalidCredentials) {
			util.RespondWithError(c, http.StatusUnauthorized, "Invalid username or password", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to log in", pg_errors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusOK, token)
}
