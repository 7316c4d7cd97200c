package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JULEEP/securitybackend/internal/http/handlers/common"
	"github.com/JULEEP/securitybackend/internal/models"
	"github.com/JULEEP/securitybackend/internal/pkg/apperror"
	"github.com/JULEEP/securitybackend/internal/service"
)

// Authenticator операции регистрации и входа.
type Authenticator interface {
	Signup(ctx context.Context, in service.SignupInput) (*models.User, error)
	Login(ctx context.Context, email, password string, ttl time.Duration) (*service.LoginResult, error)
	Me(ctx context.Context, userID int64) (*models.User, error)
}

// AuthHandler предоставляет HTTP слой для регистрации и логина.
// Две семьи маршрутов отличаются телом ответа и временем жизни токена:
// /api/freelancers отвечает {message, ...}, /api/auth отвечает {msg, ...}.
type AuthHandler struct {
	auth          Authenticator
	freelancerTTL time.Duration
	authTTL       time.Duration
}

// NewAuthHandler создаёт хэндлер.
func NewAuthHandler(auth Authenticator, freelancerTTL, authTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, freelancerTTL: freelancerTTL, authTTL: authTTL}
}

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// FreelancerRegister обрабатывает POST /api/freelancers/register.
func (h *AuthHandler) FreelancerRegister(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondMessage(c, http.StatusBadRequest, "Name, email, and password are required")
		return
	}
	if strings.TrimSpace(req.Name) == "" || req.Email == "" || req.Password == "" {
		common.RespondMessage(c, http.StatusBadRequest, "Name, email, and password are required")
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), service.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondFreelancerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user": user})
}

// FreelancerLogin обрабатывает POST /api/freelancers/login. Токен живёт freelancerTTL.
func (h *AuthHandler) FreelancerLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		common.RespondMessage(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password, h.freelancerTTL)
	if err != nil {
		h.respondFreelancerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": result.Token})
}

func (h *AuthHandler) respondFreelancerError(c *gin.Context, err error) {
	appErr := apperror.Classify(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		common.LogFailure(c, appErr, err, "freelancer auth failed")
		common.RespondMessage(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	common.RespondMessage(c, appErr.HTTPStatus, appErr.Message)
}

// Signup обрабатывает POST /api/auth/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request body"})
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), service.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"msg": "Signup successful", "user": user})
	case errors.Is(err, apperror.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Email already exists"})
	default:
		h.respondAuthError(c, err, "Error in signup")
	}
}

// Login обрабатывает POST /api/auth/login. Токен живёт authTTL.
// Неизвестный email и неверный пароль неразличимы для клиента.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request body"})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password, h.authTTL)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"msg": "Login successful", "token": result.Token})
	case errors.Is(err, apperror.ErrUserNotFound), errors.Is(err, apperror.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid credentials"})
	default:
		h.respondAuthError(c, err, "Error in login")
	}
}

// Me обрабатывает GET /api/auth/me; требует AuthMiddleware.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	user, err := h.auth.Me(c.Request.Context(), userID)
	if err != nil {
		h.respondAuthError(c, err, "Error fetching user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "User retrieved successfully", "user": user})
}

func (h *AuthHandler) respondAuthError(c *gin.Context, err error, fallback string) {
	appErr := apperror.Classify(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		common.LogFailure(c, appErr, err, fallback)
		c.JSON(appErr.HTTPStatus, gin.H{"msg": fallback, "error": apperror.Public(err)})
		return
	}
	c.JSON(appErr.HTTPStatus, gin.H{"msg": appErr.Message})
}
