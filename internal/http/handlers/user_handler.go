package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JULEEP/securitybackend/internal/http/handlers/common"
	"github.com/JULEEP/securitybackend/internal/interface/http/response"
	"github.com/JULEEP/securitybackend/internal/models"
	"github.com/JULEEP/securitybackend/internal/pkg/apperror"
	repocommon "github.com/JULEEP/securitybackend/internal/repository/common"
)

// UserDirectory операции над учётными записями, кроме регистрации.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id int64, values repocommon.Values) (*models.User, error)
	Delete(ctx context.Context, id int64) (*models.User, error)
}

// UserHandler обслуживает /api/users и /api/freelancers/get.
type UserHandler struct {
	users   UserDirectory
	profile ProfileStores
}

func NewUserHandler(users UserDirectory, profile ProfileStores) *UserHandler {
	return &UserHandler{users: users, profile: profile}
}

// Register вешает маршруты на группу /api/users.
func (h *UserHandler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:userId", h.Get)
	rg.PUT("/:userId", h.Update)
	rg.DELETE("/:userId", h.Delete)
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err, "Error retrieving users")
		return
	}
	response.OK(c, "Users retrieved successfully", nonNil(users))
}

// Get возвращает пользователя вместе со всей анкетой.
func (h *UserHandler) Get(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	profile, err := h.loadProfile(c.Request.Context(), userID)
	if err != nil {
		response.Fail(c, err, "Error retrieving user")
		return
	}
	response.OK(c, "User retrieved successfully", profile)
}

func (h *UserHandler) loadProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	user, err := h.users.GetByID(ctx, userID)
	user, err = repocommon.RequireFound(user, err, apperror.ErrUserNotFound)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{User: user}
	if profile.BasicInfo, err = h.profile.BasicInfo.Get(ctx, userID); err != nil {
		return nil, err
	}
	if profile.SocialInfo, err = h.profile.SocialInfo.Get(ctx, userID); err != nil {
		return nil, err
	}
	if profile.Education, err = h.profile.Education.List(ctx, userID); err != nil {
		return nil, err
	}
	if profile.Experience, err = h.profile.Experience.List(ctx, userID); err != nil {
		return nil, err
	}
	if profile.Skills, err = h.profile.Skills.List(ctx, userID); err != nil {
		return nil, err
	}
	if profile.Awards, err = h.profile.Awards.List(ctx, userID); err != nil {
		return nil, err
	}

	profile.Education = nonNil(profile.Education)
	profile.Experience = nonNil(profile.Experience)
	profile.Skills = nonNil(profile.Skills)
	profile.Awards = nonNil(profile.Awards)
	return profile, nil
}

// Update меняет имя и email; пароль через этот маршрут не меняется.
func (h *UserHandler) Update(c *gin.Context) {
	userID, values, ok := userIDAndValues(c)
	if !ok {
		return
	}

	user, err := h.users.Update(c.Request.Context(), userID, values)
	user, err = repocommon.RequireFound(user, err, apperror.ErrUserNotFound)
	if err != nil {
		response.Fail(c, err, "Error updating user")
		return
	}
	response.OK(c, "User updated successfully", user)
}

// Delete удаляет пользователя; анкета, проекты и предложения удаляются каскадно.
func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	user, err := h.users.Delete(c.Request.Context(), userID)
	user, err = repocommon.RequireFound(user, err, apperror.ErrUserNotFound)
	if err != nil {
		response.Fail(c, err, "Error deleting user")
		return
	}
	response.OK(c, "User deleted successfully", user)
}

// LegacyList обрабатывает GET /api/freelancers/get.
func (h *UserHandler) LegacyList(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		common.RespondLegacyError(c, err, "Internal server error")
		return
	}
	if len(users) == 0 {
		common.RespondMessage(c, http.StatusNotFound, "No users found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Users fetched successfully", "users": users})
}
