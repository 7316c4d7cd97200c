package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JULEEP/securitybackend/internal/http/handlers/common"
	"github.com/JULEEP/securitybackend/internal/models"
	"github.com/JULEEP/securitybackend/internal/pkg/apperror"
	repocommon "github.com/JULEEP/securitybackend/internal/repository/common"
)

var errBasicInfoNotFound = apperror.NotFound("Basic information not found for this user")

// UserInfoHandler обслуживает /api/user-info/basic под AuthMiddleware.
// Без :userId в пути используется пользователь из токена.
type UserInfoHandler struct {
	basicInfo SingleRecordStore[models.BasicInfo]
}

func NewUserInfoHandler(basicInfo SingleRecordStore[models.BasicInfo]) *UserInfoHandler {
	return &UserInfoHandler{basicInfo: basicInfo}
}

// Register вешает маршруты на защищённую группу.
func (h *UserInfoHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/basic", h.Create)
	for _, path := range []string{"/basic", "/basic/:userId"} {
		rg.GET(path, h.Get)
		rg.PUT(path, h.Update)
		rg.DELETE(path, h.Delete)
	}
}

// targetUser выбирает пользователя из пути или из токена.
func targetUser(c *gin.Context) (int64, bool) {
	if c.Param("userId") != "" {
		id, ok := common.ParseIDParam(c, "userId")
		if !ok {
			common.RespondMessage(c, http.StatusBadRequest, "Invalid user ID")
		}
		return id, ok
	}

	id, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondMessage(c, http.StatusUnauthorized, "Authorization required")
		return 0, false
	}
	return id, true
}

func (h *UserInfoHandler) Create(c *gin.Context) {
	userID, ok := targetUser(c)
	if !ok {
		return
	}
	values, err := common.BindValues(c)
	if err != nil {
		common.RespondMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	info, err := h.basicInfo.Create(c.Request.Context(), userID, values)
	if err != nil {
		common.RespondLegacyError(c, err, "Failed to create user basic information")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User basic information created successfully", "data": info})
}

func (h *UserInfoHandler) Get(c *gin.Context) {
	userID, ok := targetUser(c)
	if !ok {
		return
	}

	info, err := h.basicInfo.Get(c.Request.Context(), userID)
	info, err = repocommon.RequireFound(info, err, errBasicInfoNotFound)
	if err != nil {
		common.RespondLegacyError(c, err, "Error retrieving user basic information")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User basic information retrieved successfully", "data": info})
}

func (h *UserInfoHandler) Update(c *gin.Context) {
	userID, ok := targetUser(c)
	if !ok {
		return
	}
	values, err := common.BindValues(c)
	if err != nil {
		common.RespondMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	info, err := h.basicInfo.Update(c.Request.Context(), userID, values)
	info, err = repocommon.RequireFound(info, err, errBasicInfoNotFound)
	if err != nil {
		common.RespondLegacyError(c, err, "Failed to update user basic information")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User basic information updated successfully", "data": info})
}

func (h *UserInfoHandler) Delete(c *gin.Context) {
	userID, ok := targetUser(c)
	if !ok {
		return
	}

	info, err := h.basicInfo.Delete(c.Request.Context(), userID)
	info, err = repocommon.RequireFound(info, err, errBasicInfoNotFound)
	if err != nil {
		common.RespondLegacyError(c, err, "Failed to delete user basic information")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User basic information deleted successfully", "data": info})
}
