package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JULEEP/securitybackend/internal/http/handlers/common"
	"github.com/JULEEP/securitybackend/internal/http/middleware"
	"github.com/JULEEP/securitybackend/internal/models"
	"github.com/JULEEP/securitybackend/internal/pkg/apperror"
	repocommon "github.com/JULEEP/securitybackend/internal/repository/common"
)

// ClientHandler обслуживает /api/clients; ответы без конверта.
type ClientHandler struct {
	clients CRUDStore[models.Client]
}

func NewClientHandler(clients CRUDStore[models.Client]) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// Register вешает маршруты клиентов на группу /api/clients.
func (h *ClientHandler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)

	byID := rg.Group("/:id", middleware.IDValidator("id", "Invalid client ID"))
	byID.GET("", h.Get)
	byID.PUT("", h.Update)
	byID.DELETE("", h.Delete)
}

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clients.List(c.Request.Context())
	if err != nil {
		common.RespondLegacyError(c, err, "Error fetching clients")
		return
	}
	c.JSON(http.StatusOK, nonNil(clients))
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := common.ParseIDParam(c, "id")
	if !ok {
		common.RespondMessage(c, http.StatusBadRequest, "Invalid client ID")
		return
	}

	client, err := h.clients.GetByID(c.Request.Context(), id)
	client, err = repocommon.RequireFound(client, err, apperror.ErrClientNotFound)
	if err != nil {
		common.RespondLegacyError(c, err, "Error fetching client")
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Create(c *gin.Context) {
	values, err := common.BindValues(c)
	if err != nil {
		common.RespondMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	client, err := h.clients.Create(c.Request.Context(), values)
	if err != nil {
		common.RespondLegacyError(c, err, "Error creating client")
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := common.ParseIDParam(c, "id")
	if !ok {
		common.RespondMessage(c, http.StatusBadRequest, "Invalid client ID")
		return
	}
	values, err := common.BindValues(c)
	if err != nil {
		common.RespondMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	client, err := h.clients.Update(c.Request.Context(), id, values)
	client, err = repocommon.RequireFound(client, err, apperror.ErrClientNotFound)
	if err != nil {
		common.RespondLegacyError(c, err, "Error updating client")
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := common.ParseIDParam(c, "id")
	if !ok {
		common.RespondMessage(c, http.StatusBadRequest, "Invalid client ID")
		return
	}

	client, err := h.clients.Delete(c.Request.Context(), id)
	_, err = repocommon.RequireFound(client, err, apperror.ErrClientNotFound)
	if err != nil {
		common.RespondLegacyError(c, err, "Error deleting client")
		return
	}
	common.RespondMessage(c, http.StatusOK, "Client deleted successfully")
}
