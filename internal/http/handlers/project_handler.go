package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/JULEEP/securitybackend/internal/http/handlers/common"
	"github.com/JULEEP/securitybackend/internal/interface/http/response"
	"github.com/JULEEP/securitybackend/internal/models"
	"github.com/JULEEP/securitybackend/internal/pkg/apperror"
	repocommon "github.com/JULEEP/securitybackend/internal/repository/common"
)

// ProjectStore репозиторий проектов.
type ProjectStore interface {
	Create(ctx context.Context, ownerID int64, values repocommon.Values) (*models.Project, error)
	GetByID(ctx context.Context, id int64) (*models.Project, error)
	List(ctx context.Context) ([]models.Project, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Project, error)
	Update(ctx context.Context, id int64, values repocommon.Values) (*models.Project, error)
	Delete(ctx context.Context, id int64) (*models.Project, error)
}

// ProjectHandler обслуживает /api/projects.
type ProjectHandler struct {
	projects ProjectStore
}

func NewProjectHandler(projects ProjectStore) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// Register вешает маршруты проектов на группу /api/projects.
func (h *ProjectHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/create/:userId", h.Create)
	rg.GET("/all", h.List)
	rg.GET("/user/:userId", h.ListByOwner)
	rg.GET("/:projectId", h.Get)
	rg.PUT("/:projectId", h.Update)
	rg.DELETE("/:projectId", h.Delete)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	ownerID, ok := common.ParseIDParam(c, "userId")
	if !ok {
		response.BadRequest(c, "Invalid user ID")
		return
	}
	values, err := common.BindValues(c)
	if err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projects.Create(c.Request.Context(), ownerID, values)
	if err != nil {
		response.Fail(c, err, "Error creating project")
		return
	}
	response.Created(c, "Project created successfully", project)
}

func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err, "Error retrieving projects")
		return
	}
	response.OK(c, "Projects retrieved successfully", nonNil(projects))
}

func (h *ProjectHandler) ListByOwner(c *gin.Context) {
	ownerID, ok := common.ParseIDParam(c, "userId")
	if !ok {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	projects, err := h.projects.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		response.Fail(c, err, "Error retrieving user projects")
		return
	}
	response.OK(c, "User projects retrieved successfully", nonNil(projects))
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := common.ParseIDParam(c, "projectId")
	if !ok {
		response.BadRequest(c, "Invalid project ID")
		return
	}

	project, err := h.projects.GetByID(c.Request.Context(), id)
	project, err = repocommon.RequireFound(project, err, apperror.ErrProjectNotFound)
	if err != nil {
		response.Fail(c, err, "Error retrieving project")
		return
	}
	response.OK(c, "Project retrieved successfully", project)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := common.ParseIDParam(c, "projectId")
	if !ok {
		response.BadRequest(c, "Invalid project ID")
		return
	}
	values, err := common.BindValues(c)
	if err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projects.Update(c.Request.Context(), id, values)
	project, err = repocommon.RequireFound(project, err, apperror.ErrProjectNotFound)
	if err != nil {
		response.Fail(c, err, "Error updating project")
		return
	}
	response.OK(c, "Project updated successfully", project)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := common.ParseIDParam(c, "projectId")
	if !ok {
		response.BadRequest(c, "Invalid project ID")
		return
	}

	project, err := h.projects.Delete(c.Request.Context(), id)
	project, err = repocommon.RequireFound(project, err, apperror.ErrProjectNotFound)
	if err != nil {
		response.Fail(c, err, "Error deleting project")
		return
	}
	response.OK(c, "Project deleted successfully", project)
}
