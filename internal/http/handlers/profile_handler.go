package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JULEEP/securitybackend/internal/http/handlers/common"
	"github.com/JULEEP/securitybackend/internal/interface/http/response"
	"github.com/JULEEP/securitybackend/internal/models"
	"github.com/JULEEP/securitybackend/internal/pkg/apperror"
	"github.com/JULEEP/securitybackend/internal/repository"
	repocommon "github.com/JULEEP/securitybackend/internal/repository/common"
)

// SingleRecordStore дочерняя запись пользователя, не более одной.
type SingleRecordStore[T any] interface {
	Create(ctx context.Context, userID int64, values repocommon.Values) (*T, error)
	Get(ctx context.Context, userID int64) (*T, error)
	Update(ctx context.Context, userID int64, values repocommon.Values) (*T, error)
	Upsert(ctx context.Context, userID int64, values repocommon.Values) (*T, error)
	Delete(ctx context.Context, userID int64) (*T, error)
}

// ListRecordStore список дочерних записей пользователя.
type ListRecordStore[T any] interface {
	Create(ctx context.Context, userID int64, values repocommon.Values) (*T, error)
	List(ctx context.Context, userID int64) ([]T, error)
	Update(ctx context.Context, userID, id int64, values repocommon.Values) (*T, error)
	Delete(ctx context.Context, userID, id int64) (*T, error)
}

// BulkProfileWriter пакетные вставки навыков и наград.
type BulkProfileWriter interface {
	AddSkills(ctx context.Context, userID int64, skills []string) ([]models.Skill, error)
	AddAwards(ctx context.Context, userID int64, awards []repository.AwardInput) ([]models.Award, error)
}

// ProfileStores собирает хранилища анкеты пользователя.
type ProfileStores struct {
	BasicInfo  SingleRecordStore[models.BasicInfo]
	SocialInfo SingleRecordStore[models.SocialInfo]
	Education  ListRecordStore[models.Education]
	Experience ListRecordStore[models.Experience]
	Skills     ListRecordStore[models.Skill]
	Awards     ListRecordStore[models.Award]
	Bulk       BulkProfileWriter
}

// ProfileStoresFrom раскладывает репозиторий анкеты по интерфейсам.
func ProfileStoresFrom(repo *repository.ProfileRepository) ProfileStores {
	return ProfileStores{
		BasicInfo:  repo.BasicInfo,
		SocialInfo: repo.SocialInfo,
		Education:  repo.Education,
		Experience: repo.Experience,
		Skills:     repo.Skills,
		Awards:     repo.Awards,
		Bulk:       repo,
	}
}

// resource тексты ответов для одного вида дочерних записей.
type resource struct {
	one  string
	many string
}

func (r resource) notFound() *apperror.AppError {
	return apperror.NotFound(r.one + " not found")
}

func (r resource) lower() string {
	return strings.ToLower(r.one)
}

var (
	basicInfoResource  = resource{one: "Basic information", many: "Basic information"}
	socialInfoResource = resource{one: "Social information", many: "Social information"}
	educationResource  = resource{one: "Education entry", many: "Education entries"}
	experienceResource = resource{one: "Experience entry", many: "Experience entries"}
	skillResource      = resource{one: "Skill", many: "Skills"}
	awardResource      = resource{one: "Award", many: "Awards"}
)

// ProfileHandler обслуживает дочерние ресурсы /api/users/:userId/... (конверт)
// и старые маршруты /api/freelancers/add-* (ответы без конверта).
type ProfileHandler struct {
	stores ProfileStores
}

func NewProfileHandler(stores ProfileStores) *ProfileHandler {
	return &ProfileHandler{stores: stores}
}

// Register вешает дочерние ресурсы на группу /api/users/:userId.
func (h *ProfileHandler) Register(rg *gin.RouterGroup) {
	registerSingle(rg.Group("/basic-info"), h.stores.BasicInfo, basicInfoResource)
	registerSingle(rg.Group("/social-info"), h.stores.SocialInfo, socialInfoResource)
	registerList(rg.Group("/education"), h.stores.Education, educationResource)
	registerList(rg.Group("/experience"), h.stores.Experience, experienceResource)
	registerList(rg.Group("/skills"), h.stores.Skills, skillResource)
	registerList(rg.Group("/awards"), h.stores.Awards, awardResource)

	rg.POST("/skills/bulk", h.AddSkills)
	rg.POST("/awards/bulk", h.AddAwards)
}

func registerSingle[T any](rg *gin.RouterGroup, store SingleRecordStore[T], res resource) {
	rg.GET("", func(c *gin.Context) {
		userID, ok := userIDParam(c)
		if !ok {
			return
		}
		record, err := store.Get(c.Request.Context(), userID)
		record, err = repocommon.RequireFound(record, err, res.notFound())
		if err != nil {
			response.Fail(c, err, "Error retrieving "+res.lower())
			return
		}
		response.OK(c, res.one+" retrieved successfully", record)
	})

	rg.POST("", func(c *gin.Context) {
		userID, values, ok := userIDAndValues(c)
		if !ok {
			return
		}
		record, err := store.Create(c.Request.Context(), userID, values)
		if err != nil {
			response.Fail(c, err, "Error creating "+res.lower())
			return
		}
		response.Created(c, res.one+" created successfully", record)
	})

	rg.PUT("", func(c *gin.Context) {
		userID, values, ok := userIDAndValues(c)
		if !ok {
			return
		}
		record, err := store.Update(c.Request.Context(), userID, values)
		record, err = repocommon.RequireFound(record, err, res.notFound())
		if err != nil {
			response.Fail(c, err, "Error updating "+res.lower())
			return
		}
		response.OK(c, res.one+" updated successfully", record)
	})

	rg.DELETE("", func(c *gin.Context) {
		userID, ok := userIDParam(c)
		if !ok {
			return
		}
		record, err := store.Delete(c.Request.Context(), userID)
		record, err = repocommon.RequireFound(record, err, res.notFound())
		if err != nil {
			response.Fail(c, err, "Error deleting "+res.lower())
			return
		}
		response.OK(c, res.one+" deleted successfully", record)
	})
}

func registerList[T any](rg *gin.RouterGroup, store ListRecordStore[T], res resource) {
	rg.GET("", func(c *gin.Context) {
		userID, ok := userIDParam(c)
		if !ok {
			return
		}
		records, err := store.List(c.Request.Context(), userID)
		if err != nil {
			response.Fail(c, err, "Error retrieving "+strings.ToLower(res.many))
			return
		}
		response.OK(c, res.many+" retrieved successfully", nonNil(records))
	})

	rg.POST("", func(c *gin.Context) {
		userID, values, ok := userIDAndValues(c)
		if !ok {
			return
		}
		record, err := store.Create(c.Request.Context(), userID, values)
		if err != nil {
			response.Fail(c, err, "Error creating "+res.lower())
			return
		}
		response.Created(c, res.one+" created successfully", record)
	})

	rg.PUT("/:id", func(c *gin.Context) {
		userID, values, ok := userIDAndValues(c)
		if !ok {
			return
		}
		id, ok := common.ParseIDParam(c, "id")
		if !ok {
			response.BadRequest(c, "Invalid "+res.lower()+" ID")
			return
		}
		record, err := store.Update(c.Request.Context(), userID, id, values)
		record, err = repocommon.RequireFound(record, err, res.notFound())
		if err != nil {
			response.Fail(c, err, "Error updating "+res.lower())
			return
		}
		response.OK(c, res.one+" updated successfully", record)
	})

	rg.DELETE("/:id", func(c *gin.Context) {
		userID, ok := userIDParam(c)
		if !ok {
			return
		}
		id, ok := common.ParseIDParam(c, "id")
		if !ok {
			response.BadRequest(c, "Invalid "+res.lower()+" ID")
			return
		}
		record, err := store.Delete(c.Request.Context(), userID, id)
		record, err = repocommon.RequireFound(record, err, res.notFound())
		if err != nil {
			response.Fail(c, err, "Error deleting "+res.lower())
			return
		}
		response.OK(c, res.one+" deleted successfully", record)
	})
}

func userIDParam(c *gin.Context) (int64, bool) {
	userID, ok := common.ParseIDParam(c, "userId")
	if !ok {
		response.BadRequest(c, "Invalid user ID")
	}
	return userID, ok
}

func userIDAndValues(c *gin.Context) (int64, repocommon.Values, bool) {
	userID, ok := userIDParam(c)
	if !ok {
		return 0, nil, false
	}
	values, err := common.BindValues(c)
	if err != nil {
		response.BadRequest(c, "Invalid request body")
		return 0, nil, false
	}
	return userID, values, true
}

type skillsRequest struct {
	Skills []string `json:"skills"`
}

type awardItem struct {
	Title       string  `json:"title"`
	AwardDate   string  `json:"award_date"`
	Description *string `json:"description"`
}

type awardsRequest struct {
	Awards []awardItem `json:"awards"`
}

func (r awardsRequest) inputs() []repository.AwardInput {
	out := make([]repository.AwardInput, 0, len(r.Awards))
	for _, a := range r.Awards {
		out = append(out, repository.AwardInput{Title: a.Title, AwardDate: a.AwardDate, Description: a.Description})
	}
	return out
}

// AddSkills обрабатывает POST /api/users/:userId/skills/bulk.
func (h *ProfileHandler) AddSkills(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	var req skillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Skills must be a non-empty array of strings")
		return
	}

	skills, err := h.stores.Bulk.AddSkills(c.Request.Context(), userID, req.Skills)
	if err != nil {
		response.Fail(c, err, "Error adding skills")
		return
	}
	response.Created(c, "Skills added successfully", skills)
}

// AddAwards обрабатывает POST /api/users/:userId/awards/bulk.
func (h *ProfileHandler) AddAwards(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	var req awardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Awards must be a non-empty array")
		return
	}

	awards, err := h.stores.Bulk.AddAwards(c.Request.Context(), userID, req.inputs())
	if err != nil {
		response.Fail(c, err, "Error adding awards")
		return
	}
	response.Created(c, "Awards added successfully", awards)
}

// Старые маршруты /api/freelancers. Тексты ответов сохранены как у клиентов этого API.

// LegacyGetSkills обрабатывает GET /api/freelancers/get-skills/:userId.
func (h *ProfileHandler) LegacyGetSkills(c *gin.Context) {
	userID, ok := common.ParseIDParam(c, "userId")
	if !ok {
		common.RespondMessage(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	skills, err := h.stores.Skills.List(c.Request.Context(), userID)
	if err != nil {
		common.RespondLegacyError(c, err, "Error retrieving skills")
		return
	}
	if len(skills) == 0 {
		common.RespondMessage(c, http.StatusNotFound, "No skills found for this user.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Skills retrieved successfully", "skills": skills})
}

// LegacyAddBasicInfo обрабатывает POST /api/freelancers/add-basicinfo/:userId.
func (h *ProfileHandler) LegacyAddBasicInfo(c *gin.Context) {
	legacyCreate(c, h.stores.BasicInfo.Create,
		"User basic information created successfully", "Failed to create user basic information")
}

// LegacyAddSocialInfo обрабатывает POST /api/freelancers/add-urls/:userId.
// Повторный вызов перезаписывает ссылки.
func (h *ProfileHandler) LegacyAddSocialInfo(c *gin.Context) {
	legacyCreate(c, h.stores.SocialInfo.Upsert,
		"User social media information created successfully", "Failed to create user social media information")
}

// LegacyAddEducation обрабатывает POST /api/freelancers/add-edu/:userId.
func (h *ProfileHandler) LegacyAddEducation(c *gin.Context) {
	legacyCreate(c, h.stores.Education.Create,
		"Education details created successfully", "Failed to create education details")
}

func legacyCreate[T any](c *gin.Context, create func(context.Context, int64, repocommon.Values) (*T, error), success, failure string) {
	userID, ok := common.ParseIDParam(c, "userId")
	if !ok {
		common.RespondMessage(c, http.StatusBadRequest, "Invalid user ID")
		return
	}
	values, err := common.BindValues(c)
	if err != nil {
		common.RespondMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := create(c.Request.Context(), userID, values)
	if err != nil {
		common.RespondLegacyError(c, err, failure)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": success, "data": record})
}

// LegacyAddExperience обрабатывает POST /api/freelancers/add-experience/:userId.
func (h *ProfileHandler) LegacyAddExperience(c *gin.Context) {
	userID, ok := common.ParseIDParam(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	values, err := common.BindValues(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	experience, err := h.stores.Experience.Create(c.Request.Context(), userID, values)
	if err != nil {
		if apperror.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "job_title, company, and from_date are required fields."})
			return
		}
		respondLegacyFailure(c, err, "An error occurred while adding the experience.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Experience added successfully.", "experience": experience})
}

// LegacyAddSkills обрабатывает POST /api/freelancers/add-skills/:userId.
func (h *ProfileHandler) LegacyAddSkills(c *gin.Context) {
	userID, ok := common.ParseIDParam(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	var req skillsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Skills) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Skills must be a non-empty array."})
		return
	}

	skills, err := h.stores.Bulk.AddSkills(c.Request.Context(), userID, req.Skills)
	if err != nil {
		respondLegacyFailure(c, err, "An error occurred while adding the skills.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Skills added successfully.", "skills": skills})
}

// LegacyAddAwards обрабатывает POST /api/freelancers/add-awards/:userId.
func (h *ProfileHandler) LegacyAddAwards(c *gin.Context) {
	userID, ok := common.ParseIDParam(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	var req awardsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Awards) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Awards must be a non-empty array."})
		return
	}
	for _, a := range req.Awards {
		if a.Title == "" || a.AwardDate == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Each award must have a title and award_date."})
			return
		}
	}

	awards, err := h.stores.Bulk.AddAwards(c.Request.Context(), userID, req.inputs())
	if err != nil {
		respondLegacyFailure(c, err, "An error occurred while adding the awards.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Awards added successfully.", "awards": awards})
}

// respondLegacyFailure отвечает {error: message}; 4xx сохраняют свой статус.
func respondLegacyFailure(c *gin.Context, err error, message string) {
	appErr := apperror.Classify(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		common.LogFailure(c, appErr, err, message)
		c.JSON(appErr.HTTPStatus, gin.H{"error": message})
		return
	}
	c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.Message})
}
