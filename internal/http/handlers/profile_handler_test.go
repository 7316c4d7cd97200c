package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JULEEP/securitybackend/internal/models"
	"github.com/JULEEP/securitybackend/internal/repository"
)

func setupUserRouter(t *testing.T) (*gin.Engine, *fakeUsers, ProfileStores, *fakeBulk) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := newFakeUsers()
	stores, bulk := newFakeProfile()

	r := gin.New()
	users.items[1] = &models.User{ID: 1, Name: "Ann", Email: "ann@example.com"}
	users.nextID = 2

	uh := NewUserHandler(users, stores)
	ph := NewProfileHandler(stores)
	api := r.Group("/api")
	uh.Register(api.Group("/users"))
	ph.Register(api.Group("/users/:userId"))

	fr := api.Group("/freelancers")
	fr.GET("/get", uh.LegacyList)
	fr.GET("/get-skills/:userId", ph.LegacyGetSkills)
	fr.POST("/add-basicinfo/:userId", ph.LegacyAddBasicInfo)
	fr.POST("/add-urls/:userId", ph.LegacyAddSocialInfo)
	fr.POST("/add-edu/:userId", ph.LegacyAddEducation)
	fr.POST("/add-experience/:userId", ph.LegacyAddExperience)
	fr.POST("/add-skills/:userId", ph.LegacyAddSkills)
	fr.POST("/add-awards/:userId", ph.LegacyAddAwards)
	return r, users, stores, bulk
}

func TestUserHandler_GetAssemblesProfile(t *testing.T) {
	r, _, _, _ := setupUserRouter(t)

	send(r, http.MethodPost, "/api/users/1/basic-info", `{"first_name":"Ann","last_name":"Lee","email_address":"ann@example.com"}`)
	send(r, http.MethodPost, "/api/users/1/skills/bulk", `{"skills":["go","sql"]}`)

	w := send(r, http.MethodGet, "/api/users/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	env := readEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "User retrieved successfully", env.Message)

	var profile struct {
		User       map[string]any   `json:"user"`
		BasicInfo  map[string]any   `json:"basic_info"`
		Skills     []map[string]any `json:"skills"`
		Experience []map[string]any `json:"experience"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "Ann", profile.User["name"])
	assert.NotContains(t, profile.User, "password")
	assert.Len(t, profile.Skills, 2)
	assert.NotNil(t, profile.Experience)
}

func TestUserHandler_DeleteThenLookups(t *testing.T) {
	r, _, _, _ := setupUserRouter(t)

	w := send(r, http.MethodDelete, "/api/users/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = send(r, http.MethodGet, "/api/users/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", readEnvelope(t, w.Body.Bytes()).Message)

	w = send(r, http.MethodDelete, "/api/users/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileHandler_SingleRecordCRUD(t *testing.T) {
	r, _, _, _ := setupUserRouter(t)

	w := send(r, http.MethodGet, "/api/users/1/basic-info", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Basic information not found", readEnvelope(t, w.Body.Bytes()).Message)

	w = send(r, http.MethodPost, "/api/users/1/basic-info", `{"first_name":"Ann"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"last_name", "email_address"}, readEnvelope(t, w.Body.Bytes()).Fields)

	w = send(r, http.MethodPost, "/api/users/1/basic-info", `{"first_name":"Ann","last_name":"Lee","email_address":"a@b.io"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Basic information created successfully", readEnvelope(t, w.Body.Bytes()).Message)

	w = send(r, http.MethodPut, "/api/users/1/basic-info", `{"city":"Oslo"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = send(r, http.MethodDelete, "/api/users/1/basic-info", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Basic information deleted successfully", readEnvelope(t, w.Body.Bytes()).Message)

	w = send(r, http.MethodPut, "/api/users/1/social-info", `{"twitter_link":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileHandler_ListRecordCRUD(t *testing.T) {
	r, _, _, _ := setupUserRouter(t)

	w := send(r, http.MethodGet, "/api/users/1/education", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(readEnvelope(t, w.Body.Bytes()).Data))

	w = send(r, http.MethodPost, "/api/users/1/education", `{"title":"BSc"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Education entry created successfully", readEnvelope(t, w.Body.Bytes()).Message)

	// чужая запись не видна другому пользователю
	w = send(r, http.MethodDelete, "/api/users/2/education/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = send(r, http.MethodPut, "/api/users/1/education/1", `{"title":"MSc"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = send(r, http.MethodDelete, "/api/users/1/education/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = send(r, http.MethodDelete, "/api/users/1/education/zero", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileHandler_BulkAwards(t *testing.T) {
	r, _, _, bulk := setupUserRouter(t)

	w := send(r, http.MethodPost, "/api/users/1/awards/bulk", `{"awards":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(r, http.MethodPost, "/api/users/1/awards/bulk", `{"awards":[{"title":"Best","award_date":"2023-01-01"}]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, bulk.awards.rows[1], 1)
}

func TestProfileHandler_LegacyRoutes(t *testing.T) {
	r, _, _, bulk := setupUserRouter(t)

	t.Run("get skills when empty", func(t *testing.T) {
		w := send(r, http.MethodGet, "/api/freelancers/get-skills/1", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"No skills found for this user."}`, w.Body.String())
	})

	t.Run("add skills", func(t *testing.T) {
		w := send(r, http.MethodPost, "/api/freelancers/add-skills/1", `{"skills":[]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Skills must be a non-empty array."}`, w.Body.String())

		w = send(r, http.MethodPost, "/api/freelancers/add-skills/1", `{"skills":["go"]}`)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "Skills added successfully.", decode(t, w.Body.Bytes())["message"])

		w = send(r, http.MethodGet, "/api/freelancers/get-skills/1", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode(t, w.Body.Bytes())["skills"], 1)
	})

	t.Run("add awards validates every item", func(t *testing.T) {
		w := send(r, http.MethodPost, "/api/freelancers/add-awards/1", `{"awards":[{"title":"A","award_date":"2023-01-01"},{"title":"B"}]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Each award must have a title and award_date."}`, w.Body.String())
		assert.Empty(t, bulk.awards.rows[1])
	})

	t.Run("add awards storage failure", func(t *testing.T) {
		bulk.err = errors.New("boom")
		defer func() { bulk.err = nil }()

		w := send(r, http.MethodPost, "/api/freelancers/add-awards/1", `{"awards":[{"title":"A","award_date":"2023-01-01"}]}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"An error occurred while adding the awards."}`, w.Body.String())
	})

	t.Run("add experience requires fields", func(t *testing.T) {
		w := send(r, http.MethodPost, "/api/freelancers/add-experience/1", `{"company":"Acme"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"job_title, company, and from_date are required fields."}`, w.Body.String())

		w = send(r, http.MethodPost, "/api/freelancers/add-experience/1", `{"job_title":"Dev","company":"Acme","from_date":"2020-01-01"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "Experience added successfully.", decode(t, w.Body.Bytes())["message"])
	})

	t.Run("add basic info and urls", func(t *testing.T) {
		w := send(r, http.MethodPost, "/api/freelancers/add-basicinfo/1", `{"first_name":"Ann","last_name":"Lee","email_address":"a@b.io"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "User basic information created successfully", decode(t, w.Body.Bytes())["message"])

		for i := 0; i < 2; i++ {
			w = send(r, http.MethodPost, "/api/freelancers/add-urls/1", `{"linkedin_link":"l"}`)
			require.Equal(t, http.StatusCreated, w.Code)
		}
	})

	t.Run("users list", func(t *testing.T) {
		w := send(r, http.MethodGet, "/api/freelancers/get", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Users fetched successfully", decode(t, w.Body.Bytes())["message"])
	})
}

func TestUserHandler_LegacyListEmpty(t *testing.T) {
	r, users, _, _ := setupUserRouter(t)
	users.items = map[int64]*models.User{}

	w := send(r, http.MethodGet, "/api/freelancers/get", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"No users found"}`, w.Body.String())
}

func TestProfileStoresFrom(t *testing.T) {
	stores := ProfileStoresFrom(repository.NewProfileRepository(nil, nil))

	assert.NotNil(t, stores.BasicInfo)
	assert.NotNil(t, stores.SocialInfo)
	assert.NotNil(t, stores.Education)
	assert.NotNil(t, stores.Experience)
	assert.NotNil(t, stores.Skills)
	assert.NotNil(t, stores.Awards)
	assert.NotNil(t, stores.Bulk)
}
