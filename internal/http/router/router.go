package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	"github.com/JULEEP/securitybackend/internal/config"
	"github.com/JULEEP/securitybackend/internal/http/handlers"
	"github.com/JULEEP/securitybackend/internal/http/middleware"
	newHandler "github.com/JULEEP/securitybackend/internal/interface/http/handler"
)

// UploadsURLPrefix путь, под которым раздаются загруженные документы.
const UploadsURLPrefix = "/uploads"

// Handlers собирает все хэндлеры, которые вешаются на роутер.
type Handlers struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Users    *handlers.UserHandler
	Profile  *handlers.ProfileHandler
	UserInfo *handlers.UserInfoHandler
	Projects *handlers.ProjectHandler
	Invoices *handlers.InvoiceHandler
	Clients  *handlers.ClientHandler
	Uploads  *handlers.UploadHandler

	Proposals *newHandler.ProposalHandler
}

func SetupRouter(
	cfg *config.Config,
	h Handlers,
	tokens middleware.TokenParser,
	rateStore limiter.Store,
) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	dev := cfg.IsDevelopment()

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Recovery(dev))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.ErrorHandler(dev))

	r.GET("/", h.Health.Root)
	r.GET("/health", h.Health.Health)
	r.StaticFS(UploadsURLPrefix, http.Dir(cfg.UploadStoragePath))

	api := r.Group("/api")

	authRateLimit := middleware.RateLimitMiddleware(rateStore, cfg.RateLimitLimit, cfg.RateLimitPeriod)
	authRequired := middleware.AuthMiddleware(tokens)

	h.Proposals.Register(api.Group("/proposals"))
	h.Projects.Register(api.Group("/projects"))
	h.Invoices.Register(api.Group("/invoices"))
	h.Clients.Register(api.Group("/clients"))

	h.Users.Register(api.Group("/users"))
	userScoped := api.Group("/users/:userId")
	h.Profile.Register(userScoped)
	userScoped.POST("/uploads", h.Uploads.Upload)

	// Старое API фрилансеров
	freelancers := api.Group("/freelancers")
	{
		freelancers.POST("/register", authRateLimit, h.Auth.FreelancerRegister)
		freelancers.POST("/login", authRateLimit, h.Auth.FreelancerLogin)
		freelancers.GET("/get", h.Users.LegacyList)
		freelancers.GET("/get-skills/:userId", h.Profile.LegacyGetSkills)
		freelancers.POST("/add-basicinfo/:userId", h.Profile.LegacyAddBasicInfo)
		freelancers.POST("/add-urls/:userId", h.Profile.LegacyAddSocialInfo)
		freelancers.POST("/add-edu/:userId", h.Profile.LegacyAddEducation)
		freelancers.POST("/add-experience/:userId", h.Profile.LegacyAddExperience)
		freelancers.POST("/add-skills/:userId", h.Profile.LegacyAddSkills)
		freelancers.POST("/add-awards/:userId", h.Profile.LegacyAddAwards)
	}

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", authRateLimit, h.Auth.Signup)
		authGroup.POST("/login", authRateLimit, h.Auth.Login)
		authGroup.GET("/me", authRequired, h.Auth.Me)
	}

	userInfo := api.Group("/user-info")
	userInfo.Use(authRequired)
	h.UserInfo.Register(userInfo)

	return r
}
