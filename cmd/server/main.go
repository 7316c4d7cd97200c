package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/JULEEP/securitybackend/internal/config"
	"github.com/JULEEP/securitybackend/internal/db"
	"github.com/JULEEP/securitybackend/internal/goroutine"
	httpHandlers "github.com/JULEEP/securitybackend/internal/http/handlers"
	"github.com/JULEEP/securitybackend/internal/http/middleware"
	httpRouter "github.com/JULEEP/securitybackend/internal/http/router"
	"github.com/JULEEP/securitybackend/internal/infrastructure/persistence"
	newHandler "github.com/JULEEP/securitybackend/internal/interface/http/handler"
	"github.com/JULEEP/securitybackend/internal/logger"
	"github.com/JULEEP/securitybackend/internal/repository"
	"github.com/JULEEP/securitybackend/internal/service"
	"github.com/JULEEP/securitybackend/internal/storage"
	"github.com/JULEEP/securitybackend/internal/usecase/proposal"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	if cfg.IsDevelopment() {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}
	l := logger.L()

	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL, db.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		l.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	// Таблицы создаются лениво при первом обращении; прогрев лишь ускоряет первый запрос.
	schema := db.NewProvisioner(dbConn)
	if cfg.SchemaWarmup {
		goroutine.SafeGoWithContext(ctx, func(ctx context.Context) {
			if err := schema.EnsureAll(ctx); err != nil {
				l.WithError(err).Warn("main: прогрев схемы не удался")
				return
			}
			l.Info("main: схема готова")
		})
	}

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn, schema)
	clientRepo := repository.NewClientRepository(dbConn, schema)
	projectRepo := repository.NewProjectRepository(dbConn, schema)
	invoiceRepo := repository.NewInvoiceRepository(dbConn, schema)
	profileRepo := repository.NewProfileRepository(dbConn, schema)
	proposalRepo := persistence.NewProposalRepositoryAdapter(dbConn, schema)

	// Use cases предложений. nil-политика разрешает любые переходы статуса.
	proposalHandler := newHandler.NewProposalHandler(
		proposal.NewCreateProposalUseCase(proposalRepo),
		proposal.NewUpdateProposalStatusUseCase(proposalRepo, nil),
		proposal.NewUpdateProposalUseCase(proposalRepo),
		proposal.NewGetProposalUseCase(proposalRepo),
		proposal.NewListProposalsUseCase(proposalRepo),
		proposal.NewDeleteProposalUseCase(proposalRepo),
	)

	// Сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, service.NewBcryptHasher(cfg.BcryptCost), tokenManager)

	documents, err := storage.NewDocumentStorage(cfg.UploadStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		l.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	rateStore, err := middleware.NewRateLimitStore(cfg.RedisURL)
	if err != nil {
		l.Fatalf("main: не удалось подготовить rate limiter: %v", err)
	}

	// HTTP хэндлеры.
	profileStores := httpHandlers.ProfileStoresFrom(profileRepo)
	engine := httpRouter.SetupRouter(cfg, httpRouter.Handlers{
		Health:    httpHandlers.NewHealthHandler(dbConn),
		Auth:      httpHandlers.NewAuthHandler(authService, cfg.FreelancerTokenTTL, cfg.AuthTokenTTL),
		Users:     httpHandlers.NewUserHandler(userRepo, profileStores),
		Profile:   httpHandlers.NewProfileHandler(profileStores),
		UserInfo:  httpHandlers.NewUserInfoHandler(profileStores.BasicInfo),
		Projects:  httpHandlers.NewProjectHandler(projectRepo),
		Invoices:  httpHandlers.NewInvoiceHandler(invoiceRepo),
		Clients:   httpHandlers.NewClientHandler(clientRepo),
		Uploads:   httpHandlers.NewUploadHandler(documents, httpRouter.UploadsURLPrefix),
		Proposals: proposalHandler,
	}, tokenManager, rateStore)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	goroutine.SafeGo(func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			l.Errorf("main: ошибка остановки http сервера: %v", err)
		}
	})

	l.Infof("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Errorf("main: сервер завершился с ошибкой: %v", err)
	}
	l.Info("main: сервер остановлен")
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logger.L().Errorf("main: ошибка закрытия базы: %v", err)
	}
}
