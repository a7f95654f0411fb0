package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-TurnService/internal/api/handlers"
	cancelOwnTurnHandler "github.com/m04kA/SMC-TurnService/internal/api/handlers/cancel_own_turn"
	cancelTurnHandler "github.com/m04kA/SMC-TurnService/internal/api/handlers/cancel_turn"
	completeTurnHandler "github.com/m04kA/SMC-TurnService/internal/api/handlers/complete_turn"
	createTurnHandler "github.com/m04kA/SMC-TurnService/internal/api/handlers/create_turn"
	getAdminWaitingHandler "github.com/m04kA/SMC-TurnService/internal/api/handlers/get_admin_waiting"
	getTurnHandler "github.com/m04kA/SMC-TurnService/internal/api/handlers/get_turn"
	getTurnByMobileHandler "github.com/m04kA/SMC-TurnService/internal/api/handlers/get_turn_by_mobile"
	getTurnStatsHandler "github.com/m04kA/SMC-TurnService/internal/api/handlers/get_turn_stats"
	getWaitingTurnsHandler "github.com/m04kA/SMC-TurnService/internal/api/handlers/get_waiting_turns"
	listTurnsHandler "github.com/m04kA/SMC-TurnService/internal/api/handlers/list_turns"
	loginHandler "github.com/m04kA/SMC-TurnService/internal/api/handlers/login"
	updateNotesHandler "github.com/m04kA/SMC-TurnService/internal/api/handlers/update_notes"
	"github.com/m04kA/SMC-TurnService/internal/api/middleware"
	"github.com/m04kA/SMC-TurnService/internal/auth"
	"github.com/m04kA/SMC-TurnService/internal/config"
	"github.com/m04kA/SMC-TurnService/internal/infra/migrations"
	turnRepo "github.com/m04kA/SMC-TurnService/internal/infra/storage/turn"
	userRepo "github.com/m04kA/SMC-TurnService/internal/infra/storage/user"
	authService "github.com/m04kA/SMC-TurnService/internal/service/auth"
	turnsService "github.com/m04kA/SMC-TurnService/internal/service/turns"
	cancelOwnTurnUC "github.com/m04kA/SMC-TurnService/internal/usecase/cancel_own_turn"
	cancelTurnUC "github.com/m04kA/SMC-TurnService/internal/usecase/cancel_turn"
	completeTurnUC "github.com/m04kA/SMC-TurnService/internal/usecase/complete_turn"
	createTurnUC "github.com/m04kA/SMC-TurnService/internal/usecase/create_turn"
	"github.com/m04kA/SMC-TurnService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurnService/pkg/logger"
	"github.com/m04kA/SMC-TurnService/pkg/metrics"
	"github.com/m04kA/SMC-TurnService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-TurnService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-TurnService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Накатываем миграции
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("Failed to set migration dialect: %v", err)
	}
	if err := goose.UpContext(context.Background(), db, "."); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Database migrations applied")

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		turnRepository *turnRepo.Repository
		userRepository *userRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopCh)
		log.Info("Database metrics collection started")

		turnRepository = turnRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		turnRepository = turnRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	tokenManager := auth.NewTokenManager(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
	)

	turnsSvc := turnsService.NewService(turnRepository, log)
	authSvc := authService.NewService(userRepository, tokenManager, log)

	// Создаем администратора по умолчанию, если его еще нет
	if cfg.Auth.DefaultAdminUsername != "" {
		seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := authSvc.EnsureDefaultAdmin(seedCtx, cfg.Auth.DefaultAdminUsername, cfg.Auth.DefaultAdminPassword); err != nil {
			cancel()
			log.Fatal("Failed to ensure default admin: %v", err)
		}
		cancel()
	}

	// Инициализируем use cases
	createTurnUseCase := createTurnUC.NewUseCase(turnRepository, txMgr, log)
	completeTurnUseCase := completeTurnUC.NewUseCase(turnRepository, txMgr, log)
	cancelTurnUseCase := cancelTurnUC.NewUseCase(turnRepository, txMgr, log)
	cancelOwnTurnUseCase := cancelOwnTurnUC.NewUseCase(turnRepository, txMgr, log)

	// Инициализируем handlers
	createTurn := createTurnHandler.NewHandler(createTurnUseCase, log)
	getTurn := getTurnHandler.NewHandler(turnsSvc, log)
	getTurnByMobile := getTurnByMobileHandler.NewHandler(turnsSvc, log)
	cancelOwnTurn := cancelOwnTurnHandler.NewHandler(cancelOwnTurnUseCase, log)
	getWaitingTurns := getWaitingTurnsHandler.NewHandler(turnsSvc, log)
	getTurnStats := getTurnStatsHandler.NewHandler(turnsSvc, log)
	listTurns := listTurnsHandler.NewHandler(turnsSvc, log)
	getAdminWaiting := getAdminWaitingHandler.NewHandler(turnsSvc, log)
	completeTurn := completeTurnHandler.NewHandler(completeTurnUseCase, log)
	cancelTurn := cancelTurnHandler.NewHandler(cancelTurnUseCase, log)
	updateNotes := updateNotesHandler.NewHandler(turnsSvc, log)
	login := loginHandler.NewHandler(authSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix; каждый запрос обрабатывается не дольше request_timeout
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Timeout(time.Duration(cfg.Server.RequestTimeout) * time.Second))

	api.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// ============================================================
	// PUBLIC ROUTES (клиенты очереди, без аутентификации)
	// ============================================================

	public := api.PathPrefix("").Subrouter()

	if cfg.RateLimit.Enabled {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, log)
		go rateLimiter.CleanupLoop(time.Minute, 10*time.Minute, stopCh)
		public.Use(rateLimiter.Middleware)
		log.Info("Rate limiting enabled: %d req/min, burst %d",
			cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}

	// Постановка в очередь
	public.HandleFunc("/turns", createTurn.Handle).Methods(http.MethodPost)

	// Статистика очереди и табло ожидания
	public.HandleFunc("/turns/stats", getTurnStats.Handle).Methods(http.MethodGet)
	public.HandleFunc("/turns/waiting", getWaitingTurns.Handle).Methods(http.MethodGet)

	// Поиск и отмена своего талона по номеру телефона
	public.HandleFunc("/turns/customer/{mobileNumber}", getTurnByMobile.Handle).Methods(http.MethodGet)
	public.HandleFunc("/turns/cancel/{mobileNumber}", cancelOwnTurn.Handle).Methods(http.MethodPut)

	// Талон по ID
	public.HandleFunc("/turns/{id}", getTurn.Handle).Methods(http.MethodGet)

	// Вход администратора
	public.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют Bearer токен с ролью admin)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth(tokenManager, log))
	admin.Use(middleware.RequireAdmin(log))

	// Список талонов с фильтрацией и пагинацией
	admin.HandleFunc("/turns", listTurns.Handle).Methods(http.MethodGet)

	// Полное табло ожидания
	admin.HandleFunc("/turns/waiting", getAdminWaiting.Handle).Methods(http.MethodGet)

	// Талон по ID
	admin.HandleFunc("/turns/{id}", getTurn.Handle).Methods(http.MethodGet)

	// Переходы состояний и заметки
	admin.HandleFunc("/turns/{id}/complete", completeTurn.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/turns/{id}/cancel", cancelTurn.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/turns/{id}/notes", updateNotes.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновые горутины (метрики пула, чистка rate limiter)
	close(stopCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
