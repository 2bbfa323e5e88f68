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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SwimAcademy-ScheduleService/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/m04kA/SwimAcademy-ScheduleService/internal/api/handlers/confirm_booking"
	createTemplateHandler "github.com/m04kA/SwimAcademy-ScheduleService/internal/api/handlers/create_template"
	deleteTemplateHandler "github.com/m04kA/SwimAcademy-ScheduleService/internal/api/handlers/delete_template"
	generateSlotsHandler "github.com/m04kA/SwimAcademy-ScheduleService/internal/api/handlers/generate_slots"
	getDayScheduleHandler "github.com/m04kA/SwimAcademy-ScheduleService/internal/api/handlers/get_day_schedule"
	getSeasonTemplatesHandler "github.com/m04kA/SwimAcademy-ScheduleService/internal/api/handlers/get_season_templates"
	getStudentBookingsHandler "github.com/m04kA/SwimAcademy-ScheduleService/internal/api/handlers/get_student_bookings"
	lockSlotHandler "github.com/m04kA/SwimAcademy-ScheduleService/internal/api/handlers/lock_slot"
	releaseLockHandler "github.com/m04kA/SwimAcademy-ScheduleService/internal/api/handlers/release_lock"
	triggerSweepHandler "github.com/m04kA/SwimAcademy-ScheduleService/internal/api/handlers/trigger_sweep"
	updateTemplateHandler "github.com/m04kA/SwimAcademy-ScheduleService/internal/api/handlers/update_template"
	"github.com/m04kA/SwimAcademy-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SwimAcademy-ScheduleService/internal/app"
	"github.com/m04kA/SwimAcademy-ScheduleService/internal/config"
	"github.com/m04kA/SwimAcademy-ScheduleService/internal/domain"
	slotRepo "github.com/m04kA/SwimAcademy-ScheduleService/internal/infra/storage/slot"
	studentRepo "github.com/m04kA/SwimAcademy-ScheduleService/internal/infra/storage/student"
	templateRepo "github.com/m04kA/SwimAcademy-ScheduleService/internal/infra/storage/template"
	academyServiceClient "github.com/m04kA/SwimAcademy-ScheduleService/internal/integrations/academyservice"
	scheduleService "github.com/m04kA/SwimAcademy-ScheduleService/internal/service/schedule"
	templatesService "github.com/m04kA/SwimAcademy-ScheduleService/internal/service/templates"
	cancelBookingUC "github.com/m04kA/SwimAcademy-ScheduleService/internal/usecase/cancel_booking"
	confirmBookingUC "github.com/m04kA/SwimAcademy-ScheduleService/internal/usecase/confirm_booking"
	generateSlotsUC "github.com/m04kA/SwimAcademy-ScheduleService/internal/usecase/generate_slots"
	lockSlotUC "github.com/m04kA/SwimAcademy-ScheduleService/internal/usecase/lock_slot"
	releaseLockUC "github.com/m04kA/SwimAcademy-ScheduleService/internal/usecase/release_lock"
	settleSessionsUC "github.com/m04kA/SwimAcademy-ScheduleService/internal/usecase/settle_sessions"
	"github.com/m04kA/SwimAcademy-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SwimAcademy-ScheduleService/pkg/logger"
	"github.com/m04kA/SwimAcademy-ScheduleService/pkg/metrics"
	"github.com/m04kA/SwimAcademy-ScheduleService/pkg/simpletxmanager"
	"github.com/m04kA/SwimAcademy-ScheduleService/pkg/txmanager"
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

	log.Info("Starting SwimAcademy-ScheduleService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

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

	// Применяем миграции
	migrator, err := app.NewMigrator(db)
	if err != nil {
		log.Fatal("Failed to initialize migrator: %v", err)
	}
	if err := migrator.Run(context.Background()); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	if version, err := migrator.Version(context.Background()); err == nil {
		log.Info("Database schema version: %d", version)
	}

	// Инициализируем клиента конфигурационного сервиса академии
	academyClient := academyServiceClient.NewClient(
		cfg.AcademyService.URL,
		time.Duration(cfg.AcademyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (AcademyService=%s timeout=%ds)",
		cfg.AcademyService.URL, cfg.AcademyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository     *slotRepo.Repository
		templateRepository *templateRepo.Repository
		studentRepository  *studentRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		templateRepository = templateRepo.NewRepository(wrappedDB)
		studentRepository = studentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManagerWithMetrics(wrappedDB, metricsCollector)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		templateRepository = templateRepo.NewRepository(db)
		studentRepository = studentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Каталог полос времени единый на весь сервис
	catalog := domain.DefaultTimeCatalog()
	timeProvider := &lockSlotUC.RealTimeProvider{}

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(slotRepository, catalog, log)
	templatesSvc := templatesService.NewService(templateRepository, academyClient, log)

	// Инициализируем use cases
	var sweepMetrics settleSessionsUC.Metrics = settleSessionsUC.NopMetrics{}
	if cfg.Metrics.Enabled {
		sweepMetrics = metricsCollector
	}
	settleSessionsUseCase := settleSessionsUC.NewUseCase(
		slotRepository,
		studentRepository,
		txMgr,
		catalog,
		timeProvider,
		cfg.Booking.SweepWindowDays,
		sweepMetrics,
		log,
	)

	// Фоновый воркер списания: тикает по расписанию и будится операциями записи
	sweeper := app.NewSweeper(
		settleSessionsUseCase,
		time.Duration(cfg.Booking.SweepIntervalMinutes)*time.Minute,
		log,
	)

	lockSlotUseCase := lockSlotUC.NewUseCase(
		slotRepository,
		txMgr,
		timeProvider,
		time.Duration(cfg.Booking.LockTTLMinutes)*time.Minute,
		log,
	)
	releaseLockUseCase := releaseLockUC.NewUseCase(slotRepository, txMgr, timeProvider, log)
	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		slotRepository,
		studentRepository,
		txMgr,
		sweeper,
		timeProvider,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		slotRepository,
		txMgr,
		sweeper,
		catalog,
		timeProvider,
		log,
	)
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		slotRepository,
		templateRepository,
		studentRepository,
		academyClient,
		catalog,
		log,
	)

	// Инициализируем handlers
	lockSlot := lockSlotHandler.NewHandler(lockSlotUseCase, log)
	releaseLock := releaseLockHandler.NewHandler(releaseLockUseCase, log)
	confirmBooking := confirmBookingHandler.NewHandler(confirmBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	getDaySchedule := getDayScheduleHandler.NewHandler(scheduleSvc, log)
	getStudentBookings := getStudentBookingsHandler.NewHandler(scheduleSvc, log)
	createTemplate := createTemplateHandler.NewHandler(templatesSvc, log)
	updateTemplate := updateTemplateHandler.NewHandler(templatesSvc, log)
	deleteTemplate := deleteTemplateHandler.NewHandler(templatesSvc, log)
	getSeasonTemplates := getSeasonTemplatesHandler.NewHandler(templatesSvc, log)
	triggerSweep := triggerSweepHandler.NewHandler(settleSessionsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расписание дня со свободными местами
	api.HandleFunc("/schedule/{date}", getDaySchedule.Handle).Methods(http.MethodGet)

	// Шаблоны расписания сезона
	api.HandleFunc("/seasons/{seasonId}/templates", getSeasonTemplates.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Staff-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Запись в слоты ---
	// Блокировка места на время оформления
	protected.HandleFunc("/slots/{slotKey}/lock", lockSlot.Handle).Methods(http.MethodPost)

	// Снятие блокировки
	protected.HandleFunc("/slots/{slotKey}/lock/{studentId}", releaseLock.Handle).Methods(http.MethodDelete)

	// Подтверждение записи
	protected.HandleFunc("/slots/{slotKey}/confirm", confirmBooking.Handle).Methods(http.MethodPost)

	// Отмена записи
	protected.HandleFunc("/slots/{slotKey}/cancel/{studentId}", cancelBooking.Handle).Methods(http.MethodPost)

	// Записи ученика за период
	protected.HandleFunc("/students/{studentId}/bookings", getStudentBookings.Handle).Methods(http.MethodGet)

	// --- Управление расписанием сезона ---
	// Генерация слотов на период
	protected.HandleFunc("/seasons/{seasonId}/generate-slots", generateSlots.Handle).Methods(http.MethodPost)

	// Создание шаблона расписания
	protected.HandleFunc("/seasons/{seasonId}/templates", createTemplate.Handle).Methods(http.MethodPost)

	// Обновление шаблона
	protected.HandleFunc("/templates/{templateId}", updateTemplate.Handle).Methods(http.MethodPatch)

	// Удаление шаблона
	protected.HandleFunc("/templates/{templateId}", deleteTemplate.Handle).Methods(http.MethodDelete)

	// --- Обслуживание ---
	// Ручной запуск списания кредитов
	protected.HandleFunc("/sweep", triggerSweep.Handle).Methods(http.MethodPost)

	// Запускаем воркер списания
	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	sweeper.Start(sweeperCtx)
	log.Info("Settlement sweeper started (interval=%dm, window=%dd)",
		cfg.Booking.SweepIntervalMinutes, cfg.Booking.SweepWindowDays)

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

	// Останавливаем воркер списания, дожидаясь текущего прохода
	stopSweeper()
	sweeper.Stop()
	log.Info("Settlement sweeper stopped")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
