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

	"github.com/go-chi/httprate"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	exportReportHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/export_report"
	getAvailablePeriodsHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/get_available_periods"
	getPeriodsHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/get_periods"
	queryReportHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/query_report"
	reportAuthHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/report_auth"
	submitBookingHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/submit_booking"
	"github.com/m04kA/SMC-SlotBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SlotBookingService/internal/config"
	"github.com/m04kA/SMC-SlotBookingService/internal/infra/export"
	"github.com/m04kA/SMC-SlotBookingService/internal/infra/locker"
	"github.com/m04kA/SMC-SlotBookingService/internal/infra/session"
	bookingRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SlotBookingService/internal/timetable"
	getAvailablePeriodsUC "github.com/m04kA/SMC-SlotBookingService/internal/usecase/get_available_periods"
	queryReportUC "github.com/m04kA/SMC-SlotBookingService/internal/usecase/query_report"
	submitBookingUC "github.com/m04kA/SMC-SlotBookingService/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-SlotBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/logger"
	"github.com/m04kA/SMC-SlotBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/txmanager"
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

	log.Info("Starting SMC-SlotBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к хранилищу
	db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), cfg.Database.QueryTimeoutDuration())
	defer cancelStartup()

	if err := db.PingContext(startupCtx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Connected to database (driver=%s, %s)", cfg.Database.Driver, cfg.Database.Redacted())

	// Без метрик обёртка работает как прозрачный прокси
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)

	bookingRepository := bookingRepo.NewRepository(wrappedDB, cfg.Database.Driver, cfg.Database.QueryTimeoutDuration())
	if err := bookingRepository.EnsureSchema(startupCtx); err != nil {
		log.Fatal("Failed to prepare schema: %v", err)
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB, cfg.Database.SerializationRetries)

	// Расписание уроков
	tt := timetable.Default()
	periods, err := cfg.DomainPeriods()
	if err != nil {
		log.Fatal("Failed to read periods: %v", err)
	}
	if len(periods) > 0 {
		tt, err = timetable.New(periods)
		if err != nil {
			log.Fatal("Invalid timetable in config: %v", err)
		}
		log.Info("Timetable loaded from config (%d periods)", len(periods))
	} else {
		log.Info("Using default timetable (%d periods)", len(tt.Periods()))
	}

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}

	// Блокировка даты между экземплярами сервиса (Redis)
	var dateLocker submitBookingUC.DateLocker = locker.NopLocker{}
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(startupCtx).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}

		dateLocker = locker.NewDateLocker(
			redisClient,
			time.Duration(cfg.Redis.LockTTL)*time.Second,
			time.Duration(cfg.Redis.LockWait)*time.Second,
			log,
		)
		log.Info("Redis date lock enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.LockTTL)
	}

	var outcomeRecorder submitBookingUC.OutcomeRecorder
	if metricsCollector != nil {
		outcomeRecorder = metricsCollector
	}

	// Use cases
	submitBookingUseCase := submitBookingUC.NewUseCase(
		bookingRepository,
		tt,
		txMgr,
		dateLocker,
		outcomeRecorder,
		location,
		log,
	)
	getAvailablePeriodsUseCase := getAvailablePeriodsUC.NewUseCase(bookingRepository, tt, location, log)
	queryReportUseCase := queryReportUC.NewUseCase(bookingRepository, log)

	sessions := session.NewManager(
		cfg.Report.PinHash,
		cfg.Report.SessionSecret,
		time.Duration(cfg.Report.SessionTTL)*time.Second,
	)

	// Handlers
	getPeriods := getPeriodsHandler.NewHandler(tt, log)
	getAvailablePeriods := getAvailablePeriodsHandler.NewHandler(getAvailablePeriodsUseCase, log)
	submitBooking := submitBookingHandler.NewHandler(submitBookingUseCase, log)
	reportAuth := reportAuthHandler.NewHandler(sessions, log)
	queryReport := queryReportHandler.NewHandler(queryReportUseCase, log)
	exportReport := exportReportHandler.NewHandler(queryReportUseCase, export.NewBookingsWriter(), log)

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondNotFound(w, "route not found")
	})

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Справочник уроков для формы
	api.HandleFunc("/periods", getPeriods.Handle).Methods(http.MethodGet)

	// Свободные уроки на дату
	api.HandleFunc("/bookings/availability", getAvailablePeriods.Handle).Methods(http.MethodGet)

	// Подача заявки
	api.HandleFunc("/bookings", submitBooking.Handle).Methods(http.MethodPost)

	// Вход в отчет по PIN; регистрируется раньше подроутера /report, чтобы не попасть под ReportGate
	authLimiter := httprate.LimitByIP(cfg.Report.AuthRateLimit, time.Minute)
	api.Handle("/report/auth", authLimiter(http.HandlerFunc(reportAuth.Handle))).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (cookie report_session)
	// ============================================================

	report := api.PathPrefix("/report").Subrouter()
	report.Use(middleware.ReportGate(sessions, log))

	report.HandleFunc("", queryReport.Handle).Methods(http.MethodGet)
	report.HandleFunc("/export", exportReport.Handle).Methods(http.MethodGet)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopMetricsCh)

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
