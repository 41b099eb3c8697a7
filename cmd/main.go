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

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMP-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMP-BookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMP-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMP-BookingService/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/m04kA/SMP-BookingService/internal/api/handlers/get_client_bookings"
	getProviderBookingsHandler "github.com/m04kA/SMP-BookingService/internal/api/handlers/get_provider_bookings"
	updateBookingStatusHandler "github.com/m04kA/SMP-BookingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMP-BookingService/internal/api/middleware"
	"github.com/m04kA/SMP-BookingService/internal/config"
	"github.com/m04kA/SMP-BookingService/internal/domain"
	"github.com/m04kA/SMP-BookingService/internal/infra/slotlock"
	bookingRepo "github.com/m04kA/SMP-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMP-BookingService/internal/infra/storage/catalog"
	ledgerRepo "github.com/m04kA/SMP-BookingService/internal/infra/storage/ledger"
	notifyServiceClient "github.com/m04kA/SMP-BookingService/internal/integrations/notifyservice"
	bookingsService "github.com/m04kA/SMP-BookingService/internal/service/bookings"
	createBookingUC "github.com/m04kA/SMP-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMP-BookingService/internal/usecase/get_available_slots"
	updateBookingStatusUC "github.com/m04kA/SMP-BookingService/internal/usecase/update_booking_status"
	"github.com/m04kA/SMP-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SMP-BookingService/pkg/logger"
	"github.com/m04kA/SMP-BookingService/pkg/metrics"
	"github.com/m04kA/SMP-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/SMP-BookingService/pkg/txmanager"
)

// SlotLockManager объединяет контракт лок-менеджера для main:
// use cases видят только Acquire/Confirm/Release, lifecycle дергает main
type SlotLockManager interface {
	Acquire(ctx context.Context, key domain.SlotKey) (*domain.SlotLock, error)
	Confirm(ctx context.Context, key domain.SlotKey, bookingID int64) error
	Release(ctx context.Context, key domain.SlotKey)
	Start()
	Stop()
}

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

	log.Info("Starting SMP-BookingService...")
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

	// Инициализируем клиент сервиса уведомлений
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("NotifyService client initialized (url=%s, timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		catalogRepository *catalogRepo.Repository
		ledgerRepository  *ledgerRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		ledgerRepository = ledgerRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		ledgerRepository = ledgerRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем менеджер слот-локов
	lockTTL := time.Duration(cfg.SlotLock.TTLMinutes) * time.Minute

	var lockRecorder slotlock.Recorder
	if cfg.Metrics.Enabled {
		lockRecorder = metricsCollector
	}

	var lockManager SlotLockManager
	switch cfg.SlotLock.Backend {
	case "redis":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.SlotLock.RedisAddr,
			Password: cfg.SlotLock.RedisPassword,
			DB:       cfg.SlotLock.RedisDB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		lockManager = slotlock.NewRedisManager(redisClient, bookingRepository, lockTTL, lockRecorder, log)
		log.Info("Slot lock manager: redis (addr=%s, ttl=%dm)", cfg.SlotLock.RedisAddr, cfg.SlotLock.TTLMinutes)
	default:
		lockManager = slotlock.NewMemoryManager(
			bookingRepository,
			lockTTL,
			time.Duration(cfg.SlotLock.SweepIntervalSeconds)*time.Second,
			lockRecorder,
			log,
		)
		log.Info("Slot lock manager: memory (ttl=%dm, sweep=%ds)",
			cfg.SlotLock.TTLMinutes, cfg.SlotLock.SweepIntervalSeconds)
	}

	lockManager.Start()
	defer lockManager.Stop()

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		lockManager,
		notifyClient,
		cfg.Booking.PlatformFeeRate,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		cfg.Booking.SlotStepMinutes,
		log,
	)

	updateBookingStatusUseCase := updateBookingStatusUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		ledgerRepository,
		txMgr,
		notifyClient,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getProviderBookings := getProviderBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(updateBookingStatusUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(updateBookingStatusUseCase, log)

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

	// Расчёт доступных слотов услуги на дату
	api.HandleFunc("/services/{serviceId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Переход статуса бронирования
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/clients/{clientId}/bookings", getClientBookings.Handle).Methods(http.MethodGet)

	// Список бронирований провайдера
	protected.HandleFunc("/providers/{providerId}/bookings", getProviderBookings.Handle).Methods(http.MethodGet)

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
