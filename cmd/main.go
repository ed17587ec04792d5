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

	cancelReservationHandler "github.com/m04kA/BRS-ReservationService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/BRS-ReservationService/internal/api/handlers/create_reservation"
	getBarAvailabilityHandler "github.com/m04kA/BRS-ReservationService/internal/api/handlers/get_bar_availability"
	getBarReservationsHandler "github.com/m04kA/BRS-ReservationService/internal/api/handlers/get_bar_reservations"
	getDrinkOptionsHandler "github.com/m04kA/BRS-ReservationService/internal/api/handlers/get_drink_options"
	getReservationHandler "github.com/m04kA/BRS-ReservationService/internal/api/handlers/get_reservation"
	getSeatsForDateHandler "github.com/m04kA/BRS-ReservationService/internal/api/handlers/get_seats_for_date"
	getUserReservationsHandler "github.com/m04kA/BRS-ReservationService/internal/api/handlers/get_user_reservations"
	updateOperatingHoursHandler "github.com/m04kA/BRS-ReservationService/internal/api/handlers/update_operating_hours"
	updateReservationStatusHandler "github.com/m04kA/BRS-ReservationService/internal/api/handlers/update_reservation_status"
	updateSeatOptionsHandler "github.com/m04kA/BRS-ReservationService/internal/api/handlers/update_seat_options"
	upsertBarExceptionHandler "github.com/m04kA/BRS-ReservationService/internal/api/handlers/upsert_bar_exception"
	"github.com/m04kA/BRS-ReservationService/internal/api/middleware"
	"github.com/m04kA/BRS-ReservationService/internal/config"
	barRepo "github.com/m04kA/BRS-ReservationService/internal/infra/storage/bar"
	drinkRepo "github.com/m04kA/BRS-ReservationService/internal/infra/storage/drink"
	reservationRepo "github.com/m04kA/BRS-ReservationService/internal/infra/storage/reservation"
	scheduleRepo "github.com/m04kA/BRS-ReservationService/internal/infra/storage/schedule"
	seatOptionRepo "github.com/m04kA/BRS-ReservationService/internal/infra/storage/seatoption"
	inventoryService "github.com/m04kA/BRS-ReservationService/internal/service/inventory"
	reservationsService "github.com/m04kA/BRS-ReservationService/internal/service/reservations"
	scheduleService "github.com/m04kA/BRS-ReservationService/internal/service/schedule"
	createReservationUC "github.com/m04kA/BRS-ReservationService/internal/usecase/create_reservation"
	getBarAvailabilityUC "github.com/m04kA/BRS-ReservationService/internal/usecase/get_bar_availability"
	getSeatsForDateUC "github.com/m04kA/BRS-ReservationService/internal/usecase/get_seats_for_date"
	"github.com/m04kA/BRS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/BRS-ReservationService/pkg/logger"
	"github.com/m04kA/BRS-ReservationService/pkg/metrics"
	"github.com/m04kA/BRS-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/BRS-ReservationService/pkg/txmanager"
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

	log.Info("Starting BRS-ReservationService...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		barRepository         *barRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		seatOptionRepository  *seatOptionRepo.Repository
		reservationRepository *reservationRepo.Repository
		drinkRepository       *drinkRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		barRepository = barRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		seatOptionRepository = seatOptionRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		drinkRepository = drinkRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		barRepository = barRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		seatOptionRepository = seatOptionRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		drinkRepository = drinkRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		barRepository,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		barRepository,
		txMgr,
		log,
	)
	inventorySvc := inventoryService.NewService(
		seatOptionRepository,
		drinkRepository,
		barRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getBarAvailabilityUseCase := getBarAvailabilityUC.NewUseCase(
		barRepository,
		scheduleRepository,
		seatOptionRepository,
		reservationRepository,
		log,
	)

	getSeatsForDateUseCase := getSeatsForDateUC.NewUseCase(
		barRepository,
		scheduleRepository,
		seatOptionRepository,
		reservationRepository,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		barRepository,
		scheduleRepository,
		seatOptionRepository,
		reservationRepository,
		drinkRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getBarAvailability := getBarAvailabilityHandler.NewHandler(getBarAvailabilityUseCase, log)
	getSeatsForDate := getSeatsForDateHandler.NewHandler(getSeatsForDateUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationsSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	getBarReservations := getBarReservationsHandler.NewHandler(reservationsSvc, log)
	getDrinkOptions := getDrinkOptionsHandler.NewHandler(inventorySvc, log)
	updateOperatingHours := updateOperatingHoursHandler.NewHandler(scheduleSvc, log)
	upsertBarException := upsertBarExceptionHandler.NewHandler(scheduleSvc, log)
	updateSeatOptions := updateSeatOptionsHandler.NewHandler(inventorySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
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

	// Календарь доступности бара по диапазону дат
	api.HandleFunc("/bars/{barId}/availability", getBarAvailability.Handle).Methods(http.MethodGet)

	// Детализация посадки на конкретную дату
	api.HandleFunc("/bars/{barId}/seats", getSeatsForDate.Handle).Methods(http.MethodGet)

	// Меню напитков бара
	api.HandleFunc("/bars/{barId}/drinks", getDrinkOptions.Handle).Methods(http.MethodGet)

	// Недельный шаблон и исключения расписания
	api.HandleFunc("/bars/{barId}/hours", updateOperatingHours.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/bars/{barId}/exceptions", upsertBarException.HandleGet).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Обновление статуса бронирования (владелец бара)
	protected.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Управление баром (для владельцев) ---
	// Список бронирований бара
	protected.HandleFunc("/bars/{barId}/reservations", getBarReservations.Handle).Methods(http.MethodGet)

	// Замена недельного шаблона
	protected.HandleFunc("/bars/{barId}/hours", updateOperatingHours.Handle).Methods(http.MethodPut)

	// Исключения расписания
	protected.HandleFunc("/bars/{barId}/exceptions", upsertBarException.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bars/{barId}/exceptions/{date}", upsertBarException.HandleDelete).Methods(http.MethodDelete)

	// Конфигурация посадки
	protected.HandleFunc("/bars/{barId}/seat-options", updateSeatOptions.HandleGet).Methods(http.MethodGet)
	protected.HandleFunc("/bars/{barId}/seat-options", updateSeatOptions.Handle).Methods(http.MethodPut)

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
