package main

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	checkoutReservationHandler "github.com/m04kA/SMC-PitchBookingService/internal/api/handlers/checkout_reservation"
	createReservationHandler "github.com/m04kA/SMC-PitchBookingService/internal/api/handlers/create_reservation"
	getAvailabilityHandler "github.com/m04kA/SMC-PitchBookingService/internal/api/handlers/get_availability"
	getPitchHandler "github.com/m04kA/SMC-PitchBookingService/internal/api/handlers/get_pitch"
	getPitchReservationsHandler "github.com/m04kA/SMC-PitchBookingService/internal/api/handlers/get_pitch_reservations"
	getReservationHandler "github.com/m04kA/SMC-PitchBookingService/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/m04kA/SMC-PitchBookingService/internal/api/handlers/get_user_reservations"
	paymentReturnHandler "github.com/m04kA/SMC-PitchBookingService/internal/api/handlers/payment_return"
	paymentWebhookHandler "github.com/m04kA/SMC-PitchBookingService/internal/api/handlers/payment_webhook"
	quotePitchHandler "github.com/m04kA/SMC-PitchBookingService/internal/api/handlers/quote_pitch"
	reviewReservationHandler "github.com/m04kA/SMC-PitchBookingService/internal/api/handlers/review_reservation"
	watchReservationsHandler "github.com/m04kA/SMC-PitchBookingService/internal/api/handlers/watch_reservations"
	"github.com/m04kA/SMC-PitchBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-PitchBookingService/internal/config"
	"github.com/m04kA/SMC-PitchBookingService/internal/infra/broker"
	"github.com/m04kA/SMC-PitchBookingService/internal/infra/notify"
	"github.com/m04kA/SMC-PitchBookingService/internal/infra/realtime"
	paymentRepo "github.com/m04kA/SMC-PitchBookingService/internal/infra/storage/payment"
	pitchRepo "github.com/m04kA/SMC-PitchBookingService/internal/infra/storage/pitch"
	reservationRepo "github.com/m04kA/SMC-PitchBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-PitchBookingService/internal/integrations/paymentgateway"
	pitchesService "github.com/m04kA/SMC-PitchBookingService/internal/service/pitches"
	reservationsService "github.com/m04kA/SMC-PitchBookingService/internal/service/reservations"
	confirmPaymentUC "github.com/m04kA/SMC-PitchBookingService/internal/usecase/confirm_payment"
	createReservationUC "github.com/m04kA/SMC-PitchBookingService/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/m04kA/SMC-PitchBookingService/internal/usecase/get_availability"
	initiatePaymentUC "github.com/m04kA/SMC-PitchBookingService/internal/usecase/initiate_payment"
	sweepPendingPaymentsUC "github.com/m04kA/SMC-PitchBookingService/internal/usecase/sweep_pending_payments"
	"github.com/m04kA/SMC-PitchBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PitchBookingService/pkg/logger"
	"github.com/m04kA/SMC-PitchBookingService/pkg/metrics"
	"github.com/m04kA/SMC-PitchBookingService/pkg/txmanager"
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

	log.Info("Starting SMC-PitchBookingService...")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обертка просто проксирует запросы
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	pitchRepository := pitchRepo.NewRepository(wrappedDB)
	paymentRepository := paymentRepo.NewRepository(wrappedDB)

	// Каналы уведомлений об изменении статусов
	var (
		targets     []notify.Target
		redisClient *redis.Client
		hub         *realtime.Hub
		publisher   *broker.Publisher
	)

	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancelPing()
		if err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}

		hub = realtime.NewHub(redisClient, cfg.Redis.ChannelPrefix, log)
		targets = append(targets, notify.Target{Name: "redis", Publisher: hub})
		log.Info("Realtime notifications enabled (redis=%s)", cfg.Redis.Addr)
	}

	if cfg.RabbitMQ.Enabled {
		publisher, err = broker.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to rabbitmq: %v", err)
		}
		targets = append(targets, notify.Target{Name: "rabbitmq", Publisher: publisher})
		log.Info("Broker notifications enabled (exchange=%s)", cfg.RabbitMQ.Exchange)
	}

	notifier := notify.NewFanout(log, targets...)
	log.Info("Notification fanout initialized (targets=%d)", notifier.Len())

	// Сервисы
	pitchSvc := pitchesService.NewService(pitchRepository, log)
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		pitchRepository,
		notifier,
		metricsCollector,
		log,
	)

	// Use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		pitchRepository,
		reservationRepository,
		getAvailabilityUC.RetryPolicy{
			MaxRetries: cfg.Availability.MaxRetries,
			Delay:      time.Duration(cfg.Availability.RetryDelayMs) * time.Millisecond,
		},
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		pitchRepository,
		reservationRepository,
		txMgr,
		metricsCollector,
		log,
	)

	// Контекст фоновых задач, отменяется при остановке
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	var (
		initiatePaymentUseCase *initiatePaymentUC.UseCase
		confirmPaymentUseCase  *confirmPaymentUC.UseCase
	)

	if cfg.Payment.Enabled {
		if !paymentgateway.SupportedCurrency(cfg.Payment.Currency) {
			log.Fatal("Unsupported payment currency: %s", cfg.Payment.Currency)
		}

		gateway, err := paymentgateway.NewClient(cfg.Payment.PublicKey, cfg.Payment.SecretKey, log)
		if err != nil {
			log.Fatal("Failed to initialize payment gateway: %v", err)
		}

		initiatePaymentUseCase = initiatePaymentUC.NewUseCase(
			pitchRepository,
			reservationRepository,
			paymentRepository,
			gateway,
			initiatePaymentUC.Settings{
				Currency:  cfg.Payment.Currency,
				ReturnURL: cfg.Payment.ReturnURL,
			},
			log,
		)

		confirmPaymentUseCase = confirmPaymentUC.NewUseCase(
			paymentRepository,
			reservationRepository,
			gateway,
			txMgr,
			notifier,
			metricsCollector,
			log,
		)

		sweeper, err := sweepPendingPaymentsUC.NewUseCase(
			paymentRepository,
			confirmPaymentUseCase,
			time.Duration(cfg.Payment.PendingTTLMinutes)*time.Minute,
			log,
		)
		if err != nil {
			log.Fatal("Failed to initialize pending payments sweeper: %v", err)
		}
		go sweeper.Run(bgCtx, time.Duration(cfg.Payment.SweepIntervalSeconds)*time.Second)

		log.Info("Payments enabled (currency=%s, pending_ttl=%dm)", cfg.Payment.Currency, cfg.Payment.PendingTTLMinutes)
	}

	// Handlers
	getPitch := getPitchHandler.NewHandler(pitchSvc, log)
	quotePitch := quotePitchHandler.NewHandler(pitchSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	validateReservation := reviewReservationHandler.NewHandler(reservationSvc, reviewReservationHandler.ActionValidate, log)
	refuseReservation := reviewReservationHandler.NewHandler(reservationSvc, reviewReservationHandler.ActionRefuse, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getPitchReservations := getPitchReservationsHandler.NewHandler(reservationSvc, log)

	var watcher watchReservationsHandler.Watcher
	if hub != nil {
		watcher = watchReservationsHandler.HubWatcher{Hub: hub}
	}
	watchReservations := watchReservationsHandler.NewHandler(
		watcher, reservationSvc, watchReservationsHandler.ScopeRequester, watchReservationsHandler.DefaultHeartbeat, log,
	)
	watchReservation := watchReservationsHandler.NewHandler(
		watcher, reservationSvc, watchReservationsHandler.ScopeReservation, watchReservationsHandler.DefaultHeartbeat, log,
	)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/pitches/{pitchId}", getPitch.Handle).Methods(http.MethodGet)
	api.HandleFunc("/pitches/{pitchId}/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/pitches/{pitchId}/quote", quotePitch.Handle).Methods(http.MethodPost)

	if cfg.Payment.Enabled {
		paymentWebhook := paymentWebhookHandler.NewHandler(confirmPaymentUseCase, log)
		paymentReturn := paymentReturnHandler.NewHandler(confirmPaymentUseCase, log)

		// Уведомления шлюза и возврат пользователя со страницы оплаты
		api.HandleFunc("/payments/webhook", paymentWebhook.Handle).Methods(http.MethodPost)
		api.HandleFunc("/payments/return", paymentReturn.Handle).Methods(http.MethodGet)
	}

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer JWT)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret))

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	if cfg.Payment.Enabled {
		checkout := checkoutReservationHandler.NewHandler(initiatePaymentUseCase, log)
		protected.HandleFunc("/reservations/checkout", checkout.Handle).Methods(http.MethodPost)
	}
	// /watch регистрируется раньше /{reservationId}
	protected.HandleFunc("/reservations/watch", watchReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId:[0-9]+}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId:[0-9]+}/watch", watchReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/me/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Управление полем (для менеджеров и владельцев) ---
	protected.HandleFunc("/reservations/{reservationId:[0-9]+}/validate", validateReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId:[0-9]+}/refuse", refuseReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/pitches/{pitchId}/reservations", getPitchReservations.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return bgCtx
		},
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

	// Останавливаем sweeper и открытые SSE-потоки
	stopBackground()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Warn("Failed to close rabbitmq publisher: %v", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Warn("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
