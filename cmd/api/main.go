package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"auth-service/internal/config"
	"auth-service/internal/delivery/http/handler"
	domainOrder "auth-service/internal/domain/order"
	domainReset "auth-service/internal/domain/reset"
	domainUser "auth-service/internal/domain/user"
	"auth-service/internal/infrastructure/database/memory"
	"auth-service/internal/infrastructure/database/postgres"
	"auth-service/internal/infrastructure/queue"
	redisinfra "auth-service/internal/infrastructure/redis"
	"auth-service/internal/logger"
	"auth-service/internal/mail"
	"auth-service/internal/routes"
	"auth-service/internal/usecase/order"
	"auth-service/internal/usecase/reset"
	"auth-service/internal/usecase/user"
	"auth-service/pkg/utils"
)

type storage struct {
	users     domainUser.Repository
	resets    domainReset.Repository
	orders    domainOrder.Repository
	customers domainOrder.CustomerRepository
	health    routes.HealthChecker
	close     func() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	logger.Info("Starting auth service",
		zap.String("environment", env),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("mail_transport", cfg.Mail.Transport),
	)

	store, err := openStorage(cfg)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer func() {
		if err := store.close(); err != nil {
			logger.Error("Failed to close storage", zap.Error(err))
		}
	}()

	tokens, err := utils.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.Expiry())
	if err != nil {
		logger.Fatal("Failed to configure token issuer", zap.Error(err))
	}

	sender, closeSender := newMailSender(cfg)
	mailer := mail.NewAsyncSender(sender, cfg.Mail.Transport, cfg.Mail.SendTimeout())

	userService, err := user.NewService(
		store.users,
		reset.NewLedger(store.resets, cfg.Reset.TokenTTL()),
		utils.NewPasswordHasher(cfg.Security.BcryptCost),
		tokens,
		mailer,
		cfg.Reset.FrontendURL,
	)
	if err != nil {
		logger.Fatal("Failed to create user service", zap.Error(err))
	}

	if cfg.Redis.ThrottleEnabled() {
		client, err := redisinfra.NewClient(context.Background(), cfg.Redis)
		if err != nil {
			// the throttle fails open, so a missing redis is not fatal
			logger.Warn("Redis unavailable, forgot-password throttle disabled", zap.Error(err))
		} else {
			defer client.Close()
			userService.WithThrottle(redisinfra.NewForgotPasswordThrottle(
				client, cfg.Redis.ForgotPasswordLimit, cfg.Redis.ForgotPasswordWindow(),
			))
		}
	}

	orderService := order.NewService(store.orders, store.customers)

	router := routes.SetupRoutes(cfg, store.health, routes.Services{
		Auth:          handler.NewAuthHandler(userService),
		Orders:        handler.NewOrderHandler(orderService),
		Authenticator: userService,
	})

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("address", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", zap.Error(err))
	}
	if err := mailer.Wait(ctx); err != nil {
		logger.Warn("Pending reset emails abandoned", zap.Error(err))
	}
	if err := closeSender(); err != nil {
		logger.Error("Failed to close mail transport", zap.Error(err))
	}

	logger.Info("Server exited properly")
}

func openStorage(cfg *config.Config) (*storage, error) {
	if cfg.Database.Driver == config.DriverMemory {
		logger.Warn("Using in-memory storage, data is lost on restart")
		s := memory.NewStore()
		return &storage{
			users:     s.Users(),
			resets:    s.Resets(),
			orders:    s.Orders(),
			customers: s.Customers(),
			health:    s,
			close:     func() error { return nil },
		}, nil
	}

	db, err := postgres.NewDB(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := db.Migrate(context.Background()); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return &storage{
		users:     postgres.NewUserRepository(db),
		resets:    postgres.NewResetRepository(db),
		orders:    postgres.NewOrderRepository(db),
		customers: postgres.NewCustomerRepository(db),
		health:    db,
		close:     db.Close,
	}, nil
}

func newMailSender(cfg *config.Config) (mail.Sender, func() error) {
	switch cfg.Mail.Transport {
	case config.MailTransportSMTP:
		return mail.NewSMTPSender(cfg.SMTP), func() error { return nil }
	case config.MailTransportKafka:
		producer := queue.NewProducer(cfg.Kafka)
		return mail.NewKafkaSender(producer), producer.Close
	default:
		return mail.NewLogSender(), func() error { return nil }
	}
}
