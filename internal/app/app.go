package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Finure/app-gateway/internal/api/http/handler"
	"github.com/Finure/app-gateway/internal/api/http/route"
	"github.com/Finure/app-gateway/internal/apperrors"
	"github.com/Finure/app-gateway/internal/config"
	"github.com/Finure/app-gateway/internal/model"
	"github.com/Finure/app-gateway/internal/service"
	"github.com/Finure/app-gateway/pkg/kafka"
	"github.com/Finure/app-gateway/pkg/metrics"
	"github.com/Finure/app-gateway/pkg/secret"
	"github.com/Finure/app-gateway/pkg/server"
)

type ApplicationService interface {
	Submit(ctx context.Context, record model.ApplicationRecord) error
}

type ApplicationHandler interface {
	Apply(c *gin.Context)
}

type HealthService interface {
	CheckBroker(ctx context.Context) error
}

type HealthHandler interface {
	Ping(c *gin.Context)
	Health(c *gin.Context)
}

type App struct {
	Cfg           *config.Config
	Log           *zap.Logger
	Producer      kafka.Producer
	Service       *Service
	Handler       *Handler
	HTTPServer    server.HTTPServer
	MetricsServer server.HTTPServer // nil unless metrics are enabled
}

type Service struct {
	ApplicationService ApplicationService
	HealthService      HealthService
}

type Handler struct {
	ApplicationHandler ApplicationHandler
	HealthHandler      HealthHandler
}

func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	producer, err := initProducer(log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize kafka producer", zap.Error(err))
		return nil, err
	}

	return newApp(cfg, log, producer)
}

func newApp(cfg *config.Config, log *zap.Logger, producer kafka.Producer) (*App, error) {
	if cfg.Kafka.ConnectOnStart {
		if err := producer.Connect(); err != nil {
			log.Error("Failed to connect to kafka", zap.Error(err))
			_ = producer.Close()

			return nil, apperrors.Broker(err)
		}
	}

	svc := initService(log, &cfg.Kafka, producer)

	hdl := initHandler(log, svc)

	return &App{
		Cfg:           cfg,
		Log:           log,
		Producer:      producer,
		Service:       svc,
		Handler:       hdl,
		HTTPServer:    initHTTPServer(log, cfg, hdl),
		MetricsServer: initMetricsServer(log, &cfg.Metrics),
	}, nil
}

func MustNew(cfg *config.Config, log *zap.Logger) *App {
	app, err := New(cfg, log)
	if err != nil {
		panic(err)
	}

	return app
}

// Run serves until a server fails or ctx is done.
func (a *App) Run(ctx context.Context) error {
	errs := make(chan error, 2)

	go func() {
		errs <- a.HTTPServer.Run()
	}()

	a.Log.Info("HTTP server started", zap.String("addr", a.HTTPServer.Addr()))

	if a.MetricsServer != nil {
		go func() {
			errs <- a.MetricsServer.Run()
		}()

		a.Log.Info("Metrics server started", zap.String("addr", a.MetricsServer.Addr()))
	}

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		return nil
	}
}

func (a *App) Shutdown() error {
	var errs []error

	if err := a.HTTPServer.Shutdown(); err != nil {
		errs = append(errs, fmt.Errorf("failed to shutdown http server: %w", err))
	}

	a.Log.Debug("Http server shutdown")

	if a.MetricsServer != nil {
		if err := a.MetricsServer.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown metrics server: %w", err))
		}

		a.Log.Debug("Metrics server shutdown")
	}

	if err := a.Producer.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close kafka producer: %w", err))
	}

	a.Log.Debug("Kafka producer closed")

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrShutdown, err)
	}

	return nil
}

func initProducer(log *zap.Logger, cfg *config.Kafka) (kafka.Producer, error) {
	kafka.SetLogger(log)

	opts := []kafka.Option{
		kafka.WithBalancer(kafka.Hash),
		kafka.WithRequiredAcks(kafka.RequireAll),
		kafka.WithClientID(cfg.ClientID),
		kafka.WithVersion(cfg.Version),
		kafka.WithTimeout(cfg.PublishTimeout),
		kafka.WithRetry(cfg.Retry.Max, cfg.Retry.Backoff),
		kafka.WithLogger(log),
	}

	if cfg.TLSEnabled() {
		tlsOpt, err := initTLS(log, &cfg.TLS)
		if err != nil {
			return nil, err
		}

		opts = append(opts, tlsOpt)
	}

	producer, err := kafka.NewProducer(cfg.Brokers, opts...)
	if err != nil {
		return nil, apperrors.Config("failed to init kafka producer", err)
	}

	log.Debug("Kafka producer initialized", zap.Strings("brokers", cfg.Brokers), zap.String("topic", cfg.Topic))

	return producer, nil
}

func initTLS(log *zap.Logger, cfg *config.TLS) (kafka.Option, error) {
	var password string

	if path := cfg.PasswordFile(); path != "" {
		var err error

		password, err = secret.Read(path)
		if err != nil {
			return nil, apperrors.Config("failed to read kafka key password", err)
		}
	}

	tlsCfg, err := kafka.NewTLSConfig(kafka.TLSFiles{
		CertFile:    cfg.CertFile,
		KeyFile:     cfg.KeyFile,
		CAFile:      cfg.CAFile,
		KeyPassword: password,
	})
	if err != nil {
		return nil, apperrors.Config("failed to load kafka TLS material", err)
	}

	log.Debug("Kafka TLS material loaded", zap.String("cert", cfg.CertFile), zap.String("ca", cfg.CAFile))

	return kafka.WithTLS(tlsCfg), nil
}

func initService(log *zap.Logger, cfg *config.Kafka, producer kafka.Producer) *Service {
	applicationSvc := service.NewApplicationService(log, producer, cfg.Topic, cfg.PublishTimeout)
	log.Debug("Application service initialized")

	healthSvc := service.NewHealthService(log, producer, cfg.Topic, cfg.PublishTimeout)
	log.Debug("Health service initialized")

	return &Service{
		ApplicationService: applicationSvc,
		HealthService:      healthSvc,
	}
}

func initHandler(log *zap.Logger, svc *Service) *Handler {
	applicationHandler := handler.NewApplicationHandler(log, svc.ApplicationService)
	log.Debug("Application handler initialized")

	healthHandler := handler.NewHealthHandler(log, svc.HealthService)
	log.Debug("Health handler initialized")

	return &Handler{
		ApplicationHandler: applicationHandler,
		HealthHandler:      healthHandler,
	}
}

func initHTTPServer(log *zap.Logger, cfg *config.Config, hdl *Handler) server.HTTPServer {
	router := route.SetupRouter(
		log,
		cfg,
		hdl.HealthHandler,
		hdl.ApplicationHandler,
	)

	return server.NewHTTPServer(
		server.WithAddr(cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		server.WithTimeout(cfg.HTTPServer.Timeout.Read, cfg.HTTPServer.Timeout.Write, cfg.HTTPServer.Timeout.Idle),
		server.WithShutdownTimeout(cfg.HTTPServer.Timeout.Shutdown),
		server.WithHandler(router),
	)
}

func initMetricsServer(log *zap.Logger, cfg *config.Metrics) server.HTTPServer {
	if !cfg.Enabled {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.Path, metrics.Handler())

	log.Debug("Metrics server initialized", zap.String("path", cfg.Path))

	return server.NewHTTPServer(
		server.WithAddr(cfg.Host, cfg.Port),
		server.WithHandler(mux),
	)
}
