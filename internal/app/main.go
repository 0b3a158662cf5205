package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Egor213/RBACPanel/internal/activitylog"
	"github.com/Egor213/RBACPanel/internal/broker"
	kafkabroker "github.com/Egor213/RBACPanel/internal/broker/kafka"
	"github.com/Egor213/RBACPanel/internal/client/rbacapi"
	"github.com/Egor213/RBACPanel/internal/config"
	grpcv1 "github.com/Egor213/RBACPanel/internal/controller/grpc/v1"
	httpv1 "github.com/Egor213/RBACPanel/internal/controller/http/v1"
	"github.com/Egor213/RBACPanel/internal/metrics"
	"github.com/Egor213/RBACPanel/internal/repo"
	"github.com/Egor213/RBACPanel/internal/service"
	"github.com/Egor213/RBACPanel/internal/session"
	errorsUtils "github.com/Egor213/RBACPanel/pkg/errors"
	"github.com/Egor213/RBACPanel/pkg/grpcserver"
	"github.com/Egor213/RBACPanel/pkg/httpserver"
	"github.com/Egor213/RBACPanel/pkg/logger"
	"github.com/Egor213/RBACPanel/pkg/postgres"
	"github.com/labstack/echo/v4"

	log "github.com/sirupsen/logrus"
)

func Run(configPath string) {
	// Config

	cfg, err := config.New(configPath)
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	// Logger
	logger.SetupLogger(cfg.Log.Level, log.Fields{"service": cfg.App.Name, "version": cfg.App.Version})
	log.Info("Logger has been set up")

	loc, err := cfg.Logs.Location()
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	// Alert history
	var pg *postgres.Postgres
	if cfg.PG.URL != "" {
		if err := Migrate(cfg.PG.URL); err != nil {
			log.Fatal(errorsUtils.WrapPathErr(err))
		}

		log.Info("Connecting to DB")
		pg, err = postgres.New(context.Background(), cfg.PG.URL, postgres.MaxPoolSize(cfg.PG.MaxPoolSize))
		if err != nil {
			log.Fatal(errorsUtils.WrapPathErr(err))
		}
		defer pg.Close()
		log.Info("Connected to DB")
	} else {
		log.Info("Postgres URL is empty, alert history disabled")
	}

	// Alert publishing
	var producer broker.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		kp := kafkabroker.NewProducer(kafkabroker.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			WriteTimeout: cfg.Kafka.WriteTimeout,
		})
		defer func() {
			if err := kp.Close(); err != nil {
				log.Error(errorsUtils.WrapPathErr(err))
			}
		}()
		producer = kp
		log.WithField("topic", cfg.Kafka.Topic).Info("Alert publishing enabled")
	}

	counters := metrics.New()

	activity := activitylog.New(activitylog.Config{
		Root:       cfg.Logs.Root,
		Enabled:    cfg.Activity.Enabled,
		MaxSizeMB:  cfg.Activity.MaxSizeMB,
		MaxBackups: cfg.Activity.MaxBackups,
	})
	defer func() {
		if err := activity.Close(); err != nil {
			log.Error(errorsUtils.WrapPathErr(err))
		}
	}()

	backend := rbacapi.New(cfg.Backend.URL, cfg.Backend.Timeout,
		rbacapi.WithCallLogger(activity),
		rbacapi.WithCounters(counters),
	)

	// Repos
	repositories := repo.NewRepositories(cfg.Logs.Root, pg)

	// Services
	deps := service.ServicesDependencies{
		Repos:              repositories,
		AuthAPI:            backend,
		Producer:           producer,
		Counters:           counters,
		Activity:           activity,
		Location:           loc,
		MaxConcurrentReads: cfg.Logs.MaxConcurrentReads,
		Auth: service.AuthConfig{
			PermissionsTTL: cfg.Auth.PermissionsTTL,
			TokenTTL:       cfg.Auth.TokenTTL,
		},
	}
	services := service.NewServices(deps)

	// HTTP server
	log.Info("Starting HTTP server...")
	log.Debugf("Server port: %s", cfg.HTTP.Port)
	handler := echo.New()
	handler.HideBanner = true
	handler.Use(metrics.HTTPMiddleware())
	httpv1.ConfigureRouter(handler, httpv1.Dependencies{
		Services:     services,
		Sessions:     session.NewStore(cfg.Auth.SessionTimeout),
		Backend:      backend,
		Activity:     activity,
		CookieName:   cfg.Auth.CookieName,
		SecureCookie: cfg.HTTP.SecureCookie,
	})
	httpServer, err := httpserver.New(handler,
		httpserver.Port(cfg.HTTP.Port),
		httpserver.ReadTimeout(cfg.HTTP.ReadTimeout),
		httpserver.WriteTimeout(cfg.HTTP.WriteTimeout),
		httpserver.ShutdownTimeout(cfg.HTTP.ShutdownTimeout),
	)
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	// gRPC Server
	var grpcServer *grpcserver.Server
	var grpcNotify <-chan error
	if cfg.GRPC.Port != "" {
		log.Info("Starting gRPC server...")
		log.Debugf("Server port: %s", cfg.GRPC.Port)
		opts := []grpcserver.Option{grpcserver.WithPort(cfg.GRPC.Port)}
		if cfg.GRPC.AuthToken != "" {
			opts = append(opts, grpcserver.WithUnaryInterceptors(grpcv1.BearerAuth(cfg.GRPC.AuthToken)))
		} else {
			log.Warn("gRPC auth token is empty, analytics service is unauthenticated")
		}
		grpcServer, err = grpcserver.New(grpcv1.RegisterServices(services, counters), opts...)
		if err != nil {
			log.Fatal(errorsUtils.WrapPathErr(err))
		}
		grpcNotify = grpcServer.Notify()
	}

	// Prometheus server
	log.Info("Starting metrics server...")
	log.Debugf("Server port: %s", cfg.Prometheus.Port)
	metricsHandler := echo.New()
	metricsHandler.HideBanner = true
	metrics.ConfigureRouter(metricsHandler)
	metricsServer, err := httpserver.New(metricsHandler, httpserver.Port(cfg.Prometheus.Port))
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	// Alert monitor
	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	if cfg.Alerts.MonitorInterval > 0 {
		log.WithField("interval", cfg.Alerts.MonitorInterval).Info("Starting alert monitor")
		go runAlertMonitor(monitorCtx, services.Alerts, cfg.Alerts.MonitorInterval)
	}

	// Waiting signal
	log.Info("Configuring graceful shutdown")
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app - Run - signal: " + s.String())
	case err := <-httpServer.Notify():
		log.Error(errorsUtils.WrapPathErr(err))
	case err := <-metricsServer.Notify():
		log.Error(errorsUtils.WrapPathErr(err))
	case err := <-grpcNotify:
		log.Error(errorsUtils.WrapPathErr(err))
	}

	// Graceful shutdown
	log.Info("Shutting down...")
	stopMonitor()
	if err := httpServer.Shutdown(); err != nil {
		log.Error(errorsUtils.WrapPathErr(err))
	}
	if err := metricsServer.Shutdown(); err != nil {
		log.Error(errorsUtils.WrapPathErr(err))
	}
	if grpcServer != nil {
		grpcServer.Shutdown()
	}
}
