package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric/global"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/ravikgupta/affilink/backend/cmd"
	"github.com/ravikgupta/affilink/backend/domain"
	"github.com/ravikgupta/affilink/backend/expiry"
	_LinkHttpDelivery "github.com/ravikgupta/affilink/backend/link/delivery/http"
	_LinkRepo "github.com/ravikgupta/affilink/backend/link/repository"
	_LinkUcase "github.com/ravikgupta/affilink/backend/link/usecase"
	"github.com/ravikgupta/affilink/backend/metrics"
	_MyMiddleware "github.com/ravikgupta/affilink/backend/middleware"
	"github.com/ravikgupta/affilink/backend/store"
	_UserHttpDelivery "github.com/ravikgupta/affilink/backend/user/delivery/http"
	_UserRepo "github.com/ravikgupta/affilink/backend/user/repository"
	_UserUcase "github.com/ravikgupta/affilink/backend/user/usecase"
	"github.com/ravikgupta/affilink/backend/web"
	"github.com/ravikgupta/affilink/backend/web/auth"
)

func main() {
	// Logging
	logger, err := zap.NewDevelopment(zap.AddCaller())
	if err != nil {
		log.Println("can't create logger: ", err)
		return
	}
	defer func() {
		// do not need to check for errors
		_ = logger.Sync()
	}()

	if err := run(logger); err != nil {
		logger.Error("shutting down, error: ", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	// Configuration
	configPath, ok := os.LookupEnv("AFFILINK_CONFIG")
	if !ok {
		return fmt.Errorf("AFFILINK_CONFIG environment variable is not specified")
	}
	logger.Info("Config path", zap.String("path", configPath))
	cfg, err := cmd.AppConfig(configPath, logger)
	if err != nil {
		return err
	}

	// Initialize authentication support
	authenticator, err := auth.NewAuthenticator(cfg.Auth.Secret, cfg.Auth.Algorithm)
	if err != nil {
		return err
	}

	// Initialize context
	timeoutContext := time.Duration(cfg.Server.Timeout) * time.Second
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize tracing
	traceExporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithEndpoint(cfg.Server.OtlpAddress),
		otlptracegrpc.WithDialOption(grpc.WithBlock()),
	)
	if err != nil {
		return err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			// the service name used to display traces in backends
			semconv.ServiceNameKey.String("affilink-management-api"),
		),
	)
	if err != nil {
		return err
	}

	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()), // dev env only
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp),
	)
	otel.SetTracerProvider(tp)
	tracer := otel.Tracer("affilink-tracer")
	defer func() {
		if err = tp.Shutdown(ctx); err != nil {
			logger.Error("shutdown tracer provider", zap.Error(err))
		}
		if err = traceExporter.Shutdown(ctx); err != nil {
			logger.Error("shutdown tracing exporter", zap.Error(err))
		}
	}()

	// Initialize metrics
	metricExporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithInsecure(),
		otlpmetricgrpc.WithEndpoint(cfg.Server.OtlpAddress),
		otlpmetricgrpc.WithDialOption(grpc.WithBlock()),
	)
	if err != nil {
		return err
	}

	meterProvider := metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(metricExporter, metric.WithInterval(10*time.Second))),
		metric.WithResource(res),
	)
	global.SetMeterProvider(meterProvider)

	defer func() {
		if err = meterProvider.Shutdown(ctx); err != nil {
			logger.Error("shutdown meter provider", zap.Error(err))
		}
		if err = metricExporter.Shutdown(ctx); err != nil {
			logger.Error("shutdown metric exporter", zap.Error(err))
		}
	}()

	// Echo configure
	e := echo.New()
	middL := _MyMiddleware.InitMiddleware(logger)
	e.Pre(middleware.Rewrite(map[string]string{
		"/api/*": "/$1",
	}))
	e.Use(middL.CORS)
	e.Use(middL.Logger)
	e.Use(middleware.RecoverWithConfig(middleware.DefaultRecoverConfig))
	e.Use(otelecho.Middleware("affilink", otelecho.WithTracerProvider(tp)))
	e.Use(metrics.Middleware(metrics.WithMeterProvider(meterProvider)))

	// Initialize validator
	v, err := web.NewAppValidator()
	if err != nil {
		return err
	}
	e.Validator = v

	clock := expiry.RealClock{}

	// Create repositories
	var linkRepo domain.LinkRepository
	var userRepo domain.UserRepository
	if cfg.Store == cmd.StoreMemory {
		linkRepo = _LinkRepo.NewMemoryLinkRepository(clock, store.SeedLinks())
		userRepo = _UserRepo.NewMemoryUserRepository(store.SeedUsers())

		// Status check
		store.NewMemoryStatusHandler(e)
	} else {
		client, err := store.Open(ctx, cfg.MongoConfig, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err = client.Disconnect(ctx); err != nil {
				logger.Error("mongodb client disconnect error: ", zap.Error(err))
			}
		}()

		linkRepo = _LinkRepo.NewMongoLinkRepository(client, cfg.MongoConfig.Name, logger, tracer, clock)
		userRepo = _UserRepo.NewMongoUserRepository(client, cfg.MongoConfig.Name, logger, tracer)

		// Status check
		store.NewStatusHandler(e, client.Database(cfg.MongoConfig.Name))
	}

	// Create User API
	usu := _UserUcase.NewUserUsecase(userRepo, timeoutContext, tracer)
	ush := _UserHttpDelivery.NewUserHandler(usu, authenticator, v, logger, tracer)
	ush.RegisterRoutes(e)

	// Create Link API. The user usecase doubles as the commission limit
	// provider for link validation.
	lu := _LinkUcase.NewLinkUsecase(linkRepo, usu, clock, timeoutContext, tracer, cfg.Server.BaseURL)
	lh, err := _LinkHttpDelivery.NewLinkHandler(lu, authenticator, v, logger, tracer, expiry.NewCalculator(clock))
	if err != nil {
		return fmt.Errorf("link handler creation failed: %w", err)
	}
	lh.RegisterRoutes(e)

	go func() {
		if err := e.Start(cfg.Server.Address); err != nil {
			logger.Error("can't start server: ", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancelSrv := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelSrv()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("can't shutdown server: %w", err)
	}

	return nil
}
