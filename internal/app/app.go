package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/product-registry/internal/cfg"
	v1Grpc "github.com/DRSN-tech/product-registry/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/product-registry/internal/delivery/v1/http"
	"github.com/DRSN-tech/product-registry/internal/infrastructure/condition"
	"github.com/DRSN-tech/product-registry/internal/infrastructure/kafka"
	"github.com/DRSN-tech/product-registry/internal/repository/memory"
	"github.com/DRSN-tech/product-registry/internal/usecase"
	"github.com/DRSN-tech/product-registry/pkg/closer"
	"github.com/DRSN-tech/product-registry/pkg/clients"
	"github.com/DRSN-tech/product-registry/pkg/e"
	"github.com/DRSN-tech/product-registry/pkg/logger"
	"github.com/DRSN-tech/product-registry/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	initTimeout     = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

// App собирает реестр, транспорт и инфраструктуру и управляет их жизненным циклом.
type App struct {
	cfg      *config.Config
	logger   logger.Logger
	closer   *closer.Closer
	registry *usecase.RegistryUseCase
	httpSrv  *v1Http.Server
	grpcSrv  *v1Grpc.GRPCServer
	outbox   *kafka.OutboxWorker
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	const op = "app.NewApp"

	a := &App{
		cfg:    cfg,
		logger: log,
		closer: closer.NewCloser(2 * time.Second),
	}

	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	journal := memory.NewEventJournal()
	registry, err := usecase.NewRegistryUC(cfg.Registry.Admin, memory.NewProductRepo(), journal, log)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	a.registry = registry
	log.Infof("registry initialized, administrator: %s", cfg.Registry.Admin)

	cond, err := a.initCondition(ctx)
	if err != nil {
		a.closeOnInitFailure()
		return nil, e.Wrap(op, err)
	}

	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(log, cfg.Kafka)
		if err := producer.EnsureTopic(initTimeout); err != nil {
			log.Warnf("failed to ensure kafka topic %s: %v", cfg.Kafka.Topic, err)
		}
		a.closer.Add("kafka producer", func(context.Context) error { return producer.Close() })

		a.outbox = kafka.NewOutboxWorker(journal, producer, log, cfg.Kafka)
	}

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(registry, cond)
	a.httpSrv = v1Http.NewServer(r, cfg.Http, log)

	a.grpcSrv = v1Grpc.NewGRPCServer(cfg.Grpc, log)

	return a, nil
}

// initCondition подключает внешний реестр условий, выбранный в конфигурации.
func (a *App) initCondition(ctx context.Context) (usecase.ExternalCondition, error) {
	cfg := a.cfg

	var cond usecase.ExternalCondition
	switch cfg.Condition.Backend {
	case config.ConditionBackendStatic:
		cond = condition.NewAllowList(cfg.Condition.AllowList...)

	case config.ConditionBackendRedis:
		redisClient := clients.NewRedisClient(cfg.Redis)
		a.closer.Add("redis", redisClient.Close)
		if err := redisClient.Ping(ctx); err != nil {
			a.logger.Errorf(err, "failed to connect to redis")
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		cond = condition.NewRedisCondition(redisClient, cfg.Condition.RedisKey)

	case config.ConditionBackendPostgres:
		db, err := initPGDB(ctx, a.logger, cfg)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		a.closer.Add("postgres", db.Close)
		cond = condition.NewPostgresCondition(db.Pool)

	case config.ConditionBackendMinio:
		minioClient, err := clients.NewMinIOClient(cfg.Minio)
		if err != nil {
			a.logger.Errorf(err, "failed to initialize minio client")
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		if err := clients.CheckBucket(ctx, minioClient, cfg.Minio.BucketName); err != nil {
			a.logger.Errorf(err, "failed to check MinIO bucket")
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		cond = condition.NewMinioCondition(minioClient, cfg.Minio.BucketName, cfg.Condition.Prefix)

	default:
		return nil, e.Wrap(cfg.Condition.Backend, e.ErrUnknownConditionBackend)
	}

	a.logger.Infof("external condition backend: %s", cfg.Condition.Backend)
	return condition.WithTimeout(cond, cfg.Condition.Timeout), nil
}

// Run запускает серверы и блокируется до сигнала остановки или фатальной ошибки.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if a.outbox != nil {
		a.outbox.Start(ctx)
		a.closer.Add("outbox worker", func(context.Context) error {
			a.outbox.Stop()
			return nil
		})
	}

	grpcErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			a.logger.Errorf(err, "gRPC server failed")
			grpcErrCh <- err
		}
	}()
	a.closer.Add("grpc server", a.grpcSrv.Stop)

	errCh := make(chan error, 1)
	go func() {
		if err := a.httpSrv.Run(); err != nil {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()
	a.closer.Add("http server", a.httpSrv.Stop)

	a.grpcSrv.MarkServing()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		a.logger.Errorf(appErr, "gRPC server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func (a *App) closeOnInitFailure() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.closer.Close(ctx); err != nil {
		a.logger.Warnf("cleanup after failed init: %v", err)
	}
}

func initPGDB(ctx context.Context, logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(ctx, cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		db.Close(ctx)
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
