package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/catalogcraft/catalog-api/internal/cfg"
	v1Http "github.com/catalogcraft/catalog-api/internal/delivery/v1/http"
	"github.com/catalogcraft/catalog-api/internal/infrastructure/kafka"
	minioInfra "github.com/catalogcraft/catalog-api/internal/infrastructure/minio"
	s3Repo "github.com/catalogcraft/catalog-api/internal/repository/minio"
	"github.com/catalogcraft/catalog-api/internal/repository/pgdb"
	pgdbConv "github.com/catalogcraft/catalog-api/internal/repository/pgdb/converter/generated"
	"github.com/catalogcraft/catalog-api/internal/repository/redis"
	redisConv "github.com/catalogcraft/catalog-api/internal/repository/redis/converter/generated"
	"github.com/catalogcraft/catalog-api/internal/usecase"
	"github.com/catalogcraft/catalog-api/pkg/clients"
	"github.com/catalogcraft/catalog-api/pkg/closer"
	"github.com/catalogcraft/catalog-api/pkg/e"
	"github.com/catalogcraft/catalog-api/pkg/logger"
	"github.com/catalogcraft/catalog-api/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	bootstrapTimeout    = 10 * time.Second
	shutdownTimeout     = 10 * time.Second
	closerForcedTimeout = 2 * time.Second
)

// App — собранное приложение. Все зависимости подключены и проверены,
// освобождение ресурсов зарегистрировано в closer в порядке подключения.
type App struct {
	cfg    *config.Config
	logger logger.Logger

	httpSrv *v1Http.Server
	worker  *kafka.OutboxWorker
	closer  *closer.Closer
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	c := closer.NewCloser(closerForcedTimeout)

	db, err := initPGDB(log, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	c.Add(func(ctx context.Context) error {
		db.Close()
		log.Infof("postgres pool closed")
		return nil
	})

	prConv := pgdbConv.NewProductConverterImpl()
	catConv := pgdbConv.NewCategoryConverterImpl()
	outboxConv := pgdbConv.NewOutboxEventConverterImpl()
	infoConv := redisConv.NewProductInfoConverterImpl()

	productRepo := pgdb.NewProductRepo(db.Pool, prConv)
	categoryRepo := pgdb.NewCategoryRepo(db.Pool, catConv)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, outboxConv)

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), bootstrapTimeout)
	err = clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName)
	minioCancel()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = redisClient.Ping(redisCtx)
	redisCancel()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	c.Add(func(ctx context.Context) error {
		return redisClient.Close()
	})
	cacheRepo := redis.NewCacheRepo(redisClient, infoConv, cfg.Redis, log)

	// Контекст компенсационных чисток MinIO: живёт дольше запросов,
	// отменяется только после того, как WaitForCleanup дождался хвоста.
	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	imagesInfra := minioInfra.NewMinioInfrastructure(imageRepo, cfg.Minio, log, cleanupCtx)
	c.Add(func(ctx context.Context) error {
		defer cancelCleanup()
		if err := imagesInfra.WaitForCleanup(ctx); err != nil {
			return e.Wrap("MinIO cleanup did not finish, some temporary objects may remain", err)
		}
		log.Infof("MinIO cleanup completed")
		return nil
	})

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := producer.EnsureTopic(bootstrapTimeout); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	c.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	worker := kafka.NewOutboxWorker(outboxRepo, log, producer, cfg.Outbox, db.Dsn)

	commandUC := usecase.NewProductCommandUC(
		productRepo,
		categoryRepo,
		outboxRepo,
		cacheRepo,
		imagesInfra,
		db.Pool,
		log,
		cfg.App.Name,
	)
	queryUC := usecase.NewProductQueryUC(productRepo, cacheRepo, log)
	categoryUC := usecase.NewCategoryUC(categoryRepo, outboxRepo, db.Pool, log, cfg.App.Name)
	healthUC := usecase.NewHealthUC(log,
		usecase.HealthCheck{Name: "postgres", Check: db.Ping},
		usecase.HealthCheck{Name: "redis", Check: redisClient.Ping},
		usecase.HealthCheck{Name: "kafka", Check: producer.Ping},
	)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(v1Http.Usecases{
		ProductCommands: commandUC,
		ProductQueries:  queryUC,
		Categories:      categoryUC,
		Health:          healthUC,
	}, cfg.Minio.UploadImagesLimit)

	return &App{
		cfg:     cfg,
		logger:  log,
		httpSrv: v1Http.NewServer(r, cfg.Http),
		worker:  worker,
		closer:  c,
	}, nil
}

// Run запускает outbox-воркер и HTTP-сервер и блокируется до сигнала
// завершения или фатальной ошибки сервера.
func (a *App) Run() error {
	workerCtx, stopWorker := context.WithCancel(context.Background())
	a.worker.Start(workerCtx)
	a.closer.Add(func(ctx context.Context) error {
		stopWorker()
		a.worker.Stop()
		a.logger.Infof("outbox worker stopped")
		return nil
	})

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// Сначала перестаем принимать трафик, затем закрываем ресурсы
	// в порядке, обратном подключению.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.httpSrv.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("shutdown: %v", err)
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
