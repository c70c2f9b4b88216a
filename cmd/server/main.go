package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"blog-dashboard/internal/archive"
	"blog-dashboard/internal/config"
	apphttp "blog-dashboard/internal/http"
	"blog-dashboard/internal/repository"
	"blog-dashboard/internal/repository/mongodb"
	"blog-dashboard/internal/repository/sqlite"
	"blog-dashboard/internal/service"
	"blog-dashboard/internal/storage"
)

type stores struct {
	users      repository.UserRepository
	categories repository.CategoryRepository
	blogs      repository.BlogRepository
	close      func(context.Context) error
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	configureLogger(logger, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.close(closeCtx); err != nil {
			logger.Warnf("close database: %v", err)
		}
	}()

	if err := st.users.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := st.categories.Init(ctx); err != nil {
		logger.Fatalf("init category repository: %v", err)
	}
	if err := st.blogs.Init(ctx); err != nil {
		logger.Fatalf("init blog repository: %v", err)
	}

	storageSvc, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}

	var archiver service.Archiver
	var archiveManager archive.Manager
	if storageSvc != nil {
		archiveManager = archive.NewManager(archive.Config{
			Bucket:        cfg.Storage.Bucket,
			KeyPrefix:     cfg.Storage.KeyPrefix,
			MaxConcurrent: 3,
			UploadTimeout: 30 * time.Second,
			Logger:        logger,
		}, storageSvc)
		if err := archiveManager.Start(ctx); err != nil {
			logger.Fatalf("start archive manager: %v", err)
		}
		archiver = archiveManager
	}

	userService := service.NewUserService(st.users, archiver)
	categoryService := service.NewCategoryService(st.users, st.categories, archiver)
	blogService := service.NewBlogService(st.users, st.categories, st.blogs, archiver)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	handler := apphttp.NewHandler(userService, categoryService, blogService, storageSvc, logger, apphttp.Options{
		AuthEnabled:   cfg.Auth.Enabled,
		JWTSecret:     cfg.Auth.JWTSecret,
		RateLimit:     cfg.RateLimit.RPS,
		RateBurst:     cfg.RateLimit.Burst,
		AllowOrigins:  cfg.CORS.AllowOrigins,
		Bucket:        cfg.Storage.Bucket,
		ArchivePrefix: cfg.Storage.KeyPrefix,
	})
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("listening on %s (driver %s)", cfg.Server.Addr, cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Errorf("%v", err)
	}
	if archiveManager != nil {
		archiveManager.Shutdown()
	}

	logger.Info("bye")
}

func configureLogger(logger *logrus.Logger, cfg config.Config) {
	if strings.EqualFold(cfg.Log.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warnf("unknown log level %q, using info", cfg.Log.Level)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}

func openStores(ctx context.Context, cfg config.Config) (*stores, error) {
	switch cfg.Database.Driver {
	case config.DriverMongo:
		client, db, err := mongodb.Open(ctx, cfg.Database.URI, cfg.Database.Name)
		if err != nil {
			return nil, err
		}
		return &stores{
			users:      mongodb.NewUserRepository(db),
			categories: mongodb.NewCategoryRepository(db),
			blogs:      mongodb.NewBlogRepository(db),
			close:      client.Disconnect,
		}, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		return &stores{
			users:      sqlite.NewUserRepository(db),
			categories: sqlite.NewCategoryRepository(db),
			blogs:      sqlite.NewBlogRepository(db),
			close:      func(context.Context) error { return db.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

// buildStorage returns nil when no archive bucket is configured.
func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	if cfg.Storage.Bucket == "" {
		logger.Info("storage bucket not set, deleted records are not archived")
		return nil, nil
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("archiving deleted records to s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return storage.NewS3Service(client), nil
}
