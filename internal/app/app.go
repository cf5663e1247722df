// Package app assembles the development backend from configuration.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"parseai/internal/analyzer"
	"parseai/internal/config"
	"parseai/internal/handler"
	"parseai/internal/port"
	memrepo "parseai/internal/repository/memory"
	"parseai/internal/repository/postgres"
	"parseai/internal/router"
	"parseai/internal/service"
	memstorage "parseai/internal/storage/memory"
	s3storage "parseai/internal/storage/s3"
)

// App is a wired development backend.
type App struct {
	Engine  *gin.Engine
	Worker  *service.JobWorker
	Storage port.ObjectStorage

	db *sqlx.DB
}

// New builds the backend selected by cfg: S3 or in-memory object storage,
// PostgreSQL or in-memory repositories, and the placeholder analyzer.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	configureLogging(cfg)

	a := &App{}

	var docRepo port.DocumentRepository
	var jobRepo port.JobRepository
	switch cfg.Store.Driver {
	case "postgres":
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.db = db
		docRepo = postgres.NewDocumentRepo(db)
		jobRepo = postgres.NewJobRepo(db)
	default:
		docRepo = memrepo.NewDocumentRepo()
		jobRepo = memrepo.NewJobRepo()
	}

	if cfg.S3.Bucket != "" {
		s3Client, err := s3storage.NewS3Client(ctx, &cfg.S3)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		a.Storage = s3Client
	} else {
		store := memstorage.NewStore()
		SeedSamples(store, cfg.S3.SampleBucket(), cfg.S3.CustomerPrefix)
		a.Storage = store
		log.Printf("app.New: no bucket configured, using in-memory object storage")
	}

	placeholder := analyzer.NewPlaceholder()

	docSvc := service.NewDocumentService(docRepo, a.Storage, &cfg.S3)
	analysisSvc := service.NewAnalysisService(docRepo, jobRepo)
	sampleSvc := service.NewSampleService(a.Storage, docSvc, cfg.S3.SampleBucket())
	customerSvc := service.NewCustomerService(service.DefaultCustomers(), a.Storage, docSvc, cfg.S3.SampleBucket(), cfg.S3.CustomerPrefix)

	a.Worker = service.NewJobWorker(jobRepo, docSvc, placeholder, service.JobWorkerConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		Concurrency:  cfg.Queue.Concurrency,
	})

	a.Engine = router.Setup(router.Handlers{
		Document: handler.NewDocumentHandler(docSvc, cfg.S3.MaxFileSizeMB*1024*1024),
		Analysis: handler.NewAnalysisHandler(analysisSvc),
		Sample:   handler.NewSampleHandler(sampleSvc),
		Customer: handler.NewCustomerHandler(customerSvc),
		Health:   handler.NewHealthHandler(analysisSvc, len(placeholder.JobTypes()) > 0),
	}, cfg.CORS.AllowedOrigins)

	return a, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func configureLogging(cfg *config.Config) {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Log.Level == "debug" {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	}
}
