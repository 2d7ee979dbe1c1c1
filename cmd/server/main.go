package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/lib/pq"

	compliancehandler "hazcom/internal/compliance/handler"
	"hazcom/internal/inventory"
	"hazcom/internal/platform/config"
	"hazcom/internal/platform/httpserver"
	"hazcom/internal/platform/logger"
	"hazcom/internal/platform/metrics"
	platformredis "hazcom/internal/platform/redis"
	"hazcom/internal/ratelimit"
	"hazcom/internal/sds/cache"
	sdsclient "hazcom/internal/sds/client"
	sdshandler "hazcom/internal/sds/handler"
	sdsmetrics "hazcom/internal/sds/metrics"
	"hazcom/internal/sds/models"
	sdsservice "hazcom/internal/sds/service"
	httptransport "hazcom/internal/transport/http"
	"hazcom/internal/upload"
)

// writebackQueueSize bounds pending cache write-backs; overflow drops the
// record (it was best-effort to begin with).
const writebackQueueSize = 64

// main wires dependencies explicitly and keeps the server lifecycle small.
// Business logic lives in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	appMetrics := metrics.New()
	resolverMetrics := sdsmetrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Storage backends: PostgreSQL when configured, in-memory otherwise.
	var (
		db            *sql.DB
		documentCache cache.Store
		uploadIndex   upload.Index
		chemicalStore inventory.ChemicalStore
		employeeStore inventory.EmployeeStore
	)
	if cfg.Database.URL != "" {
		var err error
		db, err = sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			log.Error("failed to open database", "error", err.Error())
			os.Exit(1)
		}
		defer db.Close()

		documentCache = cache.NewPostgres(db, resolverMetrics)
		uploadIndex = upload.NewPostgresIndex(db)
		invStore := inventory.NewPostgres(db)
		chemicalStore, employeeStore = invStore, invStore
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		documentCache = cache.NewInMemoryStore()
		uploadIndex = upload.NewInMemoryIndex()
		memStore := inventory.NewInMemoryStore()
		chemicalStore, employeeStore = memStore, memStore
	}

	// Resolution pipeline: client, orchestrator, write-back worker.
	resolverClient, err := sdsclient.New(cfg.Resolver, log)
	if err != nil {
		log.Error("failed to build resolver client", "error", err.Error())
		os.Exit(1)
	}

	writebacks := make(chan models.Record, writebackQueueSize)
	resolution, err := sdsservice.New(documentCache, resolverClient, writebacks,
		sdsservice.WithLogger(log),
		sdsservice.WithMetrics(resolverMetrics),
		sdsservice.WithTimeout(cfg.Resolver.Timeout),
	)
	if err != nil {
		log.Error("failed to build resolution service", "error", err.Error())
		os.Exit(1)
	}

	worker := sdsservice.NewWritebackWorker(documentCache, writebacks, log, resolverMetrics)
	go func() {
		if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error("write-back worker stopped", "error", err.Error())
		}
	}()

	// Rate limiting: Redis-backed when configured, in-memory otherwise.
	var bucketStore ratelimit.BucketStore = ratelimit.NewInMemoryBucketStore()
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err.Error())
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		bucketStore = ratelimit.NewRedisBucketStore(redisClient.Client)
	}
	limiter := ratelimit.New(bucketStore, log, cfg.RateLimit.Limit, cfg.RateLimit.Window,
		ratelimit.WithDisabled(cfg.RateLimit.Disabled))

	// Upload storage: S3 when a bucket is configured, local disk otherwise.
	var uploadStorage upload.Storage
	if cfg.Upload.S3Bucket != "" {
		uploadStorage, err = upload.NewS3Storage(ctx, upload.S3Config{
			Bucket:   cfg.Upload.S3Bucket,
			Region:   cfg.Upload.S3Region,
			Endpoint: cfg.Upload.S3Endpoint,
		})
	} else {
		uploadStorage, err = upload.NewFSStorage(cfg.Upload.Dir)
	}
	if err != nil {
		log.Error("failed to build upload storage", "error", err.Error())
		os.Exit(1)
	}

	handler := httptransport.NewRouter(log, appMetrics,
		sdshandler.New(resolution, log, sdshandler.WithGuard(limiter.RateLimit)),
		compliancehandler.New(chemicalStore, employeeStore, log, appMetrics),
		upload.New(uploadStorage, uploadIndex, cfg.Upload.MaxBytes, log),
	)

	srv := httpserver.New(cfg.Server.Addr, handler)
	log.Info("starting hazcom server", "addr", cfg.Server.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
	}
}
