package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/synaptica-ai/heartrisk/pkg/clinical"
	"github.com/synaptica-ai/heartrisk/pkg/common/config"
	"github.com/synaptica-ai/heartrisk/pkg/common/database"
	"github.com/synaptica-ai/heartrisk/pkg/common/kafka"
	"github.com/synaptica-ai/heartrisk/pkg/common/logger"
	"github.com/synaptica-ai/heartrisk/pkg/features"
	"github.com/synaptica-ai/heartrisk/pkg/gateway/auth"
	"github.com/synaptica-ai/heartrisk/pkg/gateway/httpclient"
	"github.com/synaptica-ai/heartrisk/pkg/gateway/middleware"
	"github.com/synaptica-ai/heartrisk/pkg/serving"
	"github.com/synaptica-ai/heartrisk/pkg/serving/artifacts"
	"github.com/synaptica-ai/heartrisk/pkg/storage"
	"github.com/synaptica-ai/heartrisk/pkg/web"
)

func main() {
	logger.Init("assessment-service")
	cfg := config.Load()

	// Artifacts are loaded before anything is served; any problem is fatal.
	bundle, err := artifacts.Load(cfg.ArtifactDir)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load model artifacts")
	}
	if gaps := features.CheckDomain(bundle.Schema, clinical.CategoricalDomains()); len(gaps) > 0 {
		entry := logger.Log.WithField("gaps", gaps)
		if cfg.StrictSchema {
			entry.Fatal("Schema cannot represent every selectable category")
		}
		entry.Warn("Schema cannot represent every selectable category; affected selections will be dropped")
	}

	opts := serving.Options{Source: "assessment-service"}
	var history web.History

	if cfg.PostgresEnabled {
		db, err := database.GetPostgres(cfg)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to connect to database")
		}
		repo := serving.NewRepository(db)
		if err := repo.AutoMigrate(); err != nil {
			logger.Log.WithError(err).Fatal("Failed to migrate assessment tables")
		}
		opts.Recorder = repo
		history = repo
		defer database.ClosePostgres()
	}

	opts.Cache = storage.NewMemoryCache(cfg.ResultCacheTTL)
	if cfg.RedisEnabled {
		client, err := database.GetRedis(cfg)
		if err != nil {
			logger.Log.WithError(err).Warn("Redis unavailable, using in-process result cache")
		} else {
			opts.Cache = storage.NewResultCache(client, "", cfg.ResultCacheTTL)
		}
		defer database.CloseRedis()
	}

	if cfg.KafkaEnabled {
		producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.AssessmentTopic)
		opts.Publisher = producer
		defer producer.Close()
	}

	assessor, err := serving.NewAssessor(bundle, opts)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to create assessor")
	}
	handler, err := web.NewHandler(assessor, history)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to create handler")
	}

	router := mux.NewRouter()
	router.Use(middleware.Logging)
	router.Use(middleware.Recovery)
	router.Use(middleware.CORS)
	router.Use(middleware.BodyLimit(cfg.MaxRequestBody))
	router.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustProxyHeaders))

	var apiMiddleware []mux.MiddlewareFunc
	oidcAuth, err := auth.NewOIDCAuthenticator(cfg.OIDCIssuer, cfg.OIDCClientID, cfg.OIDCClientSecret)
	if err != nil {
		logger.Log.WithError(err).Warn("OIDC authentication not configured, running without auth")
	} else {
		oidcAuth.WithHTTPClient(httpclient.New(5 * time.Second))
		apiMiddleware = append(apiMiddleware, middleware.Authenticate(oidcAuth))
	}

	handler.Register(router, apiMiddleware...)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Log.WithFields(map[string]interface{}{
			"host":       cfg.ServerHost,
			"port":       cfg.ServerPort,
			"model_type": bundle.ModelType,
			"columns":    bundle.Schema.Len(),
		}).Info("Assessment Service started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down Assessment Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Error("Server forced to shutdown")
	}

	logger.Log.Info("Assessment Service stopped")
}
