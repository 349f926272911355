package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/synaptica-ai/heartrisk/pkg/common/config"
	"github.com/synaptica-ai/heartrisk/pkg/common/database"
	"github.com/synaptica-ai/heartrisk/pkg/common/kafka"
	"github.com/synaptica-ai/heartrisk/pkg/common/logger"
	"github.com/synaptica-ai/heartrisk/pkg/common/models"
	"github.com/synaptica-ai/heartrisk/pkg/gateway/httpclient"
	"github.com/synaptica-ai/heartrisk/pkg/serving"
)

// The auditor copies assessment events from Kafka into Postgres.
func main() {
	logger.Init("assessment-auditor")
	cfg := config.Load()

	db, err := database.GetPostgres(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to connect to database")
	}
	defer database.ClosePostgres()

	repo := serving.NewRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		logger.Log.WithError(err).Fatal("Failed to migrate assessment tables")
	}

	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.AssessmentTopic, cfg.KafkaGroupID)
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Log.WithFields(map[string]interface{}{
		"topic":    cfg.AssessmentTopic,
		"group_id": cfg.KafkaGroupID,
	}).Info("Assessment Auditor started")

	err = consumer.Consume(ctx, func(ctx context.Context, event models.Event) error {
		if event.Type != serving.EventAssessmentCompleted {
			return nil
		}
		assessment, err := serving.AssessmentFromEvent(event)
		if err != nil {
			// Malformed payloads will never succeed; skip them.
			logger.Log.WithError(err).WithField("event_id", event.ID).Warn("dropping malformed assessment event")
			return nil
		}
		return httpclient.Retry(ctx, httpclient.DefaultBackoff, func(ctx context.Context) error {
			return repo.RecordAssessment(ctx, assessment)
		})
	})
	if err != nil && ctx.Err() == nil {
		logger.Log.WithError(err).Error("Consumer stopped")
	}

	logger.Log.Info("Assessment Auditor stopped")
}
