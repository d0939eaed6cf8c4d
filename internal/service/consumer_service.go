package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"shop-agent-be/internal/dto"
	"shop-agent-be/internal/pkg/logger"
	"shop-agent-be/pkg/events"
	pktNats "shop-agent-be/pkg/nats"
	"shop-agent-be/pkg/shopify"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	shopifyClient  *shopify.Client
	apiVersion     string
	indexerService IIndexerService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	shopifyClient *shopify.Client,
	apiVersion string,
	indexerService IIndexerService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		shopifyClient:  shopifyClient,
		apiVersion:     apiVersion,
		indexerService: indexerService,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage runs one full catalog sync. Every terminal outcome Acks:
// retrying would re-bill the embedding API, so failures surface through logs
// and events instead of redelivery.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.SyncCatalogMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal sync message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	// A message may target another shop than the configured one.
	client := cs.shopifyClient
	if payload.ShopUrl != "" {
		client = shopify.NewClient(payload.ShopUrl, payload.AccessToken, cs.apiVersion)
	}

	shopDomain := client.ShopDomain()
	jobId := payload.JobId.String()
	cs.logger.Info("CatalogSync", "Sync started", map[string]interface{}{"job_id": jobId, "shop": shopDomain})
	started := time.Now()
	cs.publishEvent(ctx, events.NewCatalogSyncStarted(shopDomain))

	products, err := client.FetchAllProducts(ctx)
	if err != nil {
		if len(products) == 0 {
			cs.logger.Error("CatalogSync", "Sync failed, no products fetched", map[string]interface{}{"job_id": jobId, "error": err.Error()})
			cs.publishEvent(ctx, events.NewCatalogSyncFailed(shopDomain, err.Error()))
			msg.Ack()
			return
		}
		// Partial catalog. Index what we have and mark the run degraded.
		cs.logger.Warn("CatalogSync", "Sync degraded, continuing with partial catalog", map[string]interface{}{
			"job_id": jobId, "fetched": len(products), "error": err.Error(),
		})
		cs.publishEvent(ctx, events.NewCatalogSyncDegraded(shopDomain, len(products), err.Error()))
	}

	report, err := cs.indexerService.Ingest(ctx, shopDomain, products)
	if err != nil {
		cs.logger.Error("CatalogSync", "Sync failed during indexing", map[string]interface{}{"job_id": jobId, "error": err.Error()})
		cs.publishEvent(ctx, events.NewCatalogSyncFailed(shopDomain, err.Error()))
		msg.Ack()
		return
	}

	cs.logger.Info("CatalogSync", "Sync completed", map[string]interface{}{
		"job_id":         jobId,
		"indexed":        report.Indexed,
		"failed_batches": report.FailedBatches,
		"duration_ms":    time.Since(started).Milliseconds(),
	})
	cs.publishEvent(ctx, events.NewCatalogSyncCompleted(shopDomain, report.Indexed, report.FailedBatches, time.Since(started)))
	msg.Ack()
}

func (cs *consumerService) publishEvent(ctx context.Context, event events.Event) {
	if cs.eventPublisher == nil {
		return
	}
	if err := cs.eventPublisher.Publish(ctx, event); err != nil {
		cs.logger.Warn("CatalogSync", "Failed to publish event", map[string]interface{}{"type": event.EventType(), "error": err.Error()})
	}
}
