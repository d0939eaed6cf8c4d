package service

import (
	"context"
	"encoding/json"
	"log"

	"shop-agent-be/internal/dto"

	"github.com/google/uuid"
)

type ISyncService interface {
	// TriggerSync enqueues a catalog sync and returns the job id. The sync
	// itself runs in the background consumer.
	TriggerSync(ctx context.Context, req *dto.TriggerSyncRequest) (*dto.TriggerSyncResponse, error)
}

type syncService struct {
	publisherService IPublisherService
}

func NewSyncService(publisherService IPublisherService) ISyncService {
	return &syncService{publisherService: publisherService}
}

func (s *syncService) TriggerSync(ctx context.Context, req *dto.TriggerSyncRequest) (*dto.TriggerSyncResponse, error) {
	payload := dto.SyncCatalogMessage{JobId: uuid.New()}
	if req != nil {
		payload.ShopUrl = req.ShopUrl
		payload.AccessToken = req.AccessToken
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	if err := s.publisherService.Publish(ctx, payloadJson); err != nil {
		return nil, err
	}

	log.Printf("[INFO] Catalog sync %s enqueued", payload.JobId)
	return &dto.TriggerSyncResponse{
		JobId:  payload.JobId.String(),
		Status: "queued",
	}, nil
}
