package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"shop-agent-be/internal/dto"
)

type recordingPublisher struct {
	payloads [][]byte
	err      error
}

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.payloads = append(p.payloads, payload)
	return nil
}

func TestTriggerSyncPublishesJob(t *testing.T) {
	publisher := &recordingPublisher{}
	svc := NewSyncService(publisher)

	res, err := svc.TriggerSync(context.Background(), &dto.TriggerSyncRequest{
		ShopUrl:     "other-shop.myshopify.com",
		AccessToken: "tok",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Status != "queued" {
		t.Errorf("status = %q, want queued", res.Status)
	}
	if len(publisher.payloads) != 1 {
		t.Fatalf("expected one published message, got %d", len(publisher.payloads))
	}

	var msg dto.SyncCatalogMessage
	if err := json.Unmarshal(publisher.payloads[0], &msg); err != nil {
		t.Fatalf("payload not valid JSON: %v", err)
	}
	if msg.JobId.String() != res.JobId {
		t.Errorf("job id mismatch: published %s, returned %s", msg.JobId, res.JobId)
	}
	if msg.ShopUrl != "other-shop.myshopify.com" {
		t.Errorf("shop override not forwarded: %q", msg.ShopUrl)
	}
}

func TestTriggerSyncDefaultShop(t *testing.T) {
	publisher := &recordingPublisher{}
	svc := NewSyncService(publisher)

	if _, err := svc.TriggerSync(context.Background(), &dto.TriggerSyncRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var msg dto.SyncCatalogMessage
	if err := json.Unmarshal(publisher.payloads[0], &msg); err != nil {
		t.Fatalf("payload not valid JSON: %v", err)
	}
	if msg.ShopUrl != "" || msg.AccessToken != "" {
		t.Errorf("empty request must publish no override, got %+v", msg)
	}
}

func TestTriggerSyncPublishFailure(t *testing.T) {
	svc := NewSyncService(&recordingPublisher{err: errors.New("bus closed")})

	if _, err := svc.TriggerSync(context.Background(), &dto.TriggerSyncRequest{}); err == nil {
		t.Fatal("expected error when the bus rejects the message")
	}
}
