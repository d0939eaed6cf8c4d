package events

import "time"

// Catalog sync lifecycle events. The sync pipeline is fire-and-forget from
// the caller's point of view, so these events are the only externally visible
// record of what happened.
const (
	CatalogSyncStartedType   = "CATALOG_SYNC_STARTED"
	CatalogSyncDegradedType  = "CATALOG_SYNC_DEGRADED"
	CatalogSyncCompletedType = "CATALOG_SYNC_COMPLETED"
	CatalogSyncFailedType    = "CATALOG_SYNC_FAILED"
)

func NewCatalogSyncStarted(shopDomain string) Event {
	return BaseEvent{
		Type: CatalogSyncStartedType,
		Data: map[string]interface{}{
			"shop_domain": shopDomain,
		},
		OccurredAt: time.Now().UTC(),
	}
}

// NewCatalogSyncDegraded signals a partial catalog fetch: the pipeline kept
// going with what it had.
func NewCatalogSyncDegraded(shopDomain string, fetched int, reason string) Event {
	return BaseEvent{
		Type: CatalogSyncDegradedType,
		Data: map[string]interface{}{
			"shop_domain": shopDomain,
			"fetched":     fetched,
			"reason":      reason,
		},
		OccurredAt: time.Now().UTC(),
	}
}

func NewCatalogSyncCompleted(shopDomain string, indexed, failedBatches int, duration time.Duration) Event {
	return BaseEvent{
		Type: CatalogSyncCompletedType,
		Data: map[string]interface{}{
			"shop_domain":    shopDomain,
			"indexed":        indexed,
			"failed_batches": failedBatches,
			"duration_ms":    duration.Milliseconds(),
		},
		OccurredAt: time.Now().UTC(),
	}
}

func NewCatalogSyncFailed(shopDomain, reason string) Event {
	return BaseEvent{
		Type: CatalogSyncFailedType,
		Data: map[string]interface{}{
			"shop_domain": shopDomain,
			"reason":      reason,
		},
		OccurredAt: time.Now().UTC(),
	}
}
