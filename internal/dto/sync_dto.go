package dto

import (
	"time"

	"github.com/google/uuid"
)

// TriggerSyncRequest optionally overrides the configured shop. Both fields
// empty means "sync the default shop".
type TriggerSyncRequest struct {
	ShopUrl     string `json:"shop_url" validate:"omitempty,min=4"`
	AccessToken string `json:"access_token"`
}

// SyncCatalogMessage is the payload published to the sync topic.
type SyncCatalogMessage struct {
	JobId       uuid.UUID `json:"job_id"`
	ShopUrl     string    `json:"shop_url,omitempty"`
	AccessToken string    `json:"access_token,omitempty"`
}

type TriggerSyncResponse struct {
	JobId  string `json:"job_id"`
	Status string `json:"status"`
}

type CategoriesResponse struct {
	Categories []string   `json:"categories"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}
