package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CategorySet is the persisted category document for one shop: the distinct
// productType values of the last full sync plus when it was written.
// Recomputed and overwritten wholesale on every sync (last writer wins).
type CategorySet struct {
	Categories []string  `json:"categories"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CategoryStore keeps one CategorySet document per shop in redis.
type CategoryStore struct {
	rdb *redis.Client
}

func NewCategoryStore(rdb *redis.Client) *CategoryStore {
	return &CategoryStore{rdb: rdb}
}

func categoryKey(shopDomain string) string {
	return fmt.Sprintf("shop:categories:%s", shopDomain)
}

// Save overwrites the shop's category document.
func (s *CategoryStore) Save(ctx context.Context, shopDomain string, categories []string) error {
	if s.rdb == nil {
		return errors.New("category store not configured")
	}

	doc := CategorySet{
		Categories: categories,
		UpdatedAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	if err := s.rdb.Set(ctx, categoryKey(shopDomain), payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to persist categories for %s: %w", shopDomain, err)
	}
	return nil
}

// Get returns the shop's category document, or an empty set when nothing has
// been synced yet.
func (s *CategoryStore) Get(ctx context.Context, shopDomain string) (*CategorySet, error) {
	if s.rdb == nil {
		return &CategorySet{Categories: []string{}}, nil
	}

	payload, err := s.rdb.Get(ctx, categoryKey(shopDomain)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &CategorySet{Categories: []string{}}, nil
		}
		return nil, err
	}

	var doc CategorySet
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
