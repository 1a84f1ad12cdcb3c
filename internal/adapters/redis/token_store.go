package redis

// Package redis provides Redis-based adapters for the linked-roles system.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/blitzforge/linked-roles/internal/domain/linkage"
	"github.com/blitzforge/linked-roles/internal/ports"
)

// ErrNotFound is returned when a token record is not found.
var ErrNotFound = ports.ErrTokenNotFound

// TokenStore is a Redis-backed token ledger. Records carry their own absolute
// expiry for the access token; the Redis key itself has no TTL because the
// refresh token outlives access expiry and is needed to mint replacements.
type TokenStore struct {
	client redis.UniversalClient
	prefix string
}

// NewTokenStore creates a new Redis-based token store.
func NewTokenStore(client redis.UniversalClient) *TokenStore {
	return &TokenStore{
		client: client,
		prefix: "tokens:",
	}
}

// NewTokenStoreWithPrefix creates a Redis token store with a custom key prefix.
func NewTokenStoreWithPrefix(client redis.UniversalClient, prefix string) *TokenStore {
	return &TokenStore{
		client: client,
		prefix: prefix,
	}
}

// Save replaces the token record for its user wholesale.
func (s *TokenStore) Save(ctx context.Context, rec linkage.TokenRecord) error {
	if rec.UserID == "" {
		return errors.New("token record user ID cannot be empty")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal token record: %w", err)
	}

	return s.client.Set(ctx, s.prefix+rec.UserID, data, 0).Err()
}

// Get retrieves the token record for userID, or ErrNotFound when the user
// never linked or already unlinked.
func (s *TokenStore) Get(ctx context.Context, userID string) (linkage.TokenRecord, error) {
	if userID == "" {
		return linkage.TokenRecord{}, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+userID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return linkage.TokenRecord{}, ErrNotFound
		}
		return linkage.TokenRecord{}, fmt.Errorf("redis get: %w", err)
	}

	var rec linkage.TokenRecord
	if unmarshalErr := json.Unmarshal([]byte(data), &rec); unmarshalErr != nil {
		return linkage.TokenRecord{}, fmt.Errorf("unmarshal token record: %w", unmarshalErr)
	}
	return rec, nil
}

// Delete removes the token record for userID.
func (s *TokenStore) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return nil // Nothing to delete
	}
	return s.client.Del(ctx, s.prefix+userID).Err()
}
