package reconcile

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"

	"github.com/danielmoisemontezima/zw-paystack-service/internal/model"
)

// RedisOrderStore backs the external order tree. Paths follow
// owners/{ownerId}/orders/{correlationKey}/status, one value per path.
type RedisOrderStore struct {
	client *redis.Client
}

func NewRedisOrderStore(client *redis.Client) *RedisOrderStore {
	return &RedisOrderStore{client: client}
}

func statusPath(ownerID, correlationKey string) string {
	return fmt.Sprintf("owners/%s/orders/%s/status", ownerID, correlationKey)
}

func (s *RedisOrderStore) ListOwners(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var owners []string

	iter := s.client.Scan(ctx, 0, "owners/*/orders/*/status", 0).Iterator()
	for iter.Next(ctx) {
		parts := strings.Split(iter.Val(), "/")
		if len(parts) != 5 {
			continue
		}
		if owner := parts[1]; !seen[owner] {
			seen[owner] = true
			owners = append(owners, owner)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("error scanning owners: %w", err)
	}

	return owners, nil
}

func (s *RedisOrderStore) ListOrderKeys(ctx context.Context, ownerID string) ([]string, error) {
	var keys []string

	pattern := fmt.Sprintf("owners/%s/orders/*/status", ownerID)
	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		parts := strings.Split(iter.Val(), "/")
		if len(parts) != 5 {
			continue
		}
		keys = append(keys, parts[3])
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("error scanning orders for owner %s: %w", ownerID, err)
	}

	return keys, nil
}

func (s *RedisOrderStore) WriteStatus(ctx context.Context, ownerID, correlationKey string, status model.OrderStatus) error {
	if err := s.client.Set(ctx, statusPath(ownerID, correlationKey), string(status), 0).Err(); err != nil {
		return fmt.Errorf("error writing order status: %w", err)
	}
	return nil
}
