package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/umalmyha/customers-viewer/internal/model"
	"github.com/vmihailenco/msgpack/v5"
)

// DefaultTimeToLive is how long listing results are kept when no ttl is configured
const DefaultTimeToLive = 10 * time.Minute

// CustomerListCache keeps results of customers listing per role filter
type CustomerListCache interface {
	Find(context.Context, model.RoleFilter) ([]model.Customer, bool, error)
	Cache(context.Context, model.RoleFilter, []model.Customer) error
	Evict(context.Context, model.RoleFilter) error
}

type redisCustomerListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCustomerListCache builds cache storing msgpack-encoded listing in redis
func NewRedisCustomerListCache(client *redis.Client, ttl time.Duration) CustomerListCache {
	if ttl <= 0 {
		ttl = DefaultTimeToLive
	}
	return &redisCustomerListCache{client: client, ttl: ttl}
}

func (r *redisCustomerListCache) Find(ctx context.Context, f model.RoleFilter) ([]model.Customer, bool, error) {
	res, err := r.client.Get(ctx, r.key(f)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var customers []model.Customer
	if err := msgpack.Unmarshal(res, &customers); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached customers - %w", err)
	}

	if customers == nil {
		customers = make([]model.Customer, 0)
	}
	return customers, true, nil
}

func (r *redisCustomerListCache) Cache(ctx context.Context, f model.RoleFilter, customers []model.Customer) error {
	encoded, err := msgpack.Marshal(customers)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.key(f), encoded, r.ttl).Err(); err != nil {
		return err
	}
	return nil
}

func (r *redisCustomerListCache) Evict(ctx context.Context, f model.RoleFilter) error {
	if err := r.client.Del(ctx, r.key(f)).Err(); err != nil {
		return err
	}
	return nil
}

func (r *redisCustomerListCache) key(f model.RoleFilter) string {
	return fmt.Sprintf("customers:%s", f.Key())
}
