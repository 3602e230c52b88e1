package repository

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/umalmyha/customers-viewer/internal/appsync"
	"github.com/umalmyha/customers-viewer/internal/cache"
	"github.com/umalmyha/customers-viewer/internal/metrics"
	"github.com/umalmyha/customers-viewer/internal/model"
)

// CustomerRepository provides customers listing from the remote backend
type CustomerRepository interface {
	// FindAll returns listing honoring configured fetch policy
	FindAll(context.Context, model.RoleFilter) ([]model.Customer, error)
	// Fetch always asks backend, used for explicit refreshes
	Fetch(context.Context, model.RoleFilter) ([]model.Customer, error)
}

type appsyncCustomerRepository struct {
	client   appsync.QueryClient
	cache    cache.CustomerListCache
	policy   cache.FetchPolicy
	recorder *metrics.Recorder
	logger   logrus.FieldLogger
}

// NewAppsyncCustomerRepository builds repository on top of query client and listing cache
func NewAppsyncCustomerRepository(
	client appsync.QueryClient,
	listCache cache.CustomerListCache,
	policy cache.FetchPolicy,
	recorder *metrics.Recorder,
	logger logrus.FieldLogger,
) CustomerRepository {
	return &appsyncCustomerRepository{
		client:   client,
		cache:    listCache,
		policy:   policy,
		recorder: recorder,
		logger:   logger.WithField("component", "customer-repository"),
	}
}

func (r *appsyncCustomerRepository) FindAll(ctx context.Context, f model.RoleFilter) ([]model.Customer, error) {
	if r.policy == cache.CacheFirst {
		customers, ok, err := r.cache.Find(ctx, f)
		if err != nil {
			r.logger.WithError(err).WithField("filter", f.Key()).Warn("failed to read cached customers, asking backend")
			if evictErr := r.cache.Evict(ctx, f); evictErr != nil {
				r.logger.WithError(evictErr).WithField("filter", f.Key()).Warn("failed to evict cached customers")
			}
		}

		if ok {
			r.recorder.CacheHit()
			return customers, nil
		}
		r.recorder.CacheMiss()
	}
	return r.Fetch(ctx, f)
}

func (r *appsyncCustomerRepository) Fetch(ctx context.Context, f model.RoleFilter) ([]model.Customer, error) {
	customers, err := r.client.ListCustomers(ctx, f)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Cache(ctx, f, customers); err != nil {
		r.logger.WithError(err).WithField("filter", f.Key()).Warn("failed to cache customers")
	}
	return customers, nil
}
