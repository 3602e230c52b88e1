// Package appsync queries customers from the managed GraphQL backend
package appsync

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/machinebox/graphql"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/customers-viewer/internal/errors"
	"github.com/umalmyha/customers-viewer/internal/metrics"
	"github.com/umalmyha/customers-viewer/internal/model"
)

// ListCustomersOperation is name of the single operation issued against the backend
const ListCustomersOperation = "ListZellerCustomers"

const apiKeyHeader = "x-api-key"

const listCustomersQuery = `query ListZellerCustomers($filter: TableZellerCustomerFilterInput) {
  listZellerCustomers(filter: $filter) {
    items {
      id
      name
      role
    }
  }
}`

type listCustomersResponse struct {
	ListZellerCustomers struct {
		Items []model.Customer `json:"items"`
	} `json:"listZellerCustomers"`
}

// QueryClient fetches customers, optionally restricted by role on server side
type QueryClient interface {
	ListCustomers(context.Context, model.RoleFilter) ([]model.Customer, error)
}

// Cfg is configuration of backend connection
type Cfg struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

type graphqlQueryClient struct {
	client   *graphql.Client
	apiKey   string
	recorder *metrics.Recorder
	logger   logrus.FieldLogger
}

// NewQueryClient builds client for AppSync endpoint, a single instance is expected to be shared by the whole app
func NewQueryClient(cfg Cfg, recorder *metrics.Recorder, logger logrus.FieldLogger) QueryClient {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	client := graphql.NewClient(cfg.Endpoint, graphql.WithHTTPClient(httpClient))

	log := logger.WithField("component", "appsync")
	client.Log = func(s string) {
		log.Trace(s)
	}

	return &graphqlQueryClient{
		client:   client,
		apiKey:   cfg.APIKey,
		recorder: recorder,
		logger:   log,
	}
}

func (c *graphqlQueryClient) ListCustomers(ctx context.Context, f model.RoleFilter) ([]model.Customer, error) {
	req := graphql.NewRequest(listCustomersQuery)
	if vars := f.Variables(); vars != nil {
		req.Var("filter", vars)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)

	var res listCustomersResponse
	start := time.Now()
	err := c.client.Run(ctx, req, &res)
	c.recorder.ObserveQuery(ListCustomersOperation, time.Since(start), err)

	if err != nil {
		c.logger.WithError(err).WithField("filter", f.Key()).Error("query failed")
		return nil, errors.NewQueryErr(ListCustomersOperation, err)
	}

	items := res.ListZellerCustomers.Items
	if items == nil {
		items = make([]model.Customer, 0)
	}

	c.logger.WithFields(logrus.Fields{"filter": f.Key(), "count": len(items)}).Debug("data fetched")
	return items, nil
}

// String is used in logs, api key is never printed
func (cfg Cfg) String() string {
	return fmt.Sprintf("endpoint=%s timeout=%s", cfg.Endpoint, cfg.Timeout)
}
