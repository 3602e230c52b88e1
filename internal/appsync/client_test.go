package appsync

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"
	"github.com/umalmyha/customers-viewer/internal/errors"
	"github.com/umalmyha/customers-viewer/internal/metrics"
	"github.com/umalmyha/customers-viewer/internal/model"
)

const testAPIKey = "da2-test-key"

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type queryClientTestSuite struct {
	suite.Suite
	server   *httptest.Server
	client   QueryClient
	mu       sync.Mutex
	requests []graphqlRequest
	apiKeys  []string
	respond  func(w http.ResponseWriter)
}

func (s *queryClientTestSuite) SetupTest() {
	s.requests = nil
	s.apiKeys = nil
	s.respond = func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":{"listZellerCustomers":{"items":[
			{"id":"1","name":"Alice","role":"ADMIN"},
			{"id":"2","name":"bob","role":"MANAGER"}
		]}}}`)
	}

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphqlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		s.requests = append(s.requests, req)
		s.apiKeys = append(s.apiKeys, r.Header.Get("x-api-key"))
		s.mu.Unlock()

		s.respond(w)
	}))

	logger, _ := test.NewNullLogger()
	s.client = NewQueryClient(Cfg{Endpoint: s.server.URL, APIKey: testAPIKey, Timeout: time.Second}, metrics.NewNopRecorder(), logger)
}

func (s *queryClientTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *queryClientTestSuite) TestListCustomersWithoutFilter() {
	customers, err := s.client.ListCustomers(context.Background(), model.NoRoleFilter())
	s.Require().NoError(err, "no error must be raised")

	s.Assert().Equal([]model.Customer{
		{ID: "1", Name: "Alice", Role: "ADMIN"},
		{ID: "2", Name: "bob", Role: "MANAGER"},
	}, customers)

	s.Require().Len(s.requests, 1)
	s.Assert().NotContains(s.requests[0].Variables, "filter", "filter must be omitted when no role selected")
	s.Assert().Contains(s.requests[0].Query, "listZellerCustomers(filter: $filter)")
	s.Assert().Equal(testAPIKey, s.apiKeys[0], "api key header must be sent")
}

func (s *queryClientTestSuite) TestListCustomersWithRoleFilter() {
	_, err := s.client.ListCustomers(context.Background(), model.RoleFilterOf(model.RoleAdmin))
	s.Require().NoError(err, "no error must be raised")

	s.Require().Len(s.requests, 1)
	s.Assert().Equal(map[string]any{
		"role": map[string]any{"eq": "ADMIN"},
	}, s.requests[0].Variables["filter"])
}

func (s *queryClientTestSuite) TestListCustomersEmptyItems() {
	s.respond = func(w http.ResponseWriter) {
		_, _ = io.WriteString(w, `{"data":{"listZellerCustomers":{"items":null}}}`)
	}

	customers, err := s.client.ListCustomers(context.Background(), model.NoRoleFilter())
	s.Require().NoError(err)
	s.Assert().NotNil(customers, "empty list must be returned instead of nil")
	s.Assert().Empty(customers)
}

func (s *queryClientTestSuite) TestListCustomersServerError() {
	s.respond = func(w http.ResponseWriter) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"errors":[{"errorType":"UnauthorizedException","message":"You are not authorized to make this call."}]}`)
	}

	_, err := s.client.ListCustomers(context.Background(), model.NoRoleFilter())
	s.Require().Error(err, "server error must be raised")
	s.Assert().True(errors.IsQueryErr(err), "error must be query error")
	s.Assert().Contains(err.Error(), "You are not authorized to make this call.")
}

func (s *queryClientTestSuite) TestListCustomersNetworkError() {
	s.server.Close()

	_, err := s.client.ListCustomers(context.Background(), model.NoRoleFilter())
	s.Require().Error(err, "network error must be raised")
	s.Assert().True(errors.IsQueryErr(err), "error must be query error")
}

func TestQueryClientSuite(t *testing.T) {
	logrus.SetLevel(logrus.PanicLevel)
	suite.Run(t, new(queryClientTestSuite))
}
