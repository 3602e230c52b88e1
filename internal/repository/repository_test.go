package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	clientMocks "github.com/umalmyha/customers-viewer/internal/appsync/mocks"
	"github.com/umalmyha/customers-viewer/internal/cache"
	cacheMocks "github.com/umalmyha/customers-viewer/internal/cache/mocks"
	"github.com/umalmyha/customers-viewer/internal/metrics"
	"github.com/umalmyha/customers-viewer/internal/model"
)

type repositoryTestData struct {
	ctx       context.Context
	filter    model.RoleFilter
	customers []model.Customer
}

type customerRepositoryTestSuite struct {
	suite.Suite
	clientMock *clientMocks.QueryClient
	cacheMock  *cacheMocks.CustomerListCache
	testData   *repositoryTestData
}

func (s *customerRepositoryTestSuite) SetupSuite() {
	s.testData = &repositoryTestData{
		ctx:    context.Background(),
		filter: model.RoleFilterOf(model.RoleManager),
		customers: []model.Customer{
			{ID: "2", Name: "bob", Role: "MANAGER"},
		},
	}
}

func (s *customerRepositoryTestSuite) SetupTest() {
	t := s.T()
	s.clientMock = clientMocks.NewQueryClient(t)
	s.cacheMock = cacheMocks.NewCustomerListCache(t)
}

func (s *customerRepositoryTestSuite) repository(policy cache.FetchPolicy) CustomerRepository {
	logger, _ := test.NewNullLogger()
	return NewAppsyncCustomerRepository(s.clientMock, s.cacheMock, policy, metrics.NewNopRecorder(), logger)
}

func (s *customerRepositoryTestSuite) TestFindAllNetworkOnly() {
	ctx, f, customers := s.testData.ctx, s.testData.filter, s.testData.customers

	s.clientMock.On("ListCustomers", ctx, f).Return(customers, nil).Once()
	s.cacheMock.On("Cache", ctx, f, customers).Return(nil).Once()

	s.T().Log("network-only always asks backend and caches result")
	{
		res, err := s.repository(cache.NetworkOnly).FindAll(ctx, f)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(customers, res)
		s.cacheMock.AssertNotCalled(s.T(), "Find", ctx, f)
	}
}

func (s *customerRepositoryTestSuite) TestFindAllCacheFirstHit() {
	ctx, f, customers := s.testData.ctx, s.testData.filter, s.testData.customers

	s.cacheMock.On("Find", ctx, f).Return(customers, true, nil).Once()

	s.T().Log("cache-first serves cached listing without network")
	{
		res, err := s.repository(cache.CacheFirst).FindAll(ctx, f)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(customers, res)
		s.clientMock.AssertNotCalled(s.T(), "ListCustomers", ctx, f)
	}
}

func (s *customerRepositoryTestSuite) TestFindAllCacheFirstMiss() {
	ctx, f, customers := s.testData.ctx, s.testData.filter, s.testData.customers

	s.cacheMock.On("Find", ctx, f).Return(nil, false, nil).Once()
	s.clientMock.On("ListCustomers", ctx, f).Return(customers, nil).Once()
	s.cacheMock.On("Cache", ctx, f, customers).Return(nil).Once()

	s.T().Log("cache-first asks backend on miss")
	{
		res, err := s.repository(cache.CacheFirst).FindAll(ctx, f)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(customers, res)
	}
}

func (s *customerRepositoryTestSuite) TestFindAllCacheFailureIsNotFatal() {
	ctx, f, customers := s.testData.ctx, s.testData.filter, s.testData.customers

	s.cacheMock.On("Find", ctx, f).Return(nil, false, errors.New("cache err")).Once()
	s.cacheMock.On("Evict", ctx, f).Return(errors.New("cache err")).Once()
	s.clientMock.On("ListCustomers", ctx, f).Return(customers, nil).Once()
	s.cacheMock.On("Cache", ctx, f, customers).Return(errors.New("cache err")).Once()

	s.T().Log("cache errors are logged and backend result is returned")
	{
		res, err := s.repository(cache.CacheFirst).FindAll(ctx, f)
		s.Assert().NoError(err, "cache failure must not be raised")
		s.Assert().Equal(customers, res)
	}
}

func (s *customerRepositoryTestSuite) TestFetchFailed() {
	ctx, f := s.testData.ctx, s.testData.filter

	s.clientMock.On("ListCustomers", ctx, f).Return(nil, errors.New("network err")).Once()

	s.T().Log("backend error is raised and nothing is cached")
	{
		_, err := s.repository(cache.CacheFirst).Fetch(ctx, f)
		s.Assert().Error(err, "backend error must be raised")
		s.cacheMock.AssertNotCalled(s.T(), "Cache", ctx, f, mock.Anything)
	}
}

func TestCustomerRepositorySuite(t *testing.T) {
	suite.Run(t, new(customerRepositoryTestSuite))
}
