package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/digiserve/digiserve/internal/cache"
	"github.com/digiserve/digiserve/internal/config"
	"github.com/digiserve/digiserve/internal/domain/account"
	"github.com/digiserve/digiserve/internal/domain/broadcast"
	"github.com/digiserve/digiserve/internal/domain/catalog"
	"github.com/digiserve/digiserve/internal/domain/payment"
	"github.com/digiserve/digiserve/internal/logger"
	"github.com/digiserve/digiserve/internal/repository/memory"
	"github.com/digiserve/digiserve/internal/validator"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	PaymentRepo   payment.Repository
	AccountRepo   account.Repository
	CatalogRepo   catalog.Repository
	BroadcastRepo broadcast.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	stores   Stores
	notifier *InMemoryNotifier
	cache    cache.Cache
	logger   *logger.Logger
	config   *config.Configuration
	now      time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	s.config = config.GetDefaultConfig()

	var err error
	s.logger, err = logger.NewLogger(s.config)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}

	s.cache = cache.Initialize(s.logger)
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.stores = Stores{
		PaymentRepo:   memory.NewInMemoryPaymentStore(),
		AccountRepo:   memory.NewInMemoryAccountStore(),
		CatalogRepo:   memory.NewInMemoryCatalogStore(),
		BroadcastRepo: memory.NewInMemoryBroadcastStore(),
	}
	s.notifier = NewInMemoryNotifier()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.cache.Flush(s.ctx)
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetStores returns the test stores
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetNotifier returns the recording notification publisher
func (s *BaseServiceTestSuite) GetNotifier() *InMemoryNotifier {
	return s.notifier
}

// GetCache returns the shared cache
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetNow returns the time captured at test setup
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
