package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/digiserve/digiserve/internal/api/dto"
	"github.com/digiserve/digiserve/internal/domain/account"
	"github.com/digiserve/digiserve/internal/domain/catalog"
	"github.com/digiserve/digiserve/internal/testutil"
	"github.com/digiserve/digiserve/internal/types"
)

type SuspicionServiceSuite struct {
	testutil.BaseServiceTestSuite
	service        SuspicionService
	paymentService PaymentService
	testData       struct {
		account *account.Account
		service *catalog.Service
	}
}

func TestSuspicionService(t *testing.T) {
	suite.Run(t, new(SuspicionServiceSuite))
}

func (s *SuspicionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *SuspicionServiceSuite) setupService() {
	params := ServiceParams{
		Logger:        s.GetLogger(),
		Config:        s.GetConfig(),
		PaymentRepo:   s.GetStores().PaymentRepo,
		AccountRepo:   s.GetStores().AccountRepo,
		CatalogRepo:   s.GetStores().CatalogRepo,
		BroadcastRepo: s.GetStores().BroadcastRepo,
		Notifier:      s.GetNotifier(),
		Cache:         s.GetCache(),
	}
	s.service = NewSuspicionService(params)
	s.paymentService = NewPaymentService(params)
}

func (s *SuspicionServiceSuite) setupTestData() {
	now := s.GetNow()
	s.testData.account = &account.Account{
		ID:       "acct_test_suspicion",
		Email:    "late@example.com",
		Name:     "Late Payer",
		Role:     types.RoleCustomer,
		IsActive: true,
		InstallmentPolicy: account.InstallmentPolicy{
			Enabled: true,
			Splits: []types.InstallmentSplit{
				{Percentage: decimal.NewFromInt(30), DueOffsetDays: 0},
				{Percentage: decimal.NewFromInt(70), DueOffsetDays: 15},
			},
			UpdatedAt: &now,
		},
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().AccountRepo.Create(s.GetContext(), s.testData.account))

	s.testData.service = &catalog.Service{
		ID:            "svc_test_suspicion",
		Name:          "Consulting Retainer",
		Price:         decimal.NewFromInt(1000),
		DurationLabel: "1 month",
		IsActive:      true,
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().CatalogRepo.Create(s.GetContext(), s.testData.service))
}

// createOverduePayment builds an installment payment whose first tranche is
// approved and whose second tranche came due fifteen days ago.
func (s *SuspicionServiceSuite) createOverduePayment() *dto.PaymentResponse {
	created, err := s.paymentService.CreatePayment(s.GetContext(), dto.CreatePaymentRequest{
		AccountID:   s.testData.account.ID,
		ServiceID:   s.testData.service.ID,
		PaymentType: types.PaymentTypeInstallment,
	})
	s.NoError(err)

	_, err = s.paymentService.SubmitTranche(s.GetContext(), created.ID, 1, dto.SubmitTrancheRequest{
		TransactionRef: "txn-001",
	})
	s.NoError(err)
	resp, err := s.paymentService.AdjudicateTranche(s.GetContext(), created.ID, 1, dto.AdjudicateTrancheRequest{
		Decision: types.AdjudicationDecisionApproved,
	})
	s.NoError(err)
	return resp
}

func (s *SuspicionServiceSuite) TestScanFlagsOverdueAccount() {
	s.createOverduePayment()
	s.GetNotifier().Clear()

	// thirty days out, well past the second tranche's +15d due date
	future := s.GetNow().AddDate(0, 0, 30)
	resp, err := s.service.Scan(s.GetContext(), future)
	s.NoError(err)

	s.Equal(1, resp.ScannedPayments)
	s.Equal([]string{s.testData.account.ID}, resp.FlaggedAccountIDs)

	flagged, err := s.GetStores().AccountRepo.Get(s.GetContext(), s.testData.account.ID)
	s.NoError(err)
	s.True(flagged.IsSuspicious)
	s.False(flagged.InstallmentPolicy.Enabled)

	s.Len(s.GetNotifier().EventsNamed(types.NotificationEventAccountFlagged), 1)
}

func (s *SuspicionServiceSuite) TestScanIsIdempotent() {
	s.createOverduePayment()
	s.GetNotifier().Clear()

	future := s.GetNow().AddDate(0, 0, 30)
	_, err := s.service.Scan(s.GetContext(), future)
	s.NoError(err)

	// a second pass sees the same overdue tranche but must not re-flag,
	// and the already-suspicious account must not be reported again
	second, err := s.service.Scan(s.GetContext(), future)
	s.NoError(err)
	s.Empty(second.FlaggedAccountIDs)

	flagged, err := s.GetStores().AccountRepo.Get(s.GetContext(), s.testData.account.ID)
	s.NoError(err)
	s.True(flagged.IsSuspicious)
	s.Len(s.GetNotifier().EventsNamed(types.NotificationEventAccountFlagged), 1)
}

func (s *SuspicionServiceSuite) TestScanIgnoresPaymentsNotYetDue() {
	s.createOverduePayment()

	// evaluated at creation time the second tranche is not due yet
	resp, err := s.service.Scan(s.GetContext(), s.GetNow())
	s.NoError(err)

	s.Equal(1, resp.ScannedPayments)
	s.Empty(resp.FlaggedAccountIDs)

	a, err := s.GetStores().AccountRepo.Get(s.GetContext(), s.testData.account.ID)
	s.NoError(err)
	s.False(a.IsSuspicious)
}

func (s *SuspicionServiceSuite) TestScanIgnoresFirstTranche() {
	// an untouched installment payment waits on tranche one, which has no
	// due date and can never be overdue
	_, err := s.paymentService.CreatePayment(s.GetContext(), dto.CreatePaymentRequest{
		AccountID:   s.testData.account.ID,
		ServiceID:   s.testData.service.ID,
		PaymentType: types.PaymentTypeInstallment,
	})
	s.NoError(err)

	future := s.GetNow().AddDate(0, 0, 365)
	resp, err := s.service.Scan(s.GetContext(), future)
	s.NoError(err)
	s.Empty(resp.FlaggedAccountIDs)
}

func (s *SuspicionServiceSuite) TestScanSkipsSettledPayments() {
	created := s.createOverduePayment()

	_, err := s.paymentService.SubmitTranche(s.GetContext(), created.ID, 2, dto.SubmitTrancheRequest{
		TransactionRef: "txn-002",
	})
	s.NoError(err)
	_, err = s.paymentService.AdjudicateTranche(s.GetContext(), created.ID, 2, dto.AdjudicateTrancheRequest{
		Decision: types.AdjudicationDecisionApproved,
	})
	s.NoError(err)

	future := s.GetNow().AddDate(0, 0, 30)
	resp, err := s.service.Scan(s.GetContext(), future)
	s.NoError(err)
	s.Equal(0, resp.ScannedPayments)
	s.Empty(resp.FlaggedAccountIDs)
}

func (s *SuspicionServiceSuite) TestFlagAccountIdempotent() {
	flagged, err := s.service.FlagAccount(s.GetContext(), s.testData.account.ID)
	s.NoError(err)
	s.True(flagged)

	flagged, err = s.service.FlagAccount(s.GetContext(), s.testData.account.ID)
	s.NoError(err)
	s.False(flagged)
}
