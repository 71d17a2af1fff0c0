package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/digiserve/digiserve/internal/api/dto"
	"github.com/digiserve/digiserve/internal/domain/account"
	"github.com/digiserve/digiserve/internal/domain/catalog"
	ierr "github.com/digiserve/digiserve/internal/errors"
	"github.com/digiserve/digiserve/internal/testutil"
	"github.com/digiserve/digiserve/internal/types"
)

type PaymentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  PaymentService
	testData struct {
		account *account.Account
		service *catalog.Service
	}
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceSuite))
}

func (s *PaymentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *PaymentServiceSuite) setupService() {
	s.service = NewPaymentService(ServiceParams{
		Logger:        s.GetLogger(),
		Config:        s.GetConfig(),
		PaymentRepo:   s.GetStores().PaymentRepo,
		AccountRepo:   s.GetStores().AccountRepo,
		CatalogRepo:   s.GetStores().CatalogRepo,
		BroadcastRepo: s.GetStores().BroadcastRepo,
		Notifier:      s.GetNotifier(),
		Cache:         s.GetCache(),
	})
}

func (s *PaymentServiceSuite) setupTestData() {
	now := s.GetNow()
	s.testData.account = &account.Account{
		ID:       "acct_test_payment",
		Email:    "customer@example.com",
		Name:     "Test Customer",
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
		ID:            "svc_test_payment",
		Name:          "Design Package",
		Price:         decimal.NewFromInt(1000),
		DurationLabel: "3 months",
		IsActive:      true,
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().CatalogRepo.Create(s.GetContext(), s.testData.service))
}

func (s *PaymentServiceSuite) createInstallmentPayment() *dto.PaymentResponse {
	resp, err := s.service.CreatePayment(s.GetContext(), dto.CreatePaymentRequest{
		AccountID:   s.testData.account.ID,
		ServiceID:   s.testData.service.ID,
		PaymentType: types.PaymentTypeInstallment,
	})
	s.NoError(err)
	return resp
}

func (s *PaymentServiceSuite) TestCreateFullPayment() {
	resp, err := s.service.CreatePayment(s.GetContext(), dto.CreatePaymentRequest{
		AccountID:   s.testData.account.ID,
		ServiceID:   s.testData.service.ID,
		PaymentType: types.PaymentTypeFull,
	})
	s.NoError(err)

	s.Equal(types.PaymentTypeFull, resp.PaymentType)
	s.Equal(types.PaymentStatusPending, resp.PaymentStatus)
	s.True(resp.Amount.Equal(decimal.NewFromInt(1000)))
	s.Len(resp.Tranches, 1)
	s.True(resp.Tranches[0].Amount.Equal(decimal.NewFromInt(1000)))
	s.NotEmpty(resp.PaymentNumber)
	s.NotEmpty(resp.IdempotencyKey)

	s.Len(s.GetNotifier().EventsNamed(types.NotificationEventPaymentCreated), 1)
}

func (s *PaymentServiceSuite) TestCreateInstallmentPayment() {
	resp := s.createInstallmentPayment()

	s.Equal(types.PaymentTypeInstallment, resp.PaymentType)
	s.Len(resp.Tranches, 2)
	s.True(resp.Tranches[0].Amount.Equal(decimal.NewFromInt(300)))
	s.True(resp.Tranches[1].Amount.Equal(decimal.NewFromInt(700)))
	s.Nil(resp.Tranches[0].DueDate)
	s.NotNil(resp.Tranches[1].DueDate)
}

func (s *PaymentServiceSuite) TestCreatePaymentWithInitialRef() {
	resp, err := s.service.CreatePayment(s.GetContext(), dto.CreatePaymentRequest{
		AccountID:             s.testData.account.ID,
		ServiceID:             s.testData.service.ID,
		PaymentType:           types.PaymentTypeInstallment,
		InitialTransactionRef: "txn-checkout",
	})
	s.NoError(err)

	s.Equal(types.TrancheStatusSubmitted, resp.Tranches[0].Status)
	s.Equal("txn-checkout", resp.Tranches[0].TransactionRef)
	s.Len(s.GetNotifier().EventsNamed(types.NotificationEventTrancheSubmitted), 1)
}

func (s *PaymentServiceSuite) TestCreatePaymentIdempotencyReplay() {
	first, err := s.service.CreatePayment(s.GetContext(), dto.CreatePaymentRequest{
		IdempotencyKey: "checkout-123",
		AccountID:      s.testData.account.ID,
		ServiceID:      s.testData.service.ID,
		PaymentType:    types.PaymentTypeFull,
	})
	s.NoError(err)

	second, err := s.service.CreatePayment(s.GetContext(), dto.CreatePaymentRequest{
		IdempotencyKey: "checkout-123",
		AccountID:      s.testData.account.ID,
		ServiceID:      s.testData.service.ID,
		PaymentType:    types.PaymentTypeFull,
	})
	s.NoError(err)

	s.Equal(first.ID, second.ID)

	count, err := s.GetStores().PaymentRepo.Count(s.GetContext(), types.NewNoLimitPaymentFilter())
	s.NoError(err)
	s.Equal(1, count)
}

func (s *PaymentServiceSuite) TestCreateInstallmentBlockedWithoutPolicy() {
	s.testData.account.InstallmentPolicy.Enabled = false
	s.NoError(s.GetStores().AccountRepo.Update(s.GetContext(), s.testData.account))

	_, err := s.service.CreatePayment(s.GetContext(), dto.CreatePaymentRequest{
		AccountID:   s.testData.account.ID,
		ServiceID:   s.testData.service.ID,
		PaymentType: types.PaymentTypeInstallment,
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *PaymentServiceSuite) TestCreateInstallmentBlockedForSuspiciousAccount() {
	s.testData.account.IsSuspicious = true
	s.NoError(s.GetStores().AccountRepo.Update(s.GetContext(), s.testData.account))

	_, err := s.service.CreatePayment(s.GetContext(), dto.CreatePaymentRequest{
		AccountID:   s.testData.account.ID,
		ServiceID:   s.testData.service.ID,
		PaymentType: types.PaymentTypeInstallment,
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *PaymentServiceSuite) TestCreatePaymentInactiveService() {
	s.testData.service.IsActive = false
	s.NoError(s.GetStores().CatalogRepo.Update(s.GetContext(), s.testData.service))

	_, err := s.service.CreatePayment(s.GetContext(), dto.CreatePaymentRequest{
		AccountID:   s.testData.account.ID,
		ServiceID:   s.testData.service.ID,
		PaymentType: types.PaymentTypeFull,
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *PaymentServiceSuite) TestTrancheLifecycleThroughService() {
	created := s.createInstallmentPayment()

	resp, err := s.service.SubmitTranche(s.GetContext(), created.ID, 1, dto.SubmitTrancheRequest{
		TransactionRef: "txn-001",
	})
	s.NoError(err)
	s.Equal(types.TrancheStatusSubmitted, resp.Tranches[0].Status)

	resp, err = s.service.AdjudicateTranche(s.GetContext(), created.ID, 1, dto.AdjudicateTrancheRequest{
		Decision: types.AdjudicationDecisionApproved,
	})
	s.NoError(err)
	s.Equal(types.PaymentStatusPartial, resp.PaymentStatus)
	s.True(resp.AmountPaid.Equal(decimal.NewFromInt(300)))
	s.True(resp.AmountDue.Equal(decimal.NewFromInt(700)))

	resp, err = s.service.MarkTranchePaid(s.GetContext(), created.ID, 1)
	s.NoError(err)
	s.Equal(types.TrancheStatusPaid, resp.Tranches[0].Status)
	s.True(resp.AmountPaid.Equal(decimal.NewFromInt(300)))

	// the stored copy reflects every transition
	stored, err := s.GetStores().PaymentRepo.Get(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.TrancheStatusPaid, stored.Tranches[0].Status)
	s.Equal(types.PaymentStatusPartial, stored.PaymentStatus)

	s.Len(s.GetNotifier().EventsNamed(types.NotificationEventTrancheApproved), 1)
	s.Len(s.GetNotifier().EventsNamed(types.NotificationEventTranchePaid), 1)
}

func (s *PaymentServiceSuite) TestRejectionAndResubmission() {
	created := s.createInstallmentPayment()

	_, err := s.service.SubmitTranche(s.GetContext(), created.ID, 1, dto.SubmitTrancheRequest{
		TransactionRef: "txn-001",
	})
	s.NoError(err)

	resp, err := s.service.AdjudicateTranche(s.GetContext(), created.ID, 1, dto.AdjudicateTrancheRequest{
		Decision: types.AdjudicationDecisionRejected,
		Notes:    "unreadable receipt",
	})
	s.NoError(err)
	s.Equal(types.PaymentStatusRejected, resp.PaymentStatus)

	resp, err = s.service.SubmitTranche(s.GetContext(), created.ID, 1, dto.SubmitTrancheRequest{
		TransactionRef: "txn-001-retry",
	})
	s.NoError(err)
	s.Equal(1, resp.Tranches[0].ResubmissionCount)
	s.Equal(types.PaymentStatusPending, resp.PaymentStatus)
	s.Len(s.GetNotifier().EventsNamed(types.NotificationEventTrancheRejected), 1)
}

func (s *PaymentServiceSuite) TestDuplicateSubmissionRejected() {
	created := s.createInstallmentPayment()

	_, err := s.service.SubmitTranche(s.GetContext(), created.ID, 1, dto.SubmitTrancheRequest{
		TransactionRef: "txn-001",
	})
	s.NoError(err)

	_, err = s.service.SubmitTranche(s.GetContext(), created.ID, 1, dto.SubmitTrancheRequest{
		TransactionRef: "txn-001",
	})
	s.Error(err)
	s.True(ierr.IsDuplicateSubmission(err))
}

func (s *PaymentServiceSuite) TestSetServiceWindowAndEntitlement() {
	created := s.createInstallmentPayment()

	_, err := s.service.SubmitTranche(s.GetContext(), created.ID, 1, dto.SubmitTrancheRequest{
		TransactionRef: "txn-001",
	})
	s.NoError(err)
	_, err = s.service.AdjudicateTranche(s.GetContext(), created.ID, 1, dto.AdjudicateTrancheRequest{
		Decision: types.AdjudicationDecisionApproved,
	})
	s.NoError(err)

	start := s.GetNow().AddDate(0, 0, -1)
	end := s.GetNow().AddDate(0, 1, 0)
	resp, err := s.service.SetServiceWindow(s.GetContext(), created.ID, dto.SetServiceWindowRequest{
		StartDate: start,
		EndDate:   end,
	})
	s.NoError(err)
	s.NotNil(resp.StartDate)
	s.NotNil(resp.EndDate)

	ent, err := s.service.GetEntitlementPhase(s.GetContext(), created.ID, s.GetNow())
	s.NoError(err)
	s.Equal(types.EntitlementPhaseActive, ent.Phase)

	s.Len(s.GetNotifier().EventsNamed(types.NotificationEventPaymentWindowSet), 1)
}

func (s *PaymentServiceSuite) TestSetServiceWindowInvalidRange() {
	created := s.createInstallmentPayment()

	_, err := s.service.SetServiceWindow(s.GetContext(), created.ID, dto.SetServiceWindowRequest{
		StartDate: s.GetNow(),
		EndDate:   s.GetNow().AddDate(0, 0, -1),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PaymentServiceSuite) TestSetServiceWindowFrozenAfterCompletion() {
	created := s.createInstallmentPayment()

	_, err := s.service.MarkServiceCompleted(s.GetContext(), created.ID)
	s.NoError(err)

	_, err = s.service.SetServiceWindow(s.GetContext(), created.ID, dto.SetServiceWindowRequest{
		StartDate: s.GetNow(),
		EndDate:   s.GetNow().AddDate(0, 1, 0),
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *PaymentServiceSuite) TestMarkServiceCompletedIsOneWay() {
	created := s.createInstallmentPayment()

	resp, err := s.service.MarkServiceCompleted(s.GetContext(), created.ID)
	s.NoError(err)
	s.True(resp.IsServiceCompleted)

	// repeated calls are no-ops and emit no further events
	resp, err = s.service.MarkServiceCompleted(s.GetContext(), created.ID)
	s.NoError(err)
	s.True(resp.IsServiceCompleted)
	s.Len(s.GetNotifier().EventsNamed(types.NotificationEventPaymentCompleted), 1)

	ent, err := s.service.GetEntitlementPhase(s.GetContext(), created.ID, s.GetNow())
	s.NoError(err)
	s.Equal(types.EntitlementPhaseCompleted, ent.Phase)
}

func (s *PaymentServiceSuite) TestListPayments() {
	s.createInstallmentPayment()
	time.Sleep(time.Millisecond)
	s.createInstallmentPayment()

	resp, err := s.service.ListPayments(s.GetContext(), &types.PaymentFilter{
		QueryFilter: types.NewNoLimitQueryFilter(),
		AccountID:   &s.testData.account.ID,
	})
	s.NoError(err)
	s.Len(resp.Items, 2)
	s.Equal(2, resp.Pagination.Total)
}

func (s *PaymentServiceSuite) TestGetPaymentNotFound() {
	_, err := s.service.GetPayment(s.GetContext(), "pay_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
