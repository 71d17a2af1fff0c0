package service

import (
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/digiserve/digiserve/internal/api/dto"
	ierr "github.com/digiserve/digiserve/internal/errors"
	"github.com/digiserve/digiserve/internal/testutil"
	"github.com/digiserve/digiserve/internal/types"
)

type AccountServiceSuite struct {
	testutil.BaseServiceTestSuite
	service AccountService
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceSuite))
}

func (s *AccountServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewAccountService(ServiceParams{
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

func (s *AccountServiceSuite) createAccount(email string) *dto.AccountResponse {
	resp, err := s.service.CreateAccount(s.GetContext(), dto.CreateAccountRequest{
		Email: email,
		Name:  "Test Account",
	})
	s.NoError(err)
	return resp
}

func (s *AccountServiceSuite) TestCreateAccountDefaultsToCustomer() {
	resp := s.createAccount("new@example.com")

	s.Equal(types.RoleCustomer, resp.Role)
	s.True(resp.IsActive)
	s.False(resp.IsSuspicious)
	s.False(resp.InstallmentPolicy.Enabled)
}

func (s *AccountServiceSuite) TestCreateAccountDuplicateEmail() {
	s.createAccount("dup@example.com")

	_, err := s.service.CreateAccount(s.GetContext(), dto.CreateAccountRequest{
		Email: "dup@example.com",
		Name:  "Second Account",
	})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *AccountServiceSuite) TestCreateAccountInvalidRole() {
	_, err := s.service.CreateAccount(s.GetContext(), dto.CreateAccountRequest{
		Email: "role@example.com",
		Name:  "Bad Role",
		Role:  types.Role("SUPERUSER"),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *AccountServiceSuite) TestUpdateAccount() {
	created := s.createAccount("update@example.com")

	resp, err := s.service.UpdateAccount(s.GetContext(), created.ID, dto.UpdateAccountRequest{
		Name:     lo.ToPtr("Renamed"),
		IsActive: lo.ToPtr(false),
	})
	s.NoError(err)
	s.Equal("Renamed", resp.Name)
	s.False(resp.IsActive)
}

func (s *AccountServiceSuite) TestSetInstallmentPolicy() {
	created := s.createAccount("policy@example.com")

	resp, err := s.service.SetInstallmentPolicy(s.GetContext(), created.ID, dto.SetInstallmentPolicyRequest{
		Enabled: true,
		Splits: []dto.InstallmentSplitRequest{
			{Percentage: decimal.NewFromInt(30), DueOffsetDays: 0},
			{Percentage: decimal.NewFromInt(70), DueOffsetDays: 15},
		},
	})
	s.NoError(err)
	s.True(resp.InstallmentPolicy.Enabled)
	s.Len(resp.InstallmentPolicy.Splits, 2)
	s.NotNil(resp.InstallmentPolicy.UpdatedAt)
}

func (s *AccountServiceSuite) TestSetInstallmentPolicyValidation() {
	created := s.createAccount("policy-bad@example.com")

	testCases := []struct {
		name string
		req  dto.SetInstallmentPolicyRequest
	}{
		{
			name: "single_split",
			req: dto.SetInstallmentPolicyRequest{
				Enabled: true,
				Splits: []dto.InstallmentSplitRequest{
					{Percentage: decimal.NewFromInt(100)},
				},
			},
		},
		{
			name: "enabled_without_splits",
			req:  dto.SetInstallmentPolicyRequest{Enabled: true},
		},
		{
			name: "percentages_do_not_sum_to_hundred",
			req: dto.SetInstallmentPolicyRequest{
				Enabled: true,
				Splits: []dto.InstallmentSplitRequest{
					{Percentage: decimal.NewFromInt(30)},
					{Percentage: decimal.NewFromInt(60), DueOffsetDays: 15},
				},
			},
		},
		{
			name: "negative_offset",
			req: dto.SetInstallmentPolicyRequest{
				Enabled: true,
				Splits: []dto.InstallmentSplitRequest{
					{Percentage: decimal.NewFromInt(50)},
					{Percentage: decimal.NewFromInt(50), DueOffsetDays: -1},
				},
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.SetInstallmentPolicy(s.GetContext(), created.ID, tc.req)
			s.Error(err)
			s.True(ierr.IsValidation(err))
		})
	}
}

func (s *AccountServiceSuite) TestSetSuspicionDisablesPolicy() {
	created := s.createAccount("flag@example.com")

	_, err := s.service.SetInstallmentPolicy(s.GetContext(), created.ID, dto.SetInstallmentPolicyRequest{
		Enabled: true,
		Splits: []dto.InstallmentSplitRequest{
			{Percentage: decimal.NewFromInt(50), DueOffsetDays: 0},
			{Percentage: decimal.NewFromInt(50), DueOffsetDays: 30},
		},
	})
	s.NoError(err)

	resp, err := s.service.SetSuspicion(s.GetContext(), created.ID, dto.SetSuspicionRequest{
		Suspicious: true,
		Reason:     "chargeback pattern",
	})
	s.NoError(err)
	s.True(resp.IsSuspicious)
	s.False(resp.InstallmentPolicy.Enabled)
	s.Len(s.GetNotifier().EventsNamed(types.NotificationEventAccountFlagged), 1)
}

func (s *AccountServiceSuite) TestClearSuspicionKeepsPolicyDisabled() {
	created := s.createAccount("unflag@example.com")

	_, err := s.service.SetInstallmentPolicy(s.GetContext(), created.ID, dto.SetInstallmentPolicyRequest{
		Enabled: true,
		Splits: []dto.InstallmentSplitRequest{
			{Percentage: decimal.NewFromInt(50), DueOffsetDays: 0},
			{Percentage: decimal.NewFromInt(50), DueOffsetDays: 30},
		},
	})
	s.NoError(err)

	_, err = s.service.SetSuspicion(s.GetContext(), created.ID, dto.SetSuspicionRequest{Suspicious: true})
	s.NoError(err)

	resp, err := s.service.SetSuspicion(s.GetContext(), created.ID, dto.SetSuspicionRequest{Suspicious: false})
	s.NoError(err)
	s.False(resp.IsSuspicious)
	// clearing the flag never restores installment access on its own
	s.False(resp.InstallmentPolicy.Enabled)
	s.Len(s.GetNotifier().EventsNamed(types.NotificationEventAccountUnflagged), 1)
}

func (s *AccountServiceSuite) TestSetSuspicionNoOpWhenUnchanged() {
	created := s.createAccount("noop@example.com")

	resp, err := s.service.SetSuspicion(s.GetContext(), created.ID, dto.SetSuspicionRequest{Suspicious: false})
	s.NoError(err)
	s.False(resp.IsSuspicious)
	s.Empty(s.GetNotifier().Events())
}

func (s *AccountServiceSuite) TestListAccounts() {
	s.createAccount("one@example.com")
	s.createAccount("two@example.com")

	resp, err := s.service.ListAccounts(s.GetContext(), &types.AccountFilter{
		QueryFilter: types.NewNoLimitQueryFilter(),
	})
	s.NoError(err)
	s.Len(resp.Items, 2)
	s.Equal(2, resp.Pagination.Total)
}
