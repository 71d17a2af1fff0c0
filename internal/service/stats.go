package service

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/digiserve/digiserve/internal/api/dto"
	"github.com/digiserve/digiserve/internal/types"
)

// StatsService produces the admin dashboard summary
type StatsService interface {
	GetAdminStats(ctx context.Context) (*dto.AdminStatsResponse, error)
}

type statsService struct {
	ServiceParams
}

// NewStatsService creates a new stats service
func NewStatsService(params ServiceParams) StatsService {
	return &statsService{ServiceParams: params}
}

// GetAdminStats aggregates account, catalog and payment counts plus
// revenue totals for the admin dashboard
func (s *statsService) GetAdminStats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	now := time.Now().UTC()
	resp := &dto.AdminStatsResponse{
		TotalRevenue:     decimal.Zero,
		OutstandingTotal: decimal.Zero,
		GeneratedAt:      now,
	}

	totalAccounts, err := s.AccountRepo.Count(ctx, &types.AccountFilter{
		QueryFilter: types.NewNoLimitQueryFilter(),
	})
	if err != nil {
		return nil, err
	}
	resp.TotalAccounts = totalAccounts

	suspicious, err := s.AccountRepo.Count(ctx, &types.AccountFilter{
		QueryFilter:  types.NewNoLimitQueryFilter(),
		IsSuspicious: lo.ToPtr(true),
	})
	if err != nil {
		return nil, err
	}
	resp.SuspiciousAccounts = suspicious

	activeServices, err := s.CatalogRepo.Count(ctx, &types.ServiceFilter{
		QueryFilter: types.NewNoLimitQueryFilter(),
		IsActive:    lo.ToPtr(true),
	})
	if err != nil {
		return nil, err
	}
	resp.ActiveServices = activeServices

	payments, err := s.PaymentRepo.List(ctx, types.NewNoLimitPaymentFilter())
	if err != nil {
		return nil, err
	}

	resp.TotalPayments = len(payments)
	for _, p := range payments {
		switch p.PaymentStatus {
		case types.PaymentStatusPending:
			resp.PendingPayments++
		case types.PaymentStatusPartial:
			resp.PartialPayments++
		case types.PaymentStatusApproved:
			resp.ApprovedPayments++
		case types.PaymentStatusRejected:
			resp.RejectedPayments++
		}

		resp.TotalRevenue = resp.TotalRevenue.Add(p.AmountPaid)
		resp.OutstandingTotal = resp.OutstandingTotal.Add(p.AmountDue)

		for _, t := range p.Tranches {
			if t.Status == types.TrancheStatusSubmitted {
				resp.AwaitingAdjudication++
			}
		}

		if p.PaymentType == types.PaymentTypeInstallment && isOverdue(p, now) {
			resp.OverduePayments++
		}
	}

	return resp, nil
}
