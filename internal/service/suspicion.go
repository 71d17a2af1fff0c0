package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/digiserve/digiserve/internal/api/dto"
	"github.com/digiserve/digiserve/internal/domain/payment"
	"github.com/digiserve/digiserve/internal/types"
)

// SuspicionService flags accounts with overdue installment tranches
type SuspicionService interface {
	// Scan walks unsettled installment payments and flags the owning
	// account of every payment whose next unresolved tranche is past due.
	Scan(ctx context.Context, now time.Time) (*dto.SuspicionScanResponse, error)

	// FlagAccount idempotently marks one account suspicious and disables
	// its installment policy.
	FlagAccount(ctx context.Context, accountID string) (bool, error)
}

type suspicionService struct {
	ServiceParams
}

// NewSuspicionService creates a new suspicion service
func NewSuspicionService(params ServiceParams) SuspicionService {
	return &suspicionService{ServiceParams: params}
}

// Scan runs one suspicion monitor pass. The scan reads payment state
// without locking it: a decision made against slightly stale data is
// acceptable because flagging is idempotent and the monitor never clears
// flags.
func (s *suspicionService) Scan(ctx context.Context, now time.Time) (*dto.SuspicionScanResponse, error) {
	batchSize := s.Config.Suspicion.ScanBatchSize

	payments, err := s.PaymentRepo.ListUnsettledInstallments(ctx, batchSize)
	if err != nil {
		return nil, err
	}

	overdue := make(map[string]struct{})
	for _, p := range payments {
		if isOverdue(p, now) {
			overdue[p.AccountID] = struct{}{}
		}
	}

	var (
		mu      sync.Mutex
		flagged []string
	)

	wp := pool.New().WithErrors().WithContext(ctx)
	for accountID := range overdue {
		accountID := accountID
		wp.Go(func(ctx context.Context) error {
			changed, err := s.FlagAccount(ctx, accountID)
			if err != nil {
				return err
			}
			// already-suspicious accounts stay out of the response
			if changed {
				mu.Lock()
				flagged = append(flagged, accountID)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := wp.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(flagged)

	s.Logger.Infow("suspicion scan complete",
		"scanned_payments", len(payments),
		"flagged_accounts", len(flagged),
	)

	return &dto.SuspicionScanResponse{
		ScannedPayments:   len(payments),
		FlaggedAccountIDs: flagged,
		RanAt:             now,
	}, nil
}

// FlagAccount marks the account suspicious and disables its installment
// policy. Returns false without touching the account when it is already
// flagged; the monitor never auto-clears.
func (s *suspicionService) FlagAccount(ctx context.Context, accountID string) (bool, error) {
	a, err := s.AccountRepo.Get(ctx, accountID)
	if err != nil {
		return false, err
	}

	if a.IsSuspicious {
		return false, nil
	}

	a.IsSuspicious = true
	a.InstallmentPolicy.Enabled = false
	a.UpdatedBy = types.DefaultActorID

	if err := s.AccountRepo.Update(ctx, a); err != nil {
		return false, err
	}

	s.Logger.Warnw("account flagged as suspicious",
		"account_id", a.ID,
	)

	s.notify(ctx, types.NotificationEventAccountFlagged, a.ID, dto.NewAccountResponse(a))

	return true, nil
}

// isOverdue reports whether the payment's next unresolved tranche is past
// due. The first tranche has no due date and can never be overdue.
func isOverdue(p *payment.Payment, now time.Time) bool {
	t := p.NextUnresolvedTranche()
	if t == nil || t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(now)
}
