package service

import (
	"context"
	"time"

	"github.com/digiserve/digiserve/internal/api/dto"
	"github.com/digiserve/digiserve/internal/domain/payment"
	ierr "github.com/digiserve/digiserve/internal/errors"
	"github.com/digiserve/digiserve/internal/idempotency"
	"github.com/digiserve/digiserve/internal/types"
)

// PaymentService defines the interface for payment operations
type PaymentService interface {
	CreatePayment(ctx context.Context, req dto.CreatePaymentRequest) (*dto.PaymentResponse, error)
	GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error)
	ListPayments(ctx context.Context, filter *types.PaymentFilter) (*dto.ListPaymentsResponse, error)

	SubmitTranche(ctx context.Context, paymentID string, number int, req dto.SubmitTrancheRequest) (*dto.PaymentResponse, error)
	AdjudicateTranche(ctx context.Context, paymentID string, number int, req dto.AdjudicateTrancheRequest) (*dto.PaymentResponse, error)
	MarkTranchePaid(ctx context.Context, paymentID string, number int) (*dto.PaymentResponse, error)

	SetServiceWindow(ctx context.Context, paymentID string, req dto.SetServiceWindowRequest) (*dto.PaymentResponse, error)
	MarkServiceCompleted(ctx context.Context, paymentID string) (*dto.PaymentResponse, error)
	GetEntitlementPhase(ctx context.Context, paymentID string, now time.Time) (*dto.EntitlementResponse, error)
}

type paymentService struct {
	ServiceParams
	idempGen *idempotency.Generator
}

// NewPaymentService creates a new payment service
func NewPaymentService(params ServiceParams) PaymentService {
	return &paymentService{
		ServiceParams: params,
		idempGen:      idempotency.NewGenerator(),
	}
}

// CreatePayment creates a new payment for a catalog service purchase. For
// installment purchases the account's installment policy supplies the
// tranche schedule; a disabled, unconfigured or suspicious account may not
// start a plan. An idempotency key replay returns the existing payment.
func (s *paymentService) CreatePayment(ctx context.Context, req dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.IdempotencyKey != "" {
		if existing, err := s.PaymentRepo.GetByIdempotencyKey(ctx, req.IdempotencyKey); err == nil {
			return dto.NewPaymentResponse(existing), nil
		}
	}

	acct, err := s.AccountRepo.Get(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if !acct.IsActive {
		return nil, ierr.NewError("account is not active").
			WithHint("Inactive accounts cannot make purchases").
			Mark(ierr.ErrInvalidOperation)
	}

	svc, err := s.CatalogRepo.Get(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive {
		return nil, ierr.NewError("service is not active").
			WithHintf("Service %s is not currently purchasable", svc.ID).
			Mark(ierr.ErrInvalidOperation)
	}

	var splits []types.InstallmentSplit
	if req.PaymentType == types.PaymentTypeInstallment {
		if !acct.CanStartInstallmentPlan() {
			return nil, ierr.NewError("installment plan not available").
				WithHint("The account is not allowed to start a new installment plan").
				WithReportableDetails(map[string]any{
					"account_id": acct.ID,
				}).
				Mark(ierr.ErrPermissionDenied)
		}
		splits = acct.InstallmentPolicy.Splits
	}

	now := time.Now().UTC()
	tranches, err := payment.BuildTranches(svc.Price, splits, now)
	if err != nil {
		return nil, err
	}

	idempotencyKey := req.IdempotencyKey
	if idempotencyKey == "" {
		idempotencyKey = s.idempGen.GenerateKey(idempotency.ScopePayment, map[string]interface{}{
			"account_id": req.AccountID,
			"service_id": req.ServiceID,
			"timestamp":  now.Format(time.RFC3339Nano),
		})
	}

	p := &payment.Payment{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
		PaymentNumber:  types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_PAYMENT),
		IdempotencyKey: idempotencyKey,
		AccountID:      acct.ID,
		ServiceID:      svc.ID,
		PaymentType:    req.PaymentType,
		Amount:         svc.Price,
		Tranches:       tranches,
		Version:        1,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
	p.Recompute()

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.PaymentRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Infow("created payment",
		"payment_id", p.ID,
		"payment_number", p.PaymentNumber,
		"account_id", p.AccountID,
		"service_id", p.ServiceID,
		"payment_type", p.PaymentType,
		"amount", p.Amount,
	)

	s.notify(ctx, types.NotificationEventPaymentCreated, p.AccountID, dto.NewPaymentResponse(p))

	// pay-at-checkout: the first tranche's evidence arrives with the
	// purchase itself
	if req.InitialTransactionRef != "" {
		return s.SubmitTranche(ctx, p.ID, 1, dto.SubmitTrancheRequest{
			TransactionRef: req.InitialTransactionRef,
		})
	}

	return dto.NewPaymentResponse(p), nil
}

// GetPayment gets a payment by ID
func (s *paymentService) GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	p, err := s.PaymentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewPaymentResponse(p), nil
}

// ListPayments lists payments matching the filter
func (s *paymentService) ListPayments(ctx context.Context, filter *types.PaymentFilter) (*dto.ListPaymentsResponse, error) {
	if filter == nil {
		filter = &types.PaymentFilter{QueryFilter: types.NewDefaultQueryFilter()}
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	payments, err := s.PaymentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.PaymentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PaymentResponse, len(payments))
	for i, p := range payments {
		items[i] = dto.NewPaymentResponse(p)
	}

	return &dto.ListPaymentsResponse{
		Items:      items,
		Pagination: types.NewPaginationResponse(count, filter.GetLimit(), filter.GetOffset()),
	}, nil
}

// SubmitTranche records customer evidence of payment for one tranche
func (s *paymentService) SubmitTranche(ctx context.Context, paymentID string, number int, req dto.SubmitTrancheRequest) (*dto.PaymentResponse, error) {
	p, err := s.PaymentRepo.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	t, err := p.SubmitTranche(number, req.TransactionRef, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.PaymentRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Infow("tranche submitted",
		"payment_id", p.ID,
		"installment_number", t.InstallmentNumber,
		"transaction_ref", t.TransactionRef,
		"resubmission_count", t.ResubmissionCount,
	)

	s.notify(ctx, types.NotificationEventTrancheSubmitted, p.AccountID, dto.NewTrancheResponse(t))

	return dto.NewPaymentResponse(p), nil
}

// AdjudicateTranche records an administrator's verdict on a submitted tranche
func (s *paymentService) AdjudicateTranche(ctx context.Context, paymentID string, number int, req dto.AdjudicateTrancheRequest) (*dto.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.PaymentRepo.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	t, err := p.AdjudicateTranche(number, req.Decision, req.Notes, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.PaymentRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Infow("tranche adjudicated",
		"payment_id", p.ID,
		"installment_number", t.InstallmentNumber,
		"decision", req.Decision,
		"payment_status", p.PaymentStatus,
	)

	eventName := types.NotificationEventTrancheApproved
	if req.Decision == types.AdjudicationDecisionRejected {
		eventName = types.NotificationEventTrancheRejected
	}
	s.notify(ctx, eventName, p.AccountID, dto.NewTrancheResponse(t))

	return dto.NewPaymentResponse(p), nil
}

// MarkTranchePaid closes the ledger on an approved tranche
func (s *paymentService) MarkTranchePaid(ctx context.Context, paymentID string, number int) (*dto.PaymentResponse, error) {
	p, err := s.PaymentRepo.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	t, err := p.MarkTranchePaid(number, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.PaymentRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Infow("tranche marked paid",
		"payment_id", p.ID,
		"installment_number", t.InstallmentNumber,
	)

	s.notify(ctx, types.NotificationEventTranchePaid, p.AccountID, dto.NewTrancheResponse(t))

	return dto.NewPaymentResponse(p), nil
}

// SetServiceWindow sets or adjusts the service window on a payment. The
// window is an operational decision and is never derived from approval
// timestamps. Completion freezes the window.
func (s *paymentService) SetServiceWindow(ctx context.Context, paymentID string, req dto.SetServiceWindowRequest) (*dto.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.PaymentRepo.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if p.IsServiceCompleted {
		return nil, ierr.NewError("service is completed").
			WithHint("The service window cannot change after completion").
			Mark(ierr.ErrInvalidOperation)
	}

	p.StartDate = types.ToNillableTime(req.StartDate.UTC())
	p.EndDate = types.ToNillableTime(req.EndDate.UTC())
	p.UpdatedBy = types.GetActorID(ctx)

	if err := s.PaymentRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Infow("service window set",
		"payment_id", p.ID,
		"start_date", p.StartDate,
		"end_date", p.EndDate,
	)

	s.notify(ctx, types.NotificationEventPaymentWindowSet, p.AccountID, dto.NewPaymentResponse(p))

	return dto.NewPaymentResponse(p), nil
}

// MarkServiceCompleted sets the one-way completed override on a payment.
// Marking an already completed payment is a no-op.
func (s *paymentService) MarkServiceCompleted(ctx context.Context, paymentID string) (*dto.PaymentResponse, error) {
	p, err := s.PaymentRepo.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if p.IsServiceCompleted {
		return dto.NewPaymentResponse(p), nil
	}

	p.IsServiceCompleted = true
	p.UpdatedBy = types.GetActorID(ctx)

	if err := s.PaymentRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Infow("service marked completed", "payment_id", p.ID)

	s.notify(ctx, types.NotificationEventPaymentCompleted, p.AccountID, dto.NewPaymentResponse(p))

	return dto.NewPaymentResponse(p), nil
}

// GetEntitlementPhase derives the entitlement phase of a payment at the
// given instant
func (s *paymentService) GetEntitlementPhase(ctx context.Context, paymentID string, now time.Time) (*dto.EntitlementResponse, error) {
	p, err := s.PaymentRepo.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	return &dto.EntitlementResponse{
		PaymentID:          p.ID,
		Phase:              payment.PhaseOf(p, now),
		StartDate:          p.StartDate,
		EndDate:            p.EndDate,
		IsServiceCompleted: p.IsServiceCompleted,
		EvaluatedAt:        now,
	}, nil
}
