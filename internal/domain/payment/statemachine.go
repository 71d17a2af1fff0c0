package payment

import (
	"time"

	ierr "github.com/digiserve/digiserve/internal/errors"
	"github.com/digiserve/digiserve/internal/types"
)

// The tranche state machine:
//
//	pending → submitted → {approved, rejected}
//	approved → paid
//	rejected → submitted (resubmission in place)
//
// paid is terminal. Any transition attempted from a non-matching source
// state fails and leaves the tranche unchanged.

// SubmitTranche records customer evidence of payment for the given tranche.
// Legal only from pending or rejected. Tranche N>1 may be submitted only
// after tranche N-1 is settled. Resubmitting the same transaction ref on a
// tranche already in submitted is an idempotency violation, not a second
// submission.
func (p *Payment) SubmitTranche(number int, transactionRef string, now time.Time) (*Tranche, error) {
	t, err := p.Tranche(number)
	if err != nil {
		return nil, err
	}

	if transactionRef == "" {
		return nil, ierr.NewError("transaction reference is required").
			WithHint("A transaction reference must be provided").
			Mark(ierr.ErrValidation)
	}

	if t.Status == types.TrancheStatusSubmitted && t.TransactionRef == transactionRef {
		return nil, ierr.NewErrorf("tranche %d already submitted with ref %s", number, transactionRef).
			WithHint("This transaction reference has already been submitted").
			WithReportableDetails(map[string]any{
				"payment_id":         p.ID,
				"installment_number": number,
			}).
			Mark(ierr.ErrDuplicateSubmission)
	}

	if t.Status != types.TrancheStatusPending && t.Status != types.TrancheStatusRejected {
		return nil, p.transitionError(t, "submit")
	}

	if number > 1 {
		prev := p.Tranches[number-2]
		if !prev.Status.IsSettled() {
			return nil, ierr.NewErrorf("tranche %d submitted before tranche %d settled", number, number-1).
				WithHintf("Installment %d must be approved before installment %d can be submitted", number-1, number).
				WithReportableDetails(map[string]any{
					"payment_id":         p.ID,
					"installment_number": number,
					"previous_status":    prev.Status,
				}).
				Mark(ierr.ErrSequenceViolation)
		}
	}

	resubmission := t.Status == types.TrancheStatusRejected

	t.Status = types.TrancheStatusSubmitted
	t.TransactionRef = transactionRef
	t.SubmittedAt = &now
	if resubmission {
		t.ResubmissionCount++
		// the prior rejection note is cleared only once the new
		// submission is recorded
		t.AdminNotes = ""
	}

	p.Recompute()
	return t, nil
}

// AdjudicateTranche records an administrator's verdict on submitted
// evidence. Legal only from submitted. Approval confirms evidence;
// settlement is the separate MarkTranchePaid step.
func (p *Payment) AdjudicateTranche(number int, decision types.AdjudicationDecision, notes string, now time.Time) (*Tranche, error) {
	t, err := p.Tranche(number)
	if err != nil {
		return nil, err
	}

	if err := decision.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Decision must be APPROVED or REJECTED").
			Mark(ierr.ErrValidation)
	}

	if t.Status != types.TrancheStatusSubmitted {
		return nil, p.transitionError(t, "adjudicate")
	}

	switch decision {
	case types.AdjudicationDecisionApproved:
		t.Status = types.TrancheStatusApproved
		t.ApprovedAt = &now
		t.AdminNotes = notes
	case types.AdjudicationDecisionRejected:
		t.Status = types.TrancheStatusRejected
		t.AdminNotes = notes
		// the transaction ref is retained for audit
		t.SubmittedAt = nil
	}

	p.Recompute()
	return t, nil
}

// MarkTranchePaid closes the ledger on an approved tranche. Legal only
// from approved.
func (p *Payment) MarkTranchePaid(number int, now time.Time) (*Tranche, error) {
	t, err := p.Tranche(number)
	if err != nil {
		return nil, err
	}

	if t.Status != types.TrancheStatusApproved {
		return nil, p.transitionError(t, "mark paid")
	}

	t.Status = types.TrancheStatusPaid
	t.PaidAt = &now

	p.Recompute()
	return t, nil
}

func (p *Payment) transitionError(t *Tranche, op string) error {
	return ierr.NewErrorf("cannot %s tranche %d in status %s", op, t.InstallmentNumber, t.Status).
		WithHintf("Installment %d is %s and cannot be changed this way", t.InstallmentNumber, t.Status).
		WithReportableDetails(map[string]any{
			"payment_id":         p.ID,
			"installment_number": t.InstallmentNumber,
			"status":             t.Status,
		}).
		Mark(ierr.ErrInvalidTransition)
}
