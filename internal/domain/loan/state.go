package loan

import (
	"fmt"
	"time"

	"loansaarthi-backend/internal/domain/errs"
)

type Action string

const (
	ActionApprove Action = "APPROVE"
	ActionReject  Action = "REJECT"
)

// Transition carries what a status change needs besides the target.
type Transition struct {
	Actor         string
	Comments      string
	DisbursedDate *time.Time
	// FullyVerified is the document gate evaluated under the loan lock.
	FullyVerified bool
	At            time.Time
}

// Decide applies a manual APPROVE/REJECT. Only PENDING loans can be decided.
func (l *Loan) Decide(a Action, tr Transition) error {
	if l.Status != StatusPending {
		return fmt.Errorf("%w (current status: %s)", ErrNotPending, l.Status)
	}
	switch a {
	case ActionApprove:
		return l.TransitionTo(StatusApproved, tr)
	case ActionReject:
		return l.TransitionTo(StatusRejected, tr)
	}
	return fmt.Errorf("%w: action must be APPROVE or REJECT", errs.ErrInvalidArgument)
}

// TransitionTo moves the loan to target if the transition table allows it.
//
//	PENDING  -> APPROVED  (gate must be true)
//	PENDING  -> REJECTED
//	APPROVED -> ACTIVE    (disbursed date required)
//	ACTIVE   -> CLOSED
//
// REJECTED never leaves REJECTED. A same-state target is a no-op.
func (l *Loan) TransitionTo(target Status, tr Transition) error {
	if _, ok := ParseStatus(string(target)); !ok {
		return ErrUnknownStatus
	}
	if l.Status == StatusRejected && target != StatusRejected {
		return ErrRejectedIsFinal
	}
	if l.Status == target {
		return nil
	}

	at := tr.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	switch {
	case l.Status == StatusPending && target == StatusApproved:
		if !tr.FullyVerified {
			return ErrDocumentsUnverified
		}
		actor := tr.Actor
		l.ApprovedBy = &actor
		l.ApprovalDate = &at
		l.ApprovalComments = tr.Comments
	case l.Status == StatusPending && target == StatusRejected:
		l.RejectionReason = tr.Comments
		l.RejectionDate = &at
	case l.Status == StatusApproved && target == StatusActive:
		if tr.DisbursedDate == nil || tr.DisbursedDate.IsZero() {
			return ErrDisbursedDateRequired
		}
		d := tr.DisbursedDate.UTC()
		l.DisbursedDate = &d
	case l.Status == StatusActive && target == StatusClosed:
		l.ClosedDate = &at
	default:
		return fmt.Errorf("%w: %s to %s", errs.ErrInvalidTransition, l.Status, target)
	}

	l.Status = target
	l.StatusUpdatedAt = at
	return nil
}

// Editable reports whether amount/rate/tenure may still change.
func (l *Loan) Editable() bool { return l.Status == StatusPending }

// Deletable reports whether the loan may be soft-deleted.
func (l *Loan) Deletable() bool { return l.Status == StatusPending }
