package services

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the quota ledger and reward allocator. The
// orchestrator maps them onto spin outcomes; only RecordingError reaches the
// caller as a hard failure.
var (
	// ErrNoRemainingSpins means the participant's (or event's) spin allowance
	// raced to zero between the eligibility check and the commit.
	ErrNoRemainingSpins = errors.New("no remaining spins")

	// ErrDailyLimitReached means the participant's daily cap raced to its
	// limit between the eligibility check and the commit.
	ErrDailyLimitReached = errors.New("daily spin limit reached")

	// ErrQuotaRaced means a won reward's quantity or daily cap was exhausted
	// by a concurrent winner. A valid business outcome, converted to a loss.
	ErrQuotaRaced = errors.New("reward quota raced away")

	// ErrAllocationConflict means the bounded CAS retries were exhausted by
	// contention without ever observing an invalid state. Retryable by the
	// caller; never silently downgraded to a loss.
	ErrAllocationConflict = errors.New("allocation conflict: retries exhausted")
)

// RecordingError reports a spin whose quota/reward mutations committed but
// whose history row could not be written. The reference ID ties the caller's
// error to the reconciliation log line.
type RecordingError struct {
	ReferenceID string
	Err         error
}

func (e *RecordingError) Error() string {
	return fmt.Sprintf("failed to record spin outcome (ref %s): %v", e.ReferenceID, e.Err)
}

func (e *RecordingError) Unwrap() error { return e.Err }
