// Package fault defines the three failure kinds shared by every reconciler.
//
// A reconciliation step either succeeds or yields a *Fault whose Kind tells the
// calling pipeline what to do with the delivery:
//
//   - KindValidation: the payload itself is unusable. Never retried.
//   - KindRetryable: a transient remote condition (rate limiting, 5xx, create races).
//     The caller redelivers the same inputs.
//   - KindFatal: the remote rejected the request for a reason resubmission will not fix.
//
// Callers pattern-match with KindOf instead of relying on type hierarchies.
//
// # Status Classification
//
// FromStatus maps an HTTP status from a destination API onto a Fault using one
// table for every reconciler (see IsRetryableStatus). Statuses that carry
// special meaning for a single call site (409 "already exists", 404 on schema
// lookup) are checked by that call site before falling back to FromStatus.
//
// # Aggregation
//
// Multi-step reconciliations record an Outcome per step and call Fold once at
// the end. Non-retryable faults take priority over retryable ones, so a mix of
// both is reported as fatal with every message concatenated.
package fault
