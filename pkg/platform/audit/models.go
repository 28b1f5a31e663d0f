package audit

import (
	"context"
	"time"
)

// Event is emitted from domain logic to capture ledger mutations. Keep
// it transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Key       string    `json:"key"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

type AuditEvent string

const (
	EventLedgerSeeded        AuditEvent = "ledger_seeded"
	EventLedgerCleared       AuditEvent = "ledger_cleared"
	EventPolicyholderCreated AuditEvent = "policyholder_created"
	EventPolicyholderUpdated AuditEvent = "policyholder_updated"
	EventPolicyholderDeleted AuditEvent = "policyholder_deleted"
	EventObligationsViolated AuditEvent = "obligations_violated"
	EventIncidentReported    AuditEvent = "incident_reported"
	EventIncidentResolved    AuditEvent = "incident_resolved"
)

// Store persists audit events. Implementations must be safe for
// concurrent use.
type Store interface {
	Append(ctx context.Context, event Event) error
}
