package bol

import "time"

type EventKind string

const (
	EventIssued EventKind = "bol.issued"
	EventVoided EventKind = "bol.voided"
	// EventDeleted is sent by the legacy hard-delete path.
	EventDeleted EventKind = "bol.deleted"
)

// Event describes an issued or voided document for outside consumers.
type Event struct {
	Kind        EventKind `json:"kind"`
	BOLID       string    `json:"bolId"`
	Number      string    `json:"number"`
	TenantID    string    `json:"tenantId,omitempty"`
	DocumentKey string    `json:"documentKey,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

func NewEvent(kind EventKind, b *BOL, at time.Time) Event {
	e := Event{
		Kind:        kind,
		BOLID:       b.ID().String(),
		Number:      b.Number().String(),
		DocumentKey: b.DocumentKey(),
		OccurredAt:  at.UTC(),
	}
	if tid := b.TenantID(); tid != nil {
		e.TenantID = tid.String()
	}
	return e
}
