// Package models defines the persisted entities of the service.
package models

import "time"

// DocumentStatus is the safety verdict recorded on a document.
type DocumentStatus string

const (
	DocumentStatusSafe         DocumentStatus = "safe"
	DocumentStatusNeedsChanges DocumentStatus = "needs_changes"
)

// AuditAction is a lifecycle action recorded in a document's audit trail.
type AuditAction string

const (
	AuditActionUploaded AuditAction = "uploaded"
	AuditActionEdited   AuditAction = "edited"
	AuditActionApproved AuditAction = "approved"
)

// AuditEntry is one append-only record in a document's audit trail.
// Entries are never reordered or deleted.
type AuditEntry struct {
	ID         int64
	DocumentID string
	Action     AuditAction
	ActorID    string
	CreatedAt  time.Time
}

// Document is a stored legal document. BlobHandle points into the blob
// store, is set once at creation and never mutated. Status is changed only
// by the safety-evaluation operation.
type Document struct {
	ID         string
	OwnerID    string
	BlobHandle string
	Filename   string
	DocType    string
	Status     DocumentStatus
	Signed     bool
	AuditTrail []AuditEntry
	CreatedAt  time.Time
}
