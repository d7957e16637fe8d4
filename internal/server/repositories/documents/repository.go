// Package documents persists document records and their append-only audit
// trails.
package documents

import (
	"context"

	"github.com/dmitrijs2005/legalvault/internal/server/models"
)

// Repository is the persistence contract for documents. Audit entries are
// append-only: nothing removes or reorders them.
type Repository interface {
	// Create inserts a new document record and returns it with ID and
	// CreatedAt populated. Run inside a transaction together with
	// AppendAudit so a document never exists without its "uploaded" entry.
	Create(ctx context.Context, doc *models.Document) (*models.Document, error)

	// GetByID returns the document without its audit trail, or
	// common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Document, error)

	// SetStatus records the safety verdict. Idempotent: setting the same
	// status twice is a no-op in effect.
	SetStatus(ctx context.Context, id string, status models.DocumentStatus) error

	// AppendAudit appends one audit entry for the document.
	AppendAudit(ctx context.Context, entry *models.AuditEntry) error

	// ListAudit returns the document's audit trail in append order.
	ListAudit(ctx context.Context, documentID string) ([]models.AuditEntry, error)
}
