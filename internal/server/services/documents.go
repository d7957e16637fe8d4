// Package services contains the application services that orchestrate
// repositories, blob storage, the safety analyzer and authentication.
package services

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/legalvault/internal/common"
	"github.com/dmitrijs2005/legalvault/internal/dbx"
	"github.com/dmitrijs2005/legalvault/internal/server/blob"
	"github.com/dmitrijs2005/legalvault/internal/server/models"
	"github.com/dmitrijs2005/legalvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/legalvault/internal/server/safety"
)

// SafetyResult is the outcome of a safety evaluation.
type SafetyResult struct {
	Status   models.DocumentStatus
	Findings []string
}

// DocumentService orchestrates document upload, retrieval and safety
// evaluation. Operations are stateless between requests; concurrent calls
// for different documents never block each other.
type DocumentService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	blobs           blob.Store
	analyzer        safety.Analyzer
	maxAnalyzeBytes int64
}

func NewDocumentService(db *sql.DB, m repomanager.RepositoryManager, blobs blob.Store, analyzer safety.Analyzer, maxAnalyzeBytes int64) *DocumentService {
	return &DocumentService{
		db:              db,
		repomanager:     m,
		blobs:           blobs,
		analyzer:        analyzer,
		maxAnalyzeBytes: maxAnalyzeBytes,
	}
}

// Upload streams the file into blob storage and, only after the write has
// completed durably, creates the document record together with its
// "uploaded" audit entry in one transaction. A failed blob write therefore
// never leaves a dangling record.
func (s *DocumentService) Upload(ctx context.Context, ownerID string, r io.Reader, filename, docType string) (*models.Document, error) {
	br := bufio.NewReader(r)
	if _, err := br.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", common.ErrorValidation)
		}
		return nil, fmt.Errorf("%w: reading upload: %s", common.ErrorStorage, err)
	}

	if docType == "" {
		docType = "unknown"
	}

	handle, err := s.blobs.Put(ctx, br, filename)
	if err != nil {
		return nil, err
	}

	doc := &models.Document{
		OwnerID:    ownerID,
		BlobHandle: handle,
		Filename:   filename,
		DocType:    docType,
		Status:     models.DocumentStatusSafe,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Documents(tx)
		if _, err := repo.Create(ctx, doc); err != nil {
			return err
		}
		entry := &models.AuditEntry{
			DocumentID: doc.ID,
			Action:     models.AuditActionUploaded,
			ActorID:    ownerID,
		}
		if err := repo.AppendAudit(ctx, entry); err != nil {
			return err
		}
		doc.AuditTrail = []models.AuditEntry{*entry}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating document record: %w", err)
	}

	return doc, nil
}

// Get returns document metadata including the audit trail. Access follows
// the owner-or-lawyer rule.
func (s *DocumentService) Get(ctx context.Context, docID, requesterID string, requesterRole models.UserRole) (*models.Document, error) {
	repo := s.repomanager.Documents(s.db)

	doc, err := repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if err := authorize(doc, requesterID, requesterRole); err != nil {
		return nil, err
	}

	trail, err := repo.ListAudit(ctx, docID)
	if err != nil {
		return nil, err
	}
	doc.AuditTrail = trail

	return doc, nil
}

// Fetch opens a read stream of the document content. The caller must close
// the stream on every exit path, including a client disconnecting
// mid-download.
func (s *DocumentService) Fetch(ctx context.Context, docID, requesterID string, requesterRole models.UserRole) (io.ReadCloser, *models.Document, error) {
	doc, err := s.repomanager.Documents(s.db).GetByID(ctx, docID)
	if err != nil {
		return nil, nil, err
	}
	if err := authorize(doc, requesterID, requesterRole); err != nil {
		return nil, nil, err
	}

	rc, err := s.blobs.Get(ctx, doc.BlobHandle)
	if err != nil {
		return nil, nil, err
	}

	return rc, doc, nil
}

// EvaluateSafety reads the document content (capped at maxAnalyzeBytes),
// runs the analyzer and persists the verdict. Re-checks are idempotent:
// unchanged content yields the same status. On any read error the stored
// status is left untouched.
func (s *DocumentService) EvaluateSafety(ctx context.Context, docID, requesterID string, requesterRole models.UserRole) (*SafetyResult, error) {
	repo := s.repomanager.Documents(s.db)

	doc, err := repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if err := authorize(doc, requesterID, requesterRole); err != nil {
		return nil, err
	}

	text, err := s.readCapped(ctx, doc.BlobHandle)
	if err != nil {
		return nil, err
	}

	verdict := s.analyzer.Check(text)

	status := models.DocumentStatusSafe
	if !verdict.IsSafe {
		status = models.DocumentStatusNeedsChanges
	}

	if err := repo.SetStatus(ctx, docID, status); err != nil {
		return nil, err
	}

	return &SafetyResult{Status: status, Findings: verdict.Findings}, nil
}

func (s *DocumentService) readCapped(ctx context.Context, handle string) (string, error) {
	rc, err := s.blobs.Get(ctx, handle)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, s.maxAnalyzeBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: reading blob %s: %s", common.ErrorStorage, handle, err)
	}
	if int64(len(data)) > s.maxAnalyzeBytes {
		return "", fmt.Errorf("%w: document exceeds %d bytes safety-check limit", common.ErrorValidation, s.maxAnalyzeBytes)
	}

	return string(data), nil
}

// authorize enforces the access rule shared by all document reads: the
// owner, or any user with the lawyer role.
func authorize(doc *models.Document, requesterID string, requesterRole models.UserRole) error {
	if doc.OwnerID == requesterID || requesterRole == models.RoleLawyer {
		return nil
	}
	return common.ErrorForbidden
}
