package rest

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/legalvault/internal/server/models"
)

type auditEntryResponse struct {
	Action string    `json:"action"`
	By     string    `json:"by"`
	Date   time.Time `json:"date"`
}

type documentResponse struct {
	ID         string               `json:"id"`
	OwnerID    string               `json:"owner_id"`
	Filename   string               `json:"filename"`
	DocType    string               `json:"type"`
	Status     string               `json:"status"`
	Signed     bool                 `json:"signed"`
	AuditTrail []auditEntryResponse `json:"audit_trail"`
	CreatedAt  time.Time            `json:"created_at"`
}

func toDocumentResponse(d *models.Document) documentResponse {
	trail := make([]auditEntryResponse, 0, len(d.AuditTrail))
	for _, e := range d.AuditTrail {
		trail = append(trail, auditEntryResponse{
			Action: string(e.Action),
			By:     e.ActorID,
			Date:   e.CreatedAt,
		})
	}
	return documentResponse{
		ID:         d.ID,
		OwnerID:    d.OwnerID,
		Filename:   d.Filename,
		DocType:    d.DocType,
		Status:     string(d.Status),
		Signed:     d.Signed,
		AuditTrail: trail,
		CreatedAt:  d.CreatedAt,
	}
}

func (s *Server) handleUploadDocument(c echo.Context) error {
	userID, _ := requester(c)

	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no file uploaded"})
	}

	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable file"})
	}
	defer f.Close()

	doc, err := s.documents.Upload(c.Request().Context(), userID, f, fh.Filename, c.FormValue("type"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"document": toDocumentResponse(doc)})
}

func (s *Server) handleGetDocument(c echo.Context) error {
	userID, role := requester(c)

	doc, err := s.documents.Get(c.Request().Context(), c.Param("id"), userID, role)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toDocumentResponse(doc))
}

func (s *Server) handleDownloadDocument(c echo.Context) error {
	userID, role := requester(c)

	rc, doc, err := s.documents.Fetch(c.Request().Context(), c.Param("id"), userID, role)
	if err != nil {
		return writeError(c, err)
	}
	defer rc.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(doc.Filename)))

	return c.Stream(http.StatusOK, echo.MIMEOctetStream, rc)
}

func (s *Server) handleSafetyCheck(c echo.Context) error {
	userID, role := requester(c)

	result, err := s.documents.EvaluateSafety(c.Request().Context(), c.Param("id"), userID, role)
	if err != nil {
		return writeError(c, err)
	}

	findings := result.Findings
	if findings == nil {
		findings = []string{}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  string(result.Status),
		"details": findings,
	})
}
