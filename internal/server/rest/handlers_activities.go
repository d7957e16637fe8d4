package rest

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/legalvault/internal/server/models"
)

const dateLayout = "2006-01-02"

type createActivityRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	RepeatFrequency string `json:"repeat_frequency"`
}

type activityResponse struct {
	ID                string    `json:"id"`
	OwnerID           string    `json:"owner_id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Date              string    `json:"date"`
	Time              string    `json:"time"`
	RepeatFrequency   string    `json:"repeat_frequency"`
	EmailReminderSent bool      `json:"email_reminder_sent"`
	CreatedAt         time.Time `json:"created_at"`
}

func toActivityResponse(a *models.Activity) activityResponse {
	return activityResponse{
		ID:                a.ID,
		OwnerID:           a.OwnerID,
		Title:             a.Title,
		Description:       a.Description,
		Date:              a.Date.Format(dateLayout),
		Time:              a.Time,
		RepeatFrequency:   string(a.RepeatFrequency),
		EmailReminderSent: a.EmailReminderSent,
		CreatedAt:         a.CreatedAt,
	}
}

func (s *Server) handleCreateActivity(c echo.Context) error {
	userID, _ := requester(c)

	var req createActivityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	// Parsed without a zone: the date is a civil calendar day, stored and
	// scanned back as midnight UTC.
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date: want YYYY-MM-DD"})
	}

	a, err := s.activities.Create(c.Request().Context(), userID,
		req.Title, req.Description, date, req.Time, models.RepeatFrequency(req.RepeatFrequency))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"activity": toActivityResponse(a)})
}

func (s *Server) handleListActivities(c echo.Context) error {
	userID, _ := requester(c)

	list, err := s.activities.ListForOwner(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	resp := make([]activityResponse, 0, len(list))
	for _, a := range list {
		resp = append(resp, toActivityResponse(a))
	}

	return c.JSON(http.StatusOK, echo.Map{"activities": resp})
}
