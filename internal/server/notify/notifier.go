// Package notify delivers reminder messages for due activities.
package notify

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/legalvault/internal/server/models"
)

// Notifier sends one message. Implementations must be safe for the caller
// to retry: the scheduler owns the retry policy, not the transport.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// ComposeReminder builds the reminder subject and plain-text body for an
// activity.
func ComposeReminder(a *models.Activity) (subject, body string) {
	date := a.Date.Format("Mon Jan 02 2006")

	subject = fmt.Sprintf("Reminder: %s on %s", a.Title, date)

	description := a.Description
	if description == "" {
		description = "N/A"
	}

	body = fmt.Sprintf(
		"Dear User,\n\n"+
			"This is a reminder for your activity:\n\n"+
			"Title: %s\n"+
			"Description: %s\n"+
			"Date: %s at %s\n\n"+
			"Please take necessary action.\n\n"+
			"Regards,\nLegal System",
		a.Title, description, date, a.Time)

	return subject, body
}
