// Package email holds the notification boundary. Sending is not wired to a
// provider yet; the notifier logs what would go out so the orchestration and
// configuration paths stay exercised.
//
// TODO: wire to SES once the intake team's sending domain is verified.
package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/buildcore/vendor-intake/internal/models"
	"github.com/buildcore/vendor-intake/internal/timezone"
)

type Notifier struct {
	fromEmail string
	teamEmail string
}

func NewNotifier(fromEmail, teamEmail string) *Notifier {
	return &Notifier{fromEmail: fromEmail, teamEmail: teamEmail}
}

// SendConfirmation acknowledges the application to the applicant.
func (n *Notifier) SendConfirmation(ctx context.Context, toEmail, vendorName string) error {
	slog.Info("confirmation email (not sent, provider not configured)",
		"to", toEmail,
		"from", n.fromEmail,
		"vendor", vendorName,
		"submitted", timezone.Date(time.Now()),
		"at", timezone.Timestamp(time.Now()),
	)
	return nil
}

// SendTeamNotification tells the intake team a new application landed.
func (n *Notifier) SendTeamNotification(ctx context.Context, sub models.Submission, itemID string) error {
	slog.Info("team notification (not sent, provider not configured)",
		"to", n.teamEmail,
		"vendor", sub.Get("vendorName"),
		"contact", sub.Get("mainContactName"),
		"item_id", itemID,
		"at", timezone.Readable(time.Now()),
	)
	return nil
}
