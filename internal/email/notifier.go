package email

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/01moynul/agencyhub/internal/models"
)

// Notifier sends the two inquiry mails, one after the other.
type Notifier struct {
	Sender       Sender
	AdminAddress string
	SiteName     string
	Timeout      time.Duration // per mail; zero means no extra deadline
}

// QuerySubmitted sends the admin alert and then the auto-reply. A failure of
// one does not stop the other; both failures are returned joined.
func (n *Notifier) QuerySubmitted(ctx context.Context, q *models.Query, plan *models.PricePlan) error {
	var errs []error

	if n.AdminAddress != "" {
		if msg, err := AdminAlert(n.SiteName, n.AdminAddress, q, plan); err != nil {
			errs = append(errs, err)
		} else if err := n.send(ctx, msg); err != nil {
			errs = append(errs, fmt.Errorf("admin alert: %w", err))
		}
	}

	if msg, err := AutoReply(n.SiteName, q, plan); err != nil {
		errs = append(errs, err)
	} else if err := n.send(ctx, msg); err != nil {
		errs = append(errs, fmt.Errorf("auto-reply: %w", err))
	}

	return errors.Join(errs...)
}

func (n *Notifier) send(ctx context.Context, msg Message) error {
	if n.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.Timeout)
		defer cancel()
	}
	return n.Sender.Send(ctx, msg)
}
