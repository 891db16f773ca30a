package email

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/01moynul/agencyhub/internal/models"
)

type templateData struct {
	SiteName    string
	Email       string
	Message     string
	Category    string
	Price       string
	Features    []string
	SubmittedAt string
}

var adminAlertTmpl = template.Must(template.New("admin_alert").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <h2>New inquiry received</h2>
  <p><strong>From:</strong> {{.Email}}</p>
  <p><strong>Submitted:</strong> {{.SubmittedAt}}</p>
  <h3>Selected plan</h3>
  <p><strong>{{.Category}}</strong> &middot; {{.Price}}</p>
  {{if .Features}}<ul>{{range .Features}}<li>{{.}}</li>{{end}}</ul>{{end}}
  <h3>Message</h3>
  <p style="white-space: pre-wrap;">{{.Message}}</p>
</body>
</html>`))

var autoReplyTmpl = template.Must(template.New("auto_reply").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <h2>Thanks for reaching out to {{.SiteName}}!</h2>
  <p>We received your inquiry and will get back to you shortly.</p>
  <h3>The plan you chose</h3>
  <p><strong>{{.Category}}</strong> &middot; {{.Price}}</p>
  {{if .Features}}<ul>{{range .Features}}<li>{{.}}</li>{{end}}</ul>{{end}}
  <h3>Your message</h3>
  <p style="white-space: pre-wrap;">{{.Message}}</p>
  <p>&mdash; The {{.SiteName}} team</p>
</body>
</html>`))

func newTemplateData(site string, q *models.Query, plan *models.PricePlan) templateData {
	return templateData{
		SiteName:    site,
		Email:       q.Email,
		Message:     q.Message,
		Category:    plan.Category,
		Price:       formatPrice(plan.Price),
		Features:    plan.Features,
		SubmittedAt: q.CreatedAt.UTC().Format(time.RFC1123),
	}
}

// formatPrice renders whole amounts without decimals: 49 -> "$49", 49.5 -> "$49.50".
func formatPrice(p float64) string {
	if p == float64(int64(p)) {
		return fmt.Sprintf("$%d", int64(p))
	}
	return fmt.Sprintf("$%.2f", p)
}

// AdminAlert renders the mail that tells the admin a new inquiry arrived.
func AdminAlert(site, to string, q *models.Query, plan *models.PricePlan) (Message, error) {
	var buf bytes.Buffer
	if err := adminAlertTmpl.Execute(&buf, newTemplateData(site, q, plan)); err != nil {
		return Message{}, fmt.Errorf("failed to render admin alert: %w", err)
	}
	return Message{
		To:      to,
		Subject: fmt.Sprintf("New inquiry: %s plan from %s", plan.Category, q.Email),
		HTML:    buf.String(),
	}, nil
}

// AutoReply renders the confirmation mail sent back to the submitter.
func AutoReply(site string, q *models.Query, plan *models.PricePlan) (Message, error) {
	var buf bytes.Buffer
	if err := autoReplyTmpl.Execute(&buf, newTemplateData(site, q, plan)); err != nil {
		return Message{}, fmt.Errorf("failed to render auto-reply: %w", err)
	}
	return Message{
		To:      q.Email,
		Subject: fmt.Sprintf("We received your inquiry - %s", site),
		HTML:    buf.String(),
	}, nil
}
