package notification

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/resumehub/notify-api/internal/model"
)

// Composed is a rendered notification: subject line plus HTML body.
// Composition is pure; nothing here touches the network or database.
type Composed struct {
	Subject string
	HTML    string
}

const layoutTmpl = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937; max-width: 600px; margin: 0 auto;">
<div style="padding: 24px;">
{{ .Body }}
</div>
<div style="padding: 16px 24px; border-top: 1px solid #e5e7eb; font-size: 12px; color: #6b7280;">
<p>ResumeHub &middot; You are receiving this because of your notification preferences.</p>
{{ if .UnsubscribeLink }}<p><a href="{{ .UnsubscribeLink }}">Unsubscribe</a></p>{{ end }}
</div>
</body>
</html>`

const statusChangedTmpl = `<h2>Job Application Update</h2>
<p>Hi {{ .ApplicantName }},</p>
<p>{{ .Lead }}</p>
<table style="border-collapse: collapse;">
<tr><td style="padding: 4px 12px 4px 0;"><strong>Position</strong></td><td>{{ .JobTitle }}</td></tr>
<tr><td style="padding: 4px 12px 4px 0;"><strong>Company</strong></td><td>{{ .Company }}</td></tr>
<tr><td style="padding: 4px 12px 4px 0;"><strong>Status</strong></td><td>{{ .Status }}</td></tr>
</table>
{{ if .Feedback }}<h3>Feedback</h3><p>{{ .Feedback }}</p>{{ end }}`

const interviewTmpl = `<h2>Interview Scheduled</h2>
<p>Hi {{ .ApplicantName }},</p>
<p>An interview has been scheduled for your application to <strong>{{ .JobTitle }}</strong> at <strong>{{ .Company }}</strong>.</p>
<table style="border-collapse: collapse;">
<tr><td style="padding: 4px 12px 4px 0;"><strong>Date</strong></td><td>{{ .Date }}</td></tr>
<tr><td style="padding: 4px 12px 4px 0;"><strong>Time</strong></td><td>{{ .Time }}</td></tr>
<tr><td style="padding: 4px 12px 4px 0;"><strong>Location</strong></td><td>{{ .Location }}</td></tr>
</table>
{{ if .Notes }}<h3>Notes</h3><p>{{ .Notes }}</p>{{ end }}
<p>Good luck!</p>`

const jobPostingTmpl = `<h2>New Job Posting</h2>
{{ if .RecipientName }}<p>Hi {{ .RecipientName }},</p>{{ end }}
<p>A new position was just posted that might interest you:</p>
<p><strong>{{ .JobTitle }}</strong> at <strong>{{ .Company }}</strong>{{ if .Location }} &mdash; {{ .Location }}{{ end }}</p>
<p>Log in to view the posting and apply with one of your documents.</p>`

const newsletterTmpl = `{{ .Content }}`

// statusLeads maps each status to the opening sentence of the
// status-changed email
var statusLeads = map[model.ApplicationStatus]string{
	model.StatusPending:   "Your application has been received and is waiting for review.",
	model.StatusReviewing: "Your application is now being reviewed.",
	model.StatusInterview: "Great news! You have been invited to interview.",
	model.StatusAccepted:  "Congratulations! Your application has been accepted.",
	model.StatusRejected:  "Thank you for applying. Unfortunately your application was not selected this time.",
	model.StatusWithdrawn: "Your application has been withdrawn.",
}

// Composer renders the fixed notification templates
type Composer struct {
	layout     *template.Template
	status     *template.Template
	interview  *template.Template
	jobPosting *template.Template
	newsletter *template.Template
}

func NewComposer() *Composer {
	return &Composer{
		layout:     template.Must(template.New("layout").Parse(layoutTmpl)),
		status:     template.Must(template.New("status").Parse(statusChangedTmpl)),
		interview:  template.Must(template.New("interview").Parse(interviewTmpl)),
		jobPosting: template.Must(template.New("job_posting").Parse(jobPostingTmpl)),
		newsletter: template.Must(template.New("newsletter").Parse(newsletterTmpl)),
	}
}

func (c *Composer) render(body *template.Template, data interface{}, unsubscribeLink string) (string, error) {
	var inner bytes.Buffer
	if err := body.Execute(&inner, data); err != nil {
		return "", fmt.Errorf("failed to render body: %w", err)
	}

	var out bytes.Buffer
	err := c.layout.Execute(&out, struct {
		Body            template.HTML
		UnsubscribeLink string
	}{
		Body:            template.HTML(inner.String()),
		UnsubscribeLink: unsubscribeLink,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render layout: %w", err)
	}
	return out.String(), nil
}

// StatusChanged renders the application-status-changed email.
// An empty feedback string drops the feedback section.
func (c *Composer) StatusChanged(p model.StatusChangedPayload) (Composed, error) {
	lead, ok := statusLeads[p.Status]
	if !ok {
		return Composed{}, fmt.Errorf("unknown application status: %s", p.Status)
	}

	html, err := c.render(c.status, struct {
		model.StatusChangedPayload
		Lead string
	}{p, lead}, "")
	if err != nil {
		return Composed{}, err
	}

	return Composed{
		Subject: fmt.Sprintf("Job Application Update: %s", p.JobTitle),
		HTML:    html,
	}, nil
}

// InterviewScheduled renders the interview email. A missing location
// degrades to "To be confirmed"; empty notes drop the section.
func (c *Composer) InterviewScheduled(p model.InterviewPayload) (Composed, error) {
	if p.Location == "" {
		p.Location = "To be confirmed"
	}

	html, err := c.render(c.interview, p, "")
	if err != nil {
		return Composed{}, err
	}

	return Composed{
		Subject: fmt.Sprintf("Interview Scheduled: %s at %s", p.JobTitle, p.Company),
		HTML:    html,
	}, nil
}

// JobPosting renders the new-job-posting broadcast email
func (c *Composer) JobPosting(p model.JobPostingPayload) (Composed, error) {
	html, err := c.render(c.jobPosting, p, "")
	if err != nil {
		return Composed{}, err
	}

	return Composed{
		Subject: fmt.Sprintf("New Job Posting: %s at %s", p.JobTitle, p.Company),
		HTML:    html,
	}, nil
}

// Newsletter wraps newsletter content in the layout with the
// per-recipient unsubscribe link in the footer
func (c *Composer) Newsletter(p model.NewsletterPayload) (Composed, error) {
	html, err := c.render(c.newsletter, struct {
		Content template.HTML
	}{template.HTML(p.Content)}, p.UnsubscribeLink)
	if err != nil {
		return Composed{}, err
	}

	return Composed{
		Subject: p.Subject,
		HTML:    html,
	}, nil
}
