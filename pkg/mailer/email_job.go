package mailer

// TemplatePasswordReset is the only template currently produced by the app.
const TemplatePasswordReset = "password_reset"

// EmailJob is the JSON payload put on the RabbitMQ queue for the email worker.
// Either Template+Data or Subject+Text/HTML is populated.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}
