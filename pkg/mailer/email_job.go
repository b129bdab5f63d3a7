package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Only best-effort notifications go through the queue; the reset-password
// email is sent inline because its outcome drives a compensating action.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome"
	Data     map[string]any `json:"data,omitempty"`
}
