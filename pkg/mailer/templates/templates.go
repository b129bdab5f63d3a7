package templates

import (
	"bytes"
	"fmt"
	htmpl "html/template"
)

// Template names
const (
	ResetPassword = "reset_password"
	Welcome       = "welcome"
)

const resetPasswordHTML = `<html>
<body style="font-family:Arial,Helvetica,sans-serif;color:#222">
  <h2>Reset your password</h2>
  <p>Hi {{.Name}},</p>
  <p>We received a request to reset the password for your account. Click the
  link below to choose a new one. The link expires in {{.ExpiresIn}}.</p>
  <p><a href="{{.ResetURL}}">{{.ResetURL}}</a></p>
  <p>If you did not request a password reset, you can safely ignore this
  email.</p>
</body>
</html>`

const welcomeHTML = `<html>
<body style="font-family:Arial,Helvetica,sans-serif;color:#222">
  <h2>Welcome, {{.Name}}!</h2>
  <p>Your account has been created. Happy shopping!</p>
</body>
</html>`

var parsed = map[string]*htmpl.Template{
	ResetPassword: htmpl.Must(htmpl.New(ResetPassword).Parse(resetPasswordHTML)),
	Welcome:       htmpl.Must(htmpl.New(Welcome).Parse(welcomeHTML)),
}

// Subjects for each template name.
func Subject(name string) string {
	switch name {
	case ResetPassword:
		return "Reset your password"
	case Welcome:
		return "Welcome aboard"
	default:
		return "Notification"
	}
}

// RenderHTML renders the named template with the given data.
func RenderHTML(name string, data any) (string, error) {
	tpl, ok := parsed[name]
	if !ok {
		return "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", name, err)
	}
	return buf.String(), nil
}
