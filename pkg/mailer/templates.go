package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var welcomeTpl = template.Must(template.New(TemplateWelcome).Parse(`
<html>
<body style="font-family: sans-serif; color: #222;">
  <h2>Welcome to KannMind{{if .Fullname}}, {{.Fullname}}{{end}}!</h2>
  <p>Your account is ready. Create a board, invite your team and start
  moving tasks.</p>
</body>
</html>
`))

// Render produces subject, text and HTML bodies for a job that names a
// template. Jobs with explicit bodies are passed through unchanged.
func Render(job *EmailJob) (subject, text, html string, err error) {
	if job.Template == "" {
		return job.Subject, job.Text, job.HTML, nil
	}
	switch job.Template {
	case TemplateWelcome:
		var buf bytes.Buffer
		if err := welcomeTpl.Execute(&buf, job.Data); err != nil {
			return "", "", "", err
		}
		return "Welcome to KannMind", "Your account is ready.", buf.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", job.Template)
	}
}
