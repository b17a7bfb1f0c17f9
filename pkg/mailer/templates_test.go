package mailer

import (
	"strings"
	"testing"
)

func TestRenderWelcome(t *testing.T) {
	job := &EmailJob{
		To:       "ada@example.com",
		Template: TemplateWelcome,
		Data:     map[string]any{"Fullname": "Ada Lovelace"},
	}
	subject, text, html, err := Render(job)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if subject == "" || text == "" {
		t.Error("welcome template must fill subject and text")
	}
	if !strings.Contains(html, "Ada Lovelace") {
		t.Errorf("html does not greet the recipient: %q", html)
	}
}

func TestRenderPassthrough(t *testing.T) {
	job := &EmailJob{Subject: "Hi", Text: "plain", HTML: "<p>rich</p>"}
	subject, text, html, err := Render(job)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if subject != "Hi" || text != "plain" || html != "<p>rich</p>" {
		t.Errorf("passthrough changed the job: %q %q %q", subject, text, html)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, _, _, err := Render(&EmailJob{Template: "nonexistent"}); err == nil {
		t.Error("unknown template accepted")
	}
}
