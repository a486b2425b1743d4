package digest

import (
	"strings"
	"testing"
)

func TestBuildMessage(t *testing.T) {
	msg := string(buildMessage("digest@example.com", "user@example.com",
		"Your Market News Summary", "<p>Hello</p>"))

	headers := []string{
		"From: digest@example.com\r\n",
		"To: user@example.com\r\n",
		"Subject: Your Market News Summary\r\n",
		"MIME-Version: 1.0\r\n",
		"Content-Type: text/html; charset=UTF-8\r\n",
	}

	for _, h := range headers {
		if !strings.Contains(msg, h) {
			t.Errorf("Expected message to contain header %q", h)
		}
	}

	if !strings.Contains(msg, "\r\n\r\n<p>Hello</p>") {
		t.Error("Expected body separated from headers by a blank line")
	}
}

func TestBuildDigestEmail(t *testing.T) {
	body := buildDigestEmail(testDate(t), "<p>Summary content</p>")

	if !strings.Contains(body, "March 15, 2025") {
		t.Errorf("Expected digest email to contain the date, got: %s", body)
	}
	if !strings.Contains(body, "<p>Summary content</p>") {
		t.Error("Expected digest email to embed the summary content")
	}
}

func TestBuildWelcomeEmail(t *testing.T) {
	body := buildWelcomeEmail("Ada", "Glad to have you.")

	if !strings.Contains(body, "Welcome, Ada!") {
		t.Errorf("Expected welcome email to greet the user, got: %s", body)
	}
	if !strings.Contains(body, "Glad to have you.") {
		t.Error("Expected welcome email to embed the intro")
	}
}
