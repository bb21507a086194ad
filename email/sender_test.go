package email_test

import (
	"strings"
	"testing"

	"Quill/Models"
	"Quill/email"

	"github.com/stretchr/testify/require"
)

var config = Models.EmailConfig{
	FromEmail: "assistant@example.com",
	FromName:  "Quill",
}

func TestBuildMessagePlain(t *testing.T) {
	message := Models.EmailMessage{
		To:      []string{"user@example.com"},
		CC:      []string{"cc@example.com"},
		Subject: "Hello",
		Body:    "Plain body",
	}
	raw := email.BuildMessage(config, message)

	require.Contains(t, raw, "From: Quill <assistant@example.com>\r\n")
	require.Contains(t, raw, "To: user@example.com\r\n")
	require.Contains(t, raw, "Cc: cc@example.com\r\n")
	require.Contains(t, raw, "Subject: Hello\r\n")
	require.Contains(t, raw, "Content-Type: text/plain; charset=UTF-8\r\n")
	require.True(t, strings.HasSuffix(raw, "Plain body"))
	require.NotContains(t, raw, "multipart/mixed")
}

func TestBuildMessageBCCNotInHeaders(t *testing.T) {
	message := Models.EmailMessage{
		To:      []string{"user@example.com"},
		BCC:     []string{"hidden@example.com"},
		Subject: "Hello",
		Body:    "Body",
	}
	raw := email.BuildMessage(config, message)
	require.NotContains(t, raw, "hidden@example.com")
}

func TestBuildMessageWithAttachments(t *testing.T) {
	message := Models.EmailMessage{
		To:      []string{"user@example.com"},
		Subject: "Report",
		Body:    "See attached",
		Attachments: []Models.Attachment{
			{Filename: "report.pdf", MimeType: "application/pdf", Data: []byte("%PDF-1.4 fake")},
		},
	}
	raw := email.BuildMessage(config, message)

	require.Contains(t, raw, "multipart/mixed")
	require.Contains(t, raw, "Content-Type: application/pdf\r\n")
	require.Contains(t, raw, `Content-Disposition: attachment; filename="report.pdf"`)
	require.Contains(t, raw, "Content-Transfer-Encoding: base64\r\n")
	require.Contains(t, raw, "See attached")
}

func TestBuildMessageDetectsMimeFromExtension(t *testing.T) {
	message := Models.EmailMessage{
		To:      []string{"user@example.com"},
		Subject: "Notes",
		Body:    "Body",
		Attachments: []Models.Attachment{
			{Filename: "notes.txt", Data: []byte("hello")},
		},
	}
	raw := email.BuildMessage(config, message)
	require.Contains(t, raw, "Content-Type: text/plain")
}
