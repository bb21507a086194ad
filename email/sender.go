package email

import (
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"mime"
	"net/smtp"
	"path/filepath"
	"strings"

	"Quill/Models"
)

// SendEmail sends an email using the provided configuration and message details
func SendEmail(config Models.EmailConfig, message Models.EmailMessage) error {
	messageBody := BuildMessage(config, message)

	auth := smtp.PlainAuth("", config.Username, config.Password, config.SMTPServer)

	// Recipient list covers to, cc and bcc; bcc never appears in headers
	var recipients []string
	recipients = append(recipients, message.To...)
	recipients = append(recipients, message.CC...)
	recipients = append(recipients, message.BCC...)

	serverAddr := fmt.Sprintf("%s:%d", config.SMTPServer, config.SMTPPort)

	if !config.TLSEnabled {
		return smtp.SendMail(serverAddr, auth, config.FromEmail, recipients, []byte(messageBody))
	}

	tlsConfig := &tls.Config{
		ServerName:         config.SMTPServer,
		InsecureSkipVerify: config.SkipTLSCheck,
	}

	conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %v", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, config.SMTPServer)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %v", err)
	}
	defer client.Close()

	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %v", err)
	}

	if err = client.Mail(config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %v", err)
	}
	for _, recipient := range recipients {
		if err = client.Rcpt(recipient); err != nil {
			return fmt.Errorf("failed to add recipient %s: %v", recipient, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data connection: %v", err)
	}
	if _, err = w.Write([]byte(messageBody)); err != nil {
		return fmt.Errorf("failed to write email body: %v", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data connection: %v", err)
	}

	return client.Quit()
}

const mixedBoundary = "quill-mixed-boundary"

// BuildMessage assembles the raw RFC 822 message, using a multipart/mixed
// body when attachments are present.
func BuildMessage(config Models.EmailConfig, message Models.EmailMessage) string {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s <%s>\r\n", config.FromName, config.FromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(message.To, ", "))
	if len(message.CC) > 0 {
		fmt.Fprintf(&b, "Cc: %s\r\n", strings.Join(message.CC, ", "))
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", message.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")

	contentType := "text/plain; charset=UTF-8"
	if message.IsHTML {
		contentType = "text/html; charset=UTF-8"
	}

	if len(message.Attachments) == 0 {
		fmt.Fprintf(&b, "Content-Type: %s\r\n\r\n", contentType)
		b.WriteString(message.Body)
		return b.String()
	}

	fmt.Fprintf(&b, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mixedBoundary)

	fmt.Fprintf(&b, "--%s\r\n", mixedBoundary)
	fmt.Fprintf(&b, "Content-Type: %s\r\n\r\n", contentType)
	b.WriteString(message.Body)
	b.WriteString("\r\n")

	for _, attachment := range message.Attachments {
		mimeType := attachment.MimeType
		if mimeType == "" {
			mimeType = mime.TypeByExtension(filepath.Ext(attachment.Filename))
		}
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		fmt.Fprintf(&b, "--%s\r\n", mixedBoundary)
		fmt.Fprintf(&b, "Content-Type: %s\r\n", mimeType)
		b.WriteString("Content-Transfer-Encoding: base64\r\n")
		fmt.Fprintf(&b, "Content-Disposition: attachment; filename=%q\r\n\r\n", attachment.Filename)
		b.WriteString(wrapBase64(attachment.Data))
		b.WriteString("\r\n")
	}
	fmt.Fprintf(&b, "--%s--\r\n", mixedBoundary)

	return b.String()
}

// wrapBase64 encodes data at the 76-column line limit required for MIME.
func wrapBase64(data []byte) string {
	encoded := base64.StdEncoding.EncodeToString(data)
	var b strings.Builder
	for len(encoded) > 76 {
		b.WriteString(encoded[:76])
		b.WriteString("\r\n")
		encoded = encoded[76:]
	}
	b.WriteString(encoded)
	return b.String()
}
