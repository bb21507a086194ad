package Client

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sync"

	"Quill/Drafts"
	"Quill/Models"
	"Quill/Validation"
)

// EmailForm holds the composition inputs. Recipient is only checked at send
// time; generation never includes it.
type EmailForm struct {
	Recipient string
	CC        string
	BCC       string
	Subject   string
	Context   string
	Tone      string
}

// Composer drives the generate/edit/send flow: it validates the form, keeps
// the draft version ledger, enforces the attachment rules and talks to the
// generate and send endpoints.
type Composer struct {
	client *Client

	mu            sync.Mutex
	Form          EmailForm
	ledger        *Drafts.Ledger
	draft         string
	attachments   []Models.Attachment
	attachmentErr string
	lastRequest   uint64
}

func NewComposer(client *Client) *Composer {
	return &Composer{
		client: client,
		ledger: Drafts.NewLedger(),
	}
}

// CurrentDraft returns the draft being displayed, including hand edits.
func (c *Composer) CurrentDraft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// EditDraft replaces the displayed draft without touching version history.
func (c *Composer) EditDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
}

func (c *Composer) Undo() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = c.ledger.Undo()
	return c.draft
}

func (c *Composer) Redo() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = c.ledger.Redo()
	return c.draft
}

func (c *Composer) Versions() int { return c.ledger.Len() }

// Attachments returns a copy of the accepted attachments.
func (c *Composer) Attachments() []Models.Attachment {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Models.Attachment, len(c.attachments))
	copy(out, c.attachments)
	return out
}

// AttachmentError reports the category of the most recent rejected file, or
// the batch-level count error. One slot only, so a later violation overwrites
// an earlier one.
func (c *Composer) AttachmentError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attachmentErr
}

// AddAttachments applies the attachment rules to a candidate batch. A batch
// that would push the total past the limit is rejected whole; otherwise files
// failing the size or type check are dropped silently while the rest are
// accepted, and only the last violation's category lands in the error slot.
func (c *Composer) AddAttachments(candidates []Models.Attachment) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attachmentErr = ""

	if len(c.attachments)+len(candidates) > Validation.MaxAttachments {
		c.attachmentErr = fmt.Sprintf("Maximum %d attachments allowed", Validation.MaxAttachments)
		return errors.New(c.attachmentErr)
	}

	for _, candidate := range candidates {
		if candidate.Size > Validation.MaxAttachmentSize {
			c.attachmentErr = "File exceeds the 5MB size limit"
			continue
		}
		if !Validation.AllowedAttachmentType(candidate.MimeType) {
			c.attachmentErr = "File type not allowed"
			continue
		}
		c.attachments = append(c.attachments, candidate)
	}
	return nil
}

// ValidateForGenerate checks the fields generation needs. Recipient is not
// among them.
func (c *Composer) ValidateForGenerate() map[string]string {
	errors := map[string]string{}
	if c.Form.Subject == "" {
		errors["subject"] = "Subject is required"
	}
	if err := Validation.ValidateContext(c.Form.Context); err != nil {
		errors["context"] = err.Error()
	}
	if err := Validation.ValidateAddressList(c.Form.CC); err != nil {
		errors["cc"] = err.Error()
	}
	if err := Validation.ValidateAddressList(c.Form.BCC); err != nil {
		errors["bcc"] = err.Error()
	}
	return errors
}

// ValidateForSend additionally requires a recipient and a non-empty draft.
func (c *Composer) ValidateForSend() map[string]string {
	errors := c.ValidateForGenerate()
	if c.Form.Recipient == "" || !Validation.ValidEmail(c.Form.Recipient) {
		errors["recipient"] = "Please enter a valid email address"
	}
	if c.CurrentDraft() == "" {
		errors["body"] = "Generate or write a draft before sending"
	}
	return errors
}

type generateResponse struct {
	Body    string `json:"body"`
	Tone    string `json:"tone"`
	EmailId uint   `json:"email_id"`
}

// Generate asks the service for a new draft and appends it to the ledger.
// If a second generate was issued while this one was in flight, the stale
// response is discarded rather than overwriting the newer draft.
func (c *Composer) Generate() error {
	if errors := c.ValidateForGenerate(); len(errors) > 0 {
		return fmt.Errorf("form is invalid")
	}

	c.mu.Lock()
	c.lastRequest = c.client.nextRequestID()
	requestID := c.lastRequest
	payload := map[string]string{
		"subject": c.Form.Subject,
		"context": c.Form.Context,
		"tone":    c.Form.Tone,
		"cc":      c.Form.CC,
		"bcc":     c.Form.BCC,
	}
	c.mu.Unlock()

	var resp generateResponse
	if err := c.client.postJSON("/api/email/generate", payload, &resp); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if requestID != c.lastRequest {
		return nil
	}
	c.ledger.Generate(resp.Body)
	c.draft = resp.Body
	return nil
}

// Send submits the composed email as multipart form data and on success
// resets the form, the ledger and the attachments.
func (c *Composer) Send() error {
	if errors := c.ValidateForSend(); len(errors) > 0 {
		return fmt.Errorf("form is invalid")
	}

	c.mu.Lock()
	form := c.Form
	body := c.draft
	attachments := make([]Models.Attachment, len(c.attachments))
	copy(attachments, c.attachments)
	c.mu.Unlock()

	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)
	fields := map[string]string{
		"recipient": form.Recipient,
		"subject":   form.Subject,
		"body":      body,
		"tone":      form.Tone,
		"cc":        form.CC,
		"bcc":       form.BCC,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("error building send payload: %w", err)
		}
	}
	for _, attachment := range attachments {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="attachments"; filename=%q`, attachment.Filename))
		header.Set("Content-Type", attachment.MimeType)
		part, err := writer.CreatePart(header)
		if err != nil {
			return fmt.Errorf("error building send payload: %w", err)
		}
		if _, err := part.Write(attachment.Data); err != nil {
			return fmt.Errorf("error building send payload: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("error building send payload: %w", err)
	}

	resp, err := c.client.do(http.MethodPost, "/api/email/send", writer.FormDataContentType(), &buffer)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := decodeResponse(resp, nil); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.Form = EmailForm{}
	c.ledger.Reset()
	c.draft = ""
	c.attachments = nil
	c.attachmentErr = ""
	return nil
}

// FetchHistory retrieves the archived emails for local filtering and sorting.
func (c *Composer) FetchHistory() ([]Models.EmailRecord, error) {
	var emails []Models.EmailRecord
	if err := c.client.getJSON("/api/history/", &emails); err != nil {
		return nil, err
	}
	return emails, nil
}
