package Controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"Quill/Drafts"
	"Quill/Generation"
	"Quill/Models"
	"Quill/Validation"
	"Quill/email"
	"Quill/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EmailController handles generation, draft versioning and sending.
type EmailController struct {
	DB        *gorm.DB
	Generator *Generation.Client
	Ledgers   *Drafts.Store
	Mail      Models.EmailConfig
}

func NewEmailController(db *gorm.DB, generator *Generation.Client, mail Models.EmailConfig) *EmailController {
	return &EmailController{
		DB:        db,
		Generator: generator,
		Ledgers:   Drafts.NewStore(),
		Mail:      mail,
	}
}

type generateInput struct {
	Subject string `json:"subject" validate:"required"`
	Context string `json:"context" validate:"required"`
	Tone    string `json:"tone"`
	CC      string `json:"cc"`
	BCC     string `json:"bcc"`
}

// Generate produces a new draft body and appends it to the user's ledger.
// The recipient is deliberately not part of the generation payload.
func (e *EmailController) Generate(ctx *fiber.Ctx) error {
	var input generateInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if fields := Validation.Struct(input); fields != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Subject and context are required",
		})
	}
	if err := Validation.ValidateContext(input.Context); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
			"field": "context",
		})
	}
	if err := Validation.ValidateAddressList(input.CC); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error(), "field": "cc"})
	}
	if err := Validation.ValidateAddressList(input.BCC); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error(), "field": "bcc"})
	}
	tone := Validation.NormalizeTone(input.Tone)

	body, err := e.Generator.Generate(input.Subject, input.Context, tone)
	if err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	user := middleware.CurrentUser(ctx)
	record := Models.EmailRecord{
		UserId:    user.Id,
		Subject:   input.Subject,
		Body:      body,
		Tone:      tone,
		CC:        input.CC,
		BCC:       input.BCC,
		Timestamp: time.Now().UTC(),
	}
	if result := e.DB.Create(&record); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save email"})
	}

	ledger := e.Ledgers.ForUser(user.Id)
	ledger.Generate(body)

	return ctx.JSON(fiber.Map{
		"subject":  input.Subject,
		"body":     body,
		"tone":     tone,
		"email_id": record.Id,
		"cursor":   ledger.Cursor(),
		"versions": ledger.Len(),
	})
}

func (e *EmailController) draftState(userId uint, body string) fiber.Map {
	ledger := e.Ledgers.ForUser(userId)
	return fiber.Map{
		"body":     body,
		"cursor":   ledger.Cursor(),
		"versions": ledger.Len(),
	}
}

// UndoDraft moves the draft cursor back one version.
func (e *EmailController) UndoDraft(ctx *fiber.Ctx) error {
	user := middleware.CurrentUser(ctx)
	body := e.Ledgers.ForUser(user.Id).Undo()
	return ctx.JSON(e.draftState(user.Id, body))
}

// RedoDraft moves the draft cursor forward one version.
func (e *EmailController) RedoDraft(ctx *fiber.Ctx) error {
	user := middleware.CurrentUser(ctx)
	body := e.Ledgers.ForUser(user.Id).Redo()
	return ctx.JSON(e.draftState(user.Id, body))
}

// CurrentDraft returns the draft at the cursor.
func (e *EmailController) CurrentDraft(ctx *fiber.Ctx) error {
	user := middleware.CurrentUser(ctx)
	body := e.Ledgers.ForUser(user.Id).Current()
	return ctx.JSON(e.draftState(user.Id, body))
}

// ResetDraft clears the user's draft history.
func (e *EmailController) ResetDraft(ctx *fiber.Ctx) error {
	user := middleware.CurrentUser(ctx)
	e.Ledgers.ForUser(user.Id).Reset()
	return ctx.JSON(e.draftState(user.Id, ""))
}

// Send delivers the composed email as multipart form data:
// recipient, subject, body, cc, bcc and up to five attachments.
func (e *EmailController) Send(ctx *fiber.Ctx) error {
	recipient := ctx.FormValue("recipient")
	subject := ctx.FormValue("subject")
	body := ctx.FormValue("body")
	cc := ctx.FormValue("cc")
	bcc := ctx.FormValue("bcc")

	if recipient == "" || subject == "" || body == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Recipient, subject, and body are required",
		})
	}
	if !Validation.ValidEmail(recipient) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Please enter a valid email address",
			"field": "recipient",
		})
	}
	if err := Validation.ValidateAddressList(cc); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error(), "field": "cc"})
	}
	if err := Validation.ValidateAddressList(bcc); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error(), "field": "bcc"})
	}

	attachments, err := e.collectAttachments(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error(), "field": "attachments"})
	}

	message := Models.EmailMessage{
		To:          []string{recipient},
		CC:          Validation.SplitAddressList(cc),
		BCC:         Validation.SplitAddressList(bcc),
		Subject:     subject,
		Body:        body,
		Attachments: attachments,
	}
	if err := email.SendEmail(e.Mail, message); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	user := middleware.CurrentUser(ctx)
	record := Models.EmailRecord{
		UserId:    user.Id,
		Subject:   subject,
		Body:      body,
		Tone:      Validation.NormalizeTone(ctx.FormValue("tone")),
		Recipient: recipient,
		CC:        cc,
		BCC:       bcc,
		Timestamp: time.Now().UTC(),
	}
	if meta, err := json.Marshal(attachments); err == nil && len(attachments) > 0 {
		record.Attachments = datatypes.JSON(meta)
	}
	if result := e.DB.Create(&record); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save email"})
	}

	e.Ledgers.ForUser(user.Id).Reset()

	return ctx.JSON(fiber.Map{"message": "Email sent successfully", "email_id": record.Id})
}

func (e *EmailController) collectAttachments(ctx *fiber.Ctx) ([]Models.Attachment, error) {
	form, err := ctx.MultipartForm()
	if err != nil {
		// Plain form posts carry no attachments
		return nil, nil
	}
	files := form.File["attachments"]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > Validation.MaxAttachments {
		return nil, fmt.Errorf("maximum %d attachments allowed", Validation.MaxAttachments)
	}

	var attachments []Models.Attachment
	for _, header := range files {
		if header.Size > Validation.MaxAttachmentSize {
			return nil, fmt.Errorf("file %s exceeds the 5MB size limit", header.Filename)
		}
		mimeType := header.Header.Get("Content-Type")
		if !Validation.AllowedAttachmentType(mimeType) {
			return nil, fmt.Errorf("file type %s is not allowed", mimeType)
		}
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to read attachment %s: %w", header.Filename, err)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read attachment %s: %w", header.Filename, err)
		}
		attachments = append(attachments, Models.Attachment{
			Filename: header.Filename,
			Data:     data,
			Size:     header.Size,
			MimeType: mimeType,
		})
	}
	return attachments, nil
}
