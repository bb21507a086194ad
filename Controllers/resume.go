package Controllers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"Quill/Config"
	"Quill/Models"
	"Quill/Resume"
	"Quill/Validation"
	"Quill/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ResumeController handles CV upload and job-description matching.
type ResumeController struct {
	DB *gorm.DB
}

func NewResumeController(db *gorm.DB) *ResumeController {
	return &ResumeController{DB: db}
}

// Upload stores a resume file after type and size checks.
func (r *ResumeController) Upload(ctx *fiber.Ctx) error {
	header, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A resume file is required"})
	}
	if header.Size > Validation.MaxAttachmentSize {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File exceeds the 5MB size limit"})
	}
	if !Validation.AllowedAttachmentType(header.Header.Get("Content-Type")) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File type %s is not allowed", header.Header.Get("Content-Type")),
		})
	}

	user := middleware.CurrentUser(ctx)
	if err := os.MkdirAll(Config.AppConfig.UploadDir, 0755); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store resume"})
	}
	storedPath := filepath.Join(Config.AppConfig.UploadDir,
		fmt.Sprintf("%d_%d_%s", user.Id, time.Now().UnixNano(), filepath.Base(header.Filename)))
	if err := ctx.SaveFile(header, storedPath); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store resume"})
	}

	resume := Models.Resume{
		UserId:     user.Id,
		Filename:   header.Filename,
		StoredPath: storedPath,
		UploadedAt: time.Now().UTC(),
	}
	if result := r.DB.Create(&resume); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store resume"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(resume)
}

type matchInput struct {
	ResumeId       uint   `json:"resume_id" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
}

// Match scores an uploaded resume against a job description.
func (r *ResumeController) Match(ctx *fiber.Ctx) error {
	var input matchInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if fields := Validation.Struct(input); fields != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume_id and job_description are required",
		})
	}

	user := middleware.CurrentUser(ctx)
	var resume Models.Resume
	result := r.DB.Where("id = ? AND user_id = ?", input.ResumeId, user.Id).First(&resume)
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Resume not found"})
	}

	raw, err := os.ReadFile(resume.StoredPath)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read resume"})
	}

	match := Resume.Match(extractText(raw), input.JobDescription)
	return ctx.JSON(match)
}

// GetResumes lists the user's uploaded resumes.
func (r *ResumeController) GetResumes(ctx *fiber.Ctx) error {
	user := middleware.CurrentUser(ctx)
	var resumes []Models.Resume
	result := r.DB.Where("user_id = ?", user.Id).Order("uploaded_at desc").Find(&resumes)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve resumes"})
	}
	return ctx.JSON(resumes)
}

// extractText keeps printable runs of the file content. Plain-text resumes
// pass through untouched; binary formats degrade to the readable strings
// embedded in them, which is enough for keyword matching.
func extractText(raw []byte) string {
	var b strings.Builder
	for _, r := range string(raw) {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}
