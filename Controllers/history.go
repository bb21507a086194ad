package Controllers

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"Quill/Config"
	"Quill/History"
	"Quill/middleware"

	"Quill/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// HistoryController serves the archived-email list and its exports.
type HistoryController struct {
	DB *gorm.DB
}

func NewHistoryController(db *gorm.DB) *HistoryController {
	return &HistoryController{DB: db}
}

func (h *HistoryController) filteredEmails(ctx *fiber.Ctx) ([]Models.EmailRecord, error) {
	user := middleware.CurrentUser(ctx)

	var emails []Models.EmailRecord
	result := h.DB.Where("user_id = ?", user.Id).Order("timestamp desc").Find(&emails)
	if result.Error != nil {
		return nil, result.Error
	}

	filter := History.Filter{
		Search: ctx.Query("search"),
		Tone:   ctx.Query("tone"),
		Range:  ctx.Query("range", "all"),
	}
	emails = History.Apply(emails, filter, time.Now())

	if key := ctx.Query("sort"); key != "" {
		state := History.SortState{Key: key, Descending: ctx.Query("dir") == "desc"}
		emails = History.Sort(emails, state)
	}
	return emails, nil
}

// GetHistory lists the user's archived emails, optionally filtered by
// ?search=, ?tone=, ?range= and sorted by ?sort=&dir=.
func (h *HistoryController) GetHistory(ctx *fiber.Ctx) error {
	emails, err := h.filteredEmails(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve history"})
	}
	return ctx.JSON(emails)
}

// ExportPDF renders one archived email to PDF and serves it as a download.
func (h *HistoryController) ExportPDF(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email ID"})
	}

	user := middleware.CurrentUser(ctx)
	var record Models.EmailRecord
	result := h.DB.Where("id = ? AND user_id = ?", id, user.Id).First(&record)
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Email not found"})
	}

	if err := os.MkdirAll(Config.AppConfig.PDFFolder, 0755); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create export folder"})
	}
	filename := filepath.Join(Config.AppConfig.PDFFolder, fmt.Sprintf("email_%d.pdf", record.Id))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.MultiCell(0, 8, record.Subject, "", "L", false)
	pdf.Ln(2)
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 5, fmt.Sprintf("Tone: %s    Date: %s", record.Tone, record.Timestamp.Format("2006-01-02 15:04")), "", "L", false)
	pdf.Ln(4)
	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 6, record.Body, "", "L", false)
	if err := pdf.OutputFileAndClose(filename); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to export PDF"})
	}

	return ctx.Download(filename)
}

// ExportExcel renders the filtered history to an xlsx workbook.
func (h *HistoryController) ExportExcel(ctx *fiber.Ctx) error {
	emails, err := h.filteredEmails(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve history"})
	}

	workbook := excelize.NewFile()
	sheet := "History"
	workbook.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Subject", "Tone", "Recipient", "Timestamp", "Body"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		workbook.SetCellValue(sheet, cell, header)
	}
	for row, record := range emails {
		values := []interface{}{
			record.Id, record.Subject, record.Tone, record.Recipient,
			record.Timestamp.Format("2006-01-02 15:04"), record.Body,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			workbook.SetCellValue(sheet, cell, value)
		}
	}

	buffer, err := workbook.WriteToBuffer()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to export workbook"})
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="email_history.xlsx"`)
	return ctx.Send(buffer.Bytes())
}
