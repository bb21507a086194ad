package FiberConfig

import (
	"fmt"

	"Quill/Config"
	"Quill/Controllers"
	"Quill/Generation"
	"Quill/Models"
	"Quill/Validation"
	"Quill/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	mailConfig := Models.EmailConfig{
		SMTPServer: Config.AppConfig.SMTPServer,
		SMTPPort:   Config.AppConfig.SMTPPort,
		Username:   Config.AppConfig.SMTPUsername,
		Password:   Config.AppConfig.SMTPPassword,
		FromEmail:  Config.AppConfig.FromEmail,
		FromName:   Config.AppConfig.FromName,
		TLSEnabled: Config.AppConfig.TLSEnabled,
	}

	authController := Controllers.NewAuthController(db)
	emailController := Controllers.NewEmailController(db, Generation.NewClient(), mailConfig)
	historyController := Controllers.NewHistoryController(db)
	resumeController := Controllers.NewResumeController(db)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authController.Register)
	auth.Post("/login", authController.Login)
	auth.Post("/password-strength", authController.PasswordStrength)
	auth.Post("/logout", middleware.Verify(), authController.Logout)
	auth.Get("/validate", middleware.Verify(), authController.ValidateToken)
	auth.Get("/me", middleware.Verify(), authController.CurrentUser)

	emails := api.Group("/email", middleware.Verify())
	emails.Post("/generate", emailController.Generate)
	emails.Post("/send", emailController.Send)
	emails.Get("/draft", emailController.CurrentDraft)
	emails.Post("/draft/undo", emailController.UndoDraft)
	emails.Post("/draft/redo", emailController.RedoDraft)
	emails.Post("/draft/reset", emailController.ResetDraft)

	history := api.Group("/history", middleware.Verify())
	history.Get("/", historyController.GetHistory)
	history.Get("/export.xlsx", historyController.ExportExcel)
	history.Get("/export/:id", historyController.ExportPDF)

	resumes := api.Group("/resume", middleware.Verify())
	resumes.Post("/upload", resumeController.Upload)
	resumes.Post("/match", resumeController.Match)
	resumes.Get("/list", resumeController.GetResumes)
}

func FiberConfig() {
	fmt.Println("Server Up...")
	engine := html.New("./Templates", ".html")
	app := fiber.New(fiber.Config{
		Views:     engine,
		BodyLimit: 30 * 1024 * 1024, // five 5MB attachments plus form overhead
	})
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           300,
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Render("index", fiber.Map{"Tones": Validation.Tones})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupRoutes(app, Models.DB)

	app.Listen(Config.AppConfig.ListenAddr)
}
