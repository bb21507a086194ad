package Controllers

import (
	"strconv"
	"strings"
	"time"

	"Quill/Config"
	"Quill/Models"
	"Quill/Validation"
	"Quill/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthController handles registration, login and token checks.
type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

type credentialsInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register creates a new account. Errors carry a "field" so clients can show
// them inline next to the offending input.
func (a *AuthController) Register(ctx *fiber.Ctx) error {
	var input credentialsInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if fields := Validation.Struct(input); fields != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and password are required",
		})
	}

	if !Validation.ValidEmail(input.Email) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Please enter a valid email address",
			"field": "email",
		})
	}
	strength := Validation.CheckPasswordStrength(input.Password)
	if len(input.Password) < 8 || strength.Score < 3 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":    "Password is too weak",
			"field":    "password",
			"feedback": strength.Feedback,
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to register user"})
	}

	user := Models.User{Email: input.Email, Password: hashed}
	if result := a.DB.Create(&user); result.Error != nil {
		if strings.Contains(result.Error.Error(), "UNIQUE constraint") ||
			strings.Contains(result.Error.Error(), "Duplicate entry") {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Email already exists",
				"field": "email",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to register user"})
	}

	token, err := a.issueToken(user)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to issue token"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":   token,
		"user_id": strconv.FormatUint(uint64(user.Id), 10),
	})
}

// Login exchanges credentials for a bearer token.
func (a *AuthController) Login(ctx *fiber.Ctx) error {
	var input credentialsInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user Models.User
	result := a.DB.Where("email = ?", input.Email).First(&user)
	if result.Error != nil || bcrypt.CompareHashAndPassword(user.Password, []byte(input.Password)) != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
			"field": "password",
		})
	}

	token, err := a.issueToken(user)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to issue token"})
	}
	return ctx.JSON(fiber.Map{
		"token":   token,
		"user_id": strconv.FormatUint(uint64(user.Id), 10),
	})
}

func (a *AuthController) issueToken(user Models.User) (string, error) {
	claims := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Issuer:    strconv.FormatUint(uint64(user.Id), 10),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(Config.AppConfig.JWTExpiration)),
	})
	return claims.SignedString([]byte(Config.AppConfig.JWTSecret))
}

// ValidateToken confirms the bearer token is still accepted.
func (a *AuthController) ValidateToken(ctx *fiber.Ctx) error {
	user := middleware.CurrentUser(ctx)
	return ctx.JSON(fiber.Map{"valid": true, "user_id": user.Id})
}

// CurrentUser returns the authenticated user's profile.
func (a *AuthController) CurrentUser(ctx *fiber.Ctx) error {
	return ctx.JSON(middleware.CurrentUser(ctx))
}

// Logout is a no-op for bearer tokens; clients discard their session.
func (a *AuthController) Logout(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"message": "Logged out"})
}

// PasswordStrength scores a candidate password for live feedback.
func (a *AuthController) PasswordStrength(ctx *fiber.Ctx) error {
	var input struct {
		Password string `json:"password"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(Validation.CheckPasswordStrength(input.Password))
}
