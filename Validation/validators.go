package Validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	MaxContextLength  = 2000
	MaxAttachments    = 5
	MaxAttachmentSize = 5 << 20 // 5MB
)

// Tones lists the supported style directives, in display order.
var Tones = []string{"Formal", "Friendly", "Persuasive", "Apologetic", "Assertive"}

var allowedMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
	"image/png":  true,
	"image/jpeg": true,
}

// Simple local@domain.tld shape, not full RFC 5322.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const specialChars = "!@#$%^&*"

// PasswordStrength scores a password against five criteria. Score is the
// number of criteria met; Feedback lists the unmet ones in check order.
type PasswordStrength struct {
	Score    int      `json:"score"`
	Feedback []string `json:"feedback"`
}

func CheckPasswordStrength(password string) PasswordStrength {
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}

	strength := PasswordStrength{Feedback: []string{}}
	checks := []struct {
		ok      bool
		message string
	}{
		{len(password) >= 8, "Password must be at least 8 characters"},
		{hasUpper, "Include at least one uppercase letter"},
		{hasLower, "Include at least one lowercase letter"},
		{hasDigit, "Include at least one number"},
		{hasSpecial, "Include at least one special character (!@#$%^&*)"},
	}
	for _, check := range checks {
		if check.ok {
			strength.Score++
		} else {
			strength.Feedback = append(strength.Feedback, check.message)
		}
	}
	return strength
}

func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// CredentialForm carries the sibling values a single field is checked against.
type CredentialForm struct {
	Password     string
	Registration bool
}

// ValidateCredentialField returns an error message for one field, or "" when
// the field passes. Pure function of the given values.
func ValidateCredentialField(name, value string, form CredentialForm) string {
	switch name {
	case "email":
		if !ValidEmail(value) {
			return "Please enter a valid email address"
		}
	case "password":
		if form.Registration {
			if len(value) < 8 {
				return "Password must be at least 8 characters"
			}
			if CheckPasswordStrength(value).Score < 3 {
				return "Password is too weak"
			}
		} else if value == "" {
			return "Password is required"
		}
	case "confirmPassword":
		if value != form.Password {
			return "Passwords do not match"
		}
	}
	return ""
}

// ValidateAddressList checks a comma-separated list of email addresses.
// An empty list is valid.
func ValidateAddressList(list string) error {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	for _, entry := range strings.Split(list, ",") {
		addr := strings.TrimSpace(entry)
		if !ValidEmail(addr) {
			return fmt.Errorf("invalid email address: %s", addr)
		}
	}
	return nil
}

// SplitAddressList converts a comma-separated list into trimmed addresses.
func SplitAddressList(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	var addrs []string
	for _, entry := range strings.Split(list, ",") {
		if addr := strings.TrimSpace(entry); addr != "" {
			addrs = append(addrs, addr)
		}
	}
	return addrs
}

func ValidateContext(context string) error {
	if strings.TrimSpace(context) == "" {
		return fmt.Errorf("context cannot be empty")
	}
	if len(context) > MaxContextLength {
		return fmt.Errorf("context exceeds maximum length of %d characters", MaxContextLength)
	}
	return nil
}

// NormalizeTone maps free-form tone input onto a supported tone,
// defaulting to Formal.
func NormalizeTone(tone string) string {
	cleaned := strings.TrimSpace(tone)
	if cleaned == "" {
		return "Formal"
	}
	cleaned = strings.ToUpper(cleaned[:1]) + strings.ToLower(cleaned[1:])
	for _, valid := range Tones {
		if cleaned == valid {
			return valid
		}
	}
	lowered := strings.ToLower(cleaned)
	for _, valid := range Tones {
		if strings.Contains(lowered, strings.ToLower(valid)) {
			return valid
		}
	}
	return "Formal"
}

func ValidTone(tone string) bool {
	for _, valid := range Tones {
		if tone == valid {
			return true
		}
	}
	return false
}

func AllowedAttachmentType(mimeType string) bool {
	// Strip any parameters, e.g. "text/plain; charset=utf-8"
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = mimeType[:idx]
	}
	return allowedMimeTypes[strings.TrimSpace(strings.ToLower(mimeType))]
}
