package Models

import (
	"time"

	"gorm.io/datatypes"
)

// EmailRecord is one archived email, generated and optionally sent.
type EmailRecord struct {
	Id          uint           `json:"id" gorm:"primaryKey"`
	UserId      uint           `json:"user_id" gorm:"index"`
	Subject     string         `json:"subject" gorm:"size:255;not null"`
	Body        string         `json:"body" gorm:"type:text;not null"`
	Tone        string         `json:"tone" gorm:"size:50"`
	Recipient   string         `json:"recipient" gorm:"size:255"`
	CC          string         `json:"cc" gorm:"size:1024"`
	BCC         string         `json:"bcc" gorm:"size:1024"`
	Attachments datatypes.JSON `json:"attachments,omitempty"`
	Timestamp   time.Time      `json:"timestamp" gorm:"index"`
}

type EmailConfig struct {
	SMTPServer   string
	SMTPPort     int
	Username     string
	Password     string
	FromEmail    string
	FromName     string
	TLSEnabled   bool
	SkipTLSCheck bool
}

// EmailMessage represents an email to be sent
type EmailMessage struct {
	To          []string
	CC          []string
	BCC         []string
	Subject     string
	Body        string
	IsHTML      bool
	Attachments []Attachment
}

// Attachment represents a file attachment
type Attachment struct {
	Filename string `json:"filename"`
	Data     []byte `json:"-"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}
