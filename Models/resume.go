package Models

import "time"

// Resume is an uploaded CV kept on disk, referenced by path.
type Resume struct {
	Id         uint      `json:"id" gorm:"primaryKey"`
	UserId     uint      `json:"user_id" gorm:"index"`
	Filename   string    `json:"filename" gorm:"size:255;not null"`
	StoredPath string    `json:"-" gorm:"size:512;not null"`
	UploadedAt time.Time `json:"uploaded_at"`
}
