package Models

type User struct {
	Id       uint   `json:"id" gorm:"primaryKey"`
	Email    string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Password []byte `json:"-" gorm:"not null"`
}
