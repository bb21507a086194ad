package Models

import (
	"log"

	"Quill/Config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	connection, err := gorm.Open(sqlite.Open(Config.AppConfig.DBPath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	DB = connection

	// Users first, records and resumes reference them
	DB.AutoMigrate(&User{})
	DB.AutoMigrate(
		&EmailRecord{},
		&Resume{},
	)
}
