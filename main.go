package main

import (
	"log"

	"Quill/Config"
	"Quill/CronJobs"
	"Quill/FiberConfig"
	"Quill/Models"
)

func main() {
	Config.Load()
	Models.Connect()

	sweeper := CronJobs.NewMaintenanceSweeper(Models.DB, Config.AppConfig.PDFFolder, Config.AppConfig.UploadDir)
	if err := sweeper.Start(); err != nil {
		log.Println("Failed to start maintenance sweeper:", err)
	}

	FiberConfig.FiberConfig()
}
