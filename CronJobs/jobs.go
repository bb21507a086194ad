package CronJobs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"Quill/Models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// MaintenanceSweeper periodically removes expired PDF exports and upload
// files that no longer have a matching resume row.
type MaintenanceSweeper struct {
	cronScheduler *cron.Cron
	db            *gorm.DB
	pdfDir        string
	uploadDir     string
	jobID         cron.EntryID
}

func NewMaintenanceSweeper(db *gorm.DB, pdfDir, uploadDir string) *MaintenanceSweeper {
	return &MaintenanceSweeper{
		cronScheduler: cron.New(cron.WithSeconds()),
		db:            db,
		pdfDir:        pdfDir,
		uploadDir:     uploadDir,
	}
}

// Start schedules the sweep to run daily at 3:00 AM.
func (m *MaintenanceSweeper) Start() error {
	var err error
	m.jobID, err = m.cronScheduler.AddFunc("0 0 3 * * *", func() {
		log.Println("Running scheduled maintenance sweep")
		m.runSweep()
	})
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}
	m.cronScheduler.Start()
	return nil
}

// Stop terminates the sweeper
func (m *MaintenanceSweeper) Stop() {
	if m.cronScheduler != nil {
		m.cronScheduler.Stop()
		log.Println("Maintenance sweeper stopped")
	}
}

func (m *MaintenanceSweeper) runSweep() {
	m.sweepExpiredPDFs()
	m.sweepOrphanedUploads()
}

// sweepExpiredPDFs deletes exports older than 24 hours.
func (m *MaintenanceSweeper) sweepExpiredPDFs() {
	entries, err := os.ReadDir(m.pdfDir)
	if err != nil {
		return
	}
	cutoff := time.Now().Add(-24 * time.Hour)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".pdf" {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(m.pdfDir, entry.Name())); err != nil {
			log.Printf("Error removing expired export %s: %v\n", entry.Name(), err)
		}
	}
}

// sweepOrphanedUploads deletes upload files with no Resume row pointing at them.
func (m *MaintenanceSweeper) sweepOrphanedUploads() {
	entries, err := os.ReadDir(m.uploadDir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		storedPath := filepath.Join(m.uploadDir, entry.Name())
		var count int64
		m.db.Model(&Models.Resume{}).Where("stored_path = ?", storedPath).Count(&count)
		if count == 0 {
			if err := os.Remove(storedPath); err != nil {
				log.Printf("Error removing orphaned upload %s: %v\n", entry.Name(), err)
			}
		}
	}
}
