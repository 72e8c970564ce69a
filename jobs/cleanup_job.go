package jobs

import (
	"log"
	"time"

	"train-feedback-server/services"
)

// CleanupJob periodically removes expired refresh tokens
type CleanupJob struct {
	stopChan chan bool
	interval time.Duration
}

// NewCleanupJob creates a new cleanup job
func NewCleanupJob() *CleanupJob {
	return &CleanupJob{
		stopChan: make(chan bool),
		interval: time.Hour,
	}
}

// Start begins the cleanup job
func (j *CleanupJob) Start() {
	go j.run()
	log.Println("🚀 Token cleanup job started")
}

// Stop stops the cleanup job
func (j *CleanupJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Token cleanup job stopped")
}

// run executes the cleanup job
func (j *CleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			jwtService := services.NewJWTService()
			if err := jwtService.CleanupExpiredTokens(); err != nil {
				log.Printf("❌ Token cleanup failed: %v", err)
			}
		case <-j.stopChan:
			return
		}
	}
}
