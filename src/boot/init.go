package boot

import (
	"log"
	"tbs/src/common"
	"tbs/src/db"
	"tbs/src/lib"
	"tbs/src/models"
	"time"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.TravelOption{},
		&models.Booking{},
		&models.PassengerDetail{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// InitScheduler starts the in-process scheduler and arms the completion
// sweep that moves confirmed bookings past arrival to COMPLETED.
func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	id, err := lib.CreateCronJob(common.CompleteElapsedTrips, 10*time.Minute)
	if err != nil {
		log.Printf("Error scheduling completion sweep: %s\n", err.Error())
		return
	}
	log.Printf("Scheduled completion sweep: %s\n", *id)
	sched.Start()

	// Catch up on anything that elapsed while the service was down.
	go common.CompleteElapsedTrips()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	err = sched.Shutdown()
	if err != nil {
		log.Println("An error has occurred while shutting stopping Scheduler. Check logs for info")
		return
	}
}
