package boot

import (
	"gmotors/src/db"
	"gmotors/src/lib"
	"gmotors/src/lib/mailer"
	"gmotors/src/models"
	"log"
	"time"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Department{},
		&models.TechnicianProfile{},
		&models.CustomerProfile{},
		&models.Availability{},
		&models.ServiceCategory{},
		&models.CarService{},
		&models.SparePartCategory{},
		&models.SparePart{},
		&models.CarAccessory{},
		&models.ServiceBooking{},
		&models.CartItem{},
		&models.PartOrder{},
		&models.Payment{},
		&models.Notification{},
		&models.EmailQueue{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	if _, err := lib.CreateCronJob("email-drain", 1*time.Minute, mailer.DrainQueue); err != nil {
		log.Printf("Error scheduling mail queue job: %s\n", err.Error())
		return
	}
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	if err := sched.Shutdown(); err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
	}
}
