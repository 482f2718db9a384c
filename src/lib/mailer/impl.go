package mailer

import (
	"fmt"
	"gmotors/src/db"
	"gmotors/src/lib"
	"gmotors/src/models"
	"gmotors/src/types"
	"log"
	"os"
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

const maxAttempts = 5

// Enqueue persists the message on the caller's transaction, then tries one
// immediate delivery. Writing the row on tx means a rolled-back booking or
// order never leaves a queued email behind. Delivery failures are recorded
// on the queue row, never returned to booking/order code paths.
func Enqueue(tx *gorm.DB, to string, subject string, body string, attachment []byte) {
	if to == "" {
		return
	}
	row := models.EmailQueue{
		Recipient:  to,
		Subject:    subject,
		Body:       body,
		Attachment: attachment,
	}
	if err := tx.Create(&row).Error; err != nil {
		log.Printf("[mailer] Error queueing email for %s: %s\n", to, err.Error())
		return
	}
	go deliver(row.ID.String())
}

func deliver(id string) {
	db := db.GetDb()
	var row models.EmailQueue
	if err := db.Where("id = ?", id).First(&row).Error; err != nil {
		// the enqueueing transaction may not be committed yet (or rolled
		// back); the drain job picks up anything we miss here
		return
	}
	if row.Status == types.EMAIL_SENT {
		return
	}
	err := lib.SendMail(&lib.SendMailInput{
		From:       os.Getenv("MAIL_FROM"),
		FromName:   "Gaurav Motors",
		To:         []string{row.Recipient},
		Subject:    row.Subject,
		Body:       row.Body,
		Html:       row.Html,
		Attachment: row.Attachment,
	})
	now := time.Now()
	updates := models.EmailQueue{Attempts: row.Attempts + 1}
	if err != nil {
		msg := err.Error()
		updates.LastError = &msg
		updates.Status = types.EMAIL_QUEUED
		if updates.Attempts >= maxAttempts {
			updates.Status = types.EMAIL_FAILED
		}
		log.Printf("[mailer] Delivery to %s failed (attempt %d): %s\n", row.Recipient, updates.Attempts, msg)
	} else {
		updates.Status = types.EMAIL_SENT
		updates.SentAt = &now
	}
	if err := db.
		Model(&models.EmailQueue{}).
		Where("id = ?", row.ID).
		Updates(&updates).
		Error; err != nil {
		log.Printf("[mailer] Error updating queue row %s: %s\n", id, err.Error())
	}
}

// DrainQueue retries queued rows. Wired to a gocron DurationJob at boot.
func DrainQueue() {
	db := db.GetDb()
	var pending []models.EmailQueue
	err := db.
		Model(&models.EmailQueue{}).
		Select("id").
		Where(&models.EmailQueue{Status: types.EMAIL_QUEUED}).
		Where("attempts < ?", maxAttempts).
		Order("created_at asc").
		Limit(50).
		Find(&pending).
		Error
	if err != nil {
		log.Printf("[mailer] Error reading queue: %s\n", err.Error())
		return
	}
	if len(pending) == 0 {
		return
	}
	log.Printf("[mailer] Draining %d queued emails\n", len(pending))
	for _, row := range pending {
		deliver(row.ID.String())
	}
}

// NotifyBookingChange records a notification row and queues the matching
// email in one place so every state change goes through the same path.
func NotifyBookingChange(tx *gorm.DB, booking *models.ServiceBooking, title string, body string, attachment []byte) {
	desc := fmt.Sprintf("Booking %s: %s", booking.BookingID, title)
	n := models.Notification{
		ReferenceSource: "bookings",
		ReferenceType:   "ServiceBooking",
		ReferenceValue:  booking.BookingID,
		Title:           title,
		Description:     &desc,
		Type:            "booking",
	}
	if err := tx.Create(&n).Error; err != nil {
		log.Printf("[mailer] Error creating notification for %s: %s\n", booking.BookingID, err.Error())
	}
	Enqueue(tx, booking.CustomerEmail, title, body, attachment)
}

// ScheduleBookingReminder queues a one-time reminder email for the evening
// before the appointment. Bookings confirmed less than a day out get none.
func ScheduleBookingReminder(booking *models.ServiceBooking) {
	date := booking.Date
	runAt := time.Date(date.Year(), date.Month(), date.Day(), 18, 0, 0, 0, time.Local).AddDate(0, 0, -1)
	if runAt.Before(time.Now()) {
		return
	}
	code := booking.BookingID
	_, err := lib.CreateOneTimeCronJob(
		"booking-reminder-"+code,
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(runAt)),
		gocron.NewTask(func(code string) {
			db := db.GetDb()
			var b models.ServiceBooking
			if err := db.
				Model(&models.ServiceBooking{}).
				Where(&models.ServiceBooking{BookingID: code}).
				Preload("Service").
				First(&b).
				Error; err != nil {
				log.Printf("[mailer] Reminder lookup failed for %s: %s\n", code, err.Error())
				return
			}
			if b.Status != types.BOOKING_CONFIRMED {
				return
			}
			service := ""
			if b.Service != nil {
				service = b.Service.Name
			}
			Enqueue(db, b.CustomerEmail, "Appointment reminder",
				fmt.Sprintf("Reminder: your booking %s (%s) is tomorrow at %s.", b.BookingID, service, b.Time), nil)
		}, code),
	)
	if err != nil {
		log.Printf("[mailer] Could not schedule reminder for %s: %s\n", code, err.Error())
	}
}

func NotifyOrderChange(tx *gorm.DB, order *models.PartOrder, title string, body string) {
	desc := fmt.Sprintf("Order %s: %s", order.OrderNumber, title)
	n := models.Notification{
		ReferenceSource: "part_orders",
		ReferenceType:   "PartOrder",
		ReferenceValue:  order.OrderNumber,
		Title:           title,
		Description:     &desc,
		Type:            "order",
	}
	if err := tx.Create(&n).Error; err != nil {
		log.Printf("[mailer] Error creating notification for %s: %s\n", order.OrderNumber, err.Error())
	}
	Enqueue(tx, order.CustomerEmail, title, body, nil)
}
