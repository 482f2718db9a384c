package main

import (
	"errors"
	"fmt"
	"gmotors/src/config"
	"gmotors/src/db"
	"gmotors/src/lib/mailer"
	"gmotors/src/models"
	"gmotors/src/types"
	"gmotors/src/utils"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errBookingForbidden = errors.New("not allowed to access this booking")

// canAccessBooking scopes a booking to its owner: admins see everything,
// technicians their assigned bookings, customers their own email.
func canAccessBooking(ctx *gin.Context, booking *models.ServiceBooking) bool {
	role, _ := ctx.Get("role")
	switch role {
	case types.ROLE_ADMIN:
		return true
	case types.ROLE_TECHNICIAN:
		profile, err := utils.GetTechnicianProfile(ctx.GetUint("id"))
		if err != nil {
			return false
		}
		return booking.TechnicianID == profile.ID
	default:
		return booking.CustomerEmail == ctx.GetString("email")
	}
}

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var booking models.ServiceBooking
			err := db.Transaction(func(tx *gorm.DB) error {
				var service models.CarService
				if err := tx.
					Model(&models.CarService{}).
					Where(&models.CarService{ID: body.ServiceID, IsActive: true}).
					First(&service).
					Error; err != nil {
					return errors.New("service not found")
				}
				var slot models.Availability
				if err := tx.
					Model(&models.Availability{}).
					Where(&models.Availability{ID: body.SlotID, TechnicianID: body.TechnicianID}).
					First(&slot).
					Error; err != nil {
					return errors.New("slot not found for technician")
				}
				if err := utils.ReserveSlot(tx, slot.ID); err != nil {
					return err
				}
				code, err := utils.NewBookingCode(tx)
				if err != nil {
					return err
				}
				booking = models.ServiceBooking{
					BookingID:           code,
					CustomerName:        body.CustomerName,
					CustomerPhone:       body.CustomerPhone,
					CustomerEmail:       body.CustomerEmail,
					VehicleBrand:        body.VehicleBrand,
					VehicleModel:        body.VehicleModel,
					VehicleRegistration: body.VehicleRegistration,
					ServiceID:           service.ID,
					TechnicianID:        body.TechnicianID,
					SlotID:              &slot.ID,
					Date:                slot.Date,
					Time:                slot.Time,
					TotalAmount:         service.Price,
					Notes:               body.Notes,
				}
				if body.VehicleYear > 0 {
					booking.VehicleYear = &body.VehicleYear
				}
				if err := tx.Create(&booking).Error; err != nil {
					log.Printf("Error creating booking: %s\n", err.Error())
					return errors.New("could not create booking")
				}
				var qr []byte
				if png, err := utils.BookingQRCode(code); err == nil {
					qr = png
				} else {
					log.Printf("Could not render code for booking [%s]: %s\n", code, err.Error())
				}
				mailer.NotifyBookingChange(tx, &booking, "Booking received",
					fmt.Sprintf("Your booking %s for %s on %s at %s has been received. Present the attached code at the service center.",
						code, service.Name, slot.Date.Format(config.DATE_PARSE_FORMAT), slot.Time), qr)
				return nil
			})
			if err != nil {
				if errors.Is(err, utils.ErrSlotTaken) {
					ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": booking})
		}).
		POST("/bookings/validate", func(ctx *gin.Context) {
			var body types.ValidateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			query := db.
				Model(&models.ServiceBooking{}).
				Where("status IN ?", []types.BookingStatus{
					types.BOOKING_PENDING,
					types.BOOKING_CONFIRMED,
					types.BOOKING_IN_PROGRESS,
				})
			if body.CustomerPhone != "" {
				query = query.Where("customer_phone = ?", body.CustomerPhone)
			}
			if body.ServiceID > 0 {
				query = query.Where("service_id = ?", body.ServiceID)
			}
			if body.BookingDate != "" {
				date, err := time.Parse(config.DATE_PARSE_FORMAT, body.BookingDate)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking_date"})
					return
				}
				query = query.Where("date = ?", date)
			}
			var count int64
			if err := query.Count(&count).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": gin.H{"exists": count > 0, "count": count}})
		}).
		GET("/track/bookings/:code", func(ctx *gin.Context) {
			code := ctx.Params.ByName("code")
			db := db.GetDb()
			var booking models.ServiceBooking
			if err := db.
				Model(&models.ServiceBooking{}).
				Where(&models.ServiceBooking{BookingID: code}).
				Preload("Service").
				Preload("Technician").
				First(&booking).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		GET("/timeslots/:date", func(ctx *gin.Context) {
			dateParam := ctx.Params.ByName("date")
			date, err := time.Parse(config.DATE_PARSE_FORMAT, dateParam)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
				return
			}
			db := db.GetDb()
			type slotCount struct {
				Time  string
				Count int64
			}
			var counts []slotCount
			if err := db.
				Model(&models.ServiceBooking{}).
				Select("time, COUNT(*) as count").
				Where("date = ? AND status IN ?", date, []types.BookingStatus{
					types.BOOKING_PENDING,
					types.BOOKING_CONFIRMED,
					types.BOOKING_IN_PROGRESS,
				}).
				Group("time").
				Find(&counts).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			used := map[string]int64{}
			for _, c := range counts {
				used[c.Time] = c.Count
			}
			slots := make([]gin.H, 0, len(config.WALKIN_TIME_SLOTS))
			for _, t := range config.WALKIN_TIME_SLOTS {
				remaining := config.MAX_BOOKINGS_PER_SLOT - used[t]
				if remaining < 0 {
					remaining = 0
				}
				slots = append(slots, gin.H{
					"time":      t,
					"available": remaining > 0,
					"remaining": remaining,
				})
			}
			ctx.JSON(http.StatusOK, gin.H{"data": slots})
		})
	return g
}

func bookingAuthHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/bookings", func(ctx *gin.Context) {
			db := db.GetDb()
			query := db.
				Model(&models.ServiceBooking{}).
				Preload("Service").
				Preload("Technician").
				Order("date DESC, time DESC")
			role, _ := ctx.Get("role")
			switch role {
			case types.ROLE_TECHNICIAN:
				profile, err := utils.GetTechnicianProfile(ctx.GetUint("id"))
				if err != nil {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "technician profile not found"})
					return
				}
				query = query.Where("technician_id = ?", profile.ID)
			case types.ROLE_ADMIN:
				if status := ctx.Query("status"); status != "" {
					query = query.Where("status = ?", status)
				}
			default:
				query = query.Where("customer_email = ?", ctx.GetString("email"))
			}
			var bookings []models.ServiceBooking
			if err := query.Find(&bookings).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var booking models.ServiceBooking
			if err := db.
				Model(&models.ServiceBooking{}).
				Where(&models.ServiceBooking{ID: params.ID}).
				Preload("Service").
				Preload("Technician").
				Preload("Slot").
				First(&booking).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
				return
			}
			if !canAccessBooking(ctx, &booking) {
				ctx.JSON(http.StatusForbidden, gin.H{"error": errBookingForbidden.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		PUT("/bookings/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				var booking models.ServiceBooking
				if err := tx.
					Model(&models.ServiceBooking{}).
					Where("id = ?", params.ID).
					First(&booking).
					Error; err != nil {
					return err
				}
				if !canAccessBooking(ctx, &booking) {
					return errBookingForbidden
				}
				if !utils.CanTransitionBooking(booking.Status, types.BOOKING_CANCELLED) {
					return fmt.Errorf("booking cannot be cancelled from status %s", booking.Status)
				}
				if err := tx.
					Model(&models.ServiceBooking{}).
					Where(&models.ServiceBooking{ID: params.ID}).
					Updates(&models.ServiceBooking{Status: types.BOOKING_CANCELLED}).
					Error; err != nil {
					return err
				}
				if booking.SlotID != nil {
					if err := utils.ReleaseSlot(tx, *booking.SlotID); err != nil {
						return err
					}
				}
				mailer.NotifyBookingChange(tx, &booking, "Booking cancelled",
					fmt.Sprintf("Your booking %s has been cancelled.", booking.BookingID), nil)
				return nil
			})
			if err != nil {
				if errors.Is(err, errBookingForbidden) {
					ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": params.ID})
		}).
		PUT("/bookings/:id/reschedule", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.RescheduleBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var booking models.ServiceBooking
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.
					Model(&models.ServiceBooking{}).
					Where("id = ?", params.ID).
					First(&booking).
					Error; err != nil {
					return err
				}
				if !canAccessBooking(ctx, &booking) {
					return errBookingForbidden
				}
				if !utils.IsActiveBookingStatus(booking.Status) {
					return fmt.Errorf("booking cannot be rescheduled from status %s", booking.Status)
				}
				var slot models.Availability
				if err := tx.
					Model(&models.Availability{}).
					Where(&models.Availability{ID: body.SlotID, TechnicianID: booking.TechnicianID}).
					First(&slot).
					Error; err != nil {
					return errors.New("slot not found for technician")
				}
				if err := utils.ReserveSlot(tx, slot.ID); err != nil {
					return err
				}
				if booking.SlotID != nil {
					if err := utils.ReleaseSlot(tx, *booking.SlotID); err != nil {
						return err
					}
				}
				if err := tx.
					Model(&models.ServiceBooking{}).
					Where(&models.ServiceBooking{ID: booking.ID}).
					Updates(map[string]any{
						"slot_id": slot.ID,
						"date":    slot.Date,
						"time":    slot.Time,
					}).Error; err != nil {
					return err
				}
				booking.SlotID = &slot.ID
				booking.Date = slot.Date
				booking.Time = slot.Time
				mailer.NotifyBookingChange(tx, &booking, "Booking rescheduled",
					fmt.Sprintf("Your booking %s has been moved to %s at %s.",
						booking.BookingID, slot.Date.Format(config.DATE_PARSE_FORMAT), slot.Time), nil)
				return nil
			})
			if err != nil {
				if errors.Is(err, utils.ErrSlotTaken) {
					ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
					return
				}
				if errors.Is(err, errBookingForbidden) {
					ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		})
	return g
}

// bookingStaffHandlers carries the transitions only staff may drive.
func bookingStaffHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		PUT("/bookings/:id/status", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			next := types.BookingStatus(body.Status)
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				var booking models.ServiceBooking
				if err := tx.
					Model(&models.ServiceBooking{}).
					Where("id = ?", params.ID).
					First(&booking).
					Error; err != nil {
					return err
				}
				if !canAccessBooking(ctx, &booking) {
					return errBookingForbidden
				}
				if !utils.CanTransitionBooking(booking.Status, next) {
					return fmt.Errorf("invalid status transition %s -> %s", booking.Status, next)
				}
				if err := tx.
					Model(&models.ServiceBooking{}).
					Where(&models.ServiceBooking{ID: params.ID}).
					Updates(&models.ServiceBooking{Status: next}).
					Error; err != nil {
					return err
				}
				if next == types.BOOKING_CANCELLED && booking.SlotID != nil {
					if err := utils.ReleaseSlot(tx, *booking.SlotID); err != nil {
						return err
					}
				}
				if next == types.BOOKING_CONFIRMED {
					mailer.ScheduleBookingReminder(&booking)
				}
				mailer.NotifyBookingChange(tx, &booking, "Booking updated",
					fmt.Sprintf("Your booking %s is now %s.", booking.BookingID, next), nil)
				return nil
			})
			if err != nil {
				if errors.Is(err, errBookingForbidden) {
					ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": params.ID})
		})
	return g
}
