package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"gmotors/src/db"
	"gmotors/src/models"
	"gmotors/src/types"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errTechnicianNotFound = errors.New("technician not found")

func adminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/stats", func(ctx *gin.Context) {
			db := db.GetDb()
			type statusCount struct {
				Status string
				Count  int64
			}
			var bookingCounts []statusCount
			if err := db.
				Model(&models.ServiceBooking{}).
				Select("status, COUNT(*) as count").
				Group("status").
				Find(&bookingCounts).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			var orderCounts []statusCount
			if err := db.
				Model(&models.PartOrder{}).
				Select("status, COUNT(*) as count").
				Group("status").
				Find(&orderCounts).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			var revenue float64
			if err := db.
				Model(&models.Payment{}).
				Where("status = ?", types.PAYMENT_PAID).
				Select("COALESCE(SUM(amount), 0)").
				Scan(&revenue).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			var lowStock int64
			if err := db.
				Model(&models.SparePart{}).
				Where("stock_quantity < ?", 5).
				Count(&lowStock).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			var customers int64
			db.Model(&models.User{}).Where("role = ?", types.ROLE_CUSTOMER).Count(&customers)
			bookings := gin.H{}
			for _, c := range bookingCounts {
				bookings[c.Status] = c.Count
			}
			orders := gin.H{}
			for _, c := range orderCounts {
				orders[c.Status] = c.Count
			}
			ctx.JSON(http.StatusOK, gin.H{"data": gin.H{
				"bookings":        bookings,
				"orders":          orders,
				"revenue":         revenue,
				"low_stock_parts": lowStock,
				"customers":       customers,
			}})
		}).
		GET("/bookings/export", func(ctx *gin.Context) {
			db := db.GetDb()
			query := db.
				Model(&models.ServiceBooking{}).
				Preload("Service").
				Preload("Technician").
				Order("date, time")
			if from := ctx.Query("from"); from != "" {
				query = query.Where("date >= ?", from)
			}
			if to := ctx.Query("to"); to != "" {
				query = query.Where("date <= ?", to)
			}
			var bookings []models.ServiceBooking
			if err := query.Find(&bookings).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			filename := fmt.Sprintf("bookings-%s.csv", time.Now().Format("20060102"))
			ctx.Header("Content-Type", "text/csv")
			ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
			w := csv.NewWriter(ctx.Writer)
			w.Write([]string{"booking_id", "customer_name", "customer_phone", "service", "technician", "date", "time", "status", "payment_status", "total_amount"})
			for _, b := range bookings {
				service, technician := "", ""
				if b.Service != nil {
					service = b.Service.Name
				}
				if b.Technician != nil {
					technician = b.Technician.Name
				}
				w.Write([]string{
					b.BookingID,
					b.CustomerName,
					b.CustomerPhone,
					service,
					technician,
					b.Date.Format("2006-01-02"),
					b.Time,
					string(b.Status),
					string(b.PaymentStatus),
					strconv.FormatFloat(b.TotalAmount, 'f', 2, 64),
				})
			}
			w.Flush()
		}).
		GET("/orders/export", func(ctx *gin.Context) {
			db := db.GetDb()
			var orders []models.PartOrder
			if err := db.
				Model(&models.PartOrder{}).
				Preload("Part").
				Preload("Accessory").
				Order("created_at").
				Find(&orders).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			filename := fmt.Sprintf("orders-%s.csv", time.Now().Format("20060102"))
			ctx.Header("Content-Type", "text/csv")
			ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
			w := csv.NewWriter(ctx.Writer)
			w.Write([]string{"order_number", "customer_name", "customer_phone", "item", "quantity", "total_price", "advance_amount", "remaining_amount", "status", "payment_status"})
			for _, o := range orders {
				item := ""
				if o.Part != nil {
					item = o.Part.Name
				}
				if o.Accessory != nil {
					item = o.Accessory.Name
				}
				w.Write([]string{
					o.OrderNumber,
					o.CustomerName,
					o.CustomerPhone,
					item,
					strconv.Itoa(o.Quantity),
					strconv.FormatFloat(o.TotalPrice, 'f', 2, 64),
					strconv.FormatFloat(o.AdvanceAmount, 'f', 2, 64),
					strconv.FormatFloat(o.RemainingAmount, 'f', 2, 64),
					string(o.Status),
					string(o.PaymentStatus),
				})
			}
			w.Flush()
		}).
		GET("/users", func(ctx *gin.Context) {
			db := db.GetDb()
			query := db.
				Model(&models.User{}).
				Preload("TechnicianProfile").
				Preload("CustomerProfile")
			if role := ctx.Query("role"); role != "" {
				query = query.Where("role = ?", role)
			}
			var users []models.User
			if err := query.Find(&users).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": users, "count": len(users)})
		}).
		POST("/departments", func(ctx *gin.Context) {
			var department models.Department
			if err := ctx.ShouldBindJSON(&department); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			if err := db.Create(&department).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "could not create department"})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": department})
		}).
		GET("/departments", func(ctx *gin.Context) {
			db := db.GetDb()
			var departments []models.Department
			if err := db.Preload("Technicians").Find(&departments).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": departments, "count": len(departments)})
		}).
		DELETE("/technicians/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				var active int64
				if err := tx.
					Model(&models.ServiceBooking{}).
					Where("technician_id = ? AND status IN ?", params.ID, []types.BookingStatus{
						types.BOOKING_PENDING,
						types.BOOKING_CONFIRMED,
						types.BOOKING_IN_PROGRESS,
					}).
					Count(&active).
					Error; err != nil {
					return err
				}
				if active > 0 {
					return fmt.Errorf("technician has %d active bookings", active)
				}
				if err := tx.
					Where("technician_id = ? AND is_available = ?", params.ID, true).
					Delete(&models.Availability{}).
					Error; err != nil {
					return err
				}
				result := tx.Delete(&models.TechnicianProfile{}, params.ID)
				if result.Error != nil {
					return result.Error
				}
				if result.RowsAffected == 0 {
					return errTechnicianNotFound
				}
				return nil
			})
			if err != nil {
				if errors.Is(err, errTechnicianNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": params.ID})
		}).
		GET("/notifications", func(ctx *gin.Context) {
			db := db.GetDb()
			var notifications []models.Notification
			if err := db.
				Model(&models.Notification{}).
				Order("created_at DESC").
				Limit(100).
				Find(&notifications).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": notifications, "count": len(notifications)})
		})
	return g
}
