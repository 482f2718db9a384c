package main

import (
	"gmotors/src/config"
	"gmotors/src/db"
	"gmotors/src/models"
	"gmotors/src/types"
	"gmotors/src/utils"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

func technicianHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/technicians", func(ctx *gin.Context) {
			db := db.GetDb()
			var technicians []models.TechnicianProfile
			query := db.
				Model(&models.TechnicianProfile{}).
				Preload("Department")
			if dept := ctx.Query("department"); dept != "" {
				query = query.Where("department_id = ?", dept)
			}
			if err := query.Find(&technicians).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": technicians, "count": len(technicians)})
		}).
		GET("/technicians/:id/slots", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			query := db.
				Model(&models.Availability{}).
				Where(&models.Availability{TechnicianID: params.ID, IsAvailable: true}).
				Order("date, time")
			if dateParam := ctx.Query("date"); dateParam != "" {
				date, err := time.Parse(config.DATE_PARSE_FORMAT, dateParam)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
					return
				}
				query = query.Where("date = ?", date)
			} else {
				query = query.Where("date >= ?", time.Now().Truncate(24*time.Hour))
			}
			var slots []models.Availability
			if err := query.Find(&slots).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": slots, "count": len(slots)})
		})
	return g
}

func availabilityHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/slots", func(ctx *gin.Context) {
			profile, err := utils.GetTechnicianProfile(ctx.GetUint("id"))
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "technician profile not found"})
				return
			}
			db := db.GetDb()
			var slots []models.Availability
			if err := db.
				Model(&models.Availability{}).
				Where(&models.Availability{TechnicianID: profile.ID}).
				Where("date >= ?", time.Now().Truncate(24*time.Hour)).
				Order("date, time").
				Find(&slots).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": slots, "count": len(slots)})
		}).
		POST("/slots", func(ctx *gin.Context) {
			var body types.AddSlotsRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			profile, err := utils.GetTechnicianProfile(ctx.GetUint("id"))
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "technician profile not found"})
				return
			}
			slots := make([]models.Availability, 0, len(body.Slots))
			for _, input := range body.Slots {
				date, err := time.Parse(config.DATE_PARSE_FORMAT, input.Date)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid slot date"})
					return
				}
				if _, err := time.Parse(config.TIME_PARSE_FORMAT, input.Time); err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid slot time"})
					return
				}
				slots = append(slots, models.Availability{
					TechnicianID: profile.ID,
					Date:         date,
					Time:         input.Time,
				})
			}
			db := db.GetDb()
			// Re-adding an existing date+time is a no-op, not an error.
			if err := db.
				Clauses(clause.OnConflict{DoNothing: true}).
				Create(&slots).
				Error; err != nil {
				log.Printf("Error creating slots for technician [%d]: %s\n", profile.ID, err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "could not create slots"})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": slots, "count": len(slots)})
		}).
		DELETE("/slots/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			profile, err := utils.GetTechnicianProfile(ctx.GetUint("id"))
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "technician profile not found"})
				return
			}
			db := db.GetDb()
			// A reserved slot belongs to a booking and cannot be withdrawn.
			result := db.
				Where("id = ? AND technician_id = ? AND is_available = ?", params.ID, profile.ID, true).
				Delete(&models.Availability{})
			if result.Error != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": result.Error.Error()})
				return
			}
			if result.RowsAffected == 0 {
				ctx.JSON(http.StatusConflict, gin.H{"error": "slot is reserved or does not exist"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": params.ID})
		})
	return g
}
