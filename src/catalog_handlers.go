package main

import (
	"context"
	"encoding/json"
	"gmotors/src/db"
	"gmotors/src/lib"
	"gmotors/src/models"
	"gmotors/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func cachedServiceCategories() []models.ServiceCategory {
	rd := lib.GetRedisClient()
	var categories []models.ServiceCategory
	val := rd.JSONGet(context.Background(), "service-categories").Val()
	if val != "" {
		json.Unmarshal([]byte(val), &categories)
		return categories
	}
	if err := db.GetDb().Find(&categories).Error; err != nil {
		log.Printf("Error loading service categories: %s\n", err.Error())
		return categories
	}
	rd.JSONSet(context.Background(), "service-categories", "$", categories)
	return categories
}

func catalogHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/services", func(ctx *gin.Context) {
			db := db.GetDb()
			query := db.
				Model(&models.CarService{}).
				Where(&models.CarService{IsActive: true}).
				Preload("Category")
			if category := ctx.Query("category"); category != "" {
				query = query.Where("category_id = ?", category)
			}
			if ctx.Query("popular") == "true" {
				query = query.Where("is_popular = ?", true)
			}
			var services []models.CarService
			if err := query.Find(&services).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": services, "count": len(services)})
		}).
		GET("/services/:slug", func(ctx *gin.Context) {
			db := db.GetDb()
			var service models.CarService
			if err := db.
				Model(&models.CarService{}).
				Where(&models.CarService{Slug: ctx.Params.ByName("slug"), IsActive: true}).
				Preload("Category").
				First(&service).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": service})
		}).
		GET("/service-categories", func(ctx *gin.Context) {
			categories := cachedServiceCategories()
			ctx.JSON(http.StatusOK, gin.H{"data": categories, "count": len(categories)})
		}).
		GET("/parts", func(ctx *gin.Context) {
			db := db.GetDb()
			query := db.
				Model(&models.SparePart{}).
				Preload("Category")
			if category := ctx.Query("category"); category != "" {
				query = query.Where("category_id = ?", category)
			}
			if ctx.Query("featured") == "true" {
				query = query.Where("is_featured = ?", true)
			}
			if search := ctx.Query("q"); search != "" {
				query = query.Where("name ILIKE ? OR compatible_brands ILIKE ?", "%"+search+"%", "%"+search+"%")
			}
			var parts []models.SparePart
			if err := query.Find(&parts).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": parts, "count": len(parts)})
		}).
		GET("/parts/:slug", func(ctx *gin.Context) {
			db := db.GetDb()
			var part models.SparePart
			if err := db.
				Model(&models.SparePart{}).
				Where(&models.SparePart{Slug: ctx.Params.ByName("slug")}).
				Preload("Category").
				First(&part).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "part not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": part})
		}).
		GET("/part-categories", func(ctx *gin.Context) {
			db := db.GetDb()
			var categories []models.SparePartCategory
			if err := db.Find(&categories).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": categories, "count": len(categories)})
		}).
		GET("/accessories", func(ctx *gin.Context) {
			db := db.GetDb()
			query := db.
				Model(&models.CarAccessory{}).
				Preload("Category")
			if ctx.Query("featured") == "true" {
				query = query.Where("is_featured = ?", true)
			}
			var accessories []models.CarAccessory
			if err := query.Find(&accessories).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": accessories, "count": len(accessories)})
		}).
		GET("/accessories/:slug", func(ctx *gin.Context) {
			db := db.GetDb()
			var accessory models.CarAccessory
			if err := db.
				Model(&models.CarAccessory{}).
				Where(&models.CarAccessory{Slug: ctx.Params.ByName("slug")}).
				First(&accessory).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "accessory not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": accessory})
		})
	return g
}

func catalogAdminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/services", func(ctx *gin.Context) {
			var body types.CreateServiceRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			service := models.CarService{
				Name:            body.Name,
				Slug:            slug.Make(body.Name),
				CategoryID:      body.CategoryID,
				Price:           body.Price,
				DurationMinutes: body.DurationMinutes,
				Icon:            body.Icon,
				Includes:        body.Includes,
				IsPopular:       body.IsPopular,
				IsActive:        true,
			}
			if body.Description != "" {
				service.Description = &body.Description
			}
			db := db.GetDb()
			if err := db.Create(&service).Error; err != nil {
				log.Printf("Error creating service: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "could not create service"})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": service})
		}).
		PUT("/services/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.CreateServiceRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates := map[string]any{
				"name":             body.Name,
				"category_id":      body.CategoryID,
				"price":            body.Price,
				"duration_minutes": body.DurationMinutes,
				"icon":             body.Icon,
				"includes":         body.Includes,
				"is_popular":       body.IsPopular,
			}
			if body.Description != "" {
				updates["description"] = body.Description
			}
			db := db.GetDb()
			result := db.
				Model(&models.CarService{}).
				Where("id = ?", params.ID).
				Updates(updates)
			if result.Error != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": result.Error.Error()})
				return
			}
			if result.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": params.ID})
		}).
		DELETE("/services/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			// Deactivate instead of delete so past bookings keep their reference.
			result := db.
				Model(&models.CarService{}).
				Where("id = ?", params.ID).
				Update("is_active", false)
			if result.Error != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": result.Error.Error()})
				return
			}
			if result.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": params.ID})
		}).
		POST("/service-categories", func(ctx *gin.Context) {
			var category models.ServiceCategory
			if err := ctx.ShouldBindJSON(&category); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			if err := db.Create(&category).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "could not create category"})
				return
			}
			lib.GetRedisClient().Del(ctx, "service-categories")
			ctx.JSON(http.StatusCreated, gin.H{"data": category})
		}).
		POST("/parts", func(ctx *gin.Context) {
			var body types.CreatePartRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			part := models.SparePart{
				Name:             body.Name,
				Slug:             slug.Make(body.Name),
				CategoryID:       body.CategoryID,
				Brand:            body.Brand,
				Price:            body.Price,
				StockQuantity:    body.StockQuantity,
				ImageURL:         body.ImageURL,
				CompatibleBrands: body.CompatibleBrands,
				WarrantyMonths:   body.WarrantyMonths,
				IsOEM:            body.IsOEM,
				IsFeatured:       body.IsFeatured,
			}
			if body.PartNumber != "" {
				part.PartNumber = &body.PartNumber
			}
			if body.Description != "" {
				part.Description = &body.Description
			}
			db := db.GetDb()
			if err := db.Create(&part).Error; err != nil {
				log.Printf("Error creating part: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "could not create part"})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": part})
		}).
		PUT("/parts/:id/stock", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.AdjustStockRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			result := db.
				Model(&models.SparePart{}).
				Where("id = ? AND stock_quantity + ? >= 0", params.ID, body.Delta).
				Update("stock_quantity", gorm.Expr("stock_quantity + ?", body.Delta))
			if result.Error != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": result.Error.Error()})
				return
			}
			if result.RowsAffected == 0 {
				ctx.JSON(http.StatusConflict, gin.H{"error": "stock cannot go negative"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": params.ID})
		}).
		DELETE("/parts/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			result := db.Delete(&models.SparePart{}, params.ID)
			if result.Error != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": result.Error.Error()})
				return
			}
			if result.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "part not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": params.ID})
		}).
		POST("/part-categories", func(ctx *gin.Context) {
			var category models.SparePartCategory
			if err := ctx.ShouldBindJSON(&category); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			if err := db.Create(&category).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "could not create category"})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": category})
		}).
		POST("/accessories", func(ctx *gin.Context) {
			var accessory models.CarAccessory
			if err := ctx.ShouldBindJSON(&accessory); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			accessory.Slug = slug.Make(accessory.Name)
			db := db.GetDb()
			if err := db.Create(&accessory).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "could not create accessory"})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": accessory})
		})
	return g
}
