package main

import (
	"errors"
	"fmt"
	"gmotors/src/db"
	"gmotors/src/lib"
	"gmotors/src/lib/mailer"
	"gmotors/src/models"
	"gmotors/src/types"
	"gmotors/src/utils"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type orderLine struct {
	PartID      *uint
	AccessoryID *uint
	Quantity    int
}

// createPartOrder runs the full pipeline for one order line: stock
// decrement, price derivation and the pending advance payment row.
func createPartOrder(tx *gorm.DB, line orderLine, body *types.CheckoutRequestBody, customerId *uint) (*models.PartOrder, error) {
	var name string
	var unitPrice float64
	switch {
	case line.PartID != nil:
		var part models.SparePart
		if err := tx.
			Model(&models.SparePart{}).
			Where("id = ?", *line.PartID).
			First(&part).
			Error; err != nil {
			return nil, errors.New("part not found")
		}
		if err := utils.DecrementStock(tx, part.ID, line.Quantity); err != nil {
			return nil, fmt.Errorf("%w: %s", err, part.Name)
		}
		name, unitPrice = part.Name, part.Price
	case line.AccessoryID != nil:
		var accessory models.CarAccessory
		if err := tx.
			Model(&models.CarAccessory{}).
			Where("id = ?", *line.AccessoryID).
			First(&accessory).
			Error; err != nil {
			return nil, errors.New("accessory not found")
		}
		if err := utils.DecrementAccessoryStock(tx, accessory.ID, line.Quantity); err != nil {
			return nil, fmt.Errorf("%w: %s", err, accessory.Name)
		}
		name, unitPrice = accessory.Name, accessory.Price
	default:
		return nil, errors.New("order line has no part or accessory")
	}

	quote, err := utils.PriceOrder(unitPrice, line.Quantity, body.Installation)
	if err != nil {
		return nil, err
	}
	order := models.PartOrder{
		OrderNumber:        utils.NewOrderNumber(),
		CustomerID:         customerId,
		CustomerName:       body.CustomerName,
		CustomerPhone:      body.CustomerPhone,
		CustomerEmail:      body.CustomerEmail,
		PartID:             line.PartID,
		AccessoryID:        line.AccessoryID,
		Quantity:           quote.Quantity,
		UnitPrice:          quote.UnitPrice,
		Subtotal:           quote.Subtotal,
		InstallationNeeded: body.Installation,
		InstallationCharge: quote.InstallationCharge,
		TotalPrice:         quote.TotalPrice,
		AdvanceAmount:      quote.AdvanceAmount,
		RemainingAmount:    quote.RemainingAmount,
		CarBrand:           body.CarBrand,
		CarModel:           body.CarModel,
		Notes:              body.Notes,
	}
	if body.CarYear > 0 {
		order.CarYear = &body.CarYear
	}
	if err := tx.Create(&order).Error; err != nil {
		log.Printf("Error creating order: %s\n", err.Error())
		return nil, errors.New("could not create order")
	}
	payment := models.Payment{
		OrderID: &order.ID,
		Kind:    types.PAYMENT_ADVANCE,
		Amount:  order.AdvanceAmount,
	}
	if err := tx.Create(&payment).Error; err != nil {
		return nil, err
	}
	mailer.NotifyOrderChange(tx, &order, "Order received",
		fmt.Sprintf("Your order %s for %d x %s has been received. Total %.2f, advance due %.2f.",
			order.OrderNumber, order.Quantity, name, order.TotalPrice, order.AdvanceAmount))
	return &order, nil
}

func cartHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/cart", func(ctx *gin.Context) {
			profile, err := utils.GetCustomerProfile(ctx.GetUint("id"))
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "customer profile not found"})
				return
			}
			db := db.GetDb()
			var items []models.CartItem
			if err := db.
				Model(&models.CartItem{}).
				Where(&models.CartItem{CustomerID: profile.ID}).
				Preload("Part").
				Preload("Accessory").
				Find(&items).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			var subtotal float64
			for _, item := range items {
				if item.Part != nil {
					subtotal += item.Part.Price * float64(item.Quantity)
				}
				if item.Accessory != nil {
					subtotal += item.Accessory.Price * float64(item.Quantity)
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"data": items, "count": len(items), "subtotal": subtotal})
		}).
		POST("/cart", func(ctx *gin.Context) {
			var body types.AddToCartRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if (body.PartID == 0) == (body.AccessoryID == 0) {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "exactly one of part_id or accessory_id is required"})
				return
			}
			profile, err := utils.GetCustomerProfile(ctx.GetUint("id"))
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "customer profile not found"})
				return
			}
			db := db.GetDb()
			var item models.CartItem
			err = db.Transaction(func(tx *gorm.DB) error {
				query := tx.
					Model(&models.CartItem{}).
					Where("customer_id = ?", profile.ID)
				if body.PartID > 0 {
					var part models.SparePart
					if err := tx.First(&part, body.PartID).Error; err != nil {
						return errors.New("part not found")
					}
					if part.StockQuantity < body.Quantity {
						return utils.ErrInsufficientStock
					}
					query = query.Where("part_id = ?", body.PartID)
				} else {
					var accessory models.CarAccessory
					if err := tx.First(&accessory, body.AccessoryID).Error; err != nil {
						return errors.New("accessory not found")
					}
					query = query.Where("accessory_id = ?", body.AccessoryID)
				}
				if err := query.First(&item).Error; err != nil {
					if !errors.Is(err, gorm.ErrRecordNotFound) {
						return err
					}
					item = models.CartItem{
						CustomerID: profile.ID,
						Quantity:   body.Quantity,
					}
					if body.PartID > 0 {
						item.PartID = &body.PartID
					} else {
						item.AccessoryID = &body.AccessoryID
					}
					return tx.Create(&item).Error
				}
				// same line again: merge quantities
				return tx.
					Model(&models.CartItem{}).
					Where("id = ?", item.ID).
					Update("quantity", gorm.Expr("quantity + ?", body.Quantity)).
					Error
			})
			if err != nil {
				if errors.Is(err, utils.ErrInsufficientStock) {
					ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": item})
		}).
		PUT("/cart/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body struct {
				Quantity int `json:"quantity" binding:"required,min=1"`
			}
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			profile, err := utils.GetCustomerProfile(ctx.GetUint("id"))
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "customer profile not found"})
				return
			}
			db := db.GetDb()
			result := db.
				Model(&models.CartItem{}).
				Where("id = ? AND customer_id = ?", params.ID, profile.ID).
				Update("quantity", body.Quantity)
			if result.Error != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": result.Error.Error()})
				return
			}
			if result.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": params.ID})
		}).
		DELETE("/cart/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			profile, err := utils.GetCustomerProfile(ctx.GetUint("id"))
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "customer profile not found"})
				return
			}
			db := db.GetDb()
			result := db.
				Where("id = ? AND customer_id = ?", params.ID, profile.ID).
				Delete(&models.CartItem{})
			if result.Error != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": result.Error.Error()})
				return
			}
			if result.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": params.ID})
		}).
		DELETE("/cart", func(ctx *gin.Context) {
			profile, err := utils.GetCustomerProfile(ctx.GetUint("id"))
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "customer profile not found"})
				return
			}
			db := db.GetDb()
			if err := db.
				Where("customer_id = ?", profile.ID).
				Delete(&models.CartItem{}).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": "cart cleared"})
		}).
		POST("/cart/checkout", func(ctx *gin.Context) {
			var body types.CheckoutRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			profile, err := utils.GetCustomerProfile(ctx.GetUint("id"))
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "customer profile not found"})
				return
			}
			db := db.GetDb()
			var orders []models.PartOrder
			err = db.Transaction(func(tx *gorm.DB) error {
				var items []models.CartItem
				if err := tx.
					Model(&models.CartItem{}).
					Where(&models.CartItem{CustomerID: profile.ID}).
					Find(&items).
					Error; err != nil {
					return err
				}
				if len(items) == 0 {
					return errors.New("cart is empty")
				}
				for _, item := range items {
					order, err := createPartOrder(tx, orderLine{
						PartID:      item.PartID,
						AccessoryID: item.AccessoryID,
						Quantity:    item.Quantity,
					}, &body, &profile.ID)
					if err != nil {
						return err
					}
					orders = append(orders, *order)
				}
				return tx.
					Where("customer_id = ?", profile.ID).
					Delete(&models.CartItem{}).
					Error
			})
			if err != nil {
				if errors.Is(err, utils.ErrInsufficientStock) {
					ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}

			var totalAdvance float64
			numbers := make([]string, 0, len(orders))
			for _, order := range orders {
				totalAdvance += order.AdvanceAmount
				numbers = append(numbers, order.OrderNumber)
			}
			ref := strings.Join(numbers, ",")
			url, sessionId, err := lib.CreateAdvanceCheckout(numbers[0],
				fmt.Sprintf("Advance payment for order(s) %s", ref), totalAdvance,
				map[string]string{"order_numbers": ref})
			if err != nil {
				log.Printf("Error creating checkout session for %s: %s\n", ref, err.Error())
				ctx.JSON(http.StatusCreated, gin.H{"data": orders, "count": len(orders)})
				return
			}
			if err := db.
				Model(&models.Payment{}).
				Where("order_id IN (SELECT id FROM part_orders WHERE order_number IN ?)", numbers).
				Update("checkout_session_id", *sessionId).
				Error; err != nil {
				log.Printf("Error tagging payments with session [%s]: %s\n", *sessionId, err.Error())
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": orders, "count": len(orders), "payment_url": url})
		})
	return g
}

func orderHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/orders", func(ctx *gin.Context) {
			var body types.CreateOrderRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var order *models.PartOrder
			err := db.Transaction(func(tx *gorm.DB) error {
				created, err := createPartOrder(tx, orderLine{
					PartID:   &body.PartID,
					Quantity: body.Quantity,
				}, &types.CheckoutRequestBody{
					CustomerName:  body.CustomerName,
					CustomerPhone: body.CustomerPhone,
					CustomerEmail: body.CustomerEmail,
					CarBrand:      body.CarBrand,
					CarModel:      body.CarModel,
					CarYear:       body.CarYear,
					Installation:  body.Installation,
					Notes:         body.Notes,
				}, nil)
				if err != nil {
					return err
				}
				order = created
				return nil
			})
			if err != nil {
				if errors.Is(err, utils.ErrInsufficientStock) {
					ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			url, sessionId, err := lib.CreateAdvanceCheckout(order.OrderNumber,
				fmt.Sprintf("Advance payment for order %s", order.OrderNumber),
				order.AdvanceAmount, map[string]string{"order_numbers": order.OrderNumber})
			if err != nil {
				log.Printf("Error creating checkout session for %s: %s\n", order.OrderNumber, err.Error())
				ctx.JSON(http.StatusCreated, gin.H{"data": order})
				return
			}
			if err := db.
				Model(&models.Payment{}).
				Where("order_id = ?", order.ID).
				Update("checkout_session_id", *sessionId).
				Error; err != nil {
				log.Printf("Error tagging payment with session [%s]: %s\n", *sessionId, err.Error())
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": order, "payment_url": url})
		}).
		GET("/orders", func(ctx *gin.Context) {
			phone := ctx.Query("phone")
			email := ctx.Query("email")
			if phone == "" && email == "" {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "phone or email query is required"})
				return
			}
			db := db.GetDb()
			query := db.
				Model(&models.PartOrder{}).
				Preload("Part").
				Preload("Accessory").
				Order("created_at DESC")
			if phone != "" {
				query = query.Where("customer_phone = ?", phone)
			}
			if email != "" {
				query = query.Where("customer_email = ?", email)
			}
			var orders []models.PartOrder
			if err := query.Find(&orders).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": orders, "count": len(orders)})
		}).
		GET("/orders/:number", func(ctx *gin.Context) {
			number := ctx.Params.ByName("number")
			db := db.GetDb()
			query := db.
				Model(&models.PartOrder{}).
				Where(&models.PartOrder{OrderNumber: number}).
				Preload("Part").
				Preload("Accessory").
				Preload("Payments")
			if phone := ctx.Query("phone"); phone != "" {
				query = query.Where("customer_phone = ?", phone)
			}
			var order models.PartOrder
			if err := query.First(&order).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": order})
		}).
		POST("/payments/confirm", func(ctx *gin.Context) {
			var body types.ConfirmPaymentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var order models.PartOrder
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.
					Model(&models.PartOrder{}).
					Where(&models.PartOrder{OrderNumber: body.OrderNumber}).
					First(&order).
					Error; err != nil {
					return errors.New("order not found")
				}
				return settleNextPayment(tx, &order, body.Method)
			})
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": order})
		})
	return g
}

// settleNextPayment marks the advance paid first; a second confirmation
// settles the balance and closes out the order's payment status.
func settleNextPayment(tx *gorm.DB, order *models.PartOrder, method string) error {
	if order.Status == types.ORDER_CANCELLED {
		return errors.New("order is cancelled")
	}
	var advance models.Payment
	err := tx.
		Model(&models.Payment{}).
		Where(&models.Payment{OrderID: &order.ID, Kind: types.PAYMENT_ADVANCE}).
		First(&advance).
		Error
	if err != nil {
		return errors.New("no advance payment found for order")
	}
	if advance.Status != types.PAYMENT_PAID {
		if err := tx.
			Model(&models.Payment{}).
			Where("id = ?", advance.ID).
			Updates(&models.Payment{Status: types.PAYMENT_PAID, Method: method}).
			Error; err != nil {
			return err
		}
		if utils.CanTransitionOrder(order.Status, types.ORDER_CONFIRMED) {
			if err := tx.
				Model(&models.PartOrder{}).
				Where("id = ?", order.ID).
				Updates(&models.PartOrder{Status: types.ORDER_CONFIRMED}).
				Error; err != nil {
				return err
			}
			order.Status = types.ORDER_CONFIRMED
		}
		mailer.NotifyOrderChange(tx, order, "Advance received",
			fmt.Sprintf("We received your advance of %.2f for order %s. Balance of %.2f is due on delivery.",
				order.AdvanceAmount, order.OrderNumber, order.RemainingAmount))
		return nil
	}
	if order.PaymentStatus == types.PAYMENT_PAID {
		return errors.New("order is already fully paid")
	}
	balance := models.Payment{
		OrderID: &order.ID,
		Kind:    types.PAYMENT_BALANCE,
		Amount:  order.RemainingAmount,
		Status:  types.PAYMENT_PAID,
		Method:  method,
	}
	if err := tx.Create(&balance).Error; err != nil {
		return err
	}
	if err := tx.
		Model(&models.PartOrder{}).
		Where("id = ?", order.ID).
		Updates(&models.PartOrder{PaymentStatus: types.PAYMENT_PAID}).
		Error; err != nil {
		return err
	}
	order.PaymentStatus = types.PAYMENT_PAID
	mailer.NotifyOrderChange(tx, order, "Payment complete",
		fmt.Sprintf("Order %s is fully paid. Thank you!", order.OrderNumber))
	return nil
}

func orderAdminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/orders", func(ctx *gin.Context) {
			db := db.GetDb()
			query := db.
				Model(&models.PartOrder{}).
				Preload("Part").
				Preload("Accessory").
				Order("created_at DESC")
			if status := ctx.Query("status"); status != "" {
				query = query.Where("status = ?", status)
			}
			var orders []models.PartOrder
			if err := query.Find(&orders).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": orders, "count": len(orders)})
		}).
		PUT("/orders/:id/status", func(ctx *gin.Context) {
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
			next := types.OrderStatus(body.Status)
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				var order models.PartOrder
				if err := tx.
					Model(&models.PartOrder{}).
					Where("id = ?", params.ID).
					First(&order).
					Error; err != nil {
					return err
				}
				if !utils.CanTransitionOrder(order.Status, next) {
					return fmt.Errorf("invalid status transition %s -> %s", order.Status, next)
				}
				if err := tx.
					Model(&models.PartOrder{}).
					Where("id = ?", order.ID).
					Updates(&models.PartOrder{Status: next}).
					Error; err != nil {
					return err
				}
				if next == types.ORDER_CANCELLED {
					if err := restockOrder(tx, &order); err != nil {
						return err
					}
				}
				mailer.NotifyOrderChange(tx, &order, "Order updated",
					fmt.Sprintf("Your order %s is now %s.", order.OrderNumber, next))
				return nil
			})
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": params.ID})
		}).
		PUT("/orders/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				var order models.PartOrder
				if err := tx.
					Model(&models.PartOrder{}).
					Where("id = ?", params.ID).
					First(&order).
					Error; err != nil {
					return err
				}
				if !utils.CanTransitionOrder(order.Status, types.ORDER_CANCELLED) {
					return fmt.Errorf("order cannot be cancelled from status %s", order.Status)
				}
				if err := tx.
					Model(&models.PartOrder{}).
					Where("id = ?", order.ID).
					Updates(&models.PartOrder{Status: types.ORDER_CANCELLED}).
					Error; err != nil {
					return err
				}
				if err := restockOrder(tx, &order); err != nil {
					return err
				}
				mailer.NotifyOrderChange(tx, &order, "Order cancelled",
					fmt.Sprintf("Your order %s has been cancelled.", order.OrderNumber))
				return nil
			})
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": params.ID})
		})
	return g
}

func restockOrder(tx *gorm.DB, order *models.PartOrder) error {
	if order.PartID != nil {
		return utils.RestoreStock(tx, *order.PartID, order.Quantity)
	}
	if order.AccessoryID != nil {
		return utils.RestoreAccessoryStock(tx, *order.AccessoryID, order.Quantity)
	}
	return nil
}
