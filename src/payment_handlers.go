package main

import (
	"encoding/json"
	"gmotors/src/db"
	"gmotors/src/models"
	"gmotors/src/types"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"gorm.io/gorm"
)

func stripeWebhookRoute(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.POST("/webhook/stripe", func(ctx *gin.Context) {
		payload, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			log.Printf("Error reading request body: %s\n", err.Error())
			ctx.Status(http.StatusServiceUnavailable)
			return
		}
		whsecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
		event, err := webhook.ConstructEvent(payload, ctx.GetHeader("Stripe-Signature"), whsecret)
		if err != nil {
			log.Printf("Error verifying webhook signature: %s\n", err.Error())
			ctx.Status(http.StatusBadRequest)
			return
		}
		log.Printf("[StripeEvent] %s\n", event.Type)
		switch event.Type {
		case "checkout.session.completed":
			var session stripe.CheckoutSession
			if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
				log.Printf("[Stripe] Error parsing CheckoutSession: %s\n", err.Error())
				break
			}
			numbers := strings.Split(session.Metadata["order_numbers"], ",")
			db := db.GetDb()
			for _, number := range numbers {
				if number == "" {
					continue
				}
				err := db.Transaction(func(tx *gorm.DB) error {
					var order models.PartOrder
					if err := tx.
						Model(&models.PartOrder{}).
						Where(&models.PartOrder{OrderNumber: number}).
						First(&order).
						Error; err != nil {
						return err
					}
					return settleNextPayment(tx, &order, "stripe")
				})
				if err != nil {
					log.Printf("Error settling payment for order [%s]: %s\n", number, err.Error())
				}
			}
		case "checkout.session.expired":
			var session stripe.CheckoutSession
			if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
				log.Printf("[Stripe] Error parsing CheckoutSession: %s\n", err.Error())
				break
			}
			db := db.GetDb()
			if err := db.
				Model(&models.Payment{}).
				Where("checkout_session_id = ? AND status = ?", session.ID, types.PAYMENT_PENDING).
				Update("checkout_session_id", nil).
				Error; err != nil {
				log.Printf("Error clearing expired session [%s]: %s\n", session.ID, err.Error())
			}
		}
		ctx.Status(http.StatusOK)
	})
	return apiv1
}
