package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type Metadata map[string]any

type Role string

const (
	ROLE_ADMIN      Role = "admin"
	ROLE_TECHNICIAN Role = "technician"
	ROLE_CUSTOMER   Role = "customer"
)

type BookingStatus string

const (
	BOOKING_PENDING     BookingStatus = "Pending"
	BOOKING_CONFIRMED   BookingStatus = "Confirmed"
	BOOKING_IN_PROGRESS BookingStatus = "In Progress"
	BOOKING_COMPLETED   BookingStatus = "Completed"
	BOOKING_CANCELLED   BookingStatus = "Cancelled"
)

type OrderStatus string

const (
	ORDER_PENDING    OrderStatus = "Pending"
	ORDER_CONFIRMED  OrderStatus = "Confirmed"
	ORDER_PROCESSING OrderStatus = "Processing"
	ORDER_SHIPPED    OrderStatus = "Shipped"
	ORDER_DELIVERED  OrderStatus = "Delivered"
	ORDER_CANCELLED  OrderStatus = "Cancelled"
)

type PaymentStatus string

const (
	PAYMENT_PENDING  PaymentStatus = "Pending"
	PAYMENT_PAID     PaymentStatus = "Paid"
	PAYMENT_REFUNDED PaymentStatus = "Refunded"
)

type PaymentKind string

const (
	PAYMENT_ADVANCE PaymentKind = "advance"
	PAYMENT_BALANCE PaymentKind = "balance"
)

type EmailStatus string

const (
	EMAIL_QUEUED  EmailStatus = "queued"
	EMAIL_SENT    EmailStatus = "sent"
	EMAIL_FAILED  EmailStatus = "failed"
	EMAIL_SKIPPED EmailStatus = "skipped"
)

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type RegisterUserRequestBody struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=admin technician customer"`
	Name     string `json:"name" binding:"required"`
	Contact  string `json:"contact,omitempty"`
	// Technician-only fields.
	Specialization string `json:"specialization,omitempty"`
	DepartmentID   uint   `json:"department,omitempty"`
}

type LoginRequestBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type CreateBookingRequestBody struct {
	CustomerName        string `json:"customer_name" binding:"required"`
	CustomerPhone       string `json:"customer_phone" binding:"required,min=10"`
	CustomerEmail       string `json:"customer_email,omitempty" binding:"omitempty,email"`
	VehicleBrand        string `json:"vehicle_brand,omitempty"`
	VehicleModel        string `json:"vehicle_model" binding:"required"`
	VehicleYear         int    `json:"vehicle_year,omitempty"`
	VehicleRegistration string `json:"vehicle_registration,omitempty"`
	ServiceID           uint   `json:"service_id" binding:"required"`
	TechnicianID        uint   `json:"technician_id" binding:"required"`
	SlotID              uint   `json:"slot_id" binding:"required"`
	Notes               string `json:"notes,omitempty"`
}

type ValidateBookingRequestBody struct {
	CustomerPhone string `json:"customer_phone,omitempty"`
	ServiceID     uint   `json:"service_id,omitempty"`
	BookingDate   string `json:"booking_date,omitempty"`
}

type RescheduleBookingRequestBody struct {
	SlotID uint `json:"slot_id" binding:"required"`
}

type UpdateStatusRequestBody struct {
	Status string `json:"status" binding:"required"`
}

type AddSlotsRequestBody struct {
	Slots []SlotInput `json:"slots" binding:"required,min=1,dive"`
}

type SlotInput struct {
	Date string `json:"date" binding:"required,bookabledate"`
	Time string `json:"time" binding:"required"`
}

type AddToCartRequestBody struct {
	PartID      uint `json:"part_id,omitempty"`
	AccessoryID uint `json:"accessory_id,omitempty"`
	Quantity    int  `json:"quantity" binding:"required,min=1"`
}

type CheckoutRequestBody struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required,min=10"`
	CustomerEmail string `json:"customer_email,omitempty" binding:"omitempty,email"`
	CarBrand      string `json:"car_brand,omitempty"`
	CarModel      string `json:"car_model,omitempty"`
	CarYear       int    `json:"car_year,omitempty"`
	Installation  bool   `json:"installation,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

type CreateOrderRequestBody struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required,min=10"`
	CustomerEmail string `json:"customer_email,omitempty" binding:"omitempty,email"`
	PartID        uint   `json:"part_id" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,min=1"`
	CarBrand      string `json:"car_brand,omitempty"`
	CarModel      string `json:"car_model,omitempty"`
	CarYear       int    `json:"car_year,omitempty"`
	Installation  bool   `json:"installation,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

type ConfirmPaymentRequestBody struct {
	OrderNumber string `json:"order_number" binding:"required"`
	Method      string `json:"method,omitempty"`
}

type ChatRequestBody struct {
	Message string `json:"message" binding:"required"`
}

type CreateServiceRequestBody struct {
	Name            string  `json:"name" binding:"required"`
	CategoryID      uint    `json:"category_id" binding:"required"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `json:"price" binding:"required,gte=0"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gt=0"`
	Icon            string  `json:"icon,omitempty"`
	Includes        string  `json:"includes,omitempty"`
	IsPopular       bool    `json:"is_popular,omitempty"`
}

type CreatePartRequestBody struct {
	Name             string  `json:"name" binding:"required"`
	CategoryID       uint    `json:"category_id" binding:"required"`
	PartNumber       string  `json:"part_number,omitempty"`
	Brand            string  `json:"brand,omitempty"`
	Price            float64 `json:"price" binding:"required,gte=0"`
	StockQuantity    int     `json:"stock_quantity,omitempty" binding:"omitempty,gte=0"`
	ImageURL         string  `json:"image_url,omitempty"`
	Description      string  `json:"description,omitempty"`
	CompatibleBrands string  `json:"compatible_brands,omitempty"`
	WarrantyMonths   int     `json:"warranty_months,omitempty"`
	IsOEM            bool    `json:"is_oem,omitempty"`
	IsFeatured       bool    `json:"is_featured,omitempty"`
}

type AdjustStockRequestBody struct {
	Delta int `json:"delta" binding:"required"`
}
