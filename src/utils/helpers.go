package utils

import (
	"fmt"
	"gmotors/src/db"
	"gmotors/src/models"
	"math/rand"
	"os"
	"path"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/yeqown/go-qrcode"
	"gorm.io/gorm"

	"gmotors/src/types"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

func GenerateJWT(username string, role types.Role, userId uint) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &types.Claims{
		Username: username,
		Role:     string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userId),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// NewBookingCode returns a GM###### code, retrying on the rare collision.
func NewBookingCode(tx *gorm.DB) (string, error) {
	for range 10 {
		code := fmt.Sprintf("GM%06d", 100000+rand.Intn(900000))
		var count int64
		if err := tx.
			Model(&models.ServiceBooking{}).
			Where(&models.ServiceBooking{BookingID: code}).
			Count(&count).
			Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not allocate a booking code")
}

// NewOrderNumber is UUID-derived so concurrent checkouts never collide,
// unlike a max-id+1 sequence.
func NewOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("GMO-%s", suffix)
}

// BookingQRCode renders the booking code as a QR image for the
// confirmation email attachment.
func BookingQRCode(code string) ([]byte, error) {
	qrc, err := qrcode.New(code)
	if err != nil {
		return nil, err
	}
	filepath := path.Join(os.TempDir(), fmt.Sprintf("%s.jpeg", code))
	if err := qrc.Save(filepath); err != nil {
		return nil, err
	}
	defer os.Remove(filepath)
	return os.ReadFile(filepath)
}

// GetCustomerProfile resolves the one profile row for a user id.
func GetCustomerProfile(userId uint) (*models.CustomerProfile, error) {
	db := db.GetDb()
	var profile models.CustomerProfile
	if err := db.
		Where(&models.CustomerProfile{UserID: userId}).
		First(&profile).
		Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func GetTechnicianProfile(userId uint) (*models.TechnicianProfile, error) {
	db := db.GetDb()
	var profile models.TechnicianProfile
	if err := db.
		Where(&models.TechnicianProfile{UserID: userId}).
		First(&profile).
		Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func IsProd() bool {
	return os.Getenv("API_ENV") == "production"
}
