package main

import (
	"encoding/json"
	"gmotors/src/db"
	"gmotors/src/types"
	"gmotors/src/utils"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type TestSuite struct {
	suite.Suite
}

func newMockDB(t *testing.T) sqlmock.Sqlmock {
	mockdb, mock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { mockdb.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 mockdb,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}
	db.NewDB(gormDB)
	return mock
}

func expectUserLookup(mock sqlmock.Sqlmock, id uint, username string, email string, role types.Role) {
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "role"}).
			AddRow(id, username, email, string(role)))
}

func (s *TestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("bookabledate", bookableDateValidatorFunc)
	}
}

func (s *TestSuite) TestPingRoute() {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestMaintenanceMode() {
	os.Setenv("MAINTENANCE_MODE", "true")
	defer os.Unsetenv("MAINTENANCE_MODE")

	router := setupRouter()
	router = maintenanceModeMiddleware(router)
	apiv1Group(router)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 503, w.Code)
}

func (s *TestSuite) TestAuthorizedRoutesRejectMissingToken() {
	router := setupRouter()
	authorizedRoutes(router)

	for _, route := range []struct {
		method string
		path   string
	}{
		{"GET", "/api/v1/bookings"},
		{"GET", "/api/v1/cart"},
		{"GET", "/api/v1/slots"},
		{"GET", "/api/v1/admin/stats"},
		{"GET", "/api/v1/admin/bookings/export"},
	} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(route.method, route.path, nil)
		router.ServeHTTP(w, req)
		assert.Equalf(s.T(), 401, w.Code, "%s %s should require a token", route.method, route.path)
	}
}

func (s *TestSuite) TestBookingValidation() {
	router := setupRouter()
	publicRoutes(router)

	s.Run("Should reject a booking with no body", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/bookings", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
		rbytes, err := io.ReadAll(w.Body)
		assert.Nil(s.T(), err)
		errMsg := gjson.Get(string(rbytes), "error").String()
		assert.NotEmpty(s.T(), errMsg)
	})

	s.Run("Should reject a booking with a short phone number", func() {
		body := types.CreateBookingRequestBody{
			CustomerName:  "Test Customer",
			CustomerPhone: "12345",
			VehicleModel:  "Swift",
			ServiceID:     1,
			TechnicianID:  1,
			SlotID:        1,
		}
		rbytes, err := json.Marshal(&body)
		assert.Nil(s.T(), err)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/bookings", strings.NewReader(string(rbytes)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject an invalid timeslot date", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/timeslots/not-a-date", nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})
}

func (s *TestSuite) TestOrderValidation() {
	router := setupRouter()
	publicRoutes(router)

	s.Run("Should reject an empty order", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/orders", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject a zero quantity", func() {
		body := types.CreateOrderRequestBody{
			CustomerName:  "Test Customer",
			CustomerPhone: "9876543210",
			PartID:        1,
			Quantity:      0,
		}
		rbytes, err := json.Marshal(&body)
		assert.Nil(s.T(), err)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/orders", strings.NewReader(string(rbytes)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject a payment confirmation with no order number", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/payments/confirm", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})
}

func (s *TestSuite) TestChatValidation() {
	router := setupRouter()
	publicRoutes(router)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/chat", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 400, w.Code)
	rbytes, err := io.ReadAll(w.Body)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), "No message provided", gjson.Get(string(rbytes), "error").String())
}

func (s *TestSuite) TestMalformedAuthorizationHeader() {
	router := setupRouter()
	authorizedRoutes(router)

	for _, header := range []string{"Bearer", "Bearer ", "Bearer  "} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/bookings", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)
		assert.Equalf(s.T(), 401, w.Code, "header %q should be rejected, not crash", header)
	}
}

func (s *TestSuite) TestBookingStatusRequiresStaffRole() {
	mock := newMockDB(s.T())
	expectUserLookup(mock, 42, "cust", "cust@example.com", types.ROLE_CUSTOMER)

	router := setupRouter()
	authorizedRoutes(router)

	token, err := utils.GenerateJWT("cust", types.ROLE_CUSTOMER, 42)
	assert.Nil(s.T(), err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/api/v1/bookings/1/status", strings.NewReader(`{"status":"Confirmed"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 403, w.Code)
	assert.NoError(s.T(), mock.ExpectationsWereMet())
}

func (s *TestSuite) TestBookingCancelScopedToOwner() {
	mock := newMockDB(s.T())
	expectUserLookup(mock, 42, "cust", "cust@example.com", types.ROLE_CUSTOMER)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "service_bookings"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "customer_email", "status", "technician_id"}).
			AddRow(1, "GM000001", "someone-else@example.com", "Pending", 1))
	mock.ExpectRollback()

	router := setupRouter()
	authorizedRoutes(router)

	token, err := utils.GenerateJWT("cust", types.ROLE_CUSTOMER, 42)
	assert.Nil(s.T(), err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/api/v1/bookings/1/cancel", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 403, w.Code)
	assert.NoError(s.T(), mock.ExpectationsWereMet())
}

func (s *TestSuite) TestBookableDateValidator() {
	v := validator.New()
	v.RegisterValidation("bookabledate", bookableDateValidatorFunc)

	today := time.Now().Format("2006-01-02")
	tomorrow := time.Now().Add(24 * time.Hour).Format("2006-01-02")
	yesterday := time.Now().Add(-24 * time.Hour).Format("2006-01-02")

	assert.Nil(s.T(), v.Var(today, "bookabledate"))
	assert.Nil(s.T(), v.Var(tomorrow, "bookabledate"))
	assert.NotNil(s.T(), v.Var(yesterday, "bookabledate"))
	assert.NotNil(s.T(), v.Var("31-12-2030", "bookabledate"))
}

func TestSuiteRun(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
