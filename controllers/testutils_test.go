package controllers_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"breboot/authentication"
	"breboot/configuration"
	"breboot/controllers"
	"breboot/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestDB points the global DB at a fresh shared in-memory sqlite
// database named after the test, runs migrations and seeds the gateway
// config. sqlite tolerates only a single writer, so the pool is capped at
// one connection; the capped connection also keeps the in-memory database
// alive across requests.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=busy_timeout(10000)", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, configuration.Migrate(db))
	configuration.DB = db

	configuration.Config.JWTSecret = "test-secret"
	configuration.Config.PayuKey = "testkey"
	configuration.Config.PayuSalt = "testsalt"
	configuration.Config.SuccessRedirectURL = "https://app.example.com/payment/success"
	configuration.Config.FailureRedirectURL = "https://app.example.com/payment/failure"
	return db
}

func testRouter() *gin.Engine {
	return routes.SetupRoutes()
}

// fakeSMS and fakeEmail capture the last code issued so tests can complete
// OTP flows without a provider.
type fakeSMS struct {
	mu        sync.Mutex
	lastPhone string
	lastCode  string
}

func (f *fakeSMS) SendOTP(phone, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPhone = phone
	f.lastCode = code
	return nil
}

func (f *fakeSMS) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastCode
}

type fakeEmail struct {
	mu        sync.Mutex
	lastEmail string
	lastCode  string
}

func (f *fakeEmail) SendOTP(email, name, userType, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastEmail = email
	f.lastCode = code
	return nil
}

func (f *fakeEmail) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastCode
}

// setupOtp swaps the wired OTP service for one backed by an in-memory store
// and fake senders.
func setupOtp(t *testing.T) (*fakeSMS, *fakeEmail) {
	t.Helper()
	sms := &fakeSMS{}
	email := &fakeEmail{}
	controllers.Otp = authentication.NewOtpService(authentication.NewMemoryStore(), sms, email)
	return sms, email
}
