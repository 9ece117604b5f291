package configuration

import (
	"breboot/models"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// AppConfig holds every environment value the server consumes.
type AppConfig struct {
	Port      string
	DB        string
	RedisAddr string

	JWTSecret string

	PayuKey    string
	PayuSalt   string
	PayuAPIURL string

	EmailUser string
	EmailPass string

	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string

	SuccessRedirectURL string
	FailureRedirectURL string
}

var Config AppConfig

// hold connection to db
var DB *gorm.DB

// LoadConfig reads .env (when present) and resolves the full config from the
// environment.
func LoadConfig() {
	if err := godotenv.Load(".env"); err != nil {
		log.Warn("No .env file found, reading configuration from environment")
	}

	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("SUCCESS_REDIRECT_URL", "http://localhost:3000/thankyou")
	viper.SetDefault("FAILURE_REDIRECT_URL", "http://localhost:3000/")

	Config = AppConfig{
		Port:               viper.GetString("PORT"),
		DB:                 viper.GetString("DB"),
		RedisAddr:          viper.GetString("REDIS_ADDR"),
		JWTSecret:          viper.GetString("JWT_SECRET"),
		PayuKey:            viper.GetString("PAYU_KEY"),
		PayuSalt:           viper.GetString("PAYU_SALT"),
		PayuAPIURL:         viper.GetString("PAYU_API_URL"),
		EmailUser:          viper.GetString("EMAIL_USER"),
		EmailPass:          viper.GetString("EMAIL_PASS"),
		TwilioAccountSID:   viper.GetString("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:    viper.GetString("TWILIO_AUTHTOKEN"),
		TwilioPhoneNumber:  viper.GetString("TWILIO_PHONENUMBER"),
		SuccessRedirectURL: viper.GetString("SUCCESS_REDIRECT_URL"),
		FailureRedirectURL: viper.GetString("FAILURE_REDIRECT_URL"),
	}
}

// initializing db connection
func ConfigDB() {
	var err error

	DB, err = gorm.Open(postgres.Open(Config.DB), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to the database: ", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}
}

// Migrate creates or updates every table the application uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.CodeTracker{},
		&models.Admin{},
		&models.Week{},
		&models.Challenge{},
		&models.ChallengeSubmitForm{},
		&models.Product{},
		&models.Reward{},
		&models.Redeem{},
		&models.Payment{},
	)
}
