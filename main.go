package main

import (
	"time"

	"breboot/authentication"
	"breboot/configuration"
	"breboot/controllers"
	"breboot/routes"

	log "github.com/sirupsen/logrus"
)

func Init() {
	configuration.LoadConfig()
	configuration.ConfigDB()

	var store authentication.OtpStore
	if addr := configuration.Config.RedisAddr; addr != "" {
		configuration.InitRedis(addr)
		store = authentication.NewRedisStore(configuration.Client)
	} else {
		memStore := authentication.NewMemoryStore()
		memStore.StartSweeper(time.Minute)
		store = memStore
	}

	controllers.Otp = authentication.NewOtpService(store, controllers.NewTwilioSender(), controllers.NewGmailSender())
}

func main() {
	//Perform application initialization
	Init()
	r := routes.SetupRoutes()

	//Run the engine on the configured port
	if err := r.Run(":" + configuration.Config.Port); err != nil {
		log.Fatal(err)
	}
}
