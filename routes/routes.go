package routes

import (
	"breboot/authentication"
	"breboot/controllers"

	"github.com/gin-gonic/gin"
)

func SetupRoutes() *gin.Engine {
	//creates a new Gin engine instance with default configurations
	r := gin.Default()

	// Serve uploaded media
	r.Static("/assets", "./assets")

	//user auth routes
	r.POST("/auth/user/register", controllers.RegisterUser)
	r.POST("/auth/user/login", controllers.LoginUser)

	//payment routes: the verify callback is called by the gateway and is
	//authenticated by its hash, not by a bearer token
	r.POST("/payment/hash", controllers.PaymentHash)
	r.POST("/payment/process", controllers.ProcessPayment)
	r.POST("/payment/verify", controllers.VerifyPayment)

	user := r.Group("/user")
	user.Use(authentication.UserAuthMiddleware())
	{
		user.GET("/getuserdetails", controllers.GetUserDetails)
		user.GET("/weeks", controllers.GetWeeks)
		user.GET("/challenges", controllers.GetChallenges)
		user.GET("/products", controllers.GetProducts)
		user.POST("/challenge/submit", controllers.SubmitChallenge)
		user.POST("/redeem", controllers.RedeemReward)
	}

	//Admin routes
	r.POST("/api/auth/login", controllers.AdminLogin)

	admin := r.Group("/admin")
	admin.Use(authentication.AdminAuthMiddleware())
	{
		admin.POST("/logout", controllers.AdminLogout)

		admin.POST("/week", controllers.CreateWeek)
		admin.GET("/week", controllers.GetAllWeeks)
		admin.GET("/get/week/:id", controllers.GetWeekByID)
		admin.PUT("/update/week/:id", controllers.UpdateWeek)
		admin.DELETE("/delete/week/:id", controllers.DeleteWeek)

		admin.POST("/challenge", controllers.CreateChallenge)
		admin.GET("/challenges", controllers.GetAllChallenges)
		admin.GET("/get/challenge/:id", controllers.GetChallengeByID)
		admin.PUT("/update/challenge/:id", controllers.UpdateChallenge)
		admin.DELETE("/delete/challenge/:id", controllers.DeleteChallenge)

		admin.POST("/product", controllers.CreateProduct)
		admin.GET("/products", controllers.GetAllProducts)
		admin.GET("/get/product/:id", controllers.GetProductByID)
		admin.PUT("/update/product/:id", controllers.UpdateProduct)
		admin.DELETE("/delete/product/:id", controllers.DeleteProduct)

		admin.POST("/reward", controllers.CreateReward)
		admin.GET("/rewards", controllers.GetAllRewards)
		admin.GET("/get/reward/:id", controllers.GetRewardByID)
		admin.PUT("/update/reward/:id", controllers.UpdateReward)
		admin.DELETE("/delete/reward/:id", controllers.DeleteReward)

		admin.GET("/users", controllers.GetAllUsers)

		admin.GET("/challengeforms", controllers.GetAllChallengeForms)
		admin.PUT("/update/challengeform/:id", controllers.UpdateChallengeForm)

		admin.GET("/redeemed", controllers.GetAllRedeemedRewards)
		admin.GET("/redeemed/graph", controllers.GetRedeemedRewardsGraph)

		admin.GET("/payments/completed", controllers.GetAllCompletedPayments)
		admin.GET("/payments/graph", controllers.GetCompletedPaymentsGraph)
	}

	return r
}
