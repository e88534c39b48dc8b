package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/priyathamsetti1/aditya-foods/configs"
	"github.com/priyathamsetti1/aditya-foods/controllers"
	"github.com/priyathamsetti1/aditya-foods/middlewares"
	"github.com/priyathamsetti1/aditya-foods/pkg/push"
	"github.com/priyathamsetti1/aditya-foods/pkg/razorpay"
	"github.com/priyathamsetti1/aditya-foods/repository"
	"github.com/priyathamsetti1/aditya-foods/services"
	"github.com/priyathamsetti1/aditya-foods/ws"
)

func RegisterRoutes(r *gin.Engine, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	db := configs.DB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Order feed for admin consoles
	hub := ws.NewOrderFeedHub()
	go hub.Run()

	// Outbound clients
	gateway := razorpay.NewClient(cfg.RazorpayBaseURL, cfg.RazorpayKey, cfg.RazorpaySecret)
	pusher := push.NewClient(cfg.PushGatewayURL)

	// Services
	authSvc := services.NewAuthService(db, userRepo, tokenRepo, cfg.JWTSecret, cfg.JWTTTL)
	catalogSvc := services.NewCatalogService(db, catalogRepo)
	cartSvc := services.NewCartService(db, cartRepo, catalogRepo)
	notifySvc := services.NewNotificationService(tokenRepo, pusher, hub)
	adapter := services.NewPaymentAdapter(gateway, cfg.PaymentTimeout)
	checkoutSvc := services.NewCheckoutService(db, cartRepo, orderRepo, adapter, notifySvc)
	orderSvc := services.NewOrderService(db, orderRepo, cartRepo, catalogRepo, notifySvc)
	fulfillSvc := services.NewFulfillmentService(db, orderRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	tokenCtrl := controllers.NewTokenController(authSvc, tokenRepo)
	catalogCtrl := controllers.NewCatalogController(catalogSvc, userRepo)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc, checkoutSvc, fulfillSvc)

	// Public
	r.POST("/register", authCtrl.Register)
	r.POST("/login", authCtrl.Login)
	r.POST("/admin/login", authCtrl.AdminLogin)
	r.GET("/restaurants", catalogCtrl.Restaurants)
	r.GET("/food-items/:restaurantId", catalogCtrl.MenuFor)

	// Device tokens are registered before the app has a session, so these
	// stay public; /admin-tokens is the sensitive one and lives below.
	r.POST("/store-token", tokenCtrl.Store)
	r.DELETE("/delete-token", tokenCtrl.Delete)
	r.POST("/verify-token", tokenCtrl.Verify)

	// User (any signed-in role)
	u := r.Group("/", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		u.GET("/users/:id", catalogCtrl.GetUser)
		u.GET("/user-cart-items", cartCtrl.Get)
		u.POST("/usercart/add-item", cartCtrl.Add)
		u.POST("/usercart/increment-item", cartCtrl.Increment)
		u.POST("/usercart/decrement-item", cartCtrl.Decrement)
		u.POST("/delete-items", cartCtrl.Clear)
		u.POST("/checkout", orderCtrl.DoCheckout)
		u.POST("/place-order", orderCtrl.PlaceOrder)
		u.GET("/orders", orderCtrl.List)
		u.GET("/orders/:id", orderCtrl.Detail)
	}

	// Admin (restaurant console)
	admin := r.Group("/", middlewares.AuthMiddleware(cfg.JWTSecret, "admin"))
	{
		admin.GET("/admins/:adminId/food-items", catalogCtrl.AdminMenu)
		admin.POST("/food-items", catalogCtrl.CreateFoodItem)
		admin.DELETE("/food-items/:id", catalogCtrl.DeleteFoodItem)
		admin.GET("/admin-tokens", tokenCtrl.AdminTokens)
		admin.POST("/orders/:id/verify", orderCtrl.Verify)
		admin.PUT("/orders/:id/complete", orderCtrl.Complete)
		admin.GET("/ws/orders", hub.HandleWebSocket)
	}
}
