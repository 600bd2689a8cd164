package main

import (
	"log"
	"net/http"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/redis"
	"storefront/internal/repository"
	"storefront/internal/services"
	"storefront/pkg/identity"
	"storefront/pkg/mailer"
	"storefront/pkg/razorpay"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize external clients
	gatewayClient := razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	identityClient := identity.NewClient(cfg.FirebaseAPIKey)
	mailClient := mailer.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(db)
	subscriberRepo := repository.NewSubscriberRepository(db)
	contactRepo := repository.NewContactRepository(db)

	// Initialize services
	shipping := services.ShippingPolicy{
		FlatRate:      decimal.NewFromFloat(cfg.ShippingFlatRate),
		FreeThreshold: decimal.NewFromFloat(cfg.FreeShippingThreshold),
	}
	notificationService := services.NewNotificationService(mailClient)
	orderService := services.NewOrderService(orderRepo, gatewayClient, shipping, decimal.NewFromFloat(cfg.RazorpayMaxAmount))
	subscriptionService := services.NewSubscriptionService(subscriberRepo, gatewayClient, notificationService, nil)
	contactService := services.NewContactService(contactRepo, redisClient, notificationService,
		cfg.ContactRateLimit, time.Duration(cfg.ContactRateWindow)*time.Second)

	// Initialize handlers
	paymentHandler := handlers.NewPaymentHandler(orderService)
	orderHandler := handlers.NewOrderHandler(orderService, cfg)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	contactHandler := handlers.NewContactHandler(contactService)

	// Setup routes
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		// Public endpoints
		api.POST("/subscription/create", subscriptionHandler.Create)
		api.POST("/subscription/verify", subscriptionHandler.Verify)
		api.POST("/contact", contactHandler.Submit)

		// Authenticated endpoints
		authed := api.Group("")
		authed.Use(handlers.AuthRequired(identityClient))
		{
			authed.POST("/payment/create", paymentHandler.CreateOrder)
			authed.POST("/payment/verify-payment", paymentHandler.VerifyPayment)
			authed.GET("/orders/my-orders", orderHandler.MyOrders)
			authed.GET("/orders/:id", orderHandler.GetOrder)

			// Admin endpoints
			admin := authed.Group("")
			admin.Use(handlers.AdminRequired(cfg))
			{
				admin.GET("/orders", orderHandler.ListAll)
				admin.GET("/orders/user/:uid", orderHandler.OrdersByUser)
				admin.PUT("/orders/:id/status", orderHandler.UpdateStatus)
				admin.GET("/subscribers", subscriptionHandler.List)
				admin.DELETE("/subscribers/:id", subscriptionHandler.Delete)
				admin.GET("/contact", contactHandler.List)
				admin.PUT("/contact/:id/status", contactHandler.Resolve)
			}
		}
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
