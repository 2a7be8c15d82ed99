package routes

import (
	"net/http"

	"phantoms-store/handlers"
	"phantoms-store/helper"
	"phantoms-store/logger"
	"phantoms-store/middleware"
	"phantoms-store/models"
	"phantoms-store/services"

	"github.com/gin-gonic/gin"
)

type Dependencies struct {
	Helper         *helper.HTTPHelper
	AllowedOrigins []string
	RateLimiter    *middleware.RateLimiter

	AuthService    services.AuthService
	UserService    services.UserService
	ProductService services.ProductService
	ImportService  services.ImportService
	YoutubeService services.YoutubeResourceService
	ContactService services.ContactService
	PaymentService services.PaymentService
	ChatService    services.ChatService
	UploadService  services.UploadService
}

func SetupRouter(deps Dependencies) *gin.Engine {
	h := deps.Helper

	authHandler := handlers.NewAuthHandler(deps.AuthService, h)
	userHandler := handlers.NewUserHandler(deps.UserService, h)
	productHandler := handlers.NewProductHandler(deps.ProductService, deps.ImportService, h)
	youtubeHandler := handlers.NewYoutubeResourceHandler(deps.YoutubeService, h)
	contactHandler := handlers.NewContactHandler(deps.ContactService, h)
	paymentHandler := handlers.NewPaymentHandler(deps.PaymentService, h)
	chatHandler := handlers.NewChatHandler(deps.ChatService, h)
	uploadHandler := handlers.NewUploadHandler(deps.UploadService, h)

	router := gin.New()
	router.Use(logger.RequestLogger())
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(deps.AllowedOrigins))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	var limited gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if deps.RateLimiter != nil {
		limited = middleware.RateLimit(deps.RateLimiter, h)
	}

	api := router.Group("/api")
	{
		// Public routes
		api.POST("/login", limited, authHandler.Login)
		auth := api.Group("/auth")
		{
			auth.POST("/google-login", limited, authHandler.GoogleLogin)
			auth.POST("/register-seller", limited, authHandler.RegisterSeller)
		}

		api.GET("/products", productHandler.GetPublicProducts)
		api.GET("/products/:id", productHandler.GetPublicProduct)
		api.GET("/youtube-resources", youtubeHandler.GetPublicResources)
		api.GET("/youtube-resources/:id", youtubeHandler.GetPublicResource)

		api.POST("/contact-messages", limited, contactHandler.CreateMessage)
		api.POST("/process-payment", limited, paymentHandler.ProcessPayment)
		api.POST("/emi-options", paymentHandler.EmiOptions)
		api.POST("/ai-chat", limited, chatHandler.Chat)

		// Session routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(deps.AuthService, h))
		{
			protected.POST("/auth/logout", authHandler.Logout)
			protected.GET("/auth/me", authHandler.GetProfile)
			protected.PUT("/auth/profile", authHandler.UpdateProfile)

			admin := protected.Group("/admin")
			{
				admin.GET("/products", productHandler.GetAdminProducts)
				admin.GET("/products/:id", productHandler.GetAdminProduct)
				admin.GET("/youtube-resources", youtubeHandler.GetAdminResources)
				admin.GET("/youtube-resources/:id", youtubeHandler.GetAdminResource)
			}

			products := protected.Group("/products")
			{
				products.POST("", productHandler.CreateProduct)
				products.POST("/import", productHandler.ImportProducts)
				products.PUT("/:id", productHandler.UpdateProduct)
				products.DELETE("/:id", productHandler.DeleteProduct)
			}

			videos := protected.Group("/youtube-resources")
			{
				videos.POST("", youtubeHandler.CreateResource)
				videos.PUT("/:id", youtubeHandler.UpdateResource)
				videos.DELETE("/:id", youtubeHandler.DeleteResource)
			}

			protected.GET("/uploads/presign", uploadHandler.Presign)

			messages := protected.Group("/contact-messages")
			messages.Use(middleware.RequirePermission(h, models.PermManageMessages))
			{
				messages.GET("", contactHandler.ListMessages)
				messages.PATCH("/:id/read", contactHandler.MarkRead)
			}

			users := protected.Group("/users")
			users.Use(middleware.RequireSuperAdmin(h))
			{
				users.GET("", userHandler.ListUsers)
				users.POST("", userHandler.CreateUser)
				users.DELETE("/:id", userHandler.DeleteUser)
				users.PATCH("/:id/permissions", userHandler.UpdatePermissions)
			}
		}
	}

	return router
}
