// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yycy134679/school-secondhand-trading-system/internal/cache"
	"github.com/yycy134679/school-secondhand-trading-system/internal/config"
	"github.com/yycy134679/school-secondhand-trading-system/internal/handlers"
	"github.com/yycy134679/school-secondhand-trading-system/internal/middleware"
	"github.com/yycy134679/school-secondhand-trading-system/internal/services"
	"github.com/yycy134679/school-secondhand-trading-system/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	appCache := cache.New()

	userService := services.NewUserService(db, cfg)
	productService := services.NewProductService(db, appCache, storageService)
	dictService := services.NewDictionaryService(db)
	homeService := services.NewHomeService(db, appCache, productService)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService, productService)
	productHandler := handlers.NewProductHandler(productService, dictService)
	dictHandler := handlers.NewDictionaryHandler(dictService)
	homeHandler := handlers.NewHomeHandler(homeService)
	adminHandler := handlers.NewAdminHandler(adminService, productService)
	uploadHandler := handlers.NewUploadHandler(storageService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS([]string{cfg.Frontend.BaseURL}))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Locally stored uploads are served straight from disk.
	if !cfg.Upload.UseS3 {
		r.Static(cfg.Upload.PublicPrefix, cfg.Upload.LocalDir)
	}

	v1 := r.Group("/api/v1")
	{
		// Public dictionaries and home feed
		v1.GET("/categories", dictHandler.Categories)
		v1.GET("/tags", dictHandler.Tags)
		v1.GET("/product-conditions", dictHandler.Conditions)
		v1.GET("/home", middleware.OptionalAuth(), homeHandler.Home)

		products := v1.Group("/products")
		{
			products.GET("/search", productHandler.Search)
			products.GET("/category/:id", productHandler.ByCategory)
			products.GET("/my", middleware.AuthRequired(), productHandler.MyProducts)
			products.GET("/:id", middleware.OptionalAuth(), productHandler.Detail)
			products.GET("/:id/contact", middleware.OptionalAuth(), productHandler.Contact)

			products.POST("", middleware.AuthRequired(), productHandler.Create)
			products.PUT("/:id", middleware.AuthRequired(), productHandler.Update)
			products.POST("/:id/status", middleware.AuthRequired(), productHandler.ChangeStatus)
			products.POST("/:id/status/undo", middleware.AuthRequired(), productHandler.UndoStatusChange)
			products.POST("/:id/view", middleware.AuthRequired(), productHandler.RecordView)
		}

		users := v1.Group("/users")
		{
			users.POST("/register", middleware.AuthRateLimit(), authHandler.Register)
			users.POST("/login", middleware.AuthRateLimit(), authHandler.Login)

			users.GET("/profile", middleware.AuthRequired(), userHandler.GetProfile)
			users.PUT("/profile", middleware.AuthRequired(), userHandler.UpdateProfile)
			users.PUT("/password", middleware.AuthRequired(), userHandler.ChangePassword)
			users.GET("/recent-views", middleware.AuthRequired(), userHandler.RecentViews)
		}

		v1.POST("/upload", middleware.AuthRequired(), middleware.UploadRateLimit(), uploadHandler.Upload)

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/dashboard", adminHandler.Dashboard)
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/products", adminHandler.ListProducts)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)

			admin.POST("/categories", dictHandler.CreateCategory)
			admin.PUT("/categories/:id", dictHandler.UpdateCategory)
			admin.DELETE("/categories/:id", dictHandler.DeleteCategory)
			admin.POST("/tags", dictHandler.CreateTag)
			admin.PUT("/tags/:id", dictHandler.UpdateTag)
			admin.DELETE("/tags/:id", dictHandler.DeleteTag)
		}
	}

	return r, nil
}
