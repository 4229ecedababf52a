package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yaseeradam/smartlink-backend/controllers"
	"github.com/yaseeradam/smartlink-backend/middleware"
	"github.com/yaseeradam/smartlink-backend/models"
)

// Controllers groups every handler the router mounts.
type Controllers struct {
	Auth          *controllers.AuthController
	Users         *controllers.UserController
	Products      *controllers.ProductController
	Orders        *controllers.OrderController
	Clusters      *controllers.ClusterController
	Ratings       *controllers.RatingController
	Notifications *controllers.NotificationController
	Chats         *controllers.ChatController
	Uploads       *controllers.UploadController
}

// Register mounts the full API under /api.
func Register(r *gin.Engine, c Controllers, parser middleware.TokenParser) {
	authd := middleware.Authenticate(parser)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
		auth.GET("/me", authd, c.Auth.Me)
		auth.POST("/forgot-password", c.Auth.ForgotPassword)
		auth.POST("/reset-password", c.Auth.ResetPassword)
	}

	users := api.Group("/users", authd)
	{
		users.GET("/:id", c.Users.GetUser)
		users.PUT("/profile", c.Users.UpdateProfile)
		users.GET("/:id/ratings", c.Users.GetUserRatings)
	}

	products := api.Group("/products")
	{
		products.GET("", c.Products.List)
		products.GET("/categories", c.Products.Categories)
		products.GET("/:id", c.Products.Get)
		products.GET("/:id/reviews", c.Products.Reviews)

		products.POST("", authd, middleware.RequireRole(models.RoleSeller), c.Products.Create)
		products.PUT("/:id", authd, middleware.RequireRole(models.RoleSeller), c.Products.Update)
		products.DELETE("/:id", authd, middleware.RequireRole(models.RoleSeller), c.Products.Delete)
	}

	orders := api.Group("/orders", authd)
	{
		orders.POST("", middleware.RequireRole(models.RoleBuyer), c.Orders.Create)
		orders.GET("", c.Orders.List)
		orders.GET("/:id", c.Orders.Get)
		orders.PUT("/:id/status", c.Orders.UpdateStatus)
		orders.PUT("/:id/assign-rider", middleware.RequireRole(models.RoleSeller), c.Orders.AssignRider)
		orders.PUT("/:id/cancel", middleware.RequireRole(models.RoleBuyer), c.Orders.Cancel)
	}

	clusters := api.Group("/clusters", authd)
	{
		clusters.GET("", c.Clusters.List)
		clusters.GET("/:id", c.Clusters.Get)
		clusters.GET("/:id/stats", c.Clusters.Stats)

		clusters.POST("", middleware.RequireRole(models.RoleRider), c.Clusters.Create)
		clusters.PUT("/:id", middleware.RequireRole(models.RoleRider), c.Clusters.Update)
		clusters.POST("/:id/members", middleware.RequireRole(models.RoleRider), c.Clusters.AddMember)
		clusters.DELETE("/:id/members/:riderId", middleware.RequireRole(models.RoleRider), c.Clusters.RemoveMember)
		clusters.POST("/:id/assign-order", middleware.RequireRole(models.RoleSeller), c.Clusters.AssignOrder)
	}

	ratings := api.Group("/ratings", authd)
	{
		ratings.POST("", middleware.RequireRole(models.RoleBuyer), c.Ratings.SubmitRating)
		ratings.POST("/disputes", c.Ratings.SubmitDispute)
		ratings.GET("/disputes", c.Ratings.MyDisputes)
	}

	reviews := api.Group("/reviews", authd)
	{
		reviews.POST("", middleware.RequireRole(models.RoleBuyer), c.Ratings.CreateReview)
		reviews.POST("/:id/helpful", c.Ratings.VoteHelpful)
	}

	notifications := api.Group("/notifications", authd)
	{
		notifications.GET("", c.Notifications.List)
		notifications.PUT("/read", c.Notifications.MarkRead)
		notifications.PUT("/read-all", c.Notifications.MarkAllRead)
	}

	chats := api.Group("/chats", authd)
	{
		chats.POST("", c.Chats.Start)
		chats.GET("", c.Chats.List)
		chats.GET("/:id/messages", c.Chats.Messages)
		chats.POST("/:id/messages", c.Chats.Send)
		chats.PUT("/:id/read", c.Chats.MarkRead)
	}

	// Uploads are mounted only when an S3 bucket is configured.
	if c.Uploads != nil {
		uploads := api.Group("/upload", authd)
		uploads.POST("/presign", c.Uploads.Presign)
	}
}
