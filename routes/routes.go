package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/podcast-catalog-api/controllers"
	"github.com/vnkhanh/podcast-catalog-api/middleware"
)

func SetupRouter(r *gin.Engine, db *gorm.DB) *gin.Engine {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")
	api.Use(middleware.DBMiddleware(db))

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/logingoogle", controllers.GoogleLogin)
		auth.POST("/logout", middleware.AuthMiddleware(db), controllers.Logout)
		auth.GET("/me", middleware.AuthMiddleware(db), controllers.Me)
	}

	// Catalog đọc công khai, không cần token
	api.GET("/podcasts", controllers.GetPodcasts)
	api.GET("/podcasts/:id", controllers.GetPodcastDetail)
	api.GET("/episodes", controllers.GetEpisodes)
	api.GET("/episodes/:id", controllers.GetEpisodeDetail)
	api.GET("/hosts", controllers.GetHosts)
	api.GET("/hosts/:id", controllers.GetHostDetail)

	// Ghi catalog: cần đăng nhập, role admin hoặc host;
	// kiểm tra sở hữu từng bản ghi nằm ở tầng service
	write := api.Group("")
	write.Use(middleware.AuthMiddleware(db), middleware.RequireRoles("admin", "host"))
	{
		write.POST("/podcasts", controllers.CreatePodcast)
		write.PUT("/podcasts/:id", controllers.UpdatePodcast)
		write.DELETE("/podcasts/:id", controllers.DeletePodcast)

		write.POST("/episodes", controllers.CreateEpisode)
		write.PUT("/episodes/:id", controllers.UpdateEpisode)
		write.DELETE("/episodes/:id", controllers.DeleteEpisode)

		write.POST("/hosts", controllers.CreateHost)
		write.PUT("/hosts/:id", controllers.UpdateHost)
		write.DELETE("/hosts/:id", controllers.DeleteHost)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(db), middleware.RequireRoles("admin"))
	{
		// Cấp tài khoản host
		admin.POST("/users", controllers.AdminCreateHostAccount)
	}

	return r
}
