package api

import (
	"Mapdrop/internal/api/config"
	"Mapdrop/internal/api/middleware"
	"Mapdrop/internal/pkg/logger"
	"Mapdrop/internal/pkg/storage"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, cfg *config.Config, store storage.MediaStore) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})
	r.MaxMultipartMemory = cfg.Upload.MaxSizeBytes

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	// 本地盘驱动时直接静态暴露上传目录
	if local, ok := store.(*storage.LocalStore); ok {
		r.Static(cfg.Storage.PublicBase, local.Dir())
	}

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		apiGroup.POST("/upload", group.MediaHandler.Upload)

		postGroup := apiGroup.Group("/posts")
		{
			postGroup.POST("", group.PostHandler.CreatePost)
			postGroup.GET("/near", group.PostHandler.FindNear)
			postGroup.GET("/recent", group.PostHandler.FindRecent)
			postGroup.GET("/latest", group.PostHandler.FindLatest)
			postGroup.GET("/history", group.PostHandler.FindHistory)
			postGroup.GET("/:post_id", group.PostHandler.GetPost)
			postGroup.PATCH("/:post_id", group.PostHandler.UpdatePost)
			// 旧客户端兼容别名
			postGroup.POST("/:post_id/update", group.PostHandler.UpdatePost)
		}
	}

	return r
}
