package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the API under /api/v1
func RegisterRoutes(router *gin.Engine, h *CipherHandler) {
	api := router.Group("/api/v1")
	{
		api.GET("/health", h.HealthCheck)

		text := api.Group("/text")
		{
			text.POST("/encrypt", h.EncryptText)
			text.POST("/decrypt", h.DecryptText)
		}

		file := api.Group("/file")
		{
			file.POST("/encrypt", h.EncryptFile)
			file.POST("/decrypt", h.DecryptFile)
		}

		api.POST("/key/recover", h.RecoverKey)
	}
}
