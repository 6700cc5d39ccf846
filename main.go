package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"autokey-backend/config"
	"autokey-backend/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file (default $AUTOKEY_CONFIG or ./autokey.yaml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", handlers.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{
		"Content-Disposition",
		handlers.RequestIDHeader,
		"X-Autokey-Detected-Type",
		"X-Autokey-Input-Size",
		"X-Autokey-Output-Size",
	}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))
	router.Use(handlers.RequestID())

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cipherHandler := handlers.NewCipherHandler(cfg, logger)
	handlers.RegisterRoutes(router, cipherHandler)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Printf("API endpoints:")
	log.Printf("  POST /api/v1/text/encrypt  - Autokey encrypt text (JSON or .txt upload, returns trace)")
	log.Printf("  POST /api/v1/text/decrypt  - Autokey decrypt text (JSON or .txt upload, returns trace)")
	log.Printf("  POST /api/v1/file/encrypt  - Encrypt any file byte by byte (returns <name>.enc)")
	log.Printf("  POST /api/v1/file/decrypt  - Decrypt a .enc file (returns the original file)")
	log.Printf("  POST /api/v1/key/recover   - Known-plaintext key recovery")
	log.Printf("  GET  /api/v1/health        - Health check")
	log.Printf("Max upload size: %d bytes, trace preview rows: %d", cfg.MaxUploadBytes, cfg.TracePreviewRows)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
