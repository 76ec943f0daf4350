package main

import (
	"fmt"
	"log"
	"os"

	"grid-balance/internal/api"
	"grid-balance/internal/data"
	"grid-balance/internal/metrics"

	"github.com/gin-gonic/gin"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if wd, err := os.Getwd(); err == nil {
		log.Printf("Working directory: %s", wd)
	}
	scenarioDir := data.GetDefaultScenarioDir()
	if info, err := os.Stat(scenarioDir); err == nil && info.IsDir() {
		log.Printf("Scenario directory found: %s", scenarioDir)
	} else {
		log.Printf("Scenario directory not found at: %s (error: %v)", scenarioDir, err)
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.NewRouter(api.Options{
		Cache:       data.GetCache(),
		Metrics:     metrics.New(),
		ScenarioDir: scenarioDir,
		RequestLog:  true,
	})

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
