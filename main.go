package main

import (
	"os"

	"optionscope/controllers"
	"optionscope/database"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load .env if present; real env vars take precedence
	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	dbPath := getEnv("DB_PATH", "data/optionscope.db")
	storage, err := database.NewLocalStorage(dbPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open storage")
	}
	defer storage.Close()

	payoffController := controllers.NewPayoffController()
	analyticsController := controllers.NewAnalyticsController(storage)
	journalController := controllers.NewJournalController(storage)

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/payoff", payoffController.HandleCalculatePayoff)

		analytics := v1.Group("/analytics")
		{
			analytics.GET("/streaks", analyticsController.HandleGetStreaks)
			analytics.GET("/scorecard", analyticsController.HandleGetScorecard)
			analytics.GET("/day-of-week", analyticsController.HandleGetDayOfWeek)
			analytics.GET("/time-of-day", analyticsController.HandleGetTimeOfDay)
			analytics.GET("/tickers", analyticsController.HandleGetLeaderboard)
			analytics.GET("/summary", analyticsController.HandleGetSummary)
		}

		v1.POST("/trades", journalController.HandleCreateTrade)
		v1.GET("/trades", journalController.HandleListTrades)
		v1.DELETE("/trades/:id", journalController.HandleDeleteTrade)

		v1.POST("/positions", journalController.HandleCreatePosition)
		v1.GET("/positions", journalController.HandleListPositions)
		v1.POST("/positions/:id/close", journalController.HandleClosePosition)
		v1.GET("/positions/:id/payoff", journalController.HandleGetPositionPayoff)
	}

	port := getEnv("PORT", "8080")
	logger.WithField("port", port).Info("Starting server")
	if err := router.Run(":" + port); err != nil {
		logger.WithError(err).Fatal("Server exited")
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
