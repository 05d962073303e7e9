package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/lmittmann/tint"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"

	"github.com/Vikas-Jha19/expense-tracker/api"
	"github.com/Vikas-Jha19/expense-tracker/db"
	_ "github.com/Vikas-Jha19/expense-tracker/docs"
)

// @title Expense Tracker API
// @version 1.0
// @description Personal finance ledger: authenticated income/expense transactions with summary reports.
// @BasePath /api

// @SecurityDefinitions.apikey ApiKeyAuth
// @In header
// @Name Authorization
func main() {
	// .env необязателен: в проде переменные приходят из окружения
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: logLevel(),
	})))

	// Подключение к PostgreSQL
	connStr := os.Getenv("POSTGRES_URL")
	storage, err := db.NewStorage(connStr)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer storage.Close()
	slog.Info("storage initialized")

	// Секрет подписи токенов задается только через окружение
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	handler := api.NewHandler(storage, jwtSecret)

	r := gin.Default()
	r.Use(api.MetricsMiddleware())

	users := r.Group("/api/users")
	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)

	protected := r.Group("/api", handler.AuthMiddleware())
	protected.POST("/transactions", handler.CreateTransaction)
	protected.GET("/transactions", handler.GetTransactions)
	protected.GET("/transactions/:id", handler.GetTransaction)
	protected.PUT("/transactions/:id", handler.UpdateTransaction)
	protected.DELETE("/transactions/:id", handler.DeleteTransaction)
	protected.GET("/summary", handler.GetSummary)
	protected.GET("/reports/monthly", handler.GetMonthlyReport)

	r.GET("/metrics", api.MetricsHandler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	slog.Info("server starting")
	if err := r.Run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func logLevel() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
