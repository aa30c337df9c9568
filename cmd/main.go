package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"referralnet/internal/caching"
	"referralnet/internal/handlers"
	"referralnet/internal/middleware"
	"referralnet/internal/repositories"
	"referralnet/internal/services"
	"referralnet/pkg/database"
)

const version = "1.0.0"

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Repositories
	zipRepo := repositories.NewZipCodeRepo(pool)
	contractorRepo := repositories.NewContractorRepo(pool)
	referralRepo := repositories.NewReferralRepo(pool)

	// Services
	geoSvc := services.NewGeospatialService(zipRepo, contractorRepo, cacheSvc)
	zipSvc := services.NewZipCodeService(zipRepo, cacheSvc)
	contractorSvc := services.NewContractorService(contractorRepo, zipRepo)
	referralSvc := services.NewReferralService(referralRepo, contractorRepo, geoSvc)

	// Handlers
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)
	matchHandlers := handlers.NewMatchHandlers(geoSvc)
	referralHandlers := handlers.NewReferralHandlers(referralSvc)
	contractorHandlers := handlers.NewContractorHandlers(contractorSvc)
	zipHandlers := handlers.NewZipCodeHandlers(zipSvc, geoSvc)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLogger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	v1 := e.Group("/v1")

	// Matching
	v1.POST("/matches", matchHandlers.FindContractors)

	// Referral ledger
	v1.POST("/referrals", referralHandlers.CreateReferral)
	v1.GET("/referrals", referralHandlers.GetReferrals)
	v1.GET("/referrals/:id", referralHandlers.GetReferral)
	v1.GET("/referrals/:id/status", referralHandlers.GetReferralStatus)
	v1.PUT("/referrals/:id", referralHandlers.UpdateReferral)
	v1.DELETE("/referrals/:id", referralHandlers.DeleteReferral)
	v1.POST("/referrals/:id/select", referralHandlers.SelectContractor)
	v1.POST("/referral-details/:id/status", referralHandlers.UpdateDetailStatus)
	v1.POST("/referral-details/:id/complete", referralHandlers.CompleteWork)

	// Contractor catalog
	v1.GET("/contractors", contractorHandlers.ListContractors)
	v1.POST("/contractors", contractorHandlers.RegisterContractor)
	v1.GET("/contractors/:id", contractorHandlers.GetContractor)
	v1.PUT("/contractors/:id", contractorHandlers.UpdateContractor)
	v1.DELETE("/contractors/:id", contractorHandlers.DeleteContractor)
	v1.POST("/contractors/:id/approve", contractorHandlers.ApproveContractor)
	v1.POST("/contractors/:id/active", contractorHandlers.SetContractorActive)

	// Coordinate table
	v1.GET("/zipcodes", zipHandlers.ListZipCodes)
	v1.POST("/zipcodes", zipHandlers.LoadZipCode)
	v1.GET("/zipcodes/:code", zipHandlers.GetZipCode)
	v1.GET("/zipcodes/:code/validate", zipHandlers.ValidateZip)
	v1.POST("/zipcodes/:code/deactivate", zipHandlers.DeactivateZipCode)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("referral network server starting", zap.String("version", version), zap.String("port", port))
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", port)))
}
