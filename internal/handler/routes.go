package handler

import (
	"github.com/dafibh/fortuna/timevalue-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, timeValueHandler *TimeValueHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Time-value routes (protected, rate limited per user)
	timeValue := api.Group("/time-value")
	timeValue.Use(authMiddleware.Authenticate())
	timeValue.Use(middleware.RateLimitMiddleware(rateLimiter))
	timeValue.GET("/report", timeValueHandler.GetReport)
	timeValue.GET("/rates", timeValueHandler.GetRate)
	timeValue.PUT("/rates", timeValueHandler.SaveRate)
}
