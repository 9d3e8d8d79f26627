package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/dafibh/fortuna/timevalue-backend/internal/middleware"
	"github.com/dafibh/fortuna/timevalue-backend/internal/service"
	"github.com/dafibh/fortuna/timevalue-backend/internal/util"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// DefaultReportMonths is the range length used when the request names no range
const DefaultReportMonths = 12

// TimeValueHandler handles time-value report and exchange rate HTTP requests
type TimeValueHandler struct {
	reportService *service.ReportService
	rateService   *service.RateService
	now           func() time.Time
}

// NewTimeValueHandler creates a new TimeValueHandler
func NewTimeValueHandler(reportService *service.ReportService, rateService *service.RateService) *TimeValueHandler {
	return &TimeValueHandler{
		reportService: reportService,
		rateService:   rateService,
		now:           time.Now,
	}
}

// RateResponse represents an exchange rate in API responses
type RateResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
	Date string `json:"date"`
	Rate string `json:"rate"`
}

// SaveRateRequest represents the request body for storing a rate table row
type SaveRateRequest struct {
	Day   string `json:"day"`
	Base  string `json:"base"`
	Quote string `json:"quote"`
	Rate  string `json:"rate"`
}

// GetReport handles GET /api/v1/time-value/report
// from and to default to the trailing twelve months ending this month; horizon defaults to the server setting.
func (h *TimeValueHandler) GetReport(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	from, to := c.QueryParam("from"), c.QueryParam("to")
	if from == "" && to == "" {
		to = util.MonthKey(h.now())
		from = util.AddMonths(to, -(DefaultReportMonths - 1))
	}

	var validationErrors []ValidationError
	if _, err := util.ParseMonthKey(from); err != nil {
		validationErrors = append(validationErrors, ValidationError{Field: "from", Message: "Must be a month in YYYY-MM format"})
	}
	if _, err := util.ParseMonthKey(to); err != nil {
		validationErrors = append(validationErrors, ValidationError{Field: "to", Message: "Must be a month in YYYY-MM format"})
	}

	var horizon *int
	if horizonStr := c.QueryParam("horizon"); horizonStr != "" {
		parsed, err := strconv.Atoi(horizonStr)
		if err != nil || parsed < 0 || parsed > domain.MaxForecastMonths {
			validationErrors = append(validationErrors, ValidationError{
				Field:   "horizon",
				Message: "Must be an integer between 0 and " + strconv.Itoa(domain.MaxForecastMonths),
			})
		}
		horizon = &parsed
	}
	if len(validationErrors) > 0 {
		return NewValidationError(c, "Invalid report parameters", validationErrors)
	}

	report, err := h.reportService.GetReport(c.Request().Context(), userID, from, to, horizon)
	if err != nil {
		return NewServiceError(c, err, "Failed to build time-value report")
	}

	return c.JSON(http.StatusOK, report)
}

// GetRate handles GET /api/v1/time-value/rates
func (h *TimeValueHandler) GetRate(c echo.Context) error {
	from, to := c.QueryParam("from"), c.QueryParam("to")
	if from == "" || to == "" {
		return NewValidationError(c, "from and to are required", []ValidationError{
			{Field: "from", Message: "Required"},
			{Field: "to", Message: "Required"},
		})
	}

	date := util.DateOnly(h.now())
	if dateStr := c.QueryParam("date"); dateStr != "" {
		parsed, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return NewValidationError(c, "Invalid date format", []ValidationError{{Field: "date", Message: "Must be in YYYY-MM-DD format"}})
		}
		date = parsed
	}

	quote, err := h.rateService.GetRate(c.Request().Context(), from, to, date)
	if err != nil {
		return NewServiceError(c, err, "Failed to resolve exchange rate")
	}

	return c.JSON(http.StatusOK, RateResponse{
		From: quote.From,
		To:   quote.To,
		Date: quote.Date,
		Rate: quote.Rate.Round(10).String(),
	})
}

// SaveRate handles PUT /api/v1/time-value/rates
func (h *TimeValueHandler) SaveRate(c echo.Context) error {
	var req SaveRateRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	day, err := time.Parse(time.DateOnly, req.Day)
	if err != nil {
		return NewValidationError(c, "Invalid day format", []ValidationError{{Field: "day", Message: "Must be in YYYY-MM-DD format"}})
	}
	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		return NewValidationError(c, "Invalid rate", []ValidationError{{Field: "rate", Message: "Must be a decimal number"}})
	}

	row := &domain.ExchangeRate{Day: day, Base: req.Base, Quote: req.Quote, Rate: rate}
	if err := h.rateService.SaveRate(c.Request().Context(), row); err != nil {
		return NewServiceError(c, err, "Failed to save exchange rate")
	}

	return c.JSON(http.StatusOK, RateResponse{
		From: row.Base,
		To:   row.Quote,
		Date: row.Day.Format(time.DateOnly),
		Rate: row.Rate.String(),
	})
}
