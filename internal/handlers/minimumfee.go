package handlers

import (
	"errors"
	"time"

	"disburser/internal/repositories"
	"disburser/internal/services/minimumfee"
	"disburser/internal/services/scheduler"
	"disburser/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type MinimumFeeHandler struct {
	runner   *scheduler.Runner
	defaults repositories.FeeDefaultRepository
}

func NewMinimumFeeHandler(runner *scheduler.Runner, defaults repositories.FeeDefaultRepository) *MinimumFeeHandler {
	return &MinimumFeeHandler{runner: runner, defaults: defaults}
}

// RunMinimumFees evaluates the month before the given date (default: today),
// so a run on the 1st covers the month that just ended.
func (h *MinimumFeeHandler) RunMinimumFees(c *fiber.Ctx) error {
	var req runRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return response.BadRequest(c, "invalid request format")
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return response.BadRequest(c, "date must be formatted as YYYY-MM-DD")
		}
		date = parsed
	}

	records, err := h.runner.RunMonthlyMinimumFees(c.Context(), date)
	if err != nil {
		if errors.Is(err, minimumfee.ErrAlreadyRecorded) {
			return response.Conflict(c, err.Error())
		}
		return response.ServerError(c, err.Error())
	}

	return response.Success(c, "minimum fee run completed", fiber.Map{
		"defaulting": len(records),
		"records":    records,
	})
}

// ListDefaults returns the default records for one month (?month=YYYY-MM).
func (h *MinimumFeeHandler) ListDefaults(c *fiber.Ctx) error {
	raw := c.Query("month")
	if raw == "" {
		return response.BadRequest(c, "month query parameter is required (YYYY-MM)")
	}
	period, err := time.Parse("2006-01", raw)
	if err != nil {
		return response.BadRequest(c, "month must be formatted as YYYY-MM")
	}

	records, err := h.defaults.ListForPeriod(c.Context(), period)
	if err != nil {
		return response.ServerError(c, err.Error())
	}
	return c.JSON(fiber.Map{"records": records})
}
