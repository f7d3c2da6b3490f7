// Package handlers exposes the admin API over fiber.
package handlers

import (
	"errors"
	"time"

	"disburser/internal/repositories"
	"disburser/internal/services/scheduler"
	"disburser/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type SettlementHandler struct {
	runner        *scheduler.Runner
	disbursements repositories.DisbursementRepository
}

func NewSettlementHandler(runner *scheduler.Runner, disbursements repositories.DisbursementRepository) *SettlementHandler {
	return &SettlementHandler{runner: runner, disbursements: disbursements}
}

type runRequest struct {
	Date string `json:"date"`
}

// RunSettlement triggers a settlement run for the given date (default: today).
func (h *SettlementHandler) RunSettlement(c *fiber.Ctx) error {
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

	report, err := h.runner.RunSettlement(c.Context(), date)
	if err != nil {
		if errors.Is(err, scheduler.ErrRunInProgress) {
			return response.Conflict(c, err.Error())
		}
		return response.ServerError(c, err.Error())
	}

	return response.Success(c, "settlement run completed", report)
}

// GetDisbursement returns one disbursement with its commissions.
func (h *SettlementHandler) GetDisbursement(c *fiber.Ctx) error {
	reference := c.Params("reference")
	disbursement, err := h.disbursements.GetByReference(c.Context(), reference)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return response.NotFound(c, "disbursement not found")
		}
		return response.ServerError(c, err.Error())
	}
	return c.JSON(disbursement)
}

// ListDisbursements filters disbursements by merchant reference and/or date.
func (h *SettlementHandler) ListDisbursements(c *fiber.Ctx) error {
	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return response.BadRequest(c, "date must be formatted as YYYY-MM-DD")
		}
		date = &parsed
	}

	disbursements, err := h.disbursements.List(c.Context(), c.Query("merchant"), date, c.QueryInt("limit", 100))
	if err != nil {
		return response.ServerError(c, err.Error())
	}
	return c.JSON(fiber.Map{"disbursements": disbursements})
}
