package handlers

import (
	"github.com/vkolotikov/loyalty-bolt/internal/services/stats"
	"github.com/vkolotikov/loyalty-bolt/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type StatsHandler struct {
	statsService stats.Service
}

func NewStatsHandler(statsService stats.Service) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

func (h *StatsHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.statsService.Overview(c.Context())
	if err != nil {
		return utils.InternalError(c, "Failed to compute stats")
	}
	return utils.Success(c, overview)
}

func (h *StatsHandler) MonthlyTrends(c *fiber.Ctx) error {
	months := c.QueryInt("months", stats.DefaultTrendMonths)

	trends, err := h.statsService.MonthlyTrends(c.Context(), months)
	if err != nil {
		return utils.InternalError(c, "Failed to compute trends")
	}
	return utils.Success(c, trends)
}
