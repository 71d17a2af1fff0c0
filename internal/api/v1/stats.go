package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/digiserve/digiserve/internal/logger"
	"github.com/digiserve/digiserve/internal/service"
)

type StatsHandler struct {
	service service.StatsService
	log     *logger.Logger
}

func NewStatsHandler(service service.StatsService, log *logger.Logger) *StatsHandler {
	return &StatsHandler{service: service, log: log}
}

// @Summary Admin dashboard stats
// @Description Aggregate account, catalog and payment counts plus revenue totals
// @Tags Admin
// @Produce json
// @Success 200 {object} dto.AdminStatsResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /admin/stats [get]
func (h *StatsHandler) GetAdminStats(c *gin.Context) {
	resp, err := h.service.GetAdminStats(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to compute admin stats", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
