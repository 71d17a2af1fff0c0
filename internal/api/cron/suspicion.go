package cron

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/digiserve/digiserve/internal/logger"
	"github.com/digiserve/digiserve/internal/service"
)

// SuspicionHandler triggers the suspicion monitor. Scheduling lives with
// the operator (external cron hitting this endpoint), not in-process.
type SuspicionHandler struct {
	suspicionService service.SuspicionService
	log              *logger.Logger
}

// NewSuspicionHandler creates a new suspicion cron handler
func NewSuspicionHandler(suspicionService service.SuspicionService, log *logger.Logger) *SuspicionHandler {
	return &SuspicionHandler{
		suspicionService: suspicionService,
		log:              log,
	}
}

// @Summary Run the suspicion scan
// @Description Scan unsettled installment payments and flag accounts with overdue tranches
// @Tags Admin
// @Produce json
// @Success 200 {object} dto.SuspicionScanResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /admin/cron/suspicion-scan [post]
func (h *SuspicionHandler) RunScan(c *gin.Context) {
	resp, err := h.suspicionService.Scan(c.Request.Context(), time.Now().UTC())
	if err != nil {
		h.log.Error("Suspicion scan failed", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
