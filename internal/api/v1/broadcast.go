package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/digiserve/digiserve/internal/api/dto"
	ierr "github.com/digiserve/digiserve/internal/errors"
	"github.com/digiserve/digiserve/internal/logger"
	"github.com/digiserve/digiserve/internal/service"
	"github.com/digiserve/digiserve/internal/types"
)

type BroadcastHandler struct {
	service service.BroadcastService
	log     *logger.Logger
}

func NewBroadcastHandler(service service.BroadcastService, log *logger.Logger) *BroadcastHandler {
	return &BroadcastHandler{service: service, log: log}
}

// @Summary Create a broadcast
// @Description Create an administrator announcement
// @Tags Broadcasts
// @Accept json
// @Produce json
// @Param broadcast body dto.CreateBroadcastRequest true "Broadcast"
// @Success 201 {object} dto.BroadcastResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /broadcasts [post]
func (h *BroadcastHandler) CreateBroadcast(c *gin.Context) {
	var req dto.CreateBroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateBroadcast(c.Request.Context(), req)
	if err != nil {
		h.log.Error("Failed to create broadcast", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a broadcast
// @Description Get a broadcast by ID
// @Tags Broadcasts
// @Produce json
// @Param id path string true "Broadcast ID"
// @Success 200 {object} dto.BroadcastResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /broadcasts/{id} [get]
func (h *BroadcastHandler) GetBroadcast(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.GetBroadcast(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Failed to get broadcast", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List broadcasts
// @Description List broadcasts with optional filtering
// @Tags Broadcasts
// @Produce json
// @Param filter query types.BroadcastFilter false "Filter"
// @Success 200 {object} dto.ListBroadcastsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /broadcasts [get]
func (h *BroadcastHandler) ListBroadcasts(c *gin.Context) {
	var filter types.BroadcastFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.service.ListBroadcasts(c.Request.Context(), &filter)
	if err != nil {
		h.log.Error("Failed to list broadcasts", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a broadcast
// @Description Update a broadcast
// @Tags Broadcasts
// @Accept json
// @Produce json
// @Param id path string true "Broadcast ID"
// @Param broadcast body dto.UpdateBroadcastRequest true "Broadcast"
// @Success 200 {object} dto.BroadcastResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /broadcasts/{id} [patch]
func (h *BroadcastHandler) UpdateBroadcast(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateBroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateBroadcast(c.Request.Context(), id, req)
	if err != nil {
		h.log.Error("Failed to update broadcast", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a broadcast
// @Description Delete a broadcast
// @Tags Broadcasts
// @Produce json
// @Param id path string true "Broadcast ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /broadcasts/{id} [delete]
func (h *BroadcastHandler) DeleteBroadcast(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.DeleteBroadcast(c.Request.Context(), id); err != nil {
		h.log.Error("Failed to delete broadcast", "error", err)
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
