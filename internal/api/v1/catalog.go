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

type CatalogHandler struct {
	service service.CatalogService
	log     *logger.Logger
}

func NewCatalogHandler(service service.CatalogService, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{service: service, log: log}
}

// @Summary Create a catalog service
// @Description Create a purchasable catalog service
// @Tags Catalog
// @Accept json
// @Produce json
// @Param service body dto.CreateServiceRequest true "Service"
// @Success 201 {object} dto.ServiceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /services [post]
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req dto.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateService(c.Request.Context(), req)
	if err != nil {
		h.log.Error("Failed to create service", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a catalog service
// @Description Get a catalog service by ID
// @Tags Catalog
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} dto.ServiceResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /services/{id} [get]
func (h *CatalogHandler) GetService(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.GetService(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Failed to get service", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List catalog services
// @Description List catalog services with optional filtering
// @Tags Catalog
// @Produce json
// @Param filter query types.ServiceFilter false "Filter"
// @Success 200 {object} dto.ListServicesResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /services [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	var filter types.ServiceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.service.ListServices(c.Request.Context(), &filter)
	if err != nil {
		h.log.Error("Failed to list services", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a catalog service
// @Description Update a catalog service
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param service body dto.UpdateServiceRequest true "Service"
// @Success 200 {object} dto.ServiceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /services/{id} [patch]
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateService(c.Request.Context(), id, req)
	if err != nil {
		h.log.Error("Failed to update service", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a catalog service
// @Description Delete a catalog service
// @Tags Catalog
// @Produce json
// @Param id path string true "Service ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /services/{id} [delete]
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.DeleteService(c.Request.Context(), id); err != nil {
		h.log.Error("Failed to delete service", "error", err)
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
