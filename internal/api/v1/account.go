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

type AccountHandler struct {
	service service.AccountService
	log     *logger.Logger
}

func NewAccountHandler(service service.AccountService, log *logger.Logger) *AccountHandler {
	return &AccountHandler{service: service, log: log}
}

// @Summary Register an account
// @Description Register a new customer or administrator account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateAccountRequest true "Account"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateAccount(c.Request.Context(), req)
	if err != nil {
		h.log.Error("Failed to create account", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get an account by ID
// @Description Get an account by ID
// @Tags Accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /accounts/{id} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.GetAccount(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Failed to get account", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List accounts
// @Description List accounts with optional filtering
// @Tags Accounts
// @Produce json
// @Param filter query types.AccountFilter false "Filter"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	var filter types.AccountFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.service.ListAccounts(c.Request.Context(), &filter)
	if err != nil {
		h.log.Error("Failed to list accounts", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update an account
// @Description Update an account's profile fields
// @Tags Accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param account body dto.UpdateAccountRequest true "Account"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /accounts/{id} [patch]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateAccount(c.Request.Context(), id, req)
	if err != nil {
		h.log.Error("Failed to update account", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Set the installment policy
// @Description Replace an account's installment policy
// @Tags Accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param policy body dto.SetInstallmentPolicyRequest true "Policy"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /accounts/{id}/installment-policy [put]
func (h *AccountHandler) SetInstallmentPolicy(c *gin.Context) {
	id := c.Param("id")

	var req dto.SetInstallmentPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.SetInstallmentPolicy(c.Request.Context(), id, req)
	if err != nil {
		h.log.Error("Failed to set installment policy", "error", err, "account_id", id)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Set the suspicion flag
// @Description Manually flag or clear an account's suspicion flag
// @Tags Accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param suspicion body dto.SetSuspicionRequest true "Suspicion"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /accounts/{id}/suspicion [put]
func (h *AccountHandler) SetSuspicion(c *gin.Context) {
	id := c.Param("id")

	var req dto.SetSuspicionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.SetSuspicion(c.Request.Context(), id, req)
	if err != nil {
		h.log.Error("Failed to set suspicion flag", "error", err, "account_id", id)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
