package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/penger_ledger/internal/core/ports/services"
	"github.com/SscSPs/penger_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type accountTypeHandler struct {
	accountTypeService portssvc.AccountTypeSvcFacade
}

func newAccountTypeHandler(ats portssvc.AccountTypeSvcFacade) *accountTypeHandler {
	return &accountTypeHandler{
		accountTypeService: ats,
	}
}

// registerAccountTypeRoutes registers routes related to account types.
func registerAccountTypeRoutes(rg *gin.RouterGroup, accountTypeService portssvc.AccountTypeSvcFacade) {
	h := newAccountTypeHandler(accountTypeService)

	types := rg.Group("/account-types")
	{
		types.POST("", h.createAccountType)
		types.GET("", h.listAccountTypes)
		types.GET("/name/:name", h.getAccountTypeByName)
		types.GET("/:accountTypeID", h.getAccountType)
		types.PUT("/:accountTypeID", h.updateAccountType)
		types.DELETE("/:accountTypeID", h.deleteAccountType)
		types.PATCH("/:accountTypeID/toggle-status", h.toggleAccountTypeStatus)
	}
}

// createAccountType godoc
// @Summary Create an account type
// @Tags account-types
// @Accept  json
// @Produce  json
// @Param   accountType body dto.CreateAccountTypeRequest true "Account type details"
// @Success 201 {object} dto.AccountTypeResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Name already taken"
// @Security BearerAuth
// @Router /account-types [post]
func (h *accountTypeHandler) createAccountType(c *gin.Context) {
	var req dto.CreateAccountTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	accountType, err := h.accountTypeService.CreateAccountType(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountTypeResponse(accountType))
}

// listAccountTypes godoc
// @Summary List account types
// @Tags account-types
// @Produce  json
// @Param   activeOnly query bool false "Only active account types"
// @Success 200 {array} dto.AccountTypeResponse
// @Security BearerAuth
// @Router /account-types [get]
func (h *accountTypeHandler) listAccountTypes(c *gin.Context) {
	var params dto.ActiveOnlyParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	types, err := h.accountTypeService.ListAccountTypes(c.Request.Context(), params.ActiveOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountTypeResponse(types))
}

// getAccountType godoc
// @Summary Get an account type by ID
// @Tags account-types
// @Produce  json
// @Param   accountTypeID path string true "Account type ID"
// @Success 200 {object} dto.AccountTypeResponse
// @Failure 404 {object} dto.ErrorResponse "Account type not found"
// @Security BearerAuth
// @Router /account-types/{accountTypeID} [get]
func (h *accountTypeHandler) getAccountType(c *gin.Context) {
	accountType, err := h.accountTypeService.GetAccountTypeByID(c.Request.Context(), c.Param("accountTypeID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountTypeResponse(accountType))
}

// getAccountTypeByName godoc
// @Summary Get an account type by name
// @Tags account-types
// @Produce  json
// @Param   name path string true "Account type name"
// @Success 200 {object} dto.AccountTypeResponse
// @Failure 404 {object} dto.ErrorResponse "Account type not found"
// @Security BearerAuth
// @Router /account-types/name/{name} [get]
func (h *accountTypeHandler) getAccountTypeByName(c *gin.Context) {
	accountType, err := h.accountTypeService.GetAccountTypeByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountTypeResponse(accountType))
}

// updateAccountType godoc
// @Summary Update an account type
// @Tags account-types
// @Accept  json
// @Produce  json
// @Param   accountTypeID path string true "Account type ID"
// @Param   accountType body dto.UpdateAccountTypeRequest true "Fields to update"
// @Success 200 {object} dto.AccountTypeResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Account type not found"
// @Failure 409 {object} dto.ErrorResponse "Name already taken"
// @Security BearerAuth
// @Router /account-types/{accountTypeID} [put]
func (h *accountTypeHandler) updateAccountType(c *gin.Context) {
	var req dto.UpdateAccountTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	accountType, err := h.accountTypeService.UpdateAccountType(c.Request.Context(), c.Param("accountTypeID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountTypeResponse(accountType))
}

// deleteAccountType godoc
// @Summary Delete an account type
// @Tags account-types
// @Param   accountTypeID path string true "Account type ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Account type not found"
// @Failure 409 {object} dto.ErrorResponse "Account type is used by accounts"
// @Security BearerAuth
// @Router /account-types/{accountTypeID} [delete]
func (h *accountTypeHandler) deleteAccountType(c *gin.Context) {
	if err := h.accountTypeService.DeleteAccountType(c.Request.Context(), c.Param("accountTypeID")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// toggleAccountTypeStatus godoc
// @Summary Toggle the active flag of an account type
// @Tags account-types
// @Produce  json
// @Param   accountTypeID path string true "Account type ID"
// @Success 200 {object} dto.AccountTypeResponse
// @Failure 404 {object} dto.ErrorResponse "Account type not found"
// @Security BearerAuth
// @Router /account-types/{accountTypeID}/toggle-status [patch]
func (h *accountTypeHandler) toggleAccountTypeStatus(c *gin.Context) {
	accountType, err := h.accountTypeService.ToggleAccountTypeStatus(c.Request.Context(), c.Param("accountTypeID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountTypeResponse(accountType))
}
