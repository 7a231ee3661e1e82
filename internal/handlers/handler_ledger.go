package handlers

import (
	"context"
	"net/http"

	"github.com/SscSPs/penger_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/penger_ledger/internal/core/ports/services"
	"github.com/SscSPs/penger_ledger/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ledgerHandler handles balance mutations and transfers.
type ledgerHandler struct {
	ledgerService   portssvc.LedgerSvc
	transferService portssvc.TransferSvc
}

func newLedgerHandler(ls portssvc.LedgerSvc, ts portssvc.TransferSvc) *ledgerHandler {
	return &ledgerHandler{
		ledgerService:   ls,
		transferService: ts,
	}
}

// registerLedgerRoutes registers deposit, withdraw and transfer routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvc, transferService portssvc.TransferSvc) {
	h := newLedgerHandler(ledgerService, transferService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("/:accountID/deposit", h.deposit)
		accounts.POST("/:accountID/withdraw", h.withdraw)
		accounts.POST("/transfer", h.transfer)
	}
}

// deposit godoc
// @Summary Deposit into an account
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   amount body dto.AmountRequest true "Amount to deposit"
// @Success 200 {object} dto.BalanceReceiptResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid amount"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 503 {object} dto.ErrorResponse "Transient failure, retry"
// @Security BearerAuth
// @Router /accounts/{accountID}/deposit [post]
func (h *ledgerHandler) deposit(c *gin.Context) {
	h.mutate(c, h.ledgerService.Deposit)
}

// withdraw godoc
// @Summary Withdraw from an account
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   amount body dto.AmountRequest true "Amount to withdraw"
// @Success 200 {object} dto.BalanceReceiptResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid amount"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 409 {object} dto.ErrorResponse "Insufficient funds"
// @Failure 503 {object} dto.ErrorResponse "Transient failure, retry"
// @Security BearerAuth
// @Router /accounts/{accountID}/withdraw [post]
func (h *ledgerHandler) withdraw(c *gin.Context) {
	h.mutate(c, h.ledgerService.Withdraw)
}

type balanceOp func(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.BalanceReceipt, error)

func (h *ledgerHandler) mutate(c *gin.Context, op balanceOp) {
	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	receipt, err := op(c.Request.Context(), c.Param("accountID"), req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceReceiptResponse(receipt))
}

// transfer godoc
// @Summary Transfer between accounts
// @Description Moves funds between two accounts of the same currency, atomically
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.TransferReceiptResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid amount, same account or currency mismatch"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 409 {object} dto.ErrorResponse "Insufficient funds"
// @Failure 503 {object} dto.ErrorResponse "Transient failure, retry"
// @Security BearerAuth
// @Router /accounts/transfer [post]
func (h *ledgerHandler) transfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	receipt, err := h.transferService.Transfer(c.Request.Context(), req.FromAccountID, req.ToAccountID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransferReceiptResponse(receipt))
}
