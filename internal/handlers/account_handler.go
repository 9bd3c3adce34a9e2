package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"mywallet/internal/services"
)

// AccountHandler handles account-related requests.
type AccountHandler struct {
	accountService services.AccountServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateAccountRequest represents the request payload for creating an account
type CreateAccountRequest struct {
	Name           string           `json:"name" binding:"required,min=1,max=100"`
	InitialBalance *decimal.Decimal `json:"initial_balance"`
	IsCreditCard   bool             `json:"is_credit_card"`
}

// UpdateAccountRequest represents the request payload for updating an account.
type UpdateAccountRequest struct {
	Name           *string          `json:"name" binding:"omitempty,min=1,max=100"`
	InitialBalance *decimal.Decimal `json:"initial_balance"`
	IsCreditCard   *bool            `json:"is_credit_card"`
}

// CreateAccount handles POST /accounts.
// @Summary     Create an account
// @Description Create an account with an optional opening balance
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Param       request body CreateAccountRequest true "Account details"
// @Success     201 {object} AccountResponse "Account created"
// @Failure     400 {object} middleware.ErrorResponse "Invalid input"
// @Failure     409 {object} middleware.ErrorResponse "Duplicate name"
// @Failure     500 {object} middleware.ErrorResponse "Server error"
// @Router      /accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	initial := decimal.Zero
	if req.InitialBalance != nil {
		initial = *req.InitialBalance
	}

	account, err := h.accountService.CreateAccount(req.Name, initial, req.IsCreditCard)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AccountResponse{Account: account})
}

// GetAccounts handles GET /accounts.
// @Summary     List accounts
// @Description List every account with its computed balance
// @Tags        accounts
// @Produce     json
// @Success     200 {object} AccountListResponse "Accounts"
// @Failure     500 {object} middleware.ErrorResponse "Server error"
// @Router      /accounts [get]
func (h *AccountHandler) GetAccounts(c *gin.Context) {
	accounts, err := h.accountService.GetAccounts()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, AccountListResponse{Accounts: accounts})
}

// GetAccountByID handles GET /accounts/:id.
// @Summary     Get an account
// @Tags        accounts
// @Produce     json
// @Param       id path int true "Account ID"
// @Success     200 {object} AccountResponse "Account"
// @Failure     400 {object} middleware.ErrorResponse "Invalid account ID"
// @Failure     404 {object} middleware.ErrorResponse "Account not found"
// @Failure     500 {object} middleware.ErrorResponse "Server error"
// @Router      /accounts/{id} [get]
func (h *AccountHandler) GetAccountByID(c *gin.Context) {
	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.GetAccountByID(accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, AccountResponse{Account: account})
}

// UpdateAccount handles PUT /accounts/:id.
// @Summary     Update an account
// @Description Rename an account or change its opening balance
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Param       id path int true "Account ID"
// @Param       request body UpdateAccountRequest true "Fields to change"
// @Success     200 {object} AccountResponse "Account updated"
// @Failure     400 {object} middleware.ErrorResponse "Invalid input"
// @Failure     404 {object} middleware.ErrorResponse "Account not found"
// @Failure     409 {object} middleware.ErrorResponse "Duplicate name"
// @Failure     500 {object} middleware.ErrorResponse "Server error"
// @Router      /accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	account, err := h.accountService.UpdateAccount(accountID, services.AccountUpdate{
		Name:           req.Name,
		InitialBalance: req.InitialBalance,
		IsCreditCard:   req.IsCreditCard,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, AccountResponse{Account: account})
}

// DeleteAccount handles DELETE /accounts/:id. Accounts referenced by ledger
// rows are refused with ACCOUNT_IN_USE and the number of rows.
// @Summary     Delete an account
// @Tags        accounts
// @Produce     json
// @Param       id path int true "Account ID"
// @Success     200 {object} MessageResponse "Account deleted"
// @Failure     404 {object} middleware.ErrorResponse "Account not found"
// @Failure     409 {object} middleware.ErrorResponse "Account has linked transactions"
// @Failure     500 {object} middleware.ErrorResponse "Server error"
// @Router      /accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.accountService.DeleteAccount(accountID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Account deleted successfully"})
}
