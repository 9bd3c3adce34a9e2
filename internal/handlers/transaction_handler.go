package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "mywallet/internal/errors"
	"mywallet/internal/models"
	"mywallet/internal/normalize"
	"mywallet/internal/pagination"
	"mywallet/internal/services"
)

// TransactionHandler handles ledger reads and writes.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for a ledger
// write. Subgroup may be a plain label or any of the legacy encodings.
type CreateTransactionRequest struct {
	Description      string           `json:"description" binding:"required,max=500"`
	Amount           *decimal.Decimal `json:"amount" binding:"required"`
	Type             models.EntryType `json:"type" binding:"omitempty,ledger_type"`
	SettlementDate   string           `json:"settlement_date" binding:"required,ledger_date"`
	PurchaseDate     string           `json:"purchase_date" binding:"omitempty,ledger_date"`
	AccountID        *uint            `json:"account_id"`
	CategoryID       uint             `json:"category_id" binding:"required"`
	Subgroup         interface{}      `json:"subgroup"`
	IsInstallment    bool             `json:"is_installment"`
	InstallmentCount int              `json:"installment_count" binding:"omitempty,min=1,max=480"`
	IsFixed          bool             `json:"is_fixed"`
}

// UpdateTransactionRequest represents the request payload for editing one
// row. Omitted fields are left unchanged; account_id 0 detaches the account.
type UpdateTransactionRequest struct {
	Description  *string          `json:"description" binding:"omitempty,max=500"`
	Amount       *decimal.Decimal `json:"amount"`
	Date         *string          `json:"date" binding:"omitempty,ledger_date"`
	PurchaseDate *string          `json:"purchase_date" binding:"omitempty,ledger_date"`
	AccountID    *uint            `json:"account_id"`
	CategoryID   *uint            `json:"category_id"`
	Subgroup     interface{}      `json:"subgroup"`
	IsFixed      *bool            `json:"is_fixed"`
}

// CreateTransaction handles POST /transactions. An installment purchase
// answers with every row it created.
// @Summary     Record a ledger write
// @Description Record an expense or revenue. An installment expense is expanded into one row per month sharing a group id.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body CreateTransactionRequest true "Ledger write"
// @Success     201 {object} services.CreateResult "Rows created"
// @Failure     400 {object} middleware.ErrorResponse "Invalid input"
// @Failure     404 {object} middleware.ErrorResponse "Account or category not found"
// @Failure     500 {object} middleware.ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	result, err := h.transactionService.CreateTransaction(services.ExpenseIntent{
		Description:      req.Description,
		Amount:           *req.Amount,
		Type:             req.Type,
		SettlementDate:   req.SettlementDate,
		PurchaseDate:     req.PurchaseDate,
		AccountID:        req.AccountID,
		CategoryID:       req.CategoryID,
		Subgroup:         req.Subgroup,
		IsInstallment:    req.IsInstallment,
		InstallmentCount: req.InstallmentCount,
		IsFixed:          req.IsFixed,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetTransactions handles GET /transactions. The listing is unpaged unless
// page or page_size is given.
// @Summary     List ledger rows
// @Description Filtered ledger listing. Paged only when page or page_size is given.
// @Tags        transactions
// @Produce     json
// @Param       type query string false "expense or revenue"
// @Param       category_id query int false "Category ID"
// @Param       account_id query int false "Account ID"
// @Param       from query string false "Inclusive start date"
// @Param       to query string false "Inclusive end date"
// @Param       axis query string false "settlement or purchase"
// @Param       group_id query string false "Installment group ID"
// @Param       period query string false "Month touched by either date (YYYY-MM)"
// @Param       order query string false "asc or desc (default desc)"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Items per page"
// @Success     200 {object} TransactionListResponse "Ledger rows"
// @Failure     400 {object} middleware.ErrorResponse "Invalid input"
// @Failure     500 {object} middleware.ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	filter, err := parseLedgerFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	if page.Requested() {
		result, err := h.transactionService.GetTransactionsPage(filter, page)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
		return
	}

	rows, err := h.transactionService.GetTransactions(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if rows == nil {
		rows = []models.LedgerRow{}
	}
	c.JSON(http.StatusOK, TransactionListResponse{Transactions: rows})
}

func parseLedgerFilter(c *gin.Context) (services.LedgerFilter, error) {
	var filter services.LedgerFilter

	entryType, err := parseTypeQuery(c)
	if err != nil {
		return filter, err
	}
	filter.Type = entryType

	for _, p := range []struct {
		name string
		dst  **uint
	}{
		{"category_id", &filter.CategoryID},
		{"account_id", &filter.AccountID},
	} {
		id, err := parseUintQuery(c, p.name)
		if err != nil {
			return filter, err
		}
		*p.dst = id
	}

	if v := c.Query("from"); v != "" {
		d, err := normalize.ParseDate(v)
		if err != nil {
			return filter, apperrors.Invalid("from", "must be YYYY-MM-DD or DD/MM/YYYY")
		}
		filter.From = &d
	}
	if v := c.Query("to"); v != "" {
		d, err := normalize.ParseDate(v)
		if err != nil {
			return filter, apperrors.Invalid("to", "must be YYYY-MM-DD or DD/MM/YYYY")
		}
		filter.To = &d
	}

	if v := c.Query("axis"); v != "" {
		axis := services.DateAxis(v)
		if !axis.Valid() {
			return filter, apperrors.Invalid("axis", "must be settlement or purchase")
		}
		filter.Axis = axis
	}

	if v := c.Query("group_id"); v != "" {
		filter.GroupID = &v
	}

	if v := c.Query("period"); v != "" {
		p, err := services.ParsePeriod(v)
		if err != nil {
			return filter, err
		}
		filter.Period = &p
	}

	order, err := pagination.ParseDirection(c.Query("order"))
	if err != nil {
		return filter, apperrors.Invalid("order", "must be asc or desc")
	}
	filter.Order = order

	return filter, nil
}

// GetTransactionByID handles GET /transactions/:id.
// @Summary     Get a ledger row
// @Tags        transactions
// @Produce     json
// @Param       id path int true "Transaction ID"
// @Success     200 {object} TransactionResponse "Ledger row"
// @Failure     400 {object} middleware.ErrorResponse "Invalid transaction ID"
// @Failure     404 {object} middleware.ErrorResponse "Transaction not found"
// @Failure     500 {object} middleware.ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	row, err := h.transactionService.GetTransactionByID(transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Transaction: row})
}

// UpdateTransaction handles PUT /transactions/:id. Only the addressed row
// changes, even inside an installment group.
// @Summary     Edit a ledger row
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id path int true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to change"
// @Success     200 {object} TransactionResponse "Ledger row updated"
// @Failure     400 {object} middleware.ErrorResponse "Invalid input"
// @Failure     404 {object} middleware.ErrorResponse "Transaction not found"
// @Failure     500 {object} middleware.ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	update := services.RowUpdate{
		Description:  req.Description,
		Amount:       req.Amount,
		Date:         req.Date,
		PurchaseDate: req.PurchaseDate,
		AccountID:    req.AccountID,
		CategoryID:   req.CategoryID,
		IsFixed:      req.IsFixed,
	}
	if req.Subgroup != nil {
		label := normalize.Subgroup(req.Subgroup)
		update.Subgroup = &label
	}

	row, err := h.transactionService.UpdateTransaction(transactionID, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Transaction: row})
}

// DeleteTransaction handles DELETE /transactions/:id. With ?group_id= the
// whole installment group is removed instead of the single row.
// @Summary     Delete a ledger row
// @Tags        transactions
// @Produce     json
// @Param       id path int true "Transaction ID"
// @Param       group_id query string false "Delete this installment group instead"
// @Success     200 {object} DeleteResponse "Rows deleted"
// @Failure     400 {object} middleware.ErrorResponse "Invalid transaction ID"
// @Failure     404 {object} middleware.ErrorResponse "Transaction not found"
// @Failure     500 {object} middleware.ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if groupID := c.Query("group_id"); groupID != "" {
		h.deleteGroup(c, groupID)
		return
	}

	if err := h.transactionService.DeleteTransaction(transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, DeleteResponse{Message: "Transaction deleted successfully", Deleted: 1})
}

// DeleteInstallmentGroup handles DELETE /transactions/groups/:groupId.
// @Summary     Delete an installment group
// @Tags        transactions
// @Produce     json
// @Param       groupId path string true "Installment group ID"
// @Success     200 {object} DeleteResponse "Rows deleted"
// @Failure     404 {object} middleware.ErrorResponse "Group not found"
// @Failure     500 {object} middleware.ErrorResponse "Server error"
// @Router      /transactions/groups/{groupId} [delete]
func (h *TransactionHandler) DeleteInstallmentGroup(c *gin.Context) {
	h.deleteGroup(c, c.Param("groupId"))
}

func (h *TransactionHandler) deleteGroup(c *gin.Context, groupID string) {
	deleted, err := h.transactionService.DeleteInstallmentGroup(groupID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, DeleteResponse{Message: "Installment group deleted successfully", Deleted: deleted})
}
