package handlers

import (
	"mywallet/internal/models"
	"mywallet/internal/services"
)

// HealthResponse answers GET /api/health.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// DeleteResponse reports how many ledger rows a delete removed.
type DeleteResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted" example:"12"`
}

// AccountResponse wraps a single account.
type AccountResponse struct {
	Account *models.Account `json:"account"`
}

// AccountListResponse wraps every account with its computed balance.
type AccountListResponse struct {
	Accounts []models.Account `json:"accounts"`
}

// CategoryResponse wraps a single category.
type CategoryResponse struct {
	Category *models.Category `json:"category"`
}

// CategoryListResponse wraps a list of categories.
type CategoryListResponse struct {
	Categories []models.Category `json:"categories"`
}

// TransactionResponse wraps one ledger row with its account and category
// names.
type TransactionResponse struct {
	Transaction *models.LedgerRow `json:"transaction"`
}

// TransactionListResponse is the unpaged ledger listing.
type TransactionListResponse struct {
	Transactions []models.LedgerRow `json:"transactions"`
}

// ChecklistStatusResponse is the checklist reconciled against one month.
type ChecklistStatusResponse struct {
	Period string                     `json:"period" example:"2024-03"`
	Items  []services.ChecklistStatus `json:"items"`
}

// ChecklistConfigResponse lists the configured checklist pairs.
type ChecklistConfigResponse struct {
	Items []services.ChecklistEntry `json:"items"`
}

// ChecklistToggleResponse echoes the state a toggle left the pair in.
type ChecklistToggleResponse struct {
	Active bool `json:"active"`
}
