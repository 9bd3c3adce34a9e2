package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "mywallet/internal/errors"
	"mywallet/internal/services"
)

// ChecklistHandler serves the monthly obligations checklist.
type ChecklistHandler struct {
	checklistService services.ChecklistServicer
	now              func() time.Time
}

// NewChecklistHandler creates a new ChecklistHandler.
func NewChecklistHandler(checklistService services.ChecklistServicer) *ChecklistHandler {
	return &ChecklistHandler{checklistService: checklistService, now: time.Now}
}

// ChecklistEntryRequest names one checklist pair.
type ChecklistEntryRequest struct {
	CategoryID   uint   `json:"category_id" binding:"required"`
	SubgroupName string `json:"subgroup_name" binding:"required,max=100"`
}

// ChecklistToggleRequest switches one pair on or off.
type ChecklistToggleRequest struct {
	ChecklistEntryRequest
	Active *bool `json:"active" binding:"required"`
}

// GetStatus handles GET /checklist/status?year=&month=. Missing values
// default to the current month.
// @Summary     Checklist status
// @Description Reconcile every checklist entry against the rows settled or purchased in the month
// @Tags        checklist
// @Produce     json
// @Param       year query int false "Year (default current)"
// @Param       month query int false "Month 1-12 (default current)"
// @Success     200 {object} ChecklistStatusResponse "Checklist status"
// @Failure     400 {object} middleware.ErrorResponse "Invalid input"
// @Failure     500 {object} middleware.ErrorResponse "Server error"
// @Router      /checklist/status [get]
func (h *ChecklistHandler) GetStatus(c *gin.Context) {
	period, err := h.periodFromQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	items, err := h.checklistService.Status(period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ChecklistStatusResponse{Period: period.String(), Items: items})
}

// GetConfig handles GET /checklist/config.
// @Summary     List checklist entries
// @Tags        checklist
// @Produce     json
// @Success     200 {object} ChecklistConfigResponse "Checklist entries"
// @Failure     500 {object} middleware.ErrorResponse "Server error"
// @Router      /checklist/config [get]
func (h *ChecklistHandler) GetConfig(c *gin.Context) {
	entries, err := h.checklistService.List()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ChecklistConfigResponse{Items: entries})
}

// Toggle handles POST /checklist/toggle.
// @Summary     Toggle a checklist entry
// @Description Add the pair when active, remove it otherwise. Both directions are idempotent.
// @Tags        checklist
// @Accept      json
// @Produce     json
// @Param       request body ChecklistToggleRequest true "Pair and desired state"
// @Success     200 {object} ChecklistToggleResponse "New state"
// @Failure     400 {object} middleware.ErrorResponse "Invalid input"
// @Failure     404 {object} middleware.ErrorResponse "Category not found"
// @Failure     500 {object} middleware.ErrorResponse "Server error"
// @Router      /checklist/toggle [post]
func (h *ChecklistHandler) Toggle(c *gin.Context) {
	var req ChecklistToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	if err := h.checklistService.Toggle(req.CategoryID, req.SubgroupName, *req.Active); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ChecklistToggleResponse{Active: *req.Active})
}

// AddEntry handles POST /checklist.
// @Summary     Add a checklist entry
// @Tags        checklist
// @Accept      json
// @Produce     json
// @Param       request body ChecklistEntryRequest true "Checklist pair"
// @Success     201 {object} MessageResponse "Entry added"
// @Failure     400 {object} middleware.ErrorResponse "Invalid input"
// @Failure     404 {object} middleware.ErrorResponse "Category not found"
// @Failure     500 {object} middleware.ErrorResponse "Server error"
// @Router      /checklist [post]
func (h *ChecklistHandler) AddEntry(c *gin.Context) {
	var req ChecklistEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	if err := h.checklistService.Add(req.CategoryID, req.SubgroupName); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MessageResponse{Message: "Checklist entry added"})
}

// RemoveEntry handles DELETE /checklist.
// @Summary     Remove a checklist entry
// @Tags        checklist
// @Accept      json
// @Produce     json
// @Param       request body ChecklistEntryRequest true "Checklist pair"
// @Success     200 {object} MessageResponse "Entry removed"
// @Failure     400 {object} middleware.ErrorResponse "Invalid input"
// @Failure     404 {object} middleware.ErrorResponse "Entry not found"
// @Failure     500 {object} middleware.ErrorResponse "Server error"
// @Router      /checklist [delete]
func (h *ChecklistHandler) RemoveEntry(c *gin.Context) {
	var req ChecklistEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	if err := h.checklistService.Remove(req.CategoryID, req.SubgroupName); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Checklist entry removed"})
}

func (h *ChecklistHandler) periodFromQuery(c *gin.Context) (services.Period, error) {
	now := h.now()
	year, month := now.Year(), int(now.Month())

	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return services.Period{}, apperrors.Invalid("year", "must be a number")
		}
		year = y
	}
	if v := c.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			return services.Period{}, apperrors.Invalid("month", "must be a number")
		}
		month = m
	}
	return services.NewPeriod(year, month)
}
