package handlers

import (
	"net/http"
	"time"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"

	apperrors "mywallet/internal/errors"
	"mywallet/internal/normalize"
	"mywallet/internal/services"
)

// defaultReportMonths is the trend length when a report names no start.
const defaultReportMonths = 12

// ReportHandler serves the reports and the dashboard.
type ReportHandler struct {
	reportService services.ReportServicer
	now           func() time.Time
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService, now: time.Now}
}

// ReportQuery holds the query parameters of GET /reports.
type ReportQuery struct {
	Start      string `form:"start" binding:"omitempty,ledger_date"`
	End        string `form:"end" binding:"omitempty,ledger_date"`
	Axis       string `form:"axis" binding:"omitempty,date_axis"`
	CategoryID *uint  `form:"category_id"`
	Months     int    `form:"months" binding:"omitempty,min=1,max=120"`
}

// GetReport handles GET /reports. Without end the range closes with the
// current month; without start it opens months-1 months earlier.
// @Summary     Build a report
// @Description Zero-filled monthly trend, category and subgroup breakdown, and summary over one date axis
// @Tags        reports
// @Produce     json
// @Param       start query string false "Range start"
// @Param       end query string false "Range end (default end of current month)"
// @Param       axis query string false "settlement or purchase"
// @Param       category_id query int false "Restrict the expense side to one category"
// @Param       months query int false "Trend length when start is omitted (default 12)"
// @Success     200 {object} services.Report "Report"
// @Failure     400 {object} middleware.ErrorResponse "Invalid input"
// @Failure     404 {object} middleware.ErrorResponse "Category not found"
// @Failure     500 {object} middleware.ErrorResponse "Server error"
// @Router      /reports [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	var q ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	req, err := h.reportRequest(q)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.reportService.Build(req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) reportRequest(q ReportQuery) (services.ReportRequest, error) {
	req := services.ReportRequest{
		Axis:       services.DateAxis(q.Axis),
		CategoryID: q.CategoryID,
	}

	req.End = services.PeriodOf(civil.DateOf(h.now())).End()
	if q.End != "" {
		end, err := normalize.ParseDate(q.End)
		if err != nil {
			return req, apperrors.Invalid("end", err.Error())
		}
		req.End = end
	}

	if q.Start != "" {
		start, err := normalize.ParseDate(q.Start)
		if err != nil {
			return req, apperrors.Invalid("start", err.Error())
		}
		req.Start = start
		return req, nil
	}

	months := q.Months
	if months == 0 {
		months = defaultReportMonths
	}
	req.Start = services.PeriodOf(req.End).AddMonths(-(months - 1)).Start()
	return req, nil
}

// GetDashboard handles GET /dashboard with an optional ?period=YYYY-MM.
// @Summary     Dashboard
// @Description Overall balance, month summary, category breakdown and recent trend
// @Tags        reports
// @Produce     json
// @Param       period query string false "Month (YYYY-MM, default current)"
// @Success     200 {object} services.Dashboard "Dashboard"
// @Failure     400 {object} middleware.ErrorResponse "Invalid input"
// @Failure     500 {object} middleware.ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	period := services.PeriodOf(civil.DateOf(h.now()))
	if v := c.Query("period"); v != "" {
		p, err := services.ParsePeriod(v)
		if err != nil {
			respondWithError(c, err)
			return
		}
		period = p
	}

	dashboard, err := h.reportService.Dashboard(period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
