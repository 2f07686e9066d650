package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/cookie-orders-api/models"
	"github.com/kendall-kelly/cookie-orders-api/report"
	"github.com/kendall-kelly/cookie-orders-api/services"
	"github.com/kendall-kelly/cookie-orders-api/utils"
)

// ReportOrderResponse is one order line of a weekly report
type ReportOrderResponse struct {
	OrderID      uint        `json:"orderId"`
	CustomerName string      `json:"customerName"`
	Flavor       string      `json:"flavor"`
	Quantity     int         `json:"quantity"`
	UnitPrice    utils.Money `json:"unitPrice"`
	UnitCost     utils.Money `json:"unitCost"`
	LineRevenue  utils.Money `json:"lineRevenue"`
	LineCost     utils.Money `json:"lineCost"`
	LineProfit   utils.Money `json:"lineProfit"`
	PlacedAt     string      `json:"placedAt"`
}

// WeeklyReportResponse is the JSON form of a weekly report
type WeeklyReportResponse struct {
	Start             string                `json:"start"`
	End               string                `json:"end"`
	TotalRevenue      utils.Money           `json:"totalRevenue"`
	TotalCost         utils.Money           `json:"totalCost"`
	TotalProfit       utils.Money           `json:"totalProfit"`
	TotalQuantity     int                   `json:"totalQuantity"`
	DistinctCustomers int                   `json:"distinctCustomers"`
	QuantityByFlavor  map[string]int        `json:"quantityByFlavor"`
	Orders            []ReportOrderResponse `json:"orders"`
}

func newWeeklyReportResponse(rep models.WeeklyReport) WeeklyReportResponse {
	byFlavor := rep.QuantityByFlavor
	if byFlavor == nil {
		byFlavor = map[string]int{}
	}

	orders := make([]ReportOrderResponse, 0, len(rep.Orders))
	for _, line := range rep.Orders {
		orders = append(orders, ReportOrderResponse{
			OrderID:      line.OrderID,
			CustomerName: line.CustomerName,
			Flavor:       line.Flavor,
			Quantity:     line.Quantity,
			UnitPrice:    utils.NewMoney(line.UnitPrice),
			UnitCost:     utils.NewMoney(line.UnitCost),
			LineRevenue:  utils.NewMoney(line.Revenue()),
			LineCost:     utils.NewMoney(line.Cost()),
			LineProfit:   utils.NewMoney(line.Profit()),
			PlacedAt:     line.PlacedAt.UTC().Format(time.RFC3339),
		})
	}

	return WeeklyReportResponse{
		Start:             rep.Start.Format(report.DateLayout),
		End:               rep.End.Format(report.DateLayout),
		TotalRevenue:      utils.NewMoney(rep.TotalRevenue),
		TotalCost:         utils.NewMoney(rep.TotalCost),
		TotalProfit:       utils.NewMoney(rep.TotalProfit),
		TotalQuantity:     rep.TotalQuantity,
		DistinctCustomers: rep.DistinctCustomers,
		QuantityByFlavor:  byFlavor,
		Orders:            orders,
	}
}

// loadWeeklyReport parses the start/end query and builds the report.
// It writes the error response itself and returns false on failure.
func (ctl *Controller) loadWeeklyReport(c *gin.Context) (models.WeeklyReport, bool) {
	r, err := ctl.reports.ParseRange(c.Query("start"), c.Query("end"))
	if err != nil {
		message := "Invalid date range"
		if errors.Is(err, report.ErrMissingDate) {
			message = "start and end query parameters are required"
		}
		respondValidation(c, message, err)
		return models.WeeklyReport{}, false
	}

	rep, err := ctl.reports.Weekly(c.Request.Context(), r)
	if err != nil {
		ctl.respondStoreError(c, "Failed to generate report", err)
		return models.WeeklyReport{}, false
	}
	return rep, true
}

// WeeklyReport handles GET /report/weekly?start=YYYY-MM-DD&end=YYYY-MM-DD
func (ctl *Controller) WeeklyReport(c *gin.Context) {
	rep, ok := ctl.loadWeeklyReport(c)
	if !ok {
		return
	}
	ctl.metrics.ReportGenerated("json")
	c.JSON(http.StatusOK, newWeeklyReportResponse(rep))
}

// WeeklyReportPDF handles GET /report/weekly/pdf
func (ctl *Controller) WeeklyReportPDF(c *gin.Context) {
	rep, ok := ctl.loadWeeklyReport(c)
	if !ok {
		return
	}

	pdf, err := services.RenderWeeklyReportPDF(rep)
	if err != nil {
		ctl.respondStoreError(c, "Failed to render report", err)
		return
	}
	ctl.metrics.ReportGenerated("pdf")

	filename := "weekly-report_" + rep.Start.Format(report.DateLayout) + "_" + rep.End.Format(report.DateLayout) + ".pdf"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ArchiveWeeklyReport handles POST /report/weekly/archive
func (ctl *Controller) ArchiveWeeklyReport(c *gin.Context) {
	if !ctl.archiver.Enabled() {
		ctl.respondStoreError(c, "Failed to archive report", services.ErrArchiveDisabled)
		return
	}

	rep, ok := ctl.loadWeeklyReport(c)
	if !ok {
		return
	}

	pdf, err := services.RenderWeeklyReportPDF(rep)
	if err != nil {
		ctl.respondStoreError(c, "Failed to render report", err)
		return
	}

	archived, err := ctl.archiver.Archive(c.Request.Context(), rep, pdf)
	if err != nil {
		ctl.respondStoreError(c, "Failed to archive report", err)
		return
	}
	ctl.metrics.ReportGenerated("archive")

	c.JSON(http.StatusCreated, archived)
}
