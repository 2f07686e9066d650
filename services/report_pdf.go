package services

import (
	"fmt"
	"sort"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/kendall-kelly/cookie-orders-api/models"
	"github.com/kendall-kelly/cookie-orders-api/report"
	"github.com/kendall-kelly/cookie-orders-api/utils"
)

// RenderWeeklyReportPDF lays out a weekly report as a printable PDF document
func RenderWeeklyReportPDF(rep models.WeeklyReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(20,
		text.NewCol(12, "Weekly Report", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(10,
		text.NewCol(12, fmt.Sprintf("Period: %s to %s",
			rep.Start.Format(report.DateLayout),
			rep.End.Format(report.DateLayout),
		), props.Text{Size: 10}),
	)

	// Totals
	m.AddRow(30,
		col.New(6).Add(
			text.New("Revenue: "+utils.FormatCurrency(rep.TotalRevenue), props.Text{Top: 0}),
			text.New("Cost: "+utils.FormatCurrency(rep.TotalCost), props.Text{Top: 6}),
			text.New("Profit: "+utils.FormatCurrency(rep.TotalProfit), props.Text{Top: 12, Style: fontstyle.Bold}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("Cookies sold: %d", rep.TotalQuantity), props.Text{Top: 0}),
			text.New(fmt.Sprintf("Customers: %d", rep.DistinctCustomers), props.Text{Top: 6}),
		),
	)

	// Quantity by flavor, alphabetical so documents are reproducible
	m.AddRow(10,
		text.NewCol(8, "Flavor", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(4, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	flavors := make([]string, 0, len(rep.QuantityByFlavor))
	for flavor := range rep.QuantityByFlavor {
		flavors = append(flavors, flavor)
	}
	sort.Strings(flavors)
	for _, flavor := range flavors {
		m.AddRow(7,
			text.NewCol(8, flavor, props.Text{Size: 9}),
			text.NewCol(4, fmt.Sprintf("%d", rep.QuantityByFlavor[flavor]), props.Text{Size: 9, Align: align.Right}),
		)
	}

	// Orders
	m.AddRow(15,
		text.NewCol(2, "Date", props.Text{Style: fontstyle.Bold, Size: 9, Top: 5}),
		text.NewCol(3, "Customer", props.Text{Style: fontstyle.Bold, Size: 9, Top: 5}),
		text.NewCol(3, "Flavor", props.Text{Style: fontstyle.Bold, Size: 9, Top: 5}),
		text.NewCol(1, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Top: 5, Align: align.Right}),
		text.NewCol(3, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Top: 5, Align: align.Right}),
	)
	for _, line := range rep.Orders {
		m.AddRow(7,
			text.NewCol(2, line.PlacedAt.Format(report.DateLayout), props.Text{Size: 9}),
			text.NewCol(3, line.CustomerName, props.Text{Size: 9}),
			text.NewCol(3, line.Flavor, props.Text{Size: 9}),
			text.NewCol(1, fmt.Sprintf("%d", line.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(3, utils.FormatCurrency(line.Revenue()), props.Text{Size: 9, Align: align.Right}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to render report PDF: %w", err)
	}
	return doc.GetBytes(), nil
}
