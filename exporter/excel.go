// Package exporter renders a consolidated result into an Excel workbook
// for the accounting dashboard's report download.
package exporter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"app/models"
)

const summarySheet = "Summary"

// BuildWorkbook renders the result into a workbook: a summary sheet with
// the period, financials, KPIs and quality warnings, plus one sheet per
// contributing source with its breakdown tables.
func BuildWorkbook(result *models.ConsolidatedResult) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}

	if err := writeSummary(f, result); err != nil {
		return nil, err
	}

	// Deterministic sheet order regardless of map iteration.
	names := make([]string, 0, len(result.Sources))
	for name := range result.Sources {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := writeSource(f, name, result.Sources[name]); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func writeSummary(f *excelize.File, result *models.ConsolidatedResult) error {
	rows := [][]interface{}{
		{"Consolidated Financial Report", ""},
		{"Period start", result.Period.StartDate.Format("2006-01-02")},
		{"Period end", result.Period.EndDate.Format("2006-01-02")},
		{"Days", result.Period.Days},
		{"Generated at", result.Metadata.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"", ""},
		{"Total revenue", result.Summary.TotalRevenue},
		{"Total expenses", result.Summary.TotalExpenses},
		{"Profit", result.Summary.Profit},
		{"Profit margin %", result.Summary.ProfitMargin},
		{"Average ticket", result.Summary.AverageTicket},
		{"Labor cost %", result.Summary.LaborCostPct},
		{"Food cost %", result.Summary.FoodCostPct},
		{"Inventory turnover", result.Summary.InventoryTurnover},
		{"", ""},
		{"Completeness score", result.Metadata.DataQuality.CompletenessScore},
		{"Consistency score", result.Metadata.DataQuality.ConsistencyScore},
	}

	row := 1
	for _, cells := range rows {
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", row), &cells); err != nil {
			return err
		}
		row++
	}

	if warnings := result.Metadata.DataQuality.Warnings; len(warnings) > 0 {
		row++
		header := []interface{}{"Warning type", "Source", "Impact", "Message"}
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", row), &header); err != nil {
			return err
		}
		row++
		for _, w := range warnings {
			cells := []interface{}{w.Type, w.Source, w.Impact, w.Message}
			if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", row), &cells); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeSource(f *excelize.File, name string, data models.Aggregate) error {
	sheet := sheetTitle(name)
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	row := 1
	writeRow := func(cells ...interface{}) error {
		err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &cells)
		row++
		return err
	}

	switch agg := data.(type) {
	case *models.SalesData:
		if err := writeRow("Total sales", agg.TotalSales); err != nil {
			return err
		}
		if err := writeRow("Transactions", agg.TransactionCount); err != nil {
			return err
		}
		if err := writeRow("Average ticket", agg.AverageTicket); err != nil {
			return err
		}
		row++
		if err := writeBreakdown(writeRow, "By category", agg.ByCategory); err != nil {
			return err
		}
		if err := writeBreakdown(writeRow, "By payment method", agg.ByPaymentMethod); err != nil {
			return err
		}
		return writeBreakdown(writeRow, "By service period", agg.ByServicePeriod)
	case *models.ExpensesData:
		if err := writeRow("Total expenses", agg.TotalExpenses); err != nil {
			return err
		}
		if err := writeRow("Fixed costs", agg.FixedCosts); err != nil {
			return err
		}
		if err := writeRow("Variable costs", agg.VariableCosts); err != nil {
			return err
		}
		row++
		if err := writeBreakdown(writeRow, "By category", agg.ByCategory); err != nil {
			return err
		}
		return writeBreakdown(writeRow, "By vendor", agg.ByVendor)
	case *models.InventoryData:
		if err := writeRow("Total value", agg.TotalValue); err != nil {
			return err
		}
		if err := writeRow("Items", agg.ItemCount); err != nil {
			return err
		}
		row++
		return writeBreakdown(writeRow, "By category", agg.ByCategory)
	case *models.StaffData:
		if err := writeRow("Total hours", agg.TotalHours); err != nil {
			return err
		}
		if err := writeRow("Total labor cost", agg.TotalCost); err != nil {
			return err
		}
		row++
		if err := writeBreakdown(writeRow, "By department", agg.ByDepartment); err != nil {
			return err
		}
		return writeBreakdown(writeRow, "By shift type", agg.ByShiftType)
	case *models.MarketingData:
		if err := writeRow("Total spend", agg.TotalSpend); err != nil {
			return err
		}
		row++
		if err := writeBreakdown(writeRow, "By channel", agg.ByChannel); err != nil {
			return err
		}
		return writeBreakdown(writeRow, "By campaign type", agg.ByCampaignType)
	}
	return nil
}

func writeBreakdown(writeRow func(...interface{}) error, title string, b models.Breakdown) error {
	if err := writeRow(title, "Total", "Count"); err != nil {
		return err
	}
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := writeRow(k, b[k].Total, b[k].Count); err != nil {
			return err
		}
	}
	return writeRow("")
}

func sheetTitle(name string) string {
	if name == "" {
		return "Source"
	}
	// Sheet names are capped at 31 chars by the format; source names are
	// short, so just capitalize.
	return strings.ToUpper(name[:1]) + name[1:]
}
