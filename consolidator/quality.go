package consolidator

import (
	"fmt"

	"app/models"
)

// Data-quality scoring thresholds. Heuristic, restaurant-specific values
// kept in sync with the dashboards that display them.
const (
	missingSourcePenalty   = 25
	businessAnomalyPenalty = 30
	dataAnomalyPenalty     = 20

	minPlausibleTicket = 5.0
	maxPlausibleTicket = 500.0
)

// Evaluate scores the result's completeness (required sources present) and
// consistency (business plausibility) in place, appending a warning for
// every deduction. Scores floor at 0.
func Evaluate(result *models.ConsolidatedResult) {
	quality := &result.Metadata.DataQuality

	completeness := 100
	for _, name := range RequiredSources {
		if _, ok := result.Sources[name]; ok {
			continue
		}
		completeness -= missingSourcePenalty
		quality.Warnings = append(quality.Warnings, models.Warning{
			Type:    "missing_source",
			Source:  name,
			Message: fmt.Sprintf("required source %s is missing from the consolidation", name),
			Impact:  "high",
		})
	}
	quality.CompletenessScore = floorZero(completeness)

	consistency := 100
	sales, _ := result.Sources["sales"].(*models.SalesData)
	expenses, _ := result.Sources["expenses"].(*models.ExpensesData)

	if sales != nil && expenses != nil && expenses.TotalExpenses > sales.TotalSales {
		consistency -= businessAnomalyPenalty
		quality.Warnings = append(quality.Warnings, models.Warning{
			Type:    "business_anomaly",
			Message: fmt.Sprintf("expenses (%.2f) exceed revenue (%.2f) for the period", expenses.TotalExpenses, sales.TotalSales),
			Impact:  "high",
		})
	}

	if sales != nil && (sales.AverageTicket < minPlausibleTicket || sales.AverageTicket > maxPlausibleTicket) {
		consistency -= dataAnomalyPenalty
		quality.Warnings = append(quality.Warnings, models.Warning{
			Type:    "data_anomaly",
			Source:  "sales",
			Message: fmt.Sprintf("average ticket %.2f is outside the plausible range [%.0f, %.0f]", sales.AverageTicket, minPlausibleTicket, maxPlausibleTicket),
			Impact:  "medium",
		})
	}
	quality.ConsistencyScore = floorZero(consistency)
}

func floorZero(score int) int {
	if score < 0 {
		return 0
	}
	return score
}
