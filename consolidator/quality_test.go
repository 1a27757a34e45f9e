package consolidator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"app/models"
)

func emptyResult() *models.ConsolidatedResult {
	return &models.ConsolidatedResult{
		Sources: map[string]models.Aggregate{},
		Metadata: models.Metadata{
			DataQuality: models.DataQuality{Warnings: []models.Warning{}},
		},
	}
}

func TestEvaluateAllRequiredPresent(t *testing.T) {
	result := emptyResult()
	result.Sources["sales"] = &models.SalesData{TotalSales: 1000, AverageTicket: 25}
	result.Sources["expenses"] = &models.ExpensesData{TotalExpenses: 400}
	result.Sources["inventory"] = &models.InventoryData{TotalValue: 200}
	result.Sources["staff"] = &models.StaffData{TotalCost: 120}

	Evaluate(result)

	assert.Equal(t, 100, result.Metadata.DataQuality.CompletenessScore)
	assert.Equal(t, 100, result.Metadata.DataQuality.ConsistencyScore)
	assert.Empty(t, result.Metadata.DataQuality.Warnings)
}

func TestEvaluateCompletenessFloor(t *testing.T) {
	result := emptyResult()

	Evaluate(result)

	assert.Equal(t, 0, result.Metadata.DataQuality.CompletenessScore)
	// Marketing is optional and never penalized.
	assert.Len(t, result.Metadata.DataQuality.Warnings, 4)
	for _, w := range result.Metadata.DataQuality.Warnings {
		assert.Equal(t, "missing_source", w.Type)
		assert.Equal(t, "high", w.Impact)
	}
}

func TestEvaluateStackedAnomalies(t *testing.T) {
	result := emptyResult()
	// Expenses above revenue and an implausible ticket at the same time.
	result.Sources["sales"] = &models.SalesData{TotalSales: 1200, AverageTicket: 600}
	result.Sources["expenses"] = &models.ExpensesData{TotalExpenses: 1500}
	result.Sources["inventory"] = &models.InventoryData{}
	result.Sources["staff"] = &models.StaffData{}

	Evaluate(result)

	assert.Equal(t, 50, result.Metadata.DataQuality.ConsistencyScore)

	types := []string{}
	for _, w := range result.Metadata.DataQuality.Warnings {
		types = append(types, w.Type)
	}
	assert.Equal(t, []string{"business_anomaly", "data_anomaly"}, types)
}

func TestEvaluateTicketBoundsInclusive(t *testing.T) {
	for _, ticket := range []float64{5, 500} {
		result := emptyResult()
		result.Sources["sales"] = &models.SalesData{TotalSales: 1000, AverageTicket: ticket}
		result.Sources["expenses"] = &models.ExpensesData{TotalExpenses: 100}
		result.Sources["inventory"] = &models.InventoryData{}
		result.Sources["staff"] = &models.StaffData{}

		Evaluate(result)

		assert.Equal(t, 100, result.Metadata.DataQuality.ConsistencyScore, "ticket %v is inside the plausible range", ticket)
	}
}
