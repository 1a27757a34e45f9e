package consolidator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"app/models"
)

func TestNormalizersTolerateMalformedPayloads(t *testing.T) {
	payloads := map[string][]byte{
		"empty object": []byte(`{}`),
		"not json":     []byte(`<html>bad gateway</html>`),
		"wrong shape":  []byte(`{"transactions":"nope","expenses":42,"items":{},"shifts":true,"campaigns":-1}`),
		"empty bytes":  {},
	}

	for label, raw := range payloads {
		sales := NormalizeSales(raw).(*models.SalesData)
		assert.Zero(t, sales.TotalSales, label)
		assert.NotNil(t, sales.ByCategory, label)
		assert.Empty(t, sales.ByCategory, label)
		assert.Empty(t, sales.Transactions, label)

		expenses := NormalizeExpenses(raw).(*models.ExpensesData)
		assert.Zero(t, expenses.TotalExpenses, label)
		assert.NotNil(t, expenses.ByVendor, label)
		assert.Empty(t, expenses.ByVendor, label)

		inventory := NormalizeInventory(raw).(*models.InventoryData)
		assert.Zero(t, inventory.TotalValue, label)
		assert.NotNil(t, inventory.ByCategory, label)

		staff := NormalizeStaff(raw).(*models.StaffData)
		assert.Zero(t, staff.TotalCost, label)
		assert.NotNil(t, staff.ByDepartment, label)
		assert.Empty(t, staff.Employees, label)

		marketing := NormalizeMarketing(raw).(*models.MarketingData)
		assert.Zero(t, marketing.TotalSpend, label)
		assert.NotNil(t, marketing.ByChannel, label)
	}
}

func TestNormalizeSalesServicePeriods(t *testing.T) {
	raw := []byte(`{"transactions":[
		{"id":"t1","amount":30,"category":"food","paymentMethod":"card","timestamp":"2025-03-10T12:00:00"},
		{"id":"t2","amount":50,"category":"drinks","paymentMethod":"cash","timestamp":"2025-03-10T19:30:00"},
		{"id":"t3","amount":20}
	]}`)

	sales := NormalizeSales(raw).(*models.SalesData)

	assert.Equal(t, 100.0, sales.TotalSales)
	assert.Equal(t, 3, sales.TransactionCount)
	assert.InDelta(t, 100.0/3, sales.AverageTicket, 1e-9)

	assert.Equal(t, 30.0, sales.ByServicePeriod["lunch"].Total)
	assert.Equal(t, 50.0, sales.ByServicePeriod["dinner"].Total)
	// No timestamp: filed under unknown, not guessed into a period.
	assert.Equal(t, 20.0, sales.ByServicePeriod["unknown"].Total)

	// Missing category and payment method fall back to unknown.
	assert.Equal(t, 20.0, sales.ByCategory["unknown"].Total)
	assert.Equal(t, 1, sales.ByCategory["unknown"].Count)
	assert.Equal(t, "unknown", sales.Transactions[2].Category)
}

func TestNormalizeExpensesCostSplit(t *testing.T) {
	raw := []byte(`{"expenses":[
		{"id":"e1","amount":400,"category":"rent","vendor":"landlord","costType":"fixed","date":"2025-03-01"},
		{"id":"e2","amount":150,"category":"produce","vendor":"acme","costType":"variable","date":"2025-03-02"},
		{"id":"e3","amount":50,"category":"produce","vendor":"acme","date":"2025-03-03"}
	]}`)

	expenses := NormalizeExpenses(raw).(*models.ExpensesData)

	assert.Equal(t, 600.0, expenses.TotalExpenses)
	assert.Equal(t, 400.0, expenses.FixedCosts)
	// Unspecified cost type counts as variable.
	assert.Equal(t, 200.0, expenses.VariableCosts)
	assert.Equal(t, 200.0, expenses.ByVendor["acme"].Total)
	assert.Equal(t, 2, expenses.ByVendor["acme"].Count)
	assert.Equal(t, "unknown", expenses.Records[2].CostType)
}

func TestNormalizeInventoryValuation(t *testing.T) {
	raw := []byte(`{"items":[
		{"id":"i1","name":"Beef","category":"meat","quantity":10,"unitCost":20},
		{"id":"i2","name":"Napkins","quantity":500,"unitCost":0.05}
	]}`)

	inventory := NormalizeInventory(raw).(*models.InventoryData)

	assert.Equal(t, 225.0, inventory.TotalValue)
	assert.Equal(t, 2, inventory.ItemCount)
	assert.Equal(t, 200.0, inventory.ByCategory["meat"].Total)
	assert.Equal(t, 25.0, inventory.ByCategory["unknown"].Total)
	assert.Equal(t, 200.0, inventory.Items[0].Value)
}

func TestNormalizeStaffEmployeeRollup(t *testing.T) {
	raw := []byte(`{"shifts":[
		{"id":"s1","employeeId":"e1","employeeName":"Ana","department":"kitchen","shiftType":"lunch","hours":4,"hourlyRate":15},
		{"id":"s2","employeeId":"e1","employeeName":"Ana","department":"kitchen","shiftType":"dinner","hours":6,"hourlyRate":15},
		{"id":"s3","employeeId":"e2","employeeName":"Ben","department":"service","shiftType":"dinner","hours":5,"cost":80}
	]}`)

	staff := NormalizeStaff(raw).(*models.StaffData)

	assert.Equal(t, 15.0, staff.TotalHours)
	assert.Equal(t, 230.0, staff.TotalCost) // 4*15 + 6*15 + 80
	assert.Len(t, staff.Employees, 2)

	ana := staff.Employees[0]
	assert.Equal(t, "e1", ana.ID)
	assert.Equal(t, 10.0, ana.Hours)
	assert.Equal(t, 150.0, ana.Cost)
	assert.Equal(t, 2, ana.Shifts)

	// Explicit shift cost wins over hours * rate.
	assert.Equal(t, 80.0, staff.Employees[1].Cost)

	assert.Equal(t, 150.0, staff.ByDepartment["kitchen"].Total)
	// Dinner shifts: Ana's 6h at 15/h plus Ben's explicit 80.
	assert.Equal(t, 170.0, staff.ByShiftType["dinner"].Total)
	assert.Equal(t, 2, staff.ByShiftType["dinner"].Count)
}

func TestNormalizeMarketingChannels(t *testing.T) {
	raw := []byte(`{"campaigns":[
		{"id":"c1","name":"Spring","channel":"social","type":"promo","spend":120,"metrics":{"impressions":5000,"clicks":200,"conversions":12}},
		{"id":"c2","name":"Flyers","type":"print","spend":30}
	]}`)

	marketing := NormalizeMarketing(raw).(*models.MarketingData)

	assert.Equal(t, 150.0, marketing.TotalSpend)
	assert.Equal(t, 120.0, marketing.ByChannel["social"].Total)
	assert.Equal(t, 30.0, marketing.ByChannel["unknown"].Total)
	assert.Equal(t, 30.0, marketing.ByCampaignType["print"].Total)
	assert.Equal(t, 5000, marketing.Campaigns[0].Impressions)
}
