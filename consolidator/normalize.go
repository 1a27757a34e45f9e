package consolidator

import (
	"encoding/json"
	"time"

	"app/models"
	"app/utils"
)

// The normalizers below are deliberately tolerant: a malformed payload or
// a missing record list produces a structurally valid zero-valued
// aggregate. Failing here would be indistinguishable from a missing
// source, and the quality evaluator already flags those separately.

const (
	lunchCutoffHour = 16 // service periods: lunch before 16:00 local, dinner after
)

// --- sales ---

type rawTransaction struct {
	ID            string  `json:"id"`
	Amount        float64 `json:"amount"`
	Category      string  `json:"category"`
	PaymentMethod string  `json:"paymentMethod"`
	Timestamp     string  `json:"timestamp"`
}

type rawSalesPayload struct {
	Transactions []rawTransaction `json:"transactions"`
}

// NormalizeSales converts the raw POS payload into a sales aggregate.
func NormalizeSales(raw []byte) models.Aggregate {
	data := &models.SalesData{
		ByCategory:      models.Breakdown{},
		ByPaymentMethod: models.Breakdown{},
		ByServicePeriod: models.Breakdown{},
		Transactions:    []models.TransactionSummary{},
	}

	var payload rawSalesPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return data
	}

	for _, tx := range payload.Transactions {
		ts, period := servicePeriodOf(tx.Timestamp)

		data.TotalSales += tx.Amount
		data.TransactionCount++
		data.ByCategory.Add(tx.Category, tx.Amount)
		data.ByPaymentMethod.Add(tx.PaymentMethod, tx.Amount)
		data.ByServicePeriod.Add(period, tx.Amount)
		data.Transactions = append(data.Transactions, models.TransactionSummary{
			ID:            tx.ID,
			Timestamp:     ts,
			Amount:        tx.Amount,
			Category:      orUnknown(tx.Category),
			PaymentMethod: orUnknown(tx.PaymentMethod),
			ServicePeriod: period,
		})
	}
	if data.TransactionCount > 0 {
		data.AverageTicket = data.TotalSales / float64(data.TransactionCount)
	}
	return data
}

// servicePeriodOf classifies a transaction timestamp into lunch/dinner.
// Unparseable timestamps go to "unknown" rather than skewing a period.
func servicePeriodOf(timestamp string) (time.Time, string) {
	if timestamp == "" {
		return time.Time{}, "unknown"
	}
	ts, err := utils.ParseDate(timestamp)
	if err != nil {
		return time.Time{}, "unknown"
	}
	if ts.Hour() < lunchCutoffHour {
		return ts, "lunch"
	}
	return ts, "dinner"
}

// --- expenses ---

type rawExpense struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Vendor   string  `json:"vendor"`
	CostType string  `json:"costType"`
}

type rawExpensesPayload struct {
	Expenses []rawExpense `json:"expenses"`
}

// NormalizeExpenses converts the raw purchasing payload into an expenses
// aggregate with a fixed/variable cost split.
func NormalizeExpenses(raw []byte) models.Aggregate {
	data := &models.ExpensesData{
		ByCategory: models.Breakdown{},
		ByVendor:   models.Breakdown{},
		Records:    []models.ExpenseRecord{},
	}

	var payload rawExpensesPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return data
	}

	for _, exp := range payload.Expenses {
		data.TotalExpenses += exp.Amount
		if exp.CostType == "fixed" {
			data.FixedCosts += exp.Amount
		} else {
			data.VariableCosts += exp.Amount
		}
		data.ByCategory.Add(exp.Category, exp.Amount)
		data.ByVendor.Add(exp.Vendor, exp.Amount)

		date, _ := utils.ParseDate(exp.Date)
		data.Records = append(data.Records, models.ExpenseRecord{
			ID:       exp.ID,
			Date:     date,
			Amount:   exp.Amount,
			Category: orUnknown(exp.Category),
			Vendor:   orUnknown(exp.Vendor),
			CostType: orUnknown(exp.CostType),
		})
	}
	return data
}

// --- inventory ---

type rawInventoryItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Quantity float64 `json:"quantity"`
	UnitCost float64 `json:"unitCost"`
}

type rawInventoryPayload struct {
	Items []rawInventoryItem `json:"items"`
}

// NormalizeInventory converts the raw stock payload into an inventory
// valuation aggregate (value = quantity x unit cost per item).
func NormalizeInventory(raw []byte) models.Aggregate {
	data := &models.InventoryData{
		ByCategory: models.Breakdown{},
		Items:      []models.ValuedItem{},
	}

	var payload rawInventoryPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return data
	}

	for _, item := range payload.Items {
		value := item.Quantity * item.UnitCost
		data.TotalValue += value
		data.ItemCount++
		data.ByCategory.Add(item.Category, value)
		data.Items = append(data.Items, models.ValuedItem{
			ID:       item.ID,
			Name:     item.Name,
			Category: orUnknown(item.Category),
			Quantity: item.Quantity,
			UnitCost: item.UnitCost,
			Value:    value,
		})
	}
	return data
}

// --- staff ---

type rawShift struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	Department   string  `json:"department"`
	ShiftType    string  `json:"shiftType"`
	Hours        float64 `json:"hours"`
	HourlyRate   float64 `json:"hourlyRate"`
	Cost         float64 `json:"cost"`
}

type rawStaffPayload struct {
	Shifts []rawShift `json:"shifts"`
}

// NormalizeStaff converts the raw HR shift payload into a labor aggregate,
// rolling hours and cost up per employee across all their shifts.
func NormalizeStaff(raw []byte) models.Aggregate {
	data := &models.StaffData{
		ByDepartment: models.Breakdown{},
		ByShiftType:  models.Breakdown{},
		Employees:    []models.EmployeeRollup{},
	}

	var payload rawStaffPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return data
	}

	byEmployee := map[string]*models.EmployeeRollup{}
	var order []string

	for _, shift := range payload.Shifts {
		cost := shift.Cost
		if cost == 0 {
			cost = shift.Hours * shift.HourlyRate
		}

		data.TotalHours += shift.Hours
		data.TotalCost += cost
		data.ByDepartment.Add(shift.Department, cost)
		data.ByShiftType.Add(shift.ShiftType, cost)

		key := shift.EmployeeID
		if key == "" {
			key = "unknown"
		}
		emp, ok := byEmployee[key]
		if !ok {
			emp = &models.EmployeeRollup{
				ID:         key,
				Name:       shift.EmployeeName,
				Department: orUnknown(shift.Department),
			}
			byEmployee[key] = emp
			order = append(order, key)
		}
		emp.Hours += shift.Hours
		emp.Cost += cost
		emp.Shifts++
	}

	for _, key := range order {
		data.Employees = append(data.Employees, *byEmployee[key])
	}
	return data
}

// --- marketing ---

type rawCampaignMetrics struct {
	Impressions int `json:"impressions"`
	Clicks      int `json:"clicks"`
	Conversions int `json:"conversions"`
}

type rawCampaign struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Channel string             `json:"channel"`
	Type    string             `json:"type"`
	Spend   float64            `json:"spend"`
	Metrics rawCampaignMetrics `json:"metrics"`
}

type rawMarketingPayload struct {
	Campaigns []rawCampaign `json:"campaigns"`
}

// NormalizeMarketing converts the raw campaign payload into a marketing
// spend aggregate.
func NormalizeMarketing(raw []byte) models.Aggregate {
	data := &models.MarketingData{
		ByChannel:      models.Breakdown{},
		ByCampaignType: models.Breakdown{},
		Campaigns:      []models.CampaignSummary{},
	}

	var payload rawMarketingPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return data
	}

	for _, camp := range payload.Campaigns {
		data.TotalSpend += camp.Spend
		data.ByChannel.Add(camp.Channel, camp.Spend)
		data.ByCampaignType.Add(camp.Type, camp.Spend)
		data.Campaigns = append(data.Campaigns, models.CampaignSummary{
			ID:          camp.ID,
			Name:        camp.Name,
			Channel:     orUnknown(camp.Channel),
			Type:        orUnknown(camp.Type),
			Spend:       camp.Spend,
			Impressions: camp.Metrics.Impressions,
			Clicks:      camp.Metrics.Clicks,
			Conversions: camp.Metrics.Conversions,
		})
	}
	return data
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
