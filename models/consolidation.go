package models

import "time"

// --- Period ---

// Period is the date range a consolidation covers. Days is the inclusive
// day count (end - start + 1).
type Period struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Days      int       `json:"days"`
}

// --- Breakdowns ---

// Bucket accumulates one breakdown dimension value (category, vendor,
// channel, ...): a running total plus the number of records that fed it.
type Bucket struct {
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// Breakdown maps a dimension value to its bucket. Always non-nil on a
// normalized aggregate, even when no records contributed.
type Breakdown map[string]*Bucket

// Add accumulates amount under key, creating the bucket on first use.
// Empty keys are filed under "unknown".
func (b Breakdown) Add(key string, amount float64) {
	if key == "" {
		key = "unknown"
	}
	bucket, ok := b[key]
	if !ok {
		bucket = &Bucket{}
		b[key] = bucket
	}
	bucket.Total += amount
	bucket.Count++
}

// --- Per-source aggregates ---

// Aggregate is the canonical shape a source normalizer produces. Each
// source has its own concrete type; Source returns its logical name.
type Aggregate interface {
	Source() string
}

// TransactionSummary is one POS transaction in a sales aggregate.
type TransactionSummary struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Amount        float64   `json:"amount"`
	Category      string    `json:"category"`
	PaymentMethod string    `json:"paymentMethod"`
	ServicePeriod string    `json:"servicePeriod"`
}

// SalesData is the normalized POS aggregate.
type SalesData struct {
	TotalSales       float64              `json:"totalSales"`
	TransactionCount int                  `json:"transactionCount"`
	AverageTicket    float64              `json:"averageTicket"`
	ByCategory       Breakdown            `json:"byCategory"`
	ByPaymentMethod  Breakdown            `json:"byPaymentMethod"`
	ByServicePeriod  Breakdown            `json:"byServicePeriod"`
	Transactions     []TransactionSummary `json:"transactions"`
}

func (*SalesData) Source() string { return "sales" }

// ExpenseRecord is one purchasing expense in an expenses aggregate.
type ExpenseRecord struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Amount   float64   `json:"amount"`
	Category string    `json:"category"`
	Vendor   string    `json:"vendor"`
	CostType string    `json:"costType"`
}

// ExpensesData is the normalized purchasing aggregate.
type ExpensesData struct {
	TotalExpenses float64         `json:"totalExpenses"`
	FixedCosts    float64         `json:"fixedCosts"`
	VariableCosts float64         `json:"variableCosts"`
	ByCategory    Breakdown       `json:"byCategory"`
	ByVendor      Breakdown       `json:"byVendor"`
	Records       []ExpenseRecord `json:"records"`
}

func (*ExpensesData) Source() string { return "expenses" }

// ValuedItem is one stock item with its extended value (quantity x unit cost).
type ValuedItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Quantity float64 `json:"quantity"`
	UnitCost float64 `json:"unitCost"`
	Value    float64 `json:"value"`
}

// InventoryData is the normalized inventory valuation aggregate.
type InventoryData struct {
	TotalValue float64      `json:"totalValue"`
	ItemCount  int          `json:"itemCount"`
	ByCategory Breakdown    `json:"byCategory"`
	Items      []ValuedItem `json:"items"`
}

func (*InventoryData) Source() string { return "inventory" }

// EmployeeRollup sums one employee's hours and cost across all shifts in
// the period.
type EmployeeRollup struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Department string  `json:"department"`
	Hours      float64 `json:"hours"`
	Cost       float64 `json:"cost"`
	Shifts     int     `json:"shifts"`
}

// StaffData is the normalized HR/labor aggregate.
type StaffData struct {
	TotalHours   float64          `json:"totalHours"`
	TotalCost    float64          `json:"totalCost"`
	ByDepartment Breakdown        `json:"byDepartment"`
	ByShiftType  Breakdown        `json:"byShiftType"`
	Employees    []EmployeeRollup `json:"employees"`
}

func (*StaffData) Source() string { return "staff" }

// CampaignSummary is one marketing campaign with its spend and metrics.
type CampaignSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Channel     string  `json:"channel"`
	Type        string  `json:"type"`
	Spend       float64 `json:"spend"`
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	Conversions int     `json:"conversions"`
}

// MarketingData is the normalized marketing aggregate.
type MarketingData struct {
	TotalSpend     float64           `json:"totalSpend"`
	ByChannel      Breakdown         `json:"byChannel"`
	ByCampaignType Breakdown         `json:"byCampaignType"`
	Campaigns      []CampaignSummary `json:"campaigns"`
}

func (*MarketingData) Source() string { return "marketing" }

// --- Consolidated output ---

// Warning flags a degradation or plausibility issue on a consolidated
// result. Impact is "high", "medium" or "low".
type Warning struct {
	Type    string `json:"type"`
	Source  string `json:"source,omitempty"`
	Message string `json:"message"`
	Impact  string `json:"impact"`
}

// DataQuality carries the completeness/consistency scores (0-100) and the
// ordered warning list for one consolidation.
type DataQuality struct {
	CompletenessScore int       `json:"completenessScore"`
	ConsistencyScore  int       `json:"consistencyScore"`
	Warnings          []Warning `json:"warnings"`
}

// Metadata describes how and when a consolidated result was produced.
type Metadata struct {
	GeneratedAt time.Time   `json:"generatedAt"`
	DataQuality DataQuality `json:"dataQuality"`
}

// Summary holds the cross-source financials and operational KPIs. All
// ratios are 0 when their denominator is 0 or the contributing source is
// absent.
type Summary struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalExpenses     float64 `json:"totalExpenses"`
	Profit            float64 `json:"profit"`
	ProfitMargin      float64 `json:"profitMargin"`
	AverageTicket     float64 `json:"averageTicket"`
	LaborCostPct      float64 `json:"laborCostPct"`
	FoodCostPct       float64 `json:"foodCostPct"`
	InventoryTurnover float64 `json:"inventoryTurnover"`
}

// ConsolidatedResult is the full output of one consolidation request.
// Sources only contains the aggregates that were fetched successfully.
type ConsolidatedResult struct {
	Period   Period               `json:"period"`
	Sources  map[string]Aggregate `json:"sources"`
	Summary  Summary              `json:"summary"`
	Metadata Metadata             `json:"metadata"`
}

// Projection is a linear run-rate extrapolation of partial-period actuals.
type Projection struct {
	Period            Period  `json:"period"`
	DaysElapsed       int     `json:"daysElapsed"`
	DaysInPeriod      int     `json:"daysInPeriod"`
	ActualRevenue     float64 `json:"actualRevenue"`
	ActualExpenses    float64 `json:"actualExpenses"`
	ActualProfit      float64 `json:"actualProfit"`
	ProjectedRevenue  float64 `json:"projectedRevenue"`
	ProjectedExpenses float64 `json:"projectedExpenses"`
	ProjectedProfit   float64 `json:"projectedProfit"`
}

// FinancialKPIs is the payload of GetCurrentFinancialKPIs: today's summary
// plus month-to-date and year-to-date projections.
type FinancialKPIs struct {
	Daily Summary    `json:"daily"`
	MTD   Projection `json:"mtd"`
	YTD   Projection `json:"ytd"`
}
