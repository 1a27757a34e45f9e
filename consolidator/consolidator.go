package consolidator

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"app/integration"
	"app/models"
	"app/utils"
)

// Simplified accounting approximations carried over from the original
// business rules: food cost is estimated as 40% of inventory value, and
// cost of goods sold as 60% of total expenses.
const (
	foodCostShare = 0.40
	cogsShare     = 0.60
)

// Consolidator fetches, normalizes and merges the upstream business data
// feeds into consolidated financial results. Safe for concurrent use: the
// per-source cache is the only shared mutable state and is guarded.
type Consolidator struct {
	gateway  integration.Gateway
	sources  map[string]SourceDescriptor
	cache    *sourceCache
	notifier Notifier
	now      func() time.Time
}

// New creates a consolidator over the given gateway and source registry.
// A nil notifier defaults to logging.
func New(gateway integration.Gateway, sources map[string]SourceDescriptor, notifier Notifier) *Consolidator {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Consolidator{
		gateway:  gateway,
		sources:  sources,
		cache:    newSourceCache(sources),
		notifier: notifier,
		now:      time.Now,
	}
}

// Options controls one consolidation request. Zero dates default to the
// current day; a nil Sources slice requests every registered source.
type Options struct {
	StartDate    time.Time
	EndDate      time.Time
	Sources      []string
	ForceRefresh bool
}

// SourceNames returns all registered source names, sorted.
func (c *Consolidator) SourceNames() []string {
	names := make([]string, 0, len(c.sources))
	for name := range c.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FetchSource returns the normalized aggregate for one source, serving
// from cache inside the validity window unless forceRefresh is set. A
// gateway failure is returned as a *SourceFetchError.
func (c *Consolidator) FetchSource(ctx context.Context, name string, period models.Period, forceRefresh bool) (models.Aggregate, error) {
	desc, ok := c.sources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, name)
	}

	if !forceRefresh && c.cache.isValid(name, c.now()) {
		return c.cache.get(name), nil
	}

	raw, err := c.gateway.Call(ctx, desc.Module, desc.Endpoint, integration.QueryParams{
		StartDate: period.StartDate.Format("2006-01-02"),
		EndDate:   period.EndDate.Format("2006-01-02"),
	})
	if err != nil {
		return nil, &SourceFetchError{Source: name, Err: err}
	}

	data := desc.Normalize(raw)
	c.cache.put(name, data, c.now())
	return data, nil
}

// Consolidate runs one consolidation request: fetch and normalize every
// requested source (tolerating per-source failures), build the summary,
// score data quality and notify. Partial results are always returned; the
// error path is reserved for invalid periods and fatal assembly failures.
func (c *Consolidator) Consolidate(ctx context.Context, opts Options) (*models.ConsolidatedResult, error) {
	now := c.now()

	start, end := opts.StartDate, opts.EndDate
	if start.IsZero() {
		start = utils.DayStart(now)
	}
	if end.IsZero() {
		end = utils.DayEnd(now)
	}
	if utils.DayStart(start).After(utils.DayStart(end)) {
		return nil, ErrInvalidPeriod
	}

	period := models.Period{
		StartDate: start,
		EndDate:   end,
		Days:      utils.DaysInclusive(start, end),
	}

	requested := opts.Sources
	if len(requested) == 0 {
		requested = c.SourceNames()
	}

	result := &models.ConsolidatedResult{
		Period:  period,
		Sources: make(map[string]models.Aggregate, len(requested)),
		Metadata: models.Metadata{
			GeneratedAt: now,
			DataQuality: models.DataQuality{Warnings: []models.Warning{}},
		},
	}

	// Sources are fetched in request order, sequentially; a failed source
	// never aborts the rest.
	for _, name := range requested {
		data, err := c.FetchSource(ctx, name, period, opts.ForceRefresh)
		if err != nil {
			log.Printf("⚠️ [CONSOLIDATE] Source %s unavailable: %v", name, err)
			result.Metadata.DataQuality.Warnings = append(result.Metadata.DataQuality.Warnings, models.Warning{
				Type:    "missing_data",
				Source:  name,
				Message: fmt.Sprintf("data for source %s could not be fetched", name),
				Impact:  "high",
			})
			continue
		}
		result.Sources[name] = data
	}

	if err := c.assemble(result); err != nil {
		c.notifier.OnConsolidationError(ctx, period, err)
		return nil, err
	}

	c.notifier.OnConsolidated(ctx, result)
	return result, nil
}

// assemble derives the summary and quality scores. Unexpected failures
// here are fatal for the whole request, unlike per-source fetch errors.
func (c *Consolidator) assemble(result *models.ConsolidatedResult) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ConsolidationError{Err: fmt.Errorf("summary assembly panicked: %v", r)}
		}
	}()
	result.Summary = buildSummary(result.Sources)
	Evaluate(result)
	return nil
}

// buildSummary merges whichever per-source aggregates succeeded into the
// cross-source financials. Every ratio defaults to 0 when its denominator
// is 0 or the contributing source is missing.
func buildSummary(sources map[string]models.Aggregate) models.Summary {
	var summary models.Summary

	sales, _ := sources["sales"].(*models.SalesData)
	expenses, _ := sources["expenses"].(*models.ExpensesData)
	inventory, _ := sources["inventory"].(*models.InventoryData)
	staff, _ := sources["staff"].(*models.StaffData)

	if sales != nil {
		summary.TotalRevenue = sales.TotalSales
		summary.AverageTicket = sales.AverageTicket
	}
	if expenses != nil {
		summary.TotalExpenses = expenses.TotalExpenses
	}

	summary.Profit = summary.TotalRevenue - summary.TotalExpenses
	if summary.TotalRevenue > 0 {
		summary.ProfitMargin = summary.Profit / summary.TotalRevenue * 100
	}

	if staff != nil && summary.TotalRevenue > 0 {
		summary.LaborCostPct = staff.TotalCost / summary.TotalRevenue * 100
	}
	if inventory != nil {
		if summary.TotalRevenue > 0 {
			summary.FoodCostPct = foodCostShare * inventory.TotalValue / summary.TotalRevenue * 100
		}
		if inventory.TotalValue > 0 {
			summary.InventoryTurnover = cogsShare * summary.TotalExpenses / inventory.TotalValue
		}
	}

	return summary
}

// GetCurrentFinancialKPIs returns today's consolidated summary plus
// month-to-date and year-to-date run-rate projections.
func (c *Consolidator) GetCurrentFinancialKPIs(ctx context.Context) (*models.FinancialKPIs, error) {
	now := c.now()

	daily, err := c.Consolidate(ctx, Options{})
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	mtd, err := c.projectPeriod(ctx, monthStart, now, daysInMonth)
	if err != nil {
		return nil, err
	}

	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	yearEnd := time.Date(now.Year(), 12, 31, 0, 0, 0, 0, now.Location())
	ytd, err := c.projectPeriod(ctx, yearStart, now, utils.DaysInclusive(yearStart, yearEnd))
	if err != nil {
		return nil, err
	}

	return &models.FinancialKPIs{
		Daily: daily.Summary,
		MTD:   *mtd,
		YTD:   *ytd,
	}, nil
}

// projectPeriod consolidates from periodStart to now and extrapolates the
// actuals linearly over the whole period. On day 1 of a period
// daysElapsed is 1, so the projection is defined but maximally noisy.
func (c *Consolidator) projectPeriod(ctx context.Context, periodStart, now time.Time, daysInPeriod int) (*models.Projection, error) {
	result, err := c.Consolidate(ctx, Options{
		StartDate: periodStart,
		EndDate:   utils.DayEnd(now),
	})
	if err != nil {
		return nil, err
	}
	daysElapsed := utils.DaysInclusive(periodStart, now)
	projection := projectSummary(result.Summary, result.Period, daysInPeriod, daysElapsed)
	return &projection, nil
}

// projectSummary scales partial-period actuals by the naive run rate
// (days in period / days elapsed). No seasonality or smoothing.
func projectSummary(summary models.Summary, period models.Period, daysInPeriod, daysElapsed int) models.Projection {
	factor := float64(daysInPeriod) / float64(daysElapsed)
	return models.Projection{
		Period:            period,
		DaysElapsed:       daysElapsed,
		DaysInPeriod:      daysInPeriod,
		ActualRevenue:     summary.TotalRevenue,
		ActualExpenses:    summary.TotalExpenses,
		ActualProfit:      summary.Profit,
		ProjectedRevenue:  summary.TotalRevenue * factor,
		ProjectedExpenses: summary.TotalExpenses * factor,
		ProjectedProfit:   summary.Profit * factor,
	}
}
