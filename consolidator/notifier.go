package consolidator

import (
	"context"
	"log"

	"app/models"
)

// Notifier receives the outcome of every consolidation run. Delivery is
// synchronous and best-effort: implementations must not fail the request.
type Notifier interface {
	OnConsolidated(ctx context.Context, result *models.ConsolidatedResult)
	OnConsolidationError(ctx context.Context, period models.Period, err error)
}

// LogNotifier writes consolidation outcomes to the application log.
type LogNotifier struct{}

func (LogNotifier) OnConsolidated(_ context.Context, result *models.ConsolidatedResult) {
	log.Printf("✅ [CONSOLIDATE] Period %s → %s: revenue=%.2f expenses=%.2f profit=%.2f (completeness=%d consistency=%d warnings=%d)",
		result.Period.StartDate.Format("2006-01-02"),
		result.Period.EndDate.Format("2006-01-02"),
		result.Summary.TotalRevenue,
		result.Summary.TotalExpenses,
		result.Summary.Profit,
		result.Metadata.DataQuality.CompletenessScore,
		result.Metadata.DataQuality.ConsistencyScore,
		len(result.Metadata.DataQuality.Warnings))
}

func (LogNotifier) OnConsolidationError(_ context.Context, period models.Period, err error) {
	log.Printf("❌ [CONSOLIDATE] Period %s → %s failed: %v",
		period.StartDate.Format("2006-01-02"),
		period.EndDate.Format("2006-01-02"),
		err)
}

// MultiNotifier fans one outcome out to several notifiers in order.
type MultiNotifier []Notifier

func (m MultiNotifier) OnConsolidated(ctx context.Context, result *models.ConsolidatedResult) {
	for _, n := range m {
		n.OnConsolidated(ctx, result)
	}
}

func (m MultiNotifier) OnConsolidationError(ctx context.Context, period models.Period, err error) {
	for _, n := range m {
		n.OnConsolidationError(ctx, period, err)
	}
}
