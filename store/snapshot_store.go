// Package store persists consolidation snapshots: one row per successful
// consolidation with its headline financials and quality scores. The
// consolidator core never touches the database; snapshots are written by
// the notifier installed in main.
package store

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"app/models"
)

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS consolidation_snapshots (
	id UUID PRIMARY KEY,
	period_start DATE NOT NULL,
	period_end DATE NOT NULL,
	total_revenue NUMERIC(14,2) NOT NULL,
	total_expenses NUMERIC(14,2) NOT NULL,
	profit NUMERIC(14,2) NOT NULL,
	profit_margin NUMERIC(7,2) NOT NULL,
	completeness_score INT NOT NULL,
	consistency_score INT NOT NULL,
	warning_count INT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Snapshot is one persisted consolidation outcome.
type Snapshot struct {
	ID                string    `json:"id"`
	PeriodStart       time.Time `json:"periodStart"`
	PeriodEnd         time.Time `json:"periodEnd"`
	TotalRevenue      float64   `json:"totalRevenue"`
	TotalExpenses     float64   `json:"totalExpenses"`
	Profit            float64   `json:"profit"`
	ProfitMargin      float64   `json:"profitMargin"`
	CompletenessScore int       `json:"completenessScore"`
	ConsistencyScore  int       `json:"consistencyScore"`
	WarningCount      int       `json:"warningCount"`
	CreatedAt         time.Time `json:"createdAt"`
}

// SnapshotStore reads and writes consolidation snapshots.
type SnapshotStore struct {
	db *pgxpool.Pool
}

// NewSnapshotStore creates a store over the shared pool.
func NewSnapshotStore(db *pgxpool.Pool) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// EnsureSchema creates the snapshot table if it does not exist.
func (s *SnapshotStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, snapshotSchema)
	return err
}

// Save persists one consolidation result and returns the snapshot id.
func (s *SnapshotStore) Save(ctx context.Context, result *models.ConsolidatedResult) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(ctx,
		`INSERT INTO consolidation_snapshots
		 (id, period_start, period_end, total_revenue, total_expenses, profit,
		  profit_margin, completeness_score, consistency_score, warning_count)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id,
		result.Period.StartDate,
		result.Period.EndDate,
		result.Summary.TotalRevenue,
		result.Summary.TotalExpenses,
		result.Summary.Profit,
		result.Summary.ProfitMargin,
		result.Metadata.DataQuality.CompletenessScore,
		result.Metadata.DataQuality.ConsistencyScore,
		len(result.Metadata.DataQuality.Warnings),
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListRecent returns one page of snapshots, newest first: up to limit
// rows starting at offset.
func (s *SnapshotStore) ListRecent(ctx context.Context, limit, offset int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.db.Query(ctx,
		`SELECT id, period_start, period_end, total_revenue, total_expenses, profit,
		        profit_margin, completeness_score, consistency_score, warning_count, created_at
		 FROM consolidation_snapshots
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := []Snapshot{}
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(
			&snap.ID, &snap.PeriodStart, &snap.PeriodEnd,
			&snap.TotalRevenue, &snap.TotalExpenses, &snap.Profit, &snap.ProfitMargin,
			&snap.CompletenessScore, &snap.ConsistencyScore, &snap.WarningCount,
			&snap.CreatedAt,
		); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

// Count returns the total number of stored snapshots.
func (s *SnapshotStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM consolidation_snapshots`).Scan(&n)
	return n, err
}

// SnapshotNotifier persists every successful consolidation. Failures are
// logged and never affect the request.
type SnapshotNotifier struct {
	Store *SnapshotStore
}

func (n SnapshotNotifier) OnConsolidated(ctx context.Context, result *models.ConsolidatedResult) {
	if n.Store == nil {
		return
	}
	if _, err := n.Store.Save(ctx, result); err != nil {
		log.Printf("Error saving consolidation snapshot: %v", err)
	}
}

func (n SnapshotNotifier) OnConsolidationError(ctx context.Context, period models.Period, err error) {
	log.Printf("Consolidation failed for %s → %s, no snapshot written: %v",
		period.StartDate.Format("2006-01-02"), period.EndDate.Format("2006-01-02"), err)
}
