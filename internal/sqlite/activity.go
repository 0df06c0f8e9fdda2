package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ganot/roadmap/internal/domain/activity"
)

// ActivityRepository stores the append-only activity log.
type ActivityRepository struct {
	db *DB
}

func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Append inserts entry and fills in its ID, tenant and timestamp.
func (r *ActivityRepository) Append(ctx context.Context, tenantID string, entry *activity.ActivityEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO activity_log (tenant_id, chart_id, activity_type, summary, details, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		tenantID, entry.ChartID, entry.ActivityType, entry.Summary, entry.Details, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append activity: %w", err)
	}
	if id, err := result.LastInsertId(); err == nil {
		entry.ID = id
	}
	entry.TenantID = tenantID
	return nil
}

// List returns the tenant's entries newest first.
func (r *ActivityRepository) List(ctx context.Context, tenantID string, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	q := newListQuery(`SELECT id, tenant_id, chart_id, activity_type, summary, details, created_at
		FROM activity_log`, tenantID)
	if opts.ChartID != nil {
		q.where("chart_id = ?", *opts.ChartID)
	}
	if opts.ActivityType != nil {
		q.where("activity_type = ?", *opts.ActivityType)
	}
	query, args := q.build(opts.Limit, opts.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	entries := []activity.ActivityEntry{}
	for rows.Next() {
		entry, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}
	return entries, nil
}

func scanActivity(rows *sql.Rows) (activity.ActivityEntry, error) {
	var entry activity.ActivityEntry
	var chartID sql.NullString
	if err := rows.Scan(&entry.ID, &entry.TenantID, &chartID, &entry.ActivityType,
		&entry.Summary, &entry.Details, &entry.CreatedAt); err != nil {
		return entry, fmt.Errorf("failed to scan activity entry: %w", err)
	}
	if chartID.Valid {
		entry.ChartID = &chartID.String
	}
	return entry, nil
}
