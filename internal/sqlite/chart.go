package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ganot/roadmap/internal/domain/savedchart"
	"github.com/ganot/roadmap/internal/repository"
)

// ChartRepository implements savedchart.ChartRepository for SQLite
type ChartRepository struct {
	db *DB
}

// NewChartRepository creates a new ChartRepository
func NewChartRepository(db *DB) *ChartRepository {
	return &ChartRepository{db: db}
}

// Create stores a saved chart
func (r *ChartRepository) Create(ctx context.Context, tenantID string, c *savedchart.SavedChart) error {
	query := `
		INSERT INTO saved_charts (
			id, tenant_id, title, mineral_type_id, start_stage_id, question_id,
			total_duration, chart_data, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		tenantID,
		c.Title,
		c.MineralTypeID,
		c.StartStageID,
		c.QuestionID,
		c.TotalDuration,
		string(c.Chart),
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return wrapWriteError("failed to create chart", err)
	}

	c.TenantID = tenantID
	return nil
}

// Get retrieves a saved chart by ID
func (r *ChartRepository) Get(ctx context.Context, tenantID, id string) (*savedchart.SavedChart, error) {
	query := `
		SELECT id, tenant_id, title, mineral_type_id, start_stage_id, question_id,
		       total_duration, chart_data, created_at, updated_at
		FROM saved_charts
		WHERE id = ? AND tenant_id = ?
	`

	var c savedchart.SavedChart
	var questionID sql.NullInt64
	var data string
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(
		&c.ID,
		&c.TenantID,
		&c.Title,
		&c.MineralTypeID,
		&c.StartStageID,
		&questionID,
		&c.TotalDuration,
		&data,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chart: %w", err)
	}

	if questionID.Valid {
		c.QuestionID = &questionID.Int64
	}
	c.Chart = []byte(data)
	return &c, nil
}

// List returns saved chart summaries, newest first
func (r *ChartRepository) List(ctx context.Context, tenantID string, opts savedchart.ListOptions) ([]savedchart.ChartSummary, error) {
	q := newListQuery(`SELECT id, title, mineral_type_id, start_stage_id, question_id, total_duration, created_at
		FROM saved_charts`, tenantID)
	if opts.MineralTypeID != nil {
		q.where("mineral_type_id = ?", *opts.MineralTypeID)
	}
	query, args := q.build(opts.Limit, opts.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list charts: %w", err)
	}
	defer rows.Close()

	summaries := []savedchart.ChartSummary{}
	for rows.Next() {
		var s savedchart.ChartSummary
		var questionID sql.NullInt64
		if err := rows.Scan(
			&s.ID,
			&s.Title,
			&s.MineralTypeID,
			&s.StartStageID,
			&questionID,
			&s.TotalDuration,
			&s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan chart summary: %w", err)
		}
		if questionID.Valid {
			s.QuestionID = &questionID.Int64
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chart rows: %w", err)
	}

	return summaries, nil
}

// Delete removes a saved chart
func (r *ChartRepository) Delete(ctx context.Context, tenantID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM saved_charts WHERE id = ? AND tenant_id = ?`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete chart: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
