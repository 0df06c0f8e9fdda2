package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ganot/roadmap/internal/domain/catalog"
	"github.com/ganot/roadmap/internal/repository"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const stageColumns = `id, mineral_type_id, name, code, sort_order, description, duration_months, start_month, color`

const workColumns = `id, stage_id, number, title, description, executor, duration_months, start_month, sort_order`

// CatalogRepository implements catalog.Repository for SQLite
type CatalogRepository struct {
	db *DB
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListMineralTypes returns all mineral types ordered by id
func (r *CatalogRepository) ListMineralTypes(ctx context.Context) ([]catalog.MineralType, error) {
	return queryMineralTypes(ctx, r.db)
}

// GetMineralType retrieves a mineral type by ID
func (r *CatalogRepository) GetMineralType(ctx context.Context, id int64) (*catalog.MineralType, error) {
	var mt catalog.MineralType
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, code, description FROM mineral_types WHERE id = ?`, id,
	).Scan(&mt.ID, &mt.Name, &mt.Code, &mt.Description)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mineral type: %w", err)
	}
	return &mt, nil
}

// ListStages returns the stages of a mineral type ordered by sort order,
// each with its dependency ids
func (r *CatalogRepository) ListStages(ctx context.Context, mineralTypeID int64) ([]catalog.Stage, error) {
	stages, err := queryStages(ctx, r.db,
		`SELECT `+stageColumns+` FROM stages WHERE mineral_type_id = ? ORDER BY sort_order, id`, mineralTypeID)
	if err != nil {
		return nil, err
	}
	deps, err := queryLinks(ctx, r.db,
		`SELECT d.stage_id, d.depends_on_id
		 FROM stage_dependencies d
		 JOIN stages s ON s.id = d.stage_id
		 WHERE s.mineral_type_id = ?
		 ORDER BY d.stage_id, d.position`, mineralTypeID)
	if err != nil {
		return nil, err
	}
	for i := range stages {
		stages[i].DependsOn = deps[stages[i].ID]
	}
	return stages, nil
}

// GetStage retrieves a stage by ID with its dependency ids
func (r *CatalogRepository) GetStage(ctx context.Context, id int64) (*catalog.Stage, error) {
	stages, err := queryStages(ctx, r.db, `SELECT `+stageColumns+` FROM stages WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(stages) == 0 {
		return nil, repository.ErrNotFound
	}
	deps, err := queryLinks(ctx, r.db,
		`SELECT stage_id, depends_on_id FROM stage_dependencies WHERE stage_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	st := stages[0]
	st.DependsOn = deps[id]
	return &st, nil
}

// ListWorks returns the works of a stage ordered by sort order
func (r *CatalogRepository) ListWorks(ctx context.Context, stageID int64) ([]catalog.Work, error) {
	return queryWorks(ctx, r.db,
		`SELECT `+workColumns+` FROM works WHERE stage_id = ? ORDER BY sort_order, id`, stageID)
}

// ListQuestions returns the questions offered for a mineral type
func (r *CatalogRepository) ListQuestions(ctx context.Context, mineralTypeID int64) ([]catalog.Question, error) {
	questions, err := queryQuestions(ctx, r.db)
	if err != nil {
		return nil, err
	}
	var out []catalog.Question
	for _, q := range questions {
		if q.AppliesTo(mineralTypeID) {
			out = append(out, q)
		}
	}
	return out, nil
}

// LoadSnapshot reads the whole catalog inside one transaction so the
// snapshot is consistent even while an import runs.
func (r *CatalogRepository) LoadSnapshot(ctx context.Context) (*catalog.Snapshot, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot: %w", err)
	}
	defer tx.Rollback()

	types, err := queryMineralTypes(ctx, tx)
	if err != nil {
		return nil, err
	}
	stages, err := queryStages(ctx, tx, `SELECT `+stageColumns+` FROM stages ORDER BY id`)
	if err != nil {
		return nil, err
	}
	deps, err := queryLinks(ctx, tx,
		`SELECT stage_id, depends_on_id FROM stage_dependencies ORDER BY stage_id, position`)
	if err != nil {
		return nil, err
	}
	for i := range stages {
		stages[i].DependsOn = deps[stages[i].ID]
	}
	works, err := queryWorks(ctx, tx, `SELECT `+workColumns+` FROM works ORDER BY id`)
	if err != nil {
		return nil, err
	}
	questions, err := queryQuestions(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to finish snapshot: %w", err)
	}
	return catalog.NewSnapshot(types, stages, works, questions), nil
}

// Import upserts a seed catalog in a single transaction. Dependency and
// question links of imported records are replaced.
func (r *CatalogRepository) Import(ctx context.Context, seed catalog.Seed) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer tx.Rollback()

	for _, mt := range seed.MineralTypes {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO mineral_types (id, name, code, description) VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name, code = excluded.code, description = excluded.description
		`, mt.ID, mt.Name, mt.Code, mt.Description); err != nil {
			return wrapWriteError("failed to import mineral type", err)
		}
	}

	for _, st := range seed.Stages {
		color := st.Color
		if color == "" {
			color = catalog.DefaultColor
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO stages (`+stageColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
			    mineral_type_id = excluded.mineral_type_id,
			    name = excluded.name,
			    code = excluded.code,
			    sort_order = excluded.sort_order,
			    description = excluded.description,
			    duration_months = excluded.duration_months,
			    start_month = excluded.start_month,
			    color = excluded.color
		`, st.ID, st.MineralTypeID, st.Name, st.Code, st.Order, st.Description, st.DurationMonths, st.StartMonth, color); err != nil {
			return wrapWriteError("failed to import stage", err)
		}
	}

	for _, st := range seed.Stages {
		if _, err := tx.ExecContext(ctx, `DELETE FROM stage_dependencies WHERE stage_id = ?`, st.ID); err != nil {
			return fmt.Errorf("failed to clear stage dependencies: %w", err)
		}
		for pos, dep := range st.DependsOn {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO stage_dependencies (stage_id, position, depends_on_id) VALUES (?, ?, ?)`,
				st.ID, pos, dep,
			); err != nil {
				return wrapWriteError("failed to import stage dependency", err)
			}
		}
	}

	for _, w := range seed.Works {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO works (`+workColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
			    stage_id = excluded.stage_id,
			    number = excluded.number,
			    title = excluded.title,
			    description = excluded.description,
			    executor = excluded.executor,
			    duration_months = excluded.duration_months,
			    start_month = excluded.start_month,
			    sort_order = excluded.sort_order
		`, w.ID, w.StageID, w.Number, w.Title, w.Description, w.Executor, w.DurationMonths, w.StartMonth, w.Order); err != nil {
			return wrapWriteError("failed to import work", err)
		}
	}

	for _, q := range seed.Questions {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO questions (id, text, code, description) VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET text = excluded.text, code = excluded.code, description = excluded.description
		`, q.ID, q.Text, q.Code, q.Description); err != nil {
			return wrapWriteError("failed to import question", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM question_mineral_types WHERE question_id = ?`, q.ID); err != nil {
			return fmt.Errorf("failed to clear question mineral types: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM question_target_stages WHERE question_id = ?`, q.ID); err != nil {
			return fmt.Errorf("failed to clear question targets: %w", err)
		}
		for _, id := range q.MineralTypeIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO question_mineral_types (question_id, mineral_type_id) VALUES (?, ?)`, q.ID, id,
			); err != nil {
				return wrapWriteError("failed to import question mineral type", err)
			}
		}
		for _, id := range q.TargetStageIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO question_target_stages (question_id, stage_id) VALUES (?, ?)`, q.ID, id,
			); err != nil {
				return wrapWriteError("failed to import question target", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

func queryMineralTypes(ctx context.Context, q querier) ([]catalog.MineralType, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, name, code, description FROM mineral_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list mineral types: %w", err)
	}
	defer rows.Close()

	var types []catalog.MineralType
	for rows.Next() {
		var mt catalog.MineralType
		if err := rows.Scan(&mt.ID, &mt.Name, &mt.Code, &mt.Description); err != nil {
			return nil, fmt.Errorf("failed to scan mineral type: %w", err)
		}
		types = append(types, mt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mineral type rows: %w", err)
	}
	return types, nil
}

func queryStages(ctx context.Context, q querier, query string, args ...any) ([]catalog.Stage, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}
	defer rows.Close()

	var stages []catalog.Stage
	for rows.Next() {
		var st catalog.Stage
		if err := rows.Scan(
			&st.ID,
			&st.MineralTypeID,
			&st.Name,
			&st.Code,
			&st.Order,
			&st.Description,
			&st.DurationMonths,
			&st.StartMonth,
			&st.Color,
		); err != nil {
			return nil, fmt.Errorf("failed to scan stage: %w", err)
		}
		stages = append(stages, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stage rows: %w", err)
	}
	return stages, nil
}

// queryLinks groups the second column of a two-column id query by the first.
func queryLinks(ctx context.Context, q querier, query string, args ...any) (map[int64][]int64, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	defer rows.Close()

	links := make(map[int64][]int64)
	for rows.Next() {
		var from, to int64
		if err := rows.Scan(&from, &to); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		links[from] = append(links[from], to)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating link rows: %w", err)
	}
	return links, nil
}

func queryWorks(ctx context.Context, q querier, query string, args ...any) ([]catalog.Work, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list works: %w", err)
	}
	defer rows.Close()

	var works []catalog.Work
	for rows.Next() {
		var w catalog.Work
		if err := rows.Scan(
			&w.ID,
			&w.StageID,
			&w.Number,
			&w.Title,
			&w.Description,
			&w.Executor,
			&w.DurationMonths,
			&w.StartMonth,
			&w.Order,
		); err != nil {
			return nil, fmt.Errorf("failed to scan work: %w", err)
		}
		works = append(works, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating work rows: %w", err)
	}
	return works, nil
}

func queryQuestions(ctx context.Context, q querier) ([]catalog.Question, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, text, code, description FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	var questions []catalog.Question
	index := make(map[int64]int)
	for rows.Next() {
		var qu catalog.Question
		if err := rows.Scan(&qu.ID, &qu.Text, &qu.Code, &qu.Description); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		index[qu.ID] = len(questions)
		questions = append(questions, qu)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating question rows: %w", err)
	}

	links, err := queryLinks(ctx, q,
		`SELECT question_id, mineral_type_id FROM question_mineral_types ORDER BY question_id, mineral_type_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list question mineral types: %w", err)
	}
	targets, err := queryLinks(ctx, q,
		`SELECT question_id, stage_id FROM question_target_stages ORDER BY question_id, stage_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list question targets: %w", err)
	}
	for id, i := range index {
		questions[i].MineralTypeIDs = links[id]
		questions[i].TargetStageIDs = targets[id]
	}
	return questions, nil
}
