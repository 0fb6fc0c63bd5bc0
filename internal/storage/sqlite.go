package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/romangod6/recipe-crawler/internal/models"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Initialize(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS batch_runs (
            id TEXT PRIMARY KEY,
            index_url TEXT NOT NULL,
            output_path TEXT,
            candidates INTEGER NOT NULL DEFAULT 0,
            written INTEGER NOT NULL DEFAULT 0,
            discarded INTEGER NOT NULL DEFAULT 0,
            failed INTEGER NOT NULL DEFAULT 0,
            started_at DATETIME NOT NULL,
            finished_at DATETIME
        )`,
		`CREATE TABLE IF NOT EXISTS recipes (
            run_id TEXT NOT NULL,
            position INTEGER NOT NULL,
            url TEXT NOT NULL,
            title TEXT,
            description TEXT,
            image_url TEXT,
            ingredients TEXT,
            instructions TEXT,
            rating TEXT,
            prep_time TEXT,
            cook_time TEXT,
            total_time TEXT,
            nutrition TEXT,
            categories TEXT,
            keywords TEXT,
            PRIMARY KEY (run_id, position),
            FOREIGN KEY(run_id) REFERENCES batch_runs(id)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_url ON recipes(url)`,
		`CREATE INDEX IF NOT EXISTS idx_batch_runs_started_at ON batch_runs(started_at)`,
	}

	for _, query := range queries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}

	return nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run *models.BatchRun, recipes []*models.Recipe) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO batch_runs (id, index_url, output_path, candidates, written, discarded, failed, started_at, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            candidates = excluded.candidates,
            written = excluded.written,
            discarded = excluded.discarded,
            failed = excluded.failed,
            finished_at = excluded.finished_at
    `
	if _, err := tx.ExecContext(ctx, query,
		run.ID.String(),
		run.IndexURL,
		run.OutputPath,
		run.Candidates,
		run.Written,
		run.Discarded,
		run.Failed,
		run.StartedAt,
		run.FinishedAt,
	); err != nil {
		return fmt.Errorf("error saving run: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipes WHERE run_id = ?`, run.ID.String()); err != nil {
		return fmt.Errorf("error clearing recipes: %w", err)
	}

	insert := `
        INSERT INTO recipes (run_id, position, url, title, description, image_url, ingredients, instructions,
            rating, prep_time, cook_time, total_time, nutrition, categories, keywords)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	for i, r := range recipes {
		cols, err := encodeJSONColumns(r)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insert,
			run.ID.String(),
			i,
			r.URL,
			r.Title,
			r.Description,
			r.ImageURL,
			cols.ingredients,
			cols.instructions,
			r.Rating,
			r.PrepTime,
			r.CookTime,
			r.TotalTime,
			cols.nutrition,
			cols.categories,
			cols.keywords,
		); err != nil {
			return fmt.Errorf("error saving recipe %s: %w", r.URL, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) LatestRun(ctx context.Context) (*models.BatchRun, error) {
	runs, err := s.ListRuns(ctx, 1)
	if err != nil || len(runs) == 0 {
		return nil, err
	}
	return runs[0], nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]*models.BatchRun, error) {
	query := `
        SELECT id, index_url, output_path, candidates, written, discarded, failed, started_at, finished_at
        FROM batch_runs
        ORDER BY started_at DESC, rowid DESC
        LIMIT ?
    `

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]*models.BatchRun, 0)
	for rows.Next() {
		var run models.BatchRun
		var idStr string
		var finishedAt sql.NullTime

		err := rows.Scan(
			&idStr,
			&run.IndexURL,
			&run.OutputPath,
			&run.Candidates,
			&run.Written,
			&run.Discarded,
			&run.Failed,
			&run.StartedAt,
			&finishedAt,
		)
		if err != nil {
			return nil, err
		}

		run.ID, _ = uuid.Parse(idStr)
		if finishedAt.Valid {
			run.FinishedAt = finishedAt.Time
		}
		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// LoadRecipes returns the recipes of the latest run in discovery order.
func (s *SQLiteStore) LoadRecipes(ctx context.Context) ([]*models.Recipe, error) {
	run, err := s.LatestRun(ctx)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return []*models.Recipe{}, nil
	}

	query := `
        SELECT url, title, description, image_url, ingredients, instructions,
            rating, prep_time, cook_time, total_time, nutrition, categories, keywords
        FROM recipes
        WHERE run_id = ?
        ORDER BY position
    `

	rows, err := s.db.QueryContext(ctx, query, run.ID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := make([]*models.Recipe, 0)
	for rows.Next() {
		var r models.Recipe
		var cols jsonColumns

		err := rows.Scan(
			&r.URL,
			&r.Title,
			&r.Description,
			&r.ImageURL,
			&cols.ingredients,
			&cols.instructions,
			&r.Rating,
			&r.PrepTime,
			&r.CookTime,
			&r.TotalTime,
			&cols.nutrition,
			&cols.categories,
			&cols.keywords,
		)
		if err != nil {
			return nil, err
		}

		if err := cols.decodeInto(&r); err != nil {
			return nil, err
		}
		recipes = append(recipes, &r)
	}

	return recipes, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// jsonColumns holds the collection fields serialized as JSON text.
type jsonColumns struct {
	ingredients  string
	instructions string
	nutrition    string
	categories   string
	keywords     string
}

func encodeJSONColumns(r *models.Recipe) (jsonColumns, error) {
	var cols jsonColumns
	fields := []struct {
		dst *string
		src interface{}
	}{
		{&cols.ingredients, r.Ingredients},
		{&cols.instructions, r.Instructions},
		{&cols.nutrition, r.Nutrition},
		{&cols.categories, r.Categories},
		{&cols.keywords, r.Keywords},
	}
	for _, f := range fields {
		data, err := json.Marshal(f.src)
		if err != nil {
			return cols, err
		}
		*f.dst = string(data)
	}
	return cols, nil
}

func (c jsonColumns) decodeInto(r *models.Recipe) error {
	fields := []struct {
		src string
		dst interface{}
	}{
		{c.ingredients, &r.Ingredients},
		{c.instructions, &r.Instructions},
		{c.nutrition, &r.Nutrition},
		{c.categories, &r.Categories},
		{c.keywords, &r.Keywords},
	}
	for _, f := range fields {
		if f.src == "" {
			continue
		}
		if err := json.Unmarshal([]byte(f.src), f.dst); err != nil {
			return err
		}
	}
	r.Normalize()
	return nil
}
