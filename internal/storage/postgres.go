package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
	"github.com/romangod6/recipe-crawler/internal/models"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Initialize(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS batch_runs (
            id UUID PRIMARY KEY,
            index_url VARCHAR(2048) NOT NULL,
            output_path TEXT,
            candidates INTEGER NOT NULL DEFAULT 0,
            written INTEGER NOT NULL DEFAULT 0,
            discarded INTEGER NOT NULL DEFAULT 0,
            failed INTEGER NOT NULL DEFAULT 0,
            started_at TIMESTAMP NOT NULL,
            finished_at TIMESTAMP
        )`,
		`CREATE TABLE IF NOT EXISTS recipes (
            run_id UUID NOT NULL REFERENCES batch_runs(id),
            position INTEGER NOT NULL,
            url VARCHAR(2048) NOT NULL,
            title TEXT,
            description TEXT,
            image_url TEXT,
            ingredients TEXT[],
            instructions TEXT[],
            rating VARCHAR(64),
            prep_time VARCHAR(64),
            cook_time VARCHAR(64),
            total_time VARCHAR(64),
            nutrition JSONB,
            categories TEXT[],
            keywords TEXT[],
            PRIMARY KEY (run_id, position)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_url ON recipes(url)`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_keywords ON recipes USING GIN(keywords)`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_categories ON recipes USING GIN(categories)`,
	}

	for _, query := range queries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}

	return nil
}

func (s *PostgresStore) SaveRun(ctx context.Context, run *models.BatchRun, recipes []*models.Recipe) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO batch_runs (id, index_url, output_path, candidates, written, discarded, failed, started_at, finished_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (id) DO UPDATE SET
            candidates = EXCLUDED.candidates,
            written = EXCLUDED.written,
            discarded = EXCLUDED.discarded,
            failed = EXCLUDED.failed,
            finished_at = EXCLUDED.finished_at
    `
	if _, err := tx.ExecContext(ctx, query,
		run.ID,
		run.IndexURL,
		run.OutputPath,
		run.Candidates,
		run.Written,
		run.Discarded,
		run.Failed,
		run.StartedAt,
		nullTime(run),
	); err != nil {
		return fmt.Errorf("error saving run: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipes WHERE run_id = $1`, run.ID); err != nil {
		return fmt.Errorf("error clearing recipes: %w", err)
	}

	insert := `
        INSERT INTO recipes (run_id, position, url, title, description, image_url, ingredients, instructions,
            rating, prep_time, cook_time, total_time, nutrition, categories, keywords)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
    `
	for i, r := range recipes {
		nutrition, err := json.Marshal(r.Nutrition)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, insert,
			run.ID,
			i,
			r.URL,
			r.Title,
			r.Description,
			r.ImageURL,
			pq.Array(r.Ingredients),
			pq.Array(r.Instructions),
			r.Rating,
			r.PrepTime,
			r.CookTime,
			r.TotalTime,
			nutrition,
			pq.Array(r.Categories),
			pq.Array(r.Keywords),
		); err != nil {
			return fmt.Errorf("error saving recipe %s: %w", r.URL, err)
		}
	}

	return tx.Commit()
}

func (s *PostgresStore) LatestRun(ctx context.Context) (*models.BatchRun, error) {
	runs, err := s.ListRuns(ctx, 1)
	if err != nil || len(runs) == 0 {
		return nil, err
	}
	return runs[0], nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]*models.BatchRun, error) {
	query := `
        SELECT id, index_url, output_path, candidates, written, discarded, failed, started_at, finished_at
        FROM batch_runs
        ORDER BY started_at DESC
        LIMIT $1
    `

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]*models.BatchRun, 0)
	for rows.Next() {
		var run models.BatchRun
		var finishedAt sql.NullTime

		err := rows.Scan(
			&run.ID,
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

		if finishedAt.Valid {
			run.FinishedAt = finishedAt.Time
		}
		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

func (s *PostgresStore) LoadRecipes(ctx context.Context) ([]*models.Recipe, error) {
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
        WHERE run_id = $1
        ORDER BY position
    `

	rows, err := s.db.QueryContext(ctx, query, run.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := make([]*models.Recipe, 0)
	for rows.Next() {
		var r models.Recipe
		var nutrition []byte

		err := rows.Scan(
			&r.URL,
			&r.Title,
			&r.Description,
			&r.ImageURL,
			pq.Array(&r.Ingredients),
			pq.Array(&r.Instructions),
			&r.Rating,
			&r.PrepTime,
			&r.CookTime,
			&r.TotalTime,
			&nutrition,
			pq.Array(&r.Categories),
			pq.Array(&r.Keywords),
		)
		if err != nil {
			return nil, err
		}

		if len(nutrition) > 0 {
			if err := json.Unmarshal(nutrition, &r.Nutrition); err != nil {
				return nil, err
			}
		}
		r.Normalize()
		recipes = append(recipes, &r)
	}

	return recipes, rows.Err()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func nullTime(run *models.BatchRun) interface{} {
	if run.FinishedAt.IsZero() {
		return nil
	}
	return run.FinishedAt
}
