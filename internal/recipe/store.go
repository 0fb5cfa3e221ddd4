package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Store defines the interface for recipe persistence.
type Store interface {
	SaveRecipe(ctx context.Context, recipe *Recipe) error
	GetRecipeByID(ctx context.Context, id string) (*Recipe, error)
	ListRecentRecipes(ctx context.Context, limit int) ([]*Recipe, error)
}

// PostgresStore implements the Store interface for PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore connects to the database and ensures the schema exists.
func NewPostgresStore(dataSourceName string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS recipes (
		id TEXT PRIMARY KEY,
		title TEXT,
		source_url TEXT,
		servings TEXT,
		ingredient_groups JSONB,
		steps JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`
	if _, err = db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create recipes table: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// SaveRecipe saves a recipe to the database, replacing any previous version
// with the same id.
func (s *PostgresStore) SaveRecipe(ctx context.Context, recipe *Recipe) error {
	groupsJSON, err := json.Marshal(recipe.Groups)
	if err != nil {
		return fmt.Errorf("failed to marshal ingredient groups: %w", err)
	}
	stepsJSON, err := json.Marshal(recipe.Steps)
	if err != nil {
		return fmt.Errorf("failed to marshal steps: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO recipes (id, title, source_url, servings, ingredient_groups, steps) VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (id) DO UPDATE SET title = $2, source_url = $3, servings = $4, ingredient_groups = $5, steps = $6",
		recipe.ID,
		recipe.Title,
		recipe.SourceURL,
		recipe.Servings,
		groupsJSON,
		stepsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save recipe: %w", err)
	}

	return nil
}

// GetRecipeByID retrieves a recipe by its id. A missing recipe returns
// (nil, nil).
func (s *PostgresStore) GetRecipeByID(ctx context.Context, id string) (*Recipe, error) {
	var r Recipe
	var groupsJSON, stepsJSON []byte

	err := s.db.QueryRowContext(ctx, "SELECT id, title, source_url, servings, ingredient_groups, steps, created_at FROM recipes WHERE id = $1", id).Scan(
		&r.ID,
		&r.Title,
		&r.SourceURL,
		&r.Servings,
		&groupsJSON,
		&stepsJSON,
		&r.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Recipe not found
		}
		return nil, fmt.Errorf("failed to get recipe by id: %w", err)
	}

	if err := json.Unmarshal(groupsJSON, &r.Groups); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ingredient groups: %w", err)
	}
	if err := json.Unmarshal(stepsJSON, &r.Steps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal steps: %w", err)
	}

	return &r, nil
}

// ListRecentRecipes retrieves the most recently saved recipes, newest first.
func (s *PostgresStore) ListRecentRecipes(ctx context.Context, limit int) ([]*Recipe, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT id, title, source_url, servings, ingredient_groups, steps, created_at FROM recipes ORDER BY created_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []*Recipe
	for rows.Next() {
		var r Recipe
		var groupsJSON, stepsJSON []byte
		err := rows.Scan(
			&r.ID,
			&r.Title,
			&r.SourceURL,
			&r.Servings,
			&groupsJSON,
			&stepsJSON,
			&r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe row: %w", err)
		}

		if err := json.Unmarshal(groupsJSON, &r.Groups); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ingredient groups: %w", err)
		}
		if err := json.Unmarshal(stepsJSON, &r.Steps); err != nil {
			return nil, fmt.Errorf("failed to unmarshal steps: %w", err)
		}
		recipes = append(recipes, &r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return recipes, nil
}
