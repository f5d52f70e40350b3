package recipe

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Store defines the interface for saved recipe operations. Saving is
// append-only: rows are never updated or deleted.
type Store interface {
	SaveRecipe(ctx context.Context, r *SavedRecipe) (int64, error)
	GetRecipe(ctx context.Context, id int64) (*SavedRecipe, error)
	ListRecipes(ctx context.Context, region, mealCategory string) ([]*SavedRecipe, error)
}

// PostgresStore implements the Store interface for PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore connects to the database and ensures the saved_recipes
// table exists.
func NewPostgresStore(dataSourceName string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS saved_recipes (
		id BIGSERIAL PRIMARY KEY,
		recipe_name TEXT NOT NULL,
		recipe_name_telugu TEXT NOT NULL DEFAULT '',
		region TEXT NOT NULL,
		meal_category TEXT NOT NULL,
		cooking_style TEXT NOT NULL,
		ingredients TEXT NOT NULL,
		instructions TEXT NOT NULL,
		video_link TEXT NOT NULL DEFAULT '',
		cooking_time INTEGER NOT NULL DEFAULT 0,
		created_date TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`
	_, err = db.Exec(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to create saved_recipes table: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// SaveRecipe appends a row to saved_recipes and returns the generated id.
// There is no uniqueness constraint: saving identical fields twice yields two
// independent rows.
func (s *PostgresStore) SaveRecipe(ctx context.Context, r *SavedRecipe) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO saved_recipes
		 (recipe_name, recipe_name_telugu, region, meal_category, cooking_style,
		  ingredients, instructions, video_link, cooking_time, created_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		r.Name,
		r.NameTelugu,
		r.Region,
		r.MealCategory,
		r.CookingStyle,
		r.Ingredients,
		r.Instructions,
		r.VideoLink,
		r.CookingTime,
		r.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save recipe: %w", err)
	}
	return id, nil
}

// GetRecipe retrieves a saved recipe by id. Returns (nil, nil) when no row
// matches.
func (s *PostgresStore) GetRecipe(ctx context.Context, id int64) (*SavedRecipe, error) {
	var r SavedRecipe
	err := s.db.GetContext(ctx, &r,
		`SELECT id, recipe_name, recipe_name_telugu, region, meal_category, cooking_style,
		        ingredients, instructions, video_link, cooking_time, created_date
		 FROM saved_recipes WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe by id: %w", err)
	}
	return &r, nil
}

// ListRecipes retrieves saved recipes, optionally filtered by region and meal
// category, newest first.
func (s *PostgresStore) ListRecipes(ctx context.Context, region, mealCategory string) ([]*SavedRecipe, error) {
	var args []interface{}
	query := `SELECT id, recipe_name, recipe_name_telugu, region, meal_category, cooking_style,
	                 ingredients, instructions, video_link, cooking_time, created_date
	          FROM saved_recipes WHERE 1=1`

	paramCount := 1
	if region != "" {
		query += fmt.Sprintf(" AND region = $%d", paramCount)
		args = append(args, region)
		paramCount++
	}
	if mealCategory != "" {
		query += fmt.Sprintf(" AND meal_category = $%d", paramCount)
		args = append(args, mealCategory)
		paramCount++
	}
	query += " ORDER BY created_date DESC, id DESC"

	var recipes []*SavedRecipe
	if err := s.db.SelectContext(ctx, &recipes, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}
