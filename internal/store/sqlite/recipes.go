package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/store"
)

// recipeColumns is the ordered list of columns selected in recipe queries.
// Must match the scan order in scanRecipe.
const recipeColumns = `id, user_id, title, time_minutes, price, link,
	image_path, image_blurhash, created_at, updated_at`

func scanRecipe(scanner interface{ Scan(dest ...any) error }) (*domain.Recipe, error) {
	var r domain.Recipe

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&r.ID,
		&r.UserID,
		&r.Title,
		&r.TimeMinutes,
		&r.Price,
		&r.Link,
		&r.ImagePath,
		&r.Blurhash,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	r.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// CreateRecipe inserts a new recipe and sets its generated ID. Associations
// are written separately via SetRecipeTags and SetRecipeIngredients.
func (s *Store) CreateRecipe(ctx context.Context, r *domain.Recipe) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO recipes (user_id, title, time_minutes, price, link,
			image_path, image_blurhash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.UserID,
		r.Title,
		r.TimeMinutes,
		r.Price,
		r.Link,
		r.ImagePath,
		r.Blurhash,
		formatTime(r.CreatedAt),
		formatTime(r.UpdatedAt),
	)
	if err != nil {
		return err
	}

	r.ID, err = res.LastInsertId()
	return err
}

// GetRecipe retrieves a recipe with its tags and ingredients, scoped to its
// owner. Recipes owned by other users report as store.ErrNotFound.
func (s *Store) GetRecipe(ctx context.Context, userID, recipeID int64) (*domain.Recipe, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = ? AND user_id = ?`,
		recipeID, userID)

	r, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.attachAssociations(ctx, []*domain.Recipe{r}); err != nil {
		return nil, err
	}
	return r, nil
}

// ListRecipes returns the user's recipes, newest first. The filter narrows
// by tag and ingredient IDs; a recipe matches when it carries any of the
// requested tags and any of the requested ingredients.
func (s *Store) ListRecipes(ctx context.Context, userID int64, filter store.RecipeFilter) ([]*domain.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE user_id = ?`
	args := []any{userID}

	if len(filter.TagIDs) > 0 {
		query += ` AND EXISTS (SELECT 1 FROM recipe_tags rt
			WHERE rt.recipe_id = recipes.id AND rt.tag_id IN (` + placeholders(len(filter.TagIDs)) + `))`
		args = append(args, int64Args(filter.TagIDs)...)
	}
	if len(filter.IngredientIDs) > 0 {
		query += ` AND EXISTS (SELECT 1 FROM recipe_ingredients ri
			WHERE ri.recipe_id = recipes.id AND ri.ingredient_id IN (` + placeholders(len(filter.IngredientIDs)) + `))`
		args = append(args, int64Args(filter.IngredientIDs)...)
	}

	query += ` ORDER BY id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := []*domain.Recipe{}
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachAssociations(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// UpdateRecipe persists changes to a recipe's own columns, scoped to its
// owner. Associations and the image are updated separately.
func (s *Store) UpdateRecipe(ctx context.Context, r *domain.Recipe) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE recipes
		SET title = ?, time_minutes = ?, price = ?, link = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		r.Title,
		r.TimeMinutes,
		r.Price,
		r.Link,
		formatTime(r.UpdatedAt),
		r.ID,
		r.UserID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteRecipe removes a recipe, scoped to its owner. Join rows cascade.
func (s *Store) DeleteRecipe(ctx context.Context, userID, recipeID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM recipes WHERE id = ? AND user_id = ?`, recipeID, userID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// SetRecipeTags replaces the recipe's tag set in a single transaction.
func (s *Store) SetRecipeTags(ctx context.Context, recipeID int64, tagIDs []int64) error {
	return s.replaceJoinRows(ctx, "recipe_tags", "tag_id", recipeID, tagIDs)
}

// SetRecipeIngredients replaces the recipe's ingredient set in a single
// transaction.
func (s *Store) SetRecipeIngredients(ctx context.Context, recipeID int64, ingredientIDs []int64) error {
	return s.replaceJoinRows(ctx, "recipe_ingredients", "ingredient_id", recipeID, ingredientIDs)
}

// SetRecipeImage records the stored image path and blurhash for a recipe,
// scoped to its owner.
func (s *Store) SetRecipeImage(ctx context.Context, userID, recipeID int64, imagePath, blurhash string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE recipes SET image_path = ?, image_blurhash = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		imagePath,
		blurhash,
		formatTime(time.Now()),
		recipeID,
		userID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// replaceJoinRows deletes and reinserts the join rows for one recipe.
// The table and column names are compile-time constants, never user input.
func (s *Store) replaceJoinRows(ctx context.Context, table, column string, recipeID int64, ids []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM `+table+` WHERE recipe_id = ?`, recipeID); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}

	for _, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO `+table+` (recipe_id, `+column+`) VALUES (?, ?)`,
			recipeID, id); err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
	}

	return tx.Commit()
}

// attachAssociations loads tags and ingredients for the given recipes in
// two batched queries.
func (s *Store) attachAssociations(ctx context.Context, recipes []*domain.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Recipe, len(recipes))
	recipeIDs := make([]int64, len(recipes))
	for i, r := range recipes {
		byID[r.ID] = r
		recipeIDs[i] = r.ID
		r.Tags = []domain.Tag{}
		r.Ingredients = []domain.Ingredient{}
	}

	tagQuery := `SELECT rt.recipe_id, t.id, t.user_id, t.name, t.created_at, t.updated_at
		FROM recipe_tags rt
		JOIN tags t ON t.id = rt.tag_id
		WHERE rt.recipe_id IN (` + placeholders(len(recipeIDs)) + `)
		ORDER BY t.name DESC, t.id DESC`

	rows, err := s.db.QueryContext(ctx, tagQuery, int64Args(recipeIDs)...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var recipeID int64
		var t domain.Tag
		var createdAt, updatedAt string
		if err := rows.Scan(&recipeID, &t.ID, &t.UserID, &t.Name, &createdAt, &updatedAt); err != nil {
			return err
		}
		if t.CreatedAt, err = parseTime(createdAt); err != nil {
			return err
		}
		if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return err
		}
		if r, ok := byID[recipeID]; ok {
			r.Tags = append(r.Tags, t)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	ingQuery := `SELECT ri.recipe_id, i.id, i.user_id, i.name, i.created_at, i.updated_at
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id IN (` + placeholders(len(recipeIDs)) + `)
		ORDER BY i.name DESC, i.id DESC`

	ingRows, err := s.db.QueryContext(ctx, ingQuery, int64Args(recipeIDs)...)
	if err != nil {
		return err
	}
	defer ingRows.Close()

	for ingRows.Next() {
		var recipeID int64
		var ing domain.Ingredient
		var createdAt, updatedAt string
		if err := ingRows.Scan(&recipeID, &ing.ID, &ing.UserID, &ing.Name, &createdAt, &updatedAt); err != nil {
			return err
		}
		if ing.CreatedAt, err = parseTime(createdAt); err != nil {
			return err
		}
		if ing.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return err
		}
		if r, ok := byID[recipeID]; ok {
			r.Ingredients = append(r.Ingredients, ing)
		}
	}
	return ingRows.Err()
}
