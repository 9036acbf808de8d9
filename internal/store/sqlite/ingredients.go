package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/store"
)

// ingredientColumns is the ordered list of columns selected in ingredient
// queries. Must match the scan order in scanIngredient.
const ingredientColumns = `id, user_id, name, created_at, updated_at`

func scanIngredient(scanner interface{ Scan(dest ...any) error }) (*domain.Ingredient, error) {
	var ing domain.Ingredient

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&ing.ID,
		&ing.UserID,
		&ing.Name,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	ing.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	ing.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &ing, nil
}

// CreateIngredient inserts a new ingredient and sets its generated ID.
func (s *Store) CreateIngredient(ctx context.Context, ing *domain.Ingredient) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO ingredients (user_id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		ing.UserID,
		ing.Name,
		formatTime(ing.CreatedAt),
		formatTime(ing.UpdatedAt),
	)
	if err != nil {
		return err
	}

	ing.ID, err = res.LastInsertId()
	return err
}

// GetIngredient retrieves an ingredient by ID, scoped to its owner.
func (s *Store) GetIngredient(ctx context.Context, userID, ingredientID int64) (*domain.Ingredient, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients WHERE id = ? AND user_id = ?`,
		ingredientID, userID)

	ing, err := scanIngredient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ing, nil
}

// ListIngredients returns the user's ingredients ordered by name
// descending. With assignedOnly, only ingredients used by at least one
// recipe are returned, each once.
func (s *Store) ListIngredients(ctx context.Context, userID int64, assignedOnly bool) ([]*domain.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE user_id = ?`
	if assignedOnly {
		query += ` AND EXISTS (SELECT 1 FROM recipe_ingredients ri WHERE ri.ingredient_id = ingredients.id)`
	}
	query += ` ORDER BY name DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ingredients := []*domain.Ingredient{}
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ingredients, nil
}

// UpdateIngredient persists changes to an ingredient, scoped to its owner.
func (s *Store) UpdateIngredient(ctx context.Context, ing *domain.Ingredient) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE ingredients SET name = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		ing.Name,
		formatTime(ing.UpdatedAt),
		ing.ID,
		ing.UserID,
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

// DeleteIngredient removes an ingredient, scoped to its owner. Join rows
// cascade.
func (s *Store) DeleteIngredient(ctx context.Context, userID, ingredientID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM ingredients WHERE id = ? AND user_id = ?`, ingredientID, userID)
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

// CountIngredientsOwned returns how many of the given ingredient IDs belong
// to the user.
func (s *Store) CountIngredientsOwned(ctx context.Context, userID int64, ingredientIDs []int64) (int64, error) {
	if len(ingredientIDs) == 0 {
		return 0, nil
	}

	query := `SELECT COUNT(*) FROM ingredients WHERE user_id = ? AND id IN (` + placeholders(len(ingredientIDs)) + `)`
	args := append([]any{userID}, int64Args(ingredientIDs)...)

	var n int64
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}
