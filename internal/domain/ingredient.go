package domain

import "time"

// Ingredient is a user-owned ingredient that recipes can reference, e.g.
// "salt" or "cucumber". Like tags, ingredients are scoped per user.
type Ingredient struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp.
func (i *Ingredient) Touch() {
	i.UpdatedAt = time.Now()
}
