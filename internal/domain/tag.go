package domain

import "time"

// Tag is a user-owned label for categorizing recipes, e.g. "vegan" or
// "dessert". Tags are scoped per user; two users can each have their own
// "vegan" tag.
type Tag struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp.
func (t *Tag) Touch() {
	t.UpdatedAt = time.Now()
}
