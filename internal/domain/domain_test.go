package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Test1@EXAMPLE.com", "test1@example.com"},
		{"  cook@example.com  ", "cook@example.com"},
		{"already@lower.org", "already@lower.org"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeEmail(tt.in))
	}
}

func TestSession_IsExpired(t *testing.T) {
	now := time.Now()
	s := &Session{ExpiresAt: now.Add(time.Hour)}

	assert.False(t, s.IsExpired(now))
	assert.True(t, s.IsExpired(now.Add(2*time.Hour)))
}

func TestRecipe_AssociationIDs(t *testing.T) {
	r := &Recipe{
		Tags:        []Tag{{ID: 3}, {ID: 1}},
		Ingredients: []Ingredient{{ID: 7}},
	}

	assert.Equal(t, []int64{3, 1}, r.TagIDs())
	assert.Equal(t, []int64{7}, r.IngredientIDs())
	assert.Empty(t, (&Recipe{}).TagIDs())
}

func TestRecipe_HasImage(t *testing.T) {
	assert.False(t, (&Recipe{}).HasImage())
	assert.True(t, (&Recipe{ImagePath: "recipes/abc.jpg"}).HasImage())
}
