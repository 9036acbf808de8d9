// Package main provides a tool to seed the database with an admin user
// and optional sample recipe data.
//
// Usage:
//
//	DATA_PATH=~/Plateful/data go run ./cmd/seed --email admin@example.com --password changeme
//	DATA_PATH=~/Plateful/data go run ./cmd/seed --email admin@example.com --password changeme --sample
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/platefulapp/plateful-server/internal/auth"
	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/logger"
	"github.com/platefulapp/plateful-server/internal/store/sqlite"
)

var (
	email    = flag.String("email", "", "Admin email address (required)")
	password = flag.String("password", "", "Admin password (required)")
	name     = flag.String("name", "Admin", "Admin display name")
	sample   = flag.Bool("sample", false, "Also create sample tags, ingredients and recipes")
)

func main() {
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("resolve home directory: %v", err)
		}
		dataPath = filepath.Join(home, "Plateful", "data")
	}

	dbPath := filepath.Join(dataPath, "plateful.db")
	fmt.Printf("Opening database at: %s\n", dbPath)

	logr := logger.New(logger.Config{Level: slog.LevelWarn, Format: "text"})
	s, err := sqlite.Open(dbPath, logr)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	now := time.Now()
	admin := &domain.User{
		Email:        domain.NormalizeEmail(*email),
		PasswordHash: hash,
		Name:         *name,
		IsActive:     true,
		IsStaff:      true,
		IsSuperuser:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.CreateUser(ctx, admin); err != nil {
		log.Fatalf("create admin user: %v", err)
	}
	fmt.Printf("Created admin user %s (id %d)\n", admin.Email, admin.ID)

	if *sample {
		seedSampleData(ctx, s, admin.ID)
	}
}

func seedSampleData(ctx context.Context, s *sqlite.Store, userID int64) {
	now := time.Now()

	tagIDs := make(map[string]int64)
	for _, tagName := range []string{"Breakfast", "Dinner", "Dessert", "Vegan"} {
		tag := &domain.Tag{UserID: userID, Name: tagName, CreatedAt: now, UpdatedAt: now}
		if err := s.CreateTag(ctx, tag); err != nil {
			log.Fatalf("create tag %q: %v", tagName, err)
		}
		tagIDs[tagName] = tag.ID
	}

	ingredientIDs := make(map[string]int64)
	for _, ingName := range []string{"Lentils", "Rice", "Salt", "Chocolate", "Eggs"} {
		ingredient := &domain.Ingredient{UserID: userID, Name: ingName, CreatedAt: now, UpdatedAt: now}
		if err := s.CreateIngredient(ctx, ingredient); err != nil {
			log.Fatalf("create ingredient %q: %v", ingName, err)
		}
		ingredientIDs[ingName] = ingredient.ID
	}

	recipes := []struct {
		title       string
		timeMinutes int
		price       float64
		tags        []string
		ingredients []string
	}{
		{"Dal Tadka", 40, 6.50, []string{"Dinner", "Vegan"}, []string{"Lentils", "Rice", "Salt"}},
		{"Chocolate Mousse", 25, 8.00, []string{"Dessert"}, []string{"Chocolate", "Eggs"}},
		{"Scrambled Eggs", 10, 3.00, []string{"Breakfast"}, []string{"Eggs", "Salt"}},
	}
	for _, r := range recipes {
		recipe := &domain.Recipe{
			UserID:      userID,
			Title:       r.title,
			TimeMinutes: r.timeMinutes,
			Price:       r.price,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.CreateRecipe(ctx, recipe); err != nil {
			log.Fatalf("create recipe %q: %v", r.title, err)
		}

		ids := make([]int64, 0, len(r.tags))
		for _, tagName := range r.tags {
			ids = append(ids, tagIDs[tagName])
		}
		if err := s.SetRecipeTags(ctx, recipe.ID, ids); err != nil {
			log.Fatalf("set tags for %q: %v", r.title, err)
		}

		ids = ids[:0]
		for _, ingName := range r.ingredients {
			ids = append(ids, ingredientIDs[ingName])
		}
		if err := s.SetRecipeIngredients(ctx, recipe.ID, ids); err != nil {
			log.Fatalf("set ingredients for %q: %v", r.title, err)
		}

		fmt.Printf("Created recipe %q\n", r.title)
	}
}
