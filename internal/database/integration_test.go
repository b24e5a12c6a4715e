package database_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/fitsync/fitsync/internal/database"
	"github.com/fitsync/fitsync/internal/dbtest"
	"github.com/fitsync/fitsync/internal/models"
	"github.com/fitsync/fitsync/internal/services"
)

// TestWithMariaDB runs the schema and a document round trip against a
// real MariaDB container. Requires a local Docker daemon.
func TestWithMariaDB(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	mariadb, err := dbtest.StartMariaDB(ctx)
	if err != nil {
		t.Fatalf("Failed to start MariaDB container: %v", err)
	}
	defer func() {
		if err := mariadb.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate MariaDB container: %v", err)
		}
	}()

	cfg := mariadb.Config()

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	user := models.User{
		Email:        "mariadb@example.com",
		PasswordHash: "x",
		Name:         "Integration",
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	if user.ID == "" {
		t.Fatal("Expected generated user ID")
	}

	doc := json.RawMessage(`{"calories": 2100, "meals": ["breakfast"]}`)
	if _, err := services.UpsertMonthlyData(db, user.ID, models.KindNutrition, "2025-07", doc); err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}

	// Second write for the same month must replace, not duplicate
	doc = json.RawMessage(`{"calories": 1900}`)
	rowID, err := services.UpsertMonthlyData(db, user.ID, models.KindNutrition, "2025-07", doc)
	if err != nil {
		t.Fatalf("Failed to upsert again: %v", err)
	}
	if rowID == 0 {
		t.Error("Expected a row id after upsert")
	}

	data, err := services.GetMonthlyData(db, user.ID, models.KindNutrition)
	if err != nil {
		t.Fatalf("Failed to read back: %v", err)
	}
	if len(data) != 1 {
		t.Fatalf("Expected 1 document, got %d", len(data))
	}

	got, ok := data["2025-07"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected stored document object, got %v", data["2025-07"])
	}
	if got["calories"] != float64(1900) {
		t.Errorf("Expected replaced document, got %v", got)
	}
}
