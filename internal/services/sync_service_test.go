package services_test

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fitsync/fitsync/internal/models"
	"github.com/fitsync/fitsync/internal/services"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.NutritionData{},
		&models.WorkoutData{},
		&models.UserSettings{},
		&models.ActivityLog{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

const testUserID = "00000000-0000-0000-0000-000000000001"

func TestUpsertRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	payload := json.RawMessage(`{"calories":2100,"meals":["a","b"]}`)
	rowID, err := services.UpsertMonthlyData(db, testUserID, models.KindNutrition, "2025-07", payload)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if rowID == 0 {
		t.Error("Expected non-zero row id")
	}

	result, err := services.GetMonthlyData(db, testUserID, models.KindNutrition)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	var want interface{}
	_ = json.Unmarshal(payload, &want)
	if !reflect.DeepEqual(result["2025-07"], want) {
		t.Errorf("Round trip mismatch: got %v, want %v", result["2025-07"], want)
	}
}

func TestUpsertLastWriteWins(t *testing.T) {
	db := setupTestDB(t)

	if _, err := services.UpsertMonthlyData(db, testUserID, models.KindWorkout, "2025-07", json.RawMessage(`{"sessions":1}`)); err != nil {
		t.Fatalf("First upsert failed: %v", err)
	}
	if _, err := services.UpsertMonthlyData(db, testUserID, models.KindWorkout, "2025-07", json.RawMessage(`{"sessions":2}`)); err != nil {
		t.Fatalf("Second upsert failed: %v", err)
	}

	var count int64
	db.Model(&models.WorkoutData{}).Where("user_id = ? AND month_key = ?", testUserID, "2025-07").Count(&count)
	if count != 1 {
		t.Errorf("Expected exactly one stored document, got %d", count)
	}

	result, err := services.GetMonthlyData(db, testUserID, models.KindWorkout)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	doc, ok := result["2025-07"].(map[string]interface{})
	if !ok || doc["sessions"] != float64(2) {
		t.Errorf("Expected second write to win, got %v", result["2025-07"])
	}
}

func TestOrderingNewestMonthFirst(t *testing.T) {
	db := setupTestDB(t)

	for _, month := range []string{"2025-01", "2025-03", "2025-02"} {
		if _, err := services.UpsertMonthlyData(db, testUserID, models.KindNutrition, month, json.RawMessage(`{}`)); err != nil {
			t.Fatalf("Upsert %s failed: %v", month, err)
		}
	}

	result, err := services.GetMonthlyData(db, testUserID, models.KindNutrition)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(result) != 3 {
		t.Errorf("Expected 3 documents, got %d", len(result))
	}
}

func TestPutAllIgnoresMalformedSection(t *testing.T) {
	db := setupTestDB(t)

	payload := services.SyncPayload{
		Nutrition: json.RawMessage(`{"2025-07":{"calories":1},"2025-08":{"calories":2}}`),
		Workouts:  json.RawMessage(`"not an object"`),
	}

	operations, err := services.PutAllData(db, testUserID, payload)
	if err != nil {
		t.Fatalf("PutAllData failed: %v", err)
	}
	if operations != 2 {
		t.Errorf("Expected 2 operations, got %d", operations)
	}

	var nutritionCount, workoutCount int64
	db.Model(&models.NutritionData{}).Where("user_id = ?", testUserID).Count(&nutritionCount)
	db.Model(&models.WorkoutData{}).Where("user_id = ?", testUserID).Count(&workoutCount)

	if nutritionCount != 2 {
		t.Errorf("Expected 2 nutrition documents, got %d", nutritionCount)
	}
	if workoutCount != 0 {
		t.Errorf("Expected workout documents untouched, got %d", workoutCount)
	}
}

func TestPutAllIgnoresNullSections(t *testing.T) {
	db := setupTestDB(t)

	payload := services.SyncPayload{
		Nutrition: json.RawMessage(`null`),
		Settings:  json.RawMessage(`null`),
	}

	operations, err := services.PutAllData(db, testUserID, payload)
	if err != nil {
		t.Fatalf("PutAllData failed: %v", err)
	}
	if operations != 0 {
		t.Errorf("Expected 0 operations for null sections, got %d", operations)
	}

	var settingsCount int64
	db.Model(&models.UserSettings{}).Where("user_id = ?", testUserID).Count(&settingsCount)
	if settingsCount != 0 {
		t.Errorf("Expected no settings row written, got %d", settingsCount)
	}

	settings, err := services.GetSettings(db, testUserID)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	m, ok := settings.(map[string]interface{})
	if !ok || m["height"] != float64(177) {
		t.Errorf("Expected default settings, got %v", settings)
	}
}

func TestPutAllRollsBackOnFailure(t *testing.T) {
	db := setupTestDB(t)

	// Force the workout upsert to fail after the nutrition upserts
	// already executed within the same transaction.
	if err := db.Migrator().DropTable("workout_data"); err != nil {
		t.Fatalf("Failed to drop table: %v", err)
	}

	payload := services.SyncPayload{
		Nutrition: json.RawMessage(`{"2025-07":{"calories":1},"2025-08":{"calories":2}}`),
		Workouts:  json.RawMessage(`{"2025-08":{"sessions":3}}`),
	}

	if _, err := services.PutAllData(db, testUserID, payload); err == nil {
		t.Fatal("Expected PutAllData to fail")
	}

	var nutritionCount int64
	db.Model(&models.NutritionData{}).Where("user_id = ?", testUserID).Count(&nutritionCount)
	if nutritionCount != 0 {
		t.Errorf("Expected all writes rolled back, found %d nutrition documents", nutritionCount)
	}
}

func TestPutAllSettingsSection(t *testing.T) {
	db := setupTestDB(t)

	payload := services.SyncPayload{
		Settings: json.RawMessage(`{"height":180}`),
	}

	operations, err := services.PutAllData(db, testUserID, payload)
	if err != nil {
		t.Fatalf("PutAllData failed: %v", err)
	}
	if operations != 1 {
		t.Errorf("Expected 1 operation, got %d", operations)
	}

	settings, err := services.GetSettings(db, testUserID)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	m, ok := settings.(map[string]interface{})
	if !ok || m["height"] != float64(180) {
		t.Errorf("Unexpected settings: %v", settings)
	}
}

func TestGetAllSkipsCorruptDocument(t *testing.T) {
	db := setupTestDB(t)

	if _, err := services.UpsertMonthlyData(db, testUserID, models.KindNutrition, "2025-06", json.RawMessage(`{"calories":9}`)); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	// Write corrupt payload bytes directly, bypassing the store
	now := time.Now().UTC()
	if err := db.Exec(
		"INSERT INTO nutrition_data (user_id, month_key, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		testUserID, "2025-07", "{definitely-not-json", now, now,
	).Error; err != nil {
		t.Fatalf("Failed to insert corrupt row: %v", err)
	}

	data, err := services.GetAllData(db, testUserID)
	if err != nil {
		t.Fatalf("GetAllData failed: %v", err)
	}

	if _, present := data.Nutrition["2025-07"]; present {
		t.Error("Expected corrupt document to be omitted")
	}
	if _, present := data.Nutrition["2025-06"]; !present {
		t.Error("Expected intact document to be returned")
	}
}

func TestGetSettingsDefault(t *testing.T) {
	db := setupTestDB(t)

	settings, err := services.GetSettings(db, testUserID)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}

	want := map[string]interface{}{
		"height":         float64(177),
		"targetBodyFat":  float64(15),
		"currentBodyFat": float64(22),
	}
	if !reflect.DeepEqual(settings, want) {
		t.Errorf("Unexpected default settings: got %v, want %v", settings, want)
	}
}

func TestUpsertSettingsSingleRow(t *testing.T) {
	db := setupTestDB(t)

	if _, err := services.UpsertSettings(db, testUserID, json.RawMessage(`{"height":170}`)); err != nil {
		t.Fatalf("First upsert failed: %v", err)
	}
	if _, err := services.UpsertSettings(db, testUserID, json.RawMessage(`{"height":171}`)); err != nil {
		t.Fatalf("Second upsert failed: %v", err)
	}

	var count int64
	db.Model(&models.UserSettings{}).Where("user_id = ?", testUserID).Count(&count)
	if count != 1 {
		t.Errorf("Expected a single settings row, got %d", count)
	}

	settings, err := services.GetSettings(db, testUserID)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	m, _ := settings.(map[string]interface{})
	if m["height"] != float64(171) {
		t.Errorf("Expected last write to win, got %v", settings)
	}
}
