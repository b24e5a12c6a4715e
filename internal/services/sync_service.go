package services

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/fitsync/fitsync/internal/logger"
	"github.com/fitsync/fitsync/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// defaultSettings is substituted when a user has no settings row
var defaultSettings = json.RawMessage(`{"height":177,"targetBodyFat":15,"currentBodyFat":22}`)

// AccountData is the full export of one user's documents
type AccountData struct {
	Nutrition map[string]interface{} `json:"nutrition"`
	Workouts  map[string]interface{} `json:"workouts"`
	Settings  interface{}            `json:"settings"`
}

// SyncPayload is the bulk import body. Sections are kept raw so that a
// section which is present but not a JSON object can be ignored without
// failing the call.
type SyncPayload struct {
	Nutrition json.RawMessage `json:"nutrition,omitempty"`
	Workouts  json.RawMessage `json:"workouts,omitempty"`
	Settings  json.RawMessage `json:"settings,omitempty"`
}

// GetAllData reads every monthly document and the settings document for
// one user. Rows whose stored payload fails to parse are skipped, never
// surfaced as an error.
func GetAllData(db *gorm.DB, userID string) (*AccountData, error) {
	nutrition, err := GetMonthlyData(db, userID, models.KindNutrition)
	if err != nil {
		return nil, err
	}

	workouts, err := GetMonthlyData(db, userID, models.KindWorkout)
	if err != nil {
		return nil, err
	}

	settings, err := GetSettings(db, userID)
	if err != nil {
		return nil, err
	}

	return &AccountData{
		Nutrition: nutrition,
		Workouts:  workouts,
		Settings:  settings,
	}, nil
}

// PutAllData performs every upsert of the payload inside one
// transaction: either all sections land or none do. Sections that are
// absent are untouched; sections that are present but not JSON objects
// are silently skipped. Returns the number of upserts performed.
func PutAllData(db *gorm.DB, userID string, payload SyncPayload) (int, error) {
	operations := 0

	err := db.Transaction(func(tx *gorm.DB) error {
		sections := []struct {
			kind models.Kind
			raw  json.RawMessage
		}{
			{models.KindNutrition, payload.Nutrition},
			{models.KindWorkout, payload.Workouts},
		}

		for _, section := range sections {
			entries, ok := asObject(section.raw)
			if !ok {
				continue
			}
			for monthKey, doc := range entries {
				if _, err := upsertMonthly(tx, userID, section.kind, monthKey, doc); err != nil {
					return err
				}
				operations++
			}
		}

		if _, ok := asObject(payload.Settings); ok {
			if _, err := upsertSettings(tx, userID, payload.Settings); err != nil {
				return err
			}
			operations++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return operations, nil
}

// GetMonthlyData reads all documents of one kind for a user, keyed by
// month-key, ordered by month-key descending. Corrupt payloads are
// dropped from the result.
func GetMonthlyData(db *gorm.DB, userID string, kind models.Kind) (map[string]interface{}, error) {
	type row struct {
		MonthKey string
		Data     datatypes.JSON
	}

	var rows []row
	if err := db.Table(kind.Table()).
		Select("month_key, data").
		Where("user_id = ?", userID).
		Order("month_key DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make(map[string]interface{}, len(rows))
	for _, r := range rows {
		var value interface{}
		if err := json.Unmarshal(r.Data, &value); err != nil {
			logger.Log.Warnw("skipping unparseable stored document",
				"kind", kind, "monthKey", r.MonthKey, "err", err)
			continue
		}
		result[r.MonthKey] = value
	}

	return result, nil
}

// UpsertMonthlyData replaces the document for (user, kind, month-key)
// as a single-statement atomic write and returns the stored row id.
func UpsertMonthlyData(db *gorm.DB, userID string, kind models.Kind, monthKey string, doc json.RawMessage) (uint64, error) {
	return upsertMonthly(db, userID, kind, monthKey, doc)
}

// GetSettings returns the user's settings document, substituting the
// fixed default when no row exists or the stored payload is corrupt.
func GetSettings(db *gorm.DB, userID string) (interface{}, error) {
	var settings models.UserSettings
	err := db.Where("user_id = ?", userID).First(&settings).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return decodeOrDefault(nil), nil
		}
		return nil, err
	}

	return decodeOrDefault(settings.Data.Raw()), nil
}

// UpsertSettings replaces the single settings row for a user and
// returns the stored row id.
func UpsertSettings(db *gorm.DB, userID string, doc json.RawMessage) (uint64, error) {
	return upsertSettings(db, userID, doc)
}

func upsertMonthly(tx *gorm.DB, userID string, kind models.Kind, monthKey string, doc json.RawMessage) (uint64, error) {
	now := time.Now().UTC()
	data := models.NewJSON(doc)

	conflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "month_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"data": data, "updated_at": now}),
	}

	var err error
	switch kind {
	case models.KindWorkout:
		row := models.WorkoutData{UserID: userID, MonthKey: monthKey, Data: data, CreatedAt: now, UpdatedAt: now}
		err = tx.Clauses(conflict).Create(&row).Error
	default:
		row := models.NutritionData{UserID: userID, MonthKey: monthKey, Data: data, CreatedAt: now, UpdatedAt: now}
		err = tx.Clauses(conflict).Create(&row).Error
	}
	if err != nil {
		return 0, err
	}

	return lookupRowID(tx, kind.Table(), "user_id = ? AND month_key = ?", userID, monthKey)
}

func upsertSettings(tx *gorm.DB, userID string, doc json.RawMessage) (uint64, error) {
	now := time.Now().UTC()
	data := models.NewJSON(doc)

	row := models.UserSettings{UserID: userID, Data: data, CreatedAt: now, UpdatedAt: now}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"data": data, "updated_at": now}),
	}).Create(&row).Error
	if err != nil {
		return 0, err
	}

	return lookupRowID(tx, models.UserSettings{}.TableName(), "user_id = ?", userID)
}

// lookupRowID fetches the primary key of an upserted row. The upsert
// itself is the atomic unit; this follow-up read only serves response
// bodies that echo the row id.
func lookupRowID(tx *gorm.DB, table string, query string, args ...interface{}) (uint64, error) {
	var ids []uint64
	if err := tx.Table(table).Where(query, args...).Limit(1).Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return ids[0], nil
}

// asObject reports whether raw holds a JSON object, returning its
// members when it does. Absent, null and malformed sections yield
// ok=false. The explicit `{` check matters because unmarshalling
// `null` into a map succeeds with a nil map.
func asObject(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func decodeOrDefault(stored json.RawMessage) interface{} {
	var value interface{}
	if len(stored) > 0 {
		if err := json.Unmarshal(stored, &value); err == nil {
			return value
		}
		logger.Log.Warnw("stored settings unparseable, substituting defaults")
	}
	_ = json.Unmarshal(defaultSettings, &value)
	return value
}
