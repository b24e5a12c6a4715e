package models

import (
	"database/sql/driver"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// JSON is the column type backing every stored document: the monthly
// nutrition and workout payloads and the settings blob. Documents are
// opaque to the server, so the column only needs to round-trip bytes
// while still landing in a native JSON type where the dialect has one.
type JSON struct {
	datatypes.JSON
}

// NewJSON wraps a raw document for storage
func NewJSON(raw json.RawMessage) JSON {
	return JSON{JSON: datatypes.JSON(raw)}
}

// Raw returns the stored document bytes
func (j JSON) Raw() json.RawMessage {
	return json.RawMessage(j.JSON)
}

func (j JSON) Value() (driver.Value, error) {
	return j.JSON.Value()
}

func (j *JSON) Scan(value interface{}) error {
	return j.JSON.Scan(value)
}

// GormDBDataType picks the column type per dialect. SQL Server has no
// json type, so documents there live in NVARCHAR(MAX).
func (JSON) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql", "sqlite":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	default:
		return "TEXT"
	}
}
