package model

import (
	"database/sql/driver"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// RecordIDs is a list of record keys stored as a Postgres text[] column.
// Other dialects store the same array literal in a text column.
type RecordIDs []string

// Value implements driver.Valuer.
func (r RecordIDs) Value() (driver.Value, error) {
	return pq.StringArray(r).Value()
}

// Scan implements sql.Scanner.
func (r *RecordIDs) Scan(src interface{}) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	*r = RecordIDs(arr)
	return nil
}

// GormDataType implements schema.GormDataTypeInterface.
func (RecordIDs) GormDataType() string {
	return "text[]"
}

// GormDBDataType implements migrator.GormDBDataTypeInterface.
func (RecordIDs) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}
