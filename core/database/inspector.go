package database

import (
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// MissingColumnsError reports table columns the ledger code expects but the schema lacks.
type MissingColumnsError struct {
	Table   string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("table %s is missing columns: %s", e.Table, strings.Join(e.Columns, ", "))
}

// GetTableColumns retrieves the lowercased column names of a table.
// A table that does not exist yields an empty result on sqlite and an error elsewhere.
func GetTableColumns(db *gorm.DB, tableName string) ([]string, error) {
	types, err := db.Migrator().ColumnTypes(tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}

	columns := make([]string, 0, len(types))
	for _, ct := range types {
		columns = append(columns, strings.ToLower(ct.Name()))
	}
	return columns, nil
}

// RequireColumns verifies that every expected column exists on the table.
func RequireColumns(db *gorm.DB, tableName string, expected []string) error {
	if !db.Migrator().HasTable(tableName) {
		return &MissingColumnsError{Table: tableName, Columns: expected}
	}

	columns, err := GetTableColumns(db, tableName)
	if err != nil {
		return err
	}

	have := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		have[c] = struct{}{}
	}

	var missing []string
	for _, c := range expected {
		if _, ok := have[strings.ToLower(c)]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &MissingColumnsError{Table: tableName, Columns: missing}
	}
	return nil
}
