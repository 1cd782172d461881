package storage

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/habitflow/internal/models"
)

// CompleteSettings fills missing settings with defaults and assigns a local
// owner ID when none exists. It reports whether anything changed.
func CompleteSettings(settings *models.Settings) bool {
	before := *settings
	models.ApplyDefaultSettings(settings)
	if settings.OwnerID == "" {
		settings.OwnerID = uuid.New().String()
	}
	return before != *settings
}

// QuerySettings reads the key/value settings table shared by the SQL stores.
func QuerySettings(db *sql.DB) (models.Settings, error) {
	rows, err := db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	kv := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return models.Settings{}, err
		}
		kv[k] = v
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}
	if len(kv) == 0 {
		return models.Settings{}, fmt.Errorf("settings %w", ErrNotFound)
	}
	return models.MapToSettings(kv), nil
}

// WriteSettings upserts every setting in one transaction. upsert takes the
// key and value as its two parameters.
func WriteSettings(db *sql.DB, upsert string, settings models.Settings) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for k, v := range models.SettingsToMap(settings) {
		if _, err := tx.Exec(upsert, k, v); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", k, err)
		}
	}
	return tx.Commit()
}
