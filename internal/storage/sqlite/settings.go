package sqlite

import (
	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/storage"
)

func (s *Store) GetSettings() (models.Settings, error) {
	return storage.QuerySettings(s.db)
}

func (s *Store) SaveSettings(settings models.Settings) error {
	return storage.WriteSettings(s.db, "INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", settings)
}
