package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/storage"
)

const progressColumns = "id, owner_id, habit_id, date, completed, note"

func scanProgress(row scanner) (models.Progress, error) {
	var p models.Progress
	err := row.Scan(&p.ID, &p.OwnerID, &p.HabitID, &p.Date, &p.Completed, &p.Note)
	return p, err
}

func (s *Store) queryProgress(query string, args ...any) ([]models.Progress, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.Progress{}
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, p)
	}
	return entries, rows.Err()
}

func (s *Store) ListProgress(ownerID string) ([]models.Progress, error) {
	return s.queryProgress("SELECT "+progressColumns+" FROM progress WHERE owner_id = ?", ownerID)
}

func (s *Store) GetAllProgress() ([]models.Progress, error) {
	return s.queryProgress("SELECT " + progressColumns + " FROM progress")
}

func (s *Store) GetProgress(habitID, date string) (models.Progress, error) {
	p, err := scanProgress(s.db.QueryRow(
		"SELECT "+progressColumns+" FROM progress WHERE habit_id = ? AND date = ?", habitID, date))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Progress{}, fmt.Errorf("progress for habit %s on %s: %w", habitID, date, storage.ErrNotFound)
	}
	return p, err
}

func (s *Store) UpsertProgress(entry models.Progress) (models.Progress, error) {
	_, err := s.db.Exec(`
		INSERT INTO progress (`+progressColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(habit_id, date) DO UPDATE SET
			completed = excluded.completed,
			note = excluded.note`,
		entry.ID, entry.OwnerID, entry.HabitID, entry.Date, entry.Completed, entry.Note)
	if err != nil {
		return models.Progress{}, fmt.Errorf("failed to save progress: %w", err)
	}
	return s.GetProgress(entry.HabitID, entry.Date)
}
