package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/storage"
)

const habitColumns = "id, owner_id, name, description, color, icon, target_days, created_at, is_active"

type scanner interface {
	Scan(dest ...any) error
}

func scanHabit(row scanner) (models.Habit, error) {
	var h models.Habit
	var days string
	if err := row.Scan(&h.ID, &h.OwnerID, &h.Name, &h.Description, &h.Color, &h.Icon, &days, &h.CreatedAt, &h.IsActive); err != nil {
		return models.Habit{}, err
	}
	targetDays, err := storage.DecodeDays(days)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse target_days for habit %s: %w", h.ID, err)
	}
	h.TargetDays = targetDays
	return h, nil
}

func (s *Store) queryHabits(query string, args ...any) ([]models.Habit, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) AddHabit(habit models.Habit) error {
	_, err := s.db.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		habit.ID, habit.OwnerID, habit.Name, habit.Description, habit.Color, habit.Icon,
		storage.EncodeDays(habit.TargetDays), habit.CreatedAt, habit.IsActive)
	if err != nil {
		return fmt.Errorf("failed to add habit: %w", err)
	}
	return nil
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	h, err := scanHabit(s.db.QueryRow("SELECT "+habitColumns+" FROM habits WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, storage.ErrNotFound)
	}
	return h, err
}

func (s *Store) GetHabitByName(ownerID, name string) (models.Habit, error) {
	h, err := scanHabit(s.db.QueryRow(`
		SELECT `+habitColumns+` FROM habits
		WHERE owner_id = ? AND name = ? COLLATE NOCASE
		ORDER BY created_at LIMIT 1`, ownerID, name))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, fmt.Errorf("habit %q: %w", name, storage.ErrNotFound)
	}
	return h, err
}

func (s *Store) ListHabits(ownerID string) ([]models.Habit, error) {
	return s.queryHabits("SELECT "+habitColumns+" FROM habits WHERE owner_id = ?", ownerID)
}

func (s *Store) GetAllHabits() ([]models.Habit, error) {
	return s.queryHabits("SELECT " + habitColumns + " FROM habits")
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	result, err := s.db.Exec(`
		UPDATE habits SET
			name = ?, description = ?, color = ?, icon = ?, target_days = ?, is_active = ?
		WHERE id = ?`,
		habit.Name, habit.Description, habit.Color, habit.Icon,
		storage.EncodeDays(habit.TargetDays), habit.IsActive, habit.ID)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("habit %s: %w", habit.ID, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteHabit(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM progress WHERE habit_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete progress for habit %s: %w", id, err)
	}

	result, err := tx.Exec("DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete habit %s: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("habit %s: %w", id, storage.ErrNotFound)
	}

	return tx.Commit()
}
