package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/julianstephens/habitflow/internal/models"
)

// Document is the on-disk layout of a JSONStore.
type Document struct {
	Version  int                     `json:"version"`
	Settings models.Settings         `json:"settings"`
	Habits   map[string]models.Habit `json:"habits"`
	Progress []models.Progress       `json:"progress"`
}

// JSONStore keeps all records in a single JSON file that is rewritten on every change.
type JSONStore struct {
	path string

	mu  sync.Mutex
	doc *Document
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		if err := s.read(); err != nil {
			return err
		}
	} else {
		s.doc = &Document{Version: 1}
	}
	s.normalize()
	CompleteSettings(&s.doc.Settings)

	return s.write(s.doc)
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.read(); err != nil {
		return err
	}
	s.normalize()
	return nil
}

func (s *JSONStore) read() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) normalize() {
	if s.doc.Habits == nil {
		s.doc.Habits = make(map[string]models.Habit)
	}
	if s.doc.Progress == nil {
		s.doc.Progress = []models.Progress{}
	}
}

// clone copies the document deeply enough that edits to the copy never reach s.doc.
func (d *Document) clone() *Document {
	c := *d
	c.Habits = make(map[string]models.Habit, len(d.Habits))
	for id, h := range d.Habits {
		c.Habits[id] = h
	}
	c.Progress = append([]models.Progress(nil), d.Progress...)
	return &c
}

// mutate applies fn to a copy of the document and keeps it only once it is on disk.
func (s *JSONStore) mutate(fn func(doc *Document) error) error {
	if err := s.loaded(); err != nil {
		return err
	}
	next := s.doc.clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := s.write(next); err != nil {
		return err
	}
	s.doc = next
	return nil
}

func (s *JSONStore) write(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal storage: %w", err)
	}

	// Write to a sibling file and rename so a crash never leaves a torn document
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) loaded() error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return models.Settings{}, err
	}
	return s.doc.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutate(func(doc *Document) error {
		doc.Settings = settings
		return nil
	})
}

func (s *JSONStore) AddHabit(habit models.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutate(func(doc *Document) error {
		if _, exists := doc.Habits[habit.ID]; exists {
			return fmt.Errorf("failed to add habit: id %s already exists", habit.ID)
		}
		doc.Habits[habit.ID] = habit
		return nil
	})
}

func (s *JSONStore) GetHabit(id string) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return models.Habit{}, err
	}
	h, ok := s.doc.Habits[id]
	if !ok {
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}
	return h, nil
}

func (s *JSONStore) GetHabitByName(ownerID, name string) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return models.Habit{}, err
	}

	var found *models.Habit
	for _, h := range s.doc.Habits {
		if h.OwnerID != ownerID || !strings.EqualFold(h.Name, name) {
			continue
		}
		// oldest match wins, like the SQL stores
		if found == nil || h.CreatedAt < found.CreatedAt {
			h := h
			found = &h
		}
	}
	if found == nil {
		return models.Habit{}, fmt.Errorf("habit %q: %w", name, ErrNotFound)
	}
	return *found, nil
}

func (s *JSONStore) ListHabits(ownerID string) ([]models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return nil, err
	}
	habits := []models.Habit{}
	for _, h := range s.doc.Habits {
		if h.OwnerID == ownerID {
			habits = append(habits, h)
		}
	}
	return habits, nil
}

func (s *JSONStore) GetAllHabits() ([]models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return nil, err
	}
	habits := make([]models.Habit, 0, len(s.doc.Habits))
	for _, h := range s.doc.Habits {
		habits = append(habits, h)
	}
	return habits, nil
}

func (s *JSONStore) UpdateHabit(habit models.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutate(func(doc *Document) error {
		existing, ok := doc.Habits[habit.ID]
		if !ok {
			return fmt.Errorf("habit %s: %w", habit.ID, ErrNotFound)
		}
		// identity fields are immutable
		habit.OwnerID = existing.OwnerID
		habit.CreatedAt = existing.CreatedAt
		doc.Habits[habit.ID] = habit
		return nil
	})
}

func (s *JSONStore) DeleteHabit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutate(func(doc *Document) error {
		if _, ok := doc.Habits[id]; !ok {
			return fmt.Errorf("habit %s: %w", id, ErrNotFound)
		}
		delete(doc.Habits, id)
		kept := doc.Progress[:0]
		for _, p := range doc.Progress {
			if p.HabitID != id {
				kept = append(kept, p)
			}
		}
		doc.Progress = kept
		return nil
	})
}

func (s *JSONStore) ListProgress(ownerID string) ([]models.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return nil, err
	}
	entries := []models.Progress{}
	for _, p := range s.doc.Progress {
		if p.OwnerID == ownerID {
			entries = append(entries, p)
		}
	}
	return entries, nil
}

func (s *JSONStore) GetAllProgress() ([]models.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return append([]models.Progress(nil), s.doc.Progress...), nil
}

func (s *JSONStore) GetProgress(habitID, date string) (models.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loaded(); err != nil {
		return models.Progress{}, err
	}
	for _, p := range s.doc.Progress {
		if p.HabitID == habitID && p.Date == date {
			return p, nil
		}
	}
	return models.Progress{}, fmt.Errorf("progress for habit %s on %s: %w", habitID, date, ErrNotFound)
}

func (s *JSONStore) UpsertProgress(entry models.Progress) (models.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := entry
	err := s.mutate(func(doc *Document) error {
		if _, ok := doc.Habits[entry.HabitID]; !ok {
			return fmt.Errorf("failed to save progress: habit %s: %w", entry.HabitID, ErrNotFound)
		}
		for i, p := range doc.Progress {
			if p.HabitID == entry.HabitID && p.Date == entry.Date {
				p.Completed = entry.Completed
				p.Note = entry.Note
				doc.Progress[i] = p
				saved = p
				return nil
			}
		}
		doc.Progress = append(doc.Progress, entry)
		return nil
	})
	if err != nil {
		return models.Progress{}, err
	}
	return saved, nil
}
