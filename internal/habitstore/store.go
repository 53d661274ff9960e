// Package habitstore owns the in-memory habit collection and keeps it in
// step with a storage.Provider.
//
// Every mutation follows the same sequence: build the next collection from a
// deep copy, swap it in, persist, and on a failed write swap the previous
// collection back and return the error. In-memory state therefore never
// stays ahead of what was persisted.
package habitstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/logger"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/progress"
	"github.com/julianstephens/habitlit/internal/scheduler"
	"github.com/julianstephens/habitlit/internal/storage"
	"github.com/julianstephens/habitlit/internal/utils"
)

// ErrHabitNotFound is returned by Update and Delete for an unknown id.
var ErrHabitNotFound = errors.New("habit not found")

type Store struct {
	provider storage.Provider
	now      func() time.Time
	newID    func() string

	loading atomic.Bool

	mu      sync.Mutex
	habits  []models.Habit
	loadErr error
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for creation timestamps and for
// "today" in streak queries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

func New(provider storage.Provider, opts ...Option) *Store {
	s := &Store{
		provider: provider,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		habits:   []models.Habit{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Decode parses a persisted habit collection. Duplicate completion dates are
// collapsed so the completion set has set semantics.
func Decode(data []byte) ([]models.Habit, error) {
	var habits []models.Habit
	if err := json.Unmarshal(data, &habits); err != nil {
		return nil, fmt.Errorf("failed to parse habits: %w", err)
	}
	if habits == nil {
		habits = []models.Habit{}
	}

	seen := make(map[string]struct{}, len(habits))
	for i := range habits {
		if habits[i].ID == "" {
			return nil, fmt.Errorf("habit at index %d has no id", i)
		}
		if _, dup := seen[habits[i].ID]; dup {
			return nil, fmt.Errorf("duplicate habit id %q", habits[i].ID)
		}
		seen[habits[i].ID] = struct{}{}
		habits[i].CompletedDates = dedupeDates(habits[i].CompletedDates)
	}
	return habits, nil
}

// Encode serializes a habit collection for storage.
func Encode(habits []models.Habit) ([]byte, error) {
	if habits == nil {
		habits = []models.Habit{}
	}
	data, err := json.Marshal(habits)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize habits: %w", err)
	}
	return data, nil
}

func dedupeDates(dates []utils.Date) []utils.Date {
	out := make([]utils.Date, 0, len(dates))
	for _, d := range dates {
		if !slices.Contains(out, d) {
			out = append(out, d)
		}
	}
	return out
}

func cloneAll(habits []models.Habit) []models.Habit {
	out := make([]models.Habit, len(habits))
	for i, h := range habits {
		out[i] = h.Clone()
	}
	return out
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.habits, func(h models.Habit) bool { return h.ID == id })
}

// Load replaces the in-memory collection with the persisted one. A missing
// blob is an empty collection. Read or parse failures also leave the
// collection empty; they are logged and kept for LoadErr, never returned.
func (s *Store) Load(ctx context.Context) {
	s.loading.Store(true)
	defer s.loading.Store(false)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadErr = nil
	data, err := s.provider.Get(ctx, constants.StorageKey)
	if err != nil {
		s.habits = []models.Habit{}
		if errors.Is(err, storage.ErrNotFound) {
			logger.Debug("No stored habits", "backend", s.provider.GetConfigPath())
			return
		}
		s.loadErr = fmt.Errorf("failed to load habits: %w", err)
		logger.Error("Failed to load habits", "error", err)
		return
	}

	habits, err := Decode(data)
	if err != nil {
		s.habits = []models.Habit{}
		s.loadErr = fmt.Errorf("failed to load habits: %w", err)
		logger.Error("Failed to load habits", "error", err)
		return
	}

	s.habits = habits
	logger.Debug("Loaded habits", "count", len(habits))
}

// LoadErr returns the failure recorded by the last Load, if any.
func (s *Store) LoadErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Loading reports whether a Load is in progress.
func (s *Store) Loading() bool {
	return s.loading.Load()
}

// commit swaps in next, persists it and restores the previous collection if
// the write fails. Callers must hold s.mu.
func (s *Store) commit(ctx context.Context, op string, next []models.Habit) error {
	prev := s.habits
	s.habits = next

	data, err := Encode(next)
	if err == nil {
		err = s.provider.Set(ctx, constants.StorageKey, data)
	}
	if err != nil {
		s.habits = prev
		logger.Error("Persist failed, rolled back", "op", op, "error", err)
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	return nil
}

// Add creates a habit from input, assigning its id, creation time and an
// empty completion set. The name is trimmed; input is otherwise trusted.
func (s *Store) Add(ctx context.Context, input models.HabitInput) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	habit := models.Habit{
		ID:             s.newID(),
		Name:           strings.TrimSpace(input.Name),
		Frequency:      input.Frequency,
		WeeklyDays:     slices.Clone(input.WeeklyDays),
		MonthlyDays:    slices.Clone(input.MonthlyDays),
		CustomDates:    slices.Clone(input.CustomDates),
		Category:       input.Category,
		Emoji:          input.Emoji,
		CreatedAt:      s.now(),
		CompletedDates: []utils.Date{},
		TargetCount:    input.TargetCount,
		CurrentCount:   input.CurrentCount,
		Unit:           input.Unit,
		Time:           input.Time,
	}
	if habit.Emoji == "" {
		habit.Emoji = habit.Category.Emoji()
	}
	habit = habit.Clone()

	next := append(cloneAll(s.habits), habit)
	if err := s.commit(ctx, "add habit", next); err != nil {
		return models.Habit{}, err
	}

	logger.Info("Habit added", "id", habit.ID, "name", habit.Name, "frequency", habit.Frequency)
	return habit.Clone(), nil
}

// Update merges patch into the habit with the given id.
func (s *Store) Update(ctx context.Context, id string, patch models.HabitPatch) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Habit{}, fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	}

	next := cloneAll(s.habits)
	updated := patch.Apply(next[idx])
	updated.Name = strings.TrimSpace(updated.Name)
	next[idx] = updated

	if err := s.commit(ctx, "update habit", next); err != nil {
		return models.Habit{}, err
	}

	logger.Info("Habit updated", "id", id)
	return updated.Clone(), nil
}

// ToggleCompletion flips whether the habit was completed on date and reports
// the new state. An unknown id is a no-op returning (false, nil).
func (s *Store) ToggleCompletion(ctx context.Context, id string, date utils.Date) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		logger.Warn("Toggle on unknown habit ignored", "id", id)
		return false, nil
	}

	next := cloneAll(s.habits)
	h := &next[idx]
	completed := !h.IsCompletedOn(date)
	if completed {
		h.CompletedDates = append(h.CompletedDates, date)
	} else {
		h.CompletedDates = slices.DeleteFunc(h.CompletedDates, func(d utils.Date) bool { return d == date })
	}

	if err := s.commit(ctx, "toggle completion", next); err != nil {
		return !completed, err
	}

	logger.Info("Habit completion toggled", "id", id, "date", date, "completed", completed)
	return completed, nil
}

// Delete removes the habit permanently.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	}

	next := slices.Delete(cloneAll(s.habits), idx, idx+1)
	if err := s.commit(ctx, "delete habit", next); err != nil {
		return err
	}

	logger.Info("Habit deleted", "id", id)
	return nil
}

// Replace swaps the whole collection, e.g. when restoring a backup. It
// follows the same rollback rule as the other mutations.
func (s *Store) Replace(ctx context.Context, habits []models.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commit(ctx, "replace habits", cloneAll(habits)); err != nil {
		return err
	}
	logger.Info("Habits replaced", "count", len(habits))
	return nil
}

// ClearAll removes the persisted collection and then empties memory.
// Failures are logged only; the collection is left as it was.
func (s *Store) ClearAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.provider.Remove(ctx, constants.StorageKey); err != nil {
		logger.Error("Failed to clear habits", "error", err)
		return
	}
	s.habits = []models.Habit{}
	logger.Info("All habits cleared")
}

// Habits returns a copy of the collection in insertion order.
func (s *Store) Habits() []models.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.habits)
}

// Habit returns the habit with the given id.
func (s *Store) Habit(id string) (models.Habit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Habit{}, false
	}
	return s.habits[idx].Clone(), true
}

// Today returns the local calendar date of the store's clock.
func (s *Store) Today() utils.Date {
	return utils.Today(s.now())
}

// HabitsForDate returns the habits due on date.
func (s *Store) HabitsForDate(date utils.Date) []models.Habit {
	return scheduler.DueHabits(s.Habits(), date)
}

// DayProgress returns completion statistics for date.
func (s *Store) DayProgress(date utils.Date) models.DayProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return progress.ForDay(s.habits, date)
}

// Streak returns the current streak of the habit ending today, or 0 for an
// unknown id.
func (s *Store) Streak(id string) int {
	h, ok := s.Habit(id)
	if !ok {
		return 0
	}
	return progress.Streak(h, s.Today())
}

// MonthlyProgress returns day progress for every day of the month.
// Out-of-range months are normalized, so month 0 is December of year-1.
func (s *Store) MonthlyProgress(year int, month time.Month) models.MonthlyProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return progress.ForMonth(s.habits, year, month)
}
