package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/utils"
)

// ConflictType represents the type of problem found in a stored collection
type ConflictType string

const (
	ConflictDuplicateHabitName ConflictType = "duplicate_habit_name"
	ConflictInvalidHabit       ConflictType = "invalid_habit"
	ConflictUnreachableDay     ConflictType = "unreachable_day"
	ConflictFutureCompletion   ConflictType = "future_completion"
)

// Conflict represents a detected problem with one or more habits
type Conflict struct {
	Type        ConflictType
	Description string
	HabitIDs    []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// ValidateHabits inspects a stored collection for problems the add form would
// have prevented or that make a habit behave unexpectedly. today is used to
// flag completions recorded in the future.
func ValidateHabits(habits []models.Habit, today utils.Date) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	// Duplicate names are legal but usually a mistake
	byName := make(map[string][]string)
	for _, h := range habits {
		key := strings.ToLower(strings.TrimSpace(h.Name))
		if key == "" {
			continue
		}
		byName[key] = append(byName[key], h.ID)
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if ids := byName[name]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateHabitName,
				Description: fmt.Sprintf("Duplicate habit name: %q (IDs: %v)", name, ids),
				HabitIDs:    ids,
			})
		}
	}

	for _, h := range habits {
		if err := ValidateInput(models.InputOf(h)); err != nil {
			var ie *InputError
			desc := err.Error()
			if errors.As(err, &ie) {
				msgs := make([]string, len(ie.Fields))
				for i, f := range ie.Fields {
					msgs[i] = f.Message
				}
				desc = strings.Join(msgs, "; ")
			}
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidHabit,
				Description: fmt.Sprintf("Habit %q is invalid: %s", h.Name, desc),
				HabitIDs:    []string{h.ID},
			})
		}

		if h.Frequency == models.FrequencyMonthly {
			for _, day := range h.MonthlyDays {
				if day > 28 {
					result.Conflicts = append(result.Conflicts, Conflict{
						Type:        ConflictUnreachableDay,
						Description: fmt.Sprintf("Habit %q is scheduled on day %d, which some months skip", h.Name, day),
						HabitIDs:    []string{h.ID},
					})
				}
			}
		}

		for _, d := range h.CompletedDates {
			if today.Before(d) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictFutureCompletion,
					Description: fmt.Sprintf("Habit %q has a completion in the future (%s)", h.Name, d),
					HabitIDs:    []string{h.ID},
				})
				break
			}
		}
	}

	return result
}
