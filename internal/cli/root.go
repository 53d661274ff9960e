package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/habitlit/internal/backup"
	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/habitstore"
	"github.com/julianstephens/habitlit/internal/logger"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/storage"
)

type Context struct {
	Ctx       context.Context
	Store     *habitstore.Store
	Provider  storage.Provider
	ConfigDir string

	// Out and In default to stdout and stdin.
	Out io.Writer
	In  io.Reader
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Background returns the command's context.
func (c *Context) Background() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

// Backups returns the backup manager for the configured directory.
func (c *Context) Backups() *backup.Manager {
	return backup.NewManager(c.ConfigDir)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, err := c.Backups().CreateBackup(c.Store); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ErrUnreadableHabits is returned by mutating commands when the stored
// collection failed to load. Any write would replace the unread habits.
var ErrUnreadableHabits = errors.New("stored habits could not be read")

// RequireLoaded refuses to continue when the last Load failed.
func (c *Context) RequireLoaded() error {
	if err := c.Store.LoadErr(); err != nil {
		return fmt.Errorf("%w, refusing to modify them (run '%s doctor' to inspect or '%s backup restore' to recover): %v",
			ErrUnreadableHabits, constants.AppName, constants.AppName, err)
	}
	return nil
}

// Confirm asks a yes/no question on In and reports whether the answer was yes.
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Printf("%s [y/N]: ", prompt)

	in := c.In
	if in == nil {
		in = os.Stdin
	}
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// ResolveHabit finds a habit by id, or by case-insensitive name when the
// name is unique.
func (c *Context) ResolveHabit(ref string) (models.Habit, error) {
	if h, ok := c.Store.Habit(ref); ok {
		return h, nil
	}

	var matches []models.Habit
	for _, h := range c.Store.Habits() {
		if strings.EqualFold(strings.TrimSpace(h.Name), strings.TrimSpace(ref)) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 0:
		return models.Habit{}, fmt.Errorf("%w: %s", habitstore.ErrHabitNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return models.Habit{}, fmt.Errorf("habit name %q is ambiguous (%d matches); use the id", ref, len(matches))
	}
}
