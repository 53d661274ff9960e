package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// findBinary locates the habitlit binary: $HABITLIT_BIN_DIR, else ../../bin.
func findBinary(t *testing.T) string {
	t.Helper()

	binDir := os.Getenv("HABITLIT_BIN_DIR")
	if binDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			t.Fatalf("Failed to get cwd: %v", err)
		}
		binDir = filepath.Join(cwd, "..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)

	cliPath := filepath.Join(binDir, "habitlit")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s; build it with 'go build -o bin/habitlit ./cmd/habitlit'", cliPath)
	}
	return cliPath
}

// isolatedEnv returns the current environment with HOME and every
// HABITLIT_ variable pointed at tempDir.
func isolatedEnv(tempDir, config string) []string {
	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "XDG_CONFIG_HOME=") || strings.HasPrefix(e, "HABITLIT_") {
			continue
		}
		env = append(env, e)
	}
	return append(env,
		fmt.Sprintf("HOME=%s", tempDir),
		fmt.Sprintf("XDG_CONFIG_HOME=%s", tempDir),
		fmt.Sprintf("HABITLIT_CONFIG=%s", config),
	)
}

func TestEndToEndWorkflow(t *testing.T) {
	cliPath := findBinary(t)

	for _, backend := range []string{"habitlit.db", "habits.json"} {
		t.Run(backend, func(t *testing.T) {
			tempDir := t.TempDir()
			config := filepath.Join(tempDir, "habitlit", backend)
			env := isolatedEnv(tempDir, config)
			today := time.Now().Format("2006-01-02")

			t.Log("Initializing CLI...")
			runCmd(t, cliPath, env, "init")

			out := runCmd(t, cliPath, env, "habit", "add", "Drink water", "-c", "health")
			if !strings.Contains(out, "Added habit") {
				t.Fatalf("unexpected add output: %s", out)
			}
			runCmd(t, cliPath, env, "habit", "add", "Rent", "-f", "custom", "-d", "2000-01-01", "-c", "work")

			out = runCmd(t, cliPath, env, "habit", "done", "drink water")
			if !strings.Contains(out, "done on "+today) {
				t.Errorf("unexpected done output: %s", out)
			}

			out = runCmd(t, cliPath, env, "habit", "today")
			if !strings.Contains(out, "(1/1 done)") {
				t.Errorf("expected 1/1 done today, got: %s", out)
			}

			out = runCmd(t, cliPath, env, "habit", "streak", "Drink water")
			if !strings.Contains(out, "Drink water: 1 day streak") {
				t.Errorf("unexpected streak output: %s", out)
			}

			out = runCmd(t, cliPath, env, "habit", "month")
			if !strings.Contains(out, "scheduled completions") {
				t.Errorf("unexpected month output: %s", out)
			}

			t.Log("Backing up...")
			runCmd(t, cliPath, env, "backup", "create")
			out = runCmd(t, cliPath, env, "backup", "list")
			if !strings.Contains(out, "Available backups (1 total") {
				t.Errorf("backup not listed: %s", out)
			}

			runCmd(t, cliPath, env, "doctor")

			runCmd(t, cliPath, env, "habit", "delete", "Rent", "--yes")
			out = runCmd(t, cliPath, env, "habit", "list")
			if strings.Contains(out, "Rent") || !strings.Contains(out, "Drink water") {
				t.Errorf("unexpected list after delete: %s", out)
			}

			if _, err := os.Stat(filepath.Join(tempDir, "habitlit", "logs", "habitlit.log")); err != nil {
				t.Errorf("log file was not written: %v", err)
			}
		})
	}
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}
