package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestConfig writes a sqlite config pointing into a temp dir and
// returns its path.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "orderdesk.yaml")
	dbPath := filepath.Join(dir, "orderdesk.db")
	content := fmt.Sprintf("database:\n  driver: sqlite\n  path: %s\n", dbPath)
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestDBMigrate(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := runCmd(t, "db", "migrate", "-c", cfgPath)
	if err != nil {
		t.Fatalf("db migrate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Migrated") || !strings.Contains(out, "sqlite") {
		t.Errorf("output = %q", out)
	}
}

func TestDBSeed(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := runCmd(t, "db", "seed", "-c", cfgPath)
	if err != nil {
		t.Fatalf("db seed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Seed data loaded.") {
		t.Errorf("output = %q", out)
	}

	// Seeding twice must not fail.
	if out, err := runCmd(t, "db", "seed", "-c", cfgPath); err != nil {
		t.Fatalf("second db seed: %v\n%s", err, out)
	}
}

func TestDBMigrate_MissingConfig(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"db", "migrate", "-c", "/does/not/exist.yaml"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
