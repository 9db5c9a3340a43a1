package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitAndForce(t *testing.T) {
	env := setupCLITestEnv(t)

	out := mustRunCLI(t, env, "config", "init")
	requireContains(t, out, "Wrote sample configuration")

	home := os.Getenv("HOME")
	path := filepath.Join(home, ".config", "slate", "config.toml")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected sample config at %s: %v", path, err)
	}

	if _, err := runCLI(t, env, "config", "init"); err == nil {
		t.Fatal("expected second init without --force to fail")
	}
	mustRunCLI(t, env, "config", "init", "--force")
}

func TestConfigShowRedactsAPIKey(t *testing.T) {
	env := setupCLITestEnv(t)

	out := mustRunCLI(t, env, "config", "show")
	requireContains(t, out, "[catalog]")
	requireContains(t, out, "<set>")
	if strings.Contains(out, "test-key") {
		t.Fatalf("api key leaked into output:\n%s", out)
	}
}
