package main

import (
	"strings"
	"testing"
)

func TestSettingsDefaults(t *testing.T) {
	env := setupCLITestEnv(t)

	out := mustRunCLI(t, env, "settings", "show")
	requireContains(t, out, "Weekday budget:  120 min")
	requireContains(t, out, "Weekend budget:  240 min")
	requireContains(t, out, "Auto-promote:    no")
}

func TestSettingsSetRoundTrip(t *testing.T) {
	env := setupCLITestEnv(t)

	mustRunCLI(t, env, "settings", "set",
		"--weekday", "90",
		"--override", "fri=200",
		"--auto-promote", "true")

	out := mustRunCLI(t, env, "settings", "show")
	requireContains(t, out, "Weekday budget:  90 min")
	requireContains(t, out, "Weekend budget:  240 min")
	requireContains(t, out, "Override Fri:    200 min")
	requireContains(t, out, "Auto-promote:    yes")

	mustRunCLI(t, env, "settings", "set", "--clear-override", "fri")
	out = mustRunCLI(t, env, "settings", "show")
	if strings.Contains(out, "Override Fri") {
		t.Fatalf("expected override to be cleared, got:\n%s", out)
	}
}

func TestSettingsRejectsBadInput(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := runCLI(t, env, "settings", "set", "--weekday", "-10"); err == nil {
		t.Fatal("expected negative budget to fail")
	}
	if _, err := runCLI(t, env, "settings", "set", "--override", "fri"); err == nil {
		t.Fatal("expected malformed override to fail")
	}
	if _, err := runCLI(t, env, "settings", "set", "--override", "someday=60"); err == nil {
		t.Fatal("expected unknown day to fail")
	}
}
