package main

import (
	"bytes"
	"testing"
)

func TestRootHelpListsCommands(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--help"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("help: %v", err)
	}
	for _, name := range []string{"follow", "unfollow", "queue", "schedule", "days", "refresh", "settings", "config"} {
		if !bytes.Contains(out.Bytes(), []byte(name)) {
			t.Fatalf("help output missing %q:\n%s", name, out.String())
		}
	}
}

func TestUnknownStatusFilterRejected(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, err := runCLI(t, env, "queue", "list", "--status", "bogus"); err == nil {
		t.Fatal("expected unknown status to fail")
	}
}

func TestRefreshAll(t *testing.T) {
	env := setupCLITestEnv(t)
	env.catalog.addEndedShow(101, "Night Shift", 45)
	mustRunCLI(t, env, "follow", "101")

	out := mustRunCLI(t, env, "refresh")
	requireContains(t, out, "Refreshed 1 entries")

	out = mustRunCLI(t, env, "refresh", "1")
	requireContains(t, out, "Refreshed Night Shift")
}
