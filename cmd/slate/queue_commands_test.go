package main

import (
	"testing"
)

func TestFollowByIDAndList(t *testing.T) {
	env := setupCLITestEnv(t)
	env.catalog.addEndedShow(101, "Night Shift", 45)

	out := mustRunCLI(t, env, "follow", "101")
	requireContains(t, out, "Following Night Shift")
	requireContains(t, out, "S01E01")

	out = mustRunCLI(t, env, "queue", "list")
	requireContains(t, out, "Night Shift")
	requireContains(t, out, "Queued")
}

func TestFollowBySearchSingleMatch(t *testing.T) {
	env := setupCLITestEnv(t)
	env.catalog.addEndedShow(202, "Harbor Lights", 30)

	out := mustRunCLI(t, env, "follow", "harbor", "lights")
	requireContains(t, out, "Following Harbor Lights")
}

func TestFollowBySearchMultipleMatches(t *testing.T) {
	env := setupCLITestEnv(t)
	env.catalog.addEndedShow(301, "Crossing One", 40)
	env.catalog.addEndedShow(302, "Crossing Two", 40)

	out := mustRunCLI(t, env, "follow", "crossing")
	requireContains(t, out, "2 shows match")
	requireContains(t, out, "Crossing One")
	requireContains(t, out, "Crossing Two")

	out = mustRunCLI(t, env, "queue", "list")
	requireContains(t, out, "No entries found.")
}

func TestFollowDuplicateFails(t *testing.T) {
	env := setupCLITestEnv(t)
	env.catalog.addEndedShow(101, "Night Shift", 45)

	mustRunCLI(t, env, "follow", "101")
	if _, err := runCLI(t, env, "follow", "101"); err == nil {
		t.Fatal("expected duplicate follow to fail")
	}
}

func TestPromoteDemoteFinish(t *testing.T) {
	env := setupCLITestEnv(t)
	env.catalog.addEndedShow(101, "Night Shift", 45)
	mustRunCLI(t, env, "follow", "101")

	out := mustRunCLI(t, env, "queue", "promote", "1")
	requireContains(t, out, "Now watching Night Shift")

	out = mustRunCLI(t, env, "queue", "list", "--status", "watching")
	requireContains(t, out, "Night Shift")

	out = mustRunCLI(t, env, "queue", "demote", "1")
	requireContains(t, out, "Returned Night Shift to the queue")

	mustRunCLI(t, env, "queue", "promote", "1")
	out = mustRunCLI(t, env, "queue", "finish", "1")
	requireContains(t, out, "Finished Night Shift")

	out = mustRunCLI(t, env, "queue", "list", "--status", "finished")
	requireContains(t, out, "Night Shift")
}

func TestFinishAutoPromote(t *testing.T) {
	env := setupCLITestEnv(t)
	env.catalog.addEndedShow(101, "Night Shift", 45)
	env.catalog.addEndedShow(102, "Harbor Lights", 44)
	mustRunCLI(t, env, "follow", "101")
	mustRunCLI(t, env, "follow", "102")
	mustRunCLI(t, env, "queue", "promote", "1")

	out := mustRunCLI(t, env, "queue", "finish", "1", "--auto-promote")
	requireContains(t, out, "Finished Night Shift")
	requireContains(t, out, "Promoted Harbor Lights")
}

func TestSetDays(t *testing.T) {
	env := setupCLITestEnv(t)
	env.catalog.addEndedShow(101, "Night Shift", 45)
	mustRunCLI(t, env, "follow", "101")
	mustRunCLI(t, env, "queue", "promote", "1")

	out := mustRunCLI(t, env, "queue", "set-days", "1", "mon", "3")
	requireContains(t, out, "Mon, Wed")

	if _, err := runCLI(t, env, "queue", "set-days", "1", "someday"); err == nil {
		t.Fatal("expected unknown weekday to fail")
	}
}

func TestDropAndUnfollow(t *testing.T) {
	env := setupCLITestEnv(t)
	env.catalog.addEndedShow(101, "Night Shift", 45)
	env.catalog.addEndedShow(102, "Harbor Lights", 30)
	mustRunCLI(t, env, "follow", "101")
	mustRunCLI(t, env, "follow", "102")

	out := mustRunCLI(t, env, "queue", "drop", "1")
	requireContains(t, out, "Dropped Night Shift")

	out = mustRunCLI(t, env, "unfollow", "2")
	requireContains(t, out, "Removed entry 2")

	if _, err := runCLI(t, env, "unfollow", "2"); err == nil {
		t.Fatal("expected unfollow of removed entry to fail")
	}
}

func TestQueuePriority(t *testing.T) {
	env := setupCLITestEnv(t)
	env.catalog.addEndedShow(101, "Night Shift", 45)
	mustRunCLI(t, env, "follow", "101")

	out := mustRunCLI(t, env, "queue", "priority", "1", "5")
	requireContains(t, out, "Night Shift now has priority 5")
}
