package services_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"slate/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalUnavailable, "catalog", "show lookup", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalUnavailable) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"catalog", "show lookup", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapNilMarkerFallsBackToTransient(t *testing.T) {
	err := services.Wrap(nil, "scheduler", "generate", "", errors.New("io"))
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestAvailabilityErrorCarriesAirDate(t *testing.T) {
	airs := time.Date(2026, time.October, 4, 0, 0, 0, 0, time.UTC)
	err := &services.AvailabilityError{ShowID: 7, Season: 2, Episode: 5, AirDate: &airs}
	if !errors.Is(err, services.ErrNotYetAvailable) {
		t.Fatalf("expected ErrNotYetAvailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "2026-10-04") {
		t.Fatalf("expected air date in message, got %q", err.Error())
	}

	unknown := &services.AvailabilityError{ShowID: 7, Season: 2, Episode: 5}
	if !strings.Contains(unknown.Error(), "unknown") {
		t.Fatalf("expected unknown air date marker, got %q", unknown.Error())
	}
}
