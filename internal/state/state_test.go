// Where: internal/state/state_test.go
// What: Tests for last-deploy record persistence.
// Why: Status must reflect reality across CLI invocations.
package state

import (
	"testing"
	"time"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	rec := Record{
		App:         "crm",
		Time:        time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
		Outcome:     "failed",
		FailedStep:  "Build server image",
		ServerImage: "crm-server:latest",
		ClientImage: "crm-client:latest",
	}

	if err := Save(dir, rec); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	loaded, found, err := Load(dir)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !found {
		t.Fatal("expected record to exist")
	}
	if loaded != rec {
		t.Fatalf("round trip mismatch: %+v != %+v", loaded, rec)
	}
}

func TestLoadMissingRecord(t *testing.T) {
	_, found, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if found {
		t.Fatal("expected no record")
	}
}
