package audit

import (
	"os"
	"strings"
	"testing"

	"github.com/gabisponciano/secure-ai-model/internal/configs"
)

func useTempDeployment(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	original := configs.Settings
	configs.SetDeploymentPath(tempDir)
	t.Cleanup(func() { configs.Settings = original })
	return tempDir
}

func TestLogAppendsEntries(t *testing.T) {
	useTempDeployment(t)

	Log(Entry{Session: "abc", Operation: "startup", GateState: "ready", Outcome: "pass"})
	Log(Entry{Session: "abc", Operation: "benchmark", Runs: 50, Output: "results/benchmark-abc.csv"})

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("Failed to read audit trail: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	if entries[0].Operation != "startup" || entries[0].Outcome != "pass" {
		t.Errorf("Unexpected first entry: %+v", entries[0])
	}
	if entries[0].Timestamp == "" {
		t.Error("Expected timestamp to be filled in")
	}
	if entries[1].Runs != 50 {
		t.Errorf("Expected 50 runs on benchmark entry, got %d", entries[1].Runs)
	}
}

func TestLogFailureRecorded(t *testing.T) {
	useTempDeployment(t)

	Log(Entry{
		Session:   "def",
		Operation: "startup",
		Asset:     "model.enc",
		GateState: "aborted",
		Outcome:   "fail",
		Error:     "asset digest mismatch",
	})

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("Failed to read audit trail: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Error != "asset digest mismatch" {
		t.Errorf("Expected check error to be recorded, got %q", entries[0].Error)
	}
}

func TestReadEntriesMissingTrail(t *testing.T) {
	useTempDeployment(t)

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("Expected missing trail to read as empty, got: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}

func TestParseEntriesSkipsMalformedLines(t *testing.T) {
	data := strings.Join([]string{
		`{"ts":"2026-01-01T00:00:00.000000Z","session":"a","op":"startup"}`,
		`this is not json`,
		`{"ts":"2026-01-01T00:00:01.000000Z","session":"a","op":"benchmark"}`,
		``,
	}, "\n")

	entries, err := ParseEntries([]byte(data))
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected malformed line to be skipped, got %d entries", len(entries))
	}
	if entries[1].Operation != "benchmark" {
		t.Errorf("Unexpected second entry: %+v", entries[1])
	}
}

func TestLogSurvivesUnwritableTrail(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	tempDir := useTempDeployment(t)
	if err := os.MkdirAll(tempDir+"/results", 0555); err != nil {
		t.Fatalf("Failed to create read-only results dir: %v", err)
	}

	// Must not panic or error out.
	Log(Entry{Session: "ghi", Operation: "startup"})
}
