package audit

import (
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"github.com/gabisponciano/secure-ai-model/internal/configs"
)

// Entry represents a single audit trail entry.
type Entry struct {
	Timestamp string `json:"ts"`      // RFC3339 with microseconds.
	Session   string `json:"session"` // UUID of the invocation.
	Operation string `json:"op"`      // Operation name.

	// Optional fields depending on operation.
	Asset     string `json:"asset,omitempty"`      // For integrity checks.
	GateState string `json:"gate_state,omitempty"` // For startup outcomes.
	Outcome   string `json:"outcome,omitempty"`    // "pass" or "fail".
	Error     string `json:"error,omitempty"`      // For failed checks.
	Runs      int    `json:"runs,omitempty"`       // For benchmark sessions.
	Output    string `json:"output,omitempty"`     // For exported results.
}

// Log appends an entry to the audit trail.
// If logging fails, the operation carries on. Nothing should fail
// just because the trail could not be written.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	logPath := LogPath()
	if logPath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the path to the audit trail file.
func LogPath() string {
	if configs.Settings == nil || configs.Settings.ResultsPath == "" {
		return ""
	}
	return filepath.Join(configs.Settings.ResultsPath, "audit.jsonl")
}

// ReadEntries reads all entries from the audit trail.
// Returns an empty slice if the trail doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
