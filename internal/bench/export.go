package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

var csvHeader = []string{
	"unwrap_key_time",
	"decrypt_time",
	"load_time",
	"inference_time",
	"total_time",
}

// WriteCSV streams the session runs as CSV, one row per run, timings
// in seconds.
func WriteCSV(w io.Writer, session *Session) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, run := range session.Runs {
		record := []string{
			seconds(run.UnwrapKeyTime),
			seconds(run.DecryptTime),
			seconds(run.LoadTime),
			seconds(run.InferenceTime),
			seconds(run.TotalTime),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the session to a file named after the session ID and
// returns the path.
func SaveCSV(dir string, session *Session) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create results directory: %w", err)
	}

	path := filepath.Join(dir, "benchmark-"+session.ID+".csv")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create results file: %w", err)
	}
	defer file.Close()

	if err := WriteCSV(file, session); err != nil {
		return "", err
	}
	return path, nil
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.6f", d.Seconds())
}
