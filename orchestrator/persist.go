package orchestrator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

const timeRound = 100 * time.Millisecond

func nowStamp() string { return time.Now().Format(time.RFC3339) }

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// buildAlignmentLog inventories the TextGrid output directory into a log
// entry stamped with a fresh run ID.
func (p *Pipeline) buildAlignmentLog(elapsedSeconds float64) *AlignmentLog {
	files, _ := filepath.Glob(filepath.Join(p.cfg.TextGridDir(), "*.TextGrid"))
	sort.Strings(files)
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	return &AlignmentLog{
		RunID:           uuid.NewString(),
		Timestamp:       nowStamp(),
		DurationSeconds: elapsedSeconds,
		DurationMinutes: elapsedSeconds / 60,
		Outputs: AlignmentOutputs{
			TextGridCount: len(names),
			TextGridFiles: names,
			Timestamp:     nowStamp(),
		},
	}
}

// saveAlignmentLog writes the entry under a timestamped name and as
// latest_alignment.json.
func (p *Pipeline) saveAlignmentLog(entry *AlignmentLog) error {
	logDir := p.cfg.LogDir()
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}
	stamped := filepath.Join(logDir, "alignment_log_"+time.Now().Format("20060102_150405")+".json")
	if err := writeJSON(stamped, entry); err != nil {
		return err
	}
	return writeJSON(filepath.Join(logDir, "latest_alignment.json"), entry)
}
