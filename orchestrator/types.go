package orchestrator

import (
	"errors"

	"github.com/maastricht-university/mfa-pipeline/report"
)

// Fatal conditions of the analysis entry point. Per-file parse failures
// are not fatal; they surface as Diagnostics.
var (
	ErrInputNotFound = errors.New("input directory not found")
	ErrNoInputFiles  = errors.New("no files found")
	ErrNoValidData   = errors.New("no files could be analyzed")
)

// Diagnostic records one skipped input file and why it was skipped.
type Diagnostic struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// AnalyzeResult is the outcome of one analysis run over a TextGrid
// directory.
type AnalyzeResult struct {
	Report      *report.Report
	Diagnostics []Diagnostic
	FilesFound  int
}

// AlignmentOutputs inventories what an alignment run produced.
type AlignmentOutputs struct {
	TextGridCount int      `json:"textgrid_count"`
	TextGridFiles []string `json:"textgrid_files"`
	Timestamp     string   `json:"timestamp"`
}

// AlignmentLog is persisted after every alignment run, both under a
// timestamped name and as latest_alignment.json.
type AlignmentLog struct {
	RunID           string           `json:"run_id"`
	Timestamp       string           `json:"timestamp"`
	DurationSeconds float64          `json:"duration_seconds"`
	DurationMinutes float64          `json:"duration_minutes"`
	Outputs         AlignmentOutputs `json:"outputs"`
}

// SetupInfo is written by the setup step once the environment checks out.
type SetupInfo struct {
	MFAVersion string            `json:"mfa_version"`
	Models     map[string]string `json:"models"`
	Dirs       map[string]string `json:"directories"`
	Timestamp  string            `json:"timestamp"`
}
