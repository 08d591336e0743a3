// Package report serializes corpus statistics and detected issues into
// the machine-readable and human-readable report artifacts.
package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/maastricht-university/mfa-pipeline/analysis"
)

const (
	JSONName = "analysis_report.json"
	TextName = "analysis_report.txt"
)

// Report bundles one run's statistics and issues with its generation
// timestamp. It is what analysis_report.json deserializes back into.
type Report struct {
	Timestamp  string                `json:"timestamp"`
	Statistics *analysis.CorpusStats `json:"statistics"`
	Issues     []analysis.Issue      `json:"issues"`
}

// New builds a report stamped with the current time.
func New(stats *analysis.CorpusStats, issues []analysis.Issue) *Report {
	return &Report{
		Timestamp:  time.Now().Format(time.RFC3339),
		Statistics: stats,
		Issues:     issues,
	}
}

// WriteAll writes every report artifact under dir. Each artifact is
// attempted independently; the joined error reports which ones failed
// while the in-memory report stays valid either way.
func (r *Report) WriteAll(dir string) error {
	var errs []error
	if err := r.WriteJSON(dir); err != nil {
		errs = append(errs, fmt.Errorf("json report: %w", err))
	}
	if err := r.WriteText(dir); err != nil {
		errs = append(errs, fmt.Errorf("text report: %w", err))
	}
	if err := r.WriteSeries(filepath.Join(dir, "visualizations")); err != nil {
		errs = append(errs, fmt.Errorf("duration series: %w", err))
	}
	return errors.Join(errs...)
}

// WriteJSON writes analysis_report.json with full numeric precision.
func (r *Report) WriteJSON(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, JSONName), r)
}

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

// ReadJSON loads a previously written report.
func ReadJSON(dir string) (*Report, error) {
	data, err := os.ReadFile(filepath.Join(dir, JSONName))
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// WriteText writes the fixed-layout plain text report.
func (r *Report) WriteText(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, TextName))
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(r.renderText())
	return err
}

func (r *Report) renderText() string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)
	thin := strings.Repeat("-", 60)
	stats := r.Statistics

	fmt.Fprintf(&b, "%s\nMFA ALIGNMENT ANALYSIS REPORT\n%s\n\n", rule, rule)
	fmt.Fprintf(&b, "Generated: %s\n\n", r.Timestamp)

	fmt.Fprintf(&b, "OVERALL STATISTICS\n%s\n", thin)
	fmt.Fprintf(&b, "Total files: %d\n", stats.TotalFiles)
	fmt.Fprintf(&b, "Total duration: %.2fs (%.2fm)\n", stats.TotalDuration, stats.TotalDuration/60)
	fmt.Fprintf(&b, "Total words: %d\n", stats.TotalWords)
	fmt.Fprintf(&b, "Total phonemes: %d\n", stats.TotalPhones)
	fmt.Fprintf(&b, "Total speech time: %.2fs\n", stats.TotalSpeechTime)
	fmt.Fprintf(&b, "Total silence time: %.2fs\n", stats.TotalSilenceTime)
	if ratio, ok := stats.SpeechRatio(); ok {
		fmt.Fprintf(&b, "Speech ratio: %.1f%%\n", ratio)
	}
	b.WriteString("\n")

	writeDurationSection(&b, thin, "WORD DURATION STATISTICS", stats.WordStats)
	writeDurationSection(&b, thin, "PHONEME DURATION STATISTICS", stats.PhoneStats)

	fmt.Fprintf(&b, "PER-FILE STATISTICS\n%s\n", thin)
	for _, fs := range stats.Files {
		fmt.Fprintf(&b, "%s\n", fs.Name)
		fmt.Fprintf(&b, "  Duration: %.2fs\n", fs.Duration)
		fmt.Fprintf(&b, "  Words: %d\n", fs.Words)
		fmt.Fprintf(&b, "  Phonemes: %d\n\n", fs.Phones)
	}

	if len(r.Issues) > 0 {
		fmt.Fprintf(&b, "IDENTIFIED ISSUES\n%s\n", thin)
		for _, iss := range r.Issues {
			fmt.Fprintf(&b, "[%s] %s\n", strings.ToUpper(iss.Severity), iss.File)
			fmt.Fprintf(&b, "  %s\n\n", iss.Message)
		}
	}
	return b.String()
}

func writeDurationSection(b *strings.Builder, thin, title string, ds *analysis.DurationStats) {
	if ds == nil {
		return
	}
	fmt.Fprintf(b, "%s\n%s\n", title, thin)
	fmt.Fprintf(b, "Mean: %.3fs\n", ds.Mean)
	fmt.Fprintf(b, "Median: %.3fs\n", ds.Median)
	fmt.Fprintf(b, "Std Dev: %.3fs\n", ds.StdDev)
	fmt.Fprintf(b, "Range: %.3fs - %.3fs\n\n", ds.Min, ds.Max)
}

// WriteSeries exports the raw duration series as CSV so external tooling
// can render histograms; plotting itself stays outside this module.
func (r *Report) WriteSeries(dir string) error {
	stats := r.Statistics
	if len(stats.WordDurations) == 0 && len(stats.PhoneDurations) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := writeSeriesCSV(filepath.Join(dir, "word_durations.csv"), stats.WordDurations); err != nil {
		return err
	}
	return writeSeriesCSV(filepath.Join(dir, "phone_durations.csv"), stats.PhoneDurations)
}

func writeSeriesCSV(path string, samples []float64) error {
	if len(samples) == 0 {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write([]string{"duration_seconds"}); err != nil {
		return err
	}
	for _, s := range samples {
		if err := w.Write([]string{strconv.FormatFloat(s, 'f', -1, 64)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
