package report

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/maastricht-university/mfa-pipeline/analysis"
	"github.com/maastricht-university/mfa-pipeline/ui"
)

// Print renders the report to the console: overall statistics, duration
// summaries, a per-file table, and issues grouped warnings first.
func (r *Report) Print() {
	stats := r.Statistics

	ui.Header("Alignment Statistics")
	fmt.Printf("Total files analyzed: %d\n", stats.TotalFiles)
	fmt.Printf("Total audio duration: %.2f seconds (%.2f minutes)\n",
		stats.TotalDuration, stats.TotalDuration/60)
	fmt.Printf("Total words aligned: %d\n", stats.TotalWords)
	fmt.Printf("Total phonemes aligned: %d\n", stats.TotalPhones)
	fmt.Printf("Total speech time: %.2f seconds\n", stats.TotalSpeechTime)
	fmt.Printf("Total silence time: %.2f seconds\n", stats.TotalSilenceTime)
	if ratio, ok := stats.SpeechRatio(); ok {
		fmt.Printf("Speech ratio: %.1f%%\n", ratio)
	}

	printDurationStats("Word durations", stats.WordStats)
	printDurationStats("Phoneme durations", stats.PhoneStats)

	if len(stats.Files) > 0 {
		fmt.Println()
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"File", "Duration (s)", "Words", "Phones"})
		for _, fs := range stats.Files {
			t.AppendRow(table.Row{fs.Name, fmt.Sprintf("%.2f", fs.Duration), fs.Words, fs.Phones})
		}
		t.Render()
	}

	r.printIssues()
}

func printDurationStats(title string, ds *analysis.DurationStats) {
	if ds == nil {
		return
	}
	fmt.Printf("\n%s:\n", title)
	fmt.Printf("  Mean: %.3fs  Median: %.3fs  Std Dev: %.3fs\n", ds.Mean, ds.Median, ds.StdDev)
	fmt.Printf("  Range: %.3fs - %.3fs\n", ds.Min, ds.Max)
}

func (r *Report) printIssues() {
	if len(r.Issues) == 0 {
		ui.Success("No alignment issues detected!")
		return
	}

	ui.Header("Alignment Issues")
	var warnings, infos []analysis.Issue
	for _, iss := range r.Issues {
		if iss.Severity == analysis.SeverityWarning {
			warnings = append(warnings, iss)
		} else {
			infos = append(infos, iss)
		}
	}

	if len(warnings) > 0 {
		ui.Warn("Warnings (%d):", len(warnings))
		printIssueGroup(warnings)
	}
	if len(infos) > 0 {
		ui.Info("Info (%d):", len(infos))
		printIssueGroup(infos)
	}
}

func printIssueGroup(issues []analysis.Issue) {
	for _, iss := range issues {
		fmt.Printf("  %s: %s\n", iss.File, iss.Message)
		for i, ex := range iss.Examples {
			if i >= 2 {
				break
			}
			fmt.Printf("    - %s: %.3fs\n", ex.Text, ex.Duration)
		}
	}
}
