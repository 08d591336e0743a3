package analysis

import (
	"math"
	"testing"
)

func spanOf(d float64) LabeledSpan {
	return LabeledSpan{Text: "x", Start: 0, End: d, Duration: d}
}

func TestAggregateEmpty(t *testing.T) {
	stats := Aggregate(nil)
	if stats.TotalFiles != 0 {
		t.Fatalf("expected 0 files, got %d", stats.TotalFiles)
	}
	if stats.WordStats != nil || stats.PhoneStats != nil {
		t.Fatalf("expected no distributional stats for empty input")
	}
	if _, ok := stats.SpeechRatio(); ok {
		t.Fatalf("speech ratio should be undefined for zero duration")
	}
}

func TestAggregateSkipsNilEntries(t *testing.T) {
	fa := &FileAnalysis{Filename: "a.TextGrid", Duration: 2, WordCount: 1, Words: []LabeledSpan{spanOf(0.2)}}
	stats := Aggregate([]*FileAnalysis{nil, fa, nil})
	if stats.TotalFiles != 1 {
		t.Fatalf("expected 1 file, got %d", stats.TotalFiles)
	}
}

func TestAggregateSingleSampleStdDevIsZero(t *testing.T) {
	fa := &FileAnalysis{
		Filename: "a.TextGrid", Duration: 1,
		Words: []LabeledSpan{spanOf(0.3)}, WordCount: 1,
	}
	stats := Aggregate([]*FileAnalysis{fa})
	if stats.WordStats == nil {
		t.Fatalf("expected word stats")
	}
	if stats.WordStats.StdDev != 0 {
		t.Fatalf("single-sample stdev must be 0, got %g", stats.WordStats.StdDev)
	}
	if stats.WordStats.Mean != 0.3 || stats.WordStats.Median != 0.3 {
		t.Fatalf("unexpected stats: %+v", stats.WordStats)
	}
}

func TestAggregateIdenticalDurations(t *testing.T) {
	fa := &FileAnalysis{
		Filename: "a.TextGrid", Duration: 1,
		Words:     []LabeledSpan{spanOf(0.2), spanOf(0.2), spanOf(0.2)},
		WordCount: 3,
	}
	stats := Aggregate([]*FileAnalysis{fa})
	ws := stats.WordStats
	if ws.Mean != 0.2 || ws.Median != 0.2 || ws.StdDev != 0 || ws.Min != 0.2 || ws.Max != 0.2 {
		t.Fatalf("unexpected stats for identical samples: %+v", ws)
	}
}

func TestAggregateTotalsAndOrder(t *testing.T) {
	a := &FileAnalysis{
		Filename: "a.TextGrid", Duration: 2, WordCount: 2, PhoneCount: 3,
		TotalSpeechTime: 1.0, TotalSilenceTime: 0.5,
		Words:  []LabeledSpan{spanOf(0.4), spanOf(0.6)},
		Phones: []LabeledSpan{spanOf(0.1), spanOf(0.2), spanOf(0.3)},
	}
	b := &FileAnalysis{
		Filename: "b.TextGrid", Duration: 3, WordCount: 1, PhoneCount: 1,
		TotalSpeechTime: 0.5, TotalSilenceTime: 1.0,
		Words:  []LabeledSpan{spanOf(0.5)},
		Phones: []LabeledSpan{spanOf(0.4)},
	}
	stats := Aggregate([]*FileAnalysis{a, b})

	if stats.TotalFiles != 2 || stats.TotalDuration != 5 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if stats.TotalWords != 3 || stats.TotalPhones != 4 {
		t.Fatalf("unexpected counts: words=%d phones=%d", stats.TotalWords, stats.TotalPhones)
	}
	if len(stats.Files) != 2 || stats.Files[0].Name != "a.TextGrid" || stats.Files[1].Name != "b.TextGrid" {
		t.Fatalf("per-file summaries out of order: %+v", stats.Files)
	}
	if len(stats.WordDurations) != 3 || len(stats.PhoneDurations) != 4 {
		t.Fatalf("unexpected series lengths: %d/%d", len(stats.WordDurations), len(stats.PhoneDurations))
	}

	ratio, ok := stats.SpeechRatio()
	if !ok {
		t.Fatalf("expected defined speech ratio")
	}
	if math.Abs(ratio-30) > 1e-9 { // 1.5 / 5 * 100
		t.Fatalf("unexpected speech ratio: %g", ratio)
	}
}

func TestMedianEvenCount(t *testing.T) {
	if m := median([]float64{0.4, 0.1, 0.3, 0.2}); m != 0.25 {
		t.Fatalf("expected median 0.25, got %g", m)
	}
}

func TestStdDevSample(t *testing.T) {
	// sample stdev of {2,4,4,4,5,5,7,9} around mean 5 is ~2.138
	got := stdev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	want := math.Sqrt(32.0 / 7.0)
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected %g, got %g", want, got)
	}
}
