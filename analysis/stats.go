package analysis

import (
	"math"
	"sort"
)

// DurationStats holds the distributional summary of a duration series.
type DurationStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stdev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// FileSummary is the per-file line retained for the final report, in
// original input order.
type FileSummary struct {
	Name     string  `json:"name"`
	Duration float64 `json:"duration"`
	Words    int     `json:"words"`
	Phones   int     `json:"phones"`
}

// CorpusStats aggregates all FileAnalysis records of one run.
type CorpusStats struct {
	TotalFiles       int            `json:"total_files"`
	TotalDuration    float64        `json:"total_duration"`
	TotalWords       int            `json:"total_words"`
	TotalPhones      int            `json:"total_phones"`
	TotalSpeechTime  float64        `json:"total_speech_time"`
	TotalSilenceTime float64        `json:"total_silence_time"`
	WordDurations    []float64      `json:"word_durations"`
	PhoneDurations   []float64      `json:"phone_durations"`
	WordStats        *DurationStats `json:"word_duration_stats,omitempty"`
	PhoneStats       *DurationStats `json:"phone_duration_stats,omitempty"`
	Files            []FileSummary  `json:"files"`
}

// Aggregate folds per-file analyses into corpus statistics. Nil entries
// are tolerated and skipped. Distributional stats are only computed when
// at least one sample exists.
func Aggregate(analyses []*FileAnalysis) *CorpusStats {
	stats := &CorpusStats{}

	for _, fa := range analyses {
		if fa == nil {
			continue
		}
		stats.TotalFiles++
		stats.TotalDuration += fa.Duration
		stats.TotalWords += fa.WordCount
		stats.TotalPhones += fa.PhoneCount
		stats.TotalSpeechTime += fa.TotalSpeechTime
		stats.TotalSilenceTime += fa.TotalSilenceTime

		for _, w := range fa.Words {
			stats.WordDurations = append(stats.WordDurations, w.Duration)
		}
		for _, p := range fa.Phones {
			stats.PhoneDurations = append(stats.PhoneDurations, p.Duration)
		}
		stats.Files = append(stats.Files, FileSummary{
			Name:     fa.Filename,
			Duration: fa.Duration,
			Words:    fa.WordCount,
			Phones:   fa.PhoneCount,
		})
	}

	stats.WordStats = describe(stats.WordDurations)
	stats.PhoneStats = describe(stats.PhoneDurations)
	return stats
}

// SpeechRatio returns speech time as a percentage of total duration.
// ok is false when the total duration is zero and the ratio undefined.
func (s *CorpusStats) SpeechRatio() (ratio float64, ok bool) {
	if s.TotalDuration <= 0 {
		return 0, false
	}
	return s.TotalSpeechTime / s.TotalDuration * 100, true
}

func describe(samples []float64) *DurationStats {
	if len(samples) == 0 {
		return nil
	}
	return &DurationStats{
		Mean:   mean(samples),
		Median: median(samples),
		StdDev: stdev(samples),
		Min:    minOf(samples),
		Max:    maxOf(samples),
	}
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func median(xs []float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// stdev is the sample standard deviation. A single sample has no defined
// deviation; it is reported as 0 rather than an error.
func stdev(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	m := mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(n-1))
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}
