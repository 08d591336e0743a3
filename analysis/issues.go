package analysis

import "fmt"

// Issue kinds.
const (
	ShortPhoneme = "short_phoneme"
	LongPhoneme  = "long_phoneme"
	ShortWord    = "short_word"
	LongWord     = "long_word"
)

// Severities.
const (
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Duration thresholds in seconds.
const (
	minPhoneDuration = 0.020
	maxPhoneDuration = 0.5
	minWordDuration  = 0.050
	maxWordDuration  = 2.0
)

// Issue flags one kind of anomaly within one file, aggregating every
// matching interval and keeping the first few as examples.
type Issue struct {
	File     string        `json:"file"`
	Kind     string        `json:"type"`
	Severity string        `json:"severity"`
	Message  string        `json:"message"`
	Count    int           `json:"count"`
	Examples []LabeledSpan `json:"details,omitempty"`
}

const maxExamples = 3

// DetectIssues scans every analysis against the fixed thresholds. Rules
// are evaluated per file in the order short phoneme, long phoneme, short
// word, long word; each rule yields at most one Issue per file.
func DetectIssues(analyses []*FileAnalysis) []Issue {
	var issues []Issue

	for _, fa := range analyses {
		if fa == nil {
			continue
		}
		if iss := collect(fa.Filename, fa.Phones, func(s LabeledSpan) bool { return s.Duration < minPhoneDuration },
			ShortPhoneme, SeverityWarning, "%d phonemes shorter than 20ms"); iss != nil {
			issues = append(issues, *iss)
		}
		if iss := collect(fa.Filename, fa.Phones, func(s LabeledSpan) bool { return s.Duration > maxPhoneDuration },
			LongPhoneme, SeverityWarning, "%d phonemes longer than 0.5s"); iss != nil {
			issues = append(issues, *iss)
		}
		if iss := collect(fa.Filename, fa.Words, func(s LabeledSpan) bool { return s.Duration < minWordDuration },
			ShortWord, SeverityInfo, "%d words shorter than 50ms"); iss != nil {
			issues = append(issues, *iss)
		}
		if iss := collect(fa.Filename, fa.Words, func(s LabeledSpan) bool { return s.Duration > maxWordDuration },
			LongWord, SeverityWarning, "%d words longer than 2s"); iss != nil {
			issues = append(issues, *iss)
		}
	}
	return issues
}

func collect(file string, spans []LabeledSpan, match func(LabeledSpan) bool, kind, severity, format string) *Issue {
	var count int
	var examples []LabeledSpan
	for _, s := range spans {
		if !match(s) {
			continue
		}
		count++
		if len(examples) < maxExamples {
			examples = append(examples, s)
		}
	}
	if count == 0 {
		return nil
	}
	return &Issue{
		File:     file,
		Kind:     kind,
		Severity: severity,
		Message:  fmt.Sprintf(format, count),
		Count:    count,
		Examples: examples,
	}
}
