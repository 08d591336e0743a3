// Package analysis extracts per-file alignment records from parsed
// TextGrids, folds them into corpus statistics, and flags anomalies.
package analysis

import (
	"strings"

	"github.com/maastricht-university/mfa-pipeline/textgrid"
)

// Silence and filler labels, matched case-insensitively against trimmed
// interval marks. Phone tiers additionally treat "spn" (spoken noise) as
// silence.
var (
	wordSilence  = map[string]bool{"sp": true, "sil": true, "<sil>": true}
	phoneSilence = map[string]bool{"sp": true, "sil": true, "spn": true, "<sil>": true}
)

// LabeledSpan is one non-silence interval lifted out of a tier.
type LabeledSpan struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration float64 `json:"duration"`
}

// FileAnalysis summarizes one annotation file.
type FileAnalysis struct {
	Filename         string        `json:"filename"`
	Duration         float64       `json:"duration"`
	TierCount        int           `json:"tiers"`
	TierNames        []string      `json:"tier_names"`
	Words            []LabeledSpan `json:"words"`
	Phones           []LabeledSpan `json:"phones"`
	WordCount        int           `json:"word_count"`
	PhoneCount       int           `json:"phone_count"`
	SilenceCount     int           `json:"silence_count"`
	TotalSpeechTime  float64       `json:"total_speech_time"`
	TotalSilenceTime float64       `json:"total_silence_time"`
}

// Analyze extracts word and phone records from a parsed TextGrid. Tiers
// are classified by substring match on their lowercased name: "word"
// tiers feed the word records and the silence-time accumulator, "phone"
// tiers feed the phone records; anything else is ignored. Intervals with
// an empty trimmed mark are skipped outright.
func Analyze(tg *textgrid.TextGrid, filename string) *FileAnalysis {
	fa := &FileAnalysis{
		Filename:  filename,
		Duration:  tg.Max,
		TierCount: len(tg.Tiers),
	}
	for _, tier := range tg.Tiers {
		fa.TierNames = append(fa.TierNames, tier.Name)
	}

	for _, tier := range tg.Tiers {
		name := strings.ToLower(tier.Name)
		isWord := strings.Contains(name, "word")
		isPhone := !isWord && strings.Contains(name, "phone")
		if !isWord && !isPhone {
			continue
		}

		for _, iv := range tier.Intervals {
			text := strings.TrimSpace(iv.Mark)
			if text == "" {
				continue
			}
			span := LabeledSpan{
				Text:     text,
				Start:    iv.Min,
				End:      iv.Max,
				Duration: iv.Duration(),
			}
			label := strings.ToLower(text)

			if isWord {
				if wordSilence[label] {
					fa.SilenceCount++
					fa.TotalSilenceTime += span.Duration
				} else {
					fa.Words = append(fa.Words, span)
					fa.WordCount++
					fa.TotalSpeechTime += span.Duration
				}
				continue
			}
			if phoneSilence[label] {
				fa.SilenceCount++
			} else {
				fa.Phones = append(fa.Phones, span)
				fa.PhoneCount++
			}
		}
	}
	return fa
}
