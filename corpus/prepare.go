// Package corpus stages audio/transcript pairs into the directory layout
// the aligner expects: one folder holding each .wav next to a cleaned
// .txt transcript of the same stem.
package corpus

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/maastricht-university/mfa-pipeline/clients"
	"github.com/maastricht-university/mfa-pipeline/config"
)

const ManifestName = "corpus.yaml"

// Entry records one prepared audio/transcript pair.
type Entry struct {
	Audio      string  `yaml:"audio"`
	Transcript string  `yaml:"transcript"`
	SampleRate int     `yaml:"sample_rate,omitempty"`
	Channels   int     `yaml:"channels,omitempty"`
	Duration   float64 `yaml:"duration,omitempty"`
	Chars      int     `yaml:"transcript_chars"`
}

// Stats counts the outcomes of one preparation pass.
type Stats struct {
	Total              int `yaml:"total"`
	Prepared           int `yaml:"prepared"`
	Failed             int `yaml:"failed"`
	MissingTranscripts int `yaml:"missing_transcripts"`
	AudioIssues        int `yaml:"audio_issues"`
}

// Result is the outcome of Prepare.
type Result struct {
	Stats     Stats
	Entries   []Entry
	CorpusDir string
}

// Manifest is the yaml document written next to the prepared corpus.
type Manifest struct {
	GeneratedAt string  `yaml:"generated_at"`
	CorpusDir   string  `yaml:"corpus_dir"`
	Stats       Stats   `yaml:"stats"`
	Files       []Entry `yaml:"files"`
}

// Prepare copies every audio file that has a matching transcript into the
// corpus directory, cleaning transcript text on the way. Individual file
// failures are counted and skipped; the pass fails only when no audio
// exists at all or when the prepared audio/transcript counts diverge.
func Prepare(ctx context.Context, cfg *config.Root, log *logrus.Logger) (*Result, error) {
	wavs, err := filepath.Glob(filepath.Join(cfg.Paths.Wav, "*.wav"))
	if err != nil {
		return nil, err
	}
	sort.Strings(wavs)
	if len(wavs) == 0 {
		return nil, fmt.Errorf("no audio files found in %s", cfg.Paths.Wav)
	}

	if err := os.MkdirAll(cfg.Paths.Corpus, 0o755); err != nil {
		return nil, err
	}

	res := &Result{CorpusDir: cfg.Paths.Corpus}
	for _, audioPath := range wavs {
		res.Stats.Total++
		flog := log.WithField("file", filepath.Base(audioPath))

		transcriptPath := findTranscript(cfg.Paths.Transcripts, stem(audioPath))
		if transcriptPath == "" {
			flog.Warn("no transcript found")
			res.Stats.MissingTranscripts++
			res.Stats.Failed++
			continue
		}

		entry := Entry{
			Audio:      filepath.Base(audioPath),
			Transcript: filepath.Base(transcriptPath),
		}
		if info, err := clients.ProbeAudio(ctx, audioPath); err != nil {
			flog.WithError(err).Warn("could not probe audio")
		} else {
			entry.SampleRate = info.SampleRate
			entry.Channels = info.Channels
			entry.Duration = info.Duration
			if info.SampleRate > 0 && info.SampleRate < cfg.Audio.MinSampleRate {
				flog.WithField("sample_rate", info.SampleRate).
					Warn("low sample rate may affect alignment quality")
				res.Stats.AudioIssues++
			}
			if info.Channels > cfg.Audio.MaxChannels {
				flog.WithField("channels", info.Channels).
					Warn("multi-channel audio, aligner prefers mono")
				res.Stats.AudioIssues++
			}
		}

		raw, err := os.ReadFile(transcriptPath)
		if err != nil {
			flog.WithError(err).Error("read transcript")
			res.Stats.Failed++
			continue
		}
		cleaned := CleanTranscript(string(raw))
		if cleaned == "" {
			flog.Error("empty transcript after cleaning")
			res.Stats.Failed++
			continue
		}
		entry.Chars = len(cleaned)

		if err := copyFile(audioPath, filepath.Join(cfg.Paths.Corpus, filepath.Base(audioPath))); err != nil {
			flog.WithError(err).Error("copy audio")
			res.Stats.Failed++
			continue
		}
		dest := filepath.Join(cfg.Paths.Corpus, stem(audioPath)+".txt")
		if err := os.WriteFile(dest, []byte(cleaned), 0o644); err != nil {
			flog.WithError(err).Error("write transcript")
			res.Stats.Failed++
			continue
		}

		flog.WithField("chars", entry.Chars).Info("prepared")
		res.Stats.Prepared++
		res.Entries = append(res.Entries, entry)
	}

	if err := writeManifest(res); err != nil {
		log.WithError(err).Warn("could not write corpus manifest")
	}

	nAudio, _ := filepath.Glob(filepath.Join(cfg.Paths.Corpus, "*.wav"))
	nText, _ := filepath.Glob(filepath.Join(cfg.Paths.Corpus, "*.txt"))
	if len(nAudio) != len(nText) {
		return res, fmt.Errorf("corpus mismatch: %d audio files but %d transcripts", len(nAudio), len(nText))
	}
	return res, nil
}

// CleanTranscript collapses all whitespace runs to single spaces and trims
// the ends, matching what the aligner's text normalization expects.
func CleanTranscript(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// findTranscript tries the case variants a hand-labeled corpus tends to
// arrive with.
func findTranscript(dir, base string) string {
	candidates := []string{
		base + ".txt",
		base + ".TXT",
		strings.ToUpper(base) + ".txt",
		strings.ToUpper(base) + ".TXT",
		strings.ToLower(base) + ".txt",
	}
	for _, c := range candidates {
		path := filepath.Join(dir, c)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func writeManifest(res *Result) error {
	m := Manifest{
		GeneratedAt: time.Now().Format(time.RFC3339),
		CorpusDir:   res.CorpusDir,
		Stats:       res.Stats,
		Files:       res.Entries,
	}
	data, err := yaml.Marshal(&m)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(res.CorpusDir, ManifestName), data, 0o644)
}
