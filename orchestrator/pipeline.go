// Package orchestrator drives the alignment pipeline end to end:
// environment setup, corpus preparation, the external alignment run, and
// analysis of the produced annotation files.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/maastricht-university/mfa-pipeline/analysis"
	"github.com/maastricht-university/mfa-pipeline/clients"
	cfg "github.com/maastricht-university/mfa-pipeline/config"
	"github.com/maastricht-university/mfa-pipeline/corpus"
	"github.com/maastricht-university/mfa-pipeline/report"
	"github.com/maastricht-university/mfa-pipeline/textgrid"
)

type Pipeline struct {
	cfg *cfg.Root
	log *logrus.Logger
	mfa *clients.MFA
}

func NewPipeline(c *cfg.Root, log *logrus.Logger) *Pipeline {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pipeline{cfg: c, log: log, mfa: clients.NewMFA(c.MFA.Binary, log)}
}

// Setup verifies the aligner installation, downloads the configured
// models, creates the project directory layout, and records setup_info.
func (p *Pipeline) Setup(ctx context.Context) (*SetupInfo, error) {
	version, err := p.mfa.Version(ctx)
	if err != nil {
		return nil, fmt.Errorf("mfa is not installed or not in PATH: %w", err)
	}
	p.log.WithField("version", version).Info("mfa installed")

	for _, kind := range []string{"dictionary", "acoustic"} {
		name := p.cfg.MFA.Dictionary
		if kind == "acoustic" {
			name = p.cfg.MFA.AcousticModel
		}
		if err := p.mfa.DownloadModel(ctx, kind, name); err != nil {
			// may already be installed
			p.log.WithError(err).WithField("model", name).Warn("model download failed")
		}
	}

	if models, err := p.mfa.ListModels(ctx); err == nil && models != "" {
		fmt.Println(models)
	}

	dirs := map[string]string{
		"corpus":         p.cfg.Paths.Corpus,
		"textgrids":      p.cfg.TextGridDir(),
		"logs":           p.cfg.LogDir(),
		"visualizations": p.cfg.VisualizationDir(),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	info := &SetupInfo{
		MFAVersion: version,
		Models: map[string]string{
			"dictionary": p.cfg.MFA.Dictionary,
			"acoustic":   p.cfg.MFA.AcousticModel,
		},
		Dirs:      dirs,
		Timestamp: nowStamp(),
	}
	if err := writeJSON(filepath.Join(p.cfg.Paths.Outputs, "setup_info.json"), info); err != nil {
		p.log.WithError(err).Warn("could not write setup info")
	}
	return info, nil
}

// Prepare stages the corpus for alignment.
func (p *Pipeline) Prepare(ctx context.Context) (*corpus.Result, error) {
	return corpus.Prepare(ctx, p.cfg, p.log)
}

// Validate runs the aligner's own corpus validation over the prepared
// corpus.
func (p *Pipeline) Validate(ctx context.Context) error {
	return p.mfa.Validate(ctx, p.cfg.Paths.Corpus, p.cfg.MFA.Dictionary, p.cfg.MFA.AcousticModel)
}

// AlignOptions carries the per-run flags of the alignment step.
type AlignOptions struct {
	SkipValidation bool
	Clean          bool
	Verbose        bool
	Dictionary     string
	AcousticModel  string
}

// Align checks prerequisites, optionally validates the corpus, runs the
// aligner, and persists an alignment log.
func (p *Pipeline) Align(ctx context.Context, opts AlignOptions) (*AlignmentLog, error) {
	dictionary := opts.Dictionary
	if dictionary == "" {
		dictionary = p.cfg.MFA.Dictionary
	}
	model := opts.AcousticModel
	if model == "" {
		model = p.cfg.MFA.AcousticModel
	}

	if err := p.checkAlignPrerequisites(); err != nil {
		return nil, err
	}

	if opts.SkipValidation {
		p.log.Info("skipping corpus validation")
	} else if err := p.mfa.Validate(ctx, p.cfg.Paths.Corpus, dictionary, model); err != nil {
		p.log.WithError(err).Warn("validation completed with warnings, proceeding")
	}

	elapsed, err := p.mfa.Align(ctx, p.cfg.Paths.Corpus, dictionary, model, p.cfg.TextGridDir(), clients.AlignOptions{
		Beam:      p.cfg.MFA.Beam,
		RetryBeam: p.cfg.MFA.RetryBeam,
		Clean:     opts.Clean,
		Verbose:   opts.Verbose,
	})
	if err != nil {
		return nil, err
	}
	p.log.WithField("elapsed", elapsed.Round(timeRound)).Info("alignment finished")

	entry := p.buildAlignmentLog(elapsed.Seconds())
	if err := p.saveAlignmentLog(entry); err != nil {
		p.log.WithError(err).Warn("could not save alignment log")
	}
	if entry.Outputs.TextGridCount == 0 {
		p.log.Warn("alignment produced no TextGrid files")
	}
	return entry, nil
}

func (p *Pipeline) checkAlignPrerequisites() error {
	if _, err := os.Stat(p.cfg.Paths.Corpus); os.IsNotExist(err) {
		return fmt.Errorf("corpus directory %s not found, run prepare first", p.cfg.Paths.Corpus)
	}
	wavs, _ := filepath.Glob(filepath.Join(p.cfg.Paths.Corpus, "*.wav"))
	txts, _ := filepath.Glob(filepath.Join(p.cfg.Paths.Corpus, "*.txt"))
	if len(wavs) == 0 {
		return fmt.Errorf("no audio files in corpus %s", p.cfg.Paths.Corpus)
	}
	if len(txts) == 0 {
		return fmt.Errorf("no transcript files in corpus %s", p.cfg.Paths.Corpus)
	}
	if len(wavs) != len(txts) {
		p.log.WithFields(logrus.Fields{"audio": len(wavs), "transcripts": len(txts)}).
			Warn("audio and transcript counts differ, this may cause alignment issues")
	}
	if !p.mfa.Installed() {
		return fmt.Errorf("mfa binary %q not found in PATH", p.cfg.MFA.Binary)
	}
	return nil
}

// Analyze parses every TextGrid under the output directory, aggregates
// corpus statistics, detects issues, and writes both report formats.
// Per-file parse failures are skipped and collected as diagnostics; the
// step fails only when the directory or all of its files are unusable.
func (p *Pipeline) Analyze() (*AnalyzeResult, error) {
	dir := p.cfg.TextGridDir()
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s (run alignment first)", ErrInputNotFound, dir)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.TextGrid"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no TextGrid files in %s", ErrNoInputFiles, dir)
	}
	p.log.WithField("count", len(files)).Info("found TextGrid files")

	res := &AnalyzeResult{FilesFound: len(files)}
	var analyses []*analysis.FileAnalysis
	for _, path := range files {
		tg, err := textgrid.ReadFile(path)
		if err != nil {
			p.log.WithError(err).WithField("file", filepath.Base(path)).Warn("skipping unparseable file")
			res.Diagnostics = append(res.Diagnostics, Diagnostic{File: filepath.Base(path), Error: err.Error()})
			continue
		}
		fa := analysis.Analyze(tg, filepath.Base(path))
		p.log.WithFields(logrus.Fields{
			"file":   fa.Filename,
			"words":  fa.WordCount,
			"phones": fa.PhoneCount,
		}).Info("analyzed")
		analyses = append(analyses, fa)
	}
	if len(analyses) == 0 {
		return nil, fmt.Errorf("%w: all %d files failed to parse", ErrNoValidData, len(files))
	}
	if skipped := len(res.Diagnostics); skipped > 0 {
		p.log.WithField("skipped", skipped).Warn("some files were excluded from aggregation")
	}

	stats := analysis.Aggregate(analyses)
	issues := analysis.DetectIssues(analyses)
	res.Report = report.New(stats, issues)

	res.Report.Print()

	if err := res.Report.WriteAll(p.cfg.Paths.Outputs); err != nil {
		// statistics stay usable on the returned result
		return res, fmt.Errorf("write reports: %w", err)
	}
	return res, nil
}

// Run executes prepare, align and analyze in sequence, stopping at the
// first failed stage.
func (p *Pipeline) Run(ctx context.Context, opts AlignOptions) (*AnalyzeResult, error) {
	if _, err := p.Prepare(ctx); err != nil {
		return nil, fmt.Errorf("prepare: %w", err)
	}
	if _, err := p.Align(ctx, opts); err != nil {
		return nil, fmt.Errorf("align: %w", err)
	}
	res, err := p.Analyze()
	if err != nil {
		return res, fmt.Errorf("analyze: %w", err)
	}
	return res, nil
}
