package clients

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// MFA wraps the Montreal Forced Aligner command line tool.
type MFA struct {
	Binary string
	Log    *logrus.Logger
}

func NewMFA(binary string, log *logrus.Logger) *MFA {
	if binary == "" {
		binary = "mfa"
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &MFA{Binary: binary, Log: log}
}

// Installed reports whether the aligner binary is on PATH.
func (m *MFA) Installed() bool {
	_, err := exec.LookPath(m.Binary)
	return err == nil
}

// Version returns the aligner's version string.
func (m *MFA) Version(ctx context.Context) (string, error) {
	return output(ctx, m.Binary, "version")
}

// DownloadModel fetches a pretrained model. Kind is "acoustic" or
// "dictionary"; name is the model identifier, e.g. english_us_arpa.
func (m *MFA) DownloadModel(ctx context.Context, kind, name string) error {
	m.Log.WithFields(logrus.Fields{"kind": kind, "model": name}).Info("downloading model")
	_, err := output(ctx, m.Binary, "model", "download", kind, name)
	return err
}

// ListModels returns the aligner's installed-model inventory.
func (m *MFA) ListModels(ctx context.Context) (string, error) {
	return output(ctx, m.Binary, "model", "list")
}

// Validate runs the aligner's corpus validation, streaming its output to
// the terminal. A non-zero exit is returned as an error; callers may treat
// it as a warning and proceed.
func (m *MFA) Validate(ctx context.Context, corpusDir, dictionary, acousticModel string) error {
	cmd := exec.CommandContext(ctx, m.Binary, "validate", corpusDir, dictionary, acousticModel, "--clean")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	m.Log.WithField("corpus", corpusDir).Info("validating corpus")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("mfa validate: %w", err)
	}
	return nil
}

// AlignOptions carries the tunable flags of an alignment run.
type AlignOptions struct {
	Beam      int
	RetryBeam int
	Clean     bool
	Verbose   bool
}

// Align runs forced alignment over the prepared corpus, writing TextGrids
// into outDir. Output streams to the terminal; the returned duration is
// the measured wall time of the subprocess.
func (m *MFA) Align(ctx context.Context, corpusDir, dictionary, acousticModel, outDir string, opts AlignOptions) (time.Duration, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, err
	}

	args := []string{"align", corpusDir, dictionary, acousticModel, outDir}
	if opts.Clean {
		args = append(args, "--clean")
	}
	if opts.Verbose {
		args = append(args, "--verbose")
	}
	if opts.Beam > 0 {
		args = append(args, "--beam", strconv.Itoa(opts.Beam))
	}
	if opts.RetryBeam > 0 {
		args = append(args, "--retry_beam", strconv.Itoa(opts.RetryBeam))
	}

	cmd := exec.CommandContext(ctx, m.Binary, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	m.Log.WithFields(logrus.Fields{
		"corpus":     corpusDir,
		"dictionary": dictionary,
		"model":      acousticModel,
		"output":     outDir,
	}).Info("running forced alignment")

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)
	if err != nil {
		return elapsed, fmt.Errorf("mfa align: %w", err)
	}
	return elapsed, nil
}
