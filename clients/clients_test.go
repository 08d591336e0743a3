package clients

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// stubBinary writes an executable that echoes its arguments and the given
// extra output.
func stubBinary(t *testing.T, name, echo string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\necho \"$@\"\n"
	if echo != "" {
		script = "#!/bin/sh\necho \"" + echo + "\"\n"
	}
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestCheckBinaries(t *testing.T) {
	present := stubBinary(t, "present", "")
	statuses := CheckBinaries([]Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "definitely-not-a-binary", Optional: true},
	})
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	if !statuses[0].Available || statuses[0].Detail != "" {
		t.Fatalf("expected present binary available: %+v", statuses[0])
	}
	if statuses[1].Available || statuses[1].Detail == "" {
		t.Fatalf("expected missing binary unavailable with detail: %+v", statuses[1])
	}
}

func TestMFAVersion(t *testing.T) {
	m := NewMFA(stubBinary(t, "mfa", "mfa 2.2.17"), quietLogger())
	got, err := m.Version(context.Background())
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if got != "mfa 2.2.17" {
		t.Fatalf("unexpected version: %q", got)
	}
}

func TestMFAVersionMissingBinary(t *testing.T) {
	m := NewMFA(filepath.Join(t.TempDir(), "missing"), quietLogger())
	if _, err := m.Version(context.Background()); err == nil {
		t.Fatalf("expected error for missing binary")
	}
	if m.Installed() {
		t.Fatalf("missing binary must not report installed")
	}
}

func TestMFAAlignBuildsExpectedArgs(t *testing.T) {
	// stub records its argv into a file
	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args")
	bin := filepath.Join(dir, "mfa")
	script := "#!/bin/sh\necho \"$@\" > " + argsFile + "\n"
	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	m := NewMFA(bin, quietLogger())
	outDir := filepath.Join(dir, "out")
	if _, err := m.Align(context.Background(), "corpus", "dict", "model", outDir, AlignOptions{
		Beam: 100, RetryBeam: 400, Clean: true,
	}); err != nil {
		t.Fatalf("align: %v", err)
	}

	recorded, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("stub did not run: %v", err)
	}
	argv := strings.TrimSpace(string(recorded))
	for _, want := range []string{"align corpus dict model", "--clean", "--beam 100", "--retry_beam 400"} {
		if !strings.Contains(argv, want) {
			t.Fatalf("argv missing %q: %q", want, argv)
		}
	}
	if strings.Contains(argv, "--verbose") {
		t.Fatalf("unexpected verbose flag: %q", argv)
	}
	if _, err := os.Stat(outDir); err != nil {
		t.Fatalf("output directory not created: %v", err)
	}
}
