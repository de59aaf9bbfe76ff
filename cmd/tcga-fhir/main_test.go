package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/internal/config"
	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/internal/convert"
	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/internal/platform/fhir"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"RESEARCH_STUDY_ID", "INPUT_PATH", "OUTPUT_DRIVER", "OUTPUT_DIR", "ROW_ERROR_POLICY", "METRICS_FILE"} {
		t.Setenv(k, "")
	}
}

func writeInput(t *testing.T, dir string, subjects ...string) string {
	t.Helper()
	header := make([]string, convert.ColGender+1)
	for i := range header {
		header[i] = "col"
	}
	lines := []string{strings.Join(header, "\t")}
	for _, s := range subjects {
		row := make([]string, convert.ColGender+1)
		row[convert.ColSubjectKey] = s
		row[convert.ColOnsetAge] = "70"
		row[convert.ColICD10Code] = "C25.9"
		row[convert.ColLivingStatus] = convert.LivingSentinel
		row[convert.ColSecondaryID] = s
		row[convert.ColRadiotherapy] = convert.TreatedSentinel
		row[convert.ColGender] = "Male"
		lines = append(lines, strings.Join(row, "\t"))
	}
	path := filepath.Join(dir, "clinical.tsv")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func readBundle(t *testing.T, path string) fhir.Bundle {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var b fhir.Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return b
}

func TestStudyThenConvert(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "bundles")

	var stdout bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"study", "--out", out})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("study: %v", err)
	}

	study := readBundle(t, filepath.Join(out, convert.StudyKey))
	if len(study.Entry) != 1 {
		t.Fatalf("expected 1 study entry, got %d", len(study.Entry))
	}
	studyID := strings.TrimPrefix(study.Entry[0].FullURL, "ResearchStudy/")
	if !strings.Contains(stdout.String(), studyID) {
		t.Errorf("expected study id %s in output %q", studyID, stdout.String())
	}

	input := writeInput(t, dir, "TCGA-2J-AAB1", "TCGA-2J-AAB4")
	stdout.Reset()
	cmd = rootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"convert", "--input", input, "--out", out, "--research-study-id", studyID})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !strings.Contains(stdout.String(), "bundles: 2") {
		t.Errorf("unexpected output %q", stdout.String())
	}

	b := readBundle(t, filepath.Join(out, "TCGA-2J-AAB1.json"))
	if len(b.Entry) != 4 {
		t.Errorf("expected 4 entries, got %d", len(b.Entry))
	}
	if err := fhir.CheckReferences(&b, "ResearchStudy/"+studyID); err != nil {
		t.Errorf("unexpected dangling reference: %v", err)
	}
}

func TestConvert_RequiresStudyID(t *testing.T) {
	clearEnv(t)
	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"convert", "--out", t.TempDir()})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error without a research study id")
	}
}

func TestRoot_RejectsUnknownPolicy(t *testing.T) {
	clearEnv(t)
	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--on-error", "ignore", "--out", t.TempDir()})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for unknown row error policy")
	}
}

func TestRun_MissingInput(t *testing.T) {
	cfg := &config.Config{
		InputPath:       filepath.Join(t.TempDir(), "missing.tsv"),
		ResearchStudyID: "id",
		RowErrorPolicy:  "abort",
		OutputDriver:    "memory",
	}
	if _, err := run(context.Background(), cfg, zerolog.Nop()); err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestRun_WritesMetricsFile(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		RowErrorPolicy: "abort",
		OutputDriver:   "memory",
		MetricsFile:    filepath.Join(dir, "tcga_fhir.prom"),
	}
	summary, err := run(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Mode != convert.ModeStudy {
		t.Errorf("expected study mode, got %s", summary.Mode)
	}
	data, err := os.ReadFile(cfg.MetricsFile)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(data), `tcga_fhir_outputs_total{kind="study"} 1`) {
		t.Errorf("expected study output counter, got:\n%s", data)
	}
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&config.Config{LogLevel: "warn"}, &buf)
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected log output %q", buf.String())
	}

	if l := newLogger(&config.Config{LogLevel: "nonsense"}, &buf); l.GetLevel() != zerolog.InfoLevel {
		t.Errorf("expected info level fallback, got %s", l.GetLevel())
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, convert.Summary{Mode: convert.ModeBundles, Rows: 3, Bundles: 2, Skipped: 1})
	if got := buf.String(); got != "rows: 3, bundles: 2, skipped: 1\n" {
		t.Errorf("unexpected summary %q", got)
	}
}
