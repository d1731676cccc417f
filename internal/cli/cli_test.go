package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/stepshape/internal/model"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	// keep a real ~/.stepshape/config.yaml out of the test
	args = append(args, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestAnalyzeCommand_WritesOccurrences(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"Algo1.json": `{"Algorithm":{"head":{"AbstractOperationHead":{}},"body":{"X":{"target":"a"}}}}`,
		"Algo2.json": `{"Algorithm":{"head":{"AbstractOperationHead":{}},"body":{"X":{"target":"b"}}}}`,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	out := filepath.Join(t.TempDir(), "occ.json")

	if _, err := runCLI(t, "analyze", "-f", dir, "-s", "X", "-o", out); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var occ []model.Occurrence
	if err := json.Unmarshal(data, &occ); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(occ) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occ))
	}
	if strings.Join(occ[0].AppearsIn, ",") != "Algo1,Algo2" {
		t.Errorf("expected Algo1,Algo2, got %v", occ[0].AppearsIn)
	}
}

func TestAnalyzeCommand_RejectsUnknownCategory(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, "analyze", "-f", dir, "-s", "X", "-e", "not a category", "-o", filepath.Join(dir, "o.json"))
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "o.json")); statErr == nil {
		t.Error("expected no output to be written")
	}
}

func TestCategoriesCommand(t *testing.T) {
	out, err := runCLI(t, "categories")
	if err != nil {
		t.Fatalf("categories failed: %v", err)
	}
	for _, c := range model.Categories() {
		if !strings.Contains(out, c.HeadKey()) {
			t.Errorf("expected %s in output", c.HeadKey())
		}
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Analysis.Pattern == "" {
		t.Error("expected default pattern")
	}
	if cfg.Concurrency.Workers <= 0 {
		t.Errorf("expected positive workers, got %d", cfg.Concurrency.Workers)
	}
	if !cfg.Cache.Enabled {
		t.Error("expected cache enabled by default")
	}
}
