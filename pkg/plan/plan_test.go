package plan

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	content := `reports:
  - file: data/mayo.csv
    date: 2024-05-01
    output: reports/mayo.txt
  - file: data/junio.csv
    date: 2024-06-01
`
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write plan file: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(p.Reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(p.Reports))
	}

	first := p.Reports[0]
	if first.File != "data/mayo.csv" || first.Date != "2024-05-01" || first.Output != "reports/mayo.txt" {
		t.Errorf("unexpected first report: %+v", first)
	}
	if p.Reports[1].Output != "" {
		t.Errorf("expected empty output for second report, got %q", p.Reports[1].Output)
	}
}

func TestLoadEmptyPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte("reports: []\n"), 0644); err != nil {
		t.Fatalf("failed to write plan file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for plan without reports")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing plan file")
	}
}
