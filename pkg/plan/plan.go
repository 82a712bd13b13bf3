package plan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Report is one batch job: aggregate a sales file at a reference date and
// write the rendered report to Output (stdout when empty).
type Report struct {
	File   string `yaml:"file"`
	Date   string `yaml:"date"`
	Output string `yaml:"output"`
}

// Plan is a YAML-defined batch of report jobs.
type Plan struct {
	Reports []Report `yaml:"reports"`
}

func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if len(p.Reports) == 0 {
		return nil, fmt.Errorf("plan has no reports")
	}
	return &p, nil
}

func (p *Plan) Print() {
	for i, r := range p.Reports {
		out := r.Output
		if out == "" {
			out = "stdout"
		}
		fmt.Printf("[%d] file=%s date=%s output=%s\n", i+1, r.File, r.Date, out)
	}
}
