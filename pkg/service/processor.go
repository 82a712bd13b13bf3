package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/salesbook-io/salesbook/pkg/config"
	"github.com/salesbook-io/salesbook/pkg/csv"
	"github.com/salesbook-io/salesbook/pkg/parser"
	"github.com/salesbook-io/salesbook/pkg/plan"
	"github.com/salesbook-io/salesbook/pkg/report"
)

// Processor walks directories of sales documents, writing the canonical CSV
// for each, and executes batch report plans.
type Processor struct {
	config *config.Config
	logger *log.Logger
	parser *parser.Parser
}

func NewProcessor(cfg *config.Config, logger *log.Logger) *Processor {
	return &Processor{
		config: cfg,
		logger: logger,
		parser: parser.New(logger),
	}
}

func (p *Processor) ProcessDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("error reading directory: %w", err)
	}

	for _, entry := range entries {
		if err := p.processEntry(dir, entry); err != nil {
			p.logger.Error("failed to process entry", "file", entry.Name(), "error", err)
		}
	}
	return nil
}

func (p *Processor) processEntry(dir string, entry os.DirEntry) error {
	if entry.IsDir() {
		return nil
	}
	if !supportedInput(entry.Name()) {
		return nil
	}
	return p.ProcessFile(filepath.Join(dir, entry.Name()))
}

func supportedInput(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt", ".xls", ".xlsx":
		return true
	}
	return false
}

// ProcessFile parses one sales document and writes its canonical CSV next to
// the input, or under the configured output path.
func (p *Processor) ProcessFile(inputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	records, err := p.parser.ProcessBytes(data, filepath.Base(inputPath))
	if err != nil {
		return fmt.Errorf("failed to process file: %w", err)
	}
	if len(records) == 0 {
		// Not an error: a document where every row was rejected still
		// exports an empty canonical CSV, but the user should hear about it.
		p.logger.Warn("no valid sale records found", "file", inputPath)
	}

	outPath := p.outputPath(inputPath)
	if err := os.WriteFile(outPath, csv.Create(records, nil), 0644); err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}

	p.logger.Info("wrote canonical csv", "input", inputPath, "output", outPath, "records", len(records))
	return nil
}

func (p *Processor) outputPath(inputPath string) string {
	fileName := filepath.Base(inputPath)
	ext := filepath.Ext(fileName)
	baseName := strings.TrimSuffix(fileName, ext)
	if p.config.OutputPath != "" {
		return filepath.Join(p.config.OutputPath, baseName+"-salesbook.csv")
	}
	return strings.TrimSuffix(inputPath, ext) + "-salesbook.csv"
}

// RunPlan executes every report job in the plan.
func (p *Processor) RunPlan(pl *plan.Plan) error {
	for _, job := range pl.Reports {
		if err := p.runReport(job); err != nil {
			return fmt.Errorf("report for %s failed: %w", job.File, err)
		}
	}
	return nil
}

func (p *Processor) runReport(job plan.Report) error {
	if !report.ValidReferenceDate(job.Date) {
		return fmt.Errorf("reference date must be YYYY-MM-DD, got %q", job.Date)
	}

	data, err := os.ReadFile(job.File)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	records, err := p.parser.ProcessBytes(data, filepath.Base(job.File))
	if err != nil {
		return fmt.Errorf("failed to process file: %w", err)
	}
	if len(records) == 0 {
		p.logger.Warn("no valid sale records found", "file", job.File)
	}

	rendered := report.Render(report.Aggregate(records, job.Date), job.Date)
	if job.Output == "" {
		fmt.Print(rendered)
		return nil
	}
	if err := os.WriteFile(job.Output, []byte(rendered), 0644); err != nil {
		return fmt.Errorf("error writing report file: %w", err)
	}

	p.logger.Info("wrote report", "input", job.File, "output", job.Output, "date", job.Date)
	return nil
}
