package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/salesbook-io/salesbook/pkg/config"
	"github.com/salesbook-io/salesbook/pkg/service"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "salesbook",
	})

	var outputPath string
	flag.StringVar(&outputPath, "o", "", "Output directory (default: same as input file)")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		logger.Error("invalid usage", "args", args)
		fmt.Fprintf(os.Stderr, "Usage: salesbook [-o output_dir] <directory>\n")
		os.Exit(1)
	}

	cfg := &config.Config{OutputPath: outputPath}
	processor := service.NewProcessor(cfg, logger)

	if err := processor.ProcessDirectory(args[0]); err != nil {
		logger.Fatal("processing failed", "error", err)
	}
}
