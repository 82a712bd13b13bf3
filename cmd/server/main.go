package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/salesbook-io/salesbook/pkg/config"
	"github.com/salesbook-io/salesbook/pkg/server"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "salesbook",
	})

	var cfgFile string
	flag.StringVar(&cfgFile, "c", "", "Config file (default is config.yaml)")
	flag.Parse()

	cfg, err := config.Build(cfgFile, nil)
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}

	srv := server.New(cfg, logger)
	addr := fmt.Sprintf("0.0.0.0:%s", cfg.Port)
	logger.Info("starting server", "addr", addr)
	if err := srv.Start(addr); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
