package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"reconcile/internal/cli"
	"reconcile/internal/config"
	"reconcile/internal/services"
	"reconcile/internal/sheets"
	"reconcile/internal/sheets/excel"
	"reconcile/internal/sheets/google"
	"reconcile/internal/sheets/memory"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	var (
		workbookPath = flag.String("workbook", "", "path to the budget workbook (.xlsx)")
		month        = flag.String("month", "", "month label used as the sheet name")
		configPath   = flag.String("config", "", "JSON config with categories and recurring expectations")
		backend      = flag.String("backend", "", "workbook backend: xlsx, sheets, or memory")
		yes          = flag.Bool("yes", false, "skip the confirmation prompt before writing")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: %s [flags] csv-file [csv-file ...]\n\nReconcile CSV transaction exports against a monthly budget sheet.\n\n",
			os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	csvFiles := flag.Args()
	if len(csvFiles) == 0 {
		fmt.Fprintln(os.Stderr, "at least one CSV file is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	cfg.WorkbookPath = *workbookPath
	cfg.Month = *month
	cfg.SkipConfirm = *yes
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *configPath != "" {
		if err := cfg.LoadFile(*configPath); err != nil {
			logger.Error("config load failed", "path", *configPath, "error", err)
			os.Exit(1)
		}
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var writer sheets.GridWriter
	switch cfg.Backend {
	case config.BackendSheets:
		client, err := google.New(ctx, cfg.GoogleSpreadsheetID)
		if err != nil {
			logger.Error("google sheets backend init failed", "error", err)
			os.Exit(1)
		}
		writer = client
	case config.BackendMemory:
		logger.Info("dry run: memory backend writes nothing to disk")
		writer = memory.New()
	default:
		writer = excel.NewWriter(cfg.WorkbookPath)
	}

	session := services.NewSession(cfg, writer, logger.WithComponent("session"))
	prompter := cli.NewPrompter(os.Stdin, os.Stdout, session.Classifier())

	if err := session.Load(csvFiles...); err != nil {
		logger.Error("load failed", "error", err)
		os.Exit(1)
	}
	if err := session.ClassifyAll(prompter); err != nil {
		logger.Error("classification failed", "error", err)
		os.Exit(1)
	}
	if err := session.Validate(prompter.Confirm); err != nil {
		logger.Error("validation failed", "error", err)
		os.Exit(1)
	}

	if !cfg.SkipConfirm {
		prompt := fmt.Sprintf("Write changes to %s for %s?", cfg.WorkbookPath, cfg.Month)
		if cfg.Backend == config.BackendSheets {
			prompt = fmt.Sprintf("Write changes to spreadsheet %s for %s?", cfg.GoogleSpreadsheetID, cfg.Month)
		}
		if !prompter.Confirm(prompt) {
			fmt.Println("No changes were made.")
			os.Exit(1)
		}
	}

	if err := session.Commit(ctx); err != nil {
		logger.Error("write failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Reconciliation written to sheet %q\n", cfg.Month)
}
