// fintrack-export dumps the configured store as CSV or JSON, applying the
// same filters the API accepts.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"fintrack/internal/backend"
	"fintrack/internal/config"
	"fintrack/internal/core"
	"fintrack/internal/export"
	applog "fintrack/internal/log"
	"fintrack/internal/service"
)

func main() {
	_ = godotenv.Load()

	format := flag.String("format", "csv", "output format: csv or json")
	out := flag.String("o", "", "output file (default: stdout)")
	itemType := flag.String("type", "", "filter by type (income or expense)")
	category := flag.String("category", "", "filter by category")
	search := flag.String("search", "", "free-text search across name, description and tags")
	flag.Parse()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	if *format != "csv" && *format != "json" {
		fmt.Fprintf(os.Stderr, "unknown format %q: must be csv or json\n", *format)
		os.Exit(2)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	factory := backend.NewFactory(logger.Logger)
	result, err := factory.CreateStore(ctx, backend.Config{
		ProjectID:       cfg.FirestoreProjectID,
		CredentialsFile: cfg.FirestoreCredentialsFile,
		SQLiteDBPath:    cfg.SQLiteDBPath,
	})
	if err != nil {
		logger.Error("Failed to initialize store backend", "error", err)
		os.Exit(1)
	}
	defer func() {
		if result.Cleanup != nil {
			_ = result.Cleanup()
		}
	}()

	svc := service.New(result.Store, nil)
	items, err := svc.GetAll(ctx, core.Filters{
		Type:     core.ItemType(*itemType),
		Category: core.Category(*category),
		Search:   *search,
	})
	if err != nil {
		logger.Error("Failed to fetch items", "error", err)
		os.Exit(1)
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			logger.Error("Failed to create output file", "path", *out, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	switch *format {
	case "csv":
		err = export.WriteCSV(w, items)
	case "json":
		err = export.WriteJSON(w, items)
	}
	if err != nil {
		logger.Error("Export failed", "format", *format, "error", err)
		os.Exit(1)
	}

	logger.Info("Export completed", "format", *format, "items", len(items), "backend", result.Type)
}
