package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/BartekS5/uilm/internal/etl"
	"github.com/BartekS5/uilm/internal/output"
	"github.com/BartekS5/uilm/pkg/database"
	"github.com/BartekS5/uilm/pkg/logger"
	"github.com/BartekS5/uilm/pkg/models"
	"github.com/BartekS5/uilm/pkg/processor"
	"github.com/spf13/cobra"
)

const (
	targetMongo = "mongo"
	targetSQL   = "sql"
)

func runGenerate(cmd *cobra.Command, app *App, opts *inputOptions, outputPath string) error {
	cfg, result, err := opts.prepare(cmd, app)
	if err != nil {
		return err
	}
	if err := result.Err(); err != nil {
		return err
	}

	records, err := processor.Process(cfg)
	if err != nil {
		return err
	}
	summary := processor.Summarize(records)

	if outputPath == "" && opts.job != nil {
		outputPath = opts.job.Resolve(opts.job.Output)
	}
	if outputPath == "" {
		outputPath = output.Filename(cfg.ModuleID, time.Now())
	}

	report := cmd.OutOrStdout()
	if outputPath == "-" {
		logger.SetOutput(cmd.ErrOrStderr())
		if err := output.WriteRecords(cmd.OutOrStdout(), records); err != nil {
			return err
		}
		report = cmd.ErrOrStderr()
	} else if err := output.WriteFile(outputPath, records); err != nil {
		return err
	} else {
		logger.Infof("Wrote %d records to %s", len(records), outputPath)
	}

	fmt.Fprintf(report, "Generated %d items across %d languages\n", summary.Items, summary.Languages)
	return nil
}

func runImport(ctx context.Context, app *App, opts *ImportOptions, target string) error {
	if opts.InputFile == "" {
		return fmt.Errorf("an input records file is required (--input)")
	}
	records, err := output.ReadFile(opts.InputFile, recordsFileLimit(app))
	if err != nil {
		return err
	}

	loader, cleanup, err := openLoader(ctx, app, target, opts.DryRun)
	if err != nil {
		return err
	}
	defer cleanup()

	pipeline := etl.NewEnhancedPipeline(&etl.RecordExtractor{Records: records}, loader, opts.batchSize(app), opts.DryRun)
	if opts.Checkpoint != "" {
		pipeline.WithCheckpoint(opts.Checkpoint)
	}

	logger.Infof("Starting import of %d records into %s...", len(records), target)
	stats, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}
	logger.Infof("Import finished: %d records in %d batches (%s)", stats.Processed, stats.Batches, stats.Duration.Round(time.Millisecond))
	return nil
}

// openLoader connects to the target store. A dry run never connects.
func openLoader(ctx context.Context, app *App, target string, dryRun bool) (etl.Loader, func(), error) {
	noop := func() {}
	if dryRun {
		return &etl.RecordCollector{}, noop, nil
	}

	switch target {
	case targetMongo:
		if err := app.Config.RequireMongo(); err != nil {
			return nil, noop, err
		}
		client, err := database.ConnectMongo(app.Config.MongoConnString)
		if err != nil {
			return nil, noop, err
		}
		loader := etl.NewMongoLoader(client, app.Config.MongoDatabase, app.Config.MongoCollection)
		return loader, func() { database.DisconnectMongo(client) }, nil
	case targetSQL:
		if err := app.Config.RequireSQL(); err != nil {
			return nil, noop, err
		}
		db, err := database.ConnectSQL(app.Config.SQLConnString)
		if err != nil {
			return nil, noop, err
		}
		loader, err := etl.NewSQLLoader(db, app.Config.SQLTable)
		if err != nil {
			db.Close()
			return nil, noop, err
		}
		if err := loader.EnsureTable(ctx); err != nil {
			db.Close()
			return nil, noop, err
		}
		return loader, func() { db.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown target %q", target)
	}
}

func runExport(cmd *cobra.Command, app *App, opts *ExportOptions, source string) error {
	ctx := cmd.Context()
	if toStdout(opts.Output) {
		logger.SetOutput(cmd.ErrOrStderr())
	}

	var extractor etl.Extractor
	var cleanup func()

	switch source {
	case targetMongo:
		if err := app.Config.RequireMongo(); err != nil {
			return err
		}
		client, err := database.ConnectMongo(app.Config.MongoConnString)
		if err != nil {
			return err
		}
		cleanup = func() { database.DisconnectMongo(client) }
		extractor = etl.NewMongoExtractor(client, app.Config.MongoDatabase, app.Config.MongoCollection, opts.TenantID, opts.ModuleID)
	case targetSQL:
		if err := app.Config.RequireSQL(); err != nil {
			return err
		}
		db, err := database.ConnectSQL(app.Config.SQLConnString)
		if err != nil {
			return err
		}
		cleanup = func() { db.Close() }
		ext, err := etl.NewSQLExtractor(db, app.Config.SQLTable, opts.TenantID, opts.ModuleID)
		if err != nil {
			cleanup()
			return err
		}
		extractor = ext
	default:
		return fmt.Errorf("unknown source %q", source)
	}
	defer cleanup()

	collector := &etl.RecordCollector{}
	if _, err := etl.NewEnhancedPipeline(extractor, collector, app.Config.BatchSize, false).Run(ctx); err != nil {
		return err
	}

	return writeRecordsTo(opts.Output, cmd.OutOrStdout(), collector.Records)
}

// toStdout reports whether records go to standard output, in which case log
// lines are moved to stderr so the JSON stays clean.
func toStdout(path string) bool {
	return path == "" || path == "-"
}

func writeRecordsTo(path string, stdout io.Writer, records []models.TranslationRecord) error {
	if toStdout(path) {
		return output.WriteRecords(stdout, records)
	}
	if err := output.WriteFile(path, records); err != nil {
		return err
	}
	logger.Infof("Wrote %d records to %s", len(records), path)
	return nil
}

// recordsFileLimit bounds a records file: four languages' worth of keys,
// each wrapped in record metadata.
func recordsFileLimit(app *App) int64 {
	return 16 * app.Config.MaxFileBytes
}
