package cli

import (
	"github.com/spf13/cobra"
)

type ImportOptions struct {
	InputFile  string
	BatchSize  int
	DryRun     bool
	Checkpoint string
}

func (o *ImportOptions) batchSize(app *App) int {
	if o.BatchSize > 0 {
		return o.BatchSize
	}
	return app.Config.BatchSize
}

func newImportCmd(app *App) *cobra.Command {
	opts := &ImportOptions{}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load a generated records file into a resource key store",
	}

	cmd.PersistentFlags().StringVarP(&opts.InputFile, "input", "f", "", "Path to a records file written by generate")
	cmd.PersistentFlags().IntVarP(&opts.BatchSize, "batch-size", "b", 0, "Batch size (default UILM_BATCH_SIZE)")
	cmd.PersistentFlags().BoolVar(&opts.DryRun, "dry-run", false, "Walk the batches without writing anything")
	cmd.PersistentFlags().StringVar(&opts.Checkpoint, "checkpoint", "", "File recording progress so an interrupted import can resume")

	toMongo := &cobra.Command{
		Use:   "mongo",
		Short: "Upsert records into MongoDB",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runImport(c.Context(), app, opts, targetMongo)
		},
	}

	toSQL := &cobra.Command{
		Use:   "sql",
		Short: "Upsert records into SQL Server",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runImport(c.Context(), app, opts, targetSQL)
		},
	}

	cmd.AddCommand(toMongo, toSQL)
	return cmd
}

type ExportOptions struct {
	TenantID string
	ModuleID string
	Output   string
}

func newExportCmd(app *App) *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Read stored records back into a records file",
	}

	cmd.PersistentFlags().StringVarP(&opts.TenantID, "tenant-id", "t", "", "Only records of this tenant")
	cmd.PersistentFlags().StringVarP(&opts.ModuleID, "module-id", "i", "", "Only records of this module")
	cmd.PersistentFlags().StringVarP(&opts.Output, "output", "o", "-", "Output file (- for stdout)")

	fromMongo := &cobra.Command{
		Use:   "mongo",
		Short: "Export records from MongoDB",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runExport(c, app, opts, targetMongo)
		},
	}

	fromSQL := &cobra.Command{
		Use:   "sql",
		Short: "Export records from SQL Server",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runExport(c, app, opts, targetSQL)
		},
	}

	cmd.AddCommand(fromMongo, fromSQL)
	return cmd
}
