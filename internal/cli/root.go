// Package cli wires the converter, the loaders and the HTTP API into a
// cobra command tree.
package cli

import (
	"github.com/BartekS5/uilm/internal/config"
	"github.com/BartekS5/uilm/internal/state"
	"github.com/BartekS5/uilm/pkg/logger"
	"github.com/spf13/cobra"
)

// App carries what every subcommand needs once the root command has
// loaded the environment.
type App struct {
	Config *config.Config
}

func (a *App) openStore() (state.Store, error) {
	return state.Open(state.Options{RedisURL: a.Config.RedisURL, Dir: a.Config.StateDir})
}

func NewRootCmd() *cobra.Command {
	app := &App{}
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "uilm",
		Short: "UILM - convert per-language JSON translations into resource key records",
		Long: `uilm flattens nested per-language translation documents (English, French,
Italian, German) into one record per translation key, ready to be imported
into the UILM resource key store in MongoDB or SQL Server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			app.Config = cfg

			lvl := logger.ParseLevel(cfg.LogLevel)
			if verbose {
				lvl = logger.DEBUG
			}
			return logger.InitLogger(cfg.LogFile, lvl)
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newGenerateCmd(app),
		newValidateCmd(app),
		newFormatCmd(),
		newImportCmd(app),
		newExportCmd(app),
		newStateCmd(app),
		newServeCmd(app),
	)

	return rootCmd
}
