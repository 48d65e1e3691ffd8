package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/BartekS5/uilm/internal/config"
	"github.com/BartekS5/uilm/internal/state"
	"github.com/BartekS5/uilm/pkg/models"
	"github.com/BartekS5/uilm/pkg/processor"
	"github.com/spf13/cobra"
)

// inputOptions collects the flags shared by generate and validate.
type inputOptions struct {
	ModuleID   string
	ModuleName string
	TenantID   string
	Files      map[string]*string
	JobFile    string
	Partial    bool
	FromState  bool
	SaveState  bool

	job *config.Job
}

func newInputOptions() *inputOptions {
	opts := &inputOptions{Files: make(map[string]*string, len(models.Languages))}
	for _, lang := range models.Languages {
		opts.Files[lang.Code] = new(string)
	}
	return opts
}

func (o *inputOptions) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.ModuleID, "module-id", "i", "", "Module ID")
	f.StringVarP(&o.ModuleName, "module-name", "n", "", "Module name")
	f.StringVarP(&o.TenantID, "tenant-id", "t", "", "Tenant ID")
	for _, lang := range models.Languages {
		f.StringVar(o.Files[lang.Code], lang.Code, "", fmt.Sprintf("Path to the %s JSON file", lang.Name))
	}
	f.StringVarP(&o.JobFile, "job", "j", "", "Path to a job file listing metadata and language files")
	f.BoolVar(&o.Partial, "partial", true, "Mark generated keys as partially translated")
	f.BoolVar(&o.FromState, "from-state", false, "Start from the saved state")
	f.BoolVar(&o.SaveState, "save-state", false, "Save the resulting input as state")
}

// configuration assembles the run input. Saved state is applied first, then
// the job file, then any flag given explicitly on the command line.
func (o *inputOptions) configuration(cmd *cobra.Command, app *App, store state.Store) (models.Configuration, error) {
	cfg := models.Configuration{IsPartiallyTranslated: true}

	if o.FromState {
		saved, err := store.Load(cmd.Context())
		if errors.Is(err, state.ErrNotFound) {
			return cfg, errors.New("no saved state to start from")
		}
		if err != nil {
			return cfg, err
		}
		cfg = saved
	}

	if o.JobFile != "" {
		job, err := config.LoadJob(o.JobFile)
		if err != nil {
			return cfg, err
		}
		if err := job.Apply(&cfg, app.Config.MaxFileBytes); err != nil {
			return cfg, err
		}
		o.job = job
	}

	flags := cmd.Flags()
	if flags.Changed("module-id") {
		cfg.ModuleID = o.ModuleID
	}
	if flags.Changed("module-name") {
		cfg.ModuleName = o.ModuleName
	}
	if flags.Changed("tenant-id") {
		cfg.TenantID = o.TenantID
	}
	if flags.Changed("partial") {
		cfg.IsPartiallyTranslated = o.Partial
	}
	for _, lang := range models.Languages {
		path := *o.Files[lang.Code]
		if path == "" {
			continue
		}
		content, err := config.ReadLanguageFile(path, app.Config.MaxFileBytes)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", lang.Name, err)
		}
		cfg.SetInput(lang, content)
	}

	return cfg.Trimmed(), nil
}

// prepare builds the configuration, validates it and saves it when asked.
func (o *inputOptions) prepare(cmd *cobra.Command, app *App) (models.Configuration, processor.ValidationResult, error) {
	needStore := o.FromState || o.SaveState
	var store state.Store
	if needStore {
		s, err := app.openStore()
		if err != nil {
			return models.Configuration{}, processor.ValidationResult{}, err
		}
		defer s.Close()
		store = s
	}

	cfg, err := o.configuration(cmd, app, store)
	if err != nil {
		return cfg, processor.ValidationResult{}, err
	}

	result := processor.Validate(cfg)
	if o.SaveState {
		if err := store.Save(cmd.Context(), cfg); err != nil {
			return cfg, result, err
		}
	}
	return cfg, result, nil
}

func newGenerateCmd(app *App) *cobra.Command {
	opts := newInputOptions()
	var outputPath string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Convert language files into translation key records",
		Example: `  uilm generate -i mod-1 -n Common -t tenant-1 --en en.json --fr fr.json
  uilm generate -j job.json -o -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, app, opts, outputPath)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (- for stdout, default translations_<module>_<date>.json)")
	return cmd
}

func newValidateCmd(app *App) *cobra.Command {
	opts := newInputOptions()

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check module metadata and language files without converting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, result, err := opts.prepare(cmd, app)
			if err != nil {
				return err
			}
			printValidation(cmd.OutOrStdout(), result)
			return result.Err()
		},
	}

	opts.addFlags(cmd)
	return cmd
}

func printValidation(w io.Writer, result processor.ValidationResult) {
	if result.Valid {
		fmt.Fprintln(w, "Input is valid.")
		return
	}
	for _, msg := range result.Errors {
		fmt.Fprintf(w, "- %s\n", msg)
	}
}
