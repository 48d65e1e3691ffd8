package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/BartekS5/uilm/internal/state"
	"github.com/spf13/cobra"
)

func newStateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect or clear the saved converter input",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the saved input",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			store, err := app.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			cfg, err := store.Load(c.Context())
			if errors.Is(err, state.ErrNotFound) {
				fmt.Fprintln(c.OutOrStdout(), "No saved state.")
				return nil
			}
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), string(data))
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the saved input",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			store, err := app.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Clear(c.Context()); err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), "Saved state cleared.")
			return nil
		},
	}

	cmd.AddCommand(showCmd, clearCmd)
	return cmd
}
