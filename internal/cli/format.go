package cli

import (
	"fmt"
	"os"

	"github.com/BartekS5/uilm/internal/config"
	"github.com/spf13/cobra"
)

func newFormatCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "format <file>",
		Short: "Pretty print a JSON language file, keeping key order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			formatted, err := config.ReadLanguageFile(path, 0)
			if err != nil {
				return err
			}

			if !write {
				fmt.Fprintln(cmd.OutOrStdout(), formatted)
				return nil
			}

			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			return os.WriteFile(path, []byte(formatted+"\n"), info.Mode().Perm())
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to the file")
	return cmd
}
