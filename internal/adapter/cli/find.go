package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-scenario-etl/internal/dialect"
)

const suggestions = 3

func newFindCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "find PATTERN",
		Short: "Find catalog events whose name contains PATTERN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read catalog: %w", err)
			}
			matches, err := dialect.FindRuptures(raw, args[0])
			if err != nil {
				return err
			}
			if len(matches) > 0 {
				for _, m := range matches {
					cmd.Printf("%d\t%s\n", m.Index, m.Description)
				}
				return nil
			}

			cmd.Printf("no events match %q; closest names:\n", args[0])
			near, err := dialect.Nearest(raw, args[0], suggestions)
			if err != nil {
				return err
			}
			for _, m := range near {
				cmd.Printf("%d\t%s\n", m.Index, m.Description)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "rupture catalog file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
