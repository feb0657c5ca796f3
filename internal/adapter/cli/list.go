package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-scenario-etl/internal/domain"
	"github.com/couchcryptid/quake-scenario-etl/internal/repository"
)

func newListCmd(g *globals) *cobra.Command {
	var (
		minMag float64
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scenarios recorded in the store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := g.openStore()
			if err != nil {
				return err
			}
			if store == nil {
				return fmt.Errorf("list needs --db: %w", domain.ErrConfiguration)
			}
			defer store.Close()

			filter := repository.Filter{Limit: limit}
			if cmd.Flags().Changed("min-mag") {
				filter.MinMagnitude = &minMag
			}
			recs, err := store.List(cmd.Context(), filter)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tMAG\tMECH\tDESCRIPTION\tCREATED")
			for _, r := range recs {
				fmt.Fprintf(tw, "%s\t%.2f\t%s\t%s\t%s\n", r.ID, r.Magnitude, r.Mechanism, r.Description, humanize.Time(r.CreatedAt))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Float64Var(&minMag, "min-mag", 0, "only scenarios at or above this magnitude")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows (0 for all)")
	return cmd
}
