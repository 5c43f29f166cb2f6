package main

import (
	"fmt"
	"text/tabwriter"

	"deskbooker/pkg/model"

	"github.com/spf13/cobra"
)

func newAvailableCmd(opts *rootOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "available",
		Short: "List desks that are free on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := model.ParseDate(date)
			if err != nil {
				return fmt.Errorf("invalid --date (want YYYY-MM-DD)")
			}

			cfg, components, err := opts.components()
			if err != nil {
				return err
			}
			defer cfg.GracefulShutdown()
			defer components.Close()

			desks, err := components.Queries.GetAvailableDesks(cmd.Context(), day)
			if err != nil {
				return err
			}

			if len(desks) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No desks available on %s.\n", date)
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLABEL")
			for _, d := range desks {
				fmt.Fprintf(tw, "%d\t%s\n", d.ID, d.Label)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date to check (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}
