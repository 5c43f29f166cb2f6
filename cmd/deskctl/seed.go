package main

import (
	"fmt"

	"deskbooker/pkg/model"

	"github.com/spf13/cobra"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create desks 1..N, keeping existing bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}

			cfg, components, err := opts.components()
			if err != nil {
				return err
			}
			defer cfg.GracefulShutdown()
			defer components.Close()

			for id := 1; id <= count; id++ {
				desk := &model.Desk{ID: id, Label: fmt.Sprintf("Desk %d", id)}
				if err := components.Desks.Upsert(cmd.Context(), desk); err != nil {
					return err
				}
			}

			total, err := components.Desks.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d desks (%d in store).\n", count, total)
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 10, "number of desks to create")

	return cmd
}
