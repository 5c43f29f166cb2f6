package main

import (
	"context"
	"fmt"
	"time"

	"deskbooker/internal/migrations"

	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create collections, tables and indexes for the selected store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.connect()
			defer cfg.GracefulShutdown()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if err := migrations.Run(ctx, cfg); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migrated %s store.\n", cfg.StoreDriver)
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall migration timeout")

	return cmd
}
