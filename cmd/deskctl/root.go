package main

import (
	"context"
	"fmt"
	"os"

	"deskbooker/internal/deskbookings/bootstrap"
	"deskbooker/pkg/config"

	"github.com/spf13/cobra"
)

const CLIName = "deskctl"

type rootOptions struct {
	store string
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           CLIName,
		Short:         "Manage desks and desk bookings from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.store, "store", "", "store driver to use (mongo|postgres), overrides STORE_DRIVER")

	root.AddCommand(newMigrateCmd(opts))
	root.AddCommand(newSeedCmd(opts))
	root.AddCommand(newAvailableCmd(opts))
	root.AddCommand(newBookCmd(opts))

	return root
}

func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// connect loads and validates configuration, then opens the selected store.
// Callers must call cfg.GracefulShutdown when done.
func (o *rootOptions) connect() *config.Config {
	cfg := config.Load(CLIName, o.configOptions()...)
	cfg.ConnectStore()
	return cfg
}

func (o *rootOptions) configOptions() []config.Option {
	if o.store == "" {
		return nil
	}
	return []config.Option{config.WithStoreDriver(o.store)}
}

func (o *rootOptions) components() (*config.Config, *bootstrap.Components, error) {
	cfg := o.connect()
	components, err := bootstrap.New(cfg)
	if err != nil {
		cfg.GracefulShutdown()
		return nil, nil, err
	}
	return cfg, components, nil
}
