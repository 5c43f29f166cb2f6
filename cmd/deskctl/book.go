package main

import (
	"encoding/json"

	"deskbooker/internal/deskbookings/validator"
	"deskbooker/pkg/logger"
	"deskbooker/pkg/model"
	"deskbooker/pkg/sanitizer"

	"github.com/spf13/cobra"
)

func newBookCmd(opts *rootOptions) *cobra.Command {
	var input model.DeskBookingInput

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book the first free desk for a requester",
		RunE: func(cmd *cobra.Command, args []string) error {
			input.FirstName = sanitizer.NormalizeName(input.FirstName)
			input.LastName = sanitizer.NormalizeName(input.LastName)
			input.Email = sanitizer.NormalizeEmail(input.Email)

			if err := validator.NewDeskBookingValidator(logger.Discard()).Validate(&input); err != nil {
				return err
			}
			request, err := input.ToRequest()
			if err != nil {
				return err
			}

			cfg, components, err := opts.components()
			if err != nil {
				return err
			}
			defer cfg.GracefulShutdown()
			defer components.Close()

			result, err := components.Processor.BookDesk(cmd.Context(), request)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	cmd.Flags().StringVar(&input.FirstName, "first-name", "", "requester first name")
	cmd.Flags().StringVar(&input.LastName, "last-name", "", "requester last name")
	cmd.Flags().StringVar(&input.Email, "email", "", "requester email")
	cmd.Flags().StringVar(&input.Date, "date", "", "booking date (YYYY-MM-DD)")
	for _, name := range []string{"first-name", "last-name", "email", "date"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
