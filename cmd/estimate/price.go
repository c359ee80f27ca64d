package main

import (
	"github.com/spf13/cobra"

	"github.com/straye-as/estimate-api/internal/domain"
	"github.com/straye-as/estimate-api/internal/pricing"
)

func newPriceCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Print the cost and price breakdown of a job",
		Long:  "Computes totals locally. No network calls are made.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInputs(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := domain.ValidateInputs(in); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), pricing.ComputeTotals(in))
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "inputs file (.json or .yaml, - for stdin)")
	return cmd
}
