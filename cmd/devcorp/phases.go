package main

import (
	"github.com/spf13/cobra"

	"github.com/kingrea/devcorp/internal/report"
	"github.com/kingrea/devcorp/internal/staffing"
)

func newPhasesCmd(workDir *string) *cobra.Command {
	flags := &projectFlags{}
	cmd := &cobra.Command{
		Use:   "phases",
		Short: "Print the phase timeline with caps and peak staffing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := resolveDir(*workDir)
			if err != nil {
				return err
			}
			params, thresholds, opts, err := flags.resolve(cmd, dir)
			if err != nil {
				return err
			}
			return report.WritePhases(cmd.OutOrStdout(), staffing.Project(params, thresholds, opts))
		},
	}
	flags.register(cmd.Flags())
	return cmd
}
