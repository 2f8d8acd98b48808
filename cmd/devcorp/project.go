package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kingrea/devcorp/internal/config"
	"github.com/kingrea/devcorp/internal/report"
	"github.com/kingrea/devcorp/internal/staffing"
)

// projectFlags mirror the dashboard controls. Unset flags fall back to
// .devcorp/config.yaml and then to the built-in defaults.
type projectFlags struct {
	format       string
	variant      string
	scale        int
	complexity   int
	planning     int
	landAssembly int
	development  int
	feasibility  int
	interim      int
	delivery     int
	strict       bool
}

func (f *projectFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.variant, "variant", "", "Model variant: classic or detailed")
	fs.IntVar(&f.scale, "scale", staffing.DefaultLevel, "Project scale (1-10)")
	fs.IntVar(&f.complexity, "complexity", staffing.DefaultLevel, "Project complexity (1-10)")
	fs.IntVar(&f.planning, "planning", staffing.DefaultLevel, "Planning complexity, detailed variant (1-10)")
	fs.IntVar(&f.landAssembly, "land-assembly", staffing.DefaultLevel, "Land assembly complexity, detailed variant (1-10)")
	fs.IntVar(&f.development, "development", staffing.DefaultLevel, "Development complexity, detailed variant (1-10)")
	fs.IntVar(&f.feasibility, "feasibility-cap", 15, "Feasibility staffing cap (5-50)")
	fs.IntVar(&f.interim, "interim-cap", 35, "Interim Vehicle staffing cap (10-100)")
	fs.IntVar(&f.delivery, "delivery-cap", 90, "Delivery staffing cap (20-200)")
	fs.BoolVar(&f.strict, "strict", false, "Clamp totals to exactly the cap")
}

// resolve layers changed flags over the stored configuration.
func (f *projectFlags) resolve(cmd *cobra.Command, dir string) (staffing.ProjectParameters, staffing.Thresholds, staffing.Options, error) {
	cfg, err := config.NewConfig(dir)
	if err != nil {
		return staffing.ProjectParameters{}, staffing.Thresholds{}, staffing.Options{}, err
	}
	params := cfg.Parameters()
	thresholds := cfg.Thresholds()
	opts := cfg.Options()
	changed := cmd.Flags().Changed

	if changed("variant") {
		variant, err := staffing.ParseVariant(f.variant)
		if err != nil {
			return params, thresholds, opts, err
		}
		params.Variant = variant
	}
	if changed("scale") {
		params.Scale = f.scale
	}
	skills := []struct {
		flag     string
		category staffing.Category
		value    int
	}{
		{"planning", staffing.CategoryPlanning, f.planning},
		{"land-assembly", staffing.CategoryLandAssembly, f.landAssembly},
		{"development", staffing.CategoryDevelopment, f.development},
	}
	// --complexity seeds every skill the stored per-skill values would
	// otherwise pin; individual skill flags still win.
	if changed("complexity") {
		params.Complexity = f.complexity
		for _, s := range skills {
			params = params.WithSkill(s.category, f.complexity)
		}
	}
	for _, s := range skills {
		if changed(s.flag) {
			params = params.WithSkill(s.category, s.value)
		}
	}
	if changed("feasibility-cap") {
		thresholds.Feasibility = f.feasibility
	}
	if changed("interim-cap") {
		thresholds.InterimVehicle = f.interim
	}
	if changed("delivery-cap") {
		thresholds.Delivery = f.delivery
	}
	if changed("strict") {
		opts.StrictCaps = f.strict
	}

	if err := staffing.Validate(params); err != nil {
		return params, thresholds, opts, err
	}
	if err := thresholds.Validate(); err != nil {
		return params, thresholds, opts, err
	}
	return params, thresholds, opts, nil
}

func newProjectCmd(workDir *string) *cobra.Command {
	flags := &projectFlags{}
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Print the staffing projection",
		Long: "Print staff numbers per category every six months from month 0 to 300.\n" +
			"Totals above a phase cap are scaled back proportionally and marked.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := report.ParseFormat(flags.format)
			if err != nil {
				return err
			}
			dir, err := resolveDir(*workDir)
			if err != nil {
				return err
			}
			params, thresholds, opts, err := flags.resolve(cmd, dir)
			if err != nil {
				return err
			}
			projection := staffing.Project(params, thresholds, opts)
			if err := report.WriteProjection(cmd.OutOrStdout(), projection, format); err != nil {
				return fmt.Errorf("write projection: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&flags.format, "format", "f", string(report.FormatTable), "Output format: table, json or csv")
	flags.register(cmd.Flags())
	return cmd
}
