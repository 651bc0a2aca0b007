package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/reglet-dev/shaderbuild/internal/application/dto"
)

func newModulesCmd(g *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List the shader modules of the project",
		Long: `List every directory under resources/shaders with the shader sources it
contains. Modules missing one of <module>.vs.sc, <module>.fs.sc or
varying.def.sc are flagged; compiling them would fail.`,
		Example: `  shaderbuild modules
  shaderbuild modules --format yaml`,
		Args: cobra.NoArgs,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if format != "table" && format != "yaml" {
				return fmt.Errorf("invalid format: %s (valid: table, yaml)", format)
			}
			return nil
		},
		RunE: withContainer(g, func(ctx *CommandContext, cmd *cobra.Command, _ []string) error {
			modules, err := ctx.Container.ModuleResolver().Describe(ctx.Context)
			if err != nil {
				return fmt.Errorf("failed to list modules: %w", err)
			}

			if format == "yaml" {
				encoder := yaml.NewEncoder(cmd.OutOrStdout(), yaml.Indent(2))
				if err := encoder.Encode(modules); err != nil {
					return fmt.Errorf("failed to encode modules: %w", err)
				}
				return encoder.Close()
			}

			return printModuleTable(cmd, modules)
		}),
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table, yaml")

	return cmd
}

func printModuleTable(cmd *cobra.Command, modules []dto.ModuleInfo) error {
	out := cmd.OutOrStdout()
	if len(modules) == 0 {
		_, err := fmt.Fprintln(out, "No shader modules found.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	if _, err := fmt.Fprintln(w, "MODULE\tSTATUS\tSOURCES"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, m := range modules {
		status := "ok"
		switch {
		case m.Ignored != "":
			status = "ignored: " + m.Ignored
		case !m.Complete():
			status = "missing " + strings.Join(m.Missing, ", ")
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", m.Name, status, strings.Join(m.Sources, " ")); err != nil {
			return fmt.Errorf("failed to write module info: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush writer: %w", err)
	}

	return nil
}
