package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"movietag/internal/metadata"
)

func newFieldsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "fields",
		Short:       "List built-in tags and known extra properties",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			builtins := metadata.BuiltinFields()
			categories := metadata.CategoryNames()
			rows := make([][]string, 0, len(builtins))
			for i, spec := range builtins {
				rows = append(rows, []string{spec.DisplayName, categories[i], string(spec.Source), spec.Path})
			}
			fmt.Fprintln(out, "Built-in tags (in output order):")
			fmt.Fprintln(out, renderTable([]string{"Tag", "Skip Name", "Source", "Path"}, rows, nil))

			extras := metadata.ExtraFields()
			rows = make([][]string, 0, len(extras))
			for _, spec := range extras {
				rows = append(rows, []string{spec.Path, spec.DisplayName, string(spec.Shape), strings.Join(spec.ItemKeys, ", ")})
			}
			fmt.Fprintln(out, "Extra properties (--property):")
			fmt.Fprintln(out, renderTable([]string{"Property", "Tag", "Shape", "Item Key"}, rows, nil))
			fmt.Fprintln(out, "Any other key of the TMDB movie detail payload is accepted; its shape is inferred.")
			return nil
		},
	}
}
