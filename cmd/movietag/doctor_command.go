package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"movietag/internal/identification"
	"movietag/internal/preflight"
	"movietag/internal/services"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check TMDB access and external tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			var searcher identification.Searcher
			if client, err := ctx.catalogClient(); err == nil {
				searcher = client
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config: %s\n", ctx.configPath)

			results := preflight.RunAll(cmd.Context(), cfg, searcher)
			rows := make([][]string, 0, len(results))
			failed := 0
			for _, result := range results {
				if !result.Passed {
					failed++
				}
				rows = append(rows, []string{result.Name, yesNo(result.Passed), result.Detail})
			}
			fmt.Fprintln(out, renderTable([]string{"Check", "OK", "Detail"}, rows, nil))

			if failed > 0 {
				return services.Wrap(services.ErrConfiguration, "doctor", "", fmt.Sprintf("%d check(s) failed", failed), nil)
			}
			return nil
		},
	}
}
