package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"movietag/internal/config"
	"movietag/internal/mux"
	"movietag/internal/pipeline"
	"movietag/internal/services"
)

type tagOptions struct {
	container  string
	title      string
	year       int
	skip       []string
	properties []string
	overwrite  bool
	keep       bool
	dryRun     bool
}

func newTagCommand(ctx *commandContext) *cobra.Command {
	var opts tagOptions

	cmd := &cobra.Command{
		Use:   "tag [destination]",
		Short: "Look up a movie on TMDB and write its Matroska tag document",
		Long: `Look up a movie on TMDB and write its Matroska tag document.

The title and year are parsed from the container file name (or the destination
name when no container is given) unless --title/--year are supplied. When
--container is set and mkvpropedit is installed, the document is attached to the
container as global tags.`,
		Example: `  movietag tag --container "Ex.Machina.2014.2160p.BluRay.mkv"
  movietag tag "Heat.xml" --year 1995 --property budget --property genres
  movietag tag out.xml --title "Dune" --skip Cast --skip IMDbID --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			req, err := buildTagRequest(cmd, cfg, opts, args)
			if err != nil {
				return err
			}
			if err := pipeline.Validate(req); err != nil {
				return err
			}
			client, err := ctx.catalogClient()
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(client,
				pipeline.WithLogger(logger),
				pipeline.WithAttacher(mux.NewMuxer(cfg.MuxBinary(), logger)),
			)
			result, err := runner.Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if req.DryRun {
				_, err := out.Write(result.Document)
				return err
			}
			renderTagResult(out, result, shouldColorize(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.container, "container", "", "MKV container to attach the tags to; also the default title source")
	cmd.Flags().StringVar(&opts.title, "title", "", "Search title (default: parsed from the file name)")
	cmd.Flags().IntVar(&opts.year, "year", 0, "Release year used to pick among several matches")
	cmd.Flags().StringSliceVar(&opts.skip, "skip", nil, "Built-in fields to omit (Writers, Directors, Cast, IMDbID, TMDbID)")
	cmd.Flags().StringSliceVar(&opts.properties, "property", nil, "Extra TMDB detail fields to include, in order")
	cmd.Flags().BoolVar(&opts.overwrite, "overwrite", false, "Replace an existing tag document")
	cmd.Flags().BoolVar(&opts.keep, "keep", false, "Keep the tag document after attaching it to the container")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the document instead of writing it")
	return cmd
}

func buildTagRequest(cmd *cobra.Command, cfg *config.Config, opts tagOptions, args []string) (pipeline.Request, error) {
	container := strings.TrimSpace(opts.container)
	if container != "" {
		expanded, err := config.ExpandPath(container)
		if err != nil {
			return pipeline.Request{}, services.Wrap(services.ErrInput, "cli", "tag", "resolve container path", err)
		}
		container = expanded
	}

	var destination string
	if len(args) > 0 {
		destination = strings.TrimSpace(args[0])
	}
	if destination == "" {
		destination = pipeline.DefaultDestination(container)
	}
	if destination == "" {
		return pipeline.Request{}, services.Wrap(services.ErrInput, "cli", "tag", "a destination or --container is required", nil)
	}
	expanded, err := config.ExpandPath(destination)
	if err != nil {
		return pipeline.Request{}, services.Wrap(services.ErrInput, "cli", "tag", "resolve destination path", err)
	}

	skip := cfg.Tags.SkipProperties
	if cmd.Flags().Changed("skip") {
		skip = opts.skip
	}
	properties := cfg.Tags.Properties
	if cmd.Flags().Changed("property") {
		properties = opts.properties
	}

	return pipeline.Request{
		Destination:      expanded,
		Container:        container,
		Title:            opts.title,
		Year:             opts.year,
		Skip:             skip,
		Properties:       properties,
		Overwrite:        opts.overwrite || cfg.Tags.Overwrite,
		KeepIntermediate: opts.keep || cfg.Tags.KeepIntermediate,
		DryRun:           opts.dryRun,
	}, nil
}

func renderTagResult(out io.Writer, result pipeline.Result, colorize bool) {
	rows := make([][]string, 0, result.Record.Len())
	for _, entry := range result.Record.Entries() {
		rows = append(rows, []string{entry.Name, entry.Value.String()})
	}
	fmt.Fprintf(out, "%s (TMDB %d)\n", displayTitle(result), result.Resolution.ID)
	fmt.Fprintln(out, renderTable([]string{"Tag", "Value"}, rows, nil))

	for _, line := range resultStatus(result) {
		fmt.Fprintln(out, line.render(colorize))
	}
}

func displayTitle(result pipeline.Result) string {
	if title := strings.TrimSpace(result.Resolution.Title); title != "" {
		return title
	}
	return result.Query.String()
}
