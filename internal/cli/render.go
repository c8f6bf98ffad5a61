package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aerolab/skewt/pkg/pipeline"
	"github.com/aerolab/skewt/pkg/skewt"
	"github.com/aerolab/skewt/pkg/skewt/sink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string  // output file path (or base path for multiple formats)
	formats   string  // comma-separated output formats
	width     float64 // diagram width in pixels
	height    float64 // diagram height in pixels
	skewAngle float64 // skew angle in degrees
	tMin      float64 // temperature domain lower bound
	tMax      float64 // temperature domain upper bound
	unit      string  // wind speed display unit
	barbSize  float64 // wind barb stem length
	scale     float64 // PNG supersampling factor
	noCache   bool    // disable the render cache
	refresh   bool    // bypass cached results
}

// renderCommand creates the render command for generating diagrams.
// The first file is the primary sounding; any further files are drawn as
// overlay profiles with thinner strokes.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		skewAngle: skewt.DefaultSkewAngle,
		unit:      "kmh",
		scale:     pipeline.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "render [file...]",
		Short: "Render sounding files as a SkewT-logP diagram",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "diagram width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "diagram height in pixels")
	cmd.Flags().Float64Var(&opts.skewAngle, "skew", opts.skewAngle, "skew angle in degrees")
	cmd.Flags().Float64Var(&opts.tMin, "t-min", 0, "temperature domain lower bound, degrees C")
	cmd.Flags().Float64Var(&opts.tMax, "t-max", 0, "temperature domain upper bound, degrees C")
	cmd.Flags().StringVar(&opts.unit, "unit", opts.unit, "wind speed unit: kmh (default), ms, kt")
	cmd.Flags().Float64Var(&opts.barbSize, "barb-size", 0, "wind barb stem length in pixels")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG supersampling factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, inputs []string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	formats := parseFormats(opts.formats)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Inputs:    inputs,
		Width:     opts.width,
		Height:    opts.height,
		SkewAngle: opts.skewAngle,
		TMin:      opts.tMin,
		TMax:      opts.tMax,
		Unit:      opts.unit,
		BarbSize:  opts.barbSize,
		Formats:   formats,
		Scale:     opts.scale,
		Refresh:   opts.refresh,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	primary := result.Profiles[0]
	base := basePath(opts.output, primary.Site, primary.Source)

	for _, format := range formats {
		path := base + "." + format
		if opts.output != "" && len(formats) == 1 {
			path = opts.output
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Infof("Generated %s", path)
	}

	prog.done(fmt.Sprintf("Rendered %d profile(s), %d sample(s)",
		result.Stats.ProfileCount, result.Stats.SampleCount))
	return nil
}

// basePath derives the base output path (without extension) from the output
// flag or, when unset, from the conventional export name for the sounding.
func basePath(output, site, source string) string {
	if output == "" {
		name := sink.ExportFilename(site, source)
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
