package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	skewtio "github.com/aerolab/skewt/pkg/io"
	"github.com/aerolab/skewt/pkg/sounding/netcdf"
)

// convertCommand creates the convert command: read a NetCDF sounding and
// write it as a JSON document.
func (c *CLI) convertCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "convert <file.nc>",
		Aliases: []string{"import"},
		Short:   "Convert a NetCDF sounding to the JSON document format",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]

			prog := newProgress(c.Logger)
			profile, err := netcdf.Load(input)
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = strings.TrimSuffix(input, filepath.Ext(input)) + ".json"
			}
			if err := skewtio.ExportJSON(profile, path); err != nil {
				return err
			}

			prog.done(fmt.Sprintf("Converted %d samples to %s", len(profile.Samples), path))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input with .json extension)")

	return cmd
}
