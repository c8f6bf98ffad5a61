package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aerolab/skewt/pkg/observability"
	"github.com/aerolab/skewt/pkg/pipeline"
	"github.com/aerolab/skewt/pkg/skewt"
	"github.com/aerolab/skewt/pkg/sounding"
)

// probeCommand creates the probe command: print the readout of the sample
// nearest to a pressure level, exactly as the hover probe would report it.
func (c *CLI) probeCommand() *cobra.Command {
	var unit string

	cmd := &cobra.Command{
		Use:   "probe <file> <pressure>",
		Short: "Print the sample readout nearest to a pressure level",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pressure, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid pressure %q: %w", args[1], err)
			}
			return c.runProbe(cmd, args[0], pressure, unit)
		},
	}

	cmd.Flags().StringVar(&unit, "unit", "kmh", "wind speed unit: kmh (default), ms, kt")

	return cmd
}

func (c *CLI) runProbe(cmd *cobra.Command, input string, pressure float64, unit string) error {
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	profiles, err := runner.Load(cmd.Context(), pipeline.Options{Inputs: []string{input}, Logger: c.Logger})
	if err != nil {
		return err
	}
	profile := profiles[0]

	frame, err := skewt.NewFrame(skewt.FrameConfig{
		TopPressure: skewt.TopPressureFor(profile),
	})
	if err != nil {
		return err
	}

	probe := skewt.NewProbe(frame, profile, sounding.SpeedUnit(unit))
	readout, ok := probe.Enter(frame.YForPressure(pressure))
	observability.Probe().OnLookup(cmd.Context(), pressure, ok)
	if !ok {
		return fmt.Errorf("no sample near %.0f hPa (profile has %d samples)", pressure, len(profile.Samples))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "pressure: %.0f hPa\n", readout.Pressure)
	if readout.HasHeight {
		fmt.Fprintf(out, "height:   %.0f m\n", readout.Height)
	}
	if readout.HasTemperature {
		fmt.Fprintf(out, "temp:     %d C\n", readout.Temperature)
	}
	if readout.HasDewPoint {
		fmt.Fprintf(out, "dewpoint: %d C\n", readout.DewPoint)
	}
	if readout.HasWindSpeed {
		fmt.Fprintf(out, "wind:     %.1f %s\n", readout.WindSpeed, readout.Unit.Label())
	}
	return nil
}
