package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beetlebugorg/hexmap/pkg/hexmap"
)

func newResolutionCmd() *cobra.Command {
	var minZoom, maxZoom int
	cmd := &cobra.Command{
		Use:   "resolution [zoom]",
		Short: "Print the H3 resolution used at each zoom level",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				var zoom int
				if _, err := fmt.Sscanf(args[0], "%d", &zoom); err != nil {
					return fmt.Errorf("invalid zoom %q: %w", args[0], err)
				}
				fmt.Fprintln(out, hexmap.ResolutionForZoom(zoom))
				return nil
			}
			if maxZoom < minZoom {
				return fmt.Errorf("--max (%d) is below --min (%d)", maxZoom, minZoom)
			}
			fmt.Fprintln(out, "ZOOM  RESOLUTION")
			for z := minZoom; z <= maxZoom; z++ {
				fmt.Fprintf(out, "%4d  %d\n", z, hexmap.ResolutionForZoom(z))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&minZoom, "min", 0, "first zoom level")
	cmd.Flags().IntVar(&maxZoom, "max", 20, "last zoom level")
	return cmd
}
