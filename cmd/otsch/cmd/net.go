package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/connect"
	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/geometry"
	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/schematic"
)

var netCmd = &cobra.Command{
	Use:   "net <schematic_file> [x y]",
	Short: "Trace electrical nets",
	Long: `Without coordinates: list every net of two or more points.
With x and y: list the points electrically reachable from (x, y).`,
	Args: cobra.RangeArgs(1, 3),
	RunE: runNet,
}

func init() {
	rootCmd.AddCommand(netCmd)
}

func runNet(cmd *cobra.Command, args []string) error {
	if len(args) == 2 {
		return fmt.Errorf("need both x and y, got only x")
	}
	sch, err := schematic.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("error parsing schematic: %w", err)
	}

	if len(args) == 3 {
		x, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid x coordinate %q", args[1])
		}
		y, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid y coordinate %q", args[2])
		}

		g := connect.FromSchematic(sch)
		p := geometry.Point{X: x, Y: y}
		if !g.HasNode(p) {
			fmt.Printf("No wire endpoint or junction at (%.2f, %.2f)\n", x, y)
			return nil
		}
		net := g.Net(p)
		fmt.Printf("Net of (%.2f, %.2f): %d points\n", x, y, len(net))
		for _, q := range net {
			fmt.Printf("  (%.2f, %.2f)\n", q.X, q.Y)
		}
		return nil
	}

	nets := connect.NetlistOf(sch).Nets()
	logger.Debug("traced netlist", "nets", len(nets))
	fmt.Printf("Nets: %d\n", len(nets))
	for _, net := range nets {
		fmt.Printf("  net %d: %d points", net.ID, len(net.Points))
		for _, p := range net.Points {
			fmt.Printf(" (%.2f, %.2f)", p.X, p.Y)
		}
		fmt.Println()
	}
	return nil
}
