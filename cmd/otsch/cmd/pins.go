package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/schematic"
)

var pinsCmd = &cobra.Command{
	Use:   "pins <schematic_file> <reference>",
	Short: "Show pin positions of a component",
	Long: `List the pins of a placed component with their world coordinates,
after applying the component's rotation and mirror.`,
	Args: cobra.ExactArgs(2),
	RunE: runPins,
}

func init() {
	rootCmd.AddCommand(pinsCmd)
}

func runPins(cmd *cobra.Command, args []string) error {
	sch, err := schematic.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("error parsing schematic: %w", err)
	}

	c, err := sch.ComponentByReference(args[1])
	if err != nil {
		return err
	}
	pins, err := c.PinDefs()
	if err != nil {
		return err
	}
	positions, err := c.PinPositions()
	if err != nil {
		return err
	}

	sort.Slice(pins, func(i, j int) bool { return pins[i].Number < pins[j].Number })

	fmt.Printf("%s (%s) at (%.2f, %.2f) rotation %.0f\n",
		c.Reference(), c.LibID, c.Position.X, c.Position.Y, c.Rotation)
	for _, pin := range pins {
		pos := positions[pin.Number]
		name := pin.Name
		if name == "" || name == "~" {
			name = "-"
		}
		fmt.Printf("  pin %-4s %-12s %-14s (%.2f, %.2f)\n",
			pin.Number, name, pin.Type, pos.X, pos.Y)
	}
	return nil
}
