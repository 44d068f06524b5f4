package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/geometry"
	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/route"
	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/schematic"
)

var (
	routeDirect bool
	routeOut    string
)

var routeCmd = &cobra.Command{
	Use:   "route <schematic_file> <ref.pin> <ref.pin>",
	Short: "Route a wire between two component pins",
	Long: `Route an orthogonal wire between two pins, avoiding other
components, and add the resulting wire segments to the schematic.

Pins are addressed as reference.number, e.g. R1.1 or U3.12.
With --direct the route is a single L-shaped bend ignoring obstacles.`,
	Args: cobra.ExactArgs(3),
	RunE: runRoute,
}

func init() {
	rootCmd.AddCommand(routeCmd)
	routeCmd.Flags().BoolVar(&routeDirect, "direct", false, "one-bend route ignoring obstacles")
	routeCmd.Flags().StringVarP(&routeOut, "out", "o", "", "output file (default: edit in place)")
}

func runRoute(cmd *cobra.Command, args []string) error {
	sch, err := schematic.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("error parsing schematic: %w", err)
	}

	refA, pinA, err := splitPinRef(args[1])
	if err != nil {
		return err
	}
	refB, pinB, err := splitPinRef(args[2])
	if err != nil {
		return err
	}

	compA, err := sch.ComponentByReference(refA)
	if err != nil {
		return err
	}
	compB, err := sch.ComponentByReference(refB)
	if err != nil {
		return err
	}
	start, err := compA.PinPosition(pinA)
	if err != nil {
		return err
	}
	end, err := compB.PinPosition(pinB)
	if err != nil {
		return err
	}
	logger.Debug("routing", "from", args[1], "to", args[2],
		"start", fmt.Sprintf("(%.2f, %.2f)", start.X, start.Y),
		"end", fmt.Sprintf("(%.2f, %.2f)", end.X, end.Y))

	cfg := route.Config{
		GridSize:  config.Route.Grid,
		Clearance: config.Route.Clearance,
	}

	var path []geometry.Point
	if routeDirect {
		path, err = route.Direct(cfg, start, end)
	} else {
		path, err = route.FindPath(cfg, start, end, keepouts(sch, compA, compB))
	}
	if err != nil {
		return fmt.Errorf("routing failed: %w", err)
	}

	wires, err := sch.AddWirePath(path)
	if err != nil {
		return err
	}
	fmt.Printf("Routed %s -> %s: %d segment(s)\n", args[1], args[2], len(wires))
	for _, p := range path {
		fmt.Printf("  (%.2f, %.2f)\n", p.X, p.Y)
	}

	out := routeOut
	if out == "" {
		out = args[0]
	}
	if err := sch.SaveFile(out); err != nil {
		return err
	}
	logger.Debug("saved", "path", out)
	return nil
}

// keepouts builds obstacle rectangles around every component except
// the two being connected.
func keepouts(sch *schematic.Schematic, exclude ...*schematic.Component) []geometry.Rect {
	skip := make(map[string]bool, len(exclude))
	for _, c := range exclude {
		skip[c.UUID()] = true
	}
	var rects []geometry.Rect
	for _, c := range sch.Components() {
		if skip[c.UUID()] {
			continue
		}
		r := geometry.Rect{Min: c.Position, Max: c.Position}.Inflate(config.Route.Keepout)
		rects = append(rects, r)
	}
	return rects
}

func splitPinRef(s string) (ref, pin string, err error) {
	i := strings.LastIndex(s, ".")
	if i <= 0 || i == len(s)-1 {
		return "", "", fmt.Errorf("invalid pin address %q, want reference.number like R1.2", s)
	}
	return s[:i], s[i+1:], nil
}
