package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/schematic"
)

var infoCmd = &cobra.Command{
	Use:   "info <schematic_file> [reference]",
	Short: "Show schematic information",
	Long: `Display information about a KiCad schematic file.

Without a reference argument: shows a schematic summary
With a reference argument: shows details for that component`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	sch, err := schematic.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("error parsing schematic: %w", err)
	}

	if len(args) >= 2 {
		return showComponentDetails(sch, args[1])
	}
	showSummary(sch, args[0])
	return nil
}

func showSummary(sch *schematic.Schematic, filename string) {
	fmt.Printf("Schematic: %s\n", filename)
	fmt.Printf("Version: %d\n", sch.Version)
	fmt.Printf("Generator: %s", sch.Generator)
	if sch.GeneratorVersion != "" {
		fmt.Printf(" v%s", sch.GeneratorVersion)
	}
	fmt.Println()
	fmt.Printf("Paper: %s\n", sch.Paper)
	fmt.Println()

	if sch.TitleBlock.Title != "" || sch.TitleBlock.Revision != "" {
		fmt.Println("Title Block:")
		if sch.TitleBlock.Title != "" {
			fmt.Printf("  Title: %s\n", sch.TitleBlock.Title)
		}
		if sch.TitleBlock.Date != "" {
			fmt.Printf("  Date: %s\n", sch.TitleBlock.Date)
		}
		if sch.TitleBlock.Revision != "" {
			fmt.Printf("  Revision: %s\n", sch.TitleBlock.Revision)
		}
		if sch.TitleBlock.Company != "" {
			fmt.Printf("  Company: %s\n", sch.TitleBlock.Company)
		}
		fmt.Println()
	}

	fmt.Printf("Components: %d\n", len(sch.Components()))
	fmt.Printf("Wires: %d\n", len(sch.Wires()))
	fmt.Printf("Junctions: %d\n", len(sch.Junctions()))
	fmt.Printf("Labels: %d\n", len(sch.Labels()))
	fmt.Printf("Sheets: %d\n", len(sch.Sheets()))
	fmt.Printf("Library symbols: %d\n", len(sch.LibSymbols))

	// Component summary grouped by library symbol
	byLib := make(map[string][]string)
	for _, c := range sch.Components() {
		byLib[c.LibID] = append(byLib[c.LibID], c.Reference())
	}
	if len(byLib) > 0 {
		fmt.Println()
		fmt.Println("Components by symbol:")
		libs := make([]string, 0, len(byLib))
		for lib := range byLib {
			libs = append(libs, lib)
		}
		sort.Strings(libs)
		for _, lib := range libs {
			refs := byLib[lib]
			sort.Strings(refs)
			fmt.Printf("  %s: %v\n", lib, refs)
		}
	}

	box := sch.BoundingBox()
	fmt.Println()
	fmt.Printf("Bounding box: (%.2f, %.2f) - (%.2f, %.2f)\n",
		box.Min.X, box.Min.Y, box.Max.X, box.Max.Y)
}

func showComponentDetails(sch *schematic.Schematic, reference string) error {
	c, err := sch.ComponentByReference(reference)
	if err != nil {
		return err
	}

	fmt.Printf("Component: %s\n", c.Reference())
	fmt.Printf("Library: %s\n", c.LibID)
	fmt.Printf("Value: %s\n", c.Value())
	fmt.Printf("Position: (%.2f, %.2f)\n", c.Position.X, c.Position.Y)
	fmt.Printf("Rotation: %.0f\n", c.Rotation)
	if c.Mirror != "" {
		fmt.Printf("Mirror: %s\n", c.Mirror)
	}
	fmt.Printf("Unit: %d\n", c.Unit)
	fmt.Printf("UUID: %s\n", c.UUID())

	props := c.Properties()
	if len(props) > 0 {
		fmt.Println()
		fmt.Println("Properties:")
		for _, p := range props {
			fmt.Printf("  %s: %s\n", p.Key, p.Value)
		}
	}

	insts := c.Instances()
	if len(insts) > 0 {
		fmt.Println()
		fmt.Println("Instances:")
		for _, inst := range insts {
			fmt.Printf("  %s %s: %s unit %d\n", inst.Project, inst.Path, inst.Reference, inst.Unit)
		}
	}
	return nil
}
