package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/schematic"
)

var propOut string

var propCmd = &cobra.Command{
	Use:   "prop",
	Short: "Read and write component properties",
}

var propGetCmd = &cobra.Command{
	Use:   "get <schematic_file> <reference> <key>",
	Short: "Print a property value",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := loadComponent(args[0], args[1])
		if err != nil {
			return err
		}
		if !c.HasProperty(args[2]) {
			return &schematic.NotFoundError{Kind: "property", Key: args[2]}
		}
		fmt.Println(c.GetProperty(args[2], ""))
		return nil
	},
}

var propSetCmd = &cobra.Command{
	Use:   "set <schematic_file> <reference> <key> <value>",
	Short: "Set a property value, creating the property if absent",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, sch, err := loadComponent(args[0], args[1])
		if err != nil {
			return err
		}
		c.SetProperty(args[2], args[3])
		return savePropResult(sch, args[0])
	},
}

var propDelCmd = &cobra.Command{
	Use:   "del <schematic_file> <reference> <key>",
	Short: "Delete a property",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, sch, err := loadComponent(args[0], args[1])
		if err != nil {
			return err
		}
		c.RemoveProperty(args[2])
		return savePropResult(sch, args[0])
	},
}

func init() {
	rootCmd.AddCommand(propCmd)
	propCmd.AddCommand(propGetCmd)
	propCmd.AddCommand(propSetCmd)
	propCmd.AddCommand(propDelCmd)
	propCmd.PersistentFlags().StringVarP(&propOut, "out", "o", "", "output file (default: edit in place)")
}

func loadComponent(filename, reference string) (*schematic.Component, *schematic.Schematic, error) {
	sch, err := schematic.ParseFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing schematic: %w", err)
	}
	c, err := sch.ComponentByReference(reference)
	if err != nil {
		return nil, nil, err
	}
	return c, sch, nil
}

func savePropResult(sch *schematic.Schematic, in string) error {
	out := propOut
	if out == "" {
		out = in
	}
	if err := sch.SaveFile(out); err != nil {
		return err
	}
	logger.Debug("saved", "path", out)
	return nil
}
