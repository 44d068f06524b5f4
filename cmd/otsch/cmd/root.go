package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose    bool
	configPath string

	logger *charmlog.Logger
	config Config
)

// Config holds the tool configuration, loaded from an optional TOML
// file.
type Config struct {
	Route RouteConfig `toml:"route"`
}

// RouteConfig sets the routing defaults. All values are in
// millimeters.
type RouteConfig struct {
	Grid      float64 `toml:"grid"`
	Clearance float64 `toml:"clearance"`
	Keepout   float64 `toml:"keepout"`
}

func defaultConfig() Config {
	return Config{
		Route: RouteConfig{
			Grid:      1.27,
			Clearance: 0.635,
			Keepout:   2.54,
		},
	}
}

var rootCmd = &cobra.Command{
	Use:   "otsch",
	Short: "OpenTraceSchematic - KiCad schematic manipulation tools",
	Long: `OpenTraceSchematic (otsch) reads, edits and analyzes KiCad schematic
files (.kicad_sch) while preserving them byte for byte.

Examples:
  otsch info design.kicad_sch             # Show schematic summary
  otsch pins design.kicad_sch R1          # Show pin positions of R1
  otsch route design.kicad_sch R1.1 R2.1  # Wire two pins together
  otsch check design.kicad_sch            # Validate and verify round trip`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := charmlog.InfoLevel
		if verbose {
			level = charmlog.DebugLevel
		}
		logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		})

		config = defaultConfig()
		if configPath != "" {
			if _, err := toml.DecodeFile(configPath, &config); err != nil {
				return fmt.Errorf("failed to load config %s: %w", configPath, err)
			}
			logger.Debug("loaded config", "path", configPath)
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to TOML config file")
}
