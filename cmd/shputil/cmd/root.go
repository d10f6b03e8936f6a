/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fceschmidt/shapefile-utils/pkg/config"
	"github.com/fceschmidt/shapefile-utils/pkg/shapefile"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "shputil",
	Short: "shputil - ESRI Shapefile reader",
	Long: `shputil reads ESRI Shapefile triplets (.shp, .shx, .dbf) and exposes
their geometries and attributes on the command line or over HTTP.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultConfig()
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			// Fall back to the per-user config when one exists.
			if defaultPath := config.GetDefaultConfigPath(); fileExists(defaultPath) {
				configPath = defaultPath
			}
		}
		if configPath != "" {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg = loaded
		}

		// Flags win over the config file.
		if shpPath, _ := cmd.Flags().GetString("shp"); shpPath != "" {
			cfg.Shapefile.Shp = shpPath
		}
		if shxPath, _ := cmd.Flags().GetString("shx"); shxPath != "" {
			cfg.Shapefile.Shx = shxPath
		}
		if dbfPath, _ := cmd.Flags().GetString("dbf"); dbfPath != "" {
			cfg.Shapefile.Dbf = dbfPath
		}
		if cmd.Flags().Changed("strict") {
			cfg.Decoding.Strict, _ = cmd.Flags().GetBool("strict")
		}

		if cfg.Shapefile.Shp == "" {
			return fmt.Errorf("no shapefile given (use --shp or --config)")
		}
		cfg.ResolvePaths()

		sf, err := shapefile.Open(shapefile.Config{
			ShpPath: cfg.Shapefile.Shp,
			ShxPath: cfg.Shapefile.Shx,
			DbfPath: cfg.Shapefile.Dbf,
			Strict:  cfg.Decoding.Strict,
		})
		if err != nil {
			return fmt.Errorf("failed to open shapefile: %w", err)
		}

		// Store in command context
		ctx := context.WithValue(cmd.Context(), "shapefile", sf)
		ctx = context.WithValue(ctx, "config", cfg)
		cmd.SetContext(ctx)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("shp", "f", "", "Path to the main .shp file")
	rootCmd.PersistentFlags().String("shx", "", "Path to the .shx index (derived from --shp when empty)")
	rootCmd.PersistentFlags().String("dbf", "", "Path to the .dbf attribute table (derived from --shp when empty)")
	rootCmd.PersistentFlags().Bool("strict", false, "Reject unknown shape type codes instead of reading them as null shapes")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file")
}

// openShapefile fetches the triplet handle the root command opened.
func openShapefile(cmd *cobra.Command) (*shapefile.Shapefile, bool) {
	sf, ok := cmd.Context().Value("shapefile").(*shapefile.Shapefile)
	return sf, ok
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
