/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/fceschmidt/shapefile-utils/pkg/api"
	"github.com/fceschmidt/shapefile-utils/pkg/config"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the shputil REST API server over an open shapefile.

The server exposes the header, record lookups as GeoJSON features and
Prometheus metrics. Setting --api-key protects the /api/v1 routes.

Examples:
  shputil serve --shp countries.shp --port=8080
  shputil serve --config shputil.yaml --api-key=mysecretkey`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		sf, ok := openShapefile(cmd)
		if !ok {
			cmd.Println("Error: shapefile not found in context")
			return
		}

		cfg, ok := cmd.Context().Value("config").(*config.Config)
		if !ok {
			cmd.Println("Error: config not found in context")
			return
		}
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			cfg.Bind, _ = cmd.Flags().GetString("bind")
		}
		if cmd.Flags().Changed("api-key") {
			cfg.Security.APIKey, _ = cmd.Flags().GetString("api-key")
		}

		serverConfig := api.ServerConfig{
			Port:   cfg.Port,
			Bind:   cfg.Bind,
			APIKey: cfg.Security.APIKey,
		}
		if err := api.StartServer(sf, serverConfig); err != nil {
			cmd.Printf("Error starting server: %v\n", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind to")
	serveCmd.Flags().String("api-key", "", "API key protecting the /api/v1 routes")
}
