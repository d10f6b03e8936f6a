package cmd

import (
	"github.com/spf13/cobra"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the shapefile header",
	Long: `Print the main file header and record count of a shapefile.

Example:
  shputil info --shp countries.shp`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		sf, ok := openShapefile(cmd)
		if !ok {
			cmd.Println("Error: shapefile not found in context")
			return
		}

		header := sf.Header()
		cmd.Printf("Shape type:  %s\n", header.ShapeType)
		cmd.Printf("File length: %d 16-bit words\n", header.FileLength)
		cmd.Printf("Records:     %d\n", sf.NumRecords())
		cmd.Printf("X range:     [%g, %g]\n", header.Bounds.XMin, header.Bounds.XMax)
		cmd.Printf("Y range:     [%g, %g]\n", header.Bounds.YMin, header.Bounds.YMax)
		cmd.Printf("Z range:     [%g, %g]\n", header.Bounds.ZMin, header.Bounds.ZMax)
		cmd.Printf("M range:     [%g, %g]\n", header.Bounds.MMin, header.Bounds.MMax)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
