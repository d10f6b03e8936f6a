package cmd

import (
	"encoding/json"

	"github.com/fceschmidt/shapefile-utils/pkg/shapefile"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all records sequentially",
	Long: `Read every record of the shapefile in file order and print a
one-line summary per record, or a GeoJSON FeatureCollection with --json.

Example:
  shputil list --shp countries.shp
  shputil list --shp countries.shp --json`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		sf, ok := openShapefile(cmd)
		if !ok {
			cmd.Println("Error: shapefile not found in context")
			return
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			features := make([]*shapefile.Feature, 0, sf.NumRecords())
			for it := sf.Iterator(); it.Next(); {
				features = append(features, it.Record().GeoJSON(it.ID()))
			}
			out, err := json.MarshalIndent(map[string]interface{}{
				"type":     "FeatureCollection",
				"features": features,
			}, "", "  ")
			if err != nil {
				cmd.Printf("Error encoding records: %v\n", err)
				return
			}
			cmd.Printf("%s\n", out)
			return
		}

		for it := sf.Iterator(); it.Next(); {
			record := it.Record()
			cmd.Printf("%d\t%s", record.Number, record.Shape.Type())
			for _, name := range sortedKeys(record.Attributes) {
				cmd.Printf("\t%s=%v", name, record.Attributes[name])
			}
			cmd.Printf("\n")
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("json", false, "Print the records as a GeoJSON FeatureCollection")
}
