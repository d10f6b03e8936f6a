package cmd

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <record-number>",
	Short: "Get a single record by record number",
	Long: `Get one record by its 1-based record number and print its geometry
and attributes.

Example:
  shputil get 42 --shp countries.shp
  shputil get 42 --shp countries.shp --json`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil || id == 0 {
			cmd.Printf("Error: invalid record number %q\n", args[0])
			return
		}

		sf, ok := openShapefile(cmd)
		if !ok {
			cmd.Println("Error: shapefile not found in context")
			return
		}

		record, ok := sf.Record(id)
		if !ok {
			cmd.Printf("Record %d not found\n", id)
			return
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			out, err := json.MarshalIndent(record.GeoJSON(id), "", "  ")
			if err != nil {
				cmd.Printf("Error encoding record: %v\n", err)
				return
			}
			cmd.Printf("%s\n", out)
			return
		}

		cmd.Printf("Record %d: %s\n", record.Number, record.Shape.Type())
		for _, name := range sortedKeys(record.Attributes) {
			cmd.Printf("  %s = %v\n", name, record.Attributes[name])
		}
	},
}

func sortedKeys(attributes map[string]interface{}) []string {
	names := make([]string, 0, len(attributes))
	for name := range attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().Bool("json", false, "Print the record as a GeoJSON feature")
}
