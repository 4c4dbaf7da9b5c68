package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// unitsCmd lists the troop catalog
var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "List the troops and costs in the troop catalog",
	Run: func(cmd *cobra.Command, args []string) {
		cat, err := LoadCatalog(catalogPath)
		if err != nil {
			logrus.Fatalf("Failed to load troop catalog: %v", err)
		}
		printCatalog(os.Stdout, cat, catalogTribe)
	},
}

var (
	catalogPath  string // Troop catalog path for the units command
	catalogTribe string // Restrict the listing to one tribe
)

// printCatalog writes one table per tribe, in sorted tribe order.
// A non-empty tribe limits the output to that tribe.
func printCatalog(w io.Writer, cat Catalog, tribe string) {
	for _, name := range cat.TribeNames() {
		if tribe != "" && name != tribe {
			continue
		}
		fmt.Fprintf(w, "%s\n", name)
		fmt.Fprintf(w, "  %-20s %7s %7s %7s %7s\n", "Troop", "Lumber", "Clay", "Iron", "Crop")
		for _, troop := range cat.Tribes[name].Troops {
			c := troop.Cost
			fmt.Fprintf(w, "  %-20s %7d %7d %7d %7d\n", troop.Name, c[0], c[1], c[2], c[3])
		}
	}
}

func init() {
	unitsCmd.Flags().StringVar(&catalogPath, "units-file", defaultUnitsFilePath, "Path to the troop catalog YAML")
	unitsCmd.Flags().StringVar(&catalogTribe, "tribe", "", "Only list this tribe")
}
