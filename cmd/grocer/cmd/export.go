package cmd

import (
	"fmt"

	mdwlog "github.com/msto63/grocer/foundation/core/log"
	"github.com/spf13/cobra"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export <output-file>",
	Short: "Copy the catalog into another store format",
	Long: `Reads the configured catalog and writes it to another store. The
output format follows the file extension unless --format is given.

Examples:
  grocer export products.yaml
  grocer export --catalog products.json catalog.db`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "output format: json, yaml or sqlite")
}

func runExport(cmd *cobra.Command, args []string) error {
	output := args[0]

	products, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	s, err := openStore(output, exportFormat)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := withTimeout(cmd)
	defer cancel()

	if err := s.Save(ctx, products); err != nil {
		return err
	}

	logger.Info("Catalog exported", mdwlog.Fields{
		"from":     cfg.Catalog.Path,
		"to":       output,
		"products": len(products),
	})
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d products to %s\n", len(products), output)
	return nil
}
