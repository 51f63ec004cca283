package cmd

import (
	"fmt"
	"strings"

	mdwerror "github.com/msto63/grocer/foundation/core/error"
	"github.com/msto63/grocer/internal/catalog"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <product-name>",
	Short: "Show a product from the catalog",
	Long: `Shows all seven fields of a product. The name must match exactly,
including case. Multi-word names may be given as separate arguments.

Examples:
  grocer get apple
  grocer get green tea
  grocer get --json apple`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")

	products, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return mdwerror.New("catalog is empty, run `grocer parse` first").
			WithCode(mdwerror.CodeEmptyCatalog).
			WithDetail("path", cfg.Catalog.Path)
	}

	product, ok := catalog.Find(products, name)
	if !ok {
		return mdwerror.New(fmt.Sprintf("product %q not found", name)).
			WithCode(mdwerror.CodeNotFound).
			WithDetail("path", cfg.Catalog.Path)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), product)
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderer().Product(product))
	return nil
}
