package cmd

import (
	"fmt"
	"os"

	mdwerror "github.com/msto63/grocer/foundation/core/error"
	mdwlog "github.com/msto63/grocer/foundation/core/log"
	"github.com/msto63/grocer/internal/catalog"
	"github.com/spf13/cobra"
)

var parseFormat string

var parseCmd = &cobra.Command{
	Use:   "parse <input-file> [output-file]",
	Short: "Parse a catalog text file and save the products",
	Long: `Parses a plain-text catalog and writes the products to a store.

The output format follows the file extension (.json, .yaml/.yml,
.db/.sqlite) unless --format is given. Without an output file the
configured catalog path is used. Any grammar error aborts the run and
nothing is written.

Examples:
  grocer parse products.txt products.json
  grocer parse products.txt catalog.db
  grocer parse --format yaml products.txt catalog.txt`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "", "output format: json, yaml or sqlite")
}

func runParse(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := cfg.Catalog.Path
	kind := cfg.Catalog.Store
	if len(args) == 2 {
		output = args[1]
		kind = ""
	}
	if parseFormat != "" {
		kind = parseFormat
	}

	text, err := os.ReadFile(input)
	if err != nil {
		return mdwerror.Wrap(err, "failed to read catalog text").
			WithCode(mdwerror.CodeInvalidInput).
			WithDetail("path", input)
	}

	parser := catalog.NewParser(catalog.Options{Logger: logger, Metrics: registry})
	products, err := parser.Parse(string(text))
	if err != nil {
		return err
	}
	if len(products) == 0 {
		logger.Warn("Catalog text contains no products", mdwlog.Fields{"path": input})
	}

	s, err := openStore(output, kind)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := withTimeout(cmd)
	defer cancel()

	if err := s.Save(ctx, products); err != nil {
		return err
	}

	logger.Info("Catalog saved", mdwlog.Fields{
		"input":    input,
		"output":   output,
		"products": len(products),
	})
	fmt.Fprintf(cmd.OutOrStdout(), "Parsed %d products into %s\n", len(products), output)
	return nil
}
