package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	mdwerror "github.com/msto63/grocer/foundation/core/error"
	"github.com/msto63/grocer/internal/cost"
	"github.com/msto63/grocer/internal/grammar"
	"github.com/msto63/grocer/internal/shopping"
	"github.com/spf13/cobra"
)

var (
	listFile        string
	listCategorized bool
)

var listCmd = &cobra.Command{
	Use:   "list <items...>",
	Short: "Price a shopping list against the catalog",
	Long: `Prices a comma-separated shopping list. Each item is
"<name> <quantity> <unit>"; multiple arguments are joined with ", ".
Items that are malformed, unknown or requested in the wrong unit are
reported and skipped, the remaining items are still priced. Totals are
printed per currency.

With --categorized every line is "<name> <quantity> <unit> - <category>".
Use --file to read the list from a file ("-" for stdin).

Examples:
  grocer list "apple 2 kg, milk 1 l"
  grocer list apple 2 kg, "green tea 3 pcs"
  grocer list --file list.txt
  grocer list --categorized --file basket.txt`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listFile, "file", "f", "", "read the list from a file (- for stdin)")
	listCmd.Flags().BoolVar(&listCategorized, "categorized", false, "one \"<item> - <category>\" per line")
}

func runList(cmd *cobra.Command, args []string) error {
	text, err := listInput(cmd, args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return mdwerror.New("shopping list is empty").WithCode(mdwerror.CodeInvalidInput)
	}

	var entries []shopping.Entry
	if listCategorized {
		entries = categorizedEntries(shopping.ParseCategorizedList(text))
	} else {
		entries = shopping.ParseList(text)
	}

	products, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	agg := cost.New(cost.Options{Logger: logger, Metrics: registry})
	rep := agg.Aggregate(entries, products)

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), rep)
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderer().Report(rep))
	return nil
}

// listInput joins the arguments like a single comma-separated list, or
// reads the list from --file
func listInput(cmd *cobra.Command, args []string) (string, error) {
	if listFile == "" {
		if listCategorized {
			return strings.Join(args, "\n"), nil
		}
		return strings.Join(args, ", "), nil
	}
	if len(args) > 0 {
		return "", mdwerror.New("items and --file are mutually exclusive").WithCode(mdwerror.CodeInvalidInput)
	}

	var data []byte
	var err error
	if listFile == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(listFile)
	}
	if err != nil {
		return "", mdwerror.Wrap(err, "failed to read shopping list").
			WithCode(mdwerror.CodeInvalidInput).
			WithDetail("path", listFile)
	}

	text := string(data)
	if listCategorized {
		return text, nil
	}

	// lines are joined like separate arguments
	var lines []string
	for _, line := range strings.Split(grammar.NormalizeNewlines(text), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, ", "), nil
}

func categorizedEntries(in []shopping.CategorizedEntry) []shopping.Entry {
	out := make([]shopping.Entry, 0, len(in))
	for _, e := range in {
		out = append(out, shopping.Entry{
			Index:   e.Index,
			Segment: e.Line,
			Item:    e.Item.RequestedItem,
			Err:     e.Err,
		})
	}
	return out
}
