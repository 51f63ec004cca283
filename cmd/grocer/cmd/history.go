package cmd

import (
	"fmt"

	mdwerror "github.com/msto63/grocer/foundation/core/error"
	"github.com/msto63/grocer/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the imports recorded in a SQLite catalog",
	Long: `Lists every catalog import saved into a SQLite store, newest first.

Examples:
  grocer history --catalog catalog.db`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	s, err := openStore(cfg.Catalog.Path, cfg.Catalog.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	db, ok := s.(*store.SQLiteStore)
	if !ok {
		return mdwerror.New("import history requires a sqlite catalog").
			WithCode(mdwerror.CodeUnsupportedStore).
			WithDetail("path", cfg.Catalog.Path)
	}

	ctx, cancel := withTimeout(cmd)
	defer cancel()

	imports, err := db.Imports(ctx)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), imports)
	}
	if len(imports) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No imports recorded")
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-36s  %8s  %s\n", "ID", "PRODUCTS", "CREATED")
	for _, imp := range imports {
		fmt.Fprintf(out, "%-36s  %8d  %s\n", imp.ID, imp.ProductCount, imp.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
