package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	mdwerror "github.com/msto63/grocer/foundation/core/error"
	mdwlog "github.com/msto63/grocer/foundation/core/log"
	"github.com/msto63/grocer/internal/catalog"
	"github.com/msto63/grocer/internal/metrics"
	"github.com/msto63/grocer/internal/report"
	"github.com/msto63/grocer/internal/store"
	"github.com/msto63/grocer/pkg/core/config"
	"github.com/msto63/grocer/pkg/core/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	catalogPath string
	storeKind   string
	verbose     bool
	plain       bool
	jsonOutput  bool
)

// per-run state, set up in PersistentPreRunE
var (
	cfg      *config.Config
	logger   *mdwlog.Logger
	registry *metrics.Registry
	started  time.Time
)

var rootCmd = &cobra.Command{
	Use:   "grocer",
	Short: "Product catalog parser and shopping list calculator",
	Long: `grocer parses a plain-text product catalog into typed records and
prices free-text shopping lists against it.

Catalog entry format (entries separated by one blank line):
  Product name: apple
  Category: fruit
  Price: 10 UAH/kg
  Calories: 52 cal
  Proteins: 0.3 g
  Carbohydrates: 14 g
  Fats: 0.2 g

Examples:
  grocer parse products.txt products.json
  grocer get apple
  grocer list "apple 2 kg, milk 1 l"
  grocer export catalog.db`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command and reports a fatal error on stderr
func Execute() error {
	err := execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// execute runs the command tree and flushes metrics for failed runs too,
// since cobra skips post-run hooks when RunE returns an error
func execute() error {
	registry = nil
	cmd, err := rootCmd.ExecuteC()
	teardown(cmd)
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $GROCER_CONFIG, ./grocer.toml)")
	rootCmd.PersistentFlags().StringVarP(&catalogPath, "catalog", "c", "", "catalog store path (default from config)")
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", "", "catalog store format: json, yaml or sqlite")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "plain output without colors")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "JSON output")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}
	if storeKind != "" {
		cfg.Catalog.Store = storeKind
	}
	if plain {
		cfg.General.Plain = true
	}

	lc := logging.FromConfig("grocer", cfg)
	if verbose {
		lc.Level = "debug"
	}
	lc.Output = cmd.ErrOrStderr()
	lc.CorrelationID = uuid.NewString()
	logger = logging.NewLogger(lc).WithField("command", cmd.Name())

	registry = metrics.NewRegistry()
	started = time.Now()

	logger.Debug("Configuration loaded", mdwlog.Fields{
		"source":  cfg.Source(),
		"catalog": cfg.Catalog.Path,
	})
	return nil
}

// teardown records the command duration and writes the metrics textfile.
// It is a no-op when setup never ran.
func teardown(cmd *cobra.Command) {
	if registry == nil || cmd == nil {
		return
	}
	registry.CommandSeconds.WithLabelValues(cmd.Name()).Observe(time.Since(started).Seconds())

	if path := cfg.Metrics.Textfile; path != "" {
		if err := registry.WriteTextfile(path); err != nil {
			logger.WarnWithErr("Failed to write metrics textfile", err, mdwlog.Fields{"path": path})
		}
	}
}

// withTimeout bounds store access by the configured catalog timeout
func withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), cfg.Catalog.Timeout.Duration)
}

// openStore opens path, using the configured store kind when kind is empty
func openStore(path, kind string) (store.Store, error) {
	if kind == "" {
		return store.Open(path, "")
	}
	k, err := store.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	return store.Open(path, k)
}

// loadCatalog reads the configured catalog store
func loadCatalog(cmd *cobra.Command) ([]catalog.Product, error) {
	s, err := openStore(cfg.Catalog.Path, cfg.Catalog.Store)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	ctx, cancel := withTimeout(cmd)
	defer cancel()

	products, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("Catalog loaded", mdwlog.Fields{
		"path":     cfg.Catalog.Path,
		"products": len(products),
	})
	return products, nil
}

func renderer() *report.Renderer {
	return report.New(cfg.General.Plain)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printError(w io.Writer, err error) {
	if w == nil {
		w = os.Stderr
	}
	if code := mdwerror.GetCode(err); code != mdwerror.CodeUnknown {
		fmt.Fprintf(w, "Error [%s]: %v\n", code, err)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
