package cmd

import (
	"context"
	"fmt"

	mdwerror "github.com/msto63/grocer/foundation/core/error"
	"github.com/msto63/grocer/pkg/core/health"
	"github.com/msto63/grocer/pkg/core/version"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration, catalog and metrics output",
	Long: `Runs diagnostics over the active configuration: whether a config
file was found, whether the catalog store can be loaded and whether the
metrics textfile directory is writable. Exits non-zero when a check fails.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	reg := health.NewRegistry(version.Name, version.Version)

	if cfg.Source() != "" {
		reg.Register(health.FileCheck("config", cfg.Source(), true))
	} else {
		reg.RegisterFunc("config", func(ctx context.Context) health.CheckResult {
			return health.CheckResult{Status: health.StatusDegraded, Message: "no config file, using defaults"}
		})
	}

	reg.RegisterFunc("catalog", func(ctx context.Context) health.CheckResult {
		details := map[string]interface{}{"path": cfg.Catalog.Path}
		products, err := loadCatalog(cmd)
		switch {
		case mdwerror.HasCode(err, mdwerror.CodeNotFound):
			return health.CheckResult{Status: health.StatusDegraded, Message: "not found, run `grocer parse`", Details: details}
		case err != nil:
			return health.CheckResult{Status: health.StatusUnhealthy, Message: err.Error(), Details: details}
		case len(products) == 0:
			return health.CheckResult{Status: health.StatusDegraded, Message: "empty", Details: details}
		}
		return health.CheckResult{
			Status:  health.StatusHealthy,
			Message: fmt.Sprintf("%d products", len(products)),
			Details: details,
		}
	})

	if cfg.Metrics.Textfile != "" {
		reg.Register(health.WritableDirCheck("metrics", cfg.Metrics.Textfile))
	}

	rep := reg.CheckWithTimeout(cfg.Catalog.Timeout.Duration)

	if jsonOutput {
		if err := printJSON(cmd.OutOrStdout(), rep); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), rep.String())
	}

	if !rep.Healthy() {
		return mdwerror.New("doctor found problems").WithCode(mdwerror.CodeInternal)
	}
	return nil
}
