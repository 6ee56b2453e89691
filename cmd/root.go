// Package cmd contains the rosterlp command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/rosterlp/app"
	"github.com/kilianp07/rosterlp/config"
)

var (
	cfgPath string
	csvPath string
)

var rootCmd = &cobra.Command{
	Use:   "rosterlp",
	Short: "MILP-based weekly shift scheduler",
	Long: "rosterlp assigns workers to parallel stations over a cyclic 7-day week " +
		"with paired day/night shifts by solving a mixed-integer linear program.",
	RunE: run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.Flags().StringVar(&csvPath, "export", "", "export the roster as CSV to this path")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	svc.CSVPath = csvPath
	return svc.Run(ctx)
}
