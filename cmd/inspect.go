package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/rosterlp/config"
	"github.com/kilianp07/rosterlp/core/roster"
)

var showRows bool

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Build the MILP and print its dimensions without solving",
	RunE:  inspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&showRows, "rows", false, "also print every constraint row")
	rootCmd.AddCommand(inspectCmd)
}

func inspect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	model, _, err := roster.Build(cfg.Roster)
	if err != nil {
		return fmt.Errorf("build model: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "variables: %d (%d binary)\n", model.NumVars(), model.NumBinary())
	fmt.Fprintf(out, "rows:      %d\n", model.NumRows())
	fmt.Fprintf(out, "objective: %d terms, sense maximize\n", len(model.Obj.Terms))
	if !showRows {
		return nil
	}
	for _, row := range model.Rows {
		fmt.Fprintf(out, "%s: %d terms %s %g\n", row.Name, len(row.Terms), row.Rel, row.RHS)
	}
	return nil
}
