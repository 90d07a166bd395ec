package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/farewatch/fares-cli/cmd/fares/commands"
)

func main() {
	root := &cobra.Command{
		Use:   "fares",
		Short: "Farewatch – weekly round-trip fare scanner",
		Long:  "Scans a fixed route over a rolling window of future weeks and reduces the raw offers into the best round-trip combo per airline, with compact JSON output for the rendering layer.",
	}

	root.AddCommand(commands.ScanCmd())
	root.AddCommand(commands.DoctorCmd())
	root.AddCommand(commands.CarriersCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print fares CLI version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("fares v0.1.0")
		},
	}
}
