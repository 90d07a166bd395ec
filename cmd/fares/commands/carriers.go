package commands

import (
	"github.com/spf13/cobra"

	"github.com/farewatch/fares-cli/internal/config"
	"github.com/farewatch/fares-cli/internal/output"
)

func CarriersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "carriers",
		Short: "Show the effective carrier identity map and priority order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			return output.JSON(carrierReport{
				Names:    cfg.Carriers.Names,
				Priority: cfg.Carriers.Priority,
			})
		},
	}
}

type carrierReport struct {
	Names    map[string]string `json:"names"`
	Priority []string          `json:"priority"`
}
