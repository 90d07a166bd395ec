package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/farewatch/fares-cli/internal/amadeus"
	"github.com/farewatch/fares-cli/internal/config"
	"github.com/farewatch/fares-cli/internal/logging"
	"github.com/farewatch/fares-cli/internal/output"
)

func DoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Validate credentials and provider reachability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := logging.New(cfg.LogLevel)
			defer log.Sync()

			report := doctorReport{Environment: "unknown"}

			creds, err := config.CredentialsFromEnv()
			if err != nil {
				report.Summary = err.Error()
				return output.JSON(report)
			}
			report.CredentialsSet = true
			report.Environment = creds.Environment

			client := buildClient(cfg, log)
			source, err := client.Authenticate(context.Background(), amadeus.Credentials{
				ClientID:     creds.ClientID,
				ClientSecret: creds.ClientSecret,
			}, creds.Environment)
			if err != nil {
				report.Summary = err.Error()
				return output.JSON(report)
			}

			report.Healthy = true
			report.DataSource = source
			report.Summary = fmt.Sprintf("authenticated against %s environment", source)
			return output.JSON(report)
		},
	}
}

type doctorReport struct {
	CredentialsSet bool   `json:"credentialsSet"`
	Environment    string `json:"environment"`
	DataSource     string `json:"dataSource,omitempty"`
	Healthy        bool   `json:"healthy"`
	Summary        string `json:"summary"`
}
