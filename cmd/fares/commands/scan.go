package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/farewatch/fares-cli/internal/amadeus"
	"github.com/farewatch/fares-cli/internal/config"
	"github.com/farewatch/fares-cli/internal/logging"
	"github.com/farewatch/fares-cli/internal/output"
)

func ScanCmd() *cobra.Command {
	var (
		weeks  int
		out    string
		origin string
		dest   string
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan future weeks and write the best-combo report",
		Example: `  fares scan
  fares scan --weeks 4 --out /tmp/fares.json
  AMADEUS_ENV=secondary fares scan`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if weeks > 0 {
				cfg.Route.Weeks = weeks
			}
			if out != "" {
				cfg.Output = out
			}
			if origin != "" {
				cfg.Route.Origin = origin
			}
			if dest != "" {
				cfg.Route.Destination = dest
			}

			log := logging.New(cfg.LogLevel)
			defer log.Sync()

			creds, err := config.CredentialsFromEnv()
			if err != nil {
				output.JSONError("missing credentials", err.Error())
				return err
			}

			ctx := context.Background()
			client := buildClient(cfg, log)

			source, err := client.Authenticate(ctx, amadeus.Credentials{
				ClientID:     creds.ClientID,
				ClientSecret: creds.ClientSecret,
			}, creds.Environment)
			if err != nil {
				var authErr *amadeus.AuthError
				if errors.As(err, &authErr) {
					output.JSONError("authentication failed", authErr.Error())
				}
				return err
			}
			log.Info("authenticated", zap.String("source", source))

			pipeline, err := buildPipeline(cfg, client, log)
			if err != nil {
				return err
			}

			report, err := pipeline.Run(ctx)
			if err != nil {
				return err
			}
			report.DataSource = source
			report.SyntheticPrices = source == amadeus.EnvSecondary

			if err := output.WriteArtifact(cfg.Output, report); err != nil {
				return err
			}
			log.Info("report written", zap.String("path", cfg.Output))

			return output.JSON(scanSummary{
				Output:          cfg.Output,
				DataSource:      report.DataSource,
				SyntheticPrices: report.SyntheticPrices,
				Weeks:           len(report.Weeks),
				EmptyWeeks:      report.EmptyWeeks,
				DegradedFetches: report.DegradedFetches,
			})
		},
	}

	cmd.Flags().IntVar(&weeks, "weeks", 0, "Number of future weeks to scan (default from config)")
	cmd.Flags().StringVar(&out, "out", "", "Report output path (default from config)")
	cmd.Flags().StringVar(&origin, "origin", "", "Origin airport code (default from config)")
	cmd.Flags().StringVar(&dest, "dest", "", "Destination airport code (default from config)")

	return cmd
}

type scanSummary struct {
	Output          string `json:"output"`
	DataSource      string `json:"dataSource"`
	SyntheticPrices bool   `json:"syntheticPrices"`
	Weeks           int    `json:"weeks"`
	EmptyWeeks      int    `json:"emptyWeeks"`
	DegradedFetches int    `json:"degradedFetches"`
}
