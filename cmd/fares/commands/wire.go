package commands

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/farewatch/fares-cli/internal/amadeus"
	"github.com/farewatch/fares-cli/internal/config"
	"github.com/farewatch/fares-cli/internal/core"
)

func buildClient(cfg *config.Config, log *zap.Logger) *amadeus.Client {
	return &amadeus.Client{
		PrimaryURL:   cfg.Provider.PrimaryURL,
		SecondaryURL: cfg.Provider.SecondaryURL,
		Currency:     cfg.Route.Currency,
		MaxResults:   cfg.Provider.MaxResults,
		Retries:      cfg.Provider.Retries,
		Log:          log,
	}
}

func buildPipeline(cfg *config.Config, searcher core.Searcher, log *zap.Logger) (*core.Pipeline, error) {
	weekday, err := cfg.Route.Weekday()
	if err != nil {
		return nil, fmt.Errorf("route config: %w", err)
	}

	return &core.Pipeline{
		Searcher: searcher,
		Carriers: core.NewCarrierMap(cfg.Carriers.Names, cfg.Carriers.Priority),
		Config: core.PipelineConfig{
			Origin:           cfg.Route.Origin,
			Destination:      cfg.Route.Destination,
			Currency:         cfg.Route.Currency,
			Weeks:            cfg.Route.Weeks,
			OutboundWeekday:  weekday,
			ReturnOffsetDays: cfg.Route.ReturnOffsetDays,
			OutboundMinHour:  cfg.Route.OutboundMinHour,
			ReturnMinHour:    cfg.Route.ReturnMinHour,
		},
		Log: log,
	}, nil
}
