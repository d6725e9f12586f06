package main

import (
	"context"

	"go.uber.org/zap"

	"go-chi-compute/internal/buildinfo"
	"go-chi-compute/internal/calculator"
	"go-chi-compute/internal/compute"
	"go-chi-compute/internal/config"
	"go-chi-compute/internal/observability"
	"go-chi-compute/internal/processor"
	"go-chi-compute/internal/server"
)

type shutdownFunc func(context.Context) error

// initTelemetry starts the OTLP exporters enabled in cfg. The returned
// functions flush them, in reverse start order.
func initTelemetry(ctx context.Context, cfg *config.Config, info buildinfo.Info) ([]shutdownFunc, error) {
	res, err := observability.NewResource(ctx, cfg.Service.Name, info.Version)
	if err != nil {
		return nil, err
	}

	var shutdowns []shutdownFunc

	if cfg.Telemetry.Traces {
		shutdown, err := observability.InitTracing(ctx, res)
		if err != nil {
			return shutdowns, err
		}
		shutdowns = append(shutdowns, shutdown)
	}

	if cfg.Telemetry.Metrics {
		shutdown, err := observability.InitMetrics(ctx, res)
		if err != nil {
			return shutdowns, err
		}
		shutdowns = append(shutdowns, shutdown)
	}

	if cfg.Telemetry.Logs {
		shutdown, err := observability.InitLogging(ctx, res, info.Name)
		if err != nil {
			return shutdowns, err
		}
		shutdowns = append(shutdowns, shutdown)
	}

	return shutdowns, nil
}

// initServices builds the two engines and their HTTP handlers. Domain
// instruments are created here, after the meter provider is installed.
func initServices(cfg *config.Config, info buildinfo.Info) (server.Services, error) {
	calc := compute.NewCalculator(cfg.Engines.CalculatorName,
		compute.WithLogger(observability.Logger.Named("calculator")),
	)
	proc := compute.NewProcessor(cfg.Engines.ProcessorName,
		compute.WithLogger(observability.Logger.Named("processor")),
	)

	calcHandler, err := calculator.NewHandler(calc)
	if err != nil {
		return server.Services{}, err
	}

	procHandler, err := processor.NewHandler(proc)
	if err != nil {
		return server.Services{}, err
	}

	observability.Logger.Info("engines ready",
		zap.String("calculator", calc.Name()),
		zap.String("processor", proc.Name()),
	)

	return server.Services{
		Calculator: calcHandler,
		Processor:  procHandler,
		Build:      info,
		CORS: server.CORS{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			MaxAge:         cfg.CORS.MaxAge,
		},
	}, nil
}
