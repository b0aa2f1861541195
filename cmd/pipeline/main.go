package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/vfg2006/sales-pipeline/internal/app"
	"github.com/vfg2006/sales-pipeline/internal/config"
	"github.com/vfg2006/sales-pipeline/internal/domain"
	"github.com/vfg2006/sales-pipeline/internal/pipeline"
	"github.com/vfg2006/sales-pipeline/pkg/log"
	"github.com/vfg2006/sales-pipeline/pkg/utils"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("pipeline", pflag.ContinueOnError)
	flags.String("sales-a", "", "CSV with the sales of region A")
	flags.String("sales-b", "", "CSV with the sales of region B")
	flags.String("product-ids", "", "CSV with the product reference")
	flags.String("database", "", "database file (sqlite) or URL (postgres)")
	flags.String("driver", "", "database driver: sqlite or postgres")
	flags.String("order", "", "ARIMA order as p,d,q")
	flags.Int("steps", 0, "months to forecast")
	flags.Bool("save-model", true, "save the fitted model")
	flags.String("model-path", "", "where to save the fitted model")
	flags.String("plot-path", "", "where to save the forecast chart")
	flags.String("log-level", "", "log level")
	flags.String("log-file", "", "log file, empty for console only")
	preview := flags.String("preview", "", "print the first rows of a stage (clean, transform, enrich, total_sales, aggregation) and exit")
	limit := flags.Int("limit", 5, "rows printed by --preview")
	fromModel := flags.Bool("from-model", false, "forecast from the saved model without running the pipeline")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.NewConfig(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	closer, err := log.Setup(cfg.App.LogLevel, cfg.App.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer closer.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components := app.Build(cfg)

	if *fromModel {
		return forecastFromModel(ctx, components, cfg.Forecast.Steps)
	}

	if err := cfg.Validate(); err != nil {
		log.L.WithError(err).Error("Invalid configuration")
		return 2
	}

	if *preview != "" {
		return printPreview(ctx, components.Pipeline, *preview, *limit)
	}

	summary, err := components.Pipeline.Run(ctx)
	if summary != nil {
		printJSON(summary)
	}
	if err != nil {
		return 1
	}

	printForecast(summary.Forecast)
	return 0
}

func printPreview(ctx context.Context, p *pipeline.Pipeline, stage string, limit int) int {
	rows, err := p.Preview(ctx, stage, limit)
	if err != nil {
		log.L.WithError(err).WithField("stage", stage).Error("Preview failed")
		return 1
	}

	printJSON(rows)
	return 0
}

func forecastFromModel(ctx context.Context, components *app.Components, steps int) int {
	points, err := components.Forecaster.FromArtifact(ctx, steps)
	if err != nil {
		log.L.WithError(err).Error("Forecast from saved model failed")
		return 1
	}

	printForecast(&domain.ForecastResult{Forecast: points})
	return 0
}

func printForecast(result *domain.ForecastResult) {
	if result == nil {
		return
	}

	fmt.Println("Forecast:")
	for _, point := range result.Forecast {
		fmt.Printf("  %s  %12.2f\n", point.Period, utils.RoundWithTwoDecimalPlace(point.Value))
	}
}

func printJSON(v any) {
	out, err := utils.PrettyJson(v)
	if err != nil {
		log.L.WithError(err).Warn("error formatting output")
		return
	}
	fmt.Println(out)
}
