package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"basketcli/internal/aggregate"
	"basketcli/internal/config"
	"basketcli/internal/dataprocessing"
	"basketcli/internal/exporter"
	"basketcli/internal/infrastructure"
	"basketcli/internal/report"
	"basketcli/internal/validation"
)

func main() {
	basketsPath := flag.String("baskets", "", "path to basket_details.csv (overrides config)")
	customersPath := flag.String("customers", "", "path to customer_details.csv (overrides config)")
	outputDir := flag.String("out", "", "output directory for report artifacts (overrides config)")
	topN := flag.Int("top", 0, "number of products in the top ranking (overrides config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if *basketsPath != "" {
		cfg.Inputs.BasketsPath = *basketsPath
	}
	if *customersPath != "" {
		cfg.Inputs.CustomersPath = *customersPath
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}
	if *topN > 0 {
		cfg.Report.TopN = *topN
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	runID := infrastructure.NewRunID()
	ctx := infrastructure.WithRunID(context.Background(), runID)

	logger.InfoContext(ctx, "starting basket report run",
		"baskets", cfg.Inputs.BasketsPath,
		"customers", cfg.Inputs.CustomersPath,
		"out", cfg.Output.Dir)

	// Pre-flight: fail on missing inputs or an unwritable output directory
	// before any table is parsed.
	validator := validation.NewFileValidator(logger)
	for _, path := range []string{cfg.Inputs.BasketsPath, cfg.Inputs.CustomersPath} {
		if err := validator.ValidateInputTable(path); err != nil {
			logger.ErrorContext(ctx, "Input validation failed", "path", path, "error", err)
			os.Exit(1)
		}
	}
	if err := validator.ValidateOutputDirectory(cfg.Output.Dir); err != nil {
		logger.ErrorContext(ctx, "Output directory validation failed", "error", err)
		os.Exit(1)
	}

	// Stage 1: load.
	baskets, err := dataprocessing.LoadBaskets(cfg.Inputs.BasketsPath)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load basket table", "error", err)
		os.Exit(1)
	}
	customers, err := dataprocessing.LoadCustomers(cfg.Inputs.CustomersPath)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load customer table", "error", err)
		os.Exit(1)
	}

	// Stage 2: clean, join, derive.
	cleaned := dataprocessing.NewCleaner(logger, cfg.Clean.MaxValidAge).CleanCustomers(customers)

	joined, err := dataprocessing.Join(baskets, cleaned.Customers)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to join tables", "error", err)
		os.Exit(1)
	}
	enriched := dataprocessing.DeriveFeatures(joined)

	// Stage 3: aggregate.
	summary, err := aggregate.NewSummarizer(logger, cfg.Report.TopN).Summarize(ctx, enriched)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to compute aggregates", "error", err)
		os.Exit(1)
	}

	// The pipeline is complete; only now do artifacts get written. The
	// output directory already exists from the pre-flight check.
	if cfg.Output.CSVEnabled() {
		csvWriter := exporter.NewCSVWriter(cfg.Output.Dir)

		if err := csvWriter.WriteEnriched(cfg.Output.EnrichedFile, enriched); err != nil {
			logger.ErrorContext(ctx, "Failed to write enriched table", "error", err)
			os.Exit(1)
		}

		series := []struct {
			name      string
			keyHeader string
			values    []aggregate.KeyValue
		}{
			{"product sales", "product_id", summary.ProductSales},
			{"gender sales", "sex", summary.GenderSales},
			{"age group sales", "age_group", summary.AgeGroupSales},
			{"day of week sales", "day_of_week", summary.DaySales},
			{"tenure group sales", "tenure_group", summary.TenureSales},
			{"daily sales", "basket_date", summary.DailySales},
		}
		for _, s := range series {
			if err := csvWriter.WriteSeries(s.name, s.keyHeader, s.values); err != nil {
				logger.ErrorContext(ctx, "Failed to write aggregate series", "series", s.name, "error", err)
				os.Exit(1)
			}
		}

		if err := csvWriter.WriteGenderPivot("top_products_by_gender.csv", summary.GenderPivot); err != nil {
			logger.ErrorContext(ctx, "Failed to write gender pivot", "error", err)
			os.Exit(1)
		}
		if err := csvWriter.WriteCleaningOps("cleaning_operations.csv", cleaned.Operations); err != nil {
			logger.ErrorContext(ctx, "Failed to write cleaning operations", "error", err)
			os.Exit(1)
		}
	}

	if cfg.Output.ChartsEnabled() {
		chartWriter := exporter.NewChartWriter(logger)
		if err := chartWriter.WriteWorkbook(cfg.ArtifactPath(cfg.Output.ChartsFile), summary); err != nil {
			logger.ErrorContext(ctx, "Failed to write chart workbook", "error", err)
			os.Exit(1)
		}
	}

	narrated := report.Build(runID, summary, cleaned)

	if err := narrated.Save(cfg.ArtifactPath("basket_report.txt")); err != nil {
		logger.ErrorContext(ctx, "Failed to save report", "error", err)
		os.Exit(1)
	}
	if err := narrated.Render(os.Stdout); err != nil {
		logger.ErrorContext(ctx, "Failed to print report", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "basket report run completed",
		"rows", summary.TotalRows,
		"products", len(summary.ProductSales),
		"out", cfg.Output.Dir)
}
