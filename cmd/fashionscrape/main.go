package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adeelraza/go-scrape-fashion/config"
	"github.com/adeelraza/go-scrape-fashion/models"
	"github.com/adeelraza/go-scrape-fashion/output"
	"github.com/adeelraza/go-scrape-fashion/registry"
	"github.com/adeelraza/go-scrape-fashion/scrape"
)

func main() {
	defaultCfg := config.DefaultConfig()
	concurrentDefault := defaultCfg.MaxConcurrent
	if value, ok, err := config.EnvInt("FASHIONSCRAPE_CONCURRENT"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid FASHIONSCRAPE_CONCURRENT: %v\n", err)
		os.Exit(1)
	} else if ok {
		concurrentDefault = value
	}
	outputDefault := defaultCfg.OutputFile
	if value, ok := config.EnvString("FASHIONSCRAPE_OUTPUT"); ok {
		outputDefault = value
	}
	registryDefault := ""
	if value, ok := config.EnvString("FASHIONSCRAPE_REGISTRY"); ok {
		registryDefault = value
	}

	terms := flag.String("terms", "", "Comma-separated search terms")
	category := flag.String("category", "", "Search a named category instead of explicit terms")
	brand := flag.String("brand", "", "Restrict the search to a single registered brand")
	maxTotal := flag.Int("max", 12, "Maximum products to return")
	maxPerBrand := flag.Int("max-per-brand", 3, "Maximum products per brand on multi-brand queries")
	priceRange := flag.String("price-range", "", "Optional price band filter (budget, mid_range, premium, luxury)")
	delayMs := flag.Int("delay", int(defaultCfg.Delay/time.Millisecond), "Minimum delay between requests (milliseconds)")
	maxRetries := flag.Int("max-retries", defaultCfg.MaxRetries, "Attempts per URL")
	queryTimeoutS := flag.Int("query-timeout", int(defaultCfg.QueryTimeout/time.Second), "Whole-query deadline (seconds)")
	concurrent := flag.Int("concurrent", concurrentDefault, "Concurrent scrape workers")
	registryFile := flag.String("registry", registryDefault, "JSON site registry override")
	outputFile := flag.String("output", outputDefault, "Output file path, or - for stdout")
	outputFormat := flag.String("format", defaultCfg.OutputFormat, "Output format: json or csv")
	metricsAddr := flag.String("metrics-addr", "", "Prometheus metrics listen address (e.g. :9090)")
	verbose := flag.Bool("v", false, "Enable verbose logging")

	flag.Parse()

	logger, level := newLogger(*verbose)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level.Level())

	cfg := defaultCfg
	cfg.Delay = time.Duration(*delayMs) * time.Millisecond
	cfg.MaxRetries = *maxRetries
	cfg.QueryTimeout = time.Duration(*queryTimeoutS) * time.Second
	cfg.MaxConcurrent = *concurrent
	cfg.RegistryFile = *registryFile
	cfg.OutputFile = *outputFile
	cfg.OutputFormat = strings.ToLower(*outputFormat)
	cfg.Verbose = *verbose
	cfg.MetricsAddr = *metricsAddr
	if cfg.OutputFile == "-" {
		// Validation wants a real path; stdout bypasses the writers.
		cfg.OutputFile = os.DevNull
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	searchTerms := splitTerms(*terms)
	if len(searchTerms) == 0 && *category == "" {
		fmt.Fprintln(os.Stderr, "nothing to search: pass -terms or -category")
		flag.Usage()
		os.Exit(2)
	}

	reg := registry.Default()
	if cfg.RegistryFile != "" {
		loaded, err := registry.LoadFile(cfg.RegistryFile)
		if err != nil {
			slog.Error("loading registry", slog.Any("error", err))
			os.Exit(1)
		}
		reg = loaded
	}

	scraper, err := scrape.New(cfg, reg)
	if err != nil {
		slog.Error("initialising scraper", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		metricsServer = &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: promhttp.HandlerFor(scraper.Metrics().Registry, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", slog.Any("error", err))
			}
		}()
		slog.Info("metrics server enabled", slog.String("addr", cfg.MetricsAddr))
	}

	start := time.Now()
	var products []*models.Product
	switch {
	case *brand != "":
		products = scraper.ScrapeBrandProducts(*brand, searchTerms, *maxTotal)
	case *category != "":
		products = scraper.SearchByCategory(ctx, *category, *maxTotal)
	default:
		products = scraper.ScrapeMultipleBrands(ctx, searchTerms, *maxPerBrand, *maxTotal)
	}
	duration := time.Since(start)

	if *priceRange != "" {
		products = scrape.FilterProductsByPrice(products, *priceRange)
	}

	if err := emit(products, *outputFile, cfg.OutputFormat); err != nil {
		slog.Error("writing output", slog.Any("error", err))
		os.Exit(1)
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("metrics server shutdown failed", slog.Any("error", err))
		}
		cancel()
	}

	printSummary(products, scraper.Stats(), duration, *outputFile)
}

func splitTerms(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	terms := make([]string, 0, len(parts))
	for _, part := range parts {
		if term := strings.TrimSpace(part); term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

func emit(products []*models.Product, outputFile, format string) error {
	if outputFile == "-" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(products)
	}

	var writer output.Writer
	var err error
	switch format {
	case "csv":
		writer, err = output.NewCSVWriter(outputFile)
	default:
		writer, err = output.NewJSONWriter(outputFile)
	}
	if err != nil {
		return err
	}
	if err := writer.Write(products); err != nil {
		writer.Close()
		return err
	}
	return writer.Close()
}

func printSummary(products []*models.Product, stats models.Stats, duration time.Duration, outputFile string) {
	separator := "--------------------------------------------------"
	fmt.Println("\n" + separator)
	fmt.Println("Scrape complete")
	fmt.Printf("  Products:      %d\n", len(products))
	fmt.Printf("  Requests:      %d\n", stats.TotalRequests)
	fmt.Printf("  Failed:        %d\n", stats.FailedRequests)
	fmt.Printf("  Success rate:  %.2f%%\n", stats.SuccessRate*100)
	if len(stats.FailedURLs) > 0 {
		fmt.Printf("  Failed URLs:   %v\n", stats.FailedURLs)
	}
	fmt.Printf("  Duration:      %v\n", duration)
	if outputFile != "-" {
		fmt.Printf("  Output file:   %s\n", outputFile)
	}
	fmt.Println(separator)
}

func newLogger(verbose bool) (*slog.Logger, *slog.LevelVar) {
	level := &slog.LevelVar{}
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stderr) {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	return slog.New(handler), level
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
