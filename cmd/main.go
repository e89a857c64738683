package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/nrohr/tables/internal/config"
	"github.com/nrohr/tables/internal/export"
	"github.com/nrohr/tables/internal/report"
	"github.com/spf13/cobra"
)

var (
	configFile  string
	symbolsStr  string
	symbolFile  string
	source      string
	fromDate    string
	windowStart string
	windowEnd   string
	outputDir   string
	themeName   string
	pageSize    int
	printTable  bool
	verbose     bool
	version     bool

	exportFormat string
	exportOut    string
	serveAddr    string
)

var versionString = "0.1.0"

func main() {
	// Define the root command
	rootCmd := &cobra.Command{
		Use:   "tables",
		Short: "A utility to build daily stock return tables",
		Long: `A standalone utility that fetches historical daily stock prices for a set
of ticker symbols, computes daily returns from adjusted closing prices, and
renders the result as a static HTML table and an interactive HTML table.`,
		Run: runRootCommand,
	}

	// Define flags shared by all commands
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "config.yaml", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&symbolsStr, "symbols", "", "Comma-separated list of ticker symbols")
	rootCmd.PersistentFlags().StringVar(&symbolFile, "symbol-file", "", "File containing symbols, one per line")
	rootCmd.PersistentFlags().StringVar(&source, "source", "", "Price source (yahoo, kite)")
	rootCmd.PersistentFlags().StringVar(&fromDate, "from", "", "Fetch start date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&windowStart, "window-start", "", "Report window start date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&windowEnd, "window-end", "", "Report window end date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "Output directory for rendered documents")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Interactive table theme (light, dark, slate)")
	rootCmd.PersistentFlags().IntVar(&pageSize, "page-size", 0, "Interactive table rows per page")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.Flags().BoolVar(&printTable, "print", false, "Print the table to the terminal as well")
	rootCmd.Flags().BoolVar(&version, "version", false, "Print version information")

	// Define the export command
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Run the pipeline and write the computed table as CSV or Parquet",
		Run:   runExportCommand,
	}
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format (csv, parquet)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (defaults to stocks.<format> in the output directory)")

	// Define the serve command
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the pipeline and serve the rendered documents over HTTP",
		Run:   runServeCommand,
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)

	// Execute the command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runRootCommand(cmd *cobra.Command, args []string) {
	// Check for version flag
	if version {
		fmt.Printf("tables version %s\n", versionString)
		return
	}

	// 1. Load configuration and apply flag overrides
	cfg, err := loadAndOverride()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	// 2. Create a context cancelled by OS signals
	ctx, cancel := signalContext()
	defer cancel()

	// 3. Run the pipeline: fetch, compute returns, window
	table, err := buildTable(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to build table: %v", err)
	}

	// 4. Render both documents from the same table
	if err := renderArtifacts(cfg, table); err != nil {
		log.Fatalf("Failed to render documents: %v", err)
	}

	// 5. Optionally print a terminal preview
	if printTable {
		report.PrintTable(os.Stdout, table, cfg.Report.DateLayout, cfg.Report.Currency)
	}

	log.Println("Report generation completed successfully")
}

func runExportCommand(cmd *cobra.Command, args []string) {
	cfg, err := loadAndOverride()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	table, err := buildTable(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to build table: %v", err)
	}

	out := exportOut
	if out == "" {
		out = filepath.Join(cfg.Report.OutputDir, "stocks."+exportFormat)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	rows := export.FromTable(table)
	switch exportFormat {
	case "csv":
		err = export.WriteCSV(out, rows)
	case "parquet":
		err = export.WriteParquet(out, rows)
	default:
		log.Fatalf("Unknown export format: %s (available: csv, parquet)", exportFormat)
	}
	if err != nil {
		log.Fatalf("Failed to export table: %v", err)
	}
}

func runServeCommand(cmd *cobra.Command, args []string) {
	cfg, err := loadAndOverride()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	table, err := buildTable(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to build table: %v", err)
	}
	if err := renderArtifacts(cfg, table); err != nil {
		log.Fatalf("Failed to render documents: %v", err)
	}

	// Serve the rendered output directory
	server := &http.Server{
		Addr:    serveAddr,
		Handler: http.FileServer(http.Dir(cfg.Report.OutputDir)),
	}
	go func() {
		<-ctx.Done()
		server.Close()
	}()

	log.Printf("Serving %s on %s (static: /stocks.html, interactive: /stocks_interactive.html)",
		cfg.Report.OutputDir, serveAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}

// loadAndOverride loads the configuration file and applies command-line
// flag overrides on top (flags > environment > file > defaults)
func loadAndOverride() (config.Config, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return config.Config{}, err
	}

	if verbose {
		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	}

	// Override configuration with command-line flags
	if symbolsStr != "" {
		var symbols []string
		for _, s := range strings.Split(symbolsStr, ",") {
			if s = strings.TrimSpace(s); s != "" {
				symbols = append(symbols, s)
			}
		}
		cfg.Data.Symbols = symbols
		cfg.Data.SymbolFile = ""
	}
	if symbolFile != "" {
		cfg.Data.SymbolFile = symbolFile
	}
	if source != "" {
		cfg.Data.Source = source
	}
	if fromDate != "" {
		cfg.Data.From = fromDate
	}
	if windowStart != "" {
		cfg.Data.WindowStart = windowStart
	}
	if windowEnd != "" {
		cfg.Data.WindowEnd = windowEnd
	}
	if outputDir != "" {
		cfg.Report.OutputDir = outputDir
	}
	if themeName != "" {
		cfg.Report.Theme = themeName
	}
	if pageSize > 0 {
		cfg.Report.PageSize = pageSize
	}

	return cfg, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigchan
		log.Printf("Received signal %v, initiating shutdown...", sig)
		cancel()
	}()

	return ctx, cancel
}
