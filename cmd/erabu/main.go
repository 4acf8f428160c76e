// Package main is the erabu CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/hyperjump/erabu/internal/catalog"
	"github.com/hyperjump/erabu/internal/cli"
	"github.com/hyperjump/erabu/internal/config"
	"github.com/hyperjump/erabu/internal/models"
	"github.com/hyperjump/erabu/internal/normalize"
	"github.com/hyperjump/erabu/internal/selector"
	"github.com/hyperjump/erabu/internal/server"
	"github.com/hyperjump/erabu/internal/source"
	"github.com/hyperjump/erabu/internal/watcher"
	"github.com/hyperjump/erabu/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/erabu/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used.
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// loadConfigOrDefaults is loadConfig for the client commands: when an explicit
// catalog is given, a missing config file is not an error.
func loadConfigOrDefaults(path, catalogPath, catalogFormat string) (*config.Config, error) {
	cfg, _, err := loadConfig(path)
	if err != nil {
		if catalogPath == "" {
			return nil, err
		}
		cfg = &config.Config{}
		config.ApplyDefaults(cfg)
	}
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}
	if catalogFormat != "" {
		cfg.Catalog.Format = catalogFormat
	}
	return cfg, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "select":
		runSelect()
	case "similar":
		runSimilar()
	case "stats":
		runStats()
	case "version", "--version", "-v":
		fmt.Printf("erabu version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (selections, catalog reloads, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.String("catalog_path", cfg.Catalog.Path),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Catalog.WatchOrDefault() {
		watchOpts := []watcher.WatcherOption{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(utils.Component(logger, "watcher")))
		}
		watchSvc := watcher.NewWatcher(
			cfg.Catalog.Path,
			func(path string) {
				if _, err := components.Loader.Reload(); err != nil {
					logger.Warn("catalog reload failed, keeping previous snapshot", zap.String("path", path), zap.Error(err))
				}
			},
			watchOpts...,
		)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
	}

	srv := server.NewServer(
		components.Selector,
		components.Store,
		components.Loader,
		&cfg.Server,
		utils.Component(logger, "http"),
	)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// selectOptions are the select subcommand flags.
type selectOptions struct {
	limit       int
	maxResults  int
	maxPrice    float64
	minPrice    float64
	vendor      string
	productType string
	tags        string
	excludeTags string
	all         bool
}

// buildSelectionRequest maps flags to a request. Zero numeric flags are left unset.
func buildSelectionRequest(query string, opts selectOptions) *models.SelectionRequest {
	req := &models.SelectionRequest{
		Query: query,
		Filters: models.SearchFilters{
			Vendor:      strings.TrimSpace(opts.vendor),
			ProductType: strings.TrimSpace(opts.productType),
		},
	}
	if opts.limit > 0 {
		req.Filters.Limit = models.Int(opts.limit)
	}
	if opts.maxResults > 0 {
		req.MaxResults = models.Int(opts.maxResults)
	}
	if opts.maxPrice > 0 {
		req.Filters.MaxPrice = models.Float(opts.maxPrice)
	}
	if opts.minPrice > 0 {
		req.Filters.MinPrice = models.Float(opts.minPrice)
	}
	if tags := normalize.ParseTags(opts.tags); len(tags) > 0 {
		req.Filters.IncludeTags = tags
	}
	if tags := normalize.ParseTags(opts.excludeTags); len(tags) > 0 {
		req.Filters.ExcludeTags = tags
	}
	if opts.all {
		req.Filters.AvailableOnly = models.Bool(false)
	}
	return req
}

// buildQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// argsReorder moves any flags (and their values) that appear after the query
// to the front of the slice so that flag.Parse() sees them. Go's flag package
// stops at the first non-flag argument.
func argsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func parseOutputFormat(s string) cli.OutputFormat {
	switch s {
	case "json":
		return cli.OutputJSON
	case "text":
		return cli.OutputText
	default:
		fmt.Printf("Unknown output format %q; use text or json\n", s)
		os.Exit(1)
	}
	return cli.OutputText
}

// clientFlags are shared by the select, similar and stats subcommands.
type clientFlags struct {
	configPath    *string
	catalogPath   *string
	catalogFormat *string
	serverURL     *string
	format        *string
}

func addClientFlags(fs *flag.FlagSet) clientFlags {
	return clientFlags{
		configPath:    fs.String("config", defaultConfigPath, "config file path"),
		catalogPath:   fs.String("catalog", "", "catalog file (overrides config)"),
		catalogFormat: fs.String("catalog-format", "", "catalog format: auto, raw, normalized or xlsx"),
		serverURL:     fs.String("server", "", "server URL (empty = load the catalog directly)"),
		format:        fs.String("format", "text", "output format: text or json"),
	}
}

// directSelector loads the catalog in process for client commands.
func directSelector(f clientFlags) *selector.Selector {
	cfg, err := loadConfigOrDefaults(*f.configPath, *f.catalogPath, *f.catalogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	return components.Selector
}

func runSelect() {
	fs := flag.NewFlagSet("select", flag.ExitOnError)
	flags := addClientFlags(fs)
	var opts selectOptions
	fs.IntVar(&opts.limit, "limit", 0, "number of products (default from config, max 20)")
	fs.IntVar(&opts.maxResults, "max-results", 0, "result cap used when -limit is not set (max 10)")
	fs.Float64Var(&opts.maxPrice, "max-price", 0, "maximum price")
	fs.Float64Var(&opts.minPrice, "min-price", 0, "minimum price")
	fs.StringVar(&opts.vendor, "vendor", "", "vendor substring")
	fs.StringVar(&opts.productType, "type", "", "product type substring")
	fs.StringVar(&opts.tags, "tags", "", "comma-separated tags; any must match")
	fs.StringVar(&opts.excludeTags, "exclude-tags", "", "comma-separated tags to exclude")
	fs.BoolVar(&opts.all, "all", false, "include unavailable products")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: erabu select [flags] [query]\n\nWithout a query, products are listed in catalog order.\n\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(argsReorder(os.Args[2:]))

	format := parseOutputFormat(*flags.format)
	req := buildSelectionRequest(buildQuery(fs.Args()), opts)

	var result *models.SelectionResult
	if *flags.serverURL != "" {
		result = new(models.SelectionResult)
		if err := postJSON(*flags.serverURL+"/api/v1/select", req, result); err != nil {
			fmt.Fprintf(os.Stderr, "Select failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		result = directSelector(flags).Select(req)
	}
	if err := cli.WriteSelection(os.Stdout, result, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runSimilar() {
	fs := flag.NewFlagSet("similar", flag.ExitOnError)
	flags := addClientFlags(fs)
	limit := fs.Int("limit", 0, "number of similar products (default from config)")
	_ = fs.Parse(argsReorder(os.Args[2:]))

	if fs.NArg() != 1 {
		fmt.Println("Usage: erabu similar [flags] <product-id>")
		os.Exit(1)
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		fmt.Printf("Invalid product id %q\n", fs.Arg(0))
		os.Exit(1)
	}
	format := parseOutputFormat(*flags.format)

	var cards []models.ProductCard
	if *flags.serverURL != "" {
		target := fmt.Sprintf("%s/api/v1/products/%d/similar", *flags.serverURL, id)
		if *limit > 0 {
			target += "?" + url.Values{"limit": {strconv.Itoa(*limit)}}.Encode()
		}
		var out struct {
			Products []models.ProductCard `json:"products"`
		}
		if err := getJSON(target, &out); err != nil {
			fmt.Fprintf(os.Stderr, "Similar failed: %v\n", err)
			os.Exit(1)
		}
		cards = out.Products
	} else {
		cards = directSelector(flags).SimilarProducts(id, *limit)
	}
	if err := cli.WriteCards(os.Stdout, cards, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runStats() {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	flags := addClientFlags(fs)
	_ = fs.Parse(os.Args[2:])
	format := parseOutputFormat(*flags.format)

	var stats models.CatalogStats
	if *flags.serverURL != "" {
		var out struct {
			TotalProducts int      `json:"total_products"`
			Vendors       []string `json:"vendors"`
			ProductTypes  []string `json:"product_types"`
			PriceRange    struct {
				Min *float64 `json:"min"`
				Max *float64 `json:"max"`
			} `json:"price_range"`
		}
		if err := getJSON(*flags.serverURL+"/api/v1/stats", &out); err != nil {
			fmt.Fprintf(os.Stderr, "Stats failed: %v\n", err)
			os.Exit(1)
		}
		stats = models.CatalogStats{
			TotalProducts: out.TotalProducts,
			Vendors:       out.Vendors,
			ProductTypes:  out.ProductTypes,
			PriceRange:    priceRangeFromJSON(out.PriceRange.Min, out.PriceRange.Max),
		}
	} else {
		stats = directSelector(flags).CatalogStats()
	}
	if err := cli.WriteStats(os.Stdout, stats, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// priceRangeFromJSON restores the infinite bounds that the API encodes as null.
func priceRangeFromJSON(lo, hi *float64) models.PriceRange {
	r := models.PriceRange{Min: math.Inf(1), Max: math.Inf(-1)}
	if lo != nil {
		r.Min = *lo
	}
	if hi != nil {
		r.Max = *hi
	}
	return r
}

func postJSON(target string, body, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := http.Post(target, "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	return decodeResponse(resp, out)
}

func getJSON(target string, out interface{}) error {
	resp, err := http.Get(target)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Components holds the wired runtime objects.
type Components struct {
	Store    *catalog.Store
	Loader   *source.Loader
	Selector *selector.Selector
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store := catalog.NewStore()
	loader := source.NewLoader(cfg.Catalog.Path, cfg.Catalog.Format, store, utils.Component(logger, "catalog"))
	if _, err := loader.Reload(); err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return &Components{
		Store:    store,
		Loader:   loader,
		Selector: selector.NewSelector(store, &cfg.Selection, utils.Component(logger, "selector")),
	}, nil
}

func printUsage() {
	fmt.Println(`erabu - Catalog selection engine for LLM product recommendations

Usage:
  erabu server [flags]            Start the HTTP server
  erabu select [flags] [query]    Select products (no query = browse in catalog order)
  erabu similar [flags] <id>      Show products similar to a product
  erabu stats [flags]             Show catalog statistics
  erabu version                   Show version
  erabu help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/erabu/config.yaml)
  --debug            Enable debug logging

Client Flags (select, similar, stats):
  --config string           Config file path
  --catalog string          Catalog file, overrides catalog.path from config
  --catalog-format string   auto, raw, normalized or xlsx
  --server string           Server URL; empty loads the catalog directly
  --format string           Output format: text or json (default: text)

Select Flags:
  --limit int            Number of products (clamped to 1..20)
  --max-results int      Result cap when --limit is unset (max 10)
  --max-price float      Maximum price
  --min-price float      Minimum price
  --vendor string        Vendor substring
  --type string          Product type substring
  --tags string          Comma-separated tags, any must match
  --exclude-tags string  Comma-separated tags to exclude
  --all                  Include unavailable products

Examples:
  erabu server
  erabu select aluminum ladder under 200
  erabu select --catalog products.xlsx --vendor acme --limit 5
  erabu select --format json "escalera telescopica"
  erabu similar --limit 3 1001
  erabu stats --server http://localhost:8080`)
}
