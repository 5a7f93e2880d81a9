package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/user/a11y-scraper/internal/adapter/chromedp_fetcher"
	"github.com/user/a11y-scraper/internal/adapter/postgres"
	"github.com/user/a11y-scraper/internal/usecase"
	"github.com/user/a11y-scraper/pkg/config"
	"github.com/user/a11y-scraper/pkg/logger"
	"github.com/user/a11y-scraper/pkg/metrics"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "scraperctl",
		Short:   "Accessibility statement scraper control tool",
		Long:    "scraperctl manages the product catalogue and runs accessibility-statement scrapes against it without the HTTP service.",
		Version: version,
	}

	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(importLinksCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(countCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// deps holds the wiring shared by every subcommand.
type deps struct {
	cfg     *config.Config
	pool    *pgxpool.Pool
	catalog usecase.Catalog
}

func setup(ctx context.Context) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Init(os.Stderr, logger.ParseLevel(cfg.LogLevel))
	metrics.Init()

	pool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &deps{
		cfg:     cfg,
		pool:    pool,
		catalog: usecase.NewCatalog(postgres.NewProductRepo(pool)),
	}, nil
}

func (d *deps) close() { d.pool.Close() }

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the products table and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer d.close()

			if err := d.catalog.Init(cmd.Context()); err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}
			fmt.Println("Schema initialized")
			return nil
		},
	}
}

func importLinksCmd() *cobra.Command {
	var csvPath string
	cmd := &cobra.Command{
		Use:   "import-links",
		Short: "Import products and statement URLs from a CSV file",
		Long: `Import catalogue rows from a CSV file with the columns
"Product Name", "Portfolio" and "Statement URL". Rows without a URL are kept
with status no_url; rows without a product name are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer d.close()

			f, err := os.Open(csvPath)
			if err != nil {
				return fmt.Errorf("failed to open CSV file: %w", err)
			}
			defer f.Close()

			summary, err := d.catalog.ImportCSV(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d products (%d rows skipped)\n", summary.Imported, summary.Skipped)
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "path to the catalogue CSV file")
	cmd.MarkFlagRequired("csv")
	return cmd
}

func batchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch",
		Short: "Scrape every catalogue URL once",
		Long: `Walk the whole catalogue, group products sharing a statement URL and
fetch each unique URL exactly once, persisting extracted fields per product.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer d.close()

			fetcher, err := chromedp_fetcher.NewChromedpFetcher(d.cfg.ScrapeWorkers, d.cfg.PageLoadTimeout())
			if err != nil {
				return fmt.Errorf("failed to initialize browser fetcher: %w", err)
			}

			products := postgres.NewProductRepo(d.pool)
			// Batch mode walks the catalogue directly and never touches the
			// Redis queue.
			scraper := usecase.NewScraper(fetcher, products, nil)

			summary, err := scraper.RunBatch(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Scraped %d URLs: %d succeeded, %d failed, %d without content, %d products skipped (no URL)\n",
				summary.URLsScraped, summary.Succeeded, summary.Failed, summary.NoContent, summary.SkippedNoURL)
			return nil
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "List catalogue rows with a missing product name",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer d.close()

			invalid, err := d.catalog.Validate(cmd.Context())
			if err != nil {
				return err
			}
			if len(invalid) == 0 {
				fmt.Println("All catalogue rows have a product name")
				return nil
			}
			fmt.Printf("%d invalid rows:\n", len(invalid))
			for _, p := range invalid {
				fmt.Printf("  id=%d url=%q\n", p.ID, p.URL)
			}
			return nil
		},
	}
}

func countCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of catalogue rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer d.close()

			count, err := d.catalog.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(count)
			return nil
		},
	}
}

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Summarize how complete the scraped fields are",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer d.close()

			report, err := d.catalog.Report(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Products:            %d\n", report.TotalProducts)
			fmt.Printf("Successful scrapes:  %d\n", report.SuccessfulScrapes)
			fmt.Printf("With last review:    %d\n", report.LastReview)
			fmt.Printf("With WCAG version:   %d\n", report.WCAG)
			fmt.Printf("With compliance:     %d\n", report.ComplianceLevel)
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalogue as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer d.close()

			out := os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				out = f
			}
			return d.catalog.ExportJSON(cmd.Context(), out)
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "write JSON to this file instead of stdout")
	return cmd
}
