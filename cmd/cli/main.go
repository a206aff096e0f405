package main

import (
	"context"
	"encoding/json"
	"errors"
	"etfoverlap/api"
	"etfoverlap/cmd"
	"etfoverlap/internal/domain"
	"etfoverlap/internal/logger"
	"etfoverlap/internal/service"
	"etfoverlap/internal/util"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// errReported means the failure was already written to stdout
var errReported = errors.New("reported")

type cliOptions struct {
	isin1       string
	isin2       string
	multi       []string
	expireCache bool
	jsonOutput  bool
	csvPath     string
	style       string
}

type cli struct {
	initialize    func() (*api.ApiHandler, error)
	reportService service.ReportService
	stdout        io.Writer
	opts          cliOptions

	handler *api.ApiHandler
}

// newRootCommand builds the cli; the returned func releases whatever the
// command initialized and must run after Execute whatever its outcome
func newRootCommand(initialize func() (*api.ApiHandler, error), stdout io.Writer) (*cobra.Command, func()) {
	c := &cli{
		initialize: initialize,
		stdout:     stdout,
	}

	root := &cobra.Command{
		Use:           "etf-overlap",
		Short:         "Analyze holdings overlap between ETFs",
		Example:       "  etf-overlap --isin1 IE00B4L5Y983 --isin2 IE00B5BMR087\n  etf-overlap --multi IE00B4L5Y983,IE00B5BMR087,IE00B3WJKG14 --json",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, args []string) error {
			c.reportService = service.NewReportService(c.opts.style, 0)
			handler, err := c.initialize()
			if err != nil {
				return err
			}
			c.handler = handler
			return nil
		},
		RunE: c.runAnalysis,
	}

	flags := root.Flags()
	flags.StringVar(&c.opts.isin1, "isin1", "", "first ETF ISIN for a two-fund comparison")
	flags.StringVar(&c.opts.isin2, "isin2", "", "second ETF ISIN for a two-fund comparison")
	flags.StringSliceVar(&c.opts.multi, "multi", nil, "comma separated ISINs for a multi-fund analysis")
	flags.BoolVar(&c.opts.expireCache, "expire-cache", false, "expire the whole holdings cache before running")
	flags.StringVar(&c.opts.csvPath, "csv", "", "write the stock overlap table of a multi-fund analysis to this file")
	root.PersistentFlags().BoolVar(&c.opts.jsonOutput, "json", false, "print JSON instead of a rendered report")
	root.PersistentFlags().StringVar(&c.opts.style, "style", "", "glamour style for rendered reports (dark, light, notty); detected when empty")

	root.AddCommand(c.newCacheCommand())

	return root, c.close
}

func (c *cli) close() {
	if c.handler != nil {
		cmd.CloseDependencies(c.handler)
		c.handler = nil
	}
}

func (c *cli) context() context.Context {
	lg := logger.FromContext(context.Background())
	if c.opts.jsonOutput {
		lg = logger.Nop()
	}
	return logger.WithLogger(context.Background(), lg)
}

func (c *cli) runAnalysis(command *cobra.Command, args []string) error {
	ctx := c.context()
	app := c.handler.OverlapAnalysisApp

	if c.opts.expireCache {
		if err := app.ExpireCache(ctx, nil, true); err != nil {
			return c.fail(err)
		}
		if !c.opts.jsonOutput {
			fmt.Fprintln(c.stdout, "Cache expired.")
		}
	}

	switch {
	case len(c.opts.multi) > 0:
		return c.runMulti(ctx)
	case c.opts.isin1 != "" || c.opts.isin2 != "":
		if c.opts.isin1 == "" || c.opts.isin2 == "" {
			return fmt.Errorf("--isin1 and --isin2 must be used together")
		}
		return c.runCompare(ctx)
	case c.opts.expireCache:
		return nil
	}
	return command.Help()
}

func (c *cli) runMulti(ctx context.Context) error {
	if len(c.opts.multi) < 2 {
		return c.fail(&domain.InsufficientInputError{Resolved: len(c.opts.multi)})
	}

	result, err := c.handler.OverlapAnalysisApp.Analyze(ctx, c.opts.multi)
	if err != nil {
		return c.fail(err)
	}
	report := domain.NewAnalysisReport(*result)

	if c.opts.csvPath != "" {
		f, err := os.Create(c.opts.csvPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", c.opts.csvPath, err)
		}
		defer f.Close()
		if err := c.reportService.RenderStockOverlapCsv(report, f); err != nil {
			return err
		}
	}

	if c.opts.jsonOutput {
		return c.printJson(report)
	}
	return c.printMarkdown(c.reportService.RenderMarkdown(report))
}

func (c *cli) runCompare(ctx context.Context) error {
	result, err := c.handler.OverlapAnalysisApp.Compare(ctx, c.opts.isin1, c.opts.isin2)
	if err != nil {
		return c.fail(err)
	}
	report, err := domain.NewComparisonReport(*result)
	if err != nil {
		return c.fail(err)
	}

	if c.opts.jsonOutput {
		return c.printJson(report)
	}
	return c.printMarkdown(c.reportService.RenderComparisonMarkdown(*report))
}

func (c *cli) newCacheCommand() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the holdings cache",
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "inspect <isin>",
		Short: "Show the cached record for a fund",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			inspection, err := c.handler.OverlapAnalysisApp.InspectCache(c.context(), args[0])
			if err != nil {
				return c.fail(err)
			}
			if inspection == nil {
				return c.fail(fmt.Errorf("no cache record for %s", args[0]))
			}
			record := inspection.Record
			if c.opts.jsonOutput {
				return c.printJson(api.InspectCacheResponse{
					Isin:              record.Key,
					Name:              record.Snapshot.FundName,
					TotalHoldings:     len(record.Snapshot.Holdings),
					HoldingsAvailable: record.Snapshot.HoldingsAvailable,
					FetchedAt:         record.Snapshot.FetchedAt,
					StoredAt:          record.StoredAt,
					Stale:             inspection.Stale,
				})
			}
			fmt.Fprintf(c.stdout, "%s (%s)\n", record.Snapshot.FundName, record.Key)
			fmt.Fprintf(c.stdout, "Holdings: %d\n", len(record.Snapshot.Holdings))
			fmt.Fprintf(c.stdout, "Stored:   %s\n", record.StoredAt.Format(time.RFC3339))
			fmt.Fprintf(c.stdout, "Stale:    %t\n", inspection.Stale)
			return nil
		},
	})

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "expire [isin...]",
		Short: "Expire cached records; expires everything when no isin is given",
		RunE: func(command *cobra.Command, args []string) error {
			if err := c.handler.OverlapAnalysisApp.ExpireCache(c.context(), args, len(args) == 0); err != nil {
				return c.fail(err)
			}
			if !c.opts.jsonOutput {
				fmt.Fprintln(c.stdout, "Cache expired.")
			}
			return nil
		},
	})

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Delete records older than the cache ttl",
		RunE: func(command *cobra.Command, args []string) error {
			purged, err := c.handler.OverlapAnalysisApp.PurgeStaleCache(c.context())
			if err != nil {
				return c.fail(err)
			}
			if c.opts.jsonOutput {
				return c.printJson(map[string]int64{"purged": purged})
			}
			fmt.Fprintf(c.stdout, "Purged %d stale record(s).\n", purged)
			return nil
		},
	})

	return cacheCmd
}

// fail writes the error report in json mode and passes the error on otherwise
func (c *cli) fail(err error) error {
	if !c.opts.jsonOutput {
		return err
	}
	if perr := c.printJson(domain.NewErrorReport(err)); perr != nil {
		return perr
	}
	return errReported
}

func (c *cli) printJson(v interface{}) error {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.stdout, string(bytes))
	return err
}

func (c *cli) printMarkdown(markdown string) error {
	out, err := c.reportService.RenderTerminal(markdown)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(c.stdout, out)
	return err
}

func main() {
	initialize := func() (*api.ApiHandler, error) {
		cfg, err := util.LoadConfig()
		if err != nil {
			return nil, err
		}
		return cmd.InitializeDependencies(*cfg)
	}

	root, closeDependencies := newRootCommand(initialize, os.Stdout)
	err := root.Execute()
	closeDependencies()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
