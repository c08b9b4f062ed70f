// Command creditctl runs the credit engine's offline tasks against the
// configured database: bulk ingestion of the customer and loan workbooks,
// and a credit score report for every customer.
package main

import (
	"context"
	"credit-engine/internal/app"
	"credit-engine/internal/batch"
	"credit-engine/internal/config"
	"credit-engine/internal/infrastructure/logging"
	"credit-engine/internal/ingest"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"
)

const usage = `usage: creditctl <command> [flags]

commands:
  ingest   load customer_data.xlsx and/or loan_data.xlsx into the database
  scores   compute and print the credit score of every customer
`

var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "creditctl:", err)
		os.Exit(1)
	}
}

type ingestOptions struct {
	dataset      ingest.Dataset
	customerFile string
	loanFile     string
	sheet        string
}

type scoreOptions struct {
	workers int
}

func parseIngestFlags(args []string, stderr io.Writer) (*ingestOptions, error) {
	fs := pflag.NewFlagSet("ingest", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	dataset := fs.StringP("type", "t", string(ingest.DatasetAll), "dataset to ingest: customers, loans or all")
	opts := &ingestOptions{}
	fs.StringVar(&opts.customerFile, "customers", "", "customer workbook (overrides ingest.customerFile)")
	fs.StringVar(&opts.loanFile, "loans", "", "loan workbook (overrides ingest.loanFile)")
	fs.StringVar(&opts.sheet, "sheet", "", "sheet name (defaults to the active sheet)")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	ds, err := ingest.ParseDataset(*dataset)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	opts.dataset = ds
	return opts, nil
}

func parseScoreFlags(args []string, stderr io.Writer) (*scoreOptions, error) {
	fs := pflag.NewFlagSet("scores", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	opts := &scoreOptions{}
	fs.IntVarP(&opts.workers, "workers", "w", 0, "parallel scoring workers (overrides batch.scoreWorkers)")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	var (
		ingestOpts *ingestOptions
		scoreOpts  *scoreOptions
		err        error
	)
	switch cmd {
	case "ingest":
		ingestOpts, err = parseIngestFlags(rest, stderr)
	case "scores":
		scoreOpts, err = parseScoreFlags(rest, stderr)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", cmd, usage)
		return errUsage
	}
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := logging.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	if ingestOpts != nil {
		ingestOpts.apply(&cfg.Ingest)
	}

	pool, err := app.ConnectDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	components := app.Build(cfg, pool, app.Publishers{}, logger)

	if ingestOpts != nil {
		return runIngest(ctx, components.Ingester, ingestOpts.dataset, stdout)
	}
	workers := cfg.Batch.ScoreWorkers
	if scoreOpts.workers > 0 {
		workers = scoreOpts.workers
	}
	job := batch.NewRecalculateScoresJob(components.CustomerService, components.CreditService, workers, logger)
	return runScores(ctx, job, stdout)
}

func (o *ingestOptions) apply(cfg *config.IngestConfig) {
	if o.customerFile != "" {
		cfg.CustomerFile = o.customerFile
	}
	if o.loanFile != "" {
		cfg.LoanFile = o.loanFile
	}
	if o.sheet != "" {
		cfg.Sheet = o.sheet
	}
}

type scoreRunner interface {
	Run(ctx context.Context) (*batch.ScoreSummary, error)
}

func runIngest(ctx context.Context, ingester batch.Ingester, dataset ingest.Dataset, stdout io.Writer) error {
	reports, err := ingester.Run(ctx, dataset)
	for _, r := range reports {
		fmt.Fprintln(stdout, r.String())
		for _, rowErr := range r.Errors {
			fmt.Fprintf(stdout, "  %v\n", rowErr)
		}
	}
	return err
}

func runScores(ctx context.Context, job scoreRunner, stdout io.Writer) error {
	summary, err := job.Run(ctx)
	if summary != nil {
		printScores(stdout, summary)
	}
	return err
}

func printScores(w io.Writer, summary *batch.ScoreSummary) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CUSTOMER\tNAME\tSCORE\tBAND")
	for _, s := range summary.Scores {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", s.CustomerID, s.Name, s.Score, s.Band)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "\n%d customers scored, %d errors, took %s\n", len(summary.Scores), summary.Errors, summary.Duration.Round(time.Millisecond))
}
