package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"carprice/internal/config"
	"carprice/internal/csvexport"
	"carprice/internal/domain"
	"carprice/internal/predictor"
	"carprice/internal/repository/memory"
	"carprice/internal/service"
)

const cliSession = "cli"

type predictOptions struct {
	File    string
	APIBase string
	Out     string
	XLSX    string
	MaxSize int
	Timeout time.Duration
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "carprice",
		Short:         "Car price prediction tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newPredictCmd())
	return root
}

func newPredictCmd() *cobra.Command {
	opts := predictOptions{}

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict prices for every car in a CSV file",
		Long: `Parse a car CSV file (either the CarName or the carbrand/cartype layout),
submit all rows to the prediction API in one request, and print the results.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.APIBase == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				opts.APIBase = cfg.Predictor.APIBaseURL
			}
			return runPredict(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "CSV file with car records (required)")
	cmd.Flags().StringVar(&opts.APIBase, "api", "", "prediction API base URL (default from CARPRICE_PREDICTOR_API_BASE_URL)")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "write results CSV to this path")
	cmd.Flags().StringVar(&opts.XLSX, "xlsx", "", "write results workbook to this path")
	cmd.Flags().IntVar(&opts.MaxSize, "max-size", 0, "maximum rows per file, 0 for no limit")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 60*time.Second, "prediction request timeout")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runPredict(ctx context.Context, opts predictOptions, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	contents, err := os.ReadFile(opts.File)
	if err != nil {
		return fmt.Errorf("reading %s: %w", opts.File, err)
	}
	contents = bytes.TrimPrefix(contents, csvexport.BOM)

	svc := service.NewBatchService(
		predictor.NewClientWithBaseURL(opts.APIBase, opts.Timeout),
		memory.NewBatchStore(time.Hour),
		nil,
		nil,
		service.BatchServiceConfig{MaxSize: opts.MaxSize},
	)

	state, err := svc.ProcessUpload(ctx, cliSession, opts.File, contents)
	if err != nil {
		if state != nil && state.Error != "" {
			return fmt.Errorf("%s: %w", state.Error, err)
		}
		return err
	}

	for _, w := range state.Warnings {
		fmt.Fprintf(stdout, "warning: line %d: %s value %q is not a number, using 0\n", w.Line, w.Column, w.Value)
	}
	printResults(stdout, state.Predictions)

	if opts.Out != "" {
		if err := writeFile(opts.Out, func(w io.Writer) error {
			if _, err := w.Write(csvexport.BOM); err != nil {
				return err
			}
			return svc.ExportResults(ctx, cliSession, w)
		}); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "wrote %s\n", opts.Out)
	}
	if opts.XLSX != "" {
		if err := writeFile(opts.XLSX, func(w io.Writer) error {
			return svc.ExportWorkbook(ctx, cliSession, w)
		}); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "wrote %s\n", opts.XLSX)
	}
	return nil
}

func printResults(out io.Writer, preds []domain.PredictionResult) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "car_ID\tpredicted_price\t")
	for i, p := range preds {
		fmt.Fprintf(tw, "%d\t%s\t\n", i+1, domain.FormatPriceWhole(p.PredictedPrice))
	}
	_ = tw.Flush()
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
