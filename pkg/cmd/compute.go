package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/c9s/bbands/pkg/cmd/cmdutil"
	"github.com/c9s/bbands/pkg/datasource"
	"github.com/c9s/bbands/pkg/indicator"
	"github.com/c9s/bbands/pkg/metrics"
	"github.com/c9s/bbands/pkg/style"
	"github.com/c9s/bbands/pkg/types"
)

func init() {
	cmdutil.BOLLFlags(ComputeCmd.Flags())
	ComputeCmd.Flags().Bool("json", false, "print the series as json")
	ComputeCmd.Flags().Bool("incremental", false, "compute with the streaming calculator instead of the batch one")
	ComputeCmd.Flags().Int("tail", 0, "only print the last N rows, 0 prints all rows")
	ComputeCmd.Flags().Bool("no-color", false, "disable the colored table")
	RootCmd.AddCommand(ComputeCmd)
}

var ComputeCmd = &cobra.Command{
	Use:   "compute [files...]",
	Short: "compute bollinger bands over bar files (.json, .csv, .mt.csv or a csv directory)",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		params, err := cmdutil.ApplyBOLLFlags(cmd.Flags(), userConfig.Bollinger)
		if err != nil {
			return err
		}

		if len(args) == 0 {
			args = []string{userConfig.Server.DataFile}
		}

		incremental, err := cmd.Flags().GetBool("incremental")
		if err != nil {
			return err
		}

		printJSON, err := cmd.Flags().GetBool("json")
		if err != nil {
			return err
		}

		tail, err := cmd.Flags().GetInt("tail")
		if err != nil {
			return err
		}

		noColor, err := cmd.Flags().GetBool("no-color")
		if err != nil {
			return err
		}

		reports, err := computeFiles(ctx, args, params, incremental)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if printJSON {
			return writeReportsJSON(out, reports, tail)
		}

		for _, report := range reports {
			writeReportTable(out, report, tail, !noColor)
		}

		return nil
	},
}

type computeReport struct {
	File   string               `json:"file"`
	Params indicator.BOLLParams `json:"params"`
	Bars   []types.Bar          `json:"bars"`

	*indicator.BOLLResult
}

// computeFiles loads and computes every file concurrently, keeping the order of files.
func computeFiles(ctx context.Context, files []string, params indicator.BOLLParams, incremental bool) ([]*computeReport, error) {
	reports := make([]*computeReport, len(files))

	eg, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		eg.Go(func() error {
			bars, err := datasource.NewFileLoader(file).LoadBars(ctx)
			if err != nil {
				return err
			}

			startTime := time.Now()

			var result *indicator.BOLLResult
			if incremental {
				result, err = indicator.ComputeBOLLIncremental(bars, params)
			} else {
				result, err = indicator.ComputeBOLL(bars, params)
			}

			metrics.ObserveComputation("cli", len(bars), startTime, err)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}

			log.Debugf("%s: computed %d bars in %s", file, len(bars), time.Since(startTime))

			reports[i] = &computeReport{
				File:       file,
				Params:     params,
				Bars:       bars,
				BOLLResult: result,
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}

// tailReport trims the report to the last n rows, n <= 0 keeps all rows.
func tailReport(report *computeReport, n int) *computeReport {
	size := len(report.Bars)
	if n <= 0 || n >= size {
		return report
	}

	from := size - n
	return &computeReport{
		File:   report.File,
		Params: report.Params,
		Bars:   report.Bars[from:],
		BOLLResult: &indicator.BOLLResult{
			Basis:  report.Basis[from:],
			Upper:  report.Upper[from:],
			Lower:  report.Lower[from:],
			StdDev: report.StdDev[from:],
		},
	}
}

func writeReportsJSON(w io.Writer, reports []*computeReport, tail int) error {
	trimmed := make([]*computeReport, 0, len(reports))
	for _, report := range reports {
		trimmed = append(trimmed, tailReport(report, tail))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(trimmed)
}

func writeReportTable(w io.Writer, report *computeReport, tail int, withColor bool) {
	report = tailReport(report, tail)

	heading := color.New(color.FgHiCyan, color.Bold)
	if !withColor {
		heading.DisableColor()
	}

	params := report.Params
	_, _ = heading.Fprintf(w, "%s: BOLL(length=%d, stdDev=%g, offset=%d, source=%s)\n",
		report.File, params.Length, params.K, params.Offset, params.Source)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(*style.NewSeriesTableStyle(withColor))
	t.AppendHeader(table.Row{"Time", string(params.Source), "Basis", "Upper", "Lower", "StdDev"})

	for i, bar := range report.Bars {
		t.AppendRow(table.Row{
			bar.Time.Format(time.RFC3339),
			params.Source.Value(bar),
			formatCell(report.Basis[i]),
			formatCell(report.Upper[i]),
			formatCell(report.Lower[i]),
			formatCell(report.StdDev[i]),
		})
	}

	t.Render()
}

func formatCell(v types.NullFloat64) string {
	f, ok := v.Get()
	if !ok {
		return style.UndefinedCell
	}
	return fmt.Sprintf("%.4f", f)
}
