package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/chartsense/internal/report"
	"github.com/KaramelBytes/chartsense/internal/summarize"
	"github.com/KaramelBytes/chartsense/internal/utils"
)

var (
	sumFlags      runFlags
	sumOutputPath string
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <file>",
	Short: "Summarize the time series in a CSV/TSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		opt, err := sumFlags.datasetOptions()
		if err != nil {
			return err
		}
		s, err := sumFlags.settings(cmd.Flags())
		if err != nil {
			return err
		}
		reps, err := summarizeFile(cmd.Context(), summarize.NewEngine(logger), path, opt, s)
		if err != nil {
			return err
		}

		if sumOutputPath == "" {
			return report.WriteAll(cmd.OutOrStdout(), reps, s.format)
		}
		var buf bytes.Buffer
		if err := report.WriteAll(&buf, reps, s.format); err != nil {
			return err
		}
		if err := utils.SafeWriteFile(sumOutputPath, buf.Bytes()); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		newPrinter(cmd).Success("Wrote %d summaries for %d series to %s", countSummaries(reps), len(reps), sumOutputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	sumFlags.register(summarizeCmd.Flags())
	summarizeCmd.Flags().StringVarP(&sumOutputPath, "output", "o", "", "optional path to write the summary")
}

func countSummaries(reps []*report.Report) int {
	n := 0
	for _, r := range reps {
		n += r.Count()
	}
	return n
}
