package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/chartsense/internal/report"
	"github.com/KaramelBytes/chartsense/internal/summarize"
	"github.com/KaramelBytes/chartsense/internal/utils"
)

var (
	sbFlags   runFlags
	sbOutDir  string
	sbWorkers int
	sbQuiet   bool
)

var summarizeBatchCmd = &cobra.Command{
	Use:   "summarize-batch <files...>",
	Short: "Summarize multiple CSV/TSV files with progress",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := expandInputs(args)
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		opt, err := sbFlags.datasetOptions()
		if err != nil {
			return err
		}
		s, err := sbFlags.settings(cmd.Flags())
		if err != nil {
			return err
		}
		workers := cfg.Workers
		if cmd.Flags().Changed("workers") {
			workers = sbWorkers
		}
		if workers < 1 {
			workers = 1
		}
		if sbOutDir != "" {
			if err := utils.EnsureDir(sbOutDir); err != nil {
				return err
			}
		}

		pr := newPrinter(cmd)
		eng := summarize.NewEngine(logger)
		total := len(files)
		outputs := make([][]*report.Report, total)
		var started, failed atomic.Int32

		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(workers)
		for i, path := range files {
			i, path := i, path
			g.Go(func() error {
				if !sbQuiet {
					pr.Info("[%d/%d] Processing %s...", started.Add(1), total, filepath.Base(path))
				}
				reps, err := summarizeFile(ctx, eng, path, opt, s)
				if err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					failed.Add(1)
					pr.Warning("Skipped %s: %v", filepath.Base(path), err)
					return nil
				}
				if sbOutDir == "" {
					outputs[i] = reps
					return nil
				}
				return writeBatchOutputs(pr, path, reps, s.format)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		if sbOutDir == "" && !sbQuiet {
			var all []*report.Report
			for _, reps := range outputs {
				all = append(all, reps...)
			}
			if len(all) > 0 {
				if err := report.WriteAll(cmd.OutOrStdout(), all, s.format); err != nil {
					return err
				}
			}
		}
		if n := failed.Load(); n > 0 {
			return fmt.Errorf("%d of %d files failed", n, total)
		}
		return nil
	},
}

// writeMu serializes picking a free output name and writing to it.
var writeMu sync.Mutex

// writeBatchOutputs writes one file per series next to the others in
// --out-dir. Name collisions get a numeric suffix instead of overwriting.
func writeBatchOutputs(pr *report.Printer, input string, reps []*report.Report, f report.Format) error {
	for _, rep := range reps {
		suffix := ""
		if len(reps) > 1 {
			suffix = rep.Series
		}
		var buf bytes.Buffer
		if err := rep.Write(&buf, f); err != nil {
			return err
		}
		writeMu.Lock()
		out, err := utils.UniquePath(filepath.Join(sbOutDir, utils.SummaryName(input, suffix, f.Extension())))
		if err == nil {
			err = utils.SafeWriteFile(out, buf.Bytes())
		}
		writeMu.Unlock()
		if err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
		if !sbQuiet {
			pr.Success("Wrote %s", filepath.Base(out))
		}
	}
	return nil
}

// expandInputs resolves globs, keeps literal paths that exist, drops
// duplicates and sorts the result.
func expandInputs(args []string) []string {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

func init() {
	rootCmd.AddCommand(summarizeBatchCmd)
	sbFlags.register(summarizeBatchCmd.Flags())
	summarizeBatchCmd.Flags().StringVar(&sbOutDir, "out-dir", "", "directory for <name>.summary.<ext> files (default: stdout)")
	summarizeBatchCmd.Flags().IntVar(&sbWorkers, "workers", 4, "files processed concurrently")
	summarizeBatchCmd.Flags().BoolVar(&sbQuiet, "quiet", false, "suppress progress and non-essential output")
}
