package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/francisatoyebi/housepulse/internal/store"
)

var (
	historyLimit int
	historyPrune bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived runs",
	Long: `Lists archived analysis runs, newest first, with the predicted eviction of
each. With --prune, runs older than the retention window are deleted first.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "maximum number of runs to list")
	historyCmd.Flags().BoolVar(&historyPrune, "prune", false, "delete runs older than RETENTION_DAYS before listing")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	archive, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer archive.Close()

	if historyPrune {
		cutoff := time.Now().AddDate(0, 0, -cfg.RetentionDays)
		pruned, err := archive.PruneRuns(ctx, cutoff)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d run(s) older than %s\n", pruned, cutoff.Format("2006-01-02"))
	}

	runs, err := archive.ListRuns(ctx, historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs archived yet.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTARTED\tCONTESTANTS\tPOSTS\tPREDICTED EVICTION")
	for _, run := range runs {
		predicted := "-"
		if lowest, ok := run.LowestRated(); ok {
			predicted = fmt.Sprintf("%s (%.1f%%)", lowest.Name, lowest.Rating)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
			shortID(run.ID.String()),
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			len(run.Results),
			run.TotalPosts,
			predicted)
	}
	return tw.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
