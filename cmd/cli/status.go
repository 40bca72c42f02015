package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sevigo/print-relay/internal/client"
	"github.com/sevigo/print-relay/internal/core"
)

var (
	outputJSON bool
	jobLimit   int
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Shows the queue state and the most recent print jobs",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		c := client.New(serverURL, webhookKey)
		queue, err := c.Queue(ctx)
		if err != nil {
			return fmt.Errorf("failed to retrieve queue status: %w", err)
		}
		records, err := c.Jobs(ctx, jobLimit)
		if err != nil {
			return fmt.Errorf("failed to retrieve jobs: %w", err)
		}

		if outputJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(struct {
				Queue *core.QueueStatus `json:"queue"`
				Jobs  []*core.JobRecord `json:"jobs"`
			}{queue, records})
		}

		titleColor.Printf("queue: %s", queue.State)
		fmt.Printf("  pending=%d processed=%d", queue.Pending, queue.Processed)
		if queue.Current != "" {
			fmt.Printf(" current=%s", queue.Current)
		}
		fmt.Println()

		if len(records) == 0 {
			dimColor.Println("no jobs recorded yet")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "JOB\tSTATUS\tKIND\tDURATION\tFINISHED\tSOURCE")
		for _, rec := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				shortID(rec.JobID),
				rec.Status,
				dash(string(rec.ErrorKind)),
				rec.Duration().Round(time.Millisecond),
				rec.FinishedAt.Local().Format(time.RFC822),
				rec.SourceURI,
			)
		}
		return w.Flush()
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	statusCmd.Flags().BoolVar(&outputJSON, "json", false, "Output status as JSON")
	statusCmd.Flags().IntVarP(&jobLimit, "limit", "n", 20, "number of recent jobs to show")
	rootCmd.AddCommand(statusCmd)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
