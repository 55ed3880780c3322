package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"gatepass/core/model"
	"gatepass/journal"
)

var (
	journalPlate string
	journalBatch string
	journalSince time.Duration
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show recorded submission outcomes",
	RunE:  runJournal,
}

func init() {
	journalCmd.Flags().StringVar(&journalPlate, "plate", "", "filter by vehicle plate")
	journalCmd.Flags().StringVar(&journalBatch, "batch", "", "filter by batch id")
	journalCmd.Flags().DurationVar(&journalSince, "since", 0, "only entries newer than this, e.g. 72h")
	rootCmd.AddCommand(journalCmd)
}

func runJournal(cmd *cobra.Command, args []string) error {
	svc, ctx, stop, err := newService(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer svc.Close()

	q := journal.Query{Plate: journalPlate, BatchID: journalBatch}
	if journalSince > 0 {
		q.Start = time.Now().Add(-journalSince)
	}
	recs, err := svc.Journal.Query(ctx, q)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tPLATE\tDATE\tRESULT\tBATCH")
	for _, r := range recs {
		result := "ok"
		if !r.Succeeded {
			result = r.Error
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.Time.Format(time.RFC3339), r.Plate, model.FormatDate(r.VisitDate), result, r.BatchID)
	}
	return w.Flush()
}
