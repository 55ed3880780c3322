package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"gatepass/core/model"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List present and future reservations",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	svc, ctx, stop, err := newService(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer svc.Close()

	reservations, _, stats, err := svc.Refresh(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tPLATE\tDAYS\tPURPOSE\tPHONE")
	for _, r := range reservations {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n",
			r.ID, model.FormatDate(r.VisitDate), r.Plate, r.Span(), r.Purpose, r.Phone)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if stats.Skipped > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%d malformed records skipped\n", stats.Skipped)
	}
	return nil
}
