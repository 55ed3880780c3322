package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gatepass/app"
	"gatepass/core/schedule"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the schedule registered on an interval",
	Long: `watch re-runs the register flow on the configured interval so dates that
roll into the schedule window get reserved automatically. Every cycle
replans against the server state, so it is safe to leave running.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&registerPlate, "plate", "", "vehicle plate number")
	watchCmd.Flags().StringVar(&registerPhone, "phone", "", "contact phone (defaults to the one remembered for the plate)")
	watchCmd.Flags().StringVar(&registerPurpose, "purpose", "", "visit purpose")
	watchCmd.Flags().StringVar(&registerDays, "weekdays", "", "comma-separated weekdays, e.g. mon,wed,fri")
	watchCmd.Flags().IntVar(&registerWeeks, "weeks", 4, "number of weeks to cover (1-12)")
	if err := watchCmd.MarkFlagRequired("plate"); err != nil {
		panic(err)
	}
	if err := watchCmd.MarkFlagRequired("weekdays"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if registerWeeks < 1 || registerWeeks > 12 {
		return fmt.Errorf("weeks must be between 1 and 12, got %d", registerWeeks)
	}
	weekdays, err := schedule.ParseWeekdays(registerDays)
	if err != nil {
		return err
	}

	svc, ctx, stop, err := newService(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer svc.Close()

	// Echo batch results while the loop runs.
	events := svc.Bus.Subscribe()
	go func() {
		for e := range events {
			if done, ok := e.(app.BatchDone); ok && done.Succeeded+done.Failed > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "batch %s: %d succeeded, %d failed\n",
					done.BatchID, done.Succeeded, done.Failed)
			}
		}
	}()

	return svc.Watch(ctx, app.RegisterRequest{
		Plate:     registerPlate,
		Phone:     registerPhone,
		Purpose:   registerPurpose,
		Selection: schedule.Selection{Weekdays: weekdays, Weeks: registerWeeks},
	})
}
