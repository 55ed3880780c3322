package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gatepass/app"
	"gatepass/core/model"
	"gatepass/core/schedule"
	"gatepass/gate"
)

var (
	registerPlate   string
	registerPhone   string
	registerPurpose string
	registerDays    string
	registerWeeks   int
	registerDryRun  bool
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a recurring weekday schedule",
	Long: `register expands the weekday selection over the given number of weeks,
drops dates the vehicle already holds, and submits one single-day
reservation per remaining date.`,
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().StringVar(&registerPlate, "plate", "", "vehicle plate number")
	registerCmd.Flags().StringVar(&registerPhone, "phone", "", "contact phone (defaults to the one remembered for the plate)")
	registerCmd.Flags().StringVar(&registerPurpose, "purpose", "", fmt.Sprintf("visit purpose (default %q)", model.DefaultPurpose()))
	registerCmd.Flags().StringVar(&registerDays, "weekdays", "", "comma-separated weekdays, e.g. mon,wed,fri")
	registerCmd.Flags().IntVar(&registerWeeks, "weeks", 4, "number of weeks to cover (1-12)")
	registerCmd.Flags().BoolVar(&registerDryRun, "dry-run", false, "show the plan without submitting")
	if err := registerCmd.MarkFlagRequired("plate"); err != nil {
		panic(err)
	}
	if err := registerCmd.MarkFlagRequired("weekdays"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
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

	report, err := svc.Register(ctx, app.RegisterRequest{
		Plate:     registerPlate,
		Phone:     registerPhone,
		Purpose:   registerPurpose,
		Selection: schedule.Selection{Weekdays: weekdays, Weeks: registerWeeks},
		DryRun:    registerDryRun,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if report.Candidates == 0 {
		fmt.Fprintln(out, "no dates match the selection")
		return nil
	}
	fmt.Fprintf(out, "%d candidate dates, %d already reserved\n", report.Candidates, report.Duplicates)
	if registerDryRun {
		for _, d := range report.Planned {
			fmt.Fprintf(out, "would reserve %s\n", model.FormatDate(d))
		}
		return nil
	}
	if len(report.Planned) == 0 {
		fmt.Fprintln(out, "every date is already reserved")
		return nil
	}
	for _, o := range report.Outcomes {
		if o.Err != nil {
			fmt.Fprintf(out, "failed %s: %v\n", model.FormatDate(o.Date), o.Err)
		} else {
			fmt.Fprintf(out, "reserved %s\n", model.FormatDate(o.Date))
		}
	}
	ok, failed := gate.CountOutcomes(report.Outcomes)
	fmt.Fprintf(out, "done: %d succeeded, %d failed (batch %s)\n", ok, failed, report.BatchID)
	return nil
}
