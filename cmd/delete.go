package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <reservation-id>",
	Short: "Delete a reservation by its remote identifier",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid reservation id %q", args[0])
	}

	svc, ctx, stop, err := newService(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer svc.Close()

	if err := svc.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "reservation %d deleted\n", id)
	return nil
}
