package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gatepass/app"
	"gatepass/config"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify the configured credentials",
	RunE:  runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func newService(cmd *cobra.Command) (*app.Service, context.Context, context.CancelFunc, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		stop()
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		stop()
		return nil, nil, nil, err
	}
	return svc, ctx, stop, nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	svc, ctx, stop, err := newService(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer svc.Close()

	if err := svc.Client.Authenticate(ctx); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "authentication ok")
	return nil
}
