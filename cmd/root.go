package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/powerplan/app"
	"github.com/kilianp07/powerplan/config"
	"github.com/kilianp07/powerplan/infra/logger"
)

// NewRootCmd builds the powerplan command tree. The root command serves the
// HTTP API.
func NewRootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:           "powerplan",
		Short:         "Production plan calculator for a fleet of power plants",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), cfgPath)
		},
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
	root.AddCommand(newCalculateCmd(&cfgPath), newCostCmd())
	return root
}

// Execute runs the CLI.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

func serve(ctx context.Context, cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return svc.Run(ctx)
}
