package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/powerplan/config"
	"github.com/kilianp07/powerplan/core/model"
	"github.com/kilianp07/powerplan/core/production"
	"github.com/kilianp07/powerplan/infra/logger"
)

func newCalculateCmd(cfgPath *string) *cobra.Command {
	var (
		file     string
		strategy string
		summary  bool
	)
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Print the production plan of a payload file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if strategy != "" {
				cfg.Planner.Type = strategy
				cfg.Planner.Conf = nil
			}
			planner, err := production.NewPlanner(cfg.Planner)
			if err != nil {
				return err
			}
			// stdout carries the plan, logs go to stderr
			log := logger.NewZerologLoggerWriter(cmd.ErrOrStderr(), "calculate", cfg.Logging.Level)
			svc, err := production.NewService(planner, log, nil, nil)
			if err != nil {
				return err
			}
			p, err := readPayload(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			res, err := svc.Plan(ctx, p)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if summary {
				return enc.Encode(struct {
					ID       string             `json:"id"`
					Strategy string             `json:"strategy"`
					Plan     []model.Production `json:"plan"`
					Summary  model.PlanSummary  `json:"summary"`
				}{res.ID, res.Strategy, res.Plan, res.Summary})
			}
			return enc.Encode(res.Plan)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "payload file, - for stdin")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "", fmt.Sprintf("planner overriding the configuration %v", production.Planners()))
	cmd.Flags().BoolVar(&summary, "summary", false, "wrap the plan with its identifier and summary")
	return cmd
}
