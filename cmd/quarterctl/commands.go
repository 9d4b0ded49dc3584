package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/backoffice/backend/internal/application/usecase/dashboard"
	"github.com/backoffice/backend/internal/application/usecase/quarter"
	"github.com/backoffice/backend/internal/domain/entity"
	"github.com/backoffice/backend/internal/integration/entrypoint/dto"
)

func newStatsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the dashboard stats of the quarter containing a date",
		Example: `  quarterctl stats
  quarterctl stats --date 2025-02-10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := referenceDate(cmd, a)
			if err != nil {
				return err
			}
			output, err := a.injector.UseCases.DashboardStats.Execute(cmd.Context(), dashboard.GetDashboardStatsInput{
				ReferenceDate: date,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, dto.ToDashboardStatsResponse(output))
		},
	}
	cmd.Flags().String("date", "", "Reference date (YYYY-MM-DD, default: today)")
	return cmd
}

func newKPIsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kpis",
		Short: "Show the KPIs of the quarter containing a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := referenceDate(cmd, a)
			if err != nil {
				return err
			}
			output, err := a.injector.UseCases.DashboardKPIs.Execute(cmd.Context(), dashboard.GetDashboardKPIsInput{
				ReferenceDate: date,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, dto.ToDashboardKPIsResponse(output))
		},
	}
	cmd.Flags().String("date", "", "Reference date (YYYY-MM-DD, default: today)")
	return cmd
}

func newTargetsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "Show progress towards the targets of the quarter containing a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := referenceDate(cmd, a)
			if err != nil {
				return err
			}
			output, err := a.injector.UseCases.TargetProgress.Execute(cmd.Context(), dashboard.GetTargetProgressInput{
				ReferenceDate: date,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, dto.ToDashboardTargetsResponse(output))
		},
	}
	cmd.Flags().String("date", "", "Reference date (YYYY-MM-DD, default: today)")
	return cmd
}

func newStatusCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "status",
		Short:   "Report whether a quarter is closed",
		Example: `  quarterctl status --quarter 1 --year 2025`,
		RunE: func(cmd *cobra.Command, args []string) error {
			number, _ := cmd.Flags().GetInt("quarter")
			year, _ := cmd.Flags().GetInt("year")
			output, err := a.injector.UseCases.QuarterStatus.Execute(cmd.Context(), quarter.IsQuarterClosedInput{
				Number: number,
				Year:   year,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, dto.QuarterStatusResponse{QuarterID: output.QuarterID, Closed: output.Closed})
		},
	}
	cmd.Flags().Int("quarter", 0, "Quarter number (1-4)")
	cmd.Flags().Int("year", 0, "Calendar year")
	_ = cmd.MarkFlagRequired("quarter")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show QUARTER_ID",
		Short: "Show a quarter, creating it as active on first use",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := a.injector.UseCases.GetQuarter.Execute(cmd.Context(), quarter.GetOrCreateQuarterInput{
				QuarterID: args[0],
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, dto.ToQuarterResponse(output.Quarter))
		},
	}
}

func newTargetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "target QUARTER_ID METRIC VALUE",
		Short:   "Set a quarter target",
		Example: `  quarterctl target Q1-2025 revenue 120000`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := decimal.NewFromString(args[2])
			if err != nil {
				return fmt.Errorf("invalid target value %q: %w", args[2], err)
			}
			output, err := a.injector.UseCases.SetTarget.Execute(cmd.Context(), quarter.SetTargetInput{
				QuarterID: args[0],
				Metric:    entity.TargetMetric(args[1]),
				Value:     value,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, dto.ToTargetResponse(output.Target))
		},
	}
}

func newCloseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "close QUARTER_ID",
		Short: "Close an active quarter with an owner withdrawal",
		Long: `Close an active quarter. The financial position is recomputed from the
records, the withdrawal is checked against cash on hand and the snapshot is
frozen. Records dated inside a closed quarter can no longer be changed.`,
		Example: `  quarterctl close Q1-2025 --withdrawal 50000 --by owner@example.com`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetString("withdrawal")
			withdrawal, err := decimal.NewFromString(raw)
			if err != nil {
				return fmt.Errorf("invalid withdrawal %q: %w", raw, err)
			}
			closedBy, _ := cmd.Flags().GetString("by")

			output, err := a.injector.UseCases.CloseQuarter.Execute(cmd.Context(), quarter.CloseQuarterInput{
				QuarterID:        args[0],
				WithdrawalAmount: withdrawal,
				ClosedBy:         closedBy,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, dto.CloseQuarterResponse{
				Success:   output.Success,
				Quarter:   dto.ToQuarterResponse(output.Quarter),
				Anomalies: dto.ToAnomalyResponses(output.Anomalies),
			})
		},
	}
	cmd.Flags().String("withdrawal", "", "Owner withdrawal amount")
	cmd.Flags().String("by", "quarterctl", "Who is closing the quarter")
	_ = cmd.MarkFlagRequired("withdrawal")
	return cmd
}

func newArchiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "archive QUARTER_ID",
		Short: "Archive a closed quarter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := a.injector.UseCases.ArchiveQuarter.Execute(cmd.Context(), quarter.ArchiveQuarterInput{
				QuarterID: args[0],
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, dto.ToQuarterResponse(output.Quarter))
		},
	}
}

func referenceDate(cmd *cobra.Command, a *app) (time.Time, error) {
	raw, _ := cmd.Flags().GetString("date")
	if raw == "" {
		return a.injector.Clock.Now(), nil
	}
	date, err := time.Parse(dto.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format. Use YYYY-MM-DD: %w", err)
	}
	return date, nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
