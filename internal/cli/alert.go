package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/bundleguard/bundleguard/pkg/client"
)

func newAlertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alert",
		Short: "Manage usage alerts",
	}

	cmd.AddCommand(newAlertListCmd())
	cmd.AddCommand(newAlertGetCmd())
	cmd.AddCommand(newAlertSummaryCmd())
	cmd.AddCommand(newAlertDeleteCmd())
	cmd.AddCommand(newAlertSpikesCmd())

	return cmd
}

func newAlertListCmd() *cobra.Command {
	var severity, alertType, appName, deviceID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			opts := &client.AlertListOptions{
				Type:     alertType,
				Severity: severity,
				AppName:  appName,
				DeviceID: deviceID,
			}

			page, err := apiClient.Alerts().List(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to list alerts: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(page.Data)
			}

			t := NewTable("ID", "TYPE", "SEVERITY", "APP", "USAGE", "INCREASE", "TITLE")
			for _, a := range page.Data {
				t.AddRow(
					a.ID,
					a.Type,
					formatSeverity(a.Severity),
					a.AppName,
					humanize.IBytes(uint64(a.CurrentUsage)),
					fmt.Sprintf("%d%%", a.PercentageIncrease),
					truncate(a.Title, 40),
				)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&severity, "severity", "", "filter by severity")
	cmd.Flags().StringVar(&alertType, "type", "", "filter by type (spike, threshold, anomaly)")
	cmd.Flags().StringVar(&appName, "app", "", "filter by application name")
	cmd.Flags().StringVar(&deviceID, "device", "", "filter by device ID")

	return cmd
}

func newAlertGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get alert details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			alert, err := apiClient.Alerts().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get alert: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(alert)
			}

			fmt.Printf("ID:          %s\n", alert.ID)
			fmt.Printf("Type:        %s\n", alert.Type)
			fmt.Printf("Severity:    %s\n", formatSeverity(alert.Severity))
			if alert.AppName != "" {
				fmt.Printf("App:         %s\n", alert.AppName)
			}
			fmt.Printf("Title:       %s\n", alert.Title)
			fmt.Printf("Description: %s\n", alert.Description)
			fmt.Printf("Usage:       %s (expected %s, +%d%%)\n",
				humanize.IBytes(uint64(alert.CurrentUsage)),
				humanize.IBytes(uint64(alert.ExpectedUsage)),
				alert.PercentageIncrease)
			fmt.Printf("Detected:    %s\n", alert.DetectedAt.Format("2006-01-02 15:04:05"))
			if len(alert.Recommendations) > 0 {
				fmt.Println("Recommendations:")
				for _, rec := range alert.Recommendations {
					fmt.Printf("  - %s\n", rec)
				}
			}
			return nil
		},
	}
}

func newAlertSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show alert counts by severity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			summary, err := apiClient.Alerts().Summary(ctx)
			if err != nil {
				return fmt.Errorf("failed to get alert summary: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(summary)
			}

			t := NewTable("SEVERITY", "COUNT")
			for _, sev := range []string{"critical", "high", "medium", "low"} {
				t.AddRow(formatSeverity(sev), strconv.Itoa(summary[sev]))
			}
			t.Render()
			return nil
		},
	}
}

func newAlertDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := apiClient.Alerts().Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete alert: %w", err)
			}

			fmt.Printf("Alert %s deleted\n", args[0])
			return nil
		},
	}
}

func newAlertSpikesCmd() *cobra.Command {
	var deviceID, userID, sensitivity string
	var thresholdMB int64

	cmd := &cobra.Command{
		Use:   "spikes",
		Short: "Run spike analysis over stored usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			if deviceID == "" && userID == "" {
				return fmt.Errorf("either --device or --user is required")
			}

			ctx := context.Background()
			result, err := apiClient.Alerts().Spikes(ctx, client.SpikeOptions{
				DeviceID:    deviceID,
				UserID:      userID,
				ThresholdMB: thresholdMB,
				Sensitivity: sensitivity,
			})
			if err != nil {
				return fmt.Errorf("spike analysis failed: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(result)
			}

			if len(result.Alerts) == 0 {
				fmt.Println("No spikes detected")
				return nil
			}

			t := NewTable("TYPE", "SEVERITY", "APP", "USAGE", "EXPECTED", "INCREASE")
			for _, a := range result.Alerts {
				t.AddRow(
					a.Type,
					formatSeverity(a.Severity),
					a.AppName,
					humanize.IBytes(uint64(a.CurrentUsage)),
					humanize.IBytes(uint64(a.ExpectedUsage)),
					fmt.Sprintf("%d%%", a.PercentageIncrease),
				)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&deviceID, "device", "", "device ID to analyze")
	cmd.Flags().StringVar(&userID, "user", "", "analyze all devices of this user")
	cmd.Flags().Int64Var(&thresholdMB, "threshold", 0, "critical daily threshold override in MB")
	cmd.Flags().StringVar(&sensitivity, "sensitivity", "", "detection sensitivity: high, medium, low")

	return cmd
}
