package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newUsageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Inspect device data usage",
	}

	cmd.AddCommand(newUsageSummaryCmd())

	return cmd
}

func newUsageSummaryCmd() *cobra.Command {
	var deviceID string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show today's usage for a device",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			summary, err := apiClient.Usage().Summary(ctx, deviceID)
			if err != nil {
				return fmt.Errorf("failed to get usage summary: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(summary)
			}

			fmt.Printf("Daily total:   %s\n", humanize.IBytes(uint64(summary.DailyTotal)))
			fmt.Printf("Current hour:  %s\n", humanize.IBytes(uint64(summary.CurrentHourTotal)))
			fmt.Printf("Records:       %d\n", summary.RecordCount)

			if len(summary.ByApp) > 0 {
				fmt.Println()
				apps := make([]string, 0, len(summary.ByApp))
				for app := range summary.ByApp {
					apps = append(apps, app)
				}
				sort.Slice(apps, func(i, j int) bool {
					return summary.ByApp[apps[i]] > summary.ByApp[apps[j]]
				})

				t := NewTable("APP", "USAGE")
				for _, app := range apps {
					t.AddRow(app, humanize.IBytes(uint64(summary.ByApp[app])))
				}
				t.Render()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&deviceID, "device", "", "device ID")
	_ = cmd.MarkFlagRequired("device")

	return cmd
}

func newDeviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "device",
		Short: "Manage registered devices",
	}

	cmd.AddCommand(newDeviceListCmd())

	return cmd
}

func newDeviceListCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			devices, err := apiClient.Devices().List(ctx, userID)
			if err != nil {
				return fmt.Errorf("failed to list devices: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(devices)
			}

			t := NewTable("ID", "USER", "NAME", "PLATFORM", "LAST SEEN")
			for _, d := range devices {
				lastSeen := "never"
				if !d.LastSeen.IsZero() {
					lastSeen = d.LastSeen.Format("2006-01-02 15:04")
				}
				t.AddRow(d.ID, d.UserID, d.Name, d.Platform, lastSeen)
			}
			t.Render()

			fmt.Printf("\n%s devices\n", strconv.Itoa(len(devices)))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "filter by user ID")

	return cmd
}
