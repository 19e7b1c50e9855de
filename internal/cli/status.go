package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show platform summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			format := getOutputFormat()
			if format != "table" {
				summary := map[string]interface{}{}

				if err := apiClient.Health(ctx); err != nil {
					summary["server"] = "unreachable"
				} else {
					summary["server"] = "ready"
				}
				if devices, err := apiClient.Devices().List(ctx, ""); err == nil {
					summary["devices"] = len(devices)
				}
				if counts, err := apiClient.Alerts().Summary(ctx); err == nil {
					summary["alerts"] = counts
				}
				return printOutput(summary)
			}

			fmt.Println("BundleGuard Dashboard")
			fmt.Println(strings.Repeat("=", 40))

			if err := apiClient.Health(ctx); err != nil {
				fmt.Printf("  Server:    (error: %v)\n", err)
			} else {
				fmt.Println("  Server:    ready")
			}

			devices, err := apiClient.Devices().List(ctx, "")
			if err != nil {
				fmt.Printf("  Devices:   (error: %v)\n", err)
			} else {
				fmt.Printf("  Devices:   %d registered\n", len(devices))
			}

			counts, err := apiClient.Alerts().Summary(ctx)
			if err != nil {
				fmt.Printf("  Alerts:    (error: %v)\n", err)
			} else {
				total := 0
				for _, n := range counts {
					total += n
				}
				fmt.Printf("  Alerts:    %d stored", total)
				if counts["critical"] > 0 {
					fmt.Printf(" (%d critical)", counts["critical"])
				}
				fmt.Println()
			}

			return nil
		},
	}
}
