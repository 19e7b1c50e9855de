package client_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bundleguard/bundleguard/pkg/client"
)

// Example demonstrates basic usage of the BundleGuard client
func Example() {
	// Create a new client
	c := client.NewClient(client.Config{
		BaseURL: "https://api.bundleguard.io",
	})

	ctx := context.Background()

	// Check the API is reachable
	if err := c.Health(ctx); err != nil {
		log.Fatal(err)
	}

	// List stored alerts
	page, err := c.Alerts().List(ctx, nil)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Found %d alerts\n", page.TotalItems)
}

// ExampleAlertService_List demonstrates listing critical alerts
func ExampleAlertService_List() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.bundleguard.io",
	})

	page, err := c.Alerts().List(context.Background(), &client.AlertListOptions{
		ListOptions: client.ListOptions{
			Page:     1,
			PageSize: 20,
		},
		Severity: "critical",
	})
	if err != nil {
		log.Fatal(err)
	}

	for _, alert := range page.Data {
		fmt.Printf("  - %s: %s\n", alert.Severity, alert.Title)
	}
}

// ExampleAlertService_Spikes demonstrates on-demand analysis of stored usage
func ExampleAlertService_Spikes() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.bundleguard.io",
	})

	result, err := c.Alerts().Spikes(context.Background(), client.SpikeOptions{
		DeviceID:    "device-123",
		ThresholdMB: 500,
		Sensitivity: "high",
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Analyzed %d records, %d alerts\n", result.Stats.RecordsAnalyzed, len(result.Alerts))
}

// ExampleAlertService_Analyze demonstrates analyzing caller-supplied samples
func ExampleAlertService_Analyze() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.bundleguard.io",
	})

	now := time.Now()
	result, err := c.Alerts().Analyze(context.Background(), client.AnalyzeRequest{
		Samples: []client.Sample{
			{Timestamp: now, BytesUsed: 150 * 1024 * 1024, AppName: "Instagram"},
		},
		HistoricalSamples: []client.Sample{
			{Timestamp: now.AddDate(0, 0, -1), BytesUsed: 40 * 1024 * 1024, AppName: "Instagram"},
			{Timestamp: now.AddDate(0, 0, -2), BytesUsed: 45 * 1024 * 1024, AppName: "Instagram"},
			{Timestamp: now.AddDate(0, 0, -3), BytesUsed: 50 * 1024 * 1024, AppName: "Instagram"},
		},
		Config: &client.AnalyzeConfig{Sensitivity: "medium"},
	})
	if err != nil {
		log.Fatal(err)
	}

	for _, alert := range result.Alerts {
		fmt.Printf("%s (%s): %s\n", alert.Type, alert.Severity, alert.Description)
	}
}

// ExampleUsageService_Ingest demonstrates submitting usage records for a device
func ExampleUsageService_Ingest() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.bundleguard.io",
		APIKey:  "your-api-key",
	})

	result, err := c.Usage().Ingest(context.Background(), client.IngestRequest{
		DeviceID: "device-123",
		Records: []client.UsageRecord{
			{Timestamp: time.Now(), RxBytes: 12_000_000, TxBytes: 800_000, AppName: "YouTube"},
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Ingested %d records\n", result.Ingested)
}

// ExampleDeviceService_Register demonstrates registering a device
func ExampleDeviceService_Register() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.bundleguard.io",
		APIKey:  "your-api-key",
	})

	device, err := c.Devices().Register(context.Background(), client.RegisterDeviceRequest{
		UserID:   "user-42",
		Name:     "Pixel 8",
		Platform: "android",
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Registered device: %s (ID: %s)\n", device.Name, device.ID)
}
