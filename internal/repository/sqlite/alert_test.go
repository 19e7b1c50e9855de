package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/bundleguard/bundleguard/internal/domain/alert"
	"github.com/bundleguard/bundleguard/internal/testutil"
)

func TestAlertRepository_CreateAndGet(t *testing.T) {
	d := testutil.NewTestDB(t)
	defer testutil.CleanupDB(d)

	repo := NewAlertRepository(d)
	ctx := context.Background()

	a := &alert.Alert{
		ID:                 "alert_1_abcd1234",
		Type:               alert.TypeSpike,
		Severity:           alert.SeverityHigh,
		Title:              "Data Spike Detected",
		Description:        "Instagram used more than usual",
		DetectedAt:         time.Now().UTC(),
		AppName:            "Instagram",
		CurrentUsage:       150 * 1024 * 1024,
		ExpectedUsage:      50 * 1024 * 1024,
		PercentageIncrease: 200,
		Recommendations:    []string{"Check Instagram settings", "Enable data saver"},
	}

	if err := repo.Create(ctx, "d1", a); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Type != a.Type || got.Severity != a.Severity || got.AppName != a.AppName {
		t.Errorf("GetByID() = %+v, want type/severity/app of %+v", got, a)
	}
	if got.CurrentUsage != a.CurrentUsage || got.PercentageIncrease != a.PercentageIncrease {
		t.Errorf("GetByID() usage = %d/%d%%, want %d/%d%%",
			got.CurrentUsage, got.PercentageIncrease, a.CurrentUsage, a.PercentageIncrease)
	}
	if len(got.Recommendations) != 2 {
		t.Errorf("GetByID() recommendations = %v, want 2 entries", got.Recommendations)
	}
}

func TestAlertRepository_RecentKeys(t *testing.T) {
	d := testutil.NewTestDB(t)
	defer testutil.CleanupDB(d)

	repo := NewAlertRepository(d)
	ctx := context.Background()
	now := time.Now().UTC()

	fresh := &alert.Alert{
		ID:              "alert_fresh",
		Type:            alert.TypeSpike,
		Severity:        alert.SeverityHigh,
		Title:           "t",
		Description:     "d",
		DetectedAt:      now,
		AppName:         "Instagram",
		Recommendations: []string{"r"},
	}
	stale := &alert.Alert{
		ID:              "alert_stale",
		Type:            alert.TypeThreshold,
		Severity:        alert.SeverityCritical,
		Title:           "t",
		Description:     "d",
		DetectedAt:      now.Add(-48 * time.Hour),
		Recommendations: []string{"r"},
	}
	for _, a := range []*alert.Alert{fresh, stale} {
		if err := repo.Create(ctx, "d1", a); err != nil {
			t.Fatalf("Create(%s) error = %v", a.ID, err)
		}
	}

	keys, err := repo.RecentKeys(ctx, 24)
	if err != nil {
		t.Fatalf("RecentKeys() error = %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("RecentKeys(24) = %v, want 1 key", keys)
	}
	if keys[0] != (alert.Key{App: "Instagram"}) {
		t.Errorf("RecentKeys(24)[0] = %+v, want app key for Instagram", keys[0])
	}

	// A wider window picks up the stale alert, keyed by type since it has
	// no app name.
	keys, err = repo.RecentKeys(ctx, 72)
	if err != nil {
		t.Fatalf("RecentKeys() error = %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("RecentKeys(72) = %v, want 2 keys", keys)
	}
	found := make(map[alert.Key]bool, len(keys))
	for _, k := range keys {
		found[k] = true
	}
	if !found[alert.Key{Kind: alert.TypeThreshold}] {
		t.Errorf("RecentKeys(72) = %v, missing threshold type key", keys)
	}
}
