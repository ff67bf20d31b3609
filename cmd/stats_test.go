package cmd

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/pders01/wayback-context/internal/models"
	"github.com/pders01/wayback-context/internal/testutil"
)

func TestComputeStats(t *testing.T) {
	snapshots := []models.Snapshot{
		models.NewSnapshot("20200101000000", "https://example.com/"),
		models.NewSnapshot("20190505000000", "https://example.com/"),
		models.NewSnapshot("20200615000000", "https://example.com/"),
		models.NewSnapshot("20221231235959", "https://example.com/"),
	}

	stats := computeStats("example.com", snapshots)

	if stats.TotalSnapshots != 4 {
		t.Errorf("expected 4 snapshots, got %d", stats.TotalSnapshots)
	}
	if stats.FirstCapture != "20190505000000" {
		t.Errorf("expected first capture 20190505000000, got %s", stats.FirstCapture)
	}
	if stats.LatestCapture != "20221231235959" {
		t.Errorf("expected latest capture 20221231235959, got %s", stats.LatestCapture)
	}

	expected := []yearlyStat{{"2019", 1}, {"2020", 2}, {"2022", 1}}
	if len(stats.ByYear) != len(expected) {
		t.Fatalf("expected %d years, got %v", len(expected), stats.ByYear)
	}
	for i, ys := range expected {
		if stats.ByYear[i] != ys {
			t.Errorf("year %d: expected %v, got %v", i, ys, stats.ByYear[i])
		}
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := computeStats("example.com", nil)

	if stats.TotalSnapshots != 0 {
		t.Errorf("expected 0 snapshots, got %d", stats.TotalSnapshots)
	}
	if stats.FirstCapture != "" || stats.LatestCapture != "" {
		t.Errorf("expected no captures, got %s / %s", stats.FirstCapture, stats.LatestCapture)
	}
	if stats.ByYear == nil || len(stats.ByYear) != 0 {
		t.Errorf("expected empty year list, got %v", stats.ByYear)
	}
}

func TestStatsJSON(t *testing.T) {
	server := testutil.NewCDXServer(t, http.StatusOK, cdxBody)
	setupCommand(t, server.URL)
	statsJSON = true
	defer func() { statsJSON = false }()

	var err error
	out := captureStdout(t, func() {
		err = runStats(nil, []string{"example.com"})
	})
	if err != nil {
		t.Fatalf("stats command failed: %v", err)
	}

	var stats snapshotStats
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatalf("failed to parse JSON output: %v\n%s", err, out)
	}
	if stats.TotalSnapshots != 2 {
		t.Errorf("expected 2 snapshots, got %d", stats.TotalSnapshots)
	}
	if len(stats.ByYear) != 1 || stats.ByYear[0].Year != "2020" {
		t.Errorf("unexpected yearly stats: %v", stats.ByYear)
	}
}

func TestStatsHumanReadable(t *testing.T) {
	server := testutil.NewCDXServer(t, http.StatusOK, cdxBody)
	setupCommand(t, server.URL)
	statsJSON, statsToon = false, false

	var err error
	out := captureStdout(t, func() {
		err = runStats(nil, []string{"example.com"})
	})
	if err != nil {
		t.Fatalf("stats command failed: %v", err)
	}

	for _, want := range []string{"Total Snapshots: 2", "First Capture:   2020-01-01 00:00", "2020      2"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}
