package main

import (
	"path/filepath"
	"testing"
	"time"
)

func TestValidReportType(t *testing.T) {
	for _, valid := range []string{"daily", "weekly", "tri-daily"} {
		if !validReportType(valid) {
			t.Errorf("validReportType(%q) = false, want true", valid)
		}
	}
	for _, invalid := range []string{"", "hourly", "Daily", "tridaily"} {
		if validReportType(invalid) {
			t.Errorf("validReportType(%q) = true, want false", invalid)
		}
	}
}

func TestLookback(t *testing.T) {
	if got := lookback(reportWeekly); got != 7*24*time.Hour {
		t.Errorf("weekly lookback = %v, want 168h", got)
	}
	if got := lookback(reportDaily); got != 24*time.Hour {
		t.Errorf("daily lookback = %v, want 24h", got)
	}
	if got := lookback(reportTriDaily); got != 24*time.Hour {
		t.Errorf("tri-daily lookback = %v, want 24h", got)
	}
}

func TestOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

	daily := outputPath("out", reportDaily, now)
	if daily != filepath.Join("out", "daily", "digest-2024-03-15.md") {
		t.Errorf("daily path = %q", daily)
	}

	triDaily := outputPath("out", reportTriDaily, now)
	if triDaily != filepath.Join("out", "tri-daily", "digest-2024-03-15-1430.md") {
		t.Errorf("tri-daily path = %q", triDaily)
	}
}
