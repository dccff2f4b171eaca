package services

import (
	"testing"
	"time"

	"habitLoopAPI/internal/metric"
)

func TestBuildHabitSeriesScoring(t *testing.T) {
	// 4 habits, 2 completed on one day: score 50.
	points := buildHabitSeries([]string{"2024-01-01", "2024-01-01"}, 4)

	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	if points[0].Date != "2024-01-01" {
		t.Errorf("date = %q, want 2024-01-01", points[0].Date)
	}
	if points[0].Score != 50 {
		t.Errorf("score = %d, want 50", points[0].Score)
	}
}

func TestBuildHabitSeriesRoundsHalfUp(t *testing.T) {
	cases := []struct {
		completions int
		total       int
		want        int
	}{
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds up
		{1, 1, 100},
		{3, 4, 75},
	}

	for _, tc := range cases {
		dates := make([]string, tc.completions)
		for i := range dates {
			dates[i] = "2024-06-01"
		}
		points := buildHabitSeries(dates, tc.total)
		if len(points) != 1 {
			t.Fatalf("%d/%d: expected 1 point, got %d", tc.completions, tc.total, len(points))
		}
		if points[0].Score != tc.want {
			t.Errorf("%d of %d habits: score = %d, want %d", tc.completions, tc.total, points[0].Score, tc.want)
		}
	}
}

func TestBuildHabitSeriesEmptySet(t *testing.T) {
	points := buildHabitSeries(nil, 0)
	if points == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(points) != 0 {
		t.Errorf("expected empty series for zero habits, got %v", points)
	}
}

func TestBuildHabitSeriesSparse(t *testing.T) {
	// Only dates with completions appear; gap days are absent, not zero.
	points := buildHabitSeries([]string{"2024-01-01", "2024-01-03"}, 2)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	for _, p := range points {
		if p.Date == "2024-01-02" {
			t.Error("gap day should be absent from sparse series")
		}
	}
}

func TestBuildHabitSeriesSortedAscending(t *testing.T) {
	points := buildHabitSeries([]string{"2024-01-05", "2024-01-01", "2024-01-03"}, 1)
	for i := 1; i < len(points); i++ {
		if points[i-1].Date >= points[i].Date {
			t.Errorf("series not ascending at %d: %q >= %q", i, points[i-1].Date, points[i].Date)
		}
	}
}

func TestBuildHabitSeriesClampsDuplicates(t *testing.T) {
	// Duplicate rows for one habit would push the raw score past 100; the
	// engine clamps rather than reporting an impossible percentage.
	points := buildHabitSeries([]string{"2024-01-01", "2024-01-01", "2024-01-01"}, 2)
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	if points[0].Score != 100 {
		t.Errorf("score = %d, want clamped 100", points[0].Score)
	}
}

func TestBuildScreenTimePoints(t *testing.T) {
	metrics := []*metric.DailyMetric{
		{Date: "2024-03-01", ScreenTimeMinutes: 90, UpdatedAt: time.Now()},
		{Date: "2024-03-02", ScreenTimeMinutes: 45, UpdatedAt: time.Now()},
		{Date: "2024-03-03", ScreenTimeMinutes: 0, UpdatedAt: time.Now()},
	}

	points := buildScreenTimePoints(metrics)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}

	if points[0].Hours != 1.5 {
		t.Errorf("90 minutes = %v hours, want 1.5", points[0].Hours)
	}
	if points[1].Hours != 0.8 {
		t.Errorf("45 minutes = %v hours, want 0.8", points[1].Hours)
	}
	if points[2].Hours != 0 || points[2].Minutes != 0 {
		t.Errorf("zero metric should stay zero, got %+v", points[2])
	}
}
