package services

import (
	"testing"

	"habitLoopAPI/internal/apperr"
	"habitLoopAPI/internal/completion"
	"habitLoopAPI/internal/habit"
	"habitLoopAPI/internal/metric"
)

func TestCheckRequestRejectsEmptyHabitName(t *testing.T) {
	req := &habit.CreateHabitRequest{Name: "", TargetDays: 7}
	err := checkRequest(req)
	if err == nil {
		t.Fatal("expected validation error for empty name")
	}
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected KindValidation, got %v", apperr.KindOf(err))
	}
}

func TestCheckRequestRejectsNonPositiveTarget(t *testing.T) {
	for _, target := range []int{0, -3} {
		req := &habit.CreateHabitRequest{Name: "Read", TargetDays: target}
		if err := checkRequest(req); err == nil {
			t.Errorf("targetDays=%d should fail validation", target)
		}
	}
}

func TestCheckRequestRejectsNegativeMinutes(t *testing.T) {
	req := &metric.SetMetricRequest{Date: "2024-03-01", Minutes: -5}
	err := checkRequest(req)
	if err == nil {
		t.Fatal("expected validation error for negative minutes")
	}
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected KindValidation, got %v", apperr.KindOf(err))
	}
}

func TestCheckRequestAllowsZeroMinutes(t *testing.T) {
	req := &metric.SetMetricRequest{Date: "2024-03-01", Minutes: 0}
	if err := checkRequest(req); err != nil {
		t.Errorf("zero minutes is valid, got %v", err)
	}
}

func TestCheckRequestRejectsBadToggleHabitID(t *testing.T) {
	req := &completion.ToggleRequest{HabitID: "not-a-uuid", Date: "2024-01-01"}
	if err := checkRequest(req); err == nil {
		t.Fatal("expected validation error for malformed habit id")
	}
}

func TestCheckRequestAcceptsValidRequests(t *testing.T) {
	valid := []any{
		&habit.CreateHabitRequest{Name: "Exercise", TargetDays: 30, Color: "emerald"},
		&habit.CreateCollectionRequest{Name: "Morning"},
		&completion.ToggleRequest{HabitID: "573024d8-c5a4-40a5-8e35-2f0f11339bc7", Date: "2024-01-01"},
		&metric.SetMetricRequest{Date: "2024-03-01", Minutes: 120},
	}
	for _, req := range valid {
		if err := checkRequest(req); err != nil {
			t.Errorf("checkRequest(%T) = %v, want nil", req, err)
		}
	}
}
