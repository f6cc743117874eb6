package nsisync

import (
	"context"
	"testing"
	"time"

	"github.com/marcus/nsisync/internal/models"
)

func TestRunOnce_StoppedReturnsEmptySuccess(t *testing.T) {
	store := testStore(t)
	feed := &fakeFeed{
		delta: &models.Delta{Version: 1, Items: []models.DeltaItem{
			{Type: models.EntityOrganization, ID: "org-1", Code: "ORG1", Name: "Acme"},
		}},
	}
	orch := NewOrchestrator(feed, store)

	result := orch.RunOnce(context.Background())
	if !result.Success || result.Total != 0 {
		t.Errorf("expected empty success while stopped, got %+v", result)
	}
	if feed.deltaCalls != 0 {
		t.Errorf("feed must not be fetched while stopped, got %d calls", feed.deltaCalls)
	}
}

func TestRunManual_WorksWhileStoppedAndLeavesScheduleStopped(t *testing.T) {
	store := testStore(t)
	feed := &fakeFeed{
		delta: &models.Delta{Version: 1, Items: []models.DeltaItem{
			{Type: models.EntityOrganization, ID: "org-1", Code: "ORG1", Name: "Acme"},
		}},
	}
	orch := NewOrchestrator(feed, store)

	result := orch.RunManual(context.Background())
	if !result.Success || result.Synced != 1 {
		t.Fatalf("manual run: %+v", result)
	}
	if orch.IsRunning() {
		t.Error("manual run must not start the periodic schedule")
	}
	if feed.deltaCalls != 1 {
		t.Errorf("expected 1 fetch, got %d", feed.deltaCalls)
	}
}

func TestStartPeriodic_Idempotent(t *testing.T) {
	store := testStore(t)
	feed := &fakeFeed{}
	orch := NewOrchestrator(feed, store)

	orch.StartPeriodic(time.Hour)
	defer orch.StopPeriodic()
	orch.StartPeriodic(time.Hour) // no-op

	if !orch.IsRunning() {
		t.Fatal("expected running")
	}

	// Wait for the immediate run to land.
	deadline := time.After(2 * time.Second)
	for feed.deltaCallCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("immediate run never happened")
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	if n := feed.deltaCallCount(); n != 1 {
		t.Errorf("double start must not double the immediate run, got %d", n)
	}
}

func TestStopPeriodic_SafeWhenStopped(t *testing.T) {
	orch := NewOrchestrator(&fakeFeed{}, testStore(t))
	orch.StopPeriodic() // must not panic
	orch.StartPeriodic(time.Hour)
	orch.StopPeriodic()
	orch.StopPeriodic()
	if orch.IsRunning() {
		t.Error("expected stopped")
	}
}

func TestStopPeriodic_SafeDuringManualRun(t *testing.T) {
	store := testStore(t)
	orch := NewOrchestrator(&fakeFeed{}, store)

	// Hold the run lock so the manual run is caught mid-flight.
	orch.runMu.Lock()
	done := make(chan models.SyncResult, 1)
	go func() { done <- orch.RunManual(context.Background()) }()

	// The schedule was never started, so this must be a no-op, not a panic,
	// regardless of the manual run.
	orch.StopPeriodic()
	if orch.IsRunning() {
		t.Error("manual run must not look like an active schedule")
	}

	orch.runMu.Unlock()
	if result := <-done; !result.Success {
		t.Errorf("manual run failed: %+v", result)
	}
}

func TestStartPeriodic_SurvivesConcurrentManualRun(t *testing.T) {
	store := testStore(t)
	orch := NewOrchestrator(&fakeFeed{}, store)

	orch.runMu.Lock()
	done := make(chan models.SyncResult, 1)
	go func() { done <- orch.RunManual(context.Background()) }()

	orch.StartPeriodic(time.Hour)
	defer orch.StopPeriodic()
	if !orch.IsRunning() {
		t.Fatal("expected running")
	}

	orch.runMu.Unlock()
	<-done

	// Completing the manual run must not clear the schedule.
	if !orch.IsRunning() {
		t.Error("manual run cleared the periodic schedule")
	}
}
